package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Store      StoreConfig      `mapstructure:"store"`
	Database   DatabaseConfig   `mapstructure:"db"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	Attendance AttendanceConfig `mapstructure:"attendance"`
	Payroll    PayrollConfig    `mapstructure:"payroll"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	Env          string        `mapstructure:"env"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	// LoginRate is the number of login attempts per minute allowed per client IP.
	LoginRate int `mapstructure:"login_rate"`
}

func (c ServerConfig) IsProduction() bool {
	return c.Env == "production"
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type AuthConfig struct {
	JWTSecret    string        `mapstructure:"jwt_secret"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
	SeedPassword string        `mapstructure:"seed_password"`
}

// StoreConfig selects where the HR snapshot lives: "memory", "file" or "postgres".
type StoreConfig struct {
	Driver        string        `mapstructure:"driver"`
	Path          string        `mapstructure:"path"`
	CommitTimeout time.Duration `mapstructure:"commit_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN is the key/value form used by gorm's postgres driver.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

// URL is the form golang-migrate expects.
func (c DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
}

func (c RedisConfig) Enabled() bool { return c.Addr != "" }

type KafkaConfig struct {
	Broker        string        `mapstructure:"broker"`
	ConsumerGroup string        `mapstructure:"consumer_group"`
	RelayInterval time.Duration `mapstructure:"relay_interval"`
}

func (c KafkaConfig) Enabled() bool { return c.Broker != "" }

type AttendanceConfig struct {
	Timezone string `mapstructure:"timezone"`
}

// Location resolves the reference timezone used to decide what "today" is.
func (c AttendanceConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

type PayrollConfig struct {
	TaxRate     float64 `mapstructure:"tax_rate"`
	ArtifactDir string  `mapstructure:"artifact_dir"`
}

var envBindings = map[string]string{
	"server.port":          "PORT",
	"server.env":           "APP_ENV",
	"server.read_timeout":  "HTTP_READ_TIMEOUT",
	"server.write_timeout": "HTTP_WRITE_TIMEOUT",
	"server.idle_timeout":  "HTTP_IDLE_TIMEOUT",
	"server.login_rate":    "LOGIN_RATE_PER_MINUTE",
	"log.level":            "LOG_LEVEL",
	"log.format":           "LOG_FORMAT",
	"auth.jwt_secret":      "JWT_SECRET",
	"auth.token_ttl":       "TOKEN_TTL",
	"auth.seed_password":   "SEED_PASSWORD",
	"store.driver":         "STORE_DRIVER",
	"store.path":           "STORE_PATH",
	"store.commit_timeout": "STORE_COMMIT_TIMEOUT",
	"db.host":              "DB_HOST",
	"db.port":              "DB_PORT",
	"db.name":              "DB_NAME",
	"db.user":              "DB_USER",
	"db.password":          "DB_PASSWORD",
	"db.sslmode":           "DB_SSLMODE",
	"redis.addr":           "REDIS_ADDR",
	"kafka.broker":         "KAFKA_BROKER",
	"kafka.consumer_group": "KAFKA_CONSUMER_GROUP",
	"kafka.relay_interval": "KAFKA_RELAY_INTERVAL",
	"attendance.timezone":  "ATTENDANCE_TIMEZONE",
	"payroll.tax_rate":     "PAYROLL_TAX_RATE",
	"payroll.artifact_dir": "ARTIFACT_DIR",
}

// Load reads an optional .env file, then an optional config file, then the
// environment. Environment variables win over the file, the file over defaults.
func Load(path string) (*Config, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDatabase is Load for tools that only need the database settings; it
// skips validation of everything else.
func LoadDatabase(path string) (DatabaseConfig, error) {
	cfg, err := read(path)
	if err != nil {
		return DatabaseConfig{}, err
	}
	return cfg.Database, nil
}

func read(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.read_timeout", "5s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.login_rate", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", "1h")
	v.SetDefault("auth.seed_password", "password123")

	v.SetDefault("store.driver", "file")
	v.SetDefault("store.path", "data/hr.json")
	v.SetDefault("store.commit_timeout", "5s")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.name", "sme_hr")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")

	v.SetDefault("redis.addr", "")

	v.SetDefault("kafka.broker", "")
	v.SetDefault("kafka.consumer_group", "sme-hr-payslip")
	v.SetDefault("kafka.relay_interval", "2s")

	v.SetDefault("attendance.timezone", "UTC")

	v.SetDefault("payroll.tax_rate", 0.15)
	v.SetDefault("payroll.artifact_dir", "payslips")
}

func (c *Config) Validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	switch c.Store.Driver {
	case "memory", "file", "postgres":
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER %q is not one of memory, file, postgres", c.Store.Driver))
	}
	if c.Store.CommitTimeout <= 0 {
		errs = append(errs, errors.New("STORE_COMMIT_TIMEOUT must be positive"))
	}
	if c.Payroll.TaxRate < 0 || c.Payroll.TaxRate >= 1 {
		errs = append(errs, errors.New("PAYROLL_TAX_RATE must be in [0, 1)"))
	}
	if c.Payroll.ArtifactDir == "" {
		errs = append(errs, errors.New("ARTIFACT_DIR is required"))
	}
	if _, err := c.Attendance.Location(); err != nil {
		errs = append(errs, fmt.Errorf("ATTENDANCE_TIMEZONE: %w", err))
	}
	return errors.Join(errs...)
}
