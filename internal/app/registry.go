package app

import (
	"fmt"

	"github.com/YugandharPise/SME-HR/internal/attendance"
	"github.com/YugandharPise/SME-HR/internal/auth"
	"github.com/YugandharPise/SME-HR/internal/config"
	"github.com/YugandharPise/SME-HR/internal/employee"
	"github.com/YugandharPise/SME-HR/internal/messaging/kafka"
	"github.com/YugandharPise/SME-HR/internal/payroll"
	"github.com/YugandharPise/SME-HR/internal/rbac"
	"github.com/YugandharPise/SME-HR/internal/rbac/rbac_http"
	"github.com/YugandharPise/SME-HR/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type modules struct {
	cfg    *config.Config
	store  store.Store
	outbox kafka.OutboxRepository
	rdb    redis.Cmdable
	logger *zap.Logger
}

func registerModules(router *gin.Engine, m modules) error {
	cfg, logger := m.cfg, m.logger

	loc, err := cfg.Attendance.Location()
	if err != nil {
		return fmt.Errorf("attendance timezone: %w", err)
	}
	artifacts, err := payroll.NewDirArtifactStore(cfg.Payroll.ArtifactDir)
	if err != nil {
		return err
	}

	// --- Auth & RBAC ---
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	rbacService, err := rbac.NewService(tokens)
	if err != nil {
		return err
	}

	// --- Repositories ---
	authRepo := auth.NewRepository(m.store)
	employeeRepo := employee.NewRepository(m.store)
	attendanceRepo := attendance.NewRepository(m.store)
	payrollRepo := payroll.NewRepository(m.store)

	// --- Services ---
	authService := auth.NewService(authRepo, tokens, logger)
	employeeService := employee.NewServiceWithOutbox(m.store, employeeRepo, m.outbox, m.rdb, logger)
	attendanceService := attendance.NewServiceWithOutbox(m.store, attendanceRepo, m.outbox, loc, logger)
	payrollService := payroll.NewServiceWithOutbox(
		m.store,
		payrollRepo,
		m.outbox,
		payroll.FlatRate{Rate: cfg.Payroll.TaxRate},
		payroll.NewPDFRenderer(),
		artifacts,
		logger,
	)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, m.rdb, logger)
	rbacHandler := rbac_http.NewHandler(rbacService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, tokens, rbacService, cfg.Server.LoginRate)
		employee.RegisterRoutes(api, employeeHandler, tokens, rbacService, logger)
		attendance.RegisterRoutes(api, attendanceHandler, tokens, rbacService, logger)
		payroll.RegisterRoutes(api, payrollHandler, tokens, rbacService, m.rdb, logger)
		rbac_http.RegisterRoutes(api, rbacHandler, tokens)
	}

	return nil
}
