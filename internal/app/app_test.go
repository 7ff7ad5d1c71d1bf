package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/YugandharPise/SME-HR/internal/app"
	"github.com/YugandharPise/SME-HR/internal/config"
	"github.com/YugandharPise/SME-HR/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{LoginRate: 60},
		Auth: config.AuthConfig{
			JWTSecret:    "test-secret",
			TokenTTL:     time.Hour,
			SeedPassword: "password123",
		},
		Store:      config.StoreConfig{Driver: "memory", CommitTimeout: 5 * time.Second},
		Attendance: config.AttendanceConfig{Timezone: "UTC"},
		Payroll:    config.PayrollConfig{TaxRate: 0.15, ArtifactDir: t.TempDir()},
	}
}

func setupApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	apperror.Init()

	r := gin.New()
	cleanup, err := app.BuildApp(context.Background(), r, testConfig(t), zap.NewNop())
	t.Cleanup(cleanup)
	require.NoError(t, err)
	return r
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error map[string]any  `json:"error"`
}

func call(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := call(r, http.MethodPost, "/api/v1/auth/login", "", `{"email":"`+email+`","password":"password123"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	return resp.Token
}

func TestHealth(t *testing.T) {
	r := setupApp(t)

	w := call(r, http.MethodGet, "/api/health", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestPayrollFlow(t *testing.T) {
	r := setupApp(t)
	hr := login(t, r, "hr@example.com")
	worker := login(t, r, "employee@example.com")

	w := call(r, http.MethodPost, "/api/v1/payroll/run", worker, `{"period":"2024-05"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = call(r, http.MethodPost, "/api/v1/payroll/run", hr, `{"period":"2024-05"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"payslips_generated":5`)

	w = call(r, http.MethodPost, "/api/v1/payroll/run", hr, `{"period":"2024-05"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = call(r, http.MethodGet, "/api/v1/payroll/employee", worker, "")
	require.Equal(t, http.StatusOK, w.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var mine []struct {
		EmployeeID int64   `json:"employee_id"`
		NetPay     float64 `json:"net_pay"`
		FilePath   string  `json:"file_path"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, int64(1), mine[0].EmployeeID)
	assert.Equal(t, 6375.0, mine[0].NetPay)

	w = call(r, http.MethodGet, "/api/v1/payslips/"+mine[0].FilePath, worker, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))

	w = call(r, http.MethodGet, "/api/v1/payslips/payslip-2-2024-05.pdf", worker, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = call(r, http.MethodGet, "/api/v1/payroll", worker, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAttendanceFlow(t *testing.T) {
	r := setupApp(t)
	worker := login(t, r, "employee@example.com")
	hr := login(t, r, "hr@example.com")

	w := call(r, http.MethodPost, "/api/v1/attendance/check-in", worker, "")
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = call(r, http.MethodPost, "/api/v1/attendance/check-in", worker, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = call(r, http.MethodPost, "/api/v1/attendance/check-in", hr, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = call(r, http.MethodGet, "/api/v1/attendance", hr, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnauthenticated(t *testing.T) {
	r := setupApp(t)

	w := call(r, http.MethodGet, "/api/v1/employees", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(r, http.MethodGet, "/api/v1/employees", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
