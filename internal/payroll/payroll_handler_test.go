package payroll_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/YugandharPise/SME-HR/internal/middleware"
	"github.com/YugandharPise/SME-HR/internal/payroll"
	payrollerrors "github.com/YugandharPise/SME-HR/internal/payroll/errors"
	payrollMock "github.com/YugandharPise/SME-HR/internal/payroll/mock"
	"github.com/YugandharPise/SME-HR/internal/rbac"
	"github.com/YugandharPise/SME-HR/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func withIdentity(identity rbac.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextIdentity, identity)
		c.Next()
	}
}

func setupRouter(t *testing.T, identity rbac.Identity, rdb redis.Cmdable) (*gin.Engine, *payrollMock.MockService) {
	gin.SetMode(gin.TestMode)
	apperror.Init()

	ctrl := gomock.NewController(t)
	svc := payrollMock.NewMockService(ctrl)
	h := payroll.NewHandlerWithRedis(svc, rdb, zap.NewNop())

	r := gin.New()
	r.Use(withIdentity(identity))
	if rdb != nil {
		r.POST("/payroll/run", middleware.Idempotency(rdb), h.Run)
	} else {
		r.POST("/payroll/run", h.Run)
	}
	r.GET("/payroll", h.GetAll)
	r.GET("/payroll/employee", h.GetMine)
	r.GET("/payslips/:filename", h.FetchArtifact)
	return r, svc
}

func do(r *gin.Engine, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var runResult = payroll.RunPayrollResponse{
	Message:           "Payroll run for 2024-05 completed successfully.",
	Period:            "2024-05",
	PayslipsGenerated: 5,
}

func TestPayrollHandler_Run(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r, svc := setupRouter(t, hrActor, nil)
		svc.EXPECT().Run(gomock.Any(), hrActor, "2024-05").Return(runResult, nil)

		w := do(r, http.MethodPost, "/payroll/run", `{"period":"2024-05"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"payslips_generated":5`)
	})

	t.Run("service rejects period", func(t *testing.T) {
		r, svc := setupRouter(t, hrActor, nil)
		svc.EXPECT().Run(gomock.Any(), hrActor, "").Return(payroll.RunPayrollResponse{}, payrollerrors.ErrPeriodRequired)

		w := do(r, http.MethodPost, "/payroll/run", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Payroll period is required")
	})

	t.Run("duplicate period", func(t *testing.T) {
		r, svc := setupRouter(t, hrActor, nil)
		svc.EXPECT().Run(gomock.Any(), hrActor, "2024-05").Return(payroll.RunPayrollResponse{}, payrollerrors.ErrPeriodAlreadyProcessed)

		w := do(r, http.MethodPost, "/payroll/run", `{"period":"2024-05"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		r, svc := setupRouter(t, hrActor, nil)
		svc.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		w := do(r, http.MethodPost, "/payroll/run", `{"period":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPayrollHandler_RunIdempotency(t *testing.T) {
	const cacheKey = "idemp:/payroll/run:2:run-1"
	stored := []byte(`{"status":201,"data":{"message":"Payroll run for 2024-05 completed successfully.","period":"2024-05","payslips_generated":5}}`)

	t.Run("first request runs and stores result", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		r, svc := setupRouter(t, hrActor, rdb)

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", middleware.IdempotencyLockTTL).SetVal(true)
		mock.ExpectSet(cacheKey, stored, middleware.IdempotencyResultTTL).SetVal("OK")
		mock.ExpectDel(cacheKey + ":lock").SetVal(1)
		svc.EXPECT().Run(gomock.Any(), hrActor, "2024-05").Return(runResult, nil)

		w := do(r, http.MethodPost, "/payroll/run", `{"period":"2024-05"}`, middleware.HeaderIdempotencyKey, "run-1")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replay skips the service", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		r, svc := setupRouter(t, hrActor, rdb)

		mock.ExpectGet(cacheKey).SetVal(string(stored))
		svc.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		w := do(r, http.MethodPost, "/payroll/run", `{"period":"2024-05"}`, middleware.HeaderIdempotencyKey, "run-1")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
		assert.Contains(t, w.Body.String(), `"payslips_generated":5`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent duplicate is rejected", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		r, svc := setupRouter(t, hrActor, rdb)

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", middleware.IdempotencyLockTTL).SetVal(false)
		svc.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		w := do(r, http.MethodPost, "/payroll/run", `{"period":"2024-05"}`, middleware.HeaderIdempotencyKey, "run-1")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPayrollHandler_Lists(t *testing.T) {
	t.Run("all payslips", func(t *testing.T) {
		r, svc := setupRouter(t, hrActor, nil)
		svc.EXPECT().ListAll(gomock.Any()).Return([]payroll.PayslipResponse{{ID: 1}, {ID: 2}}, nil)

		w := do(r, http.MethodGet, "/payroll", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"id":2`)
	})

	t.Run("own payslips use the token identity", func(t *testing.T) {
		me := linkedWorker(1)
		r, svc := setupRouter(t, me, nil)
		svc.EXPECT().ListMine(gomock.Any(), me).Return([]payroll.PayslipResponse{{ID: 1, EmployeeID: 1}}, nil)

		w := do(r, http.MethodGet, "/payroll/employee?employee_id=2", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"employee_id":1`)
	})

	t.Run("list failure", func(t *testing.T) {
		r, svc := setupRouter(t, hrActor, nil)
		svc.EXPECT().ListAll(gomock.Any()).Return(nil, apperror.Persistence(errors.New("boom")))

		w := do(r, http.MethodGet, "/payroll", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestPayrollHandler_FetchArtifact(t *testing.T) {
	t.Run("pdf body", func(t *testing.T) {
		me := linkedWorker(1)
		r, svc := setupRouter(t, me, nil)
		svc.EXPECT().FetchArtifact(gomock.Any(), me, "payslip-1-2024-05.pdf").Return([]byte("%PDF-1.3"), nil)

		w := do(r, http.MethodGet, "/payslips/payslip-1-2024-05.pdf", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Equal(t, "%PDF-1.3", w.Body.String())
	})

	t.Run("foreign payslip", func(t *testing.T) {
		me := linkedWorker(1)
		r, svc := setupRouter(t, me, nil)
		svc.EXPECT().FetchArtifact(gomock.Any(), me, "payslip-2-2024-05.pdf").Return(nil, payrollerrors.ErrPayslipForbidden)

		w := do(r, http.MethodGet, "/payslips/payslip-2-2024-05.pdf", "")

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no identity", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		ctrl := gomock.NewController(t)
		svc := payrollMock.NewMockService(ctrl)
		h := payroll.NewHandler(svc, zap.NewNop())
		r := gin.New()
		r.GET("/payslips/:filename", h.FetchArtifact)

		w := do(r, http.MethodGet, "/payslips/payslip-1-2024-05.pdf", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

