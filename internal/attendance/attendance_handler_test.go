package attendance_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/YugandharPise/SME-HR/internal/attendance"
	attendanceerrors "github.com/YugandharPise/SME-HR/internal/attendance/errors"
	"github.com/YugandharPise/SME-HR/internal/middleware"
	"github.com/YugandharPise/SME-HR/internal/rbac"
	"github.com/YugandharPise/SME-HR/internal/shared/apperror"
	"github.com/YugandharPise/SME-HR/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeService struct {
	checkInFn  func(ctx context.Context, employeeID int64) (attendance.AttendanceResponse, error)
	checkOutFn func(ctx context.Context, employeeID int64) (attendance.AttendanceResponse, error)
	editFn     func(ctx context.Context, editor rbac.Identity, recordID int64, req attendance.EditAttendanceRequest) (attendance.AttendanceResponse, error)
	getAllFn   func(ctx context.Context) ([]attendance.AttendanceResponse, error)
	exportFn   func(ctx context.Context) (*bytes.Buffer, string, error)
}

func (f *fakeService) CheckIn(ctx context.Context, employeeID int64) (attendance.AttendanceResponse, error) {
	return f.checkInFn(ctx, employeeID)
}
func (f *fakeService) CheckOut(ctx context.Context, employeeID int64) (attendance.AttendanceResponse, error) {
	return f.checkOutFn(ctx, employeeID)
}
func (f *fakeService) Edit(ctx context.Context, editor rbac.Identity, recordID int64, req attendance.EditAttendanceRequest) (attendance.AttendanceResponse, error) {
	return f.editFn(ctx, editor, recordID, req)
}
func (f *fakeService) GetAll(ctx context.Context) ([]attendance.AttendanceResponse, error) {
	return f.getAllFn(ctx)
}
func (f *fakeService) Export(ctx context.Context) (*bytes.Buffer, string, error) {
	return f.exportFn(ctx)
}

func withIdentity(identity rbac.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextIdentity, identity)
		c.Next()
	}
}

func setupRouter(svc attendance.Service, identity rbac.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	h := attendance.NewHandler(svc, zap.NewNop())

	r := gin.New()
	r.Use(withIdentity(identity))
	r.POST("/attendance/check-in", middleware.RequireEmployeeLink(), h.CheckIn)
	r.POST("/attendance/check-out", middleware.RequireEmployeeLink(), h.CheckOut)
	r.PUT("/attendance/:id", h.Edit)
	r.GET("/attendance", h.GetAll)
	r.GET("/attendance/export", h.Export)
	return r
}

func employeeIdentity() rbac.Identity {
	id := int64(1)
	return rbac.Identity{UserID: 3, Role: store.RoleEmployee, EmployeeID: &id}
}

func TestHandler_CheckIn(t *testing.T) {
	t.Run("created for linked employee", func(t *testing.T) {
		svc := &fakeService{
			checkInFn: func(ctx context.Context, employeeID int64) (attendance.AttendanceResponse, error) {
				assert.Equal(t, int64(1), employeeID)
				return attendance.AttendanceResponse{ID: 10, EmployeeID: employeeID, Date: "2025-03-03"}, nil
			},
		}
		r := setupRouter(svc, employeeIdentity())

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/attendance/check-in", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":10`)
	})

	t.Run("conflict on second check in", func(t *testing.T) {
		svc := &fakeService{
			checkInFn: func(ctx context.Context, employeeID int64) (attendance.AttendanceResponse, error) {
				return attendance.AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
			},
		}
		r := setupRouter(svc, employeeIdentity())

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/attendance/check-in", nil))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "already checked in")
	})

	t.Run("account without employee link", func(t *testing.T) {
		svc := &fakeService{}
		r := setupRouter(svc, rbac.Identity{UserID: 9, Role: store.RoleEmployee})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/attendance/check-in", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestHandler_CheckOut(t *testing.T) {
	svc := &fakeService{
		checkOutFn: func(ctx context.Context, employeeID int64) (attendance.AttendanceResponse, error) {
			return attendance.AttendanceResponse{}, attendanceerrors.ErrNotCheckedIn
		},
	}
	r := setupRouter(svc, employeeIdentity())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/attendance/check-out", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "not checked in")
}

func TestHandler_Edit(t *testing.T) {
	hr := rbac.Identity{UserID: 2, Role: store.RoleHR}

	t.Run("passes editor and body", func(t *testing.T) {
		svc := &fakeService{
			editFn: func(ctx context.Context, editor rbac.Identity, recordID int64, req attendance.EditAttendanceRequest) (attendance.AttendanceResponse, error) {
				assert.Equal(t, int64(2), editor.UserID)
				assert.Equal(t, int64(5), recordID)
				assert.Equal(t, "forgot", req.Reason)
				assert.Equal(t, "2025-03-03T17:00:00Z", *req.CheckOutTime)
				return attendance.AttendanceResponse{ID: 5, HoursWorked: 8, LastEditBy: "hr@example.com"}, nil
			},
		}
		r := setupRouter(svc, hr)

		body := `{"check_out_time":"2025-03-03T17:00:00Z","reason":"forgot"}`
		req := httptest.NewRequest(http.MethodPut, "/attendance/5", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "hr@example.com")
	})

	t.Run("missing reason", func(t *testing.T) {
		svc := &fakeService{
			editFn: func(ctx context.Context, editor rbac.Identity, recordID int64, req attendance.EditAttendanceRequest) (attendance.AttendanceResponse, error) {
				return attendance.AttendanceResponse{}, attendanceerrors.ErrReasonRequired
			},
		}
		r := setupRouter(svc, hr)

		req := httptest.NewRequest(http.MethodPut, "/attendance/5", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "reason is required")
	})

	t.Run("bad id", func(t *testing.T) {
		r := setupRouter(&fakeService{}, hr)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/attendance/x", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_GetAllAndExport(t *testing.T) {
	svc := &fakeService{
		getAllFn: func(ctx context.Context) ([]attendance.AttendanceResponse, error) {
			return []attendance.AttendanceResponse{{ID: 2, EmployeeName: "Unknown"}, {ID: 1, EmployeeName: "Jane Doe"}}, nil
		},
		exportFn: func(ctx context.Context) (*bytes.Buffer, string, error) {
			return bytes.NewBufferString("xlsx-bytes"), "attendance-20250303.xlsx", nil
		},
	}
	r := setupRouter(svc, rbac.Identity{UserID: 1, Role: store.RoleAdmin})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendance", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Jane Doe")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendance/export", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "xlsx-bytes", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attendance-20250303.xlsx")
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
}
