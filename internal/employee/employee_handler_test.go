package employee_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/YugandharPise/SME-HR/internal/employee"
	employeeerrors "github.com/YugandharPise/SME-HR/internal/employee/errors"
	employeeMock "github.com/YugandharPise/SME-HR/internal/employee/mock"
	"github.com/YugandharPise/SME-HR/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func setupRouter(t *testing.T) (*gin.Engine, *employeeMock.MockService) {
	gin.SetMode(gin.TestMode)
	apperror.Init()

	ctrl := gomock.NewController(t)
	svc := employeeMock.NewMockService(ctrl)
	h := employee.NewHandler(svc, zap.NewNop())

	r := gin.New()
	r.GET("/employees", h.GetAll)
	r.GET("/employees/options", h.GetOptions)
	r.GET("/employees/:id", h.GetByID)
	r.POST("/employees", h.Create)
	r.PUT("/employees/:id", h.Update)
	r.DELETE("/employees/:id", h.Delete)
	return r, svc
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r, svc := setupRouter(t)
		svc.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "Ana", req.FirstName)
				assert.Equal(t, 60000.0, req.Salary)
				return employee.EmployeeResponse{ID: 6, FirstName: "Ana", LastName: "Lopez", Email: req.Email}, nil
			})

		w := doJSON(r, http.MethodPost, "/employees", `{"first_name":"Ana","last_name":"Lopez","email":"ana@example.com","salary":60000}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":6`)
	})

	t.Run("missing last name", func(t *testing.T) {
		r, svc := setupRouter(t)
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

		w := doJSON(r, http.MethodPost, "/employees", `{"first_name":"Ana","email":"ana@example.com"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Last Name is required")
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		r, svc := setupRouter(t)
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

		w := doJSON(r, http.MethodPost, "/employees", `{"first_name":"Ana","last_name":"Lopez","email":"ana@example.com","role":"admin"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		r, svc := setupRouter(t)
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(employee.EmployeeResponse{}, employeeerrors.ErrEmployeeAlreadyExists)

		w := doJSON(r, http.MethodPost, "/employees", `{"first_name":"Ana","last_name":"Lopez","email":"jane@example.com"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeConflict)
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	list := []employee.EmployeeResponse{
		{ID: 1, FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Department: "Engineering", Salary: 90000},
		{ID: 2, FirstName: "John", LastName: "Smith", Email: "john@example.com", Department: "Engineering", Salary: 120000},
		{ID: 3, FirstName: "Peter", LastName: "Jones", Email: "peter@example.com", Department: "Marketing", Salary: 85000},
	}

	t.Run("filter and sort", func(t *testing.T) {
		r, svc := setupRouter(t)
		svc.EXPECT().GetAll(gomock.Any()).Return(list, nil)

		w := doJSON(r, http.MethodGet, "/employees?q=engineering&sort_by=salary&sort_dir=desc", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var res struct {
			Data []employee.EmployeeResponse `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Len(t, res.Data, 2)
		assert.Equal(t, int64(2), res.Data[0].ID)
		assert.Equal(t, int64(1), res.Data[1].ID)
	})

	t.Run("paginated", func(t *testing.T) {
		r, svc := setupRouter(t)
		svc.EXPECT().GetAll(gomock.Any()).Return(list, nil)

		w := doJSON(r, http.MethodGet, "/employees?page=2&page_size=2", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"totalPages":2`)
		assert.Contains(t, w.Body.String(), `"id":3`)
	})
}

func TestEmployeeHandler_Update(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		r, svc := setupRouter(t)
		svc.EXPECT().
			Update(gomock.Any(), int64(2), gomock.Any()).
			DoAndReturn(func(_ any, _ int64, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Nil(t, req.FirstName)
				assert.NotNil(t, req.Salary)
				return employee.EmployeeResponse{ID: 2, Salary: *req.Salary}, nil
			})

		w := doJSON(r, http.MethodPut, "/employees/2", `{"salary":130000}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		r, _ := setupRouter(t)
		w := doJSON(r, http.MethodPut, "/employees/abc", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid employee ID")
	})

	t.Run("not found", func(t *testing.T) {
		r, svc := setupRouter(t)
		svc.EXPECT().Update(gomock.Any(), int64(99), gomock.Any()).Return(employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound)

		w := doJSON(r, http.MethodPut, "/employees/99", `{"first_name":"X"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEmployeeHandler_Delete(t *testing.T) {
	r, svc := setupRouter(t)
	svc.EXPECT().Delete(gomock.Any(), int64(4)).Return(nil)

	w := doJSON(r, http.MethodDelete, "/employees/4", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestEmployeeHandler_GetOptions(t *testing.T) {
	r, svc := setupRouter(t)
	svc.EXPECT().GetOptions(gomock.Any()).Return([]employee.EmployeeOptionResponse{{ID: 1, Name: "Jane Doe"}}, nil)

	w := doJSON(r, http.MethodGet, "/employees/options", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Jane Doe")
}
