package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/YugandharPise/SME-HR/internal/auth"
	autherrors "github.com/YugandharPise/SME-HR/internal/auth/errors"
	authMock "github.com/YugandharPise/SME-HR/internal/auth/mock"
	"github.com/YugandharPise/SME-HR/internal/middleware"
	"github.com/YugandharPise/SME-HR/internal/rbac"
	"github.com/YugandharPise/SME-HR/internal/shared/apperror"
	"github.com/YugandharPise/SME-HR/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	return gin.New()
}

func TestHandler_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := authMock.NewMockService(ctrl)
	handler := auth.NewHandler(mockService, zap.NewNop())
	router := setupAuthRouter()
	router.POST("/login", handler.Login)

	t.Run("Success Login", func(t *testing.T) {
		body, _ := json.Marshal(auth.LoginRequest{Email: "admin@example.com", Password: "password123"})

		mockService.EXPECT().
			Login(gomock.Any(), "admin@example.com", "password123").
			Return(auth.LoginResponse{Token: "jwt", User: auth.AuthResponse{ID: 1, Email: "admin@example.com", Role: "admin"}}, nil)

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var res map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		data := res["data"].(map[string]interface{})
		assert.Equal(t, "jwt", data["token"])
		assert.Equal(t, "admin", data["user"].(map[string]interface{})["role"])
	})

	t.Run("Failed Login - Invalid Credentials", func(t *testing.T) {
		mockService.EXPECT().
			Login(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(auth.LoginResponse{}, autherrors.ErrInvalidCredentials)

		body, _ := json.Marshal(auth.LoginRequest{Email: "wrong@test.com", Password: "123"})
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid email or password")
	})

	t.Run("Failed Login - Missing Password", func(t *testing.T) {
		mockService.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"email":"a@b.c"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Password is required")
	})
}

func TestHandler_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := authMock.NewMockService(ctrl)
	handler := auth.NewHandler(mockService, zap.NewNop())
	router := setupAuthRouter()
	identity := rbac.Identity{UserID: 2, Role: store.RoleHR}
	router.GET("/me", func(c *gin.Context) {
		c.Set(middleware.ContextIdentity, identity)
	}, handler.Me)

	mockService.EXPECT().GetMe(gomock.Any(), identity).Return(&auth.AuthResponse{ID: 2, Email: "hr@example.com", Role: "hr"}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hr@example.com")
}
