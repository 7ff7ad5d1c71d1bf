package rbac_http

import (
	"github.com/YugandharPise/SME-HR/internal/middleware"
	"github.com/YugandharPise/SME-HR/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, verifier rbac.TokenVerifier) {
	group := r.Group("/rbac")
	group.Use(middleware.AuthMiddleware(verifier))
	group.Use(middleware.RateLimitByUser(2, 10))
	{
		group.GET("/permissions", handler.Permissions)
		group.POST("/enforce", handler.Enforce)
	}
}
