package auth

import (
	"github.com/YugandharPise/SME-HR/internal/middleware"
	"github.com/YugandharPise/SME-HR/internal/rbac"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts /auth. loginPerMinute bounds login attempts per client IP.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, verifier rbac.TokenVerifier, rbacService rbac.Service, loginPerMinute int) {
	if loginPerMinute <= 0 {
		loginPerMinute = 10
	}

	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(middleware.PerMinute(loginPerMinute), loginPerMinute), handler.Login)
		auth.GET("/me",
			middleware.AuthMiddleware(verifier),
			middleware.RBACAuthorize(rbacService, rbac.OpMe),
			middleware.RateLimitByUser(2, 5),
			handler.Me,
		)
	}
}
