package attendance

import (
	"github.com/YugandharPise/SME-HR/internal/middleware"
	"github.com/YugandharPise/SME-HR/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	verifier rbac.TokenVerifier,
	rbacService rbac.Service,
	logger *zap.Logger,
) {
	attendance := r.Group("/attendance")
	attendance.Use(middleware.AuthMiddleware(verifier))
	attendance.Use(middleware.ContextLogger(logger))
	{
		attendance.POST("/check-in",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, rbac.OpCheckIn),
			middleware.RequireEmployeeLink(),
			h.CheckIn,
		)
		attendance.POST("/check-out",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, rbac.OpCheckOut),
			middleware.RequireEmployeeLink(),
			h.CheckOut,
		)

		attendance.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.OpListAttendance),
			h.GetAll,
		)
		attendance.GET("/export",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, rbac.OpExportAttendance),
			h.Export,
		)
		attendance.PUT("/:id",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.OpEditAttendance),
			h.Edit,
		)
	}
}
