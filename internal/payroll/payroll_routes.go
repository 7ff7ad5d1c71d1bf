package payroll

import (
	"github.com/YugandharPise/SME-HR/internal/middleware"
	"github.com/YugandharPise/SME-HR/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RegisterRoutes mounts /payroll and /payslips. rdb may be nil, in which case
// Idempotency-Key is ignored.
func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	verifier rbac.TokenVerifier,
	rbacService rbac.Service,
	rdb redis.Cmdable,
	logger *zap.Logger,
) {
	payroll := r.Group("/payroll")
	payroll.Use(middleware.AuthMiddleware(verifier))
	payroll.Use(middleware.ContextLogger(logger))
	{
		run := []gin.HandlerFunc{
			middleware.RateLimitByUser(middleware.PerMinute(6), 2),
			middleware.RBACAuthorize(rbacService, rbac.OpRunPayroll),
		}
		if rdb != nil {
			run = append(run, middleware.Idempotency(rdb))
		}
		payroll.POST("/run", append(run, h.Run)...)

		payroll.GET("",
			middleware.RBACAuthorize(rbacService, rbac.OpListPayslips),
			h.GetAll,
		)
		payroll.GET("/employee",
			middleware.RBACAuthorize(rbacService, rbac.OpListMyPayslips),
			h.GetMine,
		)
	}

	payslips := r.Group("/payslips")
	payslips.Use(middleware.AuthMiddleware(verifier))
	payslips.Use(middleware.ContextLogger(logger))
	{
		payslips.GET("/:filename",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, rbac.OpFetchArtifact),
			h.FetchArtifact,
		)
	}
}
