package middleware

import (
	"github.com/YugandharPise/SME-HR/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger attaches a request-scoped logger to the request context so
// services can log with request_id and user_id through contextutil.GetLogger.
// Runs after RequestID, and after AuthMiddleware when a user is known.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		meta := contextutil.ExtractMetadata(ctx)

		fields := []zap.Field{zap.String("request_id", meta.RequestID)}
		if meta.UserID != 0 {
			fields = append(fields, zap.Int64("user_id", meta.UserID))
		}

		ctx = contextutil.WithLogger(ctx, logger.With(fields...))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
