package middleware

import (
	"net/http"

	"github.com/YugandharPise/SME-HR/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

var errNoEmployeeLink = apperror.New(
	apperror.CodeForbidden,
	"No employee record is linked to this account",
	http.StatusForbidden,
)

// RequireEmployeeLink rejects callers whose token carries no employee id.
// Runs after AuthMiddleware on self-service attendance routes.
func RequireEmployeeLink() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}
		if identity.EmployeeID == nil {
			abortWith(c, errNoEmployeeLink)
			return
		}
		c.Next()
	}
}
