package middleware

import (
	"github.com/YugandharPise/SME-HR/internal/rbac"
	rbacerrors "github.com/YugandharPise/SME-HR/internal/rbac/errors"
	"github.com/YugandharPise/SME-HR/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

// RBACService is the slice of the access guard the middleware needs.
type RBACService interface {
	Enforce(req rbac.EnforceRequest) (bool, error)
}

// RBACAuthorize must run after AuthMiddleware.
func RBACAuthorize(service RBACService, op rbac.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			abortWith(c, rbacerrors.ErrUnauthenticated)
			return
		}

		allowed, err := service.Enforce(rbac.EnforceRequest{Role: identity.Role, Operation: op})
		if err != nil {
			abortWith(c, apperror.ErrInternal)
			return
		}
		if !allowed {
			abortWith(c, rbacerrors.ErrForbidden)
			return
		}
		c.Next()
	}
}
