package middleware

import (
	"strings"

	"github.com/YugandharPise/SME-HR/internal/rbac"
	rbacerrors "github.com/YugandharPise/SME-HR/internal/rbac/errors"
	"github.com/YugandharPise/SME-HR/internal/shared/apperror"
	"github.com/YugandharPise/SME-HR/internal/shared/contextutil"
	"github.com/YugandharPise/SME-HR/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const ContextIdentity = "identity"

// BearerToken reads the Authorization header, falling back to the access_token cookie.
func BearerToken(c *gin.Context) string {
	if token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); found {
		return strings.TrimSpace(token)
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}

// AuthMiddleware verifies the token and stores the caller's Identity.
// Every failure, including an unknown role claim, is a plain 401.
func AuthMiddleware(verifier rbac.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			abortWith(c, rbacerrors.ErrUnauthenticated)
			return
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			abortWith(c, rbacerrors.ErrUnauthenticated)
			return
		}

		c.Set(ContextIdentity, identity)
		c.Set("user_id", identity.UserID)
		c.Set("role", identity.Role.String())
		if identity.EmployeeID != nil {
			c.Set("employee_id", *identity.EmployeeID)
		}
		c.Request = c.Request.WithContext(contextutil.WithUserID(c.Request.Context(), identity.UserID))

		c.Next()
	}
}

// GetIdentity returns the Identity stored by AuthMiddleware.
func GetIdentity(c *gin.Context) (rbac.Identity, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return rbac.Identity{}, false
	}
	identity, ok := v.(rbac.Identity)
	return identity, ok
}

func abortWith(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
	c.Abort()
}
