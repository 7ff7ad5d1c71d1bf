package rbac_http

import (
	"net/http"

	"github.com/YugandharPise/SME-HR/internal/middleware"
	"github.com/YugandharPise/SME-HR/internal/rbac"
	"github.com/YugandharPise/SME-HR/internal/shared/apperror"
	"github.com/YugandharPise/SME-HR/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EnforceBody struct {
	Operation rbac.Operation `json:"operation" binding:"required"`
}

type EnforceResponse struct {
	Operation rbac.Operation `json:"operation"`
	Allowed   bool           `json:"allowed"`
}

type PermissionsResponse struct {
	Role       string           `json:"role"`
	Operations []rbac.Operation `json:"operations"`
}

// Handler lets a client ask what the caller's role may do, so it can hide
// actions instead of waiting for a 403.
type Handler struct {
	service rbac.Service
	logger  *zap.Logger
}

func NewHandler(service rbac.Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Enforce(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	var body EnforceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	allowed, err := h.service.Enforce(rbac.EnforceRequest{Role: identity.Role, Operation: body.Operation})
	if err != nil {
		h.logger.Error("enforce failed", zap.String("operation", string(body.Operation)), zap.Error(err))
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, EnforceResponse{Operation: body.Operation, Allowed: allowed}, nil)
}

func (h *Handler) Permissions(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	allowed := []rbac.Operation{}
	for _, op := range rbac.Operations() {
		ok, err := h.service.Enforce(rbac.EnforceRequest{Role: identity.Role, Operation: op})
		if err != nil {
			h.logger.Error("enforce failed", zap.String("operation", string(op)), zap.Error(err))
			h.writeServiceError(c, err)
			return
		}
		if ok {
			allowed = append(allowed, op)
		}
	}

	response.Success(c, http.StatusOK, PermissionsResponse{
		Role:       identity.Role.String(),
		Operations: allowed,
	}, nil)
}
