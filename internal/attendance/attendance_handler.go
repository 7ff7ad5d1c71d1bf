package attendance

import (
	"fmt"
	"net/http"
	"strconv"

	attendanceerrors "github.com/YugandharPise/SME-HR/internal/attendance/errors"
	"github.com/YugandharPise/SME-HR/internal/middleware"
	"github.com/YugandharPise/SME-HR/internal/shared/apperror"
	"github.com/YugandharPise/SME-HR/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("attendance request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// selfEmployeeID is set by RequireEmployeeLink on the self-service routes.
func selfEmployeeID(c *gin.Context) (int64, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok || identity.EmployeeID == nil {
		return 0, false
	}
	return *identity.EmployeeID, true
}

func (h *Handler) CheckIn(c *gin.Context) {
	employeeID, ok := selfEmployeeID(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrForbidden)
		return
	}

	resp, err := h.service.CheckIn(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) CheckOut(c *gin.Context) {
	employeeID, ok := selfEmployeeID(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrForbidden)
		return
	}

	resp, err := h.service.CheckOut(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Edit(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeServiceError(c, attendanceerrors.ErrInvalidRecordID)
		return
	}

	identity, ok := middleware.GetIdentity(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	var req EditAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Edit(c.Request.Context(), identity, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, page, meta)
}

func (h *Handler) Export(c *gin.Context) {
	buf, filename, err := h.service.Export(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
