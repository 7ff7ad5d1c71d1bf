package payrollerrors

import (
	"net/http"

	"github.com/YugandharPise/SME-HR/internal/shared/apperror"
)

var (
	ErrPeriodRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Payroll period is required",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"Payroll period may only contain letters, digits, '-' and '_'",
		http.StatusBadRequest,
	)
	ErrPeriodAlreadyProcessed = apperror.New(
		apperror.CodeConflict,
		"Payroll for this period has already been processed",
		http.StatusConflict,
	)
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payslip not found",
		http.StatusNotFound,
	)
	ErrPayslipForbidden = apperror.New(
		apperror.CodeForbidden,
		"You can only access your own payslips",
		http.StatusForbidden,
	)
	ErrArtifactUnavailable = apperror.New(
		apperror.CodeInternalError,
		"Payslip document is not available",
		http.StatusInternalServerError,
	)
)
