package storeerrors

import (
	"net/http"

	"github.com/YugandharPise/SME-HR/internal/shared/apperror"
)

var (
	ErrCommitTimeout = apperror.New(
		apperror.CodeServiceUnavailable,
		"The service is busy, please retry",
		http.StatusServiceUnavailable,
	)
	ErrReadOnly = apperror.New(
		apperror.CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)
)
