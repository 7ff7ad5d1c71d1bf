package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"testing"

	"github.com/YugandharPise/SME-HR/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps its code", func(t *testing.T) {
		err := fmt.Errorf("check in: %w", apperror.New(apperror.CodeConflict, "already checked in", http.StatusConflict))
		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusConflict, httpErr.Status)
		assert.Equal(t, apperror.CodeConflict, httpErr.Code)
		assert.Equal(t, "already checked in", httpErr.Message)
	})

	t.Run("persistence error hides cause", func(t *testing.T) {
		err := apperror.Persistence(errors.New("open /var/lib/hr/snapshot.json: permission denied"))
		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.NotContains(t, httpErr.Message, "/var/lib")
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		httpErr := apperror.ToHTTP(errors.New("boom"))
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, apperror.CodeInternalError, httpErr.Code)
		assert.Equal(t, "An unexpected error occurred", httpErr.Message)
	})
}

func TestMapValidationError(t *testing.T) {
	type payload struct {
		FirstName string  `json:"first_name" validate:"required"`
		Salary    float64 `json:"salary" validate:"gte=0"`
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string { return f.Tag.Get("json") })

	err := v.Struct(payload{Salary: 10})
	mapped := apperror.MapValidationError(err)
	httpErr := apperror.ToHTTP(mapped)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "First Name is required", httpErr.Message)

	err = v.Struct(payload{FirstName: "Jane", Salary: -1})
	httpErr = apperror.ToHTTP(apperror.MapValidationError(err))
	assert.Equal(t, "Salary is invalid", httpErr.Message)
}
