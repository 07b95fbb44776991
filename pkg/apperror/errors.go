package apperror

import (
	"errors"
	"net/http"

	"github.com/sangkips/restopos-api/pkg/receiptcalc"
	"github.com/sangkips/restopos-api/pkg/tzdate"
)

// AppError is an error that knows its HTTP status.
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// errInternal is what clients see for any error this package cannot map.
var errInternal = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}

func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// FromDomain maps errors raised by the date and amount packages to HTTP
// errors. It returns nil for anything else.
func FromDomain(err error) *AppError {
	var tzErr *tzdate.TimezoneError
	if errors.As(err, &tzErr) {
		return &AppError{
			Code:    http.StatusUnprocessableEntity,
			Message: "Invalid timezone",
			Errors:  []FieldError{{Field: "timezone", Message: tzErr.Error()}},
		}
	}

	var amountErr *receiptcalc.InvalidAmountError
	if errors.As(err, &amountErr) {
		return &AppError{
			Code:    http.StatusUnprocessableEntity,
			Message: "Invalid amount",
			Errors:  []FieldError{{Field: amountErr.Field, Message: amountErr.Reason}},
		}
	}

	var parseErr *tzdate.DateParseError
	if errors.As(err, &parseErr) {
		return &AppError{
			Code:    http.StatusBadRequest,
			Message: "Invalid date",
			Errors:  []FieldError{{Field: "date", Message: parseErr.Error()}},
		}
	}
	return nil
}

// GetAppError converts any error into an AppError. Unknown errors become a
// generic 500 so internal details never reach the client.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if mapped := FromDomain(err); mapped != nil {
		return mapped
	}
	return errInternal
}
