package handlers

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
)

var errHandler *ErrorHandler

// ErrorHandler - Handle custom events (logs and errors)
type ErrorHandler struct {
	app *pocketbase.PocketBase
}

// NewErrorHandler - ErrorHandler instance
func NewErrorHandler(app *pocketbase.PocketBase) *ErrorHandler {
	return &ErrorHandler{app: app}
}

// Error logs the message at a level matching the status and returns the API error.
func (h *ErrorHandler) Error(status int, message string, errData interface{}, attrs ...interface{}) error {
	logAttrs := append([]interface{}{"status", status}, attrs...)
	if errData != nil {
		logAttrs = append(logAttrs, "data", errData)
	}

	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		LogWarn(message, logAttrs...)
	case http.StatusInternalServerError:
		LogError(nil, message, logAttrs...)
	default:
		LogError(nil, "Unknown error status", append(logAttrs, "originalMessage", message)...)
	}
	return apis.NewApiError(status, message, errData)
}

// InitErrorHandler - global component
func InitErrorHandler(app *pocketbase.PocketBase) {
	errHandler = NewErrorHandler(app)
	LogInfo("ErrorHandler initialized")
}

func apiError(status int, message string, errData interface{}, attrs ...interface{}) error {
	if errHandler == nil {
		// hooks can fire from tests and CLI commands before InitErrorHandler
		return (&ErrorHandler{}).Error(status, message, errData, attrs...)
	}
	return errHandler.Error(status, message, errData, attrs...)
}

// BadRequestError - Validations
func BadRequestError(message string, errData interface{}, attrs ...interface{}) error {
	return apiError(http.StatusBadRequest, message, errData, attrs...)
}

// UnauthorizedError - Invalid credentials
func UnauthorizedError(message string, errData interface{}, attrs ...interface{}) error {
	return apiError(http.StatusUnauthorized, message, errData, attrs...)
}

// ForbiddenError - User not authorized
func ForbiddenError(message string, errData interface{}, attrs ...interface{}) error {
	return apiError(http.StatusForbidden, message, errData, attrs...)
}

// NotFoundError - Resource not found
func NotFoundError(message string, errData interface{}, attrs ...interface{}) error {
	return apiError(http.StatusNotFound, message, errData, attrs...)
}

// InternalServerError - Internal errors (database, unknown exceptions)
func InternalServerError(message string, errData interface{}, attrs ...interface{}) error {
	return apiError(http.StatusInternalServerError, message, errData, attrs...)
}

// ValidationError turns ozzo validation errors into a 400 carrying the per-field messages.
// Any other error is reported as an internal error.
func ValidationError(message string, err error, attrs ...interface{}) error {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		return BadRequestError(message, fieldErrs, attrs...)
	}
	var single validation.Error
	if errors.As(err, &single) {
		return BadRequestError(message, single, attrs...)
	}
	return InternalServerError(message, err, attrs...)
}
