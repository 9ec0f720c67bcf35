package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/giquina/armora-sub001/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

var statusByCode = map[string]int{
	apperrors.CodeInvalidInput:        http.StatusBadRequest,
	apperrors.CodeNotFound:            http.StatusNotFound,
	apperrors.CodeDraftFrozen:         http.StatusConflict,
	apperrors.CodeDraftConsumed:       http.StatusConflict,
	apperrors.CodeDraftReplaced:       http.StatusConflict,
	apperrors.CodeNotSubmittable:      http.StatusUnprocessableEntity,
	apperrors.CodePaymentFailed:       http.StatusPaymentRequired,
	apperrors.CodeSubmissionCancelled: http.StatusConflict,
	apperrors.CodeStorage:             http.StatusServiceUnavailable,
	apperrors.CodeHistory:             http.StatusServiceUnavailable,
	apperrors.CodeInvalidCredentials:  http.StatusUnauthorized,
	apperrors.CodeInvalidToken:        http.StatusUnauthorized,
	apperrors.CodeEmailExists:         http.StatusConflict,
	apperrors.CodeUserNotFound:        http.StatusNotFound,
}

// fromAppError maps a domain failure onto its transport status. Unknown codes
// are reported as internal errors without leaking the message.
func fromAppError(err error) *HTTPError {
	code := apperrors.CodeOf(err)
	status, ok := statusByCode[code]
	if !ok {
		return NewHTTPError(http.StatusInternalServerError, "internal_error", "something went wrong", err)
	}
	message := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	return NewHTTPError(status, code, message, err)
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return fromAppError(err)
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func abortWithAppError(c *gin.Context, err error) {
	abortWithError(c, fromAppError(err))
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
