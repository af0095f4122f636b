package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound                  = "NOT_FOUND"
	CodeBadRequest                = "BAD_REQUEST"
	CodeUnauthorized              = "UNAUTHORIZED"
	CodeForbidden                 = "FORBIDDEN"
	CodeConflict                  = "CONFLICT"
	CodeInternal                  = "INTERNAL_ERROR"
	CodeTooManyRequests           = "TOO_MANY_REQUESTS"
	CodePaymentRequired           = "PAYMENT_REQUIRED"
	CodeBadGateway                = "BAD_GATEWAY"
	CodePaymentVerificationFailed = "PAYMENT_VERIFICATION_FAILED"
	CodeValidation                = "VALIDATION_ERROR"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Details map[string]interface{}
	Err     error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail returns a copy of e carrying an extra detail key.
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	cp := *e
	cp.Details = make(map[string]interface{}, len(e.Details)+1)
	for k, v := range e.Details {
		cp.Details[k] = v
	}
	cp.Details[key] = value
	return &cp
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound, err)
}

func BadRequest(message string, err error) *AppError {
	return New(CodeBadRequest, message, http.StatusBadRequest, err)
}

func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest, nil)
}

// Unauthorized always tells the client where to sign in.
func Unauthorized(message string, err error) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized, err).WithDetail("redirect_to", "/auth")
}

func Forbidden(message string, err error) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden, err)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message, http.StatusConflict, nil)
}

func Internal(message string, err error) *AppError {
	return New(CodeInternal, message, http.StatusInternalServerError, err)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequests, message, http.StatusTooManyRequests, nil)
}

func PaymentRequired(message string) *AppError {
	return New(CodePaymentRequired, message, http.StatusPaymentRequired, nil)
}

func BadGateway(message string, err error) *AppError {
	return New(CodeBadGateway, message, http.StatusBadGateway, err)
}

func PaymentVerificationFailed(err error) *AppError {
	return New(CodePaymentVerificationFailed, "Payment verification failed", http.StatusBadRequest, err)
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
