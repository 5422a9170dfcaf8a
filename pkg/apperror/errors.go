package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes. Callers branch on these instead of message text.
const (
	CodeMalformedHeader    = "AUTH_001"
	CodeInvalidCredentials = "AUTH_002"

	CodeUpstreamNotFound = "UPS_001"
	CodeUpstreamFailed   = "UPS_002"

	CodeUnsupportedPair = "CONV_001"

	CodeUnauthorized  = "ORD_001"
	CodeInvalidOrder  = "ORD_002"
	CodePaymentFailed = "ORD_003"

	CodeValidation        = "VAL_001"
	CodePayloadTooLarge   = "VAL_002"
	CodeRateLimitExceeded = "RATE_001"
	CodeInternal          = "SYS_001"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code           string `json:"error_code"`
	Message        string `json:"message"`
	HTTPStatus     int    `json:"-"`
	UpstreamStatus int    `json:"upstream_status,omitempty"` // Status reported by an upstream service, 0 if none was received
	Err            error  `json:"-"`                         // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// HasCode reports whether err is (or wraps) an AppError with the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// ---- Authorization gate (AUTH) ----

func ErrMalformedHeader() *AppError {
	return New(CodeMalformedHeader, "Invalid token", http.StatusForbidden)
}

func ErrInvalidCredentials() *AppError {
	return New(CodeInvalidCredentials, "Invalid credentials", http.StatusUnauthorized)
}

// ---- Upstream services (UPS) ----

func ErrUpstreamNotFound(entity string) *AppError {
	return &AppError{
		Code:           CodeUpstreamNotFound,
		Message:        fmt.Sprintf("%s not found", entity),
		HTTPStatus:     http.StatusNotFound,
		UpstreamStatus: http.StatusNotFound,
	}
}

// ErrUpstreamFailed reports a failed upstream call. status is 0 when the
// upstream never produced a response (network error, timeout, bad payload).
func ErrUpstreamFailed(what string, status int, err error) *AppError {
	msg := fmt.Sprintf("Error querying %s", what)
	if status != 0 {
		msg = fmt.Sprintf("Error querying %s (upstream status %d)", what, status)
	}
	return &AppError{
		Code:           CodeUpstreamFailed,
		Message:        msg,
		HTTPStatus:     http.StatusBadGateway,
		UpstreamStatus: status,
		Err:            err,
	}
}

// ---- Currency conversion (CONV) ----

func ErrUnsupportedPair(source, target string) *AppError {
	return New(CodeUnsupportedPair, fmt.Sprintf("Conversion %s to %s is not supported", source, target), http.StatusBadRequest)
}

// ---- Order settlement (ORD) ----

func ErrUnauthorized() *AppError {
	return New(CodeUnauthorized, "Missing or invalid credential", http.StatusUnauthorized)
}

func ErrInvalidOrder(reason string) *AppError {
	return New(CodeInvalidOrder, reason, http.StatusBadRequest)
}

func ErrPaymentFailed(err error) *AppError {
	return Wrap(CodePaymentFailed, fmt.Sprintf("Error processing payment: %v", err), http.StatusBadGateway, err)
}

// ErrPayloadTooLarge rejects a request body over the configured limit.
func ErrPayloadTooLarge() *AppError {
	return New(CodePayloadTooLarge, "Request body too large", http.StatusRequestEntityTooLarge)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimitExceeded, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}
