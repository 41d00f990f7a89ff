package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes. ESC_* codes are the escrow ledger's error taxonomy.
const (
	CodeDuplicateRequest = "ESC_001"
	CodeNotFound         = "ESC_002"
	CodeInvalidState     = "ESC_003"
	CodeInvalidAmount    = "ESC_004"
	CodeInvalidSplit     = "ESC_005"
	CodeUnauthorized     = "ESC_006"
	CodeCustodianFailure = "ESC_007"

	CodeInvalidToken      = "AUTH_001"
	CodeRateLimitExceeded = "RATE_001"
	CodeValidation        = "REQ_001"
	CodeInternal          = "SYS_001"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
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

// Is reports whether err is an AppError carrying the given code.
func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// ---- Escrow ledger (ESC) ----

func ErrDuplicateRequest(requestID string) *AppError {
	return New(CodeDuplicateRequest, fmt.Sprintf("escrow %q already exists", requestID), http.StatusConflict)
}

func ErrNotFound(entity string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrInvalidState(message string) *AppError {
	return New(CodeInvalidState, message, http.StatusConflict)
}

func ErrInvalidAmount() *AppError {
	return New(CodeInvalidAmount, "Amount must be greater than zero", http.StatusBadRequest)
}

func ErrInvalidSplit(message string) *AppError {
	return New(CodeInvalidSplit, message, http.StatusBadRequest)
}

func ErrUnauthorized(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusForbidden)
}

// ErrCustodianFailure reports that the payment side effect failed and the
// transition was not committed.
func ErrCustodianFailure(err error) *AppError {
	return Wrap(CodeCustodianFailure, "Payment custodian failure", http.StatusBadGateway, err)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimitExceeded, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}
