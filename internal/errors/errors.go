package errors

import (
	"errors"
	"fmt"
)

// AppError is the classified error type used throughout the core. It wraps
// the underlying cause so callers can branch on Code while logs keep the
// original failure.
type AppError struct {
	Code    ErrorCode  `json:"code"`
	Message string     `json:"message"`
	Reason  MintReason `json:"reason,omitempty"`
	Err     error      `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is/As chains
func (e *AppError) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status code for this error
func (e *AppError) Status() int {
	return e.Code.StatusCode()
}

// NotConfigured creates a NOT_CONFIGURED error for a missing collaborator
// or setting. Fatal to the calling operation, never retried.
func NotConfigured(what string) *AppError {
	return &AppError{
		Code:    ErrNotConfigured,
		Message: fmt.Sprintf("%s is not configured", what),
	}
}

// RateLimited creates a RATE_LIMITED error. Transient; absorbed by the
// queue cooldown and cache fallback rather than surfaced to callers.
func RateLimited(err error) *AppError {
	return &AppError{
		Code:    ErrRateLimited,
		Message: "remote ledger rate limit exceeded",
		Err:     err,
	}
}

// ScanTimedOut creates a SCAN_TIMED_OUT error. Soft failure: callers
// receive an empty result, not this error, so the UI stays responsive.
func ScanTimedOut(collection string) *AppError {
	return &AppError{
		Code:    ErrScanTimedOut,
		Message: fmt.Sprintf("collection scan for %s timed out", collection),
	}
}

// ScanFailed creates a SCAN_FAILED error after fallbacks are exhausted.
func ScanFailed(err error) *AppError {
	return &AppError{
		Code:    ErrScanFailed,
		Message: "collection scan failed, try again later",
		Err:     err,
	}
}

// UploadFailed creates an UPLOAD_FAILED error. Non-terminal: content
// creation continues without an image.
func UploadFailed(err error) *AppError {
	return &AppError{
		Code:    ErrUploadFailed,
		Message: "image upload failed",
		Err:     err,
	}
}

// NotFound creates a NOT_FOUND error
func NotFound(resource string) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// ValidationError creates a VALIDATION_ERROR
func ValidationError(err error) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: err.Error(),
		Err:     err,
	}
}

// BadRequest creates a BAD_REQUEST error
func BadRequest(message string) *AppError {
	return &AppError{
		Code:    ErrBadRequest,
		Message: message,
	}
}

// AlreadyExists creates an ALREADY_EXISTS error
func AlreadyExists(resource string) *AppError {
	return &AppError{
		Code:    ErrAlreadyExists,
		Message: fmt.Sprintf("%s already exists", resource),
	}
}

// InternalError creates an INTERNAL_ERROR
func InternalError(err error) *AppError {
	return &AppError{
		Code:    ErrInternalError,
		Message: "internal error",
		Err:     err,
	}
}

var mintMessages = map[MintReason]string{
	MintInsufficientFunds: "mint failed: your wallet has insufficient funds for this transaction",
	MintUserRejected:      "mint failed: the transaction was rejected in your wallet",
	MintNetworkCongestion: "mint failed: the network is congested, try again in a moment",
	MintSigningFailed:     "mint failed: the transaction could not be signed",
	MintUnknown:           "mint failed: the transaction could not be completed",
}

// MintFailed creates a MINT_FAILED error carrying a sub-classified reason
// with a reason-specific user-facing message.
func MintFailed(reason MintReason, err error) *AppError {
	msg, ok := mintMessages[reason]
	if !ok {
		reason = MintUnknown
		msg = mintMessages[MintUnknown]
	}
	return &AppError{
		Code:    ErrMintFailed,
		Message: msg,
		Reason:  reason,
		Err:     err,
	}
}

// IsCode reports whether err is (or wraps) an AppError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// AsAppError extracts an AppError from err, or wraps err as INTERNAL_ERROR.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return InternalError(err)
}
