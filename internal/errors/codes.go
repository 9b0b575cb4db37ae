package errors

import "net/http"

// ErrorCode represents the type of error
type ErrorCode string

const (
	ErrNotConfigured ErrorCode = "NOT_CONFIGURED"
	ErrRateLimited   ErrorCode = "RATE_LIMITED"
	ErrScanTimedOut  ErrorCode = "SCAN_TIMED_OUT"
	ErrScanFailed    ErrorCode = "SCAN_FAILED"
	ErrUploadFailed  ErrorCode = "UPLOAD_FAILED"
	ErrMintFailed    ErrorCode = "MINT_FAILED"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrValidation    ErrorCode = "VALIDATION_ERROR"
	ErrBadRequest    ErrorCode = "BAD_REQUEST"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrInternalError ErrorCode = "INTERNAL_ERROR"
)

// MintReason sub-classifies a MINT_FAILED error so each failure mode maps
// to a distinct user-facing message.
type MintReason string

const (
	MintInsufficientFunds MintReason = "INSUFFICIENT_FUNDS"
	MintUserRejected      MintReason = "USER_REJECTED"
	MintNetworkCongestion MintReason = "NETWORK_CONGESTION"
	MintSigningFailed     MintReason = "SIGNING_FAILED"
	MintUnknown           MintReason = "UNKNOWN"
)

// StatusCodeMap maps ErrorCode to HTTP status code
var StatusCodeMap = map[ErrorCode]int{
	ErrNotConfigured: http.StatusServiceUnavailable,
	ErrRateLimited:   http.StatusTooManyRequests,
	ErrScanTimedOut:  http.StatusGatewayTimeout,
	ErrScanFailed:    http.StatusBadGateway,
	ErrUploadFailed:  http.StatusBadGateway,
	ErrMintFailed:    http.StatusBadGateway,
	ErrNotFound:      http.StatusNotFound,
	ErrValidation:    http.StatusUnprocessableEntity,
	ErrBadRequest:    http.StatusBadRequest,
	ErrAlreadyExists: http.StatusConflict,
	ErrInternalError: http.StatusInternalServerError,
}

// StatusCode returns the HTTP status code for this error code
func (e ErrorCode) StatusCode() int {
	if code, ok := StatusCodeMap[e]; ok {
		return code
	}
	return http.StatusInternalServerError
}
