package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		err    *AppError
		status int
	}{
		{NotConfigured("collection"), http.StatusServiceUnavailable},
		{RateLimited(nil), http.StatusTooManyRequests},
		{ScanTimedOut("col"), http.StatusGatewayTimeout},
		{ScanFailed(nil), http.StatusBadGateway},
		{UploadFailed(nil), http.StatusBadGateway},
		{MintFailed(MintUnknown, nil), http.StatusBadGateway},
		{NotFound("post"), http.StatusNotFound},
		{ValidationError(fmt.Errorf("bad")), http.StatusUnprocessableEntity},
		{AlreadyExists("profile"), http.StatusConflict},
		{InternalError(fmt.Errorf("boom")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.err.Status(), string(tt.err.Code))
	}
}

func TestIsCodeUnwrapsChains(t *testing.T) {
	inner := RateLimited(fmt.Errorf("429"))
	wrapped := fmt.Errorf("scan: %w", inner)

	assert.True(t, IsCode(wrapped, ErrRateLimited))
	assert.False(t, IsCode(wrapped, ErrScanFailed))
	assert.False(t, IsCode(nil, ErrRateLimited))
	assert.False(t, IsCode(fmt.Errorf("plain"), ErrRateLimited))
}

func TestMintFailedMessagesDiffer(t *testing.T) {
	reasons := []MintReason{
		MintInsufficientFunds,
		MintUserRejected,
		MintNetworkCongestion,
		MintSigningFailed,
		MintUnknown,
	}

	seen := map[string]bool{}
	for _, reason := range reasons {
		err := MintFailed(reason, nil)
		assert.Equal(t, ErrMintFailed, err.Code)
		assert.Equal(t, reason, err.Reason)
		assert.False(t, seen[err.Message], "message for %s reused", reason)
		seen[err.Message] = true
	}

	// Unmapped reasons collapse to the unknown message.
	err := MintFailed(MintReason("EXOTIC"), nil)
	assert.Equal(t, MintUnknown, err.Reason)
}

func TestAsAppErrorWrapsForeignErrors(t *testing.T) {
	appErr := AsAppError(fmt.Errorf("disk on fire"))
	require.NotNil(t, appErr)
	assert.Equal(t, ErrInternalError, appErr.Code)

	original := NotFound("post")
	assert.Same(t, original, AsAppError(original))
	assert.Same(t, original, AsAppError(fmt.Errorf("handler: %w", original)))
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := ScanFailed(cause)
	assert.Equal(t, cause, err.Unwrap())
	assert.Contains(t, err.Error(), "root cause")
}
