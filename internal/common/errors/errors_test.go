package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	cause := stderrors.New("dial tcp: connection refused")

	tests := []struct {
		name      string
		err       *StandardError
		code      ErrorCode
		retryable bool
		retries   int
	}{
		{"unavailable", NewScorecardUnavailableError(cause), ErrCodeScorecardUnavailable, true, 3},
		{"timeout", NewScorecardTimeoutError(cause), ErrCodeScorecardTimeout, true, 2},
		{"index query", NewIndexQueryFailedError(cause), ErrCodeIndexQueryFailed, true, 3},
		{"index missing", NewIndexNotFoundError(cause), ErrCodeIndexNotFound, false, 0},
		{"search input", NewInvalidSearchInputError(cause), ErrCodeInvalidSearchInput, false, 0},
		{"profile", NewInvalidProfileError(cause), ErrCodeInvalidProfile, false, 0},
		{"export", NewExportFailedError(cause), ErrCodeExportFailed, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.retryable, tt.err.Retryable)
			assert.Equal(t, cause.Error(), tt.err.Details)
			assert.ErrorIs(t, tt.err, cause)

			bpmn := ConvertToBPMNError(tt.err)
			assert.Equal(t, string(tt.code), bpmn.Code)
			assert.Equal(t, tt.retries, bpmn.Retries)
		})
	}
}

func TestNormalize(t *testing.T) {
	wrapped := fmt.Errorf("search-institutions: %w", NewScorecardTimeoutError(stderrors.New("deadline")))
	assert.Equal(t, ErrCodeScorecardTimeout, Normalize(wrapped).Code)

	plain := Normalize(stderrors.New("boom"))
	assert.Equal(t, ErrCodeInternalError, plain.Code)
	assert.False(t, plain.Retryable)
	assert.Equal(t, "boom", plain.Details)
}

func TestShouldRetry(t *testing.T) {
	retryable := NewScorecardUnavailableError(stderrors.New("503"))
	assert.True(t, ShouldRetry(retryable, 3))
	assert.False(t, ShouldRetry(retryable, 0))
	assert.False(t, ShouldRetry(NewInvalidProfileError(stderrors.New("cgpa")), 3))
}

func TestRetriesToUse(t *testing.T) {
	assert.Equal(t, int32(2), RetriesToUse(3, 3))
	assert.Equal(t, int32(0), RetriesToUse(3, 1))
	assert.Equal(t, int32(3), RetriesToUse(3, 5))
}

func TestBPMNErrorVariables(t *testing.T) {
	stdErr := NewInvalidSearchInputError(stderrors.New("radius 7mi")).WithMetadata("field", "radius")

	vars := ConvertToBPMNError(stdErr).ToErrorVariables()

	require.Contains(t, vars, "originalErrorCode")
	assert.Equal(t, "INVALID_SEARCH_INPUT", vars["errorCode"])
	assert.Equal(t, "radius", vars["field"])
	assert.Equal(t, false, vars["retryable"])
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "UPSTREAM", GetErrorCategory(ErrCodeScorecardTimeout))
	assert.Equal(t, "SEARCH", GetErrorCategory(ErrCodeIndexNotFound))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidProfile))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeParseError))
	assert.Equal(t, "DOCUMENT", GetErrorCategory(ErrCodeDocumentUnreadable))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternalError))
	assert.True(t, IsRetryableErrorCode(ErrCodeScorecardUnavailable))
}
