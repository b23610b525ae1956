// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeScorecardUnavailable ErrorCode = "SCORECARD_UNAVAILABLE"
	ErrCodeScorecardTimeout     ErrorCode = "SCORECARD_TIMEOUT"

	ErrCodeIndexQueryFailed ErrorCode = "INDEX_QUERY_FAILED"
	ErrCodeIndexNotFound    ErrorCode = "INDEX_NOT_FOUND"

	ErrCodeInvalidSearchInput ErrorCode = "INVALID_SEARCH_INPUT"
	ErrCodeInvalidProfile     ErrorCode = "INVALID_PROFILE"

	ErrCodeDocumentUnreadable ErrorCode = "DOCUMENT_UNREADABLE"
	ErrCodeExportFailed       ErrorCode = "EXPORT_FAILED"

	ErrCodeBrokerUnavailable ErrorCode = "BROKER_UNAVAILABLE"

	ErrCodeParseError    ErrorCode = "PARSE_ERROR"
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata attaches a key to the error and returns it.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message string, cause error, retryable bool) *StandardError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewScorecardUnavailableError covers transport failures and non-2xx answers.
func NewScorecardUnavailableError(err error) *StandardError {
	return newError(ErrCodeScorecardUnavailable, "Scorecard search failed", err, true)
}

func NewScorecardTimeoutError(err error) *StandardError {
	return newError(ErrCodeScorecardTimeout, "Scorecard search timed out", err, true)
}

func NewIndexQueryFailedError(err error) *StandardError {
	return newError(ErrCodeIndexQueryFailed, "Index search failed", err, true)
}

func NewIndexNotFoundError(err error) *StandardError {
	return newError(ErrCodeIndexNotFound, "Search index not found", err, false)
}

func NewInvalidSearchInputError(err error) *StandardError {
	return newError(ErrCodeInvalidSearchInput, "Invalid search input", err, false)
}

func NewInvalidProfileError(err error) *StandardError {
	return newError(ErrCodeInvalidProfile, "Invalid applicant profile", err, false)
}

// NewDocumentUnreadableError is informational: document scoring degrades
// instead of failing, but the code is carried in its details.
func NewDocumentUnreadableError(err error) *StandardError {
	return newError(ErrCodeDocumentUnreadable, "Document could not be read", err, false)
}

func NewExportFailedError(err error) *StandardError {
	return newError(ErrCodeExportFailed, "Export failed", err, false)
}

// NewBrokerUnavailableError wraps failed Zeebe gateway calls.
func NewBrokerUnavailableError(err error) *StandardError {
	return newError(ErrCodeBrokerUnavailable, "Workflow broker unavailable", err, true)
}

func NewParseError(err error) *StandardError {
	return newError(ErrCodeParseError, "Job variables could not be parsed", err, false)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternalError, "Unexpected error", err, false)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes. They are
// identical today; the indirection lets process models rename codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeScorecardUnavailable: "SCORECARD_UNAVAILABLE",
	ErrCodeScorecardTimeout:     "SCORECARD_TIMEOUT",
	ErrCodeIndexQueryFailed:     "INDEX_QUERY_FAILED",
	ErrCodeIndexNotFound:        "INDEX_NOT_FOUND",
	ErrCodeInvalidSearchInput:   "INVALID_SEARCH_INPUT",
	ErrCodeInvalidProfile:       "INVALID_PROFILE",
	ErrCodeDocumentUnreadable:   "DOCUMENT_UNREADABLE",
	ErrCodeExportFailed:         "EXPORT_FAILED",
	ErrCodeBrokerUnavailable:    "BROKER_UNAVAILABLE",
	ErrCodeParseError:           "PARSE_ERROR",
	ErrCodeInternalError:        "INTERNAL_ERROR",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeScorecardUnavailable,
		ErrCodeIndexQueryFailed:
		return 3

	case ErrCodeScorecardTimeout,
		ErrCodeBrokerUnavailable:
		return 2

	default:
		return 0 // input and business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// AsStandardError finds a StandardError anywhere in err's chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "SCORECARD"):
		return "UPSTREAM"
	case strings.HasPrefix(codeStr, "INDEX"):
		return "SEARCH"
	case strings.HasPrefix(codeStr, "INVALID") || code == ErrCodeParseError:
		return "VALIDATION"
	case strings.HasPrefix(codeStr, "DOCUMENT"):
		return "DOCUMENT"
	case strings.HasPrefix(codeStr, "EXPORT"):
		return "EXPORT"
	default:
		return "OTHER"
	}
}
