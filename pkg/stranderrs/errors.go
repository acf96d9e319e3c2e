// Package stranderrs provides the error handling framework for the Strands
// agent SDK. It defines error categories, codes, and utilities so that
// callers can distinguish validation failures, storage conflicts, tool
// failures, and interrupt bookkeeping errors without string matching.
package stranderrs

import (
	"errors"
	"fmt"
	"maps"
)

// ErrorCategory represents different categories of errors that can occur
// in the Strands SDK.
type ErrorCategory string

const (
	// CategoryValidation represents identifier and input validation errors.
	CategoryValidation ErrorCategory = "validation"
	// CategorySession represents session persistence errors.
	CategorySession ErrorCategory = "session"
	// CategoryTool represents tool registry and execution errors.
	CategoryTool ErrorCategory = "tool"
	// CategoryModel represents model adapter errors.
	CategoryModel ErrorCategory = "model"
	// CategoryInterrupt represents interrupt/resume bookkeeping errors.
	CategoryInterrupt ErrorCategory = "interrupt"
	// CategoryConfig represents agent configuration errors.
	CategoryConfig ErrorCategory = "config"
)

// ErrorCode represents specific error codes within each category.
type ErrorCode string

// Validation error codes.
const (
	ErrCodeInvalidIdentifier   ErrorCode = "invalid_identifier"
	ErrCodeInvalidMessageIndex ErrorCode = "invalid_message_index"
	ErrCodeInvalidInput        ErrorCode = "invalid_input"
	ErrCodeInvalidFormat       ErrorCode = "invalid_format"
)

// Session error codes.
const (
	ErrCodeSessionConflict   ErrorCode = "session_conflict"
	ErrCodeNotFoundForUpdate ErrorCode = "not_found_for_update"
	ErrCodeStorageFailure    ErrorCode = "storage_failure"
)

// Tool error codes.
const (
	ErrCodeToolNotFound      ErrorCode = "tool_not_found"
	ErrCodeToolDuplicate     ErrorCode = "tool_duplicate"
	ErrCodeToolInputInvalid  ErrorCode = "tool_input_invalid"
	ErrCodeToolExecFailed    ErrorCode = "tool_exec_failed"
	ErrCodeToolSchemaInvalid ErrorCode = "tool_schema_invalid"
)

// Model error codes.
const (
	ErrCodeModelFailure      ErrorCode = "model_failure"
	ErrCodeMaxCyclesExceeded ErrorCode = "max_cycles_exceeded"
)

// Interrupt error codes.
const (
	ErrCodeUnmatchedResponse ErrorCode = "unmatched_response"
	ErrCodeInterruptPending  ErrorCode = "interrupt_pending"
	ErrCodeNothingToResume   ErrorCode = "nothing_to_resume"
)

// Config error codes.
const (
	ErrCodeMissingModel  ErrorCode = "missing_model"
	ErrCodeInvalidOption ErrorCode = "invalid_option"
)

// SDKError represents the base interface for all SDK errors.
type SDKError interface {
	error
	// Code returns the error code.
	Code() ErrorCode
	// Category returns the error category.
	Category() ErrorCategory
	// Unwrap returns the underlying error.
	Unwrap() error
	// Metadata returns additional error metadata.
	Metadata() map[string]any
}

// BaseError provides the base implementation for SDK errors.
type BaseError struct {
	code     ErrorCode
	category ErrorCategory
	message  string
	cause    error
	metadata map[string]any
}

// NewBaseError creates a new base error.
func NewBaseError(
	category ErrorCategory,
	code ErrorCode,
	message string,
	cause error,
) *BaseError {
	return &BaseError{
		code:     code,
		category: category,
		message:  message,
		cause:    cause,
		metadata: make(map[string]any),
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.category, e.message, e.cause)
	}

	return fmt.Sprintf("%s: %s", e.category, e.message)
}

// Code returns the error code.
func (e *BaseError) Code() ErrorCode {
	return e.code
}

// Category returns the error category.
func (e *BaseError) Category() ErrorCategory {
	return e.category
}

// Unwrap returns the underlying error.
func (e *BaseError) Unwrap() error {
	return e.cause
}

// Metadata returns the error metadata.
func (e *BaseError) Metadata() map[string]any {
	return e.metadata
}

// WithMetadata adds metadata to the error.
func (e *BaseError) WithMetadata(key string, value any) *BaseError {
	e.metadata[key] = value

	return e
}

// WithMetadataMap adds multiple metadata items to the error.
func (e *BaseError) WithMetadataMap(metadata map[string]any) *BaseError {
	maps.Copy(e.metadata, metadata)

	return e
}

// AsSDKError extracts an SDKError from the error chain.
func AsSDKError(err error) (SDKError, bool) {
	var sdkErr SDKError
	if errors.As(err, &sdkErr) {
		return sdkErr, true
	}

	return nil, false
}

// HasCode reports whether the error chain carries the given code.
func HasCode(err error, code ErrorCode) bool {
	if sdkErr, ok := AsSDKError(err); ok {
		return sdkErr.Code() == code
	}

	return false
}

// IsValidationError checks if the error is a validation error.
func IsValidationError(err error) bool {
	if sdkErr, ok := AsSDKError(err); ok {
		return sdkErr.Category() == CategoryValidation
	}

	return false
}

// IsSessionError checks if the error is a session persistence error.
func IsSessionError(err error) bool {
	if sdkErr, ok := AsSDKError(err); ok {
		return sdkErr.Category() == CategorySession
	}

	return false
}

// IsSessionConflict checks if the error is a create-on-existing conflict.
func IsSessionConflict(err error) bool {
	return HasCode(err, ErrCodeSessionConflict)
}

// IsNotFoundForUpdate checks if the error marks an update of a missing record.
func IsNotFoundForUpdate(err error) bool {
	return HasCode(err, ErrCodeNotFoundForUpdate)
}

// IsToolError checks if the error is a tool error.
func IsToolError(err error) bool {
	if sdkErr, ok := AsSDKError(err); ok {
		return sdkErr.Category() == CategoryTool
	}

	return false
}

// IsModelError checks if the error is a model adapter error.
func IsModelError(err error) bool {
	if sdkErr, ok := AsSDKError(err); ok {
		return sdkErr.Category() == CategoryModel
	}

	return false
}

// IsInterruptError checks if the error is an interrupt bookkeeping error.
func IsInterruptError(err error) bool {
	if sdkErr, ok := AsSDKError(err); ok {
		return sdkErr.Category() == CategoryInterrupt
	}

	return false
}

// IsUnmatchedResponse checks if the error marks a resume response whose
// interrupt id matched no pending interrupt.
func IsUnmatchedResponse(err error) bool {
	return HasCode(err, ErrCodeUnmatchedResponse)
}
