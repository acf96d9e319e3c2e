package stranderrs

// ValidationError represents identifier or input validation errors.
// Validation errors are raised synchronously, before any backend I/O.
type ValidationError struct {
	*BaseError
	field string
	value any
}

// NewValidationError creates a new validation error.
func NewValidationError(code ErrorCode, message string, field string, value any) *ValidationError {
	err := &ValidationError{
		BaseError: NewBaseError(CategoryValidation, code, message, nil),
		field:     field,
		value:     value,
	}
	err.WithMetadata("field", field)
	err.WithMetadata("value", value)

	return err
}

// Field returns the validation field name.
func (e *ValidationError) Field() string {
	return e.field
}

// Value returns the rejected value.
func (e *ValidationError) Value() any {
	return e.value
}

// SessionError represents session persistence errors.
type SessionError struct {
	*BaseError
}

// NewSessionError creates a new session error.
func NewSessionError(code ErrorCode, message string, cause error) *SessionError {
	return &SessionError{
		BaseError: NewBaseError(CategorySession, code, message, cause),
	}
}

// WithSessionID adds session id metadata to the error.
func (e *SessionError) WithSessionID(sessionID string) *SessionError {
	e.WithMetadata("session_id", sessionID)

	return e
}

// WithAgentID adds agent id metadata to the error.
func (e *SessionError) WithAgentID(agentID string) *SessionError {
	e.WithMetadata("agent_id", agentID)

	return e
}

// ToolError represents tool registry and execution errors.
type ToolError struct {
	*BaseError
	toolName string
}

// NewToolError creates a new tool error.
func NewToolError(code ErrorCode, message string, cause error, toolName string) *ToolError {
	err := &ToolError{
		BaseError: NewBaseError(CategoryTool, code, message, cause),
		toolName:  toolName,
	}
	err.WithMetadata("tool_name", toolName)

	return err
}

// ToolName returns the tool the error belongs to.
func (e *ToolError) ToolName() string {
	return e.toolName
}

// ModelError represents model adapter failures. The event loop does not
// recover these; they propagate to the caller unchanged.
type ModelError struct {
	*BaseError
}

// NewModelError creates a new model error.
func NewModelError(code ErrorCode, message string, cause error) *ModelError {
	return &ModelError{
		BaseError: NewBaseError(CategoryModel, code, message, cause),
	}
}

// InterruptError represents interrupt/resume bookkeeping errors, such as
// resuming with an id that matches no pending interrupt.
type InterruptError struct {
	*BaseError
	interruptID string
}

// NewInterruptError creates a new interrupt error.
func NewInterruptError(code ErrorCode, message string, interruptID string) *InterruptError {
	err := &InterruptError{
		BaseError:   NewBaseError(CategoryInterrupt, code, message, nil),
		interruptID: interruptID,
	}
	err.WithMetadata("interrupt_id", interruptID)

	return err
}

// InterruptID returns the offending interrupt id, if any.
func (e *InterruptError) InterruptID() string {
	return e.interruptID
}

// ConfigError represents agent configuration errors.
type ConfigError struct {
	*BaseError
}

// NewConfigError creates a new config error.
func NewConfigError(code ErrorCode, message string, cause error) *ConfigError {
	return &ConfigError{
		BaseError: NewBaseError(CategoryConfig, code, message, cause),
	}
}
