package errors

import (
	"fmt"
	"time"
)

// ErrorCode identifies a class of application error.
type ErrorCode string

const (
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"

	ErrCodeTicketNotFound ErrorCode = "TICKET_NOT_FOUND"
	ErrCodeMalformedID    ErrorCode = "MALFORMED_ID"
	ErrCodeUserBlocked    ErrorCode = "USER_BLOCKED"

	ErrCodeDeliveryFailure ErrorCode = "DELIVERY_FAILURE"
	ErrCodeDirectoryError  ErrorCode = "DIRECTORY_ERROR"
	ErrCodeDatabaseError   ErrorCode = "DATABASE_ERROR"
)

// AppError is the typed application error carried through services.
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Cause     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsNotFound reports whether the error means an id failed to resolve.
// Malformed ids count: callers treat both the same way.
func (e *AppError) IsNotFound() bool {
	return e.Code == ErrCodeTicketNotFound || e.Code == ErrCodeMalformedID
}

func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new application error.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Wrap wraps an existing error with an application code.
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Cause = err
	return appErr
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// NewTicketNotFoundError reports that a well-formed ticket id has no record.
func NewTicketNotFoundError(ticketID string) *AppError {
	return New(ErrCodeTicketNotFound, fmt.Sprintf("Ticket not found: %s", ticketID)).
		WithDetail("ticket_id", ticketID)
}

// NewMalformedIDError reports a ticket id that fails to parse.
func NewMalformedIDError(raw string) *AppError {
	return New(ErrCodeMalformedID, fmt.Sprintf("Malformed ticket id: %q", raw)).
		WithDetail("raw_id", raw)
}

// NewUnauthorizedError reports a non-admin invoking an admin-only action.
func NewUnauthorizedError(userID int64) *AppError {
	return New(ErrCodeUnauthorized, "Unauthorized").
		WithDetail("user_id", userID)
}

// NewDatabaseError wraps a failed store operation.
func NewDatabaseError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeDatabaseError, fmt.Sprintf("Database operation failed: %s", operation)).
		WithDetail("operation", operation)
}

// NewDeliveryError wraps a failed outbound send. Never fatal: the triggering
// store mutation is not rolled back.
func NewDeliveryError(target int64, err error) *AppError {
	return Wrap(err, ErrCodeDeliveryFailure, "Outbound delivery failed").
		WithDetail("chat_id", target)
}

// NewDirectoryError wraps a failed external directory lookup.
func NewDirectoryError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeDirectoryError, fmt.Sprintf("Directory lookup failed: %s", operation)).
		WithDetail("operation", operation)
}

// AsAppError casts err to *AppError when possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if err != nil {
		appErr, _ = err.(*AppError)
	}
	return appErr, appErr != nil
}
