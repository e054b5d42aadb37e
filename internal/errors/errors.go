package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrNotFound       ErrorType = "NOT_FOUND"
	ErrInvalidInput   ErrorType = "INVALID_INPUT"
	ErrEmptyInput     ErrorType = "EMPTY_INPUT"
	ErrCallerContract ErrorType = "CALLER_CONTRACT"
	ErrInternal       ErrorType = "INTERNAL"
)

// AppError represents an application error. Stage names the pipeline stage
// that produced it (fetch, parse, merge, aggregate) when known.
type AppError struct {
	Type      ErrorType
	Stage     string
	Message   string
	Cause     error
	Timestamp time.Time
}

func (e *AppError) Error() string {
	msg := e.Message
	if e.Stage != "" {
		msg = fmt.Sprintf("[%s] %s", e.Stage, msg)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, msg)
}

// Unwrap returns the underlying cause, if any.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:      errType,
		Message:   message,
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// WithStage annotates the error with the pipeline stage that produced it.
func (e *AppError) WithStage(stage string) *AppError {
	e.Stage = stage
	return e
}

func isType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return isType(err, ErrNotFound)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return isType(err, ErrInvalidInput)
}

// IsEmptyInput checks if the error is an empty input error
func IsEmptyInput(err error) bool {
	return isType(err, ErrEmptyInput)
}

// IsCallerContract checks if the error is a caller contract violation
func IsCallerContract(err error) bool {
	return isType(err, ErrCallerContract)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, err error) *AppError {
	return New(ErrNotFound, message, err)
}

// NewValidationError creates a new validation error
func NewValidationError(message string, err error) *AppError {
	return New(ErrInvalidInput, message, err)
}

// NewEmptyInputError creates a new empty input error. Callers are expected to
// branch on the empty case before invoking the operation; this error marks
// the ones that did not.
func NewEmptyInputError(message string) *AppError {
	return New(ErrEmptyInput, message, nil)
}

// NewCallerContractError creates an error for contract violations that
// indicate a programming error upstream, not a data error.
func NewCallerContractError(message string) *AppError {
	return New(ErrCallerContract, message, nil)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return New(ErrInternal, message, err)
}

// RevisionValidationError represents a malformed commit record. It is fatal
// to the current run; records are never partially accepted.
type RevisionValidationError struct {
	Revision int64
	Field    string
	Reason   string
}

func (e *RevisionValidationError) Error() string {
	return fmt.Sprintf("invalid commit record r%d: %s %s", e.Revision, e.Field, e.Reason)
}

// NewRevisionValidationError creates a validation error naming the offending
// revision and field.
func NewRevisionValidationError(revision int64, field, reason string) *AppError {
	return New(ErrInvalidInput, "commit record validation failed",
		&RevisionValidationError{Revision: revision, Field: field, Reason: reason})
}

// SyncInProgressError represents an error when a sync operation is already in progress
type SyncInProgressError struct {
	RepositoryURL string
}

func (e *SyncInProgressError) Error() string {
	return fmt.Sprintf("sync already in progress for repository: %s", e.RepositoryURL)
}

// NewSyncInProgressError creates a new SyncInProgressError
func NewSyncInProgressError(repoURL string) error {
	return &SyncInProgressError{
		RepositoryURL: repoURL,
	}
}
