package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error so the transport layer can pick a status code
// without inspecting messages.
type Kind int

const (
	// KindUnknown is any error that was not produced by this package
	KindUnknown Kind = iota
	// KindValidation means client input broke a business rule
	KindValidation
	// KindNotFound means the requested record does not exist
	KindNotFound
	// KindDataAccess means the database call itself failed
	KindDataAccess
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindDataAccess:
		return "data_access"
	default:
		return "unknown"
	}
}

// Common errors
var (
	// ErrNotFound is returned when an entity is not found
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateEntry is returned when a unique constraint rejects a write
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")

	// ErrConstraint is returned when any other database constraint is violated
	ErrConstraint = errors.New("constraint violation")

	// ErrConnection is returned when the database cannot be reached
	ErrConnection = errors.New("database connection error")

	// ErrTimeout is returned when an operation times out
	ErrTimeout = errors.New("operation timeout")
)

// Error is a classified error with optional operation context
type Error struct {
	Kind    Kind
	Op      string // Operation that failed
	Entity  string // Entity or table name
	ID      string // Entity ID (if applicable)
	Message string // Human-readable message, safe to return to clients for validation errors
	Err     error  // Underlying error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}

	if e.ID != "" {
		return fmt.Sprintf("%s %s operation failed for ID %s: %v", e.Entity, e.Op, e.ID, e.Err)
	}

	if e.Entity != "" {
		return fmt.Sprintf("%s %s operation failed: %v", e.Entity, e.Op, e.Err)
	}

	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// Validation creates a validation error carrying a client-facing message
func Validation(message string) *Error {
	return &Error{
		Kind:    KindValidation,
		Op:      "validate",
		Message: message,
		Err:     ErrValidation,
	}
}

// NotFound creates a "not found" error
func NotFound(entity, id string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Op:      "get",
		Entity:  entity,
		ID:      id,
		Message: fmt.Sprintf("%s with ID %s not found", entity, id),
		Err:     ErrNotFound,
	}
}

// DataAccess wraps a failed database call. cause is one of the sentinel
// errors above when the failure could be classified, otherwise nil.
func DataAccess(op, entity string, cause, err error) *Error {
	if cause != nil && err != nil {
		err = fmt.Errorf("%w: %w", cause, err)
	} else if cause != nil {
		err = cause
	}
	return &Error{
		Kind:   KindDataAccess,
		Op:     op,
		Entity: entity,
		Err:    err,
	}
}

// KindOf returns the kind of the first *Error in err's chain
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// MessageOf returns the client-facing message of a classified error
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return ""
}

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound || errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

// IsDataAccess checks if an error came from the database layer
func IsDataAccess(err error) bool {
	return KindOf(err) == KindDataAccess
}

// IsDuplicate checks if an error is a "duplicate entry" error
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicateEntry)
}
