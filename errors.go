package sqlitegen

import (
	"errors"
	"fmt"
)

// Standard sentinel errors returned by generated data-access code.
var (
	// ErrNotFound is returned when a point lookup matches no row.
	ErrNotFound = errors.New("sqlitegen: record not found")

	// ErrInvalidKey is returned by update operations when the primary key
	// of the record is not set (zero, negative or empty).
	ErrInvalidKey = errors.New("sqlitegen: invalid primary key")

	// ErrConsistency is returned when a statement keyed by a column that is
	// assumed unique affects or matches more than one row.
	ErrConsistency = errors.New("sqlitegen: consistency violation")
)

// NotFoundError represents an error when a record is not found.
type NotFoundError struct {
	label string
	key   any // Optional: the key that was searched for
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	if e.key != nil {
		return fmt.Sprintf("sqlitegen: %s not found (key=%v)", e.label, e.key)
	}
	return fmt.Sprintf("sqlitegen: %s not found", e.label)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(notFoundErr, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Label returns the table label.
func (e *NotFoundError) Label() string {
	return e.label
}

// Key returns the key that was searched for, if available.
func (e *NotFoundError) Key() any {
	return e.key
}

// NewNotFoundError returns a new NotFoundError for the given table.
func NewNotFoundError(label string) *NotFoundError {
	return &NotFoundError{label: label}
}

// NewNotFoundErrorWithKey returns a new NotFoundError with the key that was searched for.
func NewNotFoundErrorWithKey(label string, key any) *NotFoundError {
	return &NotFoundError{label: label, key: key}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// InvalidKeyError reports an update attempted on a record whose
// primary key was never assigned.
type InvalidKeyError struct {
	label string
	key   any
}

// Error returns the error string.
func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("sqlitegen: update %s: invalid primary key %v", e.label, e.key)
}

// Is reports whether the target error matches ErrInvalidKey.
func (e *InvalidKeyError) Is(err error) bool {
	return err == ErrInvalidKey
}

// NewInvalidKeyError returns a new InvalidKeyError.
func NewInvalidKeyError(label string, key any) *InvalidKeyError {
	return &InvalidKeyError{label: label, key: key}
}

// ConsistencyError reports that a statement keyed by a unique column
// affected more than one row.
type ConsistencyError struct {
	Label string // table label
	Op    string // operation name, e.g. "update"
	Rows  int64  // affected or matched rows
}

// Error returns the error string.
func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("sqlitegen: %s %s: %d rows affected, expected at most 1", e.Op, e.Label, e.Rows)
}

// Is reports whether the target error matches ErrConsistency.
func (e *ConsistencyError) Is(err error) bool {
	return err == ErrConsistency
}

// NewConsistencyError returns a new ConsistencyError.
func NewConsistencyError(label, op string, rows int64) *ConsistencyError {
	return &ConsistencyError{Label: label, Op: op, Rows: rows}
}

// IsConsistency returns true if the error is a ConsistencyError.
func IsConsistency(err error) bool {
	if err == nil {
		return false
	}
	var e *ConsistencyError
	return errors.As(err, &e) || errors.Is(err, ErrConsistency)
}
