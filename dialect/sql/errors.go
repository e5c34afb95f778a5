package sql

import (
	"errors"
	"strings"
)

// errorCoder is implemented by driver errors carrying the SQLite extended
// result code, e.g. *modernc.org/sqlite.Error.
type errorCoder interface {
	Code() int
}

// SQLite extended result codes of constraint violations.
const (
	sqliteConstraintCheck      = 275
	sqliteConstraintForeignKey = 787
	sqliteConstraintNotNull    = 1299
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

// IsConstraintError returns true if the error resulted from a database constraint violation.
func IsConstraintError(err error) bool {
	return IsUniqueConstraintError(err) ||
		IsForeignKeyConstraintError(err) ||
		IsCheckConstraintError(err) ||
		IsNotNullConstraintError(err)
}

// IsUniqueConstraintError reports if the error resulted from a uniqueness
// constraint violation, including a duplicate primary key.
func IsUniqueConstraintError(err error) bool {
	return isConstraint(err, []int{sqliteConstraintUnique, sqliteConstraintPrimaryKey}, "UNIQUE constraint failed")
}

// IsForeignKeyConstraintError reports if the error resulted from a foreign-key
// constraint violation. These are only raised with PRAGMA foreign_keys = ON.
func IsForeignKeyConstraintError(err error) bool {
	return isConstraint(err, []int{sqliteConstraintForeignKey}, "FOREIGN KEY constraint failed")
}

// IsCheckConstraintError reports if the error resulted from a CHECK constraint violation.
func IsCheckConstraintError(err error) bool {
	return isConstraint(err, []int{sqliteConstraintCheck}, "CHECK constraint failed")
}

// IsNotNullConstraintError reports if the error resulted from a NOT NULL constraint violation.
func IsNotNullConstraintError(err error) bool {
	return isConstraint(err, []int{sqliteConstraintNotNull}, "NOT NULL constraint failed")
}

func isConstraint(err error, codes []int, message string) bool {
	if err == nil {
		return false
	}
	var coder errorCoder
	if errors.As(err, &coder) {
		code := coder.Code()
		for _, c := range codes {
			if code == c {
				return true
			}
		}
	}
	// Fallback to string matching for drivers that don't expose codes.
	return strings.Contains(err.Error(), message)
}
