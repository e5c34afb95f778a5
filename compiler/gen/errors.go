package gen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/syssam/sqlitegen/compiler/load"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidAttr indicates an unrecognized attribute key or a value
	// that is not a string literal.
	ErrInvalidAttr = errors.New("sqlitegen: invalid attribute")
	// ErrInvalidSchema indicates a schema definition error.
	ErrInvalidSchema = errors.New("sqlitegen: invalid schema")
	// ErrDuplicatePK indicates more than one field classified as primary key.
	ErrDuplicatePK = errors.New("sqlitegen: duplicate primary key")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("sqlitegen: missing configuration")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("sqlitegen: code generation failed")
)

// AttrError is the configuration error reported for a malformed attribute.
// Pos points at the offending key (unknown key) or value (non-string value).
type AttrError struct {
	Pos     load.Pos
	Type    string
	Field   string // empty for table-level attributes
	Scope   string
	Key     string
	Message string
}

// Error implements the error interface.
func (e *AttrError) Error() string {
	var b strings.Builder
	b.WriteString(e.Pos.String())
	b.WriteString(": sqlitegen: attribute error")
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	fmt.Fprintf(&b, ": %s(%s): %s", e.Scope, e.Key, e.Message)
	return b.String()
}

// Diagnostic returns the error in the short "pos: message" form.
func (e *AttrError) Diagnostic() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Is reports whether the target matches the sentinel error for AttrError.
func (e *AttrError) Is(target error) bool {
	return target == ErrInvalidAttr
}

// NewAttrError creates a new AttrError.
func NewAttrError(pos load.Pos, typeName, fieldName string, a load.Attr, message string) *AttrError {
	return &AttrError{
		Pos:     pos,
		Type:    typeName,
		Field:   fieldName,
		Scope:   a.Scope,
		Key:     a.Key,
		Message: message,
	}
}

// SchemaError represents a schema definition error.
type SchemaError struct {
	Pos     load.Pos
	Type    string // Record type name
	Field   string // Field name (if applicable)
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	if e.Pos.IsValid() {
		b.WriteString(e.Pos.String())
		b.WriteString(": ")
	}
	b.WriteString("sqlitegen: schema error")
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Diagnostic returns the error in the short "pos: message" form.
func (e *SchemaError) Diagnostic() string {
	msg := e.Message
	if e.Cause != nil {
		if msg != "" {
			msg += ": "
		}
		msg += strings.TrimPrefix(e.Cause.Error(), "sqlitegen: ")
	}
	return fmt.Sprintf("%s: %s", e.Pos, msg)
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(typeName, fieldName, message string, cause error) *SchemaError {
	return &SchemaError{
		Type:    typeName,
		Field:   fieldName,
		Message: message,
		Cause:   cause,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("sqlitegen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("sqlitegen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// GenerationError represents a code generation error.
type GenerationError struct {
	Phase   string // "type", "schema", "snapshot"
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("sqlitegen: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsAttrError reports whether the error is an AttrError.
func IsAttrError(err error) bool {
	var attrErr *AttrError
	return errors.As(err, &attrErr)
}

// IsSchemaError reports whether the error is a SchemaError.
func IsSchemaError(err error) bool {
	var schemaErr *SchemaError
	return errors.As(err, &schemaErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}

// Diagnostics flattens a (possibly joined) build error into one
// "pos: message" line per failure, in order.
func Diagnostics(err error) []string {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var lines []string
		for _, e := range joined.Unwrap() {
			lines = append(lines, Diagnostics(e)...)
		}
		return lines
	}
	var (
		attrErr   *AttrError
		schemaErr *SchemaError
	)
	switch {
	case errors.As(err, &attrErr):
		return []string{attrErr.Diagnostic()}
	case errors.As(err, &schemaErr):
		return []string{schemaErr.Diagnostic()}
	default:
		return []string{err.Error()}
	}
}
