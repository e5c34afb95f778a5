package load

import (
	"fmt"
	"strconv"
	"strings"
)

// Attribute scopes.
const (
	// ScopeSQL holds storage modifiers: table "constraint" and "option",
	// column "typ" and "constraint".
	ScopeSQL = "sql"
	// ScopeSQLAs holds projection modifiers: table "from", column "col".
	ScopeSQLAs = "sqlas"
)

// Pos is a position in a schema description file. Line and Col are 1-based.
type Pos struct {
	File string `json:"file,omitempty"`
	Line int    `json:"line,omitempty"`
	Col  int    `json:"col,omitempty"`
}

// IsValid reports whether the position carries line information.
func (p Pos) IsValid() bool { return p.Line > 0 }

// String returns the position in the file:line:col form used by compilers.
func (p Pos) String() string {
	switch {
	case !p.IsValid() && p.File == "":
		return "-"
	case !p.IsValid():
		return p.File
	case p.File == "":
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	default:
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
	}
}

// Lit is a raw attribute value token as written by the author.
type Lit struct {
	Raw string `json:"raw"`
	Pos Pos    `json:"pos,omitempty"`
}

// StringLit returns the literal token for the string s.
func StringLit(s string) Lit {
	return Lit{Raw: strconv.Quote(s)}
}

// Unquote returns the value of a double-quoted string literal.
// ok is false for any other token (numbers, booleans, nested values).
func (l Lit) Unquote() (s string, ok bool) {
	if len(l.Raw) < 2 || l.Raw[0] != '"' || l.Raw[len(l.Raw)-1] != '"' {
		return "", false
	}
	s, err := strconv.Unquote(l.Raw)
	if err != nil {
		return "", false
	}
	return s, true
}

// Attr is one key/value modifier attached to a type or a field.
type Attr struct {
	Scope  string `json:"scope"`
	Key    string `json:"key"`
	KeyPos Pos    `json:"key_pos,omitempty"`
	Value  Lit    `json:"value"`
}

// String formats the attribute the way it is written in a description.
func (a Attr) String() string {
	return fmt.Sprintf("%s(%s = %s)", a.Scope, a.Key, a.Value.Raw)
}

// Field is one record field in declaration order.
type Field struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Pos   Pos    `json:"pos,omitempty"`
	Attrs []Attr `json:"attrs,omitempty"`
}

// Schema is one record type as supplied by a description file.
type Schema struct {
	Name   string   `json:"name"`
	Pos    Pos      `json:"pos,omitempty"`
	Attrs  []Attr   `json:"attrs,omitempty"`
	Fields []*Field `json:"fields,omitempty"`
}

// NewSchema returns a schema with the given name and fields.
func NewSchema(name string, fields ...*Field) *Schema {
	return &Schema{Name: name, Fields: fields}
}

// NewField returns a field with the given name and declared type.
func NewField(name, typ string) *Field {
	return &Field{Name: name, Type: typ}
}

// SQL appends a storage attribute with a string value.
func (s *Schema) SQL(key, value string) *Schema {
	s.Attrs = append(s.Attrs, Attr{Scope: ScopeSQL, Key: key, Value: StringLit(value)})
	return s
}

// SQLAs appends a projection attribute with a string value.
func (s *Schema) SQLAs(key, value string) *Schema {
	s.Attrs = append(s.Attrs, Attr{Scope: ScopeSQLAs, Key: key, Value: StringLit(value)})
	return s
}

// SQL appends a storage attribute with a string value.
func (f *Field) SQL(key, value string) *Field {
	f.Attrs = append(f.Attrs, Attr{Scope: ScopeSQL, Key: key, Value: StringLit(value)})
	return f
}

// SQLAs appends a projection attribute with a string value.
func (f *Field) SQLAs(key, value string) *Field {
	f.Attrs = append(f.Attrs, Attr{Scope: ScopeSQLAs, Key: key, Value: StringLit(value)})
	return f
}

// Error is a structural error in a description file.
type Error struct {
	Pos Pos
	Msg string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Pos.String())
	b.WriteString(": ")
	b.WriteString(e.Msg)
	return b.String()
}

func errorf(pos Pos, format string, args ...any) *Error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
