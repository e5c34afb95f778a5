package gen

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"github.com/syssam/sqlitegen/compiler/load"
)

// Recognized attribute keys.
const (
	keyConstraint = "constraint"
	keyOption     = "option"
	keyTyp        = "typ"
	keyFrom       = "from"
	keyCol        = "col"
)

// methodNames holds the methods generated on record structs.
var methodNames = map[string]bool{
	"Insert":     true,
	"InsertSync": true,
	"Update":     true,
	"UpdateSync": true,
}

// The following types and their exported methods are used by the dialects
// to generate the assets.
type (
	// Type represents one record type of the graph and the table
	// that stores it. A Type is built once and never modified.
	Type struct {
		*Config
		schema *load.Schema
		// Name holds the type name as declared.
		Name string
		// Table holds the storage name derived from Name.
		Table string
		// Fields holds all fields in declaration order.
		Fields []*Field
		fields map[string]*Field
		// TableConstraint is appended to the column definitions of
		// CREATE TABLE. Empty if absent.
		TableConstraint string
		// TableOption is appended after STRICT. Empty if absent.
		TableOption string
		// From replaces the table name in the aliased projection.
		From string
		// PK is the primary key field, if any.
		PK *Field
		// Unique holds the fields classified unique, in declaration order.
		Unique []*Field
		// ForeignKeys holds the fields classified foreign key.
		ForeignKeys []*Field
	}

	// Field holds the resolved information of one column.
	Field struct {
		def *load.Field
		typ *Type
		// Name is the column name.
		Name string
		// Type is the declared Go type.
		Type string
		// Storage is the storage class, or the "typ" override.
		Storage string
		// Constraint is the column constraint text. Empty if absent.
		Constraint string
		// Source is the projection expression of the aliased select.
		Source string
		// Role is derived from Constraint.
		Role Role
		// Pos of the field in its description file.
		Pos load.Pos
	}
)

// NewType creates a new type and its fields from the given schema.
// All errors of the schema are reported together.
func NewType(c *Config, schema *load.Schema) (*Type, error) {
	if c == nil {
		c = DefaultConfig()
	}
	if schema == nil {
		return nil, NewSchemaError("", "", "nil schema", nil)
	}
	typ := &Type{
		Config: c,
		schema: schema,
		Name:   schema.Name,
		Table:  TableName(schema.Name),
		Fields: make([]*Field, 0, len(schema.Fields)),
		fields: make(map[string]*Field, len(schema.Fields)),
	}
	var errs []error
	if err := ValidSchemaName(schema.Name); err != nil {
		errs = append(errs, typ.schemaError(schema.Pos, "", err.Error(), nil))
	}
	for _, a := range schema.Attrs {
		v, err := typ.tableAttr(a)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		switch {
		case a.Scope == load.ScopeSQL && a.Key == keyConstraint:
			typ.TableConstraint = v
		case a.Scope == load.ScopeSQL && a.Key == keyOption:
			typ.TableOption = v
		case a.Scope == load.ScopeSQLAs && a.Key == keyFrom:
			typ.From = v
		}
	}
	for _, f := range schema.Fields {
		tf, err := typ.newField(f)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		switch tf.Role {
		case RolePK:
			if typ.PK != nil && !c.LastPrimaryKeyWins {
				errs = append(errs, typ.schemaError(tf.Pos, tf.Name, fmt.Sprintf("also declared on field %q", typ.PK.Name), ErrDuplicatePK))
				continue
			}
			typ.PK = tf
		case RoleUnique:
			typ.Unique = append(typ.Unique, tf)
		case RoleForeignKey:
			typ.ForeignKeys = append(typ.ForeignKeys, tf)
		}
		typ.Fields = append(typ.Fields, tf)
		typ.fields[tf.Name] = tf
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return typ, nil
}

// newField resolves one schema field.
func (t *Type) newField(f *load.Field) (*Field, error) {
	tf := &Field{
		def:  f,
		typ:  t,
		Name: f.Name,
		Type: f.Type,
		Pos:  f.Pos,
	}
	if err := t.checkField(f); err != nil {
		return nil, err
	}
	for _, prev := range t.Fields {
		if prev.StructField() == tf.StructField() {
			return nil, t.schemaError(f.Pos, f.Name, fmt.Sprintf("field %q and field %q have the same Go name %s", prev.Name, f.Name, tf.StructField()), nil)
		}
	}
	var errs []error
	for _, a := range f.Attrs {
		v, err := t.columnAttr(f, a)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		switch {
		case a.Scope == load.ScopeSQL && a.Key == keyTyp:
			tf.Storage = v
		case a.Scope == load.ScopeSQL && a.Key == keyConstraint:
			tf.Constraint = v
		case a.Scope == load.ScopeSQLAs && a.Key == keyCol:
			tf.Source = v
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if tf.Storage == "" {
		tf.Storage = StorageClass(f.Type)
	}
	tf.Role = Classify(tf.Constraint)
	return tf, nil
}

// checkField checks the schema field.
func (t *Type) checkField(f *load.Field) error {
	switch {
	case f.Name == "":
		return t.schemaError(f.Pos, "", "field name cannot be empty", nil)
	case !token.IsIdentifier(f.Name):
		return t.schemaError(f.Pos, f.Name, fmt.Sprintf("field name %q is not a valid identifier", f.Name), nil)
	case pascal(f.Name) == "":
		return t.schemaError(f.Pos, f.Name, fmt.Sprintf("field name %q has no Go name", f.Name), nil)
	case t.fields[f.Name] != nil:
		return t.schemaError(f.Pos, f.Name, fmt.Sprintf("field %q redeclared for type %q", f.Name, t.Name), nil)
	case methodNames[pascal(f.Name)]:
		return t.schemaError(f.Pos, f.Name, fmt.Sprintf("field %q conflicts with generated method %s", f.Name, pascal(f.Name)), nil)
	case !validType(f.Type):
		return t.schemaError(f.Pos, f.Name, fmt.Sprintf("invalid type %q for field %s", f.Type, f.Name), nil)
	}
	return nil
}

// tableAttr validates a table-level attribute and returns its value.
func (t *Type) tableAttr(a load.Attr) (string, error) {
	switch {
	case a.Scope == load.ScopeSQL && (a.Key == keyConstraint || a.Key == keyOption):
	case a.Scope == load.ScopeSQLAs && a.Key == keyFrom:
	default:
		return "", NewAttrError(a.KeyPos, t.Name, "", a, "unknown table attr")
	}
	v, ok := a.Value.Unquote()
	if !ok {
		return "", NewAttrError(a.Value.Pos, t.Name, "", a, "should be a literal str")
	}
	return v, nil
}

// columnAttr validates a column-level attribute and returns its value.
func (t *Type) columnAttr(f *load.Field, a load.Attr) (string, error) {
	switch {
	case a.Scope == load.ScopeSQL && (a.Key == keyTyp || a.Key == keyConstraint):
	case a.Scope == load.ScopeSQLAs && a.Key == keyCol:
	default:
		return "", NewAttrError(a.KeyPos, t.Name, f.Name, a, "unknown column attr")
	}
	v, ok := a.Value.Unquote()
	if !ok {
		return "", NewAttrError(a.Value.Pos, t.Name, f.Name, a, "should be a literal str")
	}
	return v, nil
}

func (t *Type) schemaError(pos load.Pos, field, msg string, cause error) *SchemaError {
	err := NewSchemaError(t.Name, field, msg, cause)
	err.Pos = pos
	return err
}

// ValidSchemaName reports an error if the name cannot be used as the
// name of a generated Go type.
func ValidSchemaName(name string) error {
	switch {
	case name == "":
		return errors.New("schema name cannot be empty")
	case !token.IsIdentifier(name):
		return fmt.Errorf("schema name %q is not a valid Go identifier", name)
	case !token.IsExported(name):
		return fmt.Errorf("schema name %q must start with an upper-case letter", name)
	}
	return nil
}

// Label returns the table name, used as the label of runtime errors.
func (t Type) Label() string {
	return t.Table
}

// Receiver returns the receiver name of this type.
func (t Type) Receiver() string {
	return receiver(t.Name)
}

// Pos returns the position of the type in its description file.
func (t Type) Pos() load.Pos {
	if t.schema == nil {
		return load.Pos{}
	}
	return t.schema.Pos
}

// File returns the name of the generated Go file of this type.
func (t Type) File() string {
	return t.Table + ".go"
}

// Field returns the field with the given name.
func (t Type) Field(name string) (*Field, bool) {
	f, ok := t.fields[name]
	return f, ok
}

// HasPK reports whether the type has a primary key field.
func (t Type) HasPK() bool {
	return t.PK != nil
}

// HasRowIDKey reports whether the primary key is an int64 column, which
// SQLite assigns when it is omitted on insert.
func (t Type) HasRowIDKey() bool {
	return t.HasPK() && IsRowID(t.PK.Type)
}

// KeyFields returns all fields classified primary key. With
// LastPrimaryKeyWins there can be more than one, and all of them are
// excluded from update assignments and rowid inserts.
func (t Type) KeyFields() []*Field {
	var fs []*Field
	for _, f := range t.Fields {
		if f.Role == RolePK {
			fs = append(fs, f)
		}
	}
	return fs
}

// NonKeyFields returns the fields not classified primary key.
func (t Type) NonKeyFields() []*Field {
	fs := make([]*Field, 0, len(t.Fields))
	for _, f := range t.Fields {
		if f.Role != RolePK {
			fs = append(fs, f)
		}
	}
	return fs
}

// ListName returns the name of the generated list function.
func (t Type) ListName() string {
	return "List" + plural(t.Name)
}

// StructField returns the Go struct field name of the column.
func (f Field) StructField() string {
	return pascal(f.Name)
}

// Param returns the Go parameter name used for the column.
func (f Field) Param() string {
	return camel(f.Name)
}

// IsPK reports whether the field is classified primary key.
func (f Field) IsPK() bool { return f.Role == RolePK }

// IsUnique reports whether the field is classified unique.
func (f Field) IsUnique() bool { return f.Role == RoleUnique }

// IsForeignKey reports whether the field is classified foreign key.
func (f Field) IsForeignKey() bool { return f.Role == RoleForeignKey }

// KeyKind returns how a value of the field is checked for presence.
func (f Field) KeyKind() KeyKind {
	return KeyKindOf(f.Type)
}

// Column returns the column definition used by CREATE TABLE.
func (f Field) Column() string {
	if f.Constraint == "" {
		return f.Name + " " + f.Storage
	}
	return strings.Join([]string{f.Name, f.Storage, f.Constraint}, " ")
}

// Projection returns the select item of the aliased projection.
func (f Field) Projection() string {
	if f.Source == "" {
		return f.Name
	}
	return f.Source + " AS " + f.Name
}
