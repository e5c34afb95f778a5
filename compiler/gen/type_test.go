package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqlitegen/compiler/load"
)

func TestNewType(t *testing.T) {
	typ := mustType(t, wineBottleSchema())

	assert.Equal(t, "WineBottle", typ.Name)
	assert.Equal(t, "wine_bottle", typ.Table)
	assert.Equal(t, "UNIQUE(vendor,brand)", typ.TableConstraint)
	assert.Empty(t, typ.TableOption)
	assert.Empty(t, typ.From)
	assert.Equal(t, []string{"id", "serial_no", "vendor", "volume", "color", "brand", "data"}, typ.Columns())

	require.NotNil(t, typ.PK)
	assert.Equal(t, "id", typ.PK.Name)
	assert.True(t, typ.HasPK())
	assert.True(t, typ.HasRowIDKey())

	note := mustType(t, load.NewSchema("Note", load.NewField("body", "string")))
	assert.False(t, note.HasPK())
	assert.False(t, note.HasRowIDKey())
	require.Len(t, typ.Unique, 1)
	assert.Equal(t, "serial_no", typ.Unique[0].Name)
	require.Len(t, typ.ForeignKeys, 1)
	assert.Equal(t, "vendor", typ.ForeignKeys[0].Name)

	data, ok := typ.Field("data")
	require.True(t, ok)
	assert.Equal(t, "ANY", data.Storage)
	assert.Equal(t, "*[]byte", data.Type)
	assert.Empty(t, data.Constraint)
	assert.Equal(t, RoleNone, data.Role)

	serial, _ := typ.Field("serial_no")
	assert.Equal(t, "TEXT", serial.Storage)
	assert.Equal(t, "SerialNo", serial.StructField())
	assert.Equal(t, "serialNo", serial.Param())
	assert.True(t, serial.IsUnique())
}

func TestNewType_Defaults(t *testing.T) {
	typ, err := NewType(nil, load.NewSchema("Dog", load.NewField("name", "string")))
	require.NoError(t, err)
	assert.NotNil(t, typ.Config)
	assert.Nil(t, typ.PK)
	assert.Empty(t, typ.Unique)
	assert.Empty(t, typ.ForeignKeys)
	assert.Equal(t, "d", typ.Receiver())
	assert.Equal(t, "dog.go", typ.File())
	assert.Equal(t, "ListDogs", typ.ListName())
}

func TestNewType_Projection(t *testing.T) {
	s := load.NewSchema("VendorBottle",
		load.NewField("id", "int64"),
		load.NewField("vendor_name", "string").SQLAs("col", "v.name"),
	).SQLAs("from", "wine_bottle b JOIN vendor v ON v.id = b.vendor")
	typ := mustType(t, s)
	assert.Equal(t, "wine_bottle b JOIN vendor v ON v.id = b.vendor", typ.From)
	f, _ := typ.Field("vendor_name")
	assert.Equal(t, "v.name", f.Source)
	assert.Equal(t, "v.name AS vendor_name", f.Projection())
}

func TestNewType_EmptyAttrValueIsAbsent(t *testing.T) {
	s := load.NewSchema("Dog",
		load.NewField("name", "string").SQL("typ", "").SQL("constraint", ""),
	).SQL("option", "")
	typ := mustType(t, s)
	f, _ := typ.Field("name")
	assert.Equal(t, "TEXT NOT NULL", f.Storage)
	assert.Empty(t, f.Constraint)
	assert.Empty(t, typ.TableOption)
}

func TestNewType_AttrErrors(t *testing.T) {
	keyPos := load.Pos{File: "dog.yaml", Line: 4, Col: 12}
	valPos := load.Pos{File: "dog.yaml", Line: 4, Col: 20}

	tests := []struct {
		name    string
		schema  *load.Schema
		pos     load.Pos
		message string
	}{
		{
			name: "unknown table key",
			schema: &load.Schema{Name: "Dog", Attrs: []load.Attr{
				{Scope: "sql", Key: "constrant", KeyPos: keyPos, Value: load.Lit{Raw: `"x"`, Pos: valPos}},
			}},
			pos:     keyPos,
			message: "unknown table attr",
		},
		{
			name: "column key at table level",
			schema: &load.Schema{Name: "Dog", Attrs: []load.Attr{
				{Scope: "sql", Key: "typ", KeyPos: keyPos, Value: load.Lit{Raw: `"x"`, Pos: valPos}},
			}},
			pos:     keyPos,
			message: "unknown table attr",
		},
		{
			name: "non-string table value",
			schema: &load.Schema{Name: "Dog", Attrs: []load.Attr{
				{Scope: "sql", Key: "option", KeyPos: keyPos, Value: load.Lit{Raw: "5", Pos: valPos}},
			}},
			pos:     valPos,
			message: "should be a literal str",
		},
		{
			name: "unknown column key",
			schema: &load.Schema{Name: "Dog", Fields: []*load.Field{{Name: "id", Type: "int64", Attrs: []load.Attr{
				{Scope: "sqlas", Key: "from", KeyPos: keyPos, Value: load.Lit{Raw: `"x"`, Pos: valPos}},
			}}}},
			pos:     keyPos,
			message: "unknown column attr",
		},
		{
			name: "non-string column value",
			schema: &load.Schema{Name: "Dog", Fields: []*load.Field{{Name: "id", Type: "int64", Attrs: []load.Attr{
				{Scope: "sql", Key: "constraint", KeyPos: keyPos, Value: load.Lit{Raw: "true", Pos: valPos}},
			}}}},
			pos:     valPos,
			message: "should be a literal str",
		},
		{
			name: "raw string literal is not a string literal",
			schema: &load.Schema{Name: "Dog", Fields: []*load.Field{{Name: "id", Type: "int64", Attrs: []load.Attr{
				{Scope: "sql", Key: "typ", KeyPos: keyPos, Value: load.Lit{Raw: "`INTEGER`", Pos: valPos}},
			}}}},
			pos:     valPos,
			message: "should be a literal str",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewType(nil, tt.schema)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidAttr))
			var attrErr *AttrError
			require.True(t, errors.As(err, &attrErr))
			assert.Equal(t, tt.pos, attrErr.Pos)
			assert.Equal(t, tt.message, attrErr.Message)
		})
	}
}

func TestNewType_CollectsAllErrors(t *testing.T) {
	s := &load.Schema{Name: "Dog", Attrs: []load.Attr{
		{Scope: "sql", Key: "bad", Value: load.StringLit("x")},
	}, Fields: []*load.Field{
		{Name: "id", Type: "int64", Attrs: []load.Attr{{Scope: "sql", Key: "worse", Value: load.StringLit("x")}}},
		{Name: "name", Type: "not a type"},
	}}
	_, err := NewType(nil, s)
	require.Error(t, err)
	assert.Len(t, Diagnostics(err), 3)
}

func TestNewType_DuplicatePK(t *testing.T) {
	s := load.NewSchema("Pair",
		load.NewField("a", "int64").SQL("constraint", "PRIMARY KEY"),
		load.NewField("b", "int64").SQL("constraint", "PRIMARY KEY"),
		load.NewField("c", "string"),
	)

	t.Run("rejected by default", func(t *testing.T) {
		_, err := NewType(nil, s)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDuplicatePK))
		assert.True(t, IsSchemaError(err))
	})

	t.Run("last wins", func(t *testing.T) {
		typ := mustType(t, s, WithLastPrimaryKeyWins())
		assert.Equal(t, "b", typ.PK.Name)
		assert.Len(t, typ.KeyFields(), 2)
		assert.Equal(t, []*Field{typ.Fields[2]}, typ.NonKeyFields())
	})
}

func TestNewType_SchemaErrors(t *testing.T) {
	tests := []struct {
		name   string
		schema *load.Schema
		want   string
	}{
		{"empty type name", load.NewSchema(""), "schema name cannot be empty"},
		{"lower type name", load.NewSchema("dog"), "must start with an upper-case letter"},
		{"bad type name", load.NewSchema("My Dog"), "not a valid Go identifier"},
		{"empty field name", load.NewSchema("Dog", load.NewField("", "int")), "field name cannot be empty"},
		{"bad field name", load.NewSchema("Dog", load.NewField("2x", "int")), "not a valid identifier"},
		{"blank field name", load.NewSchema("Dog", load.NewField("_", "int")), "has no Go name"},
		{"redeclared field", load.NewSchema("Dog", load.NewField("a", "int"), load.NewField("a", "int")), "redeclared"},
		{"same Go name", load.NewSchema("Dog", load.NewField("serial_no", "int"), load.NewField("serialNo", "int")), "same Go name SerialNo"},
		{"method name", load.NewSchema("Dog", load.NewField("update", "int")), "conflicts with generated method Update"},
		{"invalid type", load.NewSchema("Dog", load.NewField("a", "func()")), `invalid type "func()"`},
		{"nil schema", nil, "nil schema"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewType(nil, tt.schema)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSchema))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewGraph(t *testing.T) {
	t.Run("builds all types", func(t *testing.T) {
		g, err := NewGraph(nil, wineBottleSchema(), favoritePetSchema())
		require.NoError(t, err)
		require.Len(t, g.Nodes, 2)
		assert.Equal(t, []string{"wine_bottle", "favorite_pet"}, g.Tables())
		typ, ok := g.Type("FavoritePet")
		require.True(t, ok)
		assert.Same(t, g.Nodes[1], typ)
		_, ok = g.Type("Missing")
		assert.False(t, ok)
	})

	t.Run("failing type does not affect others", func(t *testing.T) {
		bad := load.NewSchema("Bad", load.NewField("x", "int")).SQL("nope", "1")
		g, err := NewGraph(nil, wineBottleSchema(), bad, favoritePetSchema())
		require.Error(t, err)
		assert.True(t, IsAttrError(err))
		assert.Equal(t, []string{"wine_bottle", "favorite_pet"}, g.Tables())
	})

	t.Run("duplicate type", func(t *testing.T) {
		g, err := NewGraph(nil, favoritePetSchema(), favoritePetSchema())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "type redeclared")
		assert.Len(t, g.Nodes, 1)
	})

	t.Run("duplicate table", func(t *testing.T) {
		_, err := NewGraph(nil, load.NewSchema("MyDog"), load.NewSchema("My_Dog"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `table "my_dog" is also used by type MyDog`)
	})

	t.Run("MustNewGraph panics", func(t *testing.T) {
		assert.Panics(t, func() { MustNewGraph(nil, load.NewSchema("")) })
	})
}
