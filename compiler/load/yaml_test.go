package load

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile(t *testing.T) {
	schemas, err := File("testdata/pets.yaml")
	require.NoError(t, err)
	require.Len(t, schemas, 2)

	wine := schemas[0]
	assert.Equal(t, "WineBottle", wine.Name)
	assert.Equal(t, Pos{File: "testdata/pets.yaml", Line: 2, Col: 11}, wine.Pos)
	require.Len(t, wine.Attrs, 1)
	v, ok := wine.Attrs[0].Value.Unquote()
	require.True(t, ok)
	assert.Equal(t, "UNIQUE(vendor,brand)", v)

	var names, types []string
	for _, f := range wine.Fields {
		names = append(names, f.Name)
		types = append(types, f.Type)
	}
	assert.Equal(t, []string{"id", "serial_no", "vendor", "volume", "color", "brand", "data"}, names)
	assert.Equal(t, []string{"int64", "*string", "int64", "float64", "string", "*string", "*[]byte"}, types)

	volume := wine.Fields[3]
	require.Len(t, volume.Attrs, 1)
	assert.Equal(t, ScopeSQL, volume.Attrs[0].Scope)
	assert.Equal(t, "constraint", volume.Attrs[0].Key)
	assert.Equal(t, Pos{File: "testdata/pets.yaml", Line: 16, Col: 16}, volume.Attrs[0].KeyPos)
	assert.Equal(t, Pos{File: "testdata/pets.yaml", Line: 16, Col: 28}, volume.Attrs[0].Value.Pos)

	assert.Equal(t, "FavoritePet", schemas[1].Name)
	assert.Len(t, schemas[1].Fields, 2)
}

func TestBytesAttrTokens(t *testing.T) {
	const src = `types:
  - name: Cat
    sql: { colour: "x", option: 5 }
    fields:
      - name: id
        type: int64
        sql: { constraint: true, typ: ~ }
        sqlas: { col: [a, b] }
`
	schemas, err := Bytes("cat.yaml", []byte(src))
	require.NoError(t, err)
	require.Len(t, schemas, 1)
	cat := schemas[0]

	require.Len(t, cat.Attrs, 2)
	assert.Equal(t, Attr{
		Scope:  ScopeSQL,
		Key:    "colour",
		KeyPos: Pos{File: "cat.yaml", Line: 3, Col: 12},
		Value:  Lit{Raw: `"x"`, Pos: Pos{File: "cat.yaml", Line: 3, Col: 20}},
	}, cat.Attrs[0])
	assert.Equal(t, Attr{
		Scope:  ScopeSQL,
		Key:    "option",
		KeyPos: Pos{File: "cat.yaml", Line: 3, Col: 25},
		Value:  Lit{Raw: `5`, Pos: Pos{File: "cat.yaml", Line: 3, Col: 33}},
	}, cat.Attrs[1])

	attrs := cat.Fields[0].Attrs
	require.Len(t, attrs, 3)
	assert.Equal(t, "true", attrs[0].Value.Raw)
	assert.Equal(t, "~", attrs[1].Value.Raw)
	assert.Equal(t, ScopeSQLAs, attrs[2].Scope)
	assert.Equal(t, "[...]", attrs[2].Value.Raw)
	for _, a := range attrs {
		_, ok := a.Value.Unquote()
		assert.False(t, ok, a.Key)
	}
}

func TestBytesStringStyles(t *testing.T) {
	const src = `types:
  - name: Note
    fields:
      - name: body
        type: string
        sql:
          constraint: 'DEFAULT ''x'''
          typ: TEXT
`
	schemas, err := Bytes("note.yaml", []byte(src))
	require.NoError(t, err)
	attrs := schemas[0].Fields[0].Attrs
	require.Len(t, attrs, 2)

	v, ok := attrs[0].Value.Unquote()
	require.True(t, ok)
	assert.Equal(t, "DEFAULT 'x'", v)

	v, ok = attrs[1].Value.Unquote()
	require.True(t, ok, "plain scalars resolving to strings are string literals")
	assert.Equal(t, "TEXT", v)
}

func TestBytesErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		pos  Pos
		msg  string
	}{
		{
			name: "unknown_top_level",
			src:  "tables: []\n",
			pos:  Pos{File: "e.yaml", Line: 1, Col: 1},
			msg:  `unknown key "tables"`,
		},
		{
			name: "types_not_sequence",
			src:  "types: {}\n",
			pos:  Pos{File: "e.yaml", Line: 1, Col: 8},
			msg:  "types: expected a sequence",
		},
		{
			name: "missing_name",
			src:  "types:\n  - fields: []\n",
			pos:  Pos{File: "e.yaml", Line: 2, Col: 5},
			msg:  "type: missing name",
		},
		{
			name: "unknown_type_key",
			src:  "types:\n  - name: A\n    db: {}\n",
			pos:  Pos{File: "e.yaml", Line: 3, Col: 5},
			msg:  `unknown type key "db"`,
		},
		{
			name: "field_missing_type",
			src:  "types:\n  - name: A\n    fields:\n      - name: id\n",
			pos:  Pos{File: "e.yaml", Line: 4, Col: 15},
			msg:  "field id: missing type",
		},
		{
			name: "scope_not_mapping",
			src:  "types:\n  - name: A\n    sql: PRIMARY KEY\n",
			pos:  Pos{File: "e.yaml", Line: 3, Col: 10},
			msg:  "sql: expected a mapping",
		},
		{
			name: "numeric_name",
			src:  "types:\n  - name: 5\n",
			pos:  Pos{File: "e.yaml", Line: 2, Col: 11},
			msg:  "name: expected an identifier",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Bytes("e.yaml", []byte(tt.src))
			require.Error(t, err)
			var lerr *Error
			require.True(t, errors.As(err, &lerr))
			assert.Equal(t, tt.pos, lerr.Pos)
			assert.Equal(t, tt.msg, lerr.Msg)
		})
	}
}

func TestBytesSyntaxError(t *testing.T) {
	_, err := Bytes("bad.yaml", []byte("types: [\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestBytesEmpty(t *testing.T) {
	schemas, err := Bytes("empty.yaml", nil)
	require.NoError(t, err)
	assert.Empty(t, schemas)
}

func TestPath(t *testing.T) {
	t.Run("Dir", func(t *testing.T) {
		schemas, err := Path("testdata/dir")
		require.NoError(t, err)
		require.Len(t, schemas, 2)
		assert.Equal(t, "Vendor", schemas[0].Name)
		assert.Equal(t, "Car", schemas[1].Name)
		assert.Equal(t, filepath.Join("testdata", "dir", "b_car.yml"), schemas[1].Pos.File)
	})
	t.Run("File", func(t *testing.T) {
		schemas, err := Path("testdata/pets.yaml")
		require.NoError(t, err)
		assert.Len(t, schemas, 2)
	})
	t.Run("EmptyDir", func(t *testing.T) {
		_, err := Path(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no schema files")
	})
	t.Run("Missing", func(t *testing.T) {
		_, err := Path(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestIsSchemaFile(t *testing.T) {
	assert.True(t, IsSchemaFile("a.yaml"))
	assert.True(t, IsSchemaFile("a.YML"))
	assert.False(t, IsSchemaFile("a.json"))
	assert.False(t, IsSchemaFile("yaml"))
}
