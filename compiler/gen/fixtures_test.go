package gen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/sqlitegen/compiler/load"
)

func wineBottleSchema() *load.Schema {
	return load.NewSchema("WineBottle",
		load.NewField("id", "int64").SQL("constraint", "PRIMARY KEY"),
		load.NewField("serial_no", "*string").SQL("constraint", "UNIQUE"),
		load.NewField("vendor", "int64").SQL("constraint", "REFERENCES vendor(id) ON UPDATE RESTRICT ON DELETE RESTRICT"),
		load.NewField("volume", "float64").SQL("constraint", "CHECK(volume > 0)"),
		load.NewField("color", "string").SQL("constraint", "DEFAULT 'red'"),
		load.NewField("brand", "*string"),
		load.NewField("data", "*[]byte").SQL("typ", "ANY"),
	).SQL("constraint", "UNIQUE(vendor,brand)")
}

func favoritePetSchema() *load.Schema {
	return load.NewSchema("FavoritePet",
		load.NewField("id", "int64").SQL("constraint", "PRIMARY KEY"),
		load.NewField("name", "string"),
	)
}

func mustType(t *testing.T, s *load.Schema, opts ...Option) *Type {
	t.Helper()
	c, err := NewConfig(opts...)
	require.NoError(t, err)
	typ, err := NewType(c, s)
	require.NoError(t, err)
	return typ
}
