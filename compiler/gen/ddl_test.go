package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/sqlitegen/compiler/load"
)

func TestCreateTableSQL(t *testing.T) {
	typ := mustType(t, wineBottleSchema())
	assert.Equal(t,
		"CREATE TABLE IF NOT EXISTS wine_bottle (id INTEGER NOT NULL PRIMARY KEY, serial_no TEXT UNIQUE, vendor INTEGER NOT NULL REFERENCES vendor(id) ON UPDATE RESTRICT ON DELETE RESTRICT, volume REAL NOT NULL CHECK(volume > 0), color TEXT NOT NULL DEFAULT 'red', brand TEXT, data ANY, UNIQUE(vendor,brand)) STRICT;",
		typ.CreateTableSQL(),
	)

	t.Run("table option", func(t *testing.T) {
		typ := mustType(t, load.NewSchema("MyDog", load.NewField("name", "string")).SQL("option", "WITHOUT ROWID"))
		assert.Equal(t, "CREATE TABLE IF NOT EXISTS my_dog (name TEXT NOT NULL) STRICT, WITHOUT ROWID;", typ.CreateTableSQL())
	})

	t.Run("no modifiers", func(t *testing.T) {
		typ := mustType(t, load.NewSchema("MyDog", load.NewField("name", "string")))
		assert.Equal(t, "CREATE TABLE IF NOT EXISTS my_dog (name TEXT NOT NULL) STRICT;", typ.CreateTableSQL())
	})

	t.Run("no fields", func(t *testing.T) {
		typ := mustType(t, load.NewSchema("Empty"))
		assert.Equal(t, "CREATE TABLE IF NOT EXISTS empty () STRICT;", typ.CreateTableSQL())
	})

	t.Run("idempotent", func(t *testing.T) {
		assert.Equal(t, typ.CreateTableSQL(), typ.CreateTableSQL())
		again := mustType(t, wineBottleSchema())
		assert.Equal(t, typ.Artifacts(), again.Artifacts())
	})
}

func TestCreateIndexSQL(t *testing.T) {
	typ := mustType(t, wineBottleSchema())
	assert.Equal(t, "CREATE INDEX IF NOT EXISTS wine_bottle_vendor_idx ON wine_bottle(vendor); ", typ.CreateIndexSQL())

	t.Run("several foreign keys", func(t *testing.T) {
		typ := mustType(t, load.NewSchema("Pairing",
			load.NewField("wine", "int64").SQL("constraint", "REFERENCES wine_bottle(id)"),
			load.NewField("dish", "int64").SQL("constraint", "REFERENCES dish(id)"),
		))
		assert.Equal(t,
			"CREATE INDEX IF NOT EXISTS pairing_wine_idx ON pairing(wine); CREATE INDEX IF NOT EXISTS pairing_dish_idx ON pairing(dish); ",
			typ.CreateIndexSQL(),
		)
		assert.Len(t, typ.CreateIndexStatements(), 2)
	})

	t.Run("no foreign keys", func(t *testing.T) {
		typ := mustType(t, favoritePetSchema())
		assert.Equal(t, "", typ.CreateIndexSQL())
		assert.Empty(t, typ.CreateIndexStatements())
	})

	t.Run("lowercase escape", func(t *testing.T) {
		tests := []struct {
			constraint string
			want       string
		}{
			{"REFERENCES x(y)", "CREATE INDEX IF NOT EXISTS pairing_wine_idx ON pairing(wine); "},
			{"rEFERENCES x(y)", ""},
			{"references x(y)", ""},
			{"REFERENCESx(y)", ""},
		}
		for _, tt := range tests {
			typ := mustType(t, load.NewSchema("Pairing",
				load.NewField("wine", "int64").SQL("constraint", tt.constraint),
			))
			assert.Equal(t, tt.want, typ.CreateIndexSQL(), tt.constraint)
			assert.Contains(t, typ.CreateTableSQL(), "wine INTEGER NOT NULL "+tt.constraint, tt.constraint)
		}
	})
}

func TestCreateTableLogSQL(t *testing.T) {
	typ := mustType(t, favoritePetSchema())
	assert.Equal(t,
		"CREATE TABLE IF NOT EXISTS favorite_pet_log (id INTEGER NOT NULL, name TEXT NOT NULL) STRICT; "+
			"CREATE INDEX IF NOT EXISTS favorite_pet_log_id_idx ON favorite_pet_log(id); "+
			"CREATE TRIGGER IF NOT EXISTS favorite_pet_update UPDATE ON favorite_pet BEGIN INSERT INTO favorite_pet_log (id,name) VALUES (OLD.id,OLD.name); END; "+
			"CREATE TRIGGER IF NOT EXISTS favorite_pet_delete DELETE ON favorite_pet BEGIN INSERT INTO favorite_pet_log (id,name) VALUES (OLD.id,OLD.name); END;",
		typ.CreateTableLogSQL(),
	)
	assert.Len(t, typ.CreateTableLogStatements(), 4)
	assert.Equal(t, "favorite_pet_log", typ.LogTable())

	t.Run("constraints are not carried over", func(t *testing.T) {
		typ := mustType(t, wineBottleSchema())
		stmts := typ.CreateTableLogStatements()
		assert.Equal(t, "CREATE TABLE IF NOT EXISTS wine_bottle_log (id INTEGER NOT NULL, serial_no TEXT, vendor INTEGER NOT NULL, volume REAL NOT NULL, color TEXT NOT NULL, brand TEXT, data ANY) STRICT;", stmts[0])
		assert.NotContains(t, typ.CreateTableLogSQL(), "UNIQUE")
	})

	t.Run("no primary key", func(t *testing.T) {
		typ := mustType(t, load.NewSchema("Note", load.NewField("body", "string")))
		assert.Equal(t,
			"CREATE TABLE IF NOT EXISTS note_log (body TEXT NOT NULL) STRICT; "+
				"CREATE TRIGGER IF NOT EXISTS note_update UPDATE ON note BEGIN INSERT INTO note_log (body) VALUES (OLD.body); END; "+
				"CREATE TRIGGER IF NOT EXISTS note_delete DELETE ON note BEGIN INSERT INTO note_log (body) VALUES (OLD.body); END;",
			typ.CreateTableLogSQL(),
		)
	})
}

func TestSelectSQL(t *testing.T) {
	typ := mustType(t, wineBottleSchema())
	assert.Equal(t, "SELECT id,serial_no,vendor,volume,color,brand,data FROM wine_bottle", typ.SelectSQL())
	assert.Equal(t, typ.SelectSQL(), typ.SelectAsSQL())
}

func TestSelectAsSQL(t *testing.T) {
	s := load.NewSchema("BottleView",
		load.NewField("id", "int64").SQLAs("col", "b.id"),
		load.NewField("vendor_name", "string").SQLAs("col", "v.name"),
		load.NewField("color", "string"),
	).SQLAs("from", "wine_bottle b JOIN vendor v ON v.id = b.vendor")
	typ := mustType(t, s)
	assert.Equal(t,
		"SELECT b.id AS id,v.name AS vendor_name,color FROM wine_bottle b JOIN vendor v ON v.id = b.vendor",
		typ.SelectAsSQL(),
	)
	assert.Equal(t, "SELECT id,vendor_name,color FROM bottle_view", typ.SelectSQL())
}

func TestArtifacts(t *testing.T) {
	typ := mustType(t, favoritePetSchema())
	a := typ.Artifacts()
	assert.Equal(t, typ.CreateTableSQL(), a.CreateTable)
	assert.Equal(t, "", a.CreateIndex)
	assert.Equal(t, typ.CreateTableLogSQL(), a.CreateTableLog)
	assert.Equal(t, "SELECT id,name FROM favorite_pet", a.Select)
	assert.Equal(t, "SELECT id,name FROM favorite_pet", a.SelectAs)
}
