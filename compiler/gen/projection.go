package gen

import "strings"

// Columns returns the column names in declaration order.
func (t Type) Columns() []string {
	cols := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		cols[i] = f.Name
	}
	return cols
}

// SelectSQL returns the plain projection of all columns:
//
//	SELECT f1,f2,... FROM {table}
func (t Type) SelectSQL() string {
	return "SELECT " + strings.Join(t.Columns(), ",") + " FROM " + t.Table
}

// SelectAsSQL returns the aliased projection. Each column is selected from
// its source expression, if one was given, and the FROM clause is replaced
// by the type's from clause, if one was given. The column order is the
// declaration order in both cases.
func (t Type) SelectAsSQL() string {
	items := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		items[i] = f.Projection()
	}
	from := t.From
	if from == "" {
		from = t.Table
	}
	return "SELECT " + strings.Join(items, ",") + " FROM " + from
}

// Artifacts holds the SQL texts derived from a type.
type Artifacts struct {
	CreateTable    string `msgpack:"create_table"`
	CreateIndex    string `msgpack:"create_index"`
	CreateTableLog string `msgpack:"create_table_log"`
	Select         string `msgpack:"select"`
	SelectAs       string `msgpack:"select_as"`
}

// Artifacts returns all SQL texts of the type.
func (t Type) Artifacts() Artifacts {
	return Artifacts{
		CreateTable:    t.CreateTableSQL(),
		CreateIndex:    t.CreateIndexSQL(),
		CreateTableLog: t.CreateTableLogSQL(),
		Select:         t.SelectSQL(),
		SelectAs:       t.SelectAsSQL(),
	}
}
