package gen

import (
	"fmt"
	"strings"
)

// CreateTableSQL returns the CREATE TABLE statement of the type:
//
//	CREATE TABLE IF NOT EXISTS {table} ({col} {storage}[ {constraint}], ...[, {table_constraint}]) STRICT[, {table_option}];
func (t Type) CreateTableSQL() string {
	defs := make([]string, 0, len(t.Fields)+1)
	for _, f := range t.Fields {
		defs = append(defs, f.Column())
	}
	if t.TableConstraint != "" {
		defs = append(defs, t.TableConstraint)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (%s) STRICT", t.Table, strings.Join(defs, ", "))
	if t.TableOption != "" {
		b.WriteString(", ")
		b.WriteString(t.TableOption)
	}
	b.WriteByte(';')
	return b.String()
}

// CreateIndexStatements returns one CREATE INDEX statement per foreign key
// column, in declaration order.
func (t Type) CreateIndexStatements() []string {
	stmts := make([]string, 0, len(t.ForeignKeys))
	for _, f := range t.ForeignKeys {
		stmts = append(stmts, fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s_%s_idx ON %s(%s);", t.Table, f.Name, t.Table, f.Name))
	}
	return stmts
}

// CreateIndexSQL returns the CREATE INDEX statements of all foreign key
// columns, each followed by a single space. It is empty if the type has
// no foreign keys.
func (t Type) CreateIndexSQL() string {
	var b strings.Builder
	for _, s := range t.CreateIndexStatements() {
		b.WriteString(s)
		b.WriteByte(' ')
	}
	return b.String()
}

// LogTable returns the name of the audit log table.
func (t Type) LogTable() string {
	return t.Table + "_log"
}

// CreateTableLogStatements returns the statements that create the audit log
// table of the type: the table itself, an index on the primary key column
// (only if the type has one), and the update and delete triggers that copy
// the pre-image of every changed row into the log.
func (t Type) CreateTableLogStatements() []string {
	var (
		logTable = t.LogTable()
		defs     = make([]string, len(t.Fields))
		cols     = make([]string, len(t.Fields))
		olds     = make([]string, len(t.Fields))
	)
	for i, f := range t.Fields {
		defs[i] = f.Name + " " + f.Storage
		cols[i] = f.Name
		olds[i] = "OLD." + f.Name
	}
	stmts := []string{
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s) STRICT;", logTable, strings.Join(defs, ", ")),
	}
	if t.HasPK() {
		stmts = append(stmts, fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s_%s_idx ON %s(%s);", logTable, t.PK.Name, logTable, t.PK.Name))
	}
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);", logTable, strings.Join(cols, ","), strings.Join(olds, ","))
	for _, event := range []string{"update", "delete"} {
		stmts = append(stmts, fmt.Sprintf("CREATE TRIGGER IF NOT EXISTS %s_%s %s ON %s BEGIN %s END;", t.Table, event, strings.ToUpper(event), t.Table, insert))
	}
	return stmts
}

// CreateTableLogSQL returns the statements of CreateTableLogStatements
// joined by single spaces.
func (t Type) CreateTableLogSQL() string {
	return strings.Join(t.CreateTableLogStatements(), " ")
}
