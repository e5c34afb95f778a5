package sql

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/syssam/sqlitegen/dialect"
)

// validIdentifierRe validates pragma names (alphanumeric, underscores, dots for schema.name)
var validIdentifierRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.]*$`)

// isValidIdentifier checks if the string is a valid SQL identifier.
func isValidIdentifier(s string) bool {
	return s != "" && len(s) <= 128 && validIdentifierRe.MatchString(s)
}

// escapeStringValue escapes a string value for use inside a single-quoted SQLite literal.
func escapeStringValue(s string) string {
	if !strings.Contains(s, "'") {
		return s
	}
	return strings.ReplaceAll(s, "'", "''")
}

// ExecQuerier is the handle taken by the context variants of the generated
// operations. *sql.DB, *sql.Tx, *sql.Conn and *Driver all satisfy it.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Pragma is a connection setting, e.g. {"foreign_keys", "ON"}.
type Pragma struct {
	Name  string
	Value string
}

// String returns the PRAGMA statement.
func (p Pragma) String() string {
	return fmt.Sprintf("PRAGMA %s = '%s'", p.Name, escapeStringValue(p.Value))
}

func (p Pragma) validate() error {
	if !isValidIdentifier(p.Name) {
		return fmt.Errorf("dialect/sql: invalid pragma name: %q", p.Name)
	}
	return nil
}

// Driver is a SQLite database handle. Every connection it opens runs its
// pragmas first, so settings such as foreign_keys hold on the whole pool.
type Driver struct {
	*sql.DB
	dialect string
	pragmas []Pragma
}

// Open opens the database at source with the registered driver name.
//
//	drv, err := sql.Open(dialect.SQLite, "file:app.db", sql.Pragma{Name: "foreign_keys", Value: "ON"})
func Open(name, source string, pragmas ...Pragma) (*Driver, error) {
	for _, p := range pragmas {
		if err := p.validate(); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open(name, source)
	if err != nil {
		return nil, err
	}
	if len(pragmas) == 0 {
		return OpenDB(name, db), nil
	}
	c := &connector{driver: db.Driver(), source: source, pragmas: pragmas}
	if err := db.Close(); err != nil {
		return nil, err
	}
	return &Driver{DB: sql.OpenDB(c), dialect: name, pragmas: pragmas}, nil
}

// OpenDB wraps an open database. Its connections run no pragmas.
func OpenDB(name string, db *sql.DB) *Driver {
	return &Driver{DB: db, dialect: name}
}

// Dialect returns dialect.SQLite for both the modernc and the cgo driver
// names, and the driver name otherwise.
func (d *Driver) Dialect() string {
	if strings.HasPrefix(d.dialect, dialect.SQLite) {
		return dialect.SQLite
	}
	return d.dialect
}

// Pragmas returns the pragmas run on every new connection.
func (d *Driver) Pragmas() []Pragma {
	return d.pragmas
}

// connector opens connections of the underlying driver and runs the
// pragmas on each of them.
type connector struct {
	driver  driver.Driver
	source  string
	pragmas []Pragma
}

func (c *connector) Connect(ctx context.Context) (driver.Conn, error) {
	conn, err := c.driver.Open(c.source)
	if err != nil {
		return nil, err
	}
	ex, ok := conn.(driver.ExecerContext)
	if !ok {
		return nil, errors.Join(fmt.Errorf("dialect/sql: connection %T cannot run pragmas", conn), conn.Close())
	}
	for _, p := range c.pragmas {
		if _, err := ex.ExecContext(ctx, p.String(), nil); err != nil {
			return nil, errors.Join(fmt.Errorf("dialect/sql: %s: %w", p, err), conn.Close())
		}
	}
	return conn, nil
}

func (c *connector) Driver() driver.Driver { return c.driver }

var (
	_ ExecQuerier      = (*Driver)(nil)
	_ driver.Connector = (*connector)(nil)
)
