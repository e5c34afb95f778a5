package sql

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
)

// StmtCache is a prepared-statement cache keyed by statement text. It backs
// the synchronous variants of the generated operations, which take no
// context and reuse one *sql.Stmt per distinct statement.
type StmtCache struct {
	db    *sql.DB
	mu    sync.Mutex
	stmts map[string]*sql.Stmt
}

// NewStmtCache returns an empty cache over db.
func NewStmtCache(db *sql.DB) *StmtCache {
	return &StmtCache{db: db, stmts: make(map[string]*sql.Stmt)}
}

// DB returns the underlying database handle.
func (c *StmtCache) DB() *sql.DB { return c.db }

// Prepare returns the cached statement for query, preparing it on first use.
func (c *StmtCache) Prepare(query string) (*sql.Stmt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stmts == nil {
		return nil, errors.New("dialect/sql: statement cache is closed")
	}
	if stmt, ok := c.stmts[query]; ok {
		return stmt, nil
	}
	stmt, err := c.db.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: prepare: %w", err)
	}
	c.stmts[query] = stmt
	return stmt, nil
}

// Len returns the number of cached statements.
func (c *StmtCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.stmts)
}

// Close closes every cached statement. The cache cannot be used afterwards;
// the underlying *sql.DB is left open.
func (c *StmtCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var errs []error
	for _, stmt := range c.stmts {
		if err := stmt.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.stmts = nil
	return errors.Join(errs...)
}
