package gen

import (
	"errors"
	"fmt"

	"github.com/syssam/sqlitegen/compiler/load"
)

// Graph holds the record types of one description and the config
// used to generate them.
type Graph struct {
	*Config
	// Nodes are the types of the graph, in description order.
	Nodes []*Type
}

// NewGraph creates a new graph from the given schemas. A schema that fails
// to build does not affect the others: the returned graph holds every type
// that built, and the error joins the failures of all the rest.
func NewGraph(c *Config, schemas ...*load.Schema) (*Graph, error) {
	if c == nil {
		c = DefaultConfig()
	}
	g := &Graph{Config: c, Nodes: make([]*Type, 0, len(schemas))}
	var (
		errs   []error
		names  = make(map[string]*Type, len(schemas))
		tables = make(map[string]*Type, len(schemas))
	)
	for _, s := range schemas {
		t, err := NewType(c, s)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if prev, ok := names[t.Name]; ok {
			errs = append(errs, t.schemaError(t.Pos(), "", fmt.Sprintf("type redeclared (previous declaration at %s)", prev.Pos()), nil))
			continue
		}
		if prev, ok := tables[t.Table]; ok {
			errs = append(errs, t.schemaError(t.Pos(), "", fmt.Sprintf("table %q is also used by type %s", t.Table, prev.Name), nil))
			continue
		}
		names[t.Name] = t
		tables[t.Table] = t
		g.Nodes = append(g.Nodes, t)
	}
	return g, errors.Join(errs...)
}

// MustNewGraph is like NewGraph but panics on error.
func MustNewGraph(c *Config, schemas ...*load.Schema) *Graph {
	g, err := NewGraph(c, schemas...)
	if err != nil {
		panic(err)
	}
	return g
}

// Type returns the type with the given name.
func (g *Graph) Type(name string) (*Type, bool) {
	for _, t := range g.Nodes {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Tables returns the table names of all types, in order.
func (g *Graph) Tables() []string {
	tables := make([]string, len(g.Nodes))
	for i, t := range g.Nodes {
		tables[i] = t.Table
	}
	return tables
}
