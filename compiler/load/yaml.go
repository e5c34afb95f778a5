package load

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// File loads the record types described by the YAML file at path.
func File(path string) ([]*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return Bytes(path, data)
}

// Path loads a single description file, or every *.yaml and *.yml file of
// a directory in lexical order.
func Path(path string) ([]*Schema, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	if !info.IsDir() {
		return File(path)
	}
	files, err := Files(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("load: no schema files found in %s", path)
	}
	var schemas []*Schema
	for _, f := range files {
		s, err := File(f)
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, s...)
	}
	return schemas, nil
}

// Files returns the description files of dir in lexical order.
func Files(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !IsSchemaFile(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// IsSchemaFile reports whether name has a YAML extension.
func IsSchemaFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// Bytes parses a YAML description. name is used in positions only.
//
//	types:
//	  - name: Cat
//	    sql: { option: "WITHOUT ROWID" }
//	    fields:
//	      - name: id
//	        type: int64
//	        sql: { constraint: "PRIMARY KEY" }
//	      - name: mother
//	        type: int64
//	        sql: { constraint: "REFERENCES cat(id)" }
func Bytes(name string, data []byte) ([]*Schema, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("load: %s: %w", name, err)
	}
	p := &parser{file: name}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}
	return p.document(doc.Content[0])
}

type parser struct {
	file string
}

func (p *parser) pos(n *yaml.Node) Pos {
	return Pos{File: p.file, Line: n.Line, Col: n.Column}
}

func (p *parser) document(root *yaml.Node) ([]*Schema, error) {
	if root.Kind != yaml.MappingNode {
		return nil, errorf(p.pos(root), "expected a mapping with a \"types\" key")
	}
	var schemas []*Schema
	err := p.mapping(root, func(k, v *yaml.Node) error {
		if k.Value != "types" {
			return errorf(p.pos(k), "unknown key %q", k.Value)
		}
		if v.Kind != yaml.SequenceNode {
			return errorf(p.pos(v), "types: expected a sequence")
		}
		for _, n := range v.Content {
			s, err := p.schema(n)
			if err != nil {
				return err
			}
			schemas = append(schemas, s)
		}
		return nil
	})
	return schemas, err
}

func (p *parser) schema(n *yaml.Node) (*Schema, error) {
	if n.Kind != yaml.MappingNode {
		return nil, errorf(p.pos(n), "type: expected a mapping")
	}
	s := &Schema{Pos: p.pos(n)}
	err := p.mapping(n, func(k, v *yaml.Node) error {
		switch k.Value {
		case "name":
			name, err := p.ident(k, v)
			if err != nil {
				return err
			}
			s.Name, s.Pos = name, p.pos(v)
		case ScopeSQL, ScopeSQLAs:
			attrs, err := p.attrs(k.Value, v)
			if err != nil {
				return err
			}
			s.Attrs = append(s.Attrs, attrs...)
		case "fields":
			if v.Kind != yaml.SequenceNode {
				return errorf(p.pos(v), "fields: expected a sequence")
			}
			for _, fn := range v.Content {
				f, err := p.field(fn)
				if err != nil {
					return err
				}
				s.Fields = append(s.Fields, f)
			}
		default:
			return errorf(p.pos(k), "unknown type key %q", k.Value)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.Name == "" {
		return nil, errorf(s.Pos, "type: missing name")
	}
	return s, nil
}

func (p *parser) field(n *yaml.Node) (*Field, error) {
	if n.Kind != yaml.MappingNode {
		return nil, errorf(p.pos(n), "field: expected a mapping")
	}
	f := &Field{Pos: p.pos(n)}
	err := p.mapping(n, func(k, v *yaml.Node) error {
		switch k.Value {
		case "name":
			name, err := p.ident(k, v)
			if err != nil {
				return err
			}
			f.Name, f.Pos = name, p.pos(v)
		case "type":
			if v.Kind != yaml.ScalarNode || v.Value == "" {
				return errorf(p.pos(v), "field type: expected a type name")
			}
			f.Type = v.Value
		case ScopeSQL, ScopeSQLAs:
			attrs, err := p.attrs(k.Value, v)
			if err != nil {
				return err
			}
			f.Attrs = append(f.Attrs, attrs...)
		default:
			return errorf(p.pos(k), "unknown field key %q", k.Value)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	switch {
	case f.Name == "":
		return nil, errorf(f.Pos, "field: missing name")
	case f.Type == "":
		return nil, errorf(f.Pos, "field %s: missing type", f.Name)
	}
	return f, nil
}

// attrs keeps every key of the scope mapping. Unknown keys and non-string
// values are left for the schema builder to report.
func (p *parser) attrs(scope string, n *yaml.Node) ([]Attr, error) {
	if n.Kind != yaml.MappingNode {
		return nil, errorf(p.pos(n), "%s: expected a mapping", scope)
	}
	var attrs []Attr
	err := p.mapping(n, func(k, v *yaml.Node) error {
		attrs = append(attrs, Attr{
			Scope:  scope,
			Key:    k.Value,
			KeyPos: p.pos(k),
			Value:  Lit{Raw: literal(v), Pos: p.pos(v)},
		})
		return nil
	})
	return attrs, err
}

func (p *parser) ident(k, v *yaml.Node) (string, error) {
	if v.Kind != yaml.ScalarNode || v.ShortTag() != "!!str" || v.Value == "" {
		return "", errorf(p.pos(v), "%s: expected an identifier", k.Value)
	}
	return v.Value, nil
}

func (p *parser) mapping(n *yaml.Node, fn func(k, v *yaml.Node) error) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := fn(n.Content[i], n.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// literal renders a YAML value as an attribute token. Only string scalars
// become double-quoted literals.
func literal(n *yaml.Node) string {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	switch n.Kind {
	case yaml.ScalarNode:
		if n.ShortTag() == "!!str" {
			return strconv.Quote(n.Value)
		}
		return n.Value
	case yaml.MappingNode:
		return "{...}"
	case yaml.SequenceNode:
		return "[...]"
	default:
		return ""
	}
}
