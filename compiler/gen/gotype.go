package gen

import (
	"go/ast"
	"go/types"

	"github.com/dave/jennifer/jen"
)

// qualifiers maps package names used in declared types to import paths.
// Other qualifiers are emitted as written and resolved by the imports pass.
var qualifiers = map[string]string{
	"sql":    "database/sql",
	"time":   "time",
	"json":   "encoding/json",
	"big":    "math/big",
	"netip":  "net/netip",
	"url":    "net/url",
	"uuid":   "github.com/google/uuid",
	"driver": "database/sql/driver",
}

// goType returns the Jennifer code of a declared Go type.
func goType(declared string) jen.Code {
	expr, err := parseType(declared)
	if err != nil {
		return jen.Id(declared)
	}
	return typeCode(expr)
}

func typeCode(e ast.Expr) *jen.Statement {
	switch e := e.(type) {
	case *ast.Ident:
		return jen.Id(e.Name)
	case *ast.StarExpr:
		return jen.Op("*").Add(typeCode(e.X))
	case *ast.ArrayType:
		if e.Len == nil {
			return jen.Index().Add(typeCode(e.Elt))
		}
		return jen.Index(jen.Id(types.ExprString(e.Len))).Add(typeCode(e.Elt))
	case *ast.MapType:
		return jen.Map(typeCode(e.Key)).Add(typeCode(e.Value))
	case *ast.SelectorExpr:
		if x, ok := e.X.(*ast.Ident); ok {
			if path, ok := qualifiers[x.Name]; ok {
				return jen.Qual(path, e.Sel.Name)
			}
		}
		return jen.Id(types.ExprString(e))
	case *ast.IndexExpr:
		return typeCode(e.X).Index(typeCode(e.Index))
	case *ast.IndexListExpr:
		idx := make([]jen.Code, len(e.Indices))
		for i, x := range e.Indices {
			idx[i] = typeCode(x)
		}
		return typeCode(e.X).Index(idx...)
	default:
		return jen.Id(types.ExprString(e))
	}
}
