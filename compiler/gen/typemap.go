package gen

import (
	"go/ast"
	"go/parser"
	"strings"
)

// Storage classes of STRICT tables.
const (
	Integer        = "INTEGER"
	Real           = "REAL"
	Text           = "TEXT"
	Blob           = "BLOB"
	Any            = "ANY"
	IntegerNotNull = Integer + " NOT NULL"
	RealNotNull    = Real + " NOT NULL"
	TextNotNull    = Text + " NOT NULL"
	BlobNotNull    = Blob + " NOT NULL"
)

// storageClasses maps declared Go types to storage classes. Types not
// listed map to ANY.
var storageClasses = map[string]string{
	"bool":   IntegerNotNull,
	"uint8":  IntegerNotNull,
	"byte":   IntegerNotNull,
	"uint16": IntegerNotNull,
	"uint32": IntegerNotNull,
	"int8":   IntegerNotNull,
	"int16":  IntegerNotNull,
	"int32":  IntegerNotNull,
	"int64":  IntegerNotNull,
	"int":    IntegerNotNull,

	"float32": RealNotNull,
	"float64": RealNotNull,

	"string": TextNotNull,

	"[]byte":  BlobNotNull,
	"[]uint8": BlobNotNull,

	"*bool":         Integer,
	"*uint8":        Integer,
	"*byte":         Integer,
	"*uint16":       Integer,
	"*uint32":       Integer,
	"*int8":         Integer,
	"*int16":        Integer,
	"*int32":        Integer,
	"*int64":        Integer,
	"*int":          Integer,
	"sql.NullBool":  Integer,
	"sql.NullByte":  Integer,
	"sql.NullInt16": Integer,
	"sql.NullInt32": Integer,
	"sql.NullInt64": Integer,

	"*float32":        Real,
	"*float64":        Real,
	"sql.NullFloat64": Real,

	"*string":        Text,
	"sql.NullString": Text,

	"*[]byte":  Blob,
	"*[]uint8": Blob,
}

// normalizeType strips insignificant blanks from a declared type.
func normalizeType(declared string) string {
	return strings.Join(strings.Fields(declared), "")
}

// StorageClass returns the storage class of a declared Go type.
func StorageClass(declared string) string {
	if s, ok := storageClasses[normalizeType(declared)]; ok {
		return s
	}
	return Any
}

// IsRowID reports whether the declared type belongs to the 64-bit signed
// integer family that SQLite uses for row identifiers.
func IsRowID(declared string) bool {
	return normalizeType(declared) == "int64"
}

// KeyKind describes how the presence of a key value is checked.
type KeyKind int

// Key kinds.
const (
	KeyNone     KeyKind = iota // no check is possible
	KeySigned                  // v > 0
	KeyUnsigned                // v != 0
	KeyString                  // v != ""
	KeyPointer                 // v != nil
	KeyNull                    // v.Valid
)

// String returns the kind name.
func (k KeyKind) String() string {
	switch k {
	case KeySigned:
		return "signed"
	case KeyUnsigned:
		return "unsigned"
	case KeyString:
		return "string"
	case KeyPointer:
		return "pointer"
	case KeyNull:
		return "null"
	default:
		return "none"
	}
}

// KeyKindOf returns the key check kind of a declared Go type.
func KeyKindOf(declared string) KeyKind {
	t := normalizeType(declared)
	switch {
	case t == "int" || t == "int8" || t == "int16" || t == "int32" || t == "int64" || t == "float32" || t == "float64":
		return KeySigned
	case t == "uint" || t == "uint8" || t == "byte" || t == "uint16" || t == "uint32" || t == "uint64":
		return KeyUnsigned
	case t == "string":
		return KeyString
	case strings.HasPrefix(t, "*"):
		return KeyPointer
	case strings.HasPrefix(t, "sql.Null"):
		return KeyNull
	default:
		return KeyNone
	}
}

// parseType parses a declared type as a Go type expression.
func parseType(declared string) (ast.Expr, error) {
	return parser.ParseExpr(declared)
}

// validType reports whether the declared type is a Go type expression
// that can be used as a struct field type.
func validType(declared string) bool {
	expr, err := parseType(declared)
	if err != nil {
		return false
	}
	return isTypeExpr(expr)
}

func isTypeExpr(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.Ident:
		return true
	case *ast.StarExpr:
		return isTypeExpr(e.X)
	case *ast.ArrayType:
		return isTypeExpr(e.Elt)
	case *ast.MapType:
		return isTypeExpr(e.Key) && isTypeExpr(e.Value)
	case *ast.SelectorExpr:
		_, ok := e.X.(*ast.Ident)
		return ok
	case *ast.IndexExpr:
		return isTypeExpr(e.X) && isTypeExpr(e.Index)
	case *ast.IndexListExpr:
		for _, idx := range e.Indices {
			if !isTypeExpr(idx) {
				return false
			}
		}
		return isTypeExpr(e.X)
	case *ast.InterfaceType:
		return true
	default:
		return false
	}
}
