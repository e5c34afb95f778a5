package gen

import "strings"

// Role is the part a column plays, derived from its constraint text.
type Role int

// Column roles.
const (
	RoleNone Role = iota
	RolePK
	RoleUnique
	RoleForeignKey
)

// Constraint prefixes recognized by Classify. Matching is byte-exact and
// case sensitive: "rEFERENCES x(y)" is deliberately not a foreign key.
const (
	prefixPK         = "PRIMARY KEY"
	prefixUnique     = "UNIQUE"
	prefixForeignKey = "REFERENCES "
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RolePK:
		return "primary key"
	case RoleUnique:
		return "unique"
	case RoleForeignKey:
		return "foreign key"
	default:
		return "none"
	}
}

// Classify returns the role of a column with the given constraint text.
func Classify(constraint string) Role {
	switch {
	case strings.HasPrefix(constraint, prefixPK):
		return RolePK
	case strings.HasPrefix(constraint, prefixUnique):
		return RoleUnique
	case strings.HasPrefix(constraint, prefixForeignKey):
		return RoleForeignKey
	default:
		return RoleNone
	}
}
