package gen

import (
	"go/token"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	rules    = ruleset()
	title    = cases.Title(language.Und, cases.NoLower)
	acronyms = make(map[string]struct{})
)

func ruleset() *inflect.Ruleset {
	rules := inflect.NewDefaultRuleset()
	// Add common initialisms from golint and more.
	for _, w := range []string{
		"ACL", "API", "ASCII", "AWS", "CPU", "CSS", "DNS", "EOF", "GB", "GUID",
		"HCL", "HTML", "HTTP", "HTTPS", "ID", "IP", "JSON", "KB", "LHS", "MAC",
		"MB", "QPS", "RAM", "RHS", "RPC", "SLA", "SMTP", "SQL", "SSH", "SSO",
		"TCP", "TLS", "TTL", "UDP", "UI", "UID", "URI", "URL", "UTF8", "UUID",
		"VM", "XML", "XMPP", "XSRF", "XSS",
	} {
		acronyms[w] = struct{}{}
		rules.AddAcronym(w)
	}
	return rules
}

// AddAcronym adds a new acronym to the list used by the Go identifier
// conversion, e.g. "VIN" turns field "vin_no" into "VINNo".
func AddAcronym(word string) {
	word = strings.ToUpper(word)
	acronyms[word] = struct{}{}
	rules.AddAcronym(word)
}

// TableName converts a word-capitalized type name to its storage name.
//
// Words break on lower→upper, digit→upper and acronym→word transitions and
// on '_', '-' or ' '. Digits never start a word: they stay attached to the
// run before them, so "M2yDog" is m2y_dog and "My2Dog" is my2_dog.
func TableName(ident string) string {
	return strings.ToLower(strings.Join(words(ident), "_"))
}

// words splits ident on the boundaries described in TableName.
func words(ident string) []string {
	var (
		out []string
		cur []rune
		rs  = []rune(ident)
	)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}
	for i, r := range rs {
		if isSeparator(r) {
			flush()
			continue
		}
		if len(cur) > 0 {
			prev := rs[i-1]
			switch {
			case unicode.IsLower(prev) && unicode.IsUpper(r):
				flush()
			case unicode.IsDigit(prev) && unicode.IsUpper(r):
				flush()
			case unicode.IsUpper(prev) && unicode.IsUpper(r) && i+1 < len(rs) && unicode.IsLower(rs[i+1]):
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return out
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}

// pascal converts a column name to an exported Go identifier.
//
//	pascal("serial_no") => "SerialNo"
//	pascal("user_id")   => "UserID"
//	pascal("serialNo")  => "SerialNo"
func pascal(s string) string {
	ws := strings.FieldsFunc(s, isSeparator)
	for i, w := range ws {
		upper := strings.ToUpper(w)
		if _, ok := acronyms[upper]; ok {
			ws[i] = upper
		} else {
			ws[i] = title.String(w)
		}
	}
	return strings.Join(ws, "")
}

// camel converts a column name to an unexported Go identifier.
func camel(s string) string {
	p := pascal(s)
	if p == "" {
		return p
	}
	// Leading acronyms are lowered as a whole: "ID" => "id", "URLPath" => "urlPath".
	var lead string
	for upper := range acronyms {
		if len(upper) > len(lead) && strings.HasPrefix(p, upper) && (len(p) == len(upper) || !unicode.IsLower(rune(p[len(upper)]))) {
			lead = upper
		}
	}
	if lead != "" {
		return safeIdent(strings.ToLower(lead) + p[len(lead):])
	}
	rs := []rune(p)
	rs[0] = unicode.ToLower(rs[0])
	return safeIdent(string(rs))
}

// receiver returns the receiver name of the given type.
//
//	[]T       => t
//	[1]T      => t
//	User      => u
//	UserQuery => uq
func receiver(s string) string {
	if i := strings.LastIndexAny(s, "]*"); i >= 0 {
		s = s[i+1:]
	}
	var b strings.Builder
	for _, w := range words(s) {
		b.WriteRune(unicode.ToLower([]rune(w)[0]))
	}
	return safeIdent(b.String())
}

// reserved holds identifiers used by generated function bodies.
var reserved = map[string]struct{}{
	"affected": {}, "cache": {}, "ctx": {}, "err": {}, "ex": {}, "out": {},
	"res": {}, "rows": {}, "stmt": {}, "sql": {}, "context": {}, "errors": {},
	"sqlitegen": {}, "sqlitegensql": {}, "fmt": {}, "v": {}, "key": {}, "row": {}, "rowID": {},
}

func safeIdent(s string) string {
	if s == "" {
		return "_"
	}
	if _, ok := reserved[s]; ok || token.IsKeyword(s) {
		return s + "_"
	}
	return s
}

// plural returns the plural form of a type name for list helpers.
func plural(name string) string {
	p := rules.Pluralize(name)
	if p == name {
		p += "Slice"
	}
	return p
}
