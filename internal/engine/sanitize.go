package engine

import (
	"strings"
	"unicode"
)

// SanitizeIdentifier turns name into a valid identifier. Every rune that is
// not a letter, a decimal digit or '_' is replaced by exactly one '_', so
// repeated illegal runes yield repeated underscores. A leading digit gets a
// '_' prefix. An empty name becomes a single "_" rather than an empty
// string, since an empty identifier is never valid; callers treat an empty
// override as "derive" and never pass one.
//
// Reserved words are not escaped; an override such as "class" produces a
// unit that will not compile.
func SanitizeIdentifier(name string) string {
	if name == "" {
		return "_"
	}
	var b strings.Builder
	b.Grow(len(name) + 1)
	for i, r := range name {
		if i == 0 && unicode.IsDigit(r) {
			b.WriteByte('_')
		}
		if isIdentifierRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// SanitizeNamespace sanitizes each '.'-separated segment of ns independently.
// Empty segments are dropped, so "Project." and "Project..Sub" collapse to
// "Project" and "Project.Sub".
func SanitizeNamespace(ns string) string {
	segments := strings.Split(ns, ".")
	out := segments[:0]
	for _, s := range segments {
		if s == "" {
			continue
		}
		out = append(out, SanitizeIdentifier(s))
	}
	return strings.Join(out, ".")
}

func isIdentifierRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
