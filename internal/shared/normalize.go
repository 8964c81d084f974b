package shared

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var nameFolder = cases.Fold()

// NormalizeName trims and collapses interior whitespace so catalog
// names compare consistently.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// EqualNameFold reports whether two normalized names match ignoring
// case, using Unicode case folding rather than ASCII-only lowering.
func EqualNameFold(a, b string) bool {
	return nameFolder.String(NormalizeName(a)) == nameFolder.String(NormalizeName(b))
}

// TitleName renders a name with title casing for display contexts.
func TitleName(name string) string {
	return cases.Title(language.Und).String(NormalizeName(name))
}
