package parser

import (
	"strings"

	"github.com/jinzhu/inflection"

	iparser "github.com/cmmoran/sdlgen/internal/parser"
)

// DefaultAlias names Paged<Product> "PagedProduct".
func DefaultAlias(base string, args []string) string {
	return iparser.DefaultAlias(base, args)
}

// PluralAlias is DefaultAlias except that list arguments are pluralized:
// Paged<[Product]> becomes "PagedProducts".
func PluralAlias(base string, args []string) string {
	var b strings.Builder
	b.WriteString(base)
	for _, a := range args {
		name := iparser.StripDecoration(a)
		if strings.HasPrefix(strings.TrimSpace(a), "[") {
			name = inflection.Plural(name)
		}
		b.WriteString(name)
	}
	return b.String()
}

// IsGenericMatch reports whether expr is exactly one of the generic letters,
// optionally wrapped in list and non-null markers.
func IsGenericMatch(expr string, letters []string) bool {
	return iparser.IsGenericMatch(expr, letters)
}
