package parser

import "strings"

var decoration = strings.NewReplacer("[", "", "]", "", "!", "", " ", "")

// DefaultAlias concatenates the template name with every argument stripped
// of list and non-null markers: Paged<[Product!]> becomes PagedProduct.
func DefaultAlias(base string, args []string) string {
	var b strings.Builder
	b.WriteString(base)
	for _, a := range args {
		b.WriteString(StripDecoration(a))
	}
	return b.String()
}

// StripDecoration removes list and non-null markers from a type.
func StripDecoration(t string) string {
	return decoration.Replace(t)
}
