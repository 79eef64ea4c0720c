package parser

import (
	"strings"

	"github.com/cmmoran/sdlgen/pkg/model"
)

// shouldOmitDeclaration determines whether a declaration should be left out
// of rendered SDL based on the configured type exclusions and deprecation
// filter.
func shouldOmitDeclaration(d *model.Declaration, opts *Options) bool {
	if d == nil {
		return false
	}

	name := d.BaseName()
	for _, ex := range opts.ExcludeTypes {
		if strings.EqualFold(ex, name) {
			return true
		}
		// instantiations follow their template
		if d.InstanceOf != "" && strings.EqualFold(ex, d.InstanceOf) {
			return true
		}
	}

	if opts.ExcludeDeprecated && isDeprecated(d) {
		return true
	}

	return false
}

// isDeprecated reports whether the comment block mentions deprecation or the
// header carries @deprecated.
func isDeprecated(d *model.Declaration) bool {
	if containsDirective(d.Directive, "deprecated") {
		return true
	}
	return strings.Contains(strings.ToLower(d.Comments), "deprecated")
}

// containsDirective splits a directive string on "@" and reports whether
// any fragment names the expected directive.
func containsDirective(directives, expected string) bool {
	if directives == "" {
		return false
	}

	for _, part := range strings.Split(directives, "@")[1:] {
		name := part
		if i := strings.IndexAny(part, "( \t"); i >= 0 {
			name = part[:i]
		}
		if name == expected {
			return true
		}
	}

	return false
}
