package parser

import (
	"strings"

	"github.com/cmmoran/sdlgen/pkg/model"
)

// attachMetadata hangs extracted annotations on the declarations and
// properties they name. Directive annotations become DIRECTIVE
// pseudo-declarations whose body is emitted verbatim.
func (r *resolution) attachMetadata(anns []*model.Annotation) {
	for _, a := range anns {
		if a == nil {
			continue
		}
		switch {
		case a.Name == model.DirectiveAnnotation:
			body := strings.TrimSpace(a.Body)
			r.directives = append(r.directives, &model.Declaration{
				Kind:       model.KindDirective,
				Name:       headerName(model.KindDirective, strings.TrimPrefix(body, "directive")),
				Definition: body,
				Metadata:   a,
			})
		case a.DeclarationKind == model.KindProperty:
			r.attachPropertyMetadata(a)
		default:
			for _, d := range r.decls {
				if d.Kind == a.DeclarationKind && d.BaseName() == a.DeclarationName && d.Metadata == nil {
					d.Metadata = a
					break
				}
			}
		}
	}
}

func (r *resolution) attachPropertyMetadata(a *model.Annotation) {
	for _, d := range r.decls {
		if d.BaseName() != a.Parent {
			continue
		}
		for _, p := range d.Properties {
			if p.Name == a.DeclarationName && p.Metadata == nil {
				p.Metadata = a
				return
			}
		}
	}
}
