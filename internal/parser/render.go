package parser

import (
	"strings"

	"github.com/cmmoran/sdlgen/pkg/model"
)

// buildText renders resolved declarations as plain SDL: directive bodies
// first, then every emitted declaration in source order, then generic
// instantiations in the order they were created.
func (r *resolution) buildText(resolved []*model.Declaration) string {
	var blocks []string
	for _, d := range r.directives {
		blocks = append(blocks, strings.TrimSpace(d.Definition))
	}
	for _, d := range resolved {
		if d.Kind == model.KindDirective && !r.omit(d) {
			blocks = append(blocks, renderDeclaration(d, r.cfg))
		}
	}
	for _, d := range resolved {
		if d.IsTemplate() || d.Kind == model.KindAbstract || d.Kind == model.KindDirective || r.omit(d) {
			continue
		}
		blocks = append(blocks, renderDeclaration(d, r.cfg))
	}
	for _, inst := range r.order {
		if inst.resolved.Kind == model.KindAbstract || r.omit(inst.resolved) {
			continue
		}
		blocks = append(blocks, inst.text)
	}
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

func (r *resolution) omit(d *model.Declaration) bool {
	return r.cfg.Omit != nil && r.cfg.Omit(d)
}

// buildAst returns every resolved declaration, the materialized
// instantiations and the directive pseudo-declarations.
func (r *resolution) buildAst(resolved []*model.Declaration) []*model.Declaration {
	out := make([]*model.Declaration, 0, len(resolved)+len(r.order)+len(r.directives))
	out = append(out, resolved...)
	for _, inst := range r.order {
		out = append(out, inst.resolved)
	}
	return append(out, r.directives...)
}

// renderDeclaration renders one declaration:
//
//	[description][comments]
//	[extend ]kind name[ implements A & B][ directive] { properties [trailing comments] }
//
// cfg.Implements separates the implemented interfaces.
func renderDeclaration(d *model.Declaration, cfg *Config) string {
	var b strings.Builder
	if d.Description != "" {
		b.WriteString(d.Description)
		b.WriteByte('\n')
	}
	if d.Comments != "" {
		b.WriteString(d.Comments)
		b.WriteByte('\n')
	}
	if d.Kind == model.KindDirective {
		b.WriteString(strings.TrimSpace(d.Definition))
		return b.String()
	}
	if d.IsExtend {
		b.WriteString("extend ")
	}
	b.WriteString(d.Kind.Keyword())
	if d.Name != "" {
		b.WriteByte(' ')
		b.WriteString(d.Name)
	}
	if len(d.Implements) > 0 {
		b.WriteString(" implements ")
		b.WriteString(strings.Join(d.Implements, cfg.Implements))
	}
	if d.Directive != "" {
		b.WriteByte(' ')
		b.WriteString(d.Directive)
	}
	switch d.Kind {
	case model.KindScalar:
		return b.String()
	case model.KindUnion:
		if len(d.Members) > 0 {
			b.WriteString(" = ")
			b.WriteString(strings.Join(d.Members, " | "))
		}
		return b.String()
	}
	b.WriteString(" {\n")
	for _, p := range d.Properties {
		renderProperty(&b, p, cfg.Indent)
	}
	writeComments(&b, d.TrailingComments, cfg.Indent)
	b.WriteString("}")
	return b.String()
}

// renderProperty writes name[(parameters)][: result][ directive], preceded
// by its comment block, indented one level.
func renderProperty(b *strings.Builder, p *model.Property, indent string) {
	writeComments(b, p.Comments, indent)
	if p.Description != "" {
		b.WriteString(indent)
		b.WriteString(p.Description)
		b.WriteByte('\n')
	}
	b.WriteString(indent)
	b.WriteString(p.Name)
	if p.Parameters != "" {
		b.WriteString("(")
		b.WriteString(p.Parameters)
		b.WriteString(")")
	}
	if p.Result != nil {
		if p.Result.ResolvedName != "" {
			b.WriteString(": ")
			b.WriteString(p.Result.ResolvedName)
		}
		if p.Result.Directive != "" {
			b.WriteByte(' ')
			b.WriteString(p.Result.Directive)
		}
	}
	b.WriteByte('\n')
}

// writeComments writes each line of a comment block indented one level.
func writeComments(b *strings.Builder, comments, indent string) {
	if comments == "" {
		return
	}
	for _, l := range strings.Split(comments, "\n") {
		b.WriteString(indent)
		b.WriteString(strings.TrimSpace(l))
		b.WriteByte('\n')
	}
}
