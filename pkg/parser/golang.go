package parser

import (
	"github.com/dave/jennifer/jen"

	"github.com/cmmoran/sdlgen/pkg/model"
)

// GenerateGoFile builds a Go source file that embeds the transpiled schema
// as the Schema constant and lists the emitted type names in Types.
func (p *Parser) GenerateGoFile(schema string, decls []*model.Declaration) *jen.File {
	f := jen.NewFile(p.Opts.GoPackage)
	f.HeaderComment("Code generated by sdlgen. DO NOT EDIT.")

	f.Comment("Schema is the transpiled SDL.")
	f.Const().Id("Schema").Op("=").Lit(schema)

	f.Comment("Types lists the named declarations emitted into Schema.")
	f.Var().Id("Types").Op("=").Index().String().ValuesFunc(func(g *jen.Group) {
		for _, name := range p.EmittedNames(decls) {
			g.Lit(name)
		}
	})

	return f
}

// EmittedNames returns, in order and without duplicates, the names of the
// declarations Transpile renders as standalone types.
func (p *Parser) EmittedNames(decls []*model.Declaration) []string {
	seen := make(map[string]bool, len(decls))
	out := make([]string, 0, len(decls))
	for _, d := range decls {
		switch {
		case d == nil || d.IsExtend || d.IsTemplate():
			continue
		case d.Kind == model.KindAbstract || d.Kind == model.KindDirective || d.Kind == model.KindSchema:
			continue
		case shouldOmitDeclaration(d, &p.Opts) || seen[d.Name]:
			continue
		}
		seen[d.Name] = true
		out = append(out, d.Name)
	}
	return out
}
