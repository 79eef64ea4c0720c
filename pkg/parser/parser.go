package parser

import (
	iparser "github.com/cmmoran/sdlgen/internal/parser"
	"github.com/cmmoran/sdlgen/pkg/model"
)

// Parser transpiles extended SDL. Every call resolves with fresh caches, so
// a Parser may be shared between goroutines.
type Parser struct {
	Opts Options

	engine *iparser.Engine
}

// New executes the parser with opts.
func New(opts ...Option) (*Parser, error) {
	return NewWithOpts(NewOptions().Apply(opts...))
}

func NewWithOpts(opts *Options) (*Parser, error) {
	if err := opts.Normalize(); err != nil {
		return nil, err
	}

	p := &Parser{
		Opts: *opts,
	}
	p.engine = iparser.NewEngine(p.config())

	return p, nil
}

func (p *Parser) config() iparser.Config {
	alias := p.Opts.AliasFunc
	if alias == nil {
		switch p.Opts.Alias {
		case AliasPlural:
			alias = PluralAlias
		default:
			alias = DefaultAlias
		}
	}
	implements := " & "
	if p.Opts.Implements == ImplementsComma {
		implements = ", "
	}
	return iparser.Config{
		AliasFunc:  alias,
		Extractor:  p.Opts.Extractor,
		Logger:     p.Opts.Logger,
		Indent:     p.Opts.Indent,
		Implements: implements,
		Omit: func(d *model.Declaration) bool {
			return shouldOmitDeclaration(d, &p.Opts)
		},
	}
}

// SetAliasFunc replaces the naming of generic instantiations. It must not
// run concurrently with SchemaAST or Transpile.
func (p *Parser) SetAliasFunc(fn model.AliasFunc) {
	p.Opts.AliasFunc = fn
	p.engine = iparser.NewEngine(p.config())
}

// SchemaAST returns every resolved declaration of schema, including all
// materialized generic instantiations.
func (p *Parser) SchemaAST(schema string) ([]*model.Declaration, error) {
	return p.engine.SchemaAST(schema)
}

// Transpile renders schema as plain SDL.
func (p *Parser) Transpile(schema string) (string, error) {
	return p.engine.Transpile(schema)
}

// Transpile is a one-shot Parser.Transpile.
func Transpile(schema string, opts ...Option) (string, error) {
	p, err := New(opts...)
	if err != nil {
		return "", err
	}
	return p.Transpile(schema)
}

// SchemaAST is a one-shot Parser.SchemaAST.
func SchemaAST(schema string, opts ...Option) ([]*model.Declaration, error) {
	p, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return p.SchemaAST(schema)
}
