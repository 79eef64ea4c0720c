package parser

import (
	"log/slog"

	"github.com/cmmoran/sdlgen/pkg/model"
)

// maxGenericDepth bounds nested instantiation. Templates that keep wrapping
// their own parameters (A<T> { next: A<Box<T>> }) never reach a fixed point.
const maxGenericDepth = 32

// resolution holds every cache of one SchemaAST or Transpile call. It is
// built per call and dropped afterwards, so nothing leaks between calls.
type resolution struct {
	cfg *Config
	log *slog.Logger

	decls      model.Declarations
	directives []*model.Declaration // from metadata annotations

	// alias names, keyed by canonical type expression
	names map[string]string
	exprs map[*model.TypeReference]*typeExpr

	// inheritance
	resolved  map[*model.Declaration]*model.Declaration
	resolving map[*model.Declaration]bool
	path      []string

	// interface closure
	closures map[string][]string
	closing  map[string]bool
	ipath    []string

	// generic instantiation
	instances map[string]*instance
	order     []*instance
	stack     []string
}

// instance is a concrete declaration synthesized from a generic template.
type instance struct {
	alias    string
	template *model.Declaration
	decl     *model.Declaration
	resolved *model.Declaration
	text     string
}

func newResolution(cfg *Config) *resolution {
	return &resolution{
		cfg:       cfg,
		log:       cfg.Logger,
		names:     make(map[string]string),
		exprs:     make(map[*model.TypeReference]*typeExpr),
		resolved:  make(map[*model.Declaration]*model.Declaration),
		resolving: make(map[*model.Declaration]bool),
		closures:  make(map[string][]string),
		closing:   make(map[string]bool),
		instances: make(map[string]*instance),
	}
}

// render returns the concrete name of t, generic applications replaced by
// their aliases.
func (r *resolution) render(t *typeExpr) string {
	if t.NonNull {
		inner := *t
		inner.NonNull = false
		return r.render(&inner) + "!"
	}
	key := t.String()
	if s, ok := r.names[key]; ok {
		return s
	}
	var s string
	switch {
	case t.Elem != nil:
		s = "[" + r.render(t.Elem) + "]"
	case len(t.Args) > 0:
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = r.render(a)
		}
		s = r.cfg.AliasFunc(t.Name, args)
	default:
		s = t.Name
	}
	r.names[key] = s
	return s
}

// reference builds the TypeReference for a type written as raw inside a
// declaration with the given generic parameters.
func (r *resolution) reference(raw string, t *typeExpr, params []string, directive string) *model.TypeReference {
	ref := &model.TypeReference{
		OriginName: raw,
		Directive:  directive,
	}
	ref.GenericParentLetters = t.letters(params)
	ref.DependsOnParentGenerics = len(ref.GenericParentLetters) > 0
	ref.IsGeneric = ref.DependsOnParentGenerics || t.hasApplication()
	if ref.DependsOnParentGenerics {
		ref.ResolvedName = t.String()
	} else {
		ref.ResolvedName = r.render(t)
	}
	r.exprs[ref] = t
	return ref
}

// lookup finds a parsed declaration or a synthesized instance by name.
func (r *resolution) lookup(name string, prefer ...model.Kind) *model.Declaration {
	if d := r.decls.Find(name, prefer...); d != nil {
		return d
	}
	if inst, ok := r.instances[name]; ok {
		return inst.decl
	}
	return nil
}
