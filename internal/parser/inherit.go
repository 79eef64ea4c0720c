package parser

import (
	"slices"

	"github.com/cmmoran/sdlgen/pkg/model"
	"github.com/cmmoran/sdlgen/pkg/sdlerr"
)

// resolve merges the properties of every ancestor of d ahead of its own and
// closes its implements list. Results are memoized per declaration; asking
// for a declaration that is still being resolved means inheritance loops.
func (r *resolution) resolve(d *model.Declaration) (*model.Declaration, error) {
	if rd, ok := r.resolved[d]; ok {
		return rd, nil
	}
	if r.resolving[d] {
		return nil, sdlerr.New(sdlerr.CyclicInheritance, string(d.Kind), d.Name, "inheritance cycle").
			WithPath(append(slices.Clone(r.path), d.Name)).
			WithLine(d.Line)
	}
	r.resolving[d] = true
	r.path = append(r.path, d.Name)
	defer func() {
		delete(r.resolving, d)
		r.path = r.path[:len(r.path)-1]
	}()

	out := *d
	out.OriginalProperties = d.Properties
	var (
		props    []*model.Property
		ancestry *model.Annotation
	)
	for _, name := range d.Inherits {
		parent, err := r.ancestor(d, name)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			continue
		}
		if !canInherit(d.Kind, parent.Kind) {
			return nil, sdlerr.Newf(sdlerr.InvalidInheritance, string(d.Kind), d.Name,
				"%s cannot inherit %s", d.Kind.Keyword(), parent.Kind.Keyword()).
				WithRef(name).
				WithLine(d.Line)
		}
		rp, err := r.resolve(parent)
		if err != nil {
			return nil, err
		}
		props = append(props, rp.Properties...)
		if ancestry == nil {
			ancestry = rp.Metadata
		}
	}
	out.Properties = append(props, d.Properties...)
	if out.Metadata == nil {
		out.Metadata = ancestry
	}

	impl, err := r.closeInterfaces(&out)
	if err != nil {
		return nil, err
	}
	out.Implements = impl

	r.resolved[d] = &out
	return &out, nil
}

// ancestor locates the declaration named by an inherits entry. Entries of a
// template that use its own parameters are bound only once the template is
// instantiated; ancestor returns nil for those.
func (r *resolution) ancestor(d *model.Declaration, name string) (*model.Declaration, error) {
	t, err := parseTypeExpr(name)
	if err != nil || t.Elem != nil {
		return nil, sdlerr.New(sdlerr.Syntax, string(d.Kind), d.Name, "invalid inherited name").
			WithRef(name).
			WithLine(d.Line)
	}
	if len(t.letters(d.GenericParameters)) > 0 {
		return nil, nil
	}
	target := r.render(t)
	prefer := []model.Kind{d.Kind}
	if d.Kind == model.KindType {
		prefer = append(prefer, model.KindInterface, model.KindAbstract)
	}
	if p := r.lookup(target, prefer...); p != nil {
		// a bare template name would merge unbound parameters
		if p.IsTemplate() && len(t.Args) != len(p.GenericParameters) {
			return nil, sdlerr.Newf(sdlerr.GenericArity, string(d.Kind), d.Name,
				"%s takes %d type arguments, got %d", p.Name, len(p.GenericParameters), len(t.Args)).
				WithRef(name).
				WithLine(d.Line)
		}
		return p, nil
	}
	return nil, sdlerr.New(sdlerr.MissingAncestor, string(d.Kind), d.Name, "inherited declaration not found").
		WithRef(name).
		WithLine(d.Line)
}

// canInherit reports whether a child kind may inherit a parent kind: a type
// may inherit types, interfaces and abstracts, every other kind its own kind.
func canInherit(child, parent model.Kind) bool {
	if child == parent {
		return true
	}
	return child == model.KindType && (parent == model.KindInterface || parent == model.KindAbstract)
}
