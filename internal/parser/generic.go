package parser

import (
	"slices"

	"github.com/cmmoran/sdlgen/pkg/model"
	"github.com/cmmoran/sdlgen/pkg/sdlerr"
)

// materializeUses instantiates every concrete generic use in d: property
// results, argument types and inherited names. Uses bound to d's own
// parameters wait until d itself is instantiated.
func (r *resolution) materializeUses(d *model.Declaration) error {
	for _, name := range d.Inherits {
		t, err := parseTypeExpr(name)
		if err != nil || len(t.letters(d.GenericParameters)) > 0 {
			continue
		}
		if err = r.materialize(t, d); err != nil {
			return err
		}
	}
	for _, p := range d.Properties {
		for _, ref := range references(p) {
			if !ref.IsGeneric || ref.DependsOnParentGenerics {
				continue
			}
			if err := r.materialize(r.exprs[ref], d); err != nil {
				return err
			}
		}
	}
	return nil
}

func references(p *model.Property) []*model.TypeReference {
	var out []*model.TypeReference
	if p.Result != nil {
		out = append(out, p.Result)
	}
	for _, a := range p.Arguments {
		out = append(out, a.Type)
	}
	return out
}

// materialize instantiates the applications in t, innermost first.
func (r *resolution) materialize(t *typeExpr, site *model.Declaration) error {
	if t == nil {
		return nil
	}
	if t.Elem != nil {
		return r.materialize(t.Elem, site)
	}
	if len(t.Args) == 0 {
		return nil
	}
	for _, a := range t.Args {
		if err := r.materialize(a, site); err != nil {
			return err
		}
	}
	_, err := r.instantiate(t, site)
	return err
}

// instantiate synthesizes the concrete declaration for a generic
// application, at most once per alias. The instance is registered before
// its properties are substituted so self-referencing templates terminate.
func (r *resolution) instantiate(app *typeExpr, site *model.Declaration) (*instance, error) {
	alias := r.render(&typeExpr{Name: app.Name, Args: app.Args})
	if inst, ok := r.instances[alias]; ok {
		return inst, nil
	}
	ref := app.String()
	if len(r.stack) >= maxGenericDepth {
		return nil, sdlerr.New(sdlerr.CyclicGeneric, string(site.Kind), site.Name, "generic instantiation does not terminate").
			WithRef(ref).
			WithPath(append(slices.Clone(r.stack), alias))
	}
	tmpl, err := r.template(app.Name, site, ref)
	if err != nil {
		return nil, err
	}
	if len(tmpl.GenericParameters) != len(app.Args) {
		return nil, sdlerr.Newf(sdlerr.GenericArity, string(site.Kind), site.Name,
			"%s takes %d type arguments, got %d", tmpl.Name, len(tmpl.GenericParameters), len(app.Args)).
			WithRef(ref).
			WithLine(site.Line)
	}
	if d := r.decls.Find(alias); d != nil && !d.IsTemplate() {
		return nil, sdlerr.Newf(sdlerr.GenericTypeMismatch, string(site.Kind), site.Name,
			"instantiation name %s collides with a declared %s", alias, d.Kind.Keyword()).
			WithRef(ref).
			WithLine(site.Line)
	}

	bind := make(map[string]*typeExpr, len(app.Args))
	args := make([]string, len(app.Args))
	for i, p := range tmpl.GenericParameters {
		bind[p] = app.Args[i]
		args[i] = r.render(app.Args[i])
	}
	decl := &model.Declaration{
		Kind:             tmpl.Kind,
		Name:             alias,
		Directive:        tmpl.Directive,
		Description:      tmpl.Description,
		Comments:         tmpl.Comments,
		TrailingComments: tmpl.TrailingComments,
		Implements:       slices.Clone(tmpl.Implements),
		Metadata:         tmpl.Metadata,
		InstanceOf:       tmpl.BaseName(),
		TypeArguments:    args,
		Line:             tmpl.Line,
	}
	inst := &instance{alias: alias, template: tmpl, decl: decl}
	r.instances[alias] = inst
	r.order = append(r.order, inst)
	r.log.With("alias", alias, "template", tmpl.Name).Debug("instantiating generic")

	r.stack = append(r.stack, alias)
	defer func() { r.stack = r.stack[:len(r.stack)-1] }()

	for _, name := range tmpl.Inherits {
		t, err := parseTypeExpr(name)
		if err != nil {
			return nil, sdlerr.New(sdlerr.Syntax, string(tmpl.Kind), tmpl.Name, "invalid inherited name").
				WithRef(name).
				WithLine(tmpl.Line)
		}
		st := t.substitute(bind)
		if err = r.materialize(st, decl); err != nil {
			return nil, err
		}
		decl.Inherits = append(decl.Inherits, r.render(st))
	}
	for _, p := range tmpl.Properties {
		np, err := r.substituteProperty(p, bind, decl)
		if err != nil {
			return nil, err
		}
		decl.Properties = append(decl.Properties, np)
	}
	return inst, nil
}

// template finds the generic declaration named name, preferring the kind of
// the declaration using it.
func (r *resolution) template(name string, site *model.Declaration, ref string) (*model.Declaration, error) {
	var tmpl, plain *model.Declaration
	for _, d := range r.decls {
		if d.IsExtend || d.BaseName() != name {
			continue
		}
		switch {
		case d.IsTemplate() && d.Kind == site.Kind:
			return d, nil
		case d.IsTemplate() && tmpl == nil:
			tmpl = d
		case !d.IsTemplate() && plain == nil:
			plain = d
		}
	}
	switch {
	case tmpl != nil:
		return tmpl, nil
	case plain != nil:
		return nil, sdlerr.Newf(sdlerr.NotGeneric, string(site.Kind), site.Name,
			"%s %s has no generic parameters", plain.Kind.Keyword(), plain.Name).
			WithRef(ref).
			WithLine(site.Line)
	}
	return nil, sdlerr.New(sdlerr.MissingGenericTemplate, string(site.Kind), site.Name, "generic template not found").
		WithRef(ref).
		WithLine(site.Line)
}

// substituteProperty copies a template property with its generic parameters
// bound, instantiating whatever concrete applications that produces.
func (r *resolution) substituteProperty(p *model.Property, bind map[string]*typeExpr, site *model.Declaration) (*model.Property, error) {
	np := &model.Property{
		Comments:    p.Comments,
		Description: p.Description,
		Name:        p.Name,
		Metadata:    p.Metadata,
	}
	for _, a := range p.Arguments {
		t, err := r.substituteRef(a.Type, bind, site)
		if err != nil {
			return nil, err
		}
		np.Arguments = append(np.Arguments, &model.Parameter{Description: a.Description, Name: a.Name, Type: t})
	}
	if len(np.Arguments) > 0 {
		np.Parameters = renderArguments(np.Arguments)
	}
	res, err := r.substituteRef(p.Result, bind, site)
	if err != nil {
		return nil, err
	}
	np.Result = res
	return np, nil
}

func (r *resolution) substituteRef(ref *model.TypeReference, bind map[string]*typeExpr, site *model.Declaration) (*model.TypeReference, error) {
	if ref == nil {
		return nil, nil
	}
	t, ok := r.exprs[ref]
	if !ok || !ref.DependsOnParentGenerics {
		return ref, nil
	}
	st := t.substitute(bind)
	if err := r.materialize(st, site); err != nil {
		return nil, err
	}
	return r.reference(st.String(), st, nil, ref.Directive), nil
}
