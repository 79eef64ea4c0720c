package parser

import (
	"slices"

	"github.com/cmmoran/sdlgen/pkg/model"
	"github.com/cmmoran/sdlgen/pkg/sdlerr"
)

// closeInterfaces returns the deduplicated union of the closures of every
// interface d implements.
func (r *resolution) closeInterfaces(d *model.Declaration) ([]string, error) {
	if len(d.Implements) == 0 {
		return nil, nil
	}
	var out []string
	for _, name := range d.Implements {
		cl, err := r.closure(d, name)
		if err != nil {
			return nil, err
		}
		out = appendUnique(out, cl...)
	}
	return out, nil
}

// closure returns name followed by everything it transitively implements.
func (r *resolution) closure(from *model.Declaration, name string) ([]string, error) {
	if cl, ok := r.closures[name]; ok {
		return cl, nil
	}
	if r.closing[name] {
		return nil, sdlerr.New(sdlerr.CyclicInterface, string(from.Kind), from.Name, "implements cycle").
			WithRef(name).
			WithPath(append(slices.Clone(r.ipath), name)).
			WithLine(from.Line)
	}
	iface := r.decls.Find(name, model.KindInterface)
	if iface == nil {
		return nil, sdlerr.New(sdlerr.MissingInterface, string(from.Kind), from.Name, "implemented interface not found").
			WithRef(name).
			WithLine(from.Line)
	}
	if iface.Kind != model.KindInterface {
		return nil, sdlerr.Newf(sdlerr.NotAnInterface, string(from.Kind), from.Name, "implemented name is a %s", iface.Kind.Keyword()).
			WithRef(name).
			WithLine(from.Line)
	}

	r.closing[name] = true
	r.ipath = append(r.ipath, name)
	defer func() {
		delete(r.closing, name)
		r.ipath = r.ipath[:len(r.ipath)-1]
	}()

	out := []string{name}
	for _, sub := range iface.Implements {
		cl, err := r.closure(iface, sub)
		if err != nil {
			return nil, err
		}
		out = appendUnique(out, cl...)
	}
	r.closures[name] = out
	return out, nil
}

func appendUnique(dst []string, names ...string) []string {
	for _, n := range names {
		if !slices.Contains(dst, n) {
			dst = append(dst, n)
		}
	}
	return dst
}
