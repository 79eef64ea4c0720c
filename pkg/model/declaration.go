package model

import "strings"

// Kind is the declaration keyword a schema member was introduced with.
type Kind string

const (
	KindType      Kind = "TYPE"
	KindInput     Kind = "INPUT"
	KindEnum      Kind = "ENUM"
	KindInterface Kind = "INTERFACE"
	KindAbstract  Kind = "ABSTRACT"
	KindScalar    Kind = "SCALAR"
	KindUnion     Kind = "UNION"
	KindDirective Kind = "DIRECTIVE"
	KindSchema    Kind = "SCHEMA"
)

// KindProperty is the DeclarationKind used by annotations that target a property.
const KindProperty Kind = "PROPERTY"

var keywords = map[string]Kind{
	"type":      KindType,
	"input":     KindInput,
	"enum":      KindEnum,
	"interface": KindInterface,
	"abstract":  KindAbstract,
	"scalar":    KindScalar,
	"union":     KindUnion,
	"directive": KindDirective,
	"schema":    KindSchema,
}

// KindOf maps a declaration keyword ("type", "input", ...) to its Kind.
func KindOf(keyword string) (Kind, bool) {
	k, ok := keywords[keyword]
	return k, ok
}

// Keyword returns the SDL keyword for k.
func (k Kind) Keyword() string {
	return strings.ToLower(string(k))
}

// HasBlock reports whether declarations of this kind carry a { ... } body.
func (k Kind) HasBlock() bool {
	switch k {
	case KindScalar, KindUnion, KindDirective:
		return false
	}
	return true
}

// Key identifies a declaration during resolution.
type Key struct {
	Kind   Kind
	Name   string
	Params string
}

// Declaration is a named schema member.
type Declaration struct {
	// Identity ------------------------------------------------------------
	Kind              Kind     `json:"kind" yaml:"kind"`
	IsExtend          bool     `json:"is_extend,omitempty" yaml:"is_extend,omitempty"`
	Name              string   `json:"name" yaml:"name"` // as declared, "Paged<T>" for templates
	GenericParameters []string `json:"generic_parameters,omitempty" yaml:"generic_parameters,omitempty"`

	// Header --------------------------------------------------------------
	Directive   string   `json:"directive,omitempty" yaml:"directive,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Comments    string   `json:"comments,omitempty" yaml:"comments,omitempty"`
	Inherits    []string `json:"inherits,omitempty" yaml:"inherits,omitempty"`
	Implements  []string `json:"implements,omitempty" yaml:"implements,omitempty"`
	Members     []string `json:"members,omitempty" yaml:"members,omitempty"`       // union members
	Definition  string   `json:"definition,omitempty" yaml:"definition,omitempty"` // verbatim directive definition

	// Body ----------------------------------------------------------------
	Properties         []*Property `json:"properties,omitempty" yaml:"properties,omitempty"`
	OriginalProperties []*Property `json:"original_properties,omitempty" yaml:"original_properties,omitempty"`
	TrailingComments   string      `json:"trailing_comments,omitempty" yaml:"trailing_comments,omitempty"` // after the last property

	// Provenance ----------------------------------------------------------
	Metadata      *Annotation `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	InstanceOf    string      `json:"instance_of,omitempty" yaml:"instance_of,omitempty"` // template base name
	TypeArguments []string    `json:"type_arguments,omitempty" yaml:"type_arguments,omitempty"`
	Line          int         `json:"line,omitempty" yaml:"line,omitempty"`
}

// BaseName returns Name without its generic parameter list.
func (d *Declaration) BaseName() string {
	return BaseName(d.Name)
}

// IsTemplate reports whether d declares generic parameters.
func (d *Declaration) IsTemplate() bool {
	return len(d.GenericParameters) > 0
}

// Key returns the resolution identity of d.
func (d *Declaration) Key() Key {
	return Key{Kind: d.Kind, Name: d.BaseName(), Params: strings.Join(d.GenericParameters, ",")}
}

// BaseName strips a trailing generic parameter or argument list from name.
func BaseName(name string) string {
	if i := strings.IndexByte(name, '<'); i >= 0 {
		return strings.TrimSpace(name[:i])
	}
	return strings.TrimSpace(name)
}

// Declarations is an ordered declaration list.
type Declarations []*Declaration

// Find returns the first non-extend declaration whose base name is name,
// preferring one of the given kinds in order.
func (x Declarations) Find(name string, prefer ...Kind) *Declaration {
	var first *Declaration
	for _, k := range prefer {
		for _, d := range x {
			if d.IsExtend || d.BaseName() != name {
				continue
			}
			if d.Kind == k {
				return d
			}
		}
	}
	for _, d := range x {
		if !d.IsExtend && d.BaseName() == name {
			first = d
			break
		}
	}
	return first
}
