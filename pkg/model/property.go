package model

// TypeReference is a type expression used as a property result or argument type.
type TypeReference struct {
	OriginName              string   `json:"origin_name" yaml:"origin_name"` // as written
	IsGeneric               bool     `json:"is_generic,omitempty" yaml:"is_generic,omitempty"`
	DependsOnParentGenerics bool     `json:"depends_on_parent_generics,omitempty" yaml:"depends_on_parent_generics,omitempty"`
	ResolvedName            string   `json:"resolved_name" yaml:"resolved_name"`
	Directive               string   `json:"directive,omitempty" yaml:"directive,omitempty"` // default value and directives
	GenericParentLetters    []string `json:"generic_parent_letters,omitempty" yaml:"generic_parent_letters,omitempty"`
}

// String renders the resolved type followed by its directive suffix.
func (r *TypeReference) String() string {
	if r == nil {
		return ""
	}
	if r.Directive == "" {
		return r.ResolvedName
	}
	return r.ResolvedName + " " + r.Directive
}

// Parameter is a single field argument.
type Parameter struct {
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Name        string         `json:"name" yaml:"name"`
	Type        *TypeReference `json:"type" yaml:"type"`
}

// Property is a field of a type, input or interface, or a value of an enum.
type Property struct {
	Comments    string         `json:"comments,omitempty" yaml:"comments,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Name        string         `json:"name" yaml:"name"`
	Parameters  string         `json:"parameters,omitempty" yaml:"parameters,omitempty"` // rendered argument list without parentheses
	Arguments   []*Parameter   `json:"arguments,omitempty" yaml:"arguments,omitempty"`
	Result      *TypeReference `json:"result,omitempty" yaml:"result,omitempty"` // nil for enum values
	Metadata    *Annotation    `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}
