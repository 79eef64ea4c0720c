package model

// DirectiveAnnotation is the Annotation name marking a raw directive body.
const DirectiveAnnotation = "directive"

// Annotation is a custom metadata record extracted from schema comments
// before parsing.
//
// Declaration annotations match on (DeclarationKind, DeclarationName).
// Property annotations use DeclarationKind KindProperty, the property name
// as DeclarationName and the owning declaration's name as Parent.
type Annotation struct {
	Name            string `json:"name" yaml:"name"`
	Body            string `json:"body,omitempty" yaml:"body,omitempty"`
	DeclarationKind Kind   `json:"declaration_kind,omitempty" yaml:"declaration_kind,omitempty"`
	DeclarationName string `json:"declaration_name,omitempty" yaml:"declaration_name,omitempty"`
	Parent          string `json:"parent,omitempty" yaml:"parent,omitempty"`
}

// MetadataExtractor strips metadata annotations out of a schema, returning
// the annotation-free text and the annotations found.
type MetadataExtractor interface {
	RemoveMetadataAnnotations(schema string) (string, []*Annotation, error)
}

// ExtractorFunc adapts a function to MetadataExtractor.
type ExtractorFunc func(schema string) (string, []*Annotation, error)

func (f ExtractorFunc) RemoveMetadataAnnotations(schema string) (string, []*Annotation, error) {
	return f(schema)
}

// NopExtractor returns the schema unchanged with no annotations.
var NopExtractor = ExtractorFunc(func(schema string) (string, []*Annotation, error) {
	return schema, nil, nil
})

// AliasFunc names the concrete declaration produced for a generic use.
// base is the template name ("Paged"), args the resolved argument types
// as written ("Product", "[Tag!]").
type AliasFunc func(base string, args []string) string
