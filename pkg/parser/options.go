package parser

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/cmmoran/sdlgen/pkg/model"
)

const (
	AliasDefault = "default"
	AliasPlural  = "plural"

	FormatJSON = "json"
	FormatYAML = "yaml"

	ImplementsAmpersand = "ampersand"
	ImplementsComma     = "comma"
)

// Options control parsing, resolution and output.
//
// InFiles           – schema files to transpile
// OutDir            – output directory
// OutFile           – output filename when a single file is transpiled
// Alias             – naming strategy for generic instantiations: default | plural
// Indent            – property indentation in rendered SDL
// Implements        – separator of implemented interfaces: ampersand (A & B) | comma (A, B)
// GoPackage         – package name of the generated Go file
// GoOutFile         – when set, also write a Go file embedding the transpiled schema
// Format            – ast output format: json | yaml
// ExcludeDeprecated – drop declarations marked deprecated from SDL output.
// ExcludeTypes      – names of declarations to drop from SDL output (case‑insensitive).
type Options struct {
	InFiles           []string `json:"in_files,omitempty" yaml:"in_files,omitempty" toml:"in_files,omitempty" mapstructure:"in_files,omitempty"`
	OutDir            string   `json:"out_dir,omitempty" yaml:"out_dir,omitempty" toml:"out_dir,omitempty" mapstructure:"out_dir,omitempty"`
	OutFile           string   `json:"out_file,omitempty" yaml:"out_file,omitempty" toml:"out_file,omitempty" mapstructure:"out_file,omitempty"`
	Alias             string   `json:"alias,omitempty" yaml:"alias,omitempty" toml:"alias,omitempty" mapstructure:"alias,omitempty"`
	Indent            string   `json:"indent,omitempty" yaml:"indent,omitempty" toml:"indent,omitempty" mapstructure:"indent,omitempty"`
	Implements        string   `json:"implements,omitempty" yaml:"implements,omitempty" toml:"implements,omitempty" mapstructure:"implements,omitempty"`
	GoPackage         string   `json:"go_package,omitempty" yaml:"go_package,omitempty" toml:"go_package,omitempty" mapstructure:"go_package,omitempty"`
	GoOutFile         string   `json:"go_out_file,omitempty" yaml:"go_out_file,omitempty" toml:"go_out_file,omitempty" mapstructure:"go_out_file,omitempty"`
	Format            string   `json:"format,omitempty" yaml:"format,omitempty" toml:"format,omitempty" mapstructure:"format,omitempty"`
	ExcludeDeprecated bool     `json:"exclude_deprecated,omitempty" yaml:"exclude_deprecated,omitempty" toml:"exclude_deprecated,omitempty" mapstructure:"exclude_deprecated,omitempty"`
	ExcludeTypes      []string `json:"exclude_types,omitempty" yaml:"exclude_types,omitempty" toml:"exclude_types,omitempty" mapstructure:"exclude_types,omitempty"`

	AliasFunc model.AliasFunc         `json:"-" yaml:"-" toml:"-" mapstructure:"-"`
	Extractor model.MetadataExtractor `json:"-" yaml:"-" toml:"-" mapstructure:"-"`
	Logger    *slog.Logger            `json:"-" yaml:"-" toml:"-" mapstructure:"-"`
}

func NewOptions() *Options {
	return &Options{
		OutDir:     "schema",
		OutFile:    "schema.graphql",
		Alias:      AliasDefault,
		Indent:     "  ",
		Implements: ImplementsAmpersand,
		GoPackage:  "schema",
		Format:     FormatJSON,
	}
}

// Normalize fills defaults and rejects unknown strategies and formats.
func (o *Options) Normalize() error {
	if len(o.OutDir) == 0 {
		o.OutDir = "schema"
	}
	if strings.Contains(o.OutDir, ".") {
		o.OutDir, _ = filepath.Abs(o.OutDir)
	}
	if len(o.OutFile) == 0 {
		o.OutFile = "schema.graphql"
	}
	if o.Indent == "" {
		o.Indent = "  "
	}
	if o.GoPackage == "" {
		o.GoPackage = "schema"
	}
	o.Alias = strings.ToLower(strings.TrimSpace(o.Alias))
	switch o.Alias {
	case "":
		o.Alias = AliasDefault
	case AliasDefault, AliasPlural:
	default:
		return fmt.Errorf("unknown alias strategy %q", o.Alias)
	}
	o.Implements = strings.ToLower(strings.TrimSpace(o.Implements))
	switch o.Implements {
	case "":
		o.Implements = ImplementsAmpersand
	case ImplementsAmpersand, ImplementsComma:
	default:
		return fmt.Errorf("unknown implements separator %q", o.Implements)
	}
	o.Format = strings.ToLower(strings.TrimSpace(o.Format))
	switch o.Format {
	case "":
		o.Format = FormatJSON
	case FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown format %q", o.Format)
	}
	for i, t := range o.ExcludeTypes {
		o.ExcludeTypes[i] = strings.TrimSpace(t)
	}
	return nil
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithInFiles(files ...string) Option { return func(o *Options) { o.InFiles = append(o.InFiles, files...) } }
func WithOutDir(d string) Option         { return func(o *Options) { o.OutDir = d } }
func WithOutFile(f string) Option        { return func(o *Options) { o.OutFile = f } }
func WithAlias(strategy string) Option   { return func(o *Options) { o.Alias = strategy } }
func WithIndent(s string) Option         { return func(o *Options) { o.Indent = s } }
func WithImplements(sep string) Option   { return func(o *Options) { o.Implements = sep } }
func WithGoOutFile(f, pkg string) Option {
	return func(o *Options) { o.GoOutFile, o.GoPackage = f, pkg }
}
func WithFormat(f string) Option    { return func(o *Options) { o.Format = f } }
func WithExcludeDeprecated() Option { return func(o *Options) { o.ExcludeDeprecated = true } }
func WithExcludeTypes(names ...string) Option {
	return func(o *Options) {
		for _, n := range names {
			o.ExcludeTypes = append(o.ExcludeTypes, strings.TrimSpace(n))
		}
	}
}

// WithAliasFunc overrides the alias strategy with fn.
func WithAliasFunc(fn model.AliasFunc) Option { return func(o *Options) { o.AliasFunc = fn } }
func WithExtractor(x model.MetadataExtractor) Option {
	return func(o *Options) { o.Extractor = x }
}
func WithLogger(l *slog.Logger) Option { return func(o *Options) { o.Logger = l } }

// Apply runs opts against o and returns it.
func (o *Options) Apply(opts ...Option) *Options {
	for _, fn := range opts {
		fn(o)
	}
	return o
}
