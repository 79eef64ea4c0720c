package parser

import (
	"log/slog"
	"strings"

	"github.com/cmmoran/sdlgen/pkg/model"
	"github.com/cmmoran/sdlgen/pkg/sdlerr"
)

// Config carries the knobs of an Engine. Zero values get defaults.
type Config struct {
	AliasFunc  model.AliasFunc
	Extractor  model.MetadataExtractor
	Logger     *slog.Logger
	Indent     string
	// Implements joins implemented interfaces in text output, " & " by default.
	Implements string
	// Omit drops declarations from text output.
	Omit       func(*model.Declaration) bool
}

// Engine runs the parse and resolution pipeline. It holds no state between
// calls and is safe for concurrent use.
type Engine struct {
	cfg Config
}

// NewEngine returns an Engine for cfg.
func NewEngine(cfg Config) *Engine {
	if cfg.AliasFunc == nil {
		cfg.AliasFunc = DefaultAlias
	}
	if cfg.Extractor == nil {
		cfg.Extractor = model.NopExtractor
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Indent == "" {
		cfg.Indent = "  "
	}
	if cfg.Implements == "" {
		cfg.Implements = " & "
	}
	return &Engine{cfg: cfg}
}

// SchemaAST parses and resolves schema, returning every declaration with
// all generic instantiations materialized.
func (e *Engine) SchemaAST(schema string) ([]*model.Declaration, error) {
	r, resolved, err := e.run(schema)
	if err != nil {
		return nil, err
	}
	return r.buildAst(resolved), nil
}

// Transpile parses and resolves schema and renders it as plain SDL, generic
// templates removed and their instantiations appended.
func (e *Engine) Transpile(schema string) (string, error) {
	r, resolved, err := e.run(schema)
	if err != nil {
		return "", err
	}
	return r.buildText(resolved), nil
}

func (e *Engine) run(schema string) (*resolution, []*model.Declaration, error) {
	plain, anns, err := e.cfg.Extractor.RemoveMetadataAnnotations(schema)
	if err != nil {
		return nil, nil, sdlerr.New(sdlerr.Metadata, "", "", "metadata extraction failed").WithCause(err)
	}
	plain = strings.ReplaceAll(plain, "\r\n", "\n")

	bits, err := extractBits(plain)
	if err != nil {
		return nil, nil, err
	}
	r := newResolution(&e.cfg)
	for _, bit := range bits {
		d, err := r.parseBit(bit)
		if err != nil {
			return nil, nil, err
		}
		r.decls = append(r.decls, d)
	}
	attachComments(r.decls, locateComments(plain, bits))
	r.attachMetadata(anns)
	r.log.With("declarations", len(r.decls), "annotations", len(anns)).Debug("parsed schema")

	for _, d := range r.decls {
		if err = r.materializeUses(d); err != nil {
			return nil, nil, err
		}
	}

	resolved := make([]*model.Declaration, 0, len(r.decls))
	for _, d := range r.decls {
		rd, err := r.resolve(d)
		if err != nil {
			return nil, nil, err
		}
		resolved = append(resolved, rd)
	}
	for _, inst := range r.order {
		if inst.resolved, err = r.resolve(inst.decl); err != nil {
			return nil, nil, err
		}
		inst.text = renderDeclaration(inst.resolved, &e.cfg)
	}
	r.log.With("instantiations", len(r.order)).Debug("resolved schema")
	return r, resolved, nil
}
