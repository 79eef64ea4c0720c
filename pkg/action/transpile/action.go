package transpile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cmmoran/sdlgen/pkg/model"
	"github.com/cmmoran/sdlgen/pkg/parser"
)

// Result is the outcome for one input schema.
type Result struct {
	In  string               `json:"in" yaml:"in"`
	Out string               `json:"out,omitempty" yaml:"out,omitempty"`
	SDL string               `json:"-" yaml:"-"`
	AST []*model.Declaration `json:"ast,omitempty" yaml:"ast,omitempty"`
}

// Generate transpiles every input file concurrently and writes the results
// under opts.OutDir. With a single input the output is OutDir/OutFile,
// otherwise each input keeps its base name.
func Generate(ctx context.Context, opts *parser.Options) ([]*Result, error) {
	par, err := parser.NewWithOpts(opts)
	if err != nil {
		return nil, err
	}
	results, err := run(ctx, par, func(res *Result, schema string) (err error) {
		if res.SDL, err = par.Transpile(schema); err != nil {
			return err
		}
		if par.Opts.GoOutFile != "" {
			res.AST, err = par.SchemaAST(schema)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	written := make(map[string]string, len(results))
	for _, res := range results {
		res.Out = outPath(&par.Opts, res.In, len(results))
		if prev, ok := written[res.Out]; ok {
			return nil, fmt.Errorf("%s and %s both write %s", prev, res.In, res.Out)
		}
		written[res.Out] = res.In
	}

	if err = os.MkdirAll(par.Opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	l := par.Opts.Logger
	for _, res := range results {
		if err = os.WriteFile(res.Out, []byte(res.SDL), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", res.Out, err)
		}
		if l != nil {
			l.With("in", res.In, "out", res.Out).Debug("transpiled schema")
		}
	}

	if par.Opts.GoOutFile != "" {
		if err = writeGoFile(par, results); err != nil {
			return nil, err
		}
	}
	return results, nil
}

// Inspect resolves every input file concurrently without writing anything.
func Inspect(ctx context.Context, opts *parser.Options) ([]*Result, error) {
	par, err := parser.NewWithOpts(opts)
	if err != nil {
		return nil, err
	}
	return run(ctx, par, func(res *Result, schema string) (err error) {
		res.AST, err = par.SchemaAST(schema)
		return err
	})
}

func run(ctx context.Context, par *parser.Parser, fn func(*Result, string) error) ([]*Result, error) {
	if len(par.Opts.InFiles) == 0 {
		return nil, errors.New("no input files")
	}
	results := make([]*Result, len(par.Opts.InFiles))
	g, ctx := errgroup.WithContext(ctx)
	for i, in := range par.Opts.InFiles {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			schema, err := os.ReadFile(in)
			if err != nil {
				return fmt.Errorf("read schema: %w", err)
			}
			res := &Result{In: in}
			if err = fn(res, string(schema)); err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func outPath(opts *parser.Options, in string, n int) string {
	if n == 1 {
		return filepath.Clean(filepath.Join(opts.OutDir, opts.OutFile))
	}
	base := filepath.Base(in)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + ".graphql"
	return filepath.Clean(filepath.Join(opts.OutDir, base))
}

func writeGoFile(par *parser.Parser, results []*Result) error {
	var (
		sdl   []string
		decls []*model.Declaration
	)
	for _, res := range results {
		sdl = append(sdl, res.SDL)
		decls = append(decls, res.AST...)
	}
	f := par.GenerateGoFile(strings.Join(sdl, "\n"), decls)

	outFile := par.Opts.GoOutFile
	if !filepath.IsAbs(outFile) {
		outFile = filepath.Join(par.Opts.OutDir, outFile)
	}
	ff, err := os.OpenFile(filepath.Clean(outFile), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create go file: %w", err)
	}
	defer func() { _ = ff.Close() }()
	if err = f.Render(ff); err != nil {
		return fmt.Errorf("render go file: %w", err)
	}
	return nil
}
