package cmd

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cmmoran/sdlgen/pkg/action/transpile"
	"github.com/cmmoran/sdlgen/pkg/parser"
)

func init() {
	var astCmd = NewAstCommand()
	rootCmd.AddCommand(astCmd)
}

func NewAstCommand() *cobra.Command {
	// astCmd represents the sdlgen ast command
	var astCmd = &cobra.Command{
		Use:   "ast",
		Short: "print resolved declarations",
		Long:  "Resolve schemas and print every declaration, generic instantiations included",
		RunE: func(c *cobra.Command, args []string) error {
			options, err := loadOptions(c, args)
			if err != nil {
				return err
			}
			options.Logger = slog.Default()

			results, err := transpile.Inspect(c.Context(), options)
			if err != nil {
				return err
			}
			return encode(c.OutOrStdout(), options.Format, results)
		},
	}
	addOptionFlags(astCmd)
	astCmd.Flags().String("format", parser.FormatJSON, "output format: json | yaml")

	return astCmd
}

func encode(w io.Writer, format string, v any) error {
	if format == parser.FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
