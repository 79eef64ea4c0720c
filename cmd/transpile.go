package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cmmoran/sdlgen/pkg/action/transpile"
)

func init() {
	var transpileCmd = NewTranspileCommand()
	rootCmd.AddCommand(transpileCmd)
}

func NewTranspileCommand() *cobra.Command {
	// transpileCmd represents the sdlgen transpile command
	var transpileCmd = &cobra.Command{
		Use:   "transpile",
		Short: "transpile schemas",
		Long:  "Resolve inheritance, interfaces and generics and write plain SDL",
		RunE: func(c *cobra.Command, args []string) error {
			options, err := loadOptions(c, args)
			if err != nil {
				return err
			}
			options.Logger = slog.Default()

			results, err := transpile.Generate(c.Context(), options)
			if err != nil {
				return err
			}
			for _, res := range results {
				c.Println(res.Out)
			}
			return nil
		},
	}
	addOptionFlags(transpileCmd)
	transpileCmd.Flags().String("go-out", "", "also write a Go file embedding the transpiled schema")
	transpileCmd.Flags().String("go-package", "schema", "package name of the generated Go file")

	return transpileCmd
}
