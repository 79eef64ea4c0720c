package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cmmoran/sdlgen/pkg/parser"
)

// configKey is the config section holding parser.Options.
const configKey = "transpile"

// optionFlags maps keys under the transpile section to the flags that set them.
var optionFlags = map[string]string{
	"in_files":           "input",
	"out_dir":            "output-directory",
	"out_file":           "output-file",
	"alias":              "alias",
	"indent":             "indent",
	"implements":         "implements",
	"exclude_types":      "exclude-types",
	"exclude_deprecated": "exclude-deprecated",
	"go_out_file":        "go-out",
	"go_package":         "go-package",
	"format":             "format",
}

// addOptionFlags registers the flags shared by every command that reads
// schema files.
func addOptionFlags(c *cobra.Command) {
	fs := c.Flags()
	fs.StringSliceP("input", "i", []string{}, "schema file(s) to transpile")
	fs.StringP("output-directory", "o", "schema", "directory to write transpiled schemas")
	fs.StringP("output-file", "f", "schema.graphql", "output file when a single schema is transpiled")
	fs.String("alias", parser.AliasDefault, "naming of generic instantiations: default | plural")
	fs.String("indent", "  ", "property indentation in transpiled schemas")
	fs.String("implements", parser.ImplementsAmpersand, "separator of implemented interfaces: ampersand | comma")
	fs.StringSliceP("exclude-types", "t", []string{}, "exclude named types from transpiled schemas")
	fs.BoolP("exclude-deprecated", "d", false, "exclude deprecated types from transpiled schemas")
}

// loadOptions assembles parser.Options for the running command. Flags are
// bound here rather than at registration since viper keeps one binding per
// key; config files and SDLGEN_TRANSPILE_* variables fill what the command
// line leaves out.
func loadOptions(c *cobra.Command, args []string) (*parser.Options, error) {
	for key, name := range optionFlags {
		if f := c.Flags().Lookup(name); f != nil {
			if err := viper.BindPFlag(configKey+"."+key, f); err != nil {
				return nil, err
			}
		}
	}

	cfg := struct {
		Transpile *parser.Options `mapstructure:"transpile"`
	}{Transpile: parser.NewOptions()}
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.Transpile.InFiles = append(cfg.Transpile.InFiles, args...)
	return cfg.Transpile, nil
}
