package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(ttt *testing.T) {
	tests := []struct {
		name    string
		opts    *Options
		want    *Options
		wantErr bool
	}{
		{
			name: "defaults",
			opts: &Options{},
			want: &Options{OutDir: "schema", OutFile: "schema.graphql", Alias: AliasDefault, Indent: "  ", Implements: ImplementsAmpersand, GoPackage: "schema", Format: FormatJSON},
		},
		{
			name: "strategies are case insensitive",
			opts: &Options{OutDir: "out", Alias: " Plural ", Implements: "Comma", Format: "YAML", ExcludeTypes: []string{" Foo "}},
			want: &Options{OutDir: "out", OutFile: "schema.graphql", Alias: AliasPlural, Indent: "  ", Implements: ImplementsComma, GoPackage: "schema", Format: FormatYAML, ExcludeTypes: []string{"Foo"}},
		},
		{
			name:    "unknown alias",
			opts:    &Options{Alias: "snake"},
			wantErr: true,
		},
		{
			name:    "unknown implements separator",
			opts:    &Options{Implements: "pipe"},
			wantErr: true,
		},
		{
			name:    "unknown format",
			opts:    &Options{Format: "toml"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		ttt.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Normalize()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, tt.opts)
		})
	}
}

func TestOptions(t *testing.T) {
	o := NewOptions()
	for _, fn := range []Option{
		WithInFiles("a.graphql", "b.graphql"),
		WithOutDir("out"),
		WithOutFile("all.graphql"),
		WithAlias(AliasPlural),
		WithIndent("\t"),
		WithImplements(ImplementsComma),
		WithGoOutFile("schema_gen.go", "gql"),
		WithFormat(FormatYAML),
		WithExcludeDeprecated(),
		WithExcludeTypes(" Foo", "Bar "),
	} {
		fn(o)
	}
	require.Equal(t, []string{"a.graphql", "b.graphql"}, o.InFiles)
	require.Equal(t, "out", o.OutDir)
	require.Equal(t, "all.graphql", o.OutFile)
	require.Equal(t, AliasPlural, o.Alias)
	require.Equal(t, "\t", o.Indent)
	require.Equal(t, ImplementsComma, o.Implements)
	require.Equal(t, "schema_gen.go", o.GoOutFile)
	require.Equal(t, "gql", o.GoPackage)
	require.Equal(t, FormatYAML, o.Format)
	require.True(t, o.ExcludeDeprecated)
	require.Equal(t, []string{"Foo", "Bar"}, o.ExcludeTypes)
}
