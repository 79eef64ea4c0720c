package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/sdlgen/pkg/parser"
)

func TestSnapshotLifecycle(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "api.graphqlx")
	manifestPath := filepath.Join(dir, "sdlgen.manifest.yaml")
	opts := func() *parser.Options {
		return parser.NewOptions().Apply(parser.WithInFiles(in), parser.WithOutDir(filepath.Join(dir, "schema")))
	}

	require.NoError(t, os.WriteFile(in, []byte("type Query { a: Int }"), 0o644))
	first, err := Generate(context.Background(), opts(), manifestPath, "api", "v1")
	require.NoError(t, err)
	_, err = uuid.Parse(first.ID)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "snapshots", "v1", "schema.graphql")}, first.Files)

	_, err = DiffCurrentWithPrevious(manifestPath)
	require.Error(t, err)

	require.NoError(t, os.WriteFile(in, []byte("type Query { a: Int b: String }"), 0o644))
	_, err = Generate(context.Background(), opts(), manifestPath, "api", "v2")
	require.NoError(t, err)

	m, err := List(manifestPath)
	require.NoError(t, err)
	require.Equal(t, "v2", m.CurrentVersion)
	require.Equal(t, "v1", m.PreviousVersion)
	require.Len(t, m.Snapshots, 2)

	diff, err := DiffCurrentWithPrevious(manifestPath)
	require.NoError(t, err)
	require.True(t, strings.Contains(diff, "b: String"), diff)

	// the first snapshot is untouched by the second run
	data, err := os.ReadFile(first.Files[0])
	require.NoError(t, err)
	require.Equal(t, "type Query {\n  a: Int\n}\n", string(data))
}

func TestGenerateRequiresVersion(t *testing.T) {
	_, err := Generate(context.Background(), parser.NewOptions(), filepath.Join(t.TempDir(), "m.yaml"), "api", "")
	require.Error(t, err)
}
