package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/cmmoran/sdlgen/pkg/action/transpile"
	"github.com/cmmoran/sdlgen/pkg/manifest"
	"github.com/cmmoran/sdlgen/pkg/parser"
)

// Generate transpiles the configured schemas, copies the output into a
// versioned directory beside the manifest and records it as a snapshot.
func Generate(ctx context.Context, opts *parser.Options, manifestPath, snapshotName, snapshotVersion string) (*manifest.Snapshot, error) {
	if snapshotVersion == "" {
		return nil, fmt.Errorf("snapshot version is required")
	}
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}

	results, err := transpile.Generate(ctx, opts)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(filepath.Dir(manifestPath), "snapshots", snapshotVersion)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot directory: %w", err)
	}
	s := manifest.Snapshot{
		ID:      uuid.NewString(),
		Name:    snapshotName,
		Version: snapshotVersion,
		Created: time.Now().UTC(),
	}
	for _, res := range results {
		file := filepath.Join(dir, filepath.Base(res.Out))
		if err = os.WriteFile(file, []byte(res.SDL), 0o644); err != nil {
			return nil, fmt.Errorf("write snapshot: %w", err)
		}
		s.Files = append(s.Files, file)
	}
	m.AddSnapshot(s)

	if err = m.Save(manifestPath); err != nil {
		return nil, err
	}

	return &s, nil
}

// List returns all snapshots recorded in the manifest.
func List(manifestPath string) (*manifest.Manifest, error) {
	return manifest.Load(manifestPath)
}

// DiffCurrentWithPrevious loads the manifest, locates the current and previous
// snapshot files, and returns a textual diff of their contents.
func DiffCurrentWithPrevious(manifestPath string) (string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}

	if m.CurrentVersion == "" || m.PreviousVersion == "" {
		return "", fmt.Errorf("no current/previous snapshots recorded")
	}

	currentFiles := m.SnapshotFiles(m.CurrentVersion)
	previousFiles := m.SnapshotFiles(m.PreviousVersion)

	if len(currentFiles) == 0 || len(previousFiles) == 0 {
		return "", fmt.Errorf("snapshot files not found in manifest")
	}

	current, err := concat(currentFiles)
	if err != nil {
		return "", fmt.Errorf("read current snapshot: %w", err)
	}

	previous, err := concat(previousFiles)
	if err != nil {
		return "", fmt.Errorf("read previous snapshot: %w", err)
	}

	return cmp.Diff(previous, current), nil
}

func concat(files []string) (string, error) {
	var b strings.Builder
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return "", err
		}
		b.Write(data)
	}
	return b.String(), nil
}
