package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-conceal/pkg/app"
	"github.com/dd0wney/cluso-conceal/pkg/config"
	"github.com/dd0wney/cluso-conceal/pkg/graph"
)

func TestRun_AppendsResultLine(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	dir := t.TempDir()
	edges := filepath.Join(dir, "edges.txt")
	asst := filepath.Join(dir, "communities.txt")
	require.NoError(t, os.WriteFile(edges, []byte("1 2\n2 3\n1 3\n4 5\n5 6\n4 6\n"), 0o644))
	require.NoError(t, os.WriteFile(asst, []byte("1 0\n2 0\n3 0\n4 1\n5 1\n6 1\n"), 0o644))

	cfg := config.Default()
	cfg.Storage.ResultsFile = filepath.Join(dir, "results.out")
	a, err := app.New(context.Background(), cfg, app.Options{Output: io.Discard})
	require.NoError(t, err)

	// One target per community: fully concealed, not detected
	require.NoError(t, run(context.Background(), a, edges, asst, graph.NewTargetSet("1", "4")))
	// Both targets in one community: detected
	require.NoError(t, run(context.Background(), a, edges, asst, graph.NewTargetSet("1", "2")))

	data, err := os.ReadFile(cfg.Storage.ResultsFile)
	require.NoError(t, err)
	assert.Equal(t, "concealment=1.0000,detected=0\nconcealment=0.1250,detected=1\n", string(data))
}

func TestRun_UnknownTarget(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	dir := t.TempDir()
	edges := filepath.Join(dir, "edges.txt")
	asst := filepath.Join(dir, "communities.txt")
	require.NoError(t, os.WriteFile(edges, []byte("1 2\n"), 0o644))
	require.NoError(t, os.WriteFile(asst, []byte("1 0\n2 0\n"), 0o644))

	cfg := config.Default()
	cfg.Storage.ResultsFile = filepath.Join(dir, "results.out")
	a, err := app.New(context.Background(), cfg, app.Options{Output: io.Discard})
	require.NoError(t, err)

	err = run(context.Background(), a, edges, asst, graph.NewTargetSet("9"))
	assert.ErrorIs(t, err, graph.ErrNodeNotFound)
}
