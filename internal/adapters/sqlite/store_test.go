package sqlite

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knowmap/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "graph.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func importSeed(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	for _, n := range domain.SeedNodes() {
		require.NoError(t, tx.UpsertNode(&n))
	}
	for _, c := range domain.SeedConnections() {
		require.NoError(t, tx.InsertConnection(&c))
	}
	require.NoError(t, tx.Commit())
}

func TestStore_RoundTripsSeed(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	importSeed(t, s)

	nodes, err := s.ListNodes(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SeedNodes(), nodes)

	conns, err := s.ListConnections(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SeedConnections(), conns)
}

func TestStore_GetNode(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	importSeed(t, s)

	n, err := s.GetNode(ctx, "node-5")
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, "Employee Onboarding Process", n.Title)
	assert.Equal(t, []string{"Onboarding", "Training", "HR", "Documentation"}, n.Tags)

	missing, err := s.GetNode(ctx, "node-404")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStore_PositionKeepsFiniteAxes(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	node := domain.Node{ID: "node-9", Title: "Runbook", Position: []float64{4, math.NaN(), 7}}
	require.NoError(t, tx.UpsertNode(&node))
	require.NoError(t, tx.Commit())

	got, err := s.GetNode(ctx, "node-9")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []float64{4, 0, 7}, got.Position)

	r := domain.NewResolver(1, time.Now)
	assert.Equal(t, r.Resolve(&node, domain.ModeDefault), r.Resolve(got, domain.ModeDefault))
	assert.Equal(t, domain.Vec3{X: 4, Z: 7}, r.Resolve(got, domain.ModeDefault))
}

func TestStore_UpsertKeepsOrderAndReplacesTags(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	importSeed(t, s)

	n, err := s.GetNode(ctx, "node-1")
	require.NoError(t, err)
	n.Tags = []string{"Frontend"}
	n.Position = nil
	n.LastModified = time.Time{}

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.UpsertNode(n))
	require.NoError(t, tx.Commit())

	nodes, err := s.ListNodes(ctx)
	require.NoError(t, err)
	assert.Equal(t, "node-1", nodes[0].ID)
	assert.Equal(t, []string{"Frontend"}, nodes[0].Tags)
	assert.Nil(t, nodes[0].Position)
	assert.True(t, nodes[0].LastModified.IsZero())
}

func TestStore_DeleteAndRollback(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	importSeed(t, s)

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.DeleteConnectionsFor("node-8"))
	require.NoError(t, tx.DeleteNode("node-8"))
	require.NoError(t, tx.Rollback())

	nodes, _ := s.ListNodes(ctx)
	assert.Len(t, nodes, 8)

	tx, err = s.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.DeleteConnectionsFor("node-8"))
	require.NoError(t, tx.DeleteNode("node-8"))
	require.NoError(t, tx.Commit())

	nodes, _ = s.ListNodes(ctx)
	assert.Len(t, nodes, 7)
	conns, _ := s.ListConnections(ctx)
	assert.Len(t, conns, 6)
}

func TestStore_ReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "graph.db")
	s, err := Open(path)
	require.NoError(t, err)
	importSeed(t, s)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	nodes, err := s.ListNodes(context.Background())
	require.NoError(t, err)
	assert.Len(t, nodes, 8)
}

func BenchmarkListNodes(b *testing.B) {
	s, err := Open(filepath.Join(b.TempDir(), "graph.db"))
	if err != nil {
		b.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	tx, _ := s.BeginTx(ctx)
	for _, n := range domain.SeedNodes() {
		_ = tx.UpsertNode(&n)
	}
	if err := tx.Commit(); err != nil {
		b.Fatalf("import failed: %v", err)
	}

	b.ResetTimer()
	for b.Loop() {
		if _, err := s.ListNodes(ctx); err != nil {
			b.Fatalf("list failed: %v", err)
		}
	}
}
