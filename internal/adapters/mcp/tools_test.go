package mcp

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knowmap/internal/adapters/memory"
	"knowmap/internal/application"
	"knowmap/internal/domain"
)

func testScenes() *application.Scene {
	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	return application.NewScene(application.SceneOptions{
		Seed:     3,
		Resolver: domain.NewResolver(3, func() time.Time { return now }),
	})
}

func call(t *testing.T, h server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args

	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text, res.IsError
}

func TestListNodes(t *testing.T) {
	repo := memory.NewSeededRepository()

	out, isErr := call(t, listHandler(repo), map[string]any{"categories": "Process"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "node-5")
	assert.Contains(t, out, "node-6")
	assert.NotContains(t, out, "node-1 ")

	out, isErr = call(t, listHandler(repo), map[string]any{"categories": "Marketing"})
	assert.True(t, isErr)
	assert.Contains(t, out, "unknown category")
}

func TestGetNode(t *testing.T) {
	repo := memory.NewSeededRepository()

	out, isErr := call(t, getHandler(repo), map[string]any{"id": "node-4"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "Data Security Protocols")
	assert.Contains(t, out, "tags: Security, Data Protection, Encryption, Compliance")

	out, isErr = call(t, getHandler(repo), map[string]any{"id": "node-40"})
	assert.True(t, isErr)
	assert.Contains(t, out, "not found")
}

func TestLayoutAndCurve(t *testing.T) {
	repo := memory.NewSeededRepository()

	out, isErr := call(t, layoutHandler(repo, testScenes), map[string]any{"mode": "hierarchy"})
	require.False(t, isErr, out)
	assert.True(t, strings.HasPrefix(out, "mode: hierarchy"))
	assert.Contains(t, out, "9 connections rendered")

	out, isErr = call(t, layoutHandler(repo, testScenes), map[string]any{"mode": "spiral"})
	assert.True(t, isErr)
	assert.Contains(t, out, "unknown view mode")

	out, isErr = call(t, curveHandler(repo, testScenes), map[string]any{"from": "node-3", "to": "node-5", "mode": "cluster"})
	require.False(t, isErr, out)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 1+domain.CurveSegments+1)
}

func TestMinimapTools(t *testing.T) {
	repo := memory.NewSeededRepository()

	out, isErr := call(t, minimapHandler(repo, testScenes), map[string]any{"width": 200.0, "height": 150.0})
	require.False(t, isErr, out)
	assert.Equal(t, 8, strings.Count(out, "circle "))
	assert.Contains(t, out, "viewport ")

	out, isErr = call(t, minimapClickHandler(repo, testScenes), map[string]any{"x": 100.0, "y": 75.0})
	require.False(t, isErr, out)
	assert.Contains(t, out, "x=")

	empty := memory.NewRepository()
	_, isErr = call(t, minimapHandler(empty, testScenes), nil)
	assert.True(t, isErr)
}

func TestWriteTools(t *testing.T) {
	repo := memory.NewSeededRepository()
	fixed := func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

	out, isErr := call(t, addNodeHandler(repo, fixed), map[string]any{
		"id": "node-9", "title": "Incident Runbook", "category": "process", "tags": "Ops, On-call",
	})
	require.False(t, isErr, out)
	assert.Equal(t, "Added node: node-9 Incident Runbook", out)

	n, _ := repo.GetNode(context.Background(), "node-9")
	require.NotNil(t, n)
	assert.Equal(t, []string{"Ops", "On-call"}, n.Tags)
	assert.Equal(t, 50.0, n.Importance)

	out, isErr = call(t, addNodeHandler(repo, fixed), map[string]any{"title": "Generated"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "Generated")

	out, isErr = call(t, connectHandler(repo), map[string]any{"from": "node-9", "to": "node-4", "type": "references"})
	require.False(t, isErr, out)
	assert.Equal(t, "Connected node-9->node-4:references", out)

	out, isErr = call(t, deleteNodeHandler(repo), map[string]any{"id": "node-9"})
	require.False(t, isErr, out)
}

func TestImportExport(t *testing.T) {
	src := memory.NewSeededRepository()
	path := filepath.Join(t.TempDir(), "graph.yaml")

	out, isErr := call(t, exportHandler(src), map[string]any{"path": path})
	require.False(t, isErr, out)
	assert.Contains(t, out, "Wrote 8 nodes and 9 connections")

	dst := memory.NewRepository()
	out, isErr = call(t, importHandler(dst), map[string]any{"path": path, "replace": true})
	require.False(t, isErr, out)
	assert.Equal(t, "Imported 8 nodes and 9 connections", out)
}
