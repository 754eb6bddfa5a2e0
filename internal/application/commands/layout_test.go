package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"knowmap/internal/adapters/memory"
	"knowmap/internal/application"
	"knowmap/internal/domain"
)

func newScene() *application.Scene {
	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	return application.NewScene(application.SceneOptions{
		Seed:     7,
		Resolver: domain.NewResolver(7, func() time.Time { return now }),
	})
}

func TestComposeSceneCommand(t *testing.T) {
	repo := memory.NewSeededRepository()
	scene := newScene()
	scene.SetMode(domain.ModeCluster)

	frame, err := NewComposeSceneCommand(repo, scene, domain.Filter{Query: "training"}).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frame.Mode != domain.ModeCluster {
		t.Errorf("expected cluster frame, got %s", frame.Mode)
	}
	if len(frame.Nodes) != 2 || len(frame.Edges) != 1 {
		t.Errorf("expected 2 nodes and 1 edge, got %d and %d", len(frame.Nodes), len(frame.Edges))
	}
	for _, n := range frame.Nodes {
		if !n.Highlighted {
			t.Errorf("%s should be highlighted by the query", n.Node.ID)
		}
	}
}

func TestCurveCommand(t *testing.T) {
	repo := memory.NewSeededRepository()
	scene := newScene()

	edge, err := NewCurveCommand(repo, scene, "node-1", "node-2").Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(edge.Points) != domain.CurveSegments+1 {
		t.Errorf("expected %d points, got %d", domain.CurveSegments+1, len(edge.Points))
	}

	_, err = NewCurveCommand(repo, scene, "node-1", "node-8").Execute(context.Background())
	if !errors.Is(err, application.ErrDanglingEdge) {
		t.Errorf("expected ErrDanglingEdge for unconnected pair, got %v", err)
	}
}

type recordingCanvas struct {
	width, height int
	calls         []string
}

func (c *recordingCanvas) Width() int  { return c.width }
func (c *recordingCanvas) Height() int { return c.height }
func (c *recordingCanvas) Clear()      { c.calls = append(c.calls, "clear") }

func (c *recordingCanvas) Circle(x, y, r float64, color string) {
	c.calls = append(c.calls, fmt.Sprintf("circle %s", color))
}

func (c *recordingCanvas) Rect(x, y, w, h float64, color string) {
	c.calls = append(c.calls, "rect")
}

func TestExportMinimapCommand(t *testing.T) {
	canvas := &recordingCanvas{width: 200, height: 150}
	cmd := NewExportMinimapCommand(memory.NewSeededRepository(), newScene(), canvas)

	list, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Circles) != 8 {
		t.Errorf("expected 8 dots, got %d", len(list.Circles))
	}
	// clear + 8 dots + viewport rect
	if len(canvas.calls) != 10 {
		t.Errorf("expected 10 draw calls, got %d", len(canvas.calls))
	}

	empty := NewExportMinimapCommand(memory.NewRepository(), newScene(), &recordingCanvas{width: 200, height: 150})
	if _, err := empty.Execute(context.Background()); !errors.Is(err, application.ErrEmptyMinimap) {
		t.Errorf("expected ErrEmptyMinimap, got %v", err)
	}
}
