package commands

import (
	"context"
	"errors"
	"testing"

	"knowmap/internal/adapters/memory"
	"knowmap/internal/application"
	"knowmap/internal/domain"
)

func TestImportCommand_IntoEmpty(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()

	result, err := NewImportCommand(repo, domain.SeedNodes(), domain.SeedConnections()).Execute(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Nodes != 8 || result.Connections != 9 {
		t.Errorf("unexpected result %+v", result)
	}

	nodes, _ := repo.ListNodes(ctx)
	if len(nodes) != 8 {
		t.Errorf("expected 8 stored nodes, got %d", len(nodes))
	}
}

func TestImportCommand_RejectsBadBatches(t *testing.T) {
	node := domain.Node{ID: "x", Title: "X"}

	tests := []struct {
		name    string
		nodes   []domain.Node
		conns   []domain.Connection
		wantErr error
	}{
		{
			name:    "duplicate ids",
			nodes:   []domain.Node{node, node},
			wantErr: application.ErrDuplicateID,
		},
		{
			name:    "dangling connection",
			nodes:   []domain.Node{node},
			conns:   []domain.Connection{{From: "x", To: "nowhere", Type: domain.RelationshipRelated, Strength: 0.5}},
			wantErr: application.ErrDanglingEdge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := memory.NewRepository()
			_, err := NewImportCommand(repo, tt.nodes, tt.conns).Execute(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			nodes, _ := repo.ListNodes(context.Background())
			if len(nodes) != 0 {
				t.Error("failed import must not write anything")
			}
		})
	}
}

func TestImportCommand_ConnectsToExisting(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSeededRepository()

	nodes := []domain.Node{{ID: "node-9", Title: "Incident Runbook", Importance: 70}}
	conns := []domain.Connection{{From: "node-9", To: "node-4", Type: domain.RelationshipReferences, Strength: 0.6}}

	if _, err := NewImportCommand(repo, nodes, conns).Execute(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cmd := NewImportCommand(repo, nodes, conns)
	cmd.Replace = true
	if _, err := cmd.Execute(ctx); !errors.Is(err, application.ErrDanglingEdge) {
		t.Errorf("replace drops node-4, expected ErrDanglingEdge, got %v", err)
	}
}

func TestImportCommand_Replace(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSeededRepository()

	cmd := NewImportCommand(repo, []domain.Node{{ID: "solo", Title: "Solo"}}, nil)
	cmd.Replace = true
	if _, err := cmd.Execute(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	nodes, _ := repo.ListNodes(ctx)
	conns, _ := repo.ListConnections(ctx)
	if len(nodes) != 1 || len(conns) != 0 {
		t.Errorf("expected only the imported node, got %d nodes %d connections", len(nodes), len(conns))
	}
}
