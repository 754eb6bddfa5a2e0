package application

import (
	"errors"
	"math"
	"testing"

	"knowmap/internal/domain"
)

func TestValidateNode(t *testing.T) {
	tests := []struct {
		name    string
		node    *domain.Node
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid node",
			node: &domain.Node{ID: "node-1", Title: "API Docs", Importance: 85, Position: []float64{1, 2, 3}},
		},
		{
			name:    "nil node",
			node:    nil,
			wantErr: true,
			errMsg:  "nodeID: node is required",
		},
		{
			name:    "blank id",
			node:    &domain.Node{ID: "  ", Title: "x"},
			wantErr: true,
			errMsg:  "nodeID: node ID is required",
		},
		{
			name:    "id with space",
			node:    &domain.Node{ID: "node 1", Title: "x"},
			wantErr: true,
			errMsg:  `invalid ID: "node 1" contains whitespace`,
		},
		{
			name:    "missing title",
			node:    &domain.Node{ID: "n"},
			wantErr: true,
			errMsg:  "title: title is required",
		},
		{
			name:    "importance above range",
			node:    &domain.Node{ID: "n", Title: "t", Importance: 120},
			wantErr: true,
			errMsg:  "importance: importance must be between 0 and 100, got: 120",
		},
		{
			name:    "NaN importance",
			node:    &domain.Node{ID: "n", Title: "t", Importance: math.NaN()},
			wantErr: true,
		},
		{
			name:    "short position",
			node:    &domain.Node{ID: "n", Title: "t", Position: []float64{1, 2}},
			wantErr: true,
			errMsg:  "position: position needs 3 coordinates, got: 2",
		},
		{
			name:    "negative views",
			node:    &domain.Node{ID: "n", Title: "t", Views: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNode(tt.node)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateNode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.errMsg != "" && err.Error() != tt.errMsg {
				t.Errorf("ValidateNode() error = %q, want %q", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestValidateConnection(t *testing.T) {
	known := map[string]bool{"a": true, "b": true}

	valid := &domain.Connection{From: "a", To: "b", Type: domain.RelationshipRelated, Strength: 0.5}
	if err := ValidateConnection(valid, known); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dangling := &domain.Connection{From: "a", To: "ghost", Type: domain.RelationshipRelated, Strength: 0.5}
	err := ValidateConnection(dangling, known)
	if !errors.Is(err, ErrDanglingEdge) {
		t.Errorf("expected ErrDanglingEdge, got %v", err)
	}

	untyped := &domain.Connection{From: "a", To: "b", Strength: 0.5}
	var verr *ValidationError
	if err := ValidateConnection(untyped, known); !errors.As(err, &verr) || verr.Field != "type" {
		t.Errorf("expected type validation error, got %v", err)
	}

	strong := &domain.Connection{From: "a", To: "b", Type: domain.RelationshipContains, Strength: 1.5}
	if err := ValidateConnection(strong, nil); err == nil {
		t.Error("expected strength error")
	}
}

func TestParseViewModeWrapsSentinel(t *testing.T) {
	if _, err := ParseViewMode("spiral"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
	mode, err := ParseViewMode("hierarchy")
	if err != nil || mode != ModeHierarchy {
		t.Errorf("ParseViewMode(hierarchy) = %v, %v", mode, err)
	}
}

func TestNotFoundError(t *testing.T) {
	err := error(&NotFoundError{Kind: "node", ID: "node-9"})
	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}
	if err.Error() != "node node-9 not found" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
