package ports

import (
	"context"

	"knowmap/internal/domain"
)

// GraphRepository defines the interface for node and connection storage
type GraphRepository interface {
	// Queries
	ListNodes(ctx context.Context) ([]domain.Node, error)
	ListConnections(ctx context.Context) ([]domain.Connection, error)
	GetNode(ctx context.Context, id string) (*domain.Node, error)

	// Batch updates (imports, edits)
	BeginTx(ctx context.Context) (GraphTx, error)
}

// GraphTx represents a transaction for atomic graph updates
type GraphTx interface {
	// Node operations
	UpsertNode(node *domain.Node) error
	DeleteNode(id string) error

	// Connection operations
	InsertConnection(conn *domain.Connection) error
	DeleteConnectionsFor(nodeID string) error

	// Transaction control
	Commit() error
	Rollback() error
}
