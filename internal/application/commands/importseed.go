package commands

import (
	"context"
	"fmt"

	"knowmap/internal/application"
	"knowmap/internal/domain"
	"knowmap/internal/ports"
)

// ImportResult summarizes an import
type ImportResult struct {
	Nodes       int
	Connections int
	Message     string
}

// ImportCommand writes a batch of nodes and connections in one
// transaction. With Replace set the existing graph is cleared first.
type ImportCommand struct {
	repo        ports.GraphRepository
	Nodes       []domain.Node
	Connections []domain.Connection
	Replace     bool
}

// NewImportCommand creates a new ImportCommand
func NewImportCommand(repo ports.GraphRepository, nodes []domain.Node, conns []domain.Connection) *ImportCommand {
	return &ImportCommand{
		repo:        repo,
		Nodes:       nodes,
		Connections: conns,
	}
}

// Validate checks every record. Connection endpoints may refer to nodes
// in the batch or, unless replacing, to nodes already stored.
func (c *ImportCommand) Validate(existing []domain.Node) error {
	known := make(map[string]bool, len(c.Nodes)+len(existing))
	if !c.Replace {
		for _, n := range existing {
			known[n.ID] = true
		}
	}

	seen := make(map[string]bool, len(c.Nodes))
	for i := range c.Nodes {
		n := &c.Nodes[i]
		if err := application.ValidateNode(n); err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
		if seen[n.ID] {
			return fmt.Errorf("%w: %s", application.ErrDuplicateID, n.ID)
		}
		seen[n.ID] = true
		known[n.ID] = true
	}

	for i := range c.Connections {
		if err := application.ValidateConnection(&c.Connections[i], known); err != nil {
			return fmt.Errorf("connection %d: %w", i, err)
		}
	}
	return nil
}

// Execute runs the import
func (c *ImportCommand) Execute(ctx context.Context) (*ImportResult, error) {
	existing, err := c.repo.ListNodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}
	if err := c.Validate(existing); err != nil {
		return nil, err
	}

	err = withTx(ctx, c.repo, func(tx ports.GraphTx) error {
		if c.Replace {
			for _, n := range existing {
				if err := tx.DeleteConnectionsFor(n.ID); err != nil {
					return err
				}
				if err := tx.DeleteNode(n.ID); err != nil {
					return err
				}
			}
		}
		for i := range c.Nodes {
			if err := tx.UpsertNode(&c.Nodes[i]); err != nil {
				return fmt.Errorf("failed to upsert %s: %w", c.Nodes[i].ID, err)
			}
		}
		for i := range c.Connections {
			if err := tx.InsertConnection(&c.Connections[i]); err != nil {
				return fmt.Errorf("failed to insert %s: %w", c.Connections[i].Key(), err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("import failed: %w", err)
	}

	return &ImportResult{
		Nodes:       len(c.Nodes),
		Connections: len(c.Connections),
		Message:     fmt.Sprintf("Imported %d nodes and %d connections", len(c.Nodes), len(c.Connections)),
	}, nil
}
