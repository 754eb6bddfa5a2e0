package commands

import (
	"context"
	"fmt"
	"strings"

	"knowmap/internal/application"
	"knowmap/internal/domain"
	"knowmap/internal/ports"
)

// ListNodesCommand lists the graph, optionally narrowed by a filter
type ListNodesCommand struct {
	repo   ports.GraphRepository
	Filter domain.Filter
}

// NewListNodesCommand creates a new ListNodesCommand
func NewListNodesCommand(repo ports.GraphRepository, filter domain.Filter) *ListNodesCommand {
	return &ListNodesCommand{
		repo:   repo,
		Filter: filter,
	}
}

// Execute loads nodes and connections and applies the filter
func (c *ListNodesCommand) Execute(ctx context.Context) (domain.Visible, error) {
	nodes, err := c.repo.ListNodes(ctx)
	if err != nil {
		return domain.Visible{}, fmt.Errorf("failed to list nodes: %w", err)
	}
	conns, err := c.repo.ListConnections(ctx)
	if err != nil {
		return domain.Visible{}, fmt.Errorf("failed to list connections: %w", err)
	}
	return c.Filter.Apply(nodes, conns), nil
}

// GetNodeCommand fetches a single node
type GetNodeCommand struct {
	repo ports.GraphRepository
	ID   string
}

// NewGetNodeCommand creates a new GetNodeCommand
func NewGetNodeCommand(repo ports.GraphRepository, id string) *GetNodeCommand {
	return &GetNodeCommand{repo: repo, ID: id}
}

// Execute returns the node or a NotFoundError
func (c *GetNodeCommand) Execute(ctx context.Context) (*domain.Node, error) {
	if err := application.ValidateRequired("nodeID", c.ID); err != nil {
		return nil, err
	}

	node, err := c.repo.GetNode(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get node %s: %w", c.ID, err)
	}
	if node == nil {
		return nil, &application.NotFoundError{Kind: "node", ID: c.ID}
	}
	return node, nil
}

// AddNodeResult contains the result of adding a node
type AddNodeResult struct {
	Node    *domain.Node
	Message string
}

// AddNodeCommand stores a new node
type AddNodeCommand struct {
	repo ports.GraphRepository
	Node domain.Node
}

// NewAddNodeCommand creates a new AddNodeCommand
func NewAddNodeCommand(repo ports.GraphRepository, node domain.Node) *AddNodeCommand {
	return &AddNodeCommand{repo: repo, Node: node}
}

// Validate checks if the node can be stored
func (c *AddNodeCommand) Validate() error {
	c.Node.ID = strings.TrimSpace(c.Node.ID)
	c.Node.Title = strings.TrimSpace(c.Node.Title)
	return application.ValidateNode(&c.Node)
}

// Execute runs the add node command. Adding an id that already exists
// fails with ErrDuplicateID.
func (c *AddNodeCommand) Execute(ctx context.Context) (*AddNodeResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	existing, err := c.repo.GetNode(ctx, c.Node.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check node %s: %w", c.Node.ID, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", application.ErrDuplicateID, c.Node.ID)
	}

	if err := withTx(ctx, c.repo, func(tx ports.GraphTx) error {
		return tx.UpsertNode(&c.Node)
	}); err != nil {
		return nil, fmt.Errorf("failed to add node: %w", err)
	}

	node := c.Node
	return &AddNodeResult{
		Node:    &node,
		Message: fmt.Sprintf("Added node: %s %s", node.ID, node.Title),
	}, nil
}

// DeleteNodeResult contains the result of a delete operation
type DeleteNodeResult struct {
	DeletedID string
	Message   string
}

// DeleteNodeCommand removes a node and every connection touching it
type DeleteNodeCommand struct {
	repo ports.GraphRepository
	ID   string
}

// NewDeleteNodeCommand creates a new DeleteNodeCommand
func NewDeleteNodeCommand(repo ports.GraphRepository, id string) *DeleteNodeCommand {
	return &DeleteNodeCommand{repo: repo, ID: id}
}

// Execute runs the delete command
func (c *DeleteNodeCommand) Execute(ctx context.Context) (*DeleteNodeResult, error) {
	if _, err := NewGetNodeCommand(c.repo, c.ID).Execute(ctx); err != nil {
		return nil, err
	}

	if err := withTx(ctx, c.repo, func(tx ports.GraphTx) error {
		if err := tx.DeleteConnectionsFor(c.ID); err != nil {
			return err
		}
		return tx.DeleteNode(c.ID)
	}); err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", c.ID, err)
	}

	return &DeleteNodeResult{
		DeletedID: c.ID,
		Message:   fmt.Sprintf("Deleted %s", c.ID),
	}, nil
}

// ConnectCommand links two existing nodes
type ConnectCommand struct {
	repo       ports.GraphRepository
	Connection domain.Connection
}

// NewConnectCommand creates a new ConnectCommand
func NewConnectCommand(repo ports.GraphRepository, conn domain.Connection) *ConnectCommand {
	return &ConnectCommand{repo: repo, Connection: conn}
}

// Execute validates both endpoints and stores the connection
func (c *ConnectCommand) Execute(ctx context.Context) (*domain.Connection, error) {
	nodes, err := c.repo.ListNodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}
	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}

	if err := application.ValidateConnection(&c.Connection, known); err != nil {
		return nil, err
	}

	if err := withTx(ctx, c.repo, func(tx ports.GraphTx) error {
		return tx.InsertConnection(&c.Connection)
	}); err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	conn := c.Connection
	return &conn, nil
}

// withTx runs fn inside a transaction, rolling back on error
func withTx(ctx context.Context, repo ports.GraphRepository, fn func(ports.GraphTx) error) error {
	tx, err := repo.BeginTx(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
