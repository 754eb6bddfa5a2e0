package memory

import (
	"context"
	"errors"
	"slices"
	"sync"

	"knowmap/internal/domain"
	"knowmap/internal/ports"
)

// ErrTxDone is returned when a finished transaction is used again
var ErrTxDone = errors.New("transaction already committed or rolled back")

// Repository implements ports.GraphRepository in process memory
type Repository struct {
	mu    sync.RWMutex
	order []string
	nodes map[string]domain.Node
	conns []domain.Connection
}

// Ensure Repository implements GraphRepository
var _ ports.GraphRepository = (*Repository)(nil)

// NewRepository creates an empty repository
func NewRepository() *Repository {
	return &Repository{nodes: make(map[string]domain.Node)}
}

// NewSeededRepository creates a repository holding the sample graph
func NewSeededRepository() *Repository {
	r := NewRepository()
	for _, n := range domain.SeedNodes() {
		r.order = append(r.order, n.ID)
		r.nodes[n.ID] = n
	}
	r.conns = domain.SeedConnections()
	return r
}

// ListNodes returns all nodes in insertion order
func (r *Repository) ListNodes(ctx context.Context) ([]domain.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	nodes := make([]domain.Node, 0, len(r.order))
	for _, id := range r.order {
		nodes = append(nodes, cloneNode(r.nodes[id]))
	}
	return nodes, nil
}

// ListConnections returns all connections in insertion order
func (r *Repository) ListConnections(ctx context.Context) ([]domain.Connection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.conns), nil
}

// GetNode returns the node with id, or nil if there is none
func (r *Repository) GetNode(ctx context.Context, id string) (*domain.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.nodes[id]
	if !ok {
		return nil, nil
	}
	n = cloneNode(n)
	return &n, nil
}

// BeginTx starts a transaction over a private copy of the graph
func (r *Repository) BeginTx(ctx context.Context) (ports.GraphTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	tx := &tx{
		repo:  r,
		order: slices.Clone(r.order),
		nodes: make(map[string]domain.Node, len(r.nodes)),
		conns: slices.Clone(r.conns),
	}
	for id, n := range r.nodes {
		tx.nodes[id] = n
	}
	return tx, nil
}

type tx struct {
	repo  *Repository
	done  bool
	order []string
	nodes map[string]domain.Node
	conns []domain.Connection
}

func (t *tx) UpsertNode(node *domain.Node) error {
	if t.done {
		return ErrTxDone
	}
	if _, exists := t.nodes[node.ID]; !exists {
		t.order = append(t.order, node.ID)
	}
	t.nodes[node.ID] = cloneNode(*node)
	return nil
}

func (t *tx) DeleteNode(id string) error {
	if t.done {
		return ErrTxDone
	}
	delete(t.nodes, id)
	t.order = slices.DeleteFunc(t.order, func(s string) bool { return s == id })
	return nil
}

func (t *tx) InsertConnection(conn *domain.Connection) error {
	if t.done {
		return ErrTxDone
	}
	for i, c := range t.conns {
		if c.Key() == conn.Key() {
			t.conns[i] = *conn
			return nil
		}
	}
	t.conns = append(t.conns, *conn)
	return nil
}

func (t *tx) DeleteConnectionsFor(nodeID string) error {
	if t.done {
		return ErrTxDone
	}
	t.conns = slices.DeleteFunc(t.conns, func(c domain.Connection) bool {
		return c.From == nodeID || c.To == nodeID
	})
	return nil
}

func (t *tx) Commit() error {
	if t.done {
		return ErrTxDone
	}
	t.done = true

	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	t.repo.order = t.order
	t.repo.nodes = t.nodes
	t.repo.conns = t.conns
	return nil
}

func (t *tx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	return nil
}

func cloneNode(n domain.Node) domain.Node {
	n.Tags = slices.Clone(n.Tags)
	n.Position = slices.Clone(n.Position)
	return n
}
