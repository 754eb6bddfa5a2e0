package sqlite

import (
	"context"
	"database/sql"

	"knowmap/internal/domain"
	"knowmap/internal/ports"
)

// graphTx implements ports.GraphTx
type graphTx struct {
	ctx context.Context
	tx  *sql.Tx
}

// Ensure graphTx implements GraphTx
var _ ports.GraphTx = (*graphTx)(nil)

// UpsertNode inserts or updates a node and replaces its tags. Updating
// keeps the node's place in the listing order.
func (t *graphTx) UpsertNode(node *domain.Node) error {
	var lastModified sql.NullInt64
	if !node.LastModified.IsZero() {
		lastModified = sql.NullInt64{Int64: node.LastModified.UnixNano(), Valid: true}
	}
	// SQLite reads a NaN REAL back as NULL, so each axis is stored
	// sanitized and one bad component cannot drop the other two
	var x, y, z sql.NullFloat64
	if len(node.Position) == 3 {
		pos := domain.Sanitize(node.Position)
		x = sql.NullFloat64{Float64: pos.X, Valid: true}
		y = sql.NullFloat64{Float64: pos.Y, Valid: true}
		z = sql.NullFloat64{Float64: pos.Z, Valid: true}
	}

	_, err := t.tx.ExecContext(t.ctx, `
		INSERT INTO nodes (`+nodeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			summary = excluded.summary,
			category = excluded.category,
			importance = excluded.importance,
			author = excluded.author,
			last_modified = excluded.last_modified,
			views = excluded.views,
			connections = excluded.connections,
			pos_x = excluded.pos_x,
			pos_y = excluded.pos_y,
			pos_z = excluded.pos_z
	`, node.ID, node.Title, node.Summary, node.Category.String(), node.Importance, node.Author,
		lastModified, node.Views, node.Connections, x, y, z)
	if err != nil {
		return err
	}

	if _, err := t.tx.ExecContext(t.ctx, `DELETE FROM node_tags WHERE node_id = ?`, node.ID); err != nil {
		return err
	}
	for i, tag := range node.Tags {
		if _, err := t.tx.ExecContext(t.ctx, `
			INSERT INTO node_tags (node_id, ord, tag) VALUES (?, ?, ?)
		`, node.ID, i, tag); err != nil {
			return err
		}
	}
	return nil
}

// DeleteNode removes a node by id. Its tags cascade.
func (t *graphTx) DeleteNode(id string) error {
	_, err := t.tx.ExecContext(t.ctx, `DELETE FROM nodes WHERE id = ?`, id)
	return err
}

// InsertConnection adds a connection, replacing one with the same key
func (t *graphTx) InsertConnection(conn *domain.Connection) error {
	_, err := t.tx.ExecContext(t.ctx, `
		INSERT INTO connections (from_id, to_id, type, strength)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(from_id, to_id, type) DO UPDATE SET strength = excluded.strength
	`, conn.From, conn.To, conn.Type.String(), conn.Strength)
	return err
}

// DeleteConnectionsFor removes every connection touching nodeID
func (t *graphTx) DeleteConnectionsFor(nodeID string) error {
	_, err := t.tx.ExecContext(t.ctx, `
		DELETE FROM connections WHERE from_id = ? OR to_id = ?
	`, nodeID, nodeID)
	return err
}

// Commit commits the transaction
func (t *graphTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *graphTx) Rollback() error {
	return t.tx.Rollback()
}
