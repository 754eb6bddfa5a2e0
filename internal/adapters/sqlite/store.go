package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"knowmap/internal/domain"
	"knowmap/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Store implements ports.GraphRepository using SQLite
type Store struct {
	db     *sql.DB
	dbPath string
}

// Ensure Store implements GraphRepository
var _ ports.GraphRepository = (*Store)(nil)

// Open opens (creating if needed) the graph database at dbPath.
// The special path ":memory:" keeps everything in process.
func Open(dbPath string) (*Store, error) {
	if len(dbPath) > 0 && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dsn := dbPath
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn += "?_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection keeps :memory: databases shared and serializes writers
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;
		PRAGMA foreign_keys = ON;

		CREATE TABLE IF NOT EXISTS nodes (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			summary TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL,
			importance REAL NOT NULL DEFAULT 0,
			author TEXT NOT NULL DEFAULT '',
			last_modified INTEGER,
			views INTEGER NOT NULL DEFAULT 0,
			connections INTEGER NOT NULL DEFAULT 0,
			pos_x REAL,
			pos_y REAL,
			pos_z REAL
		);
		CREATE TABLE IF NOT EXISTS node_tags (
			node_id TEXT NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
			ord INTEGER NOT NULL,
			tag TEXT NOT NULL,
			PRIMARY KEY (node_id, ord)
		);
		CREATE TABLE IF NOT EXISTS connections (
			from_id TEXT NOT NULL,
			to_id TEXT NOT NULL,
			type TEXT NOT NULL,
			strength REAL NOT NULL,
			PRIMARY KEY (from_id, to_id, type)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_connections_to ON connections(to_id);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.dbPath
}

const nodeColumns = `id, title, summary, category, importance, author,
	last_modified, views, connections, pos_x, pos_y, pos_z`

// ListNodes returns all nodes in insertion order
func (s *Store) ListNodes(ctx context.Context) ([]domain.Node, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+nodeColumns+` FROM nodes ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []domain.Node
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tags, err := s.tagsByNode(ctx)
	if err != nil {
		return nil, err
	}
	for i := range nodes {
		nodes[i].Tags = tags[nodes[i].ID]
	}
	return nodes, nil
}

// GetNode retrieves a node by id, or nil if there is none
func (s *Store) GetNode(ctx context.Context, id string) (*domain.Node, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+nodeColumns+` FROM nodes WHERE id = ?`, id)
	n, err := scanNode(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT tag FROM node_tags WHERE node_id = ? ORDER BY ord`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		n.Tags = append(n.Tags, tag)
	}
	return n, rows.Err()
}

// ListConnections returns all connections in insertion order
func (s *Store) ListConnections(ctx context.Context) ([]domain.Connection, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT from_id, to_id, type, strength
		FROM connections ORDER BY rowid
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conns []domain.Connection
	for rows.Next() {
		var c domain.Connection
		var typ string
		if err := rows.Scan(&c.From, &c.To, &typ, &c.Strength); err != nil {
			return nil, err
		}
		c.Type = domain.ParseRelationshipType(typ)
		conns = append(conns, c)
	}
	return conns, rows.Err()
}

// BeginTx starts a new transaction
func (s *Store) BeginTx(ctx context.Context) (ports.GraphTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &graphTx{ctx: ctx, tx: tx}, nil
}

func (s *Store) tagsByNode(ctx context.Context) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT node_id, tag FROM node_tags ORDER BY node_id, ord`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make(map[string][]string)
	for rows.Next() {
		var id, tag string
		if err := rows.Scan(&id, &tag); err != nil {
			return nil, err
		}
		tags[id] = append(tags[id], tag)
	}
	return tags, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNode(row scanner) (*domain.Node, error) {
	var (
		n            domain.Node
		category     string
		lastModified sql.NullInt64
		x, y, z      sql.NullFloat64
	)
	err := row.Scan(&n.ID, &n.Title, &n.Summary, &category, &n.Importance, &n.Author,
		&lastModified, &n.Views, &n.Connections, &x, &y, &z)
	if err != nil {
		return nil, err
	}

	n.Category = domain.ParseCategory(category)
	if lastModified.Valid {
		n.LastModified = time.Unix(0, lastModified.Int64).UTC()
	}
	if x.Valid && y.Valid && z.Valid {
		n.Position = []float64{x.Float64, y.Float64, z.Float64}
	}
	return &n, nil
}
