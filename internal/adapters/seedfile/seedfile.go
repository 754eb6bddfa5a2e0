package seedfile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"knowmap/internal/domain"
)

// File is the on-disk shape of a knowledge graph
type File struct {
	Nodes       []NodeRecord       `yaml:"nodes"`
	Connections []ConnectionRecord `yaml:"connections"`
}

// NodeRecord is one node as written in YAML
type NodeRecord struct {
	ID           string    `yaml:"id"`
	Title        string    `yaml:"title"`
	Summary      string    `yaml:"summary,omitempty"`
	Category     string    `yaml:"category"`
	Importance   float64   `yaml:"importance"`
	Author       string    `yaml:"author,omitempty"`
	LastModified string    `yaml:"lastModified,omitempty"`
	Views        int       `yaml:"views,omitempty"`
	Connections  int       `yaml:"connections,omitempty"`
	Tags         []string  `yaml:"tags,omitempty,flow"`
	Position     []float64 `yaml:"position,omitempty,flow"`
}

// ConnectionRecord is one connection as written in YAML
type ConnectionRecord struct {
	From     string  `yaml:"from"`
	To       string  `yaml:"to"`
	Type     string  `yaml:"type"`
	Strength float64 `yaml:"strength"`
}

// Load reads a graph from a YAML file
func Load(path string) ([]domain.Node, []domain.Connection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Decode(bytes.NewReader(data))
}

// Decode parses a graph from YAML. Categories and relationship types
// that are not recognised decode as Unknown; validation happens on import.
func Decode(r io.Reader) ([]domain.Node, []domain.Connection, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return nil, nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	nodes := make([]domain.Node, 0, len(f.Nodes))
	for i, rec := range f.Nodes {
		n := domain.Node{
			ID:          rec.ID,
			Title:       rec.Title,
			Summary:     rec.Summary,
			Category:    domain.ParseCategory(rec.Category),
			Importance:  rec.Importance,
			Author:      rec.Author,
			Views:       rec.Views,
			Connections: rec.Connections,
			Tags:        rec.Tags,
			Position:    rec.Position,
		}
		if rec.LastModified != "" {
			t, err := time.Parse(time.RFC3339, rec.LastModified)
			if err != nil {
				return nil, nil, fmt.Errorf("node %d (%s): bad lastModified: %w", i, rec.ID, err)
			}
			n.LastModified = t
		}
		nodes = append(nodes, n)
	}

	conns := make([]domain.Connection, 0, len(f.Connections))
	for _, rec := range f.Connections {
		conns = append(conns, domain.Connection{
			From:     rec.From,
			To:       rec.To,
			Type:     domain.ParseRelationshipType(rec.Type),
			Strength: rec.Strength,
		})
	}
	return nodes, conns, nil
}

// Encode writes a graph as YAML
func Encode(w io.Writer, nodes []domain.Node, conns []domain.Connection) error {
	f := File{
		Nodes:       make([]NodeRecord, 0, len(nodes)),
		Connections: make([]ConnectionRecord, 0, len(conns)),
	}
	for _, n := range nodes {
		rec := NodeRecord{
			ID:          n.ID,
			Title:       n.Title,
			Summary:     n.Summary,
			Category:    n.Category.String(),
			Importance:  n.Importance,
			Author:      n.Author,
			Views:       n.Views,
			Connections: n.Connections,
			Tags:        n.Tags,
			Position:    n.Position,
		}
		if !n.LastModified.IsZero() {
			rec.LastModified = n.LastModified.UTC().Format(time.RFC3339)
		}
		f.Nodes = append(f.Nodes, rec)
	}
	for _, c := range conns {
		f.Connections = append(f.Connections, ConnectionRecord{
			From:     c.From,
			To:       c.To,
			Type:     c.Type.String(),
			Strength: c.Strength,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("failed to encode seed file: %w", err)
	}
	return enc.Close()
}

// Save writes a graph to path, creating parent directories
func Save(path string, nodes []domain.Node, conns []domain.Connection) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, nodes, conns); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
