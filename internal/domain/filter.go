package domain

import (
	"slices"
	"strings"
)

// Filter narrows the map to a subset of nodes and connections.
// Empty sets mean "everything".
type Filter struct {
	Categories    []Category
	Relationships []RelationshipType
	Query         string
}

// IsZero reports whether the filter lets everything through
func (f Filter) IsZero() bool {
	return len(f.Categories) == 0 && len(f.Relationships) == 0 && strings.TrimSpace(f.Query) == ""
}

// Visible is the result of applying a Filter
type Visible struct {
	Nodes       []Node
	Connections []Connection
	Highlighted map[string]bool
}

// Apply filters nodes by category and query, then keeps only connections
// whose endpoints are both visible and whose type passes the filter.
// Nodes without an id are never visible.
func (f Filter) Apply(nodes []Node, connections []Connection) Visible {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := Visible{Highlighted: map[string]bool{}}

	ids := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if strings.TrimSpace(n.ID) == "" {
			continue
		}
		if len(f.Categories) > 0 && !slices.Contains(f.Categories, n.Category) {
			continue
		}
		if query != "" {
			if !n.Matches(query) {
				continue
			}
			out.Highlighted[n.ID] = true
		}
		out.Nodes = append(out.Nodes, n)
		ids[n.ID] = true
	}

	out.Connections = VisibleConnections(connections, ids, f.Relationships)
	return out
}

// VisibleConnections keeps connections whose endpoints are both in ids
// and whose type is in types (or types is empty)
func VisibleConnections(connections []Connection, ids map[string]bool, types []RelationshipType) []Connection {
	var out []Connection
	for _, c := range connections {
		if !ids[c.From] || !ids[c.To] {
			continue
		}
		if len(types) > 0 && !slices.Contains(types, c.Type) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Matches reports whether a lower-cased query appears in the node's
// title, summary or any tag
func (n Node) Matches(query string) bool {
	if strings.Contains(strings.ToLower(n.Title), query) ||
		strings.Contains(strings.ToLower(n.Summary), query) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// ToggleCategory adds c to the filter, or removes it if already present
func (f *Filter) ToggleCategory(c Category) {
	if i := slices.Index(f.Categories, c); i >= 0 {
		f.Categories = slices.Delete(f.Categories, i, i+1)
		return
	}
	f.Categories = append(f.Categories, c)
}

// ToggleRelationship adds r to the filter, or removes it if already present
func (f *Filter) ToggleRelationship(r RelationshipType) {
	if i := slices.Index(f.Relationships, r); i >= 0 {
		f.Relationships = slices.Delete(f.Relationships, i, i+1)
		return
	}
	f.Relationships = append(f.Relationships, r)
}

// CategoryCount is the number of nodes in a category
type CategoryCount struct {
	Category Category
	Count    int
}

// CountByCategory tallies nodes per category, in Categories() order,
// omitting empty categories
func CountByCategory(nodes []Node) []CategoryCount {
	counts := map[Category]int{}
	for _, n := range nodes {
		counts[n.Category]++
	}
	var out []CategoryCount
	for _, c := range Categories() {
		if counts[c] > 0 {
			out = append(out, CategoryCount{Category: c, Count: counts[c]})
		}
	}
	return out
}

// RelationshipCount is the number of connections of a type
type RelationshipCount struct {
	Type  RelationshipType
	Count int
}

// CountByRelationship tallies connections per type, omitting empty types
func CountByRelationship(connections []Connection) []RelationshipCount {
	counts := map[RelationshipType]int{}
	for _, c := range connections {
		counts[c.Type]++
	}
	var out []RelationshipCount
	for _, r := range RelationshipTypes() {
		if counts[r] > 0 {
			out = append(out, RelationshipCount{Type: r, Count: counts[r]})
		}
	}
	return out
}
