package application

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"knowmap/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "nodeID" -> "node ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"nodeID":     "node ID",
		"fromID":     "source node ID",
		"toID":       "target node ID",
		"title":      "title",
		"importance": "importance",
		"strength":   "strength",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateRange checks that a numeric field is finite and within [lo, hi]
func ValidateRange(fieldName string, value, lo, hi float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < lo || value > hi {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must be between %g and %g, got: %g", formatFieldName(fieldName), lo, hi, value),
		}
	}
	return nil
}

// ValidateNode checks the fields a node must carry before it is stored.
// Layout never fails on a malformed node; storage does.
func ValidateNode(n *domain.Node) error {
	if n == nil {
		return &ValidationError{Field: "nodeID", Message: "node is required"}
	}
	if err := ValidateRequired("nodeID", n.ID); err != nil {
		return err
	}
	if strings.ContainsFunc(n.ID, unicode.IsSpace) {
		return fmt.Errorf("%w: %q contains whitespace", ErrInvalidID, n.ID)
	}
	if err := ValidateRequired("title", n.Title); err != nil {
		return err
	}
	if err := ValidateRange("importance", n.Importance, 0, 100); err != nil {
		return err
	}
	if n.Views < 0 {
		return &ValidationError{Field: "views", Message: fmt.Sprintf("views must be non-negative, got: %d", n.Views)}
	}
	if n.Position != nil && len(n.Position) != 3 {
		return &ValidationError{Field: "position", Message: fmt.Sprintf("position needs 3 coordinates, got: %d", len(n.Position))}
	}
	return nil
}

// ValidateConnection checks a connection against the set of known node ids
func ValidateConnection(c *domain.Connection, known map[string]bool) error {
	if err := ValidateRequired("fromID", c.From); err != nil {
		return err
	}
	if err := ValidateRequired("toID", c.To); err != nil {
		return err
	}
	if err := ValidateRange("strength", c.Strength, 0, 1); err != nil {
		return err
	}
	if c.Type == domain.RelationshipUnknown {
		return &ValidationError{Field: "type", Message: "relationship type is required"}
	}
	if known != nil {
		for _, id := range []string{c.From, c.To} {
			if !known[id] {
				return &ConnectionError{From: c.From, To: c.To, Reason: fmt.Sprintf("node %s does not exist", id)}
			}
		}
	}
	return nil
}
