package application

import (
	"fmt"

	"knowmap/internal/domain"
)

// Re-export domain types for use by adapters
type (
	Node       = domain.Node
	Connection = domain.Connection
	Vec3       = domain.Vec3
	Viewport   = domain.Viewport
	ViewMode   = domain.ViewMode
	Filter     = domain.Filter
)

// Re-export view modes
const (
	ModeDefault   = domain.ModeDefault
	ModeCluster   = domain.ModeCluster
	ModeHierarchy = domain.ModeHierarchy
	ModeTimeline  = domain.ModeTimeline
)

// ParseViewMode parses a view mode name, wrapping failures in ErrUnknownMode
func ParseViewMode(s string) (ViewMode, error) {
	mode, err := domain.ParseViewMode(s)
	if err != nil {
		return mode, fmt.Errorf("%w: %s", ErrUnknownMode, s)
	}
	return mode, nil
}
