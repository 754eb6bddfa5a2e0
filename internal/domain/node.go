package domain

import (
	"strings"
	"time"
)

// Category groups articles by subject area
type Category int

const (
	CategoryUnknown Category = iota
	CategoryTechnical
	CategoryBusiness
	CategoryProcess
	CategoryPolicy
	CategoryTraining
	CategoryGeneral
)

var categoryNames = map[Category]string{
	CategoryTechnical: "Technical",
	CategoryBusiness:  "Business",
	CategoryProcess:   "Process",
	CategoryPolicy:    "Policy",
	CategoryTraining:  "Training",
	CategoryGeneral:   "General",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Unknown"
}

// Categories returns every known category in display order
func Categories() []Category {
	return []Category{
		CategoryTechnical,
		CategoryBusiness,
		CategoryProcess,
		CategoryPolicy,
		CategoryTraining,
		CategoryGeneral,
	}
}

// ParseCategory maps a case-insensitive name to a Category.
// Unrecognized names return CategoryUnknown.
func ParseCategory(s string) Category {
	s = strings.TrimSpace(s)
	for c, name := range categoryNames {
		if strings.EqualFold(name, s) {
			return c
		}
	}
	return CategoryUnknown
}

// RelationshipType describes how two articles relate
type RelationshipType int

const (
	RelationshipUnknown RelationshipType = iota
	RelationshipReferences
	RelationshipRelated
	RelationshipPrerequisite
	RelationshipFollows
	RelationshipContains
)

var relationshipNames = map[RelationshipType]string{
	RelationshipReferences:   "references",
	RelationshipRelated:      "related",
	RelationshipPrerequisite: "prerequisite",
	RelationshipFollows:      "follows",
	RelationshipContains:     "contains",
}

func (r RelationshipType) String() string {
	if name, ok := relationshipNames[r]; ok {
		return name
	}
	return "unknown"
}

// RelationshipTypes returns every known relationship type
func RelationshipTypes() []RelationshipType {
	return []RelationshipType{
		RelationshipReferences,
		RelationshipRelated,
		RelationshipPrerequisite,
		RelationshipFollows,
		RelationshipContains,
	}
}

// ParseRelationshipType maps a case-insensitive name to a RelationshipType
func ParseRelationshipType(s string) RelationshipType {
	s = strings.TrimSpace(s)
	for r, name := range relationshipNames {
		if strings.EqualFold(name, s) {
			return r
		}
	}
	return RelationshipUnknown
}

// Node is a knowledge-base article placed on the map
type Node struct {
	ID           string
	Title        string
	Summary      string
	Category     Category
	Importance   float64 // 0-100
	Author       string
	LastModified time.Time // zero when the article has never been modified
	Views        int
	Connections  int
	Tags         []string

	// Position is the author-supplied coordinate. It is kept raw because
	// seed data may carry the wrong number of components.
	Position []float64
}

// Connection is a directed, typed relationship between two nodes
type Connection struct {
	From     string
	To       string
	Type     RelationshipType
	Strength float64 // 0-1
}

// Key identifies a connection for de-duplication and curve seeding
func (c Connection) Key() string {
	return c.From + "->" + c.To + ":" + c.Type.String()
}

// Viewport is the camera footprint on the ground plane, centered on (X, Z)
type Viewport struct {
	X      float64
	Z      float64
	Width  float64
	Height float64
}

// DefaultViewport is the footprint the map starts with and resets to
var DefaultViewport = Viewport{X: 0, Z: 0, Width: 20, Height: 20}

// Sanitized returns the viewport with every non-finite value replaced by 0
func (v Viewport) Sanitized() Viewport {
	return Viewport{
		X:      finiteOr0(v.X),
		Z:      finiteOr0(v.Z),
		Width:  finiteOr0(v.Width),
		Height: finiteOr0(v.Height),
	}
}
