package domain

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// ViewMode selects the layout strategy used to place nodes
type ViewMode int

const (
	ModeDefault ViewMode = iota
	ModeCluster
	ModeHierarchy
	ModeTimeline
)

var viewModeNames = [...]string{
	ModeDefault:   "default",
	ModeCluster:   "cluster",
	ModeHierarchy: "hierarchy",
	ModeTimeline:  "timeline",
}

func (m ViewMode) String() string {
	if m.Valid() {
		return viewModeNames[m]
	}
	return fmt.Sprintf("ViewMode(%d)", int(m))
}

// Valid reports whether m is one of the four layout modes
func (m ViewMode) Valid() bool {
	return m >= ModeDefault && int(m) < len(viewModeNames)
}

// ViewModes returns all layout modes in cycling order
func ViewModes() []ViewMode {
	return []ViewMode{ModeDefault, ModeCluster, ModeHierarchy, ModeTimeline}
}

// Next returns the mode after m, wrapping around
func (m ViewMode) Next() ViewMode {
	return ViewMode((int(m) + 1) % len(viewModeNames))
}

// ParseViewMode maps a mode name to a ViewMode. "3d" is accepted as an
// alias for the default layout.
func ParseViewMode(s string) (ViewMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "3d" {
		return ModeDefault, nil
	}
	for i, name := range viewModeNames {
		if name == s {
			return ViewMode(i), nil
		}
	}
	return ModeDefault, fmt.Errorf("unknown view mode: %q", s)
}

// Layout constants
const (
	clusterJitterXZ = 8 // full width, ±4
	clusterJitterY  = 4 // full width, ±2

	goldenRatioConj     = 0.618
	hierarchyRadius     = 5
	hierarchyRadiusStep = 3
	hierarchyLevelY     = 4
	hierarchyOffsetY    = 6
	hierarchyBucket     = 25
	maxImportance       = 100

	timelineSpan    = 30 // X range, ±15
	timelineJitterY = 4
	timelineJitterZ = 10
	yearDuration    = 365 * 24 * time.Hour
)

// clusterAnchors are the base coordinates for each category cluster
var clusterAnchors = map[Category]Vec3{
	CategoryTechnical: {X: -10, Y: 0, Z: -10},
	CategoryBusiness:  {X: 10, Y: 0, Z: -10},
	CategoryProcess:   {X: -10, Y: 0, Z: 10},
	CategoryPolicy:    {X: 10, Y: 0, Z: 10},
	CategoryTraining:  {X: 0, Y: 0, Z: -15},
	CategoryGeneral:   {X: 0, Y: 0, Z: 15},
}

// ClusterAnchor returns the cluster base for a category, or the origin
func ClusterAnchor(c Category) Vec3 {
	if a, ok := clusterAnchors[c]; ok {
		return a
	}
	return Origin
}

// Resolver places nodes in world space. Jitter is drawn from a PRNG
// seeded by Seed and the node id, so the same node always lands in the
// same place for a given seed. A Resolver is safe for concurrent use.
type Resolver struct {
	Seed uint64
	Now  func() time.Time
}

// NewResolver creates a resolver with the given jitter seed and clock.
// A nil clock falls back to time.Now.
func NewResolver(seed uint64, now func() time.Time) *Resolver {
	if now == nil {
		now = time.Now
	}
	return &Resolver{Seed: seed, Now: now}
}

// Resolve returns the finite position of node under mode
func (r *Resolver) Resolve(node *Node, mode ViewMode) Vec3 {
	if node == nil || strings.TrimSpace(node.ID) == "" {
		return Origin
	}

	var pos Vec3
	switch mode {
	case ModeCluster:
		pos = r.cluster(node)
	case ModeHierarchy:
		pos = r.hierarchy(node)
	case ModeTimeline:
		pos = r.timeline(node)
	default:
		pos = Sanitize(node.Position)
	}
	return pos.Sanitized()
}

func (r *Resolver) cluster(node *Node) Vec3 {
	rng := r.source(node.ID, ModeCluster)
	jitter := Vec3{
		X: (rng.Float64() - 0.5) * clusterJitterXZ,
		Y: (rng.Float64() - 0.5) * clusterJitterY,
		Z: (rng.Float64() - 0.5) * clusterJitterXZ,
	}
	return ClusterAnchor(node.Category).Add(jitter.Sanitized())
}

func (r *Resolver) hierarchy(node *Node) Vec3 {
	level := HierarchyLevel(node.Importance)
	angle := float64(IDNumber(node.ID)) * goldenRatioConj * 2 * math.Pi
	radius := HierarchyRadius(level)

	return Vec3{
		X: math.Cos(angle) * radius,
		Y: float64(level*hierarchyLevelY - hierarchyOffsetY),
		Z: math.Sin(angle) * radius,
	}
}

func (r *Resolver) timeline(node *Node) Vec3 {
	if node.LastModified.IsZero() {
		return Origin
	}

	offset := node.LastModified.Sub(r.now())
	normalized := (float64(offset) + float64(yearDuration)) / float64(yearDuration)
	if !isFinite(normalized) {
		return Origin
	}

	rng := r.source(node.ID, ModeTimeline)
	return Vec3{
		X: normalized*timelineSpan - timelineSpan/2,
		Y: (rng.Float64() - 0.5) * timelineJitterY,
		Z: (rng.Float64() - 0.5) * timelineJitterZ,
	}
}

func (r *Resolver) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// source returns a generator private to one (node, mode) draw sequence
func (r *Resolver) source(id string, mode ViewMode) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(id))
	h.Write([]byte{byte(mode)})
	return rand.New(rand.NewPCG(r.Seed, h.Sum64()))
}

// HierarchyLevel buckets importance into levels 0 through 4.
// Importance outside [0, 100] is clamped; NaN counts as 0.
func HierarchyLevel(importance float64) int {
	if !isFinite(importance) || importance < 0 {
		importance = 0
	}
	if importance > maxImportance {
		importance = maxImportance
	}
	return int(importance) / hierarchyBucket
}

// HierarchyRadius is the ring radius for a hierarchy level
func HierarchyRadius(level int) float64 {
	return float64(hierarchyRadius + level*hierarchyRadiusStep)
}

// IDNumber extracts the digits of an id as a number. Ids with no digits,
// an all-zero number, or more digits than fit in 64 bits yield 1.
func IDNumber(id string) uint64 {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			return r
		}
		return -1
	}, id)

	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil || n == 0 {
		return 1
	}
	return n
}
