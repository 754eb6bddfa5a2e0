package views

import "knowmap/internal/domain"

// GraphLoadedMsg carries the graph as read from the repository, with an
// optional status line describing what changed it
type GraphLoadedMsg struct {
	Nodes       []domain.Node
	Connections []domain.Connection
	Status      string
}

// ErrMsg reports a failure to the status line
type ErrMsg struct {
	Err error
}

// StatusMsg reports a success to the status line
type StatusMsg struct {
	Text string
}

// FilterChangedMsg carries new category and relationship toggles
type FilterChangedMsg struct {
	Filter domain.Filter
}

// QueryChangedMsg carries the live search text
type QueryChangedMsg struct {
	Query string
}

// FocusNodeMsg moves the map cursor to a node, as chosen from search
type FocusNodeMsg struct {
	ID string
}

// TooltipReadyMsg fires when the hover delay for a node has elapsed
type TooltipReadyMsg struct {
	ID string
}

// CloseOverlayMsg closes the named overlay
type CloseOverlayMsg struct {
	Name string
}

// SeedChangedMsg is sent when the watched seed file was reloaded
type SeedChangedMsg struct {
	Nodes       []domain.Node
	Connections []domain.Connection
	Err         error
}

// RotateTickMsg advances auto-rotation by one step
type RotateTickMsg struct{}
