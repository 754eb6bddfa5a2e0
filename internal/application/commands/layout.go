package commands

import (
	"context"

	"knowmap/internal/application"
	"knowmap/internal/domain"
	"knowmap/internal/ports"
)

// ComposeSceneCommand loads the graph, filters it and composes a frame
// in the scene's current view mode
type ComposeSceneCommand struct {
	repo   ports.GraphRepository
	scene  *application.Scene
	Filter domain.Filter
}

// NewComposeSceneCommand creates a new ComposeSceneCommand
func NewComposeSceneCommand(repo ports.GraphRepository, scene *application.Scene, filter domain.Filter) *ComposeSceneCommand {
	return &ComposeSceneCommand{
		repo:   repo,
		scene:  scene,
		Filter: filter,
	}
}

// Execute runs the compose command
func (c *ComposeSceneCommand) Execute(ctx context.Context) (application.Frame, error) {
	visible, err := NewListNodesCommand(c.repo, c.Filter).Execute(ctx)
	if err != nil {
		return application.Frame{}, err
	}
	return c.scene.Compose(visible), nil
}

// CurveCommand builds the polyline for one stored connection
type CurveCommand struct {
	repo  ports.GraphRepository
	scene *application.Scene
	From  string
	To    string
}

// NewCurveCommand creates a new CurveCommand
func NewCurveCommand(repo ports.GraphRepository, scene *application.Scene, from, to string) *CurveCommand {
	return &CurveCommand{repo: repo, scene: scene, From: from, To: to}
}

// Execute returns the rendered edge between From and To in the current
// mode. Missing endpoints yield ErrDanglingEdge.
func (c *CurveCommand) Execute(ctx context.Context) (*application.RenderedEdge, error) {
	if err := application.ValidateRequired("fromID", c.From); err != nil {
		return nil, err
	}
	if err := application.ValidateRequired("toID", c.To); err != nil {
		return nil, err
	}

	frame, err := NewComposeSceneCommand(c.repo, c.scene, domain.Filter{}).Execute(ctx)
	if err != nil {
		return nil, err
	}
	for i := range frame.Edges {
		e := &frame.Edges[i]
		if e.Connection.From == c.From && e.Connection.To == c.To {
			return e, nil
		}
	}
	return nil, &application.ConnectionError{From: c.From, To: c.To, Reason: "no renderable connection"}
}
