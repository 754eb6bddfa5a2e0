package commands

import (
	"context"
	"fmt"

	"knowmap/internal/application"
	"knowmap/internal/domain"
	"knowmap/internal/ports"
)

// ExportMinimapCommand draws the minimap for the current scene onto a canvas
type ExportMinimapCommand struct {
	repo   ports.GraphRepository
	scene  *application.Scene
	canvas ports.Canvas
	Filter domain.Filter
}

// NewExportMinimapCommand creates a new ExportMinimapCommand
func NewExportMinimapCommand(repo ports.GraphRepository, scene *application.Scene, canvas ports.Canvas) *ExportMinimapCommand {
	return &ExportMinimapCommand{
		repo:   repo,
		scene:  scene,
		canvas: canvas,
	}
}

// Execute composes the scene and renders it. An empty graph is reported
// as ErrEmptyMinimap so callers do not write a blank image.
func (c *ExportMinimapCommand) Execute(ctx context.Context) (domain.DrawList, error) {
	frame, err := NewComposeSceneCommand(c.repo, c.scene, c.Filter).Execute(ctx)
	if err != nil {
		return domain.DrawList{}, err
	}

	list := application.NewMinimap(c.canvas).Sync(frame)
	if list.Empty() {
		return list, fmt.Errorf("%w (mode %s)", application.ErrEmptyMinimap, frame.Mode)
	}
	return list, nil
}
