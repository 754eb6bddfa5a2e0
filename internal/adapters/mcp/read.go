package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"knowmap/internal/application"
	"knowmap/internal/application/commands"
	"knowmap/internal/domain"
	"knowmap/internal/ports"
)

// SceneFactory returns a fresh scene for one request. Scenes hold
// interaction state and are not shared between calls.
type SceneFactory func() *application.Scene

// RegisterReadTools adds all read-only graph tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, repo ports.GraphRepository, scenes SceneFactory) {
	s.AddTool(listTool(), listHandler(repo))
	s.AddTool(getTool(), getHandler(repo))
	s.AddTool(searchTool(), searchHandler(repo))
	s.AddTool(layoutTool(), layoutHandler(repo, scenes))
	s.AddTool(curveTool(), curveHandler(repo, scenes))
	s.AddTool(minimapTool(), minimapHandler(repo, scenes))
	s.AddTool(minimapClickTool(), minimapClickHandler(repo, scenes))
}

// --- list_nodes ---

func listTool() mcp.Tool {
	return mcp.NewTool("list_nodes",
		mcp.WithDescription("List knowledge nodes and their connections, optionally filtered."),
		mcp.WithString("categories",
			mcp.Description("Comma-separated categories to keep (Technical, Business, Process, Policy, Training, General). Omit for all."),
		),
		mcp.WithString("relationships",
			mcp.Description("Comma-separated relationship types to keep (references, related, prerequisite, follows, contains)."),
		),
		mcp.WithString("query",
			mcp.Description("Keep only nodes whose title, summary or tags contain this text"),
		),
	)
}

func listHandler(repo ports.GraphRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter, err := filterFromRequest(req)
		if err != nil {
			return toolError(err)
		}

		visible, err := commands.NewListNodesCommand(repo, filter).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(visible.Nodes) == 0 {
			return mcp.NewToolResultText("No results."), nil
		}

		var sb strings.Builder
		for _, n := range visible.Nodes {
			fmt.Fprintf(&sb, "%s  %s  [%s] importance=%g\n", n.ID, n.Title, n.Category, n.Importance)
		}
		for _, c := range visible.Connections {
			fmt.Fprintf(&sb, "%s -> %s  %s %.1f\n", c.From, c.To, c.Type, c.Strength)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- get_node ---

func getTool() mcp.Tool {
	return mcp.NewTool("get_node",
		mcp.WithDescription("Show every field of one node."),
		mcp.WithString("id",
			mcp.Description("Node ID (e.g. node-1)"),
			mcp.Required(),
		),
	)
}

func getHandler(repo ports.GraphRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		n, err := commands.NewGetNodeCommand(repo, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s  %s\n", n.ID, n.Title)
		fmt.Fprintf(&sb, "category: %s\n", n.Category)
		fmt.Fprintf(&sb, "importance: %g\n", n.Importance)
		if n.Author != "" {
			fmt.Fprintf(&sb, "author: %s\n", n.Author)
		}
		if !n.LastModified.IsZero() {
			fmt.Fprintf(&sb, "last modified: %s\n", n.LastModified.Format("2006-01-02"))
		}
		fmt.Fprintf(&sb, "views: %d  connections: %d\n", n.Views, n.Connections)
		if len(n.Tags) > 0 {
			fmt.Fprintf(&sb, "tags: %s\n", strings.Join(n.Tags, ", "))
		}
		if n.Summary != "" {
			fmt.Fprintf(&sb, "\n%s\n", n.Summary)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Fuzzy search nodes by title, ID, tags and summary. Returns best matches first."),
		mcp.WithString("query",
			mcp.Description("Search query"),
			mcp.Required(),
		),
	)
}

func searchHandler(repo ports.GraphRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		results, err := commands.NewSearchCommand(repo, query).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			fmt.Fprintf(&sb, "%s  %s  (%s, %d)\n", r.Node.ID, r.Node.Title, r.Field, r.Score)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- layout ---

func layoutTool() mcp.Tool {
	return mcp.NewTool("layout",
		mcp.WithDescription("Resolve 3D positions for the visible nodes under a view mode."),
		mcp.WithString("mode",
			mcp.Description("View mode: default, cluster, hierarchy or timeline"),
		),
		mcp.WithString("categories",
			mcp.Description("Comma-separated categories to keep"),
		),
		mcp.WithString("query",
			mcp.Description("Text filter"),
		),
	)
}

func layoutHandler(repo ports.GraphRepository, scenes SceneFactory) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		frame, err := composeFromRequest(ctx, req, repo, scenes)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "mode: %s\n", frame.Mode)
		for _, n := range frame.Nodes {
			fmt.Fprintf(&sb, "%s  %s  size=%.2f\n", n.Node.ID, n.Position, n.Size)
		}
		fmt.Fprintf(&sb, "%d connections rendered\n", len(frame.Edges))
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- curve ---

func curveTool() mcp.Tool {
	return mcp.NewTool("curve",
		mcp.WithDescription("Sample the curved polyline drawn for a stored connection."),
		mcp.WithString("from",
			mcp.Description("Source node ID"),
			mcp.Required(),
		),
		mcp.WithString("to",
			mcp.Description("Target node ID"),
			mcp.Required(),
		),
		mcp.WithString("mode",
			mcp.Description("View mode the endpoints are resolved under"),
		),
	)
}

func curveHandler(repo ports.GraphRepository, scenes SceneFactory) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		scene, err := sceneFromRequest(req, scenes)
		if err != nil {
			return toolError(err)
		}

		edge, err := commands.NewCurveCommand(repo, scene, req.GetString("from", ""), req.GetString("to", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s  color=%s width=%g opacity=%g\n", edge.Connection.Key(), edge.Color, edge.Width, edge.Opacity)
		for _, p := range edge.Points {
			sb.WriteString(p.String())
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- minimap ---

func minimapTool() mcp.Tool {
	return mcp.NewTool("minimap",
		mcp.WithDescription("Project the visible nodes onto a 2D overview and list the draw operations."),
		mcp.WithString("mode",
			mcp.Description("View mode"),
		),
		mcp.WithNumber("width",
			mcp.Description("Minimap width in pixels (default 200)"),
		),
		mcp.WithNumber("height",
			mcp.Description("Minimap height in pixels (default 150)"),
		),
	)
}

func minimapHandler(repo ports.GraphRepository, scenes SceneFactory) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		frame, err := composeFromRequest(ctx, req, repo, scenes)
		if err != nil {
			return toolError(err)
		}

		width, height := minimapSize(req)
		list := domain.Project(frame.MapPoints(), &frame.Viewport, width, height)
		if list.Empty() {
			return toolError(application.ErrEmptyMinimap)
		}

		var sb strings.Builder
		for _, c := range list.Circles {
			fmt.Fprintf(&sb, "circle %s  x=%.1f y=%.1f r=%.1f %s\n", c.ID, c.X, c.Y, c.Radius, c.Color)
		}
		if r := list.Viewport; r != nil {
			fmt.Fprintf(&sb, "viewport  x=%.1f y=%.1f w=%.1f h=%.1f %s\n", r.X, r.Y, r.Width, r.Height, r.Color)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- minimap_click ---

func minimapClickTool() mcp.Tool {
	return mcp.NewTool("minimap_click",
		mcp.WithDescription("Convert a pixel on the minimap back to world X/Z coordinates."),
		mcp.WithNumber("x",
			mcp.Description("Pixel X"),
			mcp.Required(),
		),
		mcp.WithNumber("y",
			mcp.Description("Pixel Y"),
			mcp.Required(),
		),
		mcp.WithString("mode",
			mcp.Description("View mode"),
		),
		mcp.WithNumber("width",
			mcp.Description("Minimap width in pixels (default 200)"),
		),
		mcp.WithNumber("height",
			mcp.Description("Minimap height in pixels (default 150)"),
		),
	)
}

func minimapClickHandler(repo ports.GraphRepository, scenes SceneFactory) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		frame, err := composeFromRequest(ctx, req, repo, scenes)
		if err != nil {
			return toolError(err)
		}

		width, height := minimapSize(req)
		x, z, ok := domain.Unproject(req.GetFloat("x", 0), req.GetFloat("y", 0), frame.MapPoints(), width, height)
		if !ok {
			return toolError(application.ErrEmptyMinimap)
		}
		return mcp.NewToolResultText(fmt.Sprintf("x=%.3f z=%.3f", x, z)), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func sceneFromRequest(req mcp.CallToolRequest, scenes SceneFactory) (*application.Scene, error) {
	mode, err := application.ParseViewMode(req.GetString("mode", ""))
	if err != nil {
		return nil, err
	}
	scene := scenes()
	scene.SetMode(mode)
	return scene, nil
}

func composeFromRequest(ctx context.Context, req mcp.CallToolRequest, repo ports.GraphRepository, scenes SceneFactory) (application.Frame, error) {
	scene, err := sceneFromRequest(req, scenes)
	if err != nil {
		return application.Frame{}, err
	}
	filter, err := filterFromRequest(req)
	if err != nil {
		return application.Frame{}, err
	}
	return commands.NewComposeSceneCommand(repo, scene, filter).Execute(ctx)
}

func filterFromRequest(req mcp.CallToolRequest) (domain.Filter, error) {
	f := domain.Filter{Query: req.GetString("query", "")}
	for _, name := range splitList(req.GetString("categories", "")) {
		c := domain.ParseCategory(name)
		if c == domain.CategoryUnknown {
			return f, fmt.Errorf("unknown category: %s", name)
		}
		f.Categories = append(f.Categories, c)
	}
	for _, name := range splitList(req.GetString("relationships", "")) {
		r := domain.ParseRelationshipType(name)
		if r == domain.RelationshipUnknown {
			return f, fmt.Errorf("unknown relationship type: %s", name)
		}
		f.Relationships = append(f.Relationships, r)
	}
	return f, nil
}

func minimapSize(req mcp.CallToolRequest) (float64, float64) {
	return req.GetFloat("width", 200), req.GetFloat("height", 150)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
