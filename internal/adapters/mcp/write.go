package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"knowmap/internal/adapters/seedfile"
	"knowmap/internal/application/commands"
	"knowmap/internal/domain"
	"knowmap/internal/ports"
)

// RegisterWriteTools adds all graph-modifying tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, repo ports.GraphRepository) {
	s.AddTool(addNodeTool(), addNodeHandler(repo, time.Now))
	s.AddTool(connectTool(), connectHandler(repo))
	s.AddTool(deleteNodeTool(), deleteNodeHandler(repo))
	s.AddTool(importTool(), importHandler(repo))
	s.AddTool(exportTool(), exportHandler(repo))
}

// --- add_node ---

func addNodeTool() mcp.Tool {
	return mcp.NewTool("add_node",
		mcp.WithDescription("Add a knowledge node. A random ID is assigned when none is given."),
		mcp.WithString("title",
			mcp.Description("Article title"),
			mcp.Required(),
		),
		mcp.WithString("id",
			mcp.Description("Node ID. Omit to generate one."),
		),
		mcp.WithString("category",
			mcp.Description("Technical, Business, Process, Policy, Training or General (default General)"),
		),
		mcp.WithNumber("importance",
			mcp.Description("Importance from 0 to 100 (default 50)"),
		),
		mcp.WithString("summary",
			mcp.Description("Short summary shown in tooltips"),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tags"),
		),
	)
}

func addNodeHandler(repo ports.GraphRepository, now func() time.Time) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		if id == "" {
			id = uuid.NewString()
		}

		category := domain.CategoryGeneral
		if name := req.GetString("category", ""); name != "" {
			if category = domain.ParseCategory(name); category == domain.CategoryUnknown {
				return toolError(fmt.Errorf("unknown category: %s", name))
			}
		}

		node := domain.Node{
			ID:           id,
			Title:        req.GetString("title", ""),
			Summary:      req.GetString("summary", ""),
			Category:     category,
			Importance:   req.GetFloat("importance", 50),
			LastModified: now().UTC().Truncate(time.Second),
			Tags:         splitList(req.GetString("tags", "")),
		}

		result, err := commands.NewAddNodeCommand(repo, node).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- connect ---

func connectTool() mcp.Tool {
	return mcp.NewTool("connect",
		mcp.WithDescription("Connect two existing nodes."),
		mcp.WithString("from",
			mcp.Description("Source node ID"),
			mcp.Required(),
		),
		mcp.WithString("to",
			mcp.Description("Target node ID"),
			mcp.Required(),
		),
		mcp.WithString("type",
			mcp.Description("references, related, prerequisite, follows or contains"),
			mcp.Required(),
		),
		mcp.WithNumber("strength",
			mcp.Description("Strength from 0 to 1 (default 0.5)"),
		),
	)
}

func connectHandler(repo ports.GraphRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		conn := domain.Connection{
			From:     req.GetString("from", ""),
			To:       req.GetString("to", ""),
			Type:     domain.ParseRelationshipType(req.GetString("type", "")),
			Strength: req.GetFloat("strength", 0.5),
		}

		stored, err := commands.NewConnectCommand(repo, conn).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Connected %s", stored.Key())), nil
	}
}

// --- delete_node ---

func deleteNodeTool() mcp.Tool {
	return mcp.NewTool("delete_node",
		mcp.WithDescription("Delete a node and every connection touching it."),
		mcp.WithString("id",
			mcp.Description("Node ID"),
			mcp.Required(),
		),
	)
}

func deleteNodeHandler(repo ports.GraphRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewDeleteNodeCommand(repo, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- import_seed ---

func importTool() mcp.Tool {
	return mcp.NewTool("import_seed",
		mcp.WithDescription("Import nodes and connections from a YAML seed file."),
		mcp.WithString("path",
			mcp.Description("Path to the YAML file"),
			mcp.Required(),
		),
		mcp.WithBoolean("replace",
			mcp.Description("Clear the existing graph first"),
		),
	)
}

func importHandler(repo ports.GraphRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := strings.TrimSpace(req.GetString("path", ""))
		if path == "" {
			return toolError(fmt.Errorf("path is required"))
		}

		nodes, conns, err := seedfile.Load(path)
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewImportCommand(repo, nodes, conns)
		cmd.Replace = req.GetBool("replace", false)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- export_seed ---

func exportTool() mcp.Tool {
	return mcp.NewTool("export_seed",
		mcp.WithDescription("Write the whole graph to a YAML seed file."),
		mcp.WithString("path",
			mcp.Description("Destination path"),
			mcp.Required(),
		),
	)
}

func exportHandler(repo ports.GraphRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := strings.TrimSpace(req.GetString("path", ""))
		if path == "" {
			return toolError(fmt.Errorf("path is required"))
		}

		visible, err := commands.NewListNodesCommand(repo, domain.Filter{}).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if err := seedfile.Save(path, visible.Nodes, visible.Connections); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Wrote %d nodes and %d connections to %s",
			len(visible.Nodes), len(visible.Connections), path)), nil
	}
}
