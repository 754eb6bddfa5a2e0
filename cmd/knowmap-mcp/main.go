package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "knowmap/internal/adapters/mcp"
	"knowmap/internal/application"
	"knowmap/internal/bootstrap"
)

func main() {
	dbFlag := flag.String("db", "", "path to the graph database")
	seedFlag := flag.String("seed-file", "", "YAML seed file used when the database is empty")
	flag.Parse()

	ctx := context.Background()
	env, err := bootstrap.Open(ctx, bootstrap.Options{
		DBPath:   *dbFlag,
		SeedPath: *seedFlag,
		LogFile:  "~/.local/state/knowmap/knowmap-mcp.log",
	})
	if err != nil {
		log.Fatalf("knowmap-mcp: %v", err)
	}
	defer env.Close()

	mcpServer := server.NewMCPServer(
		"knowmap-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	// scenes are per request, so navigation from tool calls is disabled
	sceneOpts := env.SceneOptions()
	sceneOpts.Navigator = nil
	scenes := func() *application.Scene { return application.NewScene(sceneOpts) }

	mcpadapter.RegisterReadTools(mcpServer, env.Store, scenes)
	mcpadapter.RegisterWriteTools(mcpServer, env.Store)

	env.Logger.Info("serving MCP over stdio")
	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("knowmap-mcp: %v", err)
	}
}
