package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"knowmap/internal/adapters/editor"
	"knowmap/internal/adapters/seedfile"
	"knowmap/internal/adapters/tui"
	"knowmap/internal/adapters/tui/views"
	"knowmap/internal/bootstrap"
	"knowmap/internal/config"
	"knowmap/internal/domain"
)

const defaultLogFile = "~/.local/state/knowmap/knowmap.log"

func main() {
	dbFlag := flag.String("db", "", "path to the graph database")
	seedFlag := flag.String("seed-file", "", "YAML seed file to watch and edit")
	logFlag := flag.String("log", defaultLogFile, "log file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	env, err := bootstrap.Open(ctx, bootstrap.Options{
		DBPath:   *dbFlag,
		SeedPath: *seedFlag,
		LogFile:  config.ExpandHome(*logFlag),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer env.Close()

	seedPath := config.ExpandHome(env.Config.SeedPath)
	app := tui.NewApp(tui.Options{
		Repo:     env.Store,
		Scene:    env.SceneOptions(),
		Links:    env.Navigator,
		Editor:   editor.NewOpener(),
		SeedPath: seedPath,
		Logger:   env.Logger,
		Context:  ctx,
	})
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	if seedPath != "" {
		go func() {
			err := seedfile.Watch(ctx, seedPath, env.Logger, func(nodes []domain.Node, conns []domain.Connection, err error) {
				p.Send(views.SeedChangedMsg{Nodes: nodes, Connections: conns, Err: err})
			})
			if err != nil {
				env.Logger.Warn("seed file watcher stopped", zap.Error(err))
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		env.Logger.Error("tui exited", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
