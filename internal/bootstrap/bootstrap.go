// Package bootstrap wires configuration, logging and storage for the
// knowmap binaries.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"knowmap/internal/adapters/browser"
	"knowmap/internal/adapters/seedfile"
	"knowmap/internal/adapters/sqlite"
	"knowmap/internal/application"
	"knowmap/internal/application/commands"
	"knowmap/internal/config"
	"knowmap/internal/domain"
	"knowmap/internal/logging"
	"knowmap/internal/ports"
)

// Options overrides parts of the loaded configuration
type Options struct {
	ConfigPath string
	DBPath     string
	SeedPath   string
	LogLevel   string
	// LogFile sends logs to a file; the TUI needs this
	LogFile string
}

// Env is the wired application environment
type Env struct {
	Config    *config.Config
	Logger    *zap.Logger
	Store     *sqlite.Store
	Navigator *browser.Navigator
}

// Open loads configuration, builds the logger and opens the graph store,
// seeding it when empty
func Open(ctx context.Context, opts Options) (*Env, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if opts.DBPath != "" {
		cfg.DBPath = opts.DBPath
	}
	if opts.SeedPath != "" {
		cfg.SeedPath = opts.SeedPath
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.LogFile != "" {
		cfg.Logging.File = opts.LogFile
	}

	logger := logging.Must(logging.Options{
		Level: cfg.Logging.Level,
		File:  config.ExpandHome(cfg.Logging.File),
	})

	store, err := sqlite.Open(config.ExpandHome(cfg.DBPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open graph store: %w", err)
	}

	seeded, err := EnsureSeeded(ctx, store, config.ExpandHome(cfg.SeedPath))
	if err != nil {
		store.Close()
		return nil, err
	}
	if seeded {
		logger.Info("seeded empty graph store", zap.String("db", store.Path()))
	}

	return &Env{
		Config:    cfg,
		Logger:    logger,
		Store:     store,
		Navigator: browser.NewNavigator(cfg.ArticleBaseURL, nil),
	}, nil
}

// Close releases the store and flushes the logger
func (e *Env) Close() error {
	_ = e.Logger.Sync()
	return e.Store.Close()
}

// SceneOptions returns scene settings from the configuration
func (e *Env) SceneOptions() application.SceneOptions {
	return application.SceneOptions{
		Seed:          e.Config.Seed,
		CurveSegments: e.Config.CurveSegments,
		Navigator:     e.Navigator,
		Logger:        e.Logger,
	}
}

// NewScene creates a scene from the configuration
func (e *Env) NewScene() *application.Scene {
	return application.NewScene(e.SceneOptions())
}

// EnsureSeeded fills an empty repository from the seed file, or from the
// built-in sample graph when no seed file exists. It reports whether
// anything was written.
func EnsureSeeded(ctx context.Context, repo ports.GraphRepository, seedPath string) (bool, error) {
	existing, err := repo.ListNodes(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to list nodes: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	nodes, conns := domain.SeedNodes(), domain.SeedConnections()
	if seedPath != "" {
		fileNodes, fileConns, err := seedfile.Load(seedPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return false, err
		default:
			nodes, conns = fileNodes, fileConns
		}
	}
	if len(nodes) == 0 {
		return false, nil
	}

	if _, err := commands.NewImportCommand(repo, nodes, conns).Execute(ctx); err != nil {
		return false, fmt.Errorf("failed to seed graph: %w", err)
	}
	return true, nil
}
