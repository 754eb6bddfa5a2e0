package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"knowmap/internal/application"
	"knowmap/internal/bootstrap"
	"knowmap/internal/domain"
	"knowmap/internal/ports"
)

var (
	configPath string
	dbPath     string
	seedPath   string
	logLevel   string
	env        *bootstrap.Env
)

var rootCmd = &cobra.Command{
	Use:   "knowmap-cli",
	Short: "CLI for the knowledge base map",
	Long: `knowmap-cli is a command-line interface for the knowledge base map.

It lists, adds, connects and deletes articles, computes layouts and
connection curves for each view mode, and imports or exports the graph
as a YAML seed file or a PNG minimap.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		// a failed command skips the post-run hook
		if env != nil {
			_ = env.Close()
		}
		var err error
		env, err = bootstrap.Open(cmd.Context(), bootstrap.Options{
			ConfigPath: configPath,
			DBPath:     dbPath,
			SeedPath:   seedPath,
			LogLevel:   logLevel,
		})
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if env == nil {
			return nil
		}
		err := env.Close()
		env = nil
		return err
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $KNOWMAP_CONFIG or ~/.config/knowmap/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the graph database")
	rootCmd.PersistentFlags().StringVar(&seedPath, "seed-file", "", "YAML seed file used when the database is empty")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level")
}

// GetRepo returns the initialized repository
func GetRepo() ports.GraphRepository {
	return env.Store
}

// newScene creates a scene in the mode named by the --mode flag
func newScene(cmd *cobra.Command) (*application.Scene, error) {
	scene := env.NewScene()
	name, _ := cmd.Flags().GetString("mode")
	mode, err := domain.ParseViewMode(name)
	if err != nil {
		return nil, err
	}
	scene.SetMode(mode)
	return scene, nil
}
