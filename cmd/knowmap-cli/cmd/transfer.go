package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"knowmap/internal/adapters/pngexport"
	"knowmap/internal/adapters/seedfile"
	"knowmap/internal/application/commands"
	"knowmap/internal/domain"
)

var importCmd = &cobra.Command{
	Use:   "import <seed.yaml>",
	Short: "Import nodes and connections from a YAML seed file",
	Long: `Import nodes and connections from a YAML seed file in one transaction.

Examples:
  knowmap-cli import graph.yaml
  knowmap-cli import graph.yaml --replace`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nodes, conns, err := seedfile.Load(args[0])
		if err != nil {
			return err
		}

		importCmd := commands.NewImportCommand(GetRepo(), nodes, conns)
		importCmd.Replace, _ = cmd.Flags().GetBool("replace")
		result, err := importCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the graph",
}

var exportSeedCmd = &cobra.Command{
	Use:   "seed <path>",
	Short: "Write the graph to a YAML seed file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		visible, err := commands.NewListNodesCommand(GetRepo(), domain.Filter{}).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if err := seedfile.Save(args[0], visible.Nodes, visible.Connections); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d nodes and %d connections to %s\n",
			len(visible.Nodes), len(visible.Connections), args[0])
		return nil
	},
}

var exportMinimapCmd = &cobra.Command{
	Use:   "minimap <path.png>",
	Short: "Render the minimap to a PNG image",
	Long: `Render the minimap for a view mode to a PNG image.

Examples:
  knowmap-cli export minimap map.png
  knowmap-cli export minimap map.png --mode hierarchy --width 400 --height 300`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scene, err := newScene(cmd)
		if err != nil {
			return err
		}
		filter, err := filterFromFlags(cmd)
		if err != nil {
			return err
		}

		width, _ := cmd.Flags().GetInt("width")
		height, _ := cmd.Flags().GetInt("height")
		if width <= 0 {
			width = env.Config.Minimap.Width
		}
		if height <= 0 {
			height = env.Config.Minimap.Height
		}

		canvas := pngexport.NewCanvas(width, height)
		exportCmd := commands.NewExportMinimapCommand(GetRepo(), scene, canvas)
		exportCmd.Filter = filter
		list, err := exportCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}
		if err := canvas.WriteFile(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %dx%d minimap with %d nodes to %s\n",
			width, height, len(list.Circles), args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportSeedCmd)
	exportCmd.AddCommand(exportMinimapCmd)

	importCmd.Flags().Bool("replace", false, "clear the graph before importing")

	exportMinimapCmd.Flags().StringP("mode", "m", "default", "view mode: default, cluster, hierarchy, timeline")
	exportMinimapCmd.Flags().Int("width", 0, "image width (default from config)")
	exportMinimapCmd.Flags().Int("height", 0, "image height (default from config)")
	addFilterFlags(exportMinimapCmd)
}
