package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"knowmap/internal/application/commands"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print node positions for a view mode",
	Long: `Print the position of every visible node in a view mode.

Examples:
  knowmap-cli layout
  knowmap-cli layout --mode cluster
  knowmap-cli layout --mode timeline --category Training`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scene, err := newScene(cmd)
		if err != nil {
			return err
		}
		filter, err := filterFromFlags(cmd)
		if err != nil {
			return err
		}

		frame, err := commands.NewComposeSceneCommand(GetRepo(), scene, filter).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, n := range frame.Nodes {
			fmt.Fprintf(out, "%-10s %s  size %.2f\n", n.Node.ID, n.Position, n.Size)
		}
		return nil
	},
}

var curveCmd = &cobra.Command{
	Use:   "curve <from-id> <to-id>",
	Short: "Print the curve drawn for a connection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		scene, err := newScene(cmd)
		if err != nil {
			return err
		}

		edge, err := commands.NewCurveCommand(GetRepo(), scene, args[0], args[1]).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  color %s  width %.0f  opacity %.2f\n",
			edge.Connection.Key(), edge.Color, edge.Width, edge.Opacity)
		for _, p := range edge.Points {
			fmt.Fprintln(out, p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(curveCmd)

	layoutCmd.Flags().StringP("mode", "m", "default", "view mode: default, cluster, hierarchy, timeline")
	addFilterFlags(layoutCmd)
	curveCmd.Flags().StringP("mode", "m", "default", "view mode: default, cluster, hierarchy, timeline")
}
