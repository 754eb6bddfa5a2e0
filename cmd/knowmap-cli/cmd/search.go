package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"knowmap/internal/application/commands"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search nodes",
	Long: `Rank nodes by how well their title, id, tags or summary match a query.

Examples:
  knowmap-cli search security
  knowmap-cli search "api int" --limit 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		searchCmd := commands.NewSearchCommand(GetRepo(), args[0])
		searchCmd.Limit, _ = cmd.Flags().GetInt("limit")

		results, err := searchCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "No results found")
			return nil
		}
		for _, r := range results {
			fmt.Fprintf(out, "%-10s %4d  %-8s %s\n", r.Node.ID, r.Score, r.Field, r.Node.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntP("limit", "n", 10, "maximum results")
}
