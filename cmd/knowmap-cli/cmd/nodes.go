package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"knowmap/internal/application/commands"
	"knowmap/internal/domain"
)

var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "Manage knowledge nodes",
	Long: `List, show, add and delete knowledge nodes.

Examples:
  knowmap-cli nodes list --category Technical
  knowmap-cli nodes get node-1
  knowmap-cli nodes add "Release Checklist" --category Process --importance 70
  knowmap-cli nodes delete node-8`,
}

var nodesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List nodes and their connections",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := filterFromFlags(cmd)
		if err != nil {
			return err
		}

		visible, err := commands.NewListNodesCommand(GetRepo(), filter).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, n := range visible.Nodes {
			fmt.Fprintf(out, "%-10s %-10s %3.0f  %s\n", n.ID, n.Category, n.Importance, n.Title)
		}
		if withLinks, _ := cmd.Flags().GetBool("connections"); withLinks {
			fmt.Fprintln(out)
			for _, c := range visible.Connections {
				fmt.Fprintf(out, "%s -> %s  %s %.1f\n", c.From, c.To, c.Type, c.Strength)
			}
		}
		return nil
	},
}

var nodesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a node",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		node, err := commands.NewGetNodeCommand(GetRepo(), args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  %s\n", node.ID, node.Title)
		fmt.Fprintf(out, "Category:   %s\n", node.Category)
		fmt.Fprintf(out, "Importance: %.0f\n", node.Importance)
		if node.Author != "" {
			fmt.Fprintf(out, "Author:     %s\n", node.Author)
		}
		if !node.LastModified.IsZero() {
			fmt.Fprintf(out, "Modified:   %s\n", node.LastModified.Format(time.RFC3339))
		}
		fmt.Fprintf(out, "Views:      %d\n", node.Views)
		if len(node.Tags) > 0 {
			fmt.Fprintf(out, "Tags:       %s\n", strings.Join(node.Tags, ", "))
		}
		if node.Summary != "" {
			fmt.Fprintf(out, "\n%s\n", node.Summary)
		}
		return nil
	},
}

var nodesAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a node",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		id, _ := flags.GetString("id")
		if id == "" {
			id = uuid.NewString()
		}

		categoryName, _ := flags.GetString("category")
		category := domain.ParseCategory(categoryName)
		if category == domain.CategoryUnknown {
			return fmt.Errorf("unknown category: %s", categoryName)
		}

		importance, _ := flags.GetFloat64("importance")
		summary, _ := flags.GetString("summary")
		author, _ := flags.GetString("author")
		tags, _ := flags.GetStringSlice("tags")
		positionText, _ := flags.GetString("position")
		position, err := parsePosition(positionText)
		if err != nil {
			return err
		}

		node := domain.Node{
			ID:           id,
			Title:        args[0],
			Summary:      summary,
			Category:     category,
			Importance:   importance,
			Author:       author,
			LastModified: time.Now().UTC().Truncate(time.Second),
			Tags:         tags,
			Position:     position,
		}

		result, err := commands.NewAddNodeCommand(GetRepo(), node).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var nodesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a node and its connections",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewDeleteNodeCommand(GetRepo(), args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var connectCmd = &cobra.Command{
	Use:   "connect <from-id> <to-id>",
	Short: "Connect two nodes",
	Long: `Connect two existing nodes with a typed relationship.

Examples:
  knowmap-cli connect node-1 node-2 --type references
  knowmap-cli connect node-3 node-5 --type contains --strength 0.7`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		typeName, _ := cmd.Flags().GetString("type")
		strength, _ := cmd.Flags().GetFloat64("strength")

		conn, err := commands.NewConnectCommand(GetRepo(), domain.Connection{
			From:     args[0],
			To:       args[1],
			Type:     domain.ParseRelationshipType(typeName),
			Strength: strength,
		}).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Connected %s\n", conn.Key())
		return nil
	},
}

// filterFromFlags reads --category, --relationship and --query
func filterFromFlags(cmd *cobra.Command) (domain.Filter, error) {
	var filter domain.Filter
	flags := cmd.Flags()

	categories, _ := flags.GetStringSlice("category")
	for _, name := range categories {
		c := domain.ParseCategory(name)
		if c == domain.CategoryUnknown {
			return filter, fmt.Errorf("unknown category: %s", name)
		}
		filter.Categories = append(filter.Categories, c)
	}

	relationships, _ := flags.GetStringSlice("relationship")
	for _, name := range relationships {
		r := domain.ParseRelationshipType(name)
		if r == domain.RelationshipUnknown {
			return filter, fmt.Errorf("unknown relationship type: %s", name)
		}
		filter.Relationships = append(filter.Relationships, r)
	}

	filter.Query, _ = flags.GetString("query")
	return filter, nil
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("category", nil, "keep only these categories")
	cmd.Flags().StringSlice("relationship", nil, "keep only these relationship types")
	cmd.Flags().StringP("query", "q", "", "keep nodes whose title, summary or tags contain this text")
}

// parsePosition reads "x,y,z". Empty input means no position.
func parsePosition(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("position must be x,y,z: %q", s)
	}
	pos := make([]float64, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid position component %q: %w", p, err)
		}
		pos[i] = v
	}
	return pos, nil
}

func init() {
	rootCmd.AddCommand(nodesCmd)
	nodesCmd.AddCommand(nodesListCmd)
	nodesCmd.AddCommand(nodesGetCmd)
	nodesCmd.AddCommand(nodesAddCmd)
	nodesCmd.AddCommand(nodesDeleteCmd)
	rootCmd.AddCommand(connectCmd)

	addFilterFlags(nodesListCmd)
	nodesListCmd.Flags().Bool("connections", false, "also list connections")

	nodesAddCmd.Flags().String("id", "", "node id (default: random UUID)")
	nodesAddCmd.Flags().String("category", "General", "category")
	nodesAddCmd.Flags().Float64("importance", 50, "importance 0-100")
	nodesAddCmd.Flags().String("summary", "", "summary")
	nodesAddCmd.Flags().String("author", "", "author")
	nodesAddCmd.Flags().StringSlice("tags", nil, "comma-separated tags")
	nodesAddCmd.Flags().String("position", "", "default-view position as x,y,z")

	connectCmd.Flags().String("type", "related", "relationship type")
	connectCmd.Flags().Float64("strength", 0.5, "strength 0-1")
}
