package views

import (
	"fmt"
	"strings"

	"knowmap/internal/adapters/tui/styles"
	"knowmap/internal/domain"
)

// RenderTooltip renders the hover card for a node
func RenderTooltip(n *domain.Node) string {
	if n == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.Swatch(domain.CategoryColor(n.Category)) + " ")
	b.WriteString(styles.NodeLabel.Render(Truncate(n.Title, 38)))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(fmt.Sprintf("%s · importance %.0f", n.Category, n.Importance)))
	b.WriteString("\n")

	if n.Summary != "" {
		b.WriteString("\n")
		b.WriteString(n.Summary)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if n.Author != "" {
		b.WriteString(styles.MutedText.Render("by " + n.Author))
		b.WriteString("\n")
	}
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("%d views · %d links", n.Views, n.Connections)))
	if !n.LastModified.IsZero() {
		b.WriteString(styles.MutedText.Render(" · " + n.LastModified.Format("2006-01-02")))
	}
	if len(n.Tags) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("#" + strings.Join(n.Tags, " #")))
	}

	return styles.Tooltip.Render(b.String())
}
