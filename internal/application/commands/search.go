package commands

import (
	"context"
	"slices"
	"strings"

	"knowmap/internal/domain"
	"knowmap/internal/ports"
)

// SearchResult is a node with a relevance score
type SearchResult struct {
	Node  domain.Node
	Field string
	Score int
}

// SearchCommand ranks nodes against a query
type SearchCommand struct {
	repo  ports.GraphRepository
	Query string
	Limit int
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(repo ports.GraphRepository, query string) *SearchCommand {
	return &SearchCommand{
		repo:  repo,
		Query: query,
	}
}

// Execute runs the search command and returns scored, sorted results.
// Queries shorter than two characters return nothing.
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	query := strings.TrimSpace(c.Query)
	if len(query) < 2 {
		return nil, nil
	}

	nodes, err := c.repo.ListNodes(ctx)
	if err != nil {
		return nil, err
	}

	results := FuzzySort(nodes, query)
	if c.Limit > 0 && len(results) > c.Limit {
		results = results[:c.Limit]
	}
	return results, nil
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	if strings.Contains(target, query) {
		score := 100
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// chars in order, rewarding runs and word starts
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] != query[queryIdx] {
			continue
		}
		switch {
		case i == 0:
			score += 15
		case isSeparator(target[i-1]):
			score += 10
		}
		if prevMatchIdx == i-1 {
			score += 10
		}
		score++
		prevMatchIdx = i
		queryIdx++
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

func isSeparator(b byte) bool {
	return b == ' ' || b == '-' || b == '_' || b == '/'
}

// FuzzySort scores nodes by title, id, tags and summary and returns the
// matches best first. Ties keep repository order.
func FuzzySort(nodes []domain.Node, query string) []SearchResult {
	scored := make([]SearchResult, 0, len(nodes))

	for _, n := range nodes {
		best := SearchResult{Node: n}
		consider := func(field, text string, weight int) {
			if s := FuzzyScore(text, query) * weight / 4; s > best.Score {
				best.Score = s
				best.Field = field
			}
		}

		consider("title", n.Title, 4)
		consider("id", n.ID, 4)
		for _, tag := range n.Tags {
			consider("tag", tag, 3)
		}
		consider("summary", n.Summary, 2)

		if best.Score > 0 {
			scored = append(scored, best)
		}
	}

	slices.SortStableFunc(scored, func(a, b SearchResult) int {
		return b.Score - a.Score
	})
	return scored
}
