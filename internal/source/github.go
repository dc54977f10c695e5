// internal/source/github.go
package source

import (
	"context"
	"fmt"

	"vibe-apps-aggregator/internal/github"
	"vibe-apps-aggregator/internal/platform"
)

// MarkerQuery pairs a code-search query with the file type it detects.
type MarkerQuery struct {
	Query    string
	FileType string
}

// DefaultMarkerQueries covers the agent-instruction files tracked by the
// store.
func DefaultMarkerQueries() []MarkerQuery {
	return []MarkerQuery{
		{Query: "filename:CLAUDE.md path:/", FileType: "claude_md"},
		{Query: "filename:AGENTS.md path:/", FileType: "agents_md"},
		{Query: "filename:GEMINI.md path:/", FileType: "gemini_md"},
	}
}

// GitHubSearch fetches code-search results for marker files.
type GitHubSearch struct {
	client   *github.Client
	queries  []MarkerQuery
	maxPages int
}

func NewGitHubSearch(client *github.Client, queries []MarkerQuery, maxPages int) *GitHubSearch {
	if maxPages <= 0 {
		maxPages = 10
	}
	return &GitHubSearch{client: client, queries: queries, maxPages: maxPages}
}

func (s *GitHubSearch) Platform() string { return platform.GitHub }

func (s *GitHubSearch) Fetch(ctx context.Context) ([]map[string]any, error) {
	var raws []map[string]any
	for _, mq := range s.queries {
		rows, err := s.client.SearchMarkerFiles(ctx, mq.Query, mq.FileType, s.maxPages)
		if err != nil {
			return nil, fmt.Errorf("search %q: %w", mq.Query, err)
		}
		raws = append(raws, rows...)
	}
	return raws, nil
}
