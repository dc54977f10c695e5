// internal/github/client.go
package github

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

const (
	maxRetries = 3
	perPage    = 100
)

// Client is a wrapper around the go-github client used for code search.
type Client struct {
	gh     *github.Client
	logger *slog.Logger
}

// NewClient creates and configures a new Client instance.
// The provided token is used to create an authenticated http.Client.
func NewClient(token string, logger *slog.Logger) *Client {
	ctx := context.Background()
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	return &Client{
		gh:     github.NewClient(tc),
		logger: logger,
	}
}

// SearchMarkerFiles runs a code search (for example "filename:CLAUDE.md") and
// returns the raw result rows as maps shaped like the REST payload, with the
// repository nested under "repository". Pagination is handled transparently;
// maxPages bounds the number of result pages fetched.
func (c *Client) SearchMarkerFiles(ctx context.Context, query, fileType string, maxPages int) ([]map[string]any, error) {
	var raws []map[string]any

	opts := &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	for page := 1; page <= maxPages; page++ {
		opts.Page = page
		c.logger.Debug("Fetching code search page", "query", query, "page", page)

		result, resp, err := c.searchWithRetry(ctx, query, opts)
		if err != nil {
			return nil, err
		}

		for _, code := range result.CodeResults {
			raws = append(raws, codeResultToRaw(code, fileType))
		}

		if resp.NextPage == 0 {
			break
		}
	}

	return raws, nil
}

// searchWithRetry retries transient server errors and waits out secondary
// rate limits before giving up.
func (c *Client) searchWithRetry(ctx context.Context, query string, opts *github.SearchOptions) (*github.CodeSearchResult, *github.Response, error) {
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		result, resp, err := c.gh.Search.Code(ctx, query, opts)
		if err == nil {
			return result, resp, nil
		}
		lastErr = err

		var rateErr *github.RateLimitError
		if errors.As(err, &rateErr) {
			wait := time.Until(rateErr.Rate.Reset.Time)
			c.logger.Warn("GitHub rate limit hit, waiting for reset", "wait", wait.String())
			select {
			case <-time.After(wait):
				continue
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			}
		}

		var ghErr *github.ErrorResponse
		if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode >= 500 {
			c.logger.Warn("GitHub server error, retrying", "status", ghErr.Response.StatusCode, "attempt", attempt)
			continue
		}

		return nil, nil, err
	}
	return nil, nil, lastErr
}

// codeResultToRaw renders a code search result as the opaque key-value shape
// the normalizer consumes.
func codeResultToRaw(code *github.CodeResult, fileType string) map[string]any {
	raw := map[string]any{
		"name":      code.GetName(),
		"path":      code.GetPath(),
		"sha":       code.GetSHA(),
		"html_url":  code.GetHTMLURL(),
		"file_type": fileType,
	}

	repo := code.GetRepository()
	if repo == nil {
		return raw
	}
	raw["repository"] = map[string]any{
		"id":                float64(repo.GetID()),
		"full_name":         repo.GetFullName(),
		"name":              repo.GetName(),
		"html_url":          repo.GetHTMLURL(),
		"description":       repo.GetDescription(),
		"language":          repo.GetLanguage(),
		"default_branch":    repo.GetDefaultBranch(),
		"stargazers_count":  float64(repo.GetStargazersCount()),
		"forks_count":       float64(repo.GetForksCount()),
		"open_issues_count": float64(repo.GetOpenIssuesCount()),
		"watchers_count":    float64(repo.GetWatchersCount()),
		"archived":          repo.GetArchived(),
		"created_at":        formatTimestamp(repo.GetCreatedAt()),
		"pushed_at":         formatTimestamp(repo.GetPushedAt()),
		"owner": map[string]any{
			"login": repo.GetOwner().GetLogin(),
		},
	}
	return raw
}

func formatTimestamp(ts github.Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format(time.RFC3339)
}
