// internal/normalize/normalize_test.go
package normalize

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "vibe-apps-aggregator/internal/errors"
)

func codeSearchRaw() map[string]any {
	return map[string]any{
		"name":      "CLAUDE.md",
		"path":      "CLAUDE.md",
		"sha":       "abc123",
		"html_url":  "https://github.com/test-owner/test-repo/blob/main/CLAUDE.md",
		"file_type": "claude_md",
		"repository": map[string]any{
			"id":                float64(12345),
			"full_name":         "test-owner/test-repo",
			"name":              "test-repo",
			"html_url":          "https://github.com/test-owner/test-repo",
			"description":       "A todo app built with Claude",
			"language":          "TypeScript",
			"default_branch":    "main",
			"stargazers_count":  float64(42),
			"forks_count":       float64(7),
			"open_issues_count": float64(3),
			"watchers_count":    float64(42),
			"archived":          false,
			"created_at":        "2025-01-15T10:00:00Z",
			"pushed_at":         "2025-06-01T08:30:00Z",
			"owner":             map[string]any{"login": "test-owner"},
		},
	}
}

func TestGitHubNormalizer(t *testing.T) {
	n := GitHubNormalizer{}

	t.Run("maps a code search row", func(t *testing.T) {
		rec, err := n.Normalize(codeSearchRaw())
		require.NoError(t, err)

		assert.Equal(t, "github.com", rec.Platform)
		assert.Equal(t, "12345", rec.ExternalID)
		assert.Equal(t, "test-owner/test-repo", rec.Name)
		assert.Equal(t, "https://github.com/test-owner/test-repo", rec.URL)
		assert.Equal(t, "A todo app built with Claude", rec.Description)
		assert.Equal(t, time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC), rec.CreatedAt)

		require.NotNil(t, rec.GitHub)
		assert.Equal(t, int64(12345), rec.GitHub.RepoID)
		assert.Equal(t, "TypeScript", rec.GitHub.Language)
		assert.Equal(t, 42, rec.GitHub.StargazersCount)
		require.Len(t, rec.GitHub.Files, 1)
		assert.Equal(t, "CLAUDE.md", rec.GitHub.Files[0].Name)
		assert.Equal(t, "claude_md", rec.GitHub.Files[0].FileType)
		assert.Nil(t, rec.Community)
	})

	t.Run("maps a bare repository row", func(t *testing.T) {
		raw := codeSearchRaw()["repository"].(map[string]any)
		rec, err := n.Normalize(raw)
		require.NoError(t, err)
		assert.Equal(t, "12345", rec.ExternalID)
		assert.Empty(t, rec.GitHub.Files)
	})

	t.Run("rejects a row without a repository id", func(t *testing.T) {
		raw := codeSearchRaw()
		delete(raw["repository"].(map[string]any), "id")

		_, err := n.Normalize(raw)
		var malformedErr *apperrors.MalformedRecordError
		require.ErrorAs(t, err, &malformedErr)
		assert.Equal(t, "github.com", malformedErr.Platform)
	})

	t.Run("rejects a row without a url", func(t *testing.T) {
		raw := codeSearchRaw()
		delete(raw["repository"].(map[string]any), "html_url")

		_, err := n.Normalize(raw)
		var malformedErr *apperrors.MalformedRecordError
		require.ErrorAs(t, err, &malformedErr)
	})
}

func TestGalleryNormalizer(t *testing.T) {
	n := NewGalleryNormalizer("v0.dev")

	t.Run("extracts the community id from the url", func(t *testing.T) {
		rec, err := n.Normalize(map[string]any{
			"url": "https://v0.app/community/weather-dashboard-x1y2",
		})
		require.NoError(t, err)
		assert.Equal(t, "weather-dashboard-x1y2", rec.ExternalID)
		require.NotNil(t, rec.Community)
		assert.Equal(t, "weather-dashboard-x1y2", rec.Community.CommunityID)
		assert.Equal(t, "https://v0.app/community/weather-dashboard-x1y2", rec.Community.CommunityURL)
	})

	t.Run("falls back to a url hash when no community id is present", func(t *testing.T) {
		rec, err := n.Normalize(map[string]any{"url": "https://v0.app/some/other/path"})
		require.NoError(t, err)
		assert.Len(t, rec.ExternalID, 16)

		// The fallback must be stable across runs.
		again, err := n.Normalize(map[string]any{"url": "https://v0.app/some/other/path"})
		require.NoError(t, err)
		assert.Equal(t, rec.ExternalID, again.ExternalID)
	})

	t.Run("maps gallery metadata", func(t *testing.T) {
		rec, err := n.Normalize(map[string]any{
			"url":         "https://lovable.dev/projects/cool-app",
			"name":        "Cool App",
			"description": "An app",
			"author":      "someone",
			"tags":        []any{"saas", "dashboard"},
			"created_at":  "2025-03-01T00:00:00Z",
		})
		require.NoError(t, err)
		assert.Equal(t, "Cool App", rec.Name)
		assert.Equal(t, []string{"saas", "dashboard"}, rec.Community.Tags)
		assert.False(t, rec.CreatedAt.IsZero())
	})

	t.Run("rejects a record without a url", func(t *testing.T) {
		_, err := n.Normalize(map[string]any{"name": "no url here"})
		var malformedErr *apperrors.MalformedRecordError
		require.ErrorAs(t, err, &malformedErr)
		assert.Equal(t, "v0.dev", malformedErr.Platform)
	})
}

func TestJulesNormalizer(t *testing.T) {
	n := JulesNormalizer{}

	t.Run("maps a pull request with its base repository", func(t *testing.T) {
		rec, err := n.Normalize(map[string]any{
			"id":         float64(9001),
			"title":      "Add login page",
			"body":       "Implements the login flow",
			"html_url":   "https://github.com/acme/shop/pull/12",
			"created_at": "2025-05-01T12:00:00Z",
			"base": map[string]any{
				"repo": map[string]any{
					"id":               float64(777),
					"full_name":        "acme/shop",
					"html_url":         "https://github.com/acme/shop",
					"language":         "Go",
					"stargazers_count": float64(5),
					"owner":            map[string]any{"login": "acme"},
				},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "9001", rec.ExternalID)
		assert.Equal(t, "Add login page", rec.Name)
		require.NotNil(t, rec.GitHub)
		assert.Equal(t, int64(777), rec.GitHub.RepoID)
	})

	t.Run("truncates long bodies", func(t *testing.T) {
		rec, err := n.Normalize(map[string]any{
			"id":       float64(2),
			"html_url": "https://github.com/acme/shop/pull/2",
			"body":     strings.Repeat("x", 2000),
		})
		require.NoError(t, err)
		assert.Len(t, rec.Description, 500)
	})

	t.Run("rejects a pull request without an id", func(t *testing.T) {
		_, err := n.Normalize(map[string]any{"html_url": "https://github.com/acme/shop/pull/3"})
		var malformedErr *apperrors.MalformedRecordError
		require.ErrorAs(t, err, &malformedErr)
	})
}

func TestRegistry(t *testing.T) {
	r := Default()

	t.Run("dispatches by platform", func(t *testing.T) {
		rec, err := r.Normalize("v0.dev", map[string]any{"url": "https://v0.app/community/abc"})
		require.NoError(t, err)
		assert.Equal(t, "v0.dev", rec.Platform)
	})

	t.Run("rejects unknown platforms", func(t *testing.T) {
		_, err := r.Normalize("myspace", map[string]any{"url": "https://example.com"})
		require.Error(t, err)
	})

	t.Run("covers every seeded platform", func(t *testing.T) {
		assert.ElementsMatch(t,
			[]string{"github.com", "jules", "v0.dev", "lovable", "bolt"},
			r.Platforms())
	})
}
