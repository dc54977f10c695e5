// internal/normalize/jules.go
package normalize

import (
	"vibe-apps-aggregator/internal/platform"
)

// JulesNormalizer maps bot-authored pull request records. The numeric PR id is
// the external id; the base repository, when present, fills the GitHub
// extension payload.
type JulesNormalizer struct{}

func (JulesNormalizer) Platform() string { return platform.Jules }

func (JulesNormalizer) Normalize(raw map[string]any) (*Record, error) {
	externalID, _, ok := parseRepoID(raw, "id")
	if !ok {
		return nil, malformed(platform.Jules, "missing numeric pull request id")
	}
	htmlURL := str(raw, "html_url")
	if htmlURL == "" {
		return nil, malformed(platform.Jules, "missing html_url")
	}

	rec := &Record{
		Platform:    platform.Jules,
		ExternalID:  externalID,
		Name:        str(raw, "title"),
		URL:         htmlURL,
		Description: truncate(str(raw, "body"), 500),
		CreatedAt:   timestamp(raw, "created_at"),
	}

	if repo := obj(obj(raw, "base"), "repo"); repo != nil {
		if _, repoID, ok := parseRepoID(repo, "id"); ok {
			owner := obj(repo, "owner")
			rec.GitHub = &GitHubMeta{
				RepoID:          repoID,
				FullName:        str(repo, "full_name"),
				OwnerLogin:      str(owner, "login"),
				Language:        str(repo, "language"),
				DefaultBranch:   str(repo, "default_branch"),
				StargazersCount: integer(repo, "stargazers_count"),
				ForksCount:      integer(repo, "forks_count"),
				OpenIssuesCount: integer(repo, "open_issues_count"),
				WatchersCount:   integer(repo, "watchers_count"),
				Archived:        boolean(repo, "archived"),
				RepoCreatedAt:   timestamp(repo, "created_at"),
				RepoPushedAt:    timestamp(repo, "pushed_at"),
			}
		}
	}

	return rec, nil
}
