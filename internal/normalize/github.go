// internal/normalize/github.go
package normalize

import (
	"vibe-apps-aggregator/internal/platform"
)

// GitHubNormalizer maps GitHub code-search rows (and plain repository rows)
// into canonical records. The numeric repository id is the external id.
type GitHubNormalizer struct{}

func (GitHubNormalizer) Platform() string { return platform.GitHub }

func (GitHubNormalizer) Normalize(raw map[string]any) (*Record, error) {
	// Code-search rows nest the repository; repo rows are the repository.
	repo := obj(raw, "repository")
	var file *FileMeta
	if repo != nil {
		file = &FileMeta{
			Name:     str(raw, "name"),
			Path:     str(raw, "path"),
			Sha:      str(raw, "sha"),
			HTMLURL:  str(raw, "html_url"),
			FileType: str(raw, "file_type"),
		}
	} else {
		repo = raw
	}

	externalID, repoID, ok := parseRepoID(repo, "id")
	if !ok {
		return nil, malformed(platform.GitHub, "missing numeric repository id")
	}
	htmlURL := str(repo, "html_url")
	if htmlURL == "" {
		return nil, malformed(platform.GitHub, "missing html_url")
	}

	owner := obj(repo, "owner")
	meta := &GitHubMeta{
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
	if file != nil && file.Path != "" {
		meta.Files = append(meta.Files, *file)
	}

	return &Record{
		Platform:    platform.GitHub,
		ExternalID:  externalID,
		Name:        firstNonEmpty(meta.FullName, str(repo, "name")),
		URL:         htmlURL,
		Description: truncate(str(repo, "description"), 500),
		CreatedAt:   meta.RepoCreatedAt,
		GitHub:      meta,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
