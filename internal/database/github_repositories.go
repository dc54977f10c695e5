// internal/database/github_repositories.go
package database

import (
	"context"
	"time"
)

const githubRepositoryColumns = `id, application_id, repo_id, full_name, owner_login, language, default_branch,
stargazers_count, forks_count, open_issues_count, watchers_count, archived, repo_created_at, repo_pushed_at`

const getGithubRepositoryByRepoID = `
SELECT ` + githubRepositoryColumns + `
FROM github_repositories
WHERE repo_id = $1
`

func (q *Queries) GetGithubRepositoryByRepoID(ctx context.Context, repoID int64) (GithubRepository, error) {
	return scanGithubRepository(q.db.QueryRow(ctx, getGithubRepositoryByRepoID, repoID))
}

const getGithubRepositoryByApplicationID = `
SELECT ` + githubRepositoryColumns + `
FROM github_repositories
WHERE application_id = $1
`

func (q *Queries) GetGithubRepositoryByApplicationID(ctx context.Context, applicationID int64) (GithubRepository, error) {
	return scanGithubRepository(q.db.QueryRow(ctx, getGithubRepositoryByApplicationID, applicationID))
}

const createGithubRepository = `
INSERT INTO github_repositories (application_id, repo_id, full_name, owner_login, language, default_branch,
	stargazers_count, forks_count, open_issues_count, watchers_count, archived, repo_created_at, repo_pushed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING ` + githubRepositoryColumns

type CreateGithubRepositoryParams struct {
	ApplicationID   int64
	RepoID          int64
	FullName        string
	OwnerLogin      string
	Language        string
	DefaultBranch   string
	StargazersCount int32
	ForksCount      int32
	OpenIssuesCount int32
	WatchersCount   int32
	Archived        bool
	RepoCreatedAt   *time.Time
	RepoPushedAt    *time.Time
}

func (q *Queries) CreateGithubRepository(ctx context.Context, arg CreateGithubRepositoryParams) (GithubRepository, error) {
	row := q.db.QueryRow(ctx, createGithubRepository,
		arg.ApplicationID, arg.RepoID, arg.FullName, arg.OwnerLogin, arg.Language, arg.DefaultBranch,
		arg.StargazersCount, arg.ForksCount, arg.OpenIssuesCount, arg.WatchersCount, arg.Archived,
		arg.RepoCreatedAt, arg.RepoPushedAt)
	return scanGithubRepository(row)
}

const updateGithubRepositoryMetrics = `
UPDATE github_repositories
SET language = $2, stargazers_count = $3, forks_count = $4, open_issues_count = $5,
	watchers_count = $6, archived = $7, repo_pushed_at = $8
WHERE id = $1
RETURNING ` + githubRepositoryColumns

type UpdateGithubRepositoryMetricsParams struct {
	ID              int64
	Language        string
	StargazersCount int32
	ForksCount      int32
	OpenIssuesCount int32
	WatchersCount   int32
	Archived        bool
	RepoPushedAt    *time.Time
}

func (q *Queries) UpdateGithubRepositoryMetrics(ctx context.Context, arg UpdateGithubRepositoryMetricsParams) (GithubRepository, error) {
	row := q.db.QueryRow(ctx, updateGithubRepositoryMetrics,
		arg.ID, arg.Language, arg.StargazersCount, arg.ForksCount, arg.OpenIssuesCount,
		arg.WatchersCount, arg.Archived, arg.RepoPushedAt)
	return scanGithubRepository(row)
}

const upsertRepositoryFile = `
INSERT INTO repository_files (github_repository_id, name, path, sha, html_url, file_type)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (github_repository_id, path) DO UPDATE SET sha = EXCLUDED.sha, html_url = EXCLUDED.html_url
`

type UpsertRepositoryFileParams struct {
	GithubRepositoryID int64
	Name               string
	Path               string
	Sha                string
	HtmlUrl            string
	FileType           string
}

func (q *Queries) UpsertRepositoryFile(ctx context.Context, arg UpsertRepositoryFileParams) error {
	_, err := q.db.Exec(ctx, upsertRepositoryFile,
		arg.GithubRepositoryID, arg.Name, arg.Path, arg.Sha, arg.HtmlUrl, arg.FileType)
	return err
}

const listRepositoryFiles = `
SELECT id, github_repository_id, name, path, sha, html_url, file_type
FROM repository_files
WHERE github_repository_id = $1
ORDER BY path
`

func (q *Queries) ListRepositoryFiles(ctx context.Context, githubRepositoryID int64) ([]RepositoryFile, error) {
	rows, err := q.db.Query(ctx, listRepositoryFiles, githubRepositoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []RepositoryFile
	for rows.Next() {
		var f RepositoryFile
		if err := rows.Scan(&f.ID, &f.GithubRepositoryID, &f.Name, &f.Path, &f.Sha, &f.HtmlUrl, &f.FileType); err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, rows.Err()
}

func scanGithubRepository(row interface{ Scan(...any) error }) (GithubRepository, error) {
	var g GithubRepository
	err := row.Scan(&g.ID, &g.ApplicationID, &g.RepoID, &g.FullName, &g.OwnerLogin, &g.Language,
		&g.DefaultBranch, &g.StargazersCount, &g.ForksCount, &g.OpenIssuesCount, &g.WatchersCount,
		&g.Archived, &g.RepoCreatedAt, &g.RepoPushedAt)
	return g, err
}
