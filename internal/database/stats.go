// internal/database/stats.go
package database

import "context"

const getPlatformStatistics = `
SELECT platform_name, total_apps, apps_last_30_days, apps_last_7_days, first_app_date, latest_app_date
FROM platform_statistics
ORDER BY total_apps DESC
`

// GetPlatformStatistics reads the platform_statistics view. The view is
// recomputed on demand; dataset size makes that cheap.
func (q *Queries) GetPlatformStatistics(ctx context.Context) ([]PlatformStatisticsRow, error) {
	rows, err := q.db.Query(ctx, getPlatformStatistics)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []PlatformStatisticsRow
	for rows.Next() {
		var r PlatformStatisticsRow
		if err := rows.Scan(&r.PlatformName, &r.TotalApps, &r.AppsLast30Days, &r.AppsLast7Days,
			&r.FirstAppDate, &r.LatestAppDate); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

const getAiToolUsage = `
SELECT tool_name, category, provider, apps_using_tool, avg_confidence, high_confidence_apps
FROM ai_tool_usage
ORDER BY apps_using_tool DESC
`

func (q *Queries) GetAiToolUsage(ctx context.Context) ([]AiToolUsageRow, error) {
	rows, err := q.db.Query(ctx, getAiToolUsage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []AiToolUsageRow
	for rows.Next() {
		var r AiToolUsageRow
		if err := rows.Scan(&r.ToolName, &r.Category, &r.Provider, &r.AppsUsingTool,
			&r.AvgConfidence, &r.HighConfidenceApps); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

const getGithubRepositoryStats = `
SELECT language, repo_count, avg_stars, avg_forks, total_stars, total_forks
FROM github_repository_stats
ORDER BY repo_count DESC
`

func (q *Queries) GetGithubRepositoryStats(ctx context.Context) ([]GithubRepositoryStatsRow, error) {
	rows, err := q.db.Query(ctx, getGithubRepositoryStats)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []GithubRepositoryStatsRow
	for rows.Next() {
		var r GithubRepositoryStatsRow
		if err := rows.Scan(&r.Language, &r.RepoCount, &r.AvgStars, &r.AvgForks,
			&r.TotalStars, &r.TotalForks); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

const listApplicationExport = `
SELECT id, platform_name, external_id, name, url, description, is_active, created_at, updated_at,
	github_full_name, github_language, stargazers_count, forks_count, community_url, community_author
FROM application_export
WHERE ($1::text = '' OR platform_name = $1::text)
ORDER BY created_at DESC
LIMIT $2
`

type ListApplicationExportParams struct {
	PlatformName string
	Limit        int32
}

// ListApplicationExport returns the flat projection rows, newest first. An
// empty PlatformName selects all platforms.
func (q *Queries) ListApplicationExport(ctx context.Context, arg ListApplicationExportParams) ([]ApplicationExportRow, error) {
	rows, err := q.db.Query(ctx, listApplicationExport, arg.PlatformName, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ApplicationExportRow
	for rows.Next() {
		var r ApplicationExportRow
		if err := rows.Scan(&r.ID, &r.PlatformName, &r.ExternalID, &r.Name, &r.Url, &r.Description,
			&r.IsActive, &r.CreatedAt, &r.UpdatedAt, &r.GithubFullName, &r.GithubLanguage,
			&r.StargazersCount, &r.ForksCount, &r.CommunityUrl, &r.CommunityAuthor); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}
