// internal/database/models.go
package database

import (
	"encoding/json"
	"time"
)

// Platform is seeded reference data; one row per external source.
type Platform struct {
	ID          int64
	Name        string
	BaseUrl     string
	Description string
	CreatedAt   time.Time
}

// Application is the aggregation root. (PlatformID, ExternalID) is unique.
type Application struct {
	ID            int64
	PlatformID    int64
	ExternalID    string
	Name          string
	Url           string
	Description   string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	LastScrapedAt *time.Time
}

// GithubRepository is the 1:1 extension row for GitHub-sourced applications.
type GithubRepository struct {
	ID              int64
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

// RepositoryFile is a detected marker file inside a GitHub repository.
type RepositoryFile struct {
	ID                 int64
	GithubRepositoryID int64
	Name               string
	Path               string
	Sha                string
	HtmlUrl            string
	FileType           string
}

// CommunityApp is the 1:1 extension row for gallery-sourced applications.
// Tags holds the jsonb column verbatim so it renders as a JSON array.
type CommunityApp struct {
	ID            int64
	ApplicationID int64
	CommunityUrl  string
	CommunityID   string
	Author        string
	Tags          json.RawMessage
	ThumbnailUrl  string
	DemoUrl       string
}

// AiTool is reference data describing one detectable AI tool.
type AiTool struct {
	ID       int64
	Name     string
	Category string
	Provider string
}

// ApplicationAiTool links an application to a detected tool with a confidence
// score in [0,1]. At most one row per (application, tool) pair.
type ApplicationAiTool struct {
	ID              int64
	ApplicationID   int64
	AiToolID        int64
	ConfidenceScore float64
	DetectionMethod string
	DetectedAt      time.Time
}

// ScrapingJob records one ingestion run for a platform.
type ScrapingJob struct {
	ID             int64
	PlatformID     int64
	JobType        string
	Status         string
	ItemsFound     int32
	ItemsProcessed int32
	ItemsSkipped   int32
	ErrorMessage   string
	StartedAt      *time.Time
	CompletedAt    *time.Time
	CreatedAt      time.Time
}

// PlatformStatisticsRow is one row of the platform_statistics view.
type PlatformStatisticsRow struct {
	PlatformName   string
	TotalApps      int64
	AppsLast30Days int64
	AppsLast7Days  int64
	FirstAppDate   *time.Time
	LatestAppDate  *time.Time
}

// AiToolUsageRow is one row of the ai_tool_usage view.
type AiToolUsageRow struct {
	ToolName           string
	Category           string
	Provider           string
	AppsUsingTool      int64
	AvgConfidence      float64
	HighConfidenceApps int64
}

// GithubRepositoryStatsRow is one row of the github_repository_stats view.
type GithubRepositoryStatsRow struct {
	Language   string
	RepoCount  int64
	AvgStars   float64
	AvgForks   float64
	TotalStars int64
	TotalForks int64
}

// ApplicationExportRow is the flat projection of an application joined with
// its platform and extension rows, ready for CSV or JSON output.
type ApplicationExportRow struct {
	ID              int64
	PlatformName    string
	ExternalID      string
	Name            string
	Url             string
	Description     string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
	GithubFullName  *string
	GithubLanguage  *string
	StargazersCount *int32
	ForksCount      *int32
	CommunityUrl    *string
	CommunityAuthor *string
}
