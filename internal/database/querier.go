// internal/database/querier.go
package database

import "context"

// Querier is the query surface the ingestion engine and API handlers depend
// on. Tests substitute a mock implementation.
type Querier interface {
	UpsertPlatform(ctx context.Context, arg UpsertPlatformParams) (Platform, error)
	GetPlatformByName(ctx context.Context, name string) (Platform, error)
	ListPlatforms(ctx context.Context) ([]Platform, error)

	GetApplicationByExternalID(ctx context.Context, arg GetApplicationByExternalIDParams) (Application, error)
	GetApplication(ctx context.Context, id int64) (Application, error)
	CreateApplication(ctx context.Context, arg CreateApplicationParams) (Application, error)
	UpdateApplication(ctx context.Context, arg UpdateApplicationParams) (Application, error)
	DeactivateApplication(ctx context.Context, id int64) error
	DeleteApplication(ctx context.Context, id int64) error
	CountApplicationsByPlatform(ctx context.Context, platformID int64) (int64, error)

	GetGithubRepositoryByRepoID(ctx context.Context, repoID int64) (GithubRepository, error)
	GetGithubRepositoryByApplicationID(ctx context.Context, applicationID int64) (GithubRepository, error)
	CreateGithubRepository(ctx context.Context, arg CreateGithubRepositoryParams) (GithubRepository, error)
	UpdateGithubRepositoryMetrics(ctx context.Context, arg UpdateGithubRepositoryMetricsParams) (GithubRepository, error)
	UpsertRepositoryFile(ctx context.Context, arg UpsertRepositoryFileParams) error
	ListRepositoryFiles(ctx context.Context, githubRepositoryID int64) ([]RepositoryFile, error)

	GetCommunityAppByApplicationID(ctx context.Context, applicationID int64) (CommunityApp, error)
	UpsertCommunityApp(ctx context.Context, arg UpsertCommunityAppParams) (CommunityApp, error)

	GetAiToolByName(ctx context.Context, name string) (AiTool, error)
	CreateAiTool(ctx context.Context, arg CreateAiToolParams) (AiTool, error)
	UpsertApplicationAiTool(ctx context.Context, arg UpsertApplicationAiToolParams) error
	GetApplicationAiTool(ctx context.Context, arg GetApplicationAiToolParams) (ApplicationAiTool, error)

	CreateScrapingJob(ctx context.Context, arg CreateScrapingJobParams) (ScrapingJob, error)
	MarkScrapingJobRunning(ctx context.Context, id int64) (ScrapingJob, error)
	CompleteScrapingJob(ctx context.Context, arg CompleteScrapingJobParams) (ScrapingJob, error)
	FailScrapingJob(ctx context.Context, arg FailScrapingJobParams) (ScrapingJob, error)
	ListRecentScrapingJobs(ctx context.Context, limit int32) ([]ScrapingJob, error)

	GetPlatformStatistics(ctx context.Context) ([]PlatformStatisticsRow, error)
	GetAiToolUsage(ctx context.Context) ([]AiToolUsageRow, error)
	GetGithubRepositoryStats(ctx context.Context) ([]GithubRepositoryStatsRow, error)
	ListApplicationExport(ctx context.Context, arg ListApplicationExportParams) ([]ApplicationExportRow, error)
}

var _ Querier = (*Queries)(nil)
