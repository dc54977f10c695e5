// internal/database/mocks/querier.go
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vibe-apps-aggregator/internal/database"
)

// Querier is a mock of the database.Querier interface.
type Querier struct {
	mock.Mock
}

var _ database.Querier = (*Querier)(nil)

func (m *Querier) UpsertPlatform(ctx context.Context, arg database.UpsertPlatformParams) (database.Platform, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(database.Platform), args.Error(1)
}

func (m *Querier) GetPlatformByName(ctx context.Context, name string) (database.Platform, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(database.Platform), args.Error(1)
}

func (m *Querier) ListPlatforms(ctx context.Context) ([]database.Platform, error) {
	args := m.Called(ctx)
	return args.Get(0).([]database.Platform), args.Error(1)
}

func (m *Querier) GetApplicationByExternalID(ctx context.Context, arg database.GetApplicationByExternalIDParams) (database.Application, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(database.Application), args.Error(1)
}

func (m *Querier) GetApplication(ctx context.Context, id int64) (database.Application, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(database.Application), args.Error(1)
}

func (m *Querier) CreateApplication(ctx context.Context, arg database.CreateApplicationParams) (database.Application, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(database.Application), args.Error(1)
}

func (m *Querier) UpdateApplication(ctx context.Context, arg database.UpdateApplicationParams) (database.Application, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(database.Application), args.Error(1)
}

func (m *Querier) DeactivateApplication(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *Querier) DeleteApplication(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *Querier) CountApplicationsByPlatform(ctx context.Context, platformID int64) (int64, error) {
	args := m.Called(ctx, platformID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Querier) GetGithubRepositoryByRepoID(ctx context.Context, repoID int64) (database.GithubRepository, error) {
	args := m.Called(ctx, repoID)
	return args.Get(0).(database.GithubRepository), args.Error(1)
}

func (m *Querier) GetGithubRepositoryByApplicationID(ctx context.Context, applicationID int64) (database.GithubRepository, error) {
	args := m.Called(ctx, applicationID)
	return args.Get(0).(database.GithubRepository), args.Error(1)
}

func (m *Querier) CreateGithubRepository(ctx context.Context, arg database.CreateGithubRepositoryParams) (database.GithubRepository, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(database.GithubRepository), args.Error(1)
}

func (m *Querier) UpdateGithubRepositoryMetrics(ctx context.Context, arg database.UpdateGithubRepositoryMetricsParams) (database.GithubRepository, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(database.GithubRepository), args.Error(1)
}

func (m *Querier) UpsertRepositoryFile(ctx context.Context, arg database.UpsertRepositoryFileParams) error {
	args := m.Called(ctx, arg)
	return args.Error(0)
}

func (m *Querier) ListRepositoryFiles(ctx context.Context, githubRepositoryID int64) ([]database.RepositoryFile, error) {
	args := m.Called(ctx, githubRepositoryID)
	return args.Get(0).([]database.RepositoryFile), args.Error(1)
}

func (m *Querier) GetCommunityAppByApplicationID(ctx context.Context, applicationID int64) (database.CommunityApp, error) {
	args := m.Called(ctx, applicationID)
	return args.Get(0).(database.CommunityApp), args.Error(1)
}

func (m *Querier) UpsertCommunityApp(ctx context.Context, arg database.UpsertCommunityAppParams) (database.CommunityApp, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(database.CommunityApp), args.Error(1)
}

func (m *Querier) GetAiToolByName(ctx context.Context, name string) (database.AiTool, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(database.AiTool), args.Error(1)
}

func (m *Querier) CreateAiTool(ctx context.Context, arg database.CreateAiToolParams) (database.AiTool, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(database.AiTool), args.Error(1)
}

func (m *Querier) UpsertApplicationAiTool(ctx context.Context, arg database.UpsertApplicationAiToolParams) error {
	args := m.Called(ctx, arg)
	return args.Error(0)
}

func (m *Querier) GetApplicationAiTool(ctx context.Context, arg database.GetApplicationAiToolParams) (database.ApplicationAiTool, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(database.ApplicationAiTool), args.Error(1)
}

func (m *Querier) CreateScrapingJob(ctx context.Context, arg database.CreateScrapingJobParams) (database.ScrapingJob, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(database.ScrapingJob), args.Error(1)
}

func (m *Querier) MarkScrapingJobRunning(ctx context.Context, id int64) (database.ScrapingJob, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(database.ScrapingJob), args.Error(1)
}

func (m *Querier) CompleteScrapingJob(ctx context.Context, arg database.CompleteScrapingJobParams) (database.ScrapingJob, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(database.ScrapingJob), args.Error(1)
}

func (m *Querier) FailScrapingJob(ctx context.Context, arg database.FailScrapingJobParams) (database.ScrapingJob, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(database.ScrapingJob), args.Error(1)
}

func (m *Querier) ListRecentScrapingJobs(ctx context.Context, limit int32) ([]database.ScrapingJob, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]database.ScrapingJob), args.Error(1)
}

func (m *Querier) GetPlatformStatistics(ctx context.Context) ([]database.PlatformStatisticsRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]database.PlatformStatisticsRow), args.Error(1)
}

func (m *Querier) GetAiToolUsage(ctx context.Context) ([]database.AiToolUsageRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]database.AiToolUsageRow), args.Error(1)
}

func (m *Querier) GetGithubRepositoryStats(ctx context.Context) ([]database.GithubRepositoryStatsRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]database.GithubRepositoryStatsRow), args.Error(1)
}

func (m *Querier) ListApplicationExport(ctx context.Context, arg database.ListApplicationExportParams) ([]database.ApplicationExportRow, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).([]database.ApplicationExportRow), args.Error(1)
}
