// internal/ingest/ingest_test.go
package ingest

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vibe-apps-aggregator/internal/database"
	"vibe-apps-aggregator/internal/database/mocks"
	apperrors "vibe-apps-aggregator/internal/errors"
	"vibe-apps-aggregator/internal/normalize"
	"vibe-apps-aggregator/internal/platform"
	"vibe-apps-aggregator/internal/tagger"
)

func testIngestor() *Ingestor {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return &Ingestor{
		registry: normalize.Default(),
		tagger:   tagger.Default(),
		logger:   logger,
	}
}

func TestIngestor_UpsertApplication(t *testing.T) {
	ctx := context.Background()
	rec := &normalize.Record{
		Platform:    platform.GitHub,
		ExternalID:  "12345",
		Name:        "test-owner/test-repo",
		URL:         "https://github.com/test-owner/test-repo",
		Description: "first description",
	}

	t.Run("creates a new application if it does not exist", func(t *testing.T) {
		mockQ := new(mocks.Querier)
		ing := testIngestor()

		mockQ.On("GetApplicationByExternalID", ctx, mock.Anything).
			Return(database.Application{}, pgx.ErrNoRows).Once()
		expected := database.Application{ID: 1, PlatformID: 7, ExternalID: "12345"}
		mockQ.On("CreateApplication", ctx, mock.MatchedBy(func(arg database.CreateApplicationParams) bool {
			return arg.PlatformID == 7 && arg.ExternalID == "12345"
		})).Return(expected, nil).Once()

		app, err := ing.upsertApplication(ctx, mockQ, 7, rec)

		require.NoError(t, err)
		assert.Equal(t, expected, app)
		mockQ.AssertExpectations(t)
	})

	t.Run("updates mutable fields if the application exists", func(t *testing.T) {
		mockQ := new(mocks.Querier)
		ing := testIngestor()

		existing := database.Application{ID: 1, PlatformID: 7, ExternalID: "12345", Description: "first description"}
		mockQ.On("GetApplicationByExternalID", ctx, mock.Anything).Return(existing, nil).Once()

		updated := existing
		updated.Description = "second description"
		mockQ.On("UpdateApplication", ctx, database.UpdateApplicationParams{
			ID:          1,
			Name:        rec.Name,
			Url:         rec.URL,
			Description: rec.Description,
		}).Return(updated, nil).Once()

		app, err := ing.upsertApplication(ctx, mockQ, 7, rec)

		require.NoError(t, err)
		assert.Equal(t, updated, app)
		mockQ.AssertExpectations(t)
		mockQ.AssertNotCalled(t, "CreateApplication")
	})

	t.Run("classifies a racing unique violation as a duplicate", func(t *testing.T) {
		mockQ := new(mocks.Querier)
		ing := testIngestor()

		mockQ.On("GetApplicationByExternalID", ctx, mock.Anything).
			Return(database.Application{}, pgx.ErrNoRows).Once()
		mockQ.On("CreateApplication", ctx, mock.Anything).
			Return(database.Application{}, &pgconn.PgError{Code: "23505"}).Once()

		_, err := ing.upsertApplication(ctx, mockQ, 7, rec)

		var dup *apperrors.DuplicateExternalIDError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "12345", dup.ExternalID)
		assert.True(t, isRowLevel(err))
	})

	t.Run("propagates unexpected lookup errors", func(t *testing.T) {
		mockQ := new(mocks.Querier)
		ing := testIngestor()
		dbErr := errors.New("unexpected database error")

		mockQ.On("GetApplicationByExternalID", ctx, mock.Anything).
			Return(database.Application{}, dbErr).Once()

		_, err := ing.upsertApplication(ctx, mockQ, 7, rec)

		assert.Equal(t, dbErr, err)
		assert.False(t, isRowLevel(err))
		mockQ.AssertNotCalled(t, "CreateApplication")
		mockQ.AssertNotCalled(t, "UpdateApplication")
	})
}

func TestIngestor_Partition(t *testing.T) {
	ing := testIngestor()

	raws := []map[string]any{
		{"url": "https://v0.app/community/app-1"},
		{"url": "https://v0.app/community/app-2"},
		{"name": "no url at all"}, // malformed
		{"url": "https://v0.app/community/app-3"},
		{"url": "https://v0.app/community/app-4"},
	}

	records, skipped := ing.partition(platform.V0, raws)

	assert.Len(t, records, 4)
	require.Len(t, skipped, 1)
	assert.Equal(t, 2, skipped[0].Index)
	assert.Contains(t, skipped[0].Reason, "malformed")

	// Surviving records keep their original batch positions.
	assert.Equal(t, []int{0, 1, 3, 4}, []int{
		records[0].index, records[1].index, records[2].index, records[3].index,
	})
}

func TestIngestor_ApplyDetections(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the tool on first sight and links it", func(t *testing.T) {
		mockQ := new(mocks.Querier)
		ing := testIngestor()

		rec := &normalize.Record{Platform: platform.V0, ExternalID: "abc"}

		mockQ.On("GetAiToolByName", ctx, "v0").Return(database.AiTool{}, pgx.ErrNoRows).Once()
		mockQ.On("CreateAiTool", ctx, database.CreateAiToolParams{
			Name: "v0", Category: "code_generator", Provider: "Vercel",
		}).Return(database.AiTool{ID: 3, Name: "v0"}, nil).Once()
		mockQ.On("UpsertApplicationAiTool", ctx, database.UpsertApplicationAiToolParams{
			ApplicationID:   42,
			AiToolID:        3,
			ConfidenceScore: 1.0,
			DetectionMethod: tagger.MethodPlatform,
		}).Return(nil).Once()

		err := ing.applyDetections(ctx, mockQ, 42, rec)

		require.NoError(t, err)
		mockQ.AssertExpectations(t)
	})

	t.Run("reuses an existing tool row", func(t *testing.T) {
		mockQ := new(mocks.Querier)
		ing := testIngestor()

		rec := &normalize.Record{Platform: platform.Bolt, ExternalID: "xyz"}

		mockQ.On("GetAiToolByName", ctx, "Bolt").Return(database.AiTool{ID: 9, Name: "Bolt"}, nil).Once()
		mockQ.On("UpsertApplicationAiTool", ctx, mock.Anything).Return(nil).Once()

		err := ing.applyDetections(ctx, mockQ, 42, rec)

		require.NoError(t, err)
		mockQ.AssertExpectations(t)
		mockQ.AssertNotCalled(t, "CreateAiTool")
	})
}

func TestIngestor_UpsertGithubRepository(t *testing.T) {
	ctx := context.Background()
	meta := &normalize.GitHubMeta{
		RepoID:          777,
		FullName:        "acme/shop",
		Language:        "Go",
		StargazersCount: 10,
		Files: []normalize.FileMeta{
			{Name: "CLAUDE.md", Path: "CLAUDE.md", Sha: "abc", FileType: "claude_md"},
		},
	}

	t.Run("creates the extension row and its marker files", func(t *testing.T) {
		mockQ := new(mocks.Querier)
		ing := testIngestor()

		mockQ.On("GetGithubRepositoryByRepoID", ctx, int64(777)).
			Return(database.GithubRepository{}, pgx.ErrNoRows).Once()
		mockQ.On("CreateGithubRepository", ctx, mock.MatchedBy(func(arg database.CreateGithubRepositoryParams) bool {
			return arg.ApplicationID == 42 && arg.RepoID == 777
		})).Return(database.GithubRepository{ID: 5, ApplicationID: 42, RepoID: 777}, nil).Once()
		mockQ.On("UpsertRepositoryFile", ctx, database.UpsertRepositoryFileParams{
			GithubRepositoryID: 5,
			Name:               "CLAUDE.md",
			Path:               "CLAUDE.md",
			Sha:                "abc",
			FileType:           "claude_md",
		}).Return(nil).Once()

		err := ing.upsertGithubRepository(ctx, mockQ, 42, meta)

		require.NoError(t, err)
		mockQ.AssertExpectations(t)
	})

	t.Run("refreshes metrics when the repository is already tracked", func(t *testing.T) {
		mockQ := new(mocks.Querier)
		ing := testIngestor()

		existing := database.GithubRepository{ID: 5, ApplicationID: 42, RepoID: 777, StargazersCount: 1}
		mockQ.On("GetGithubRepositoryByRepoID", ctx, int64(777)).Return(existing, nil).Once()
		mockQ.On("UpdateGithubRepositoryMetrics", ctx, mock.MatchedBy(func(arg database.UpdateGithubRepositoryMetricsParams) bool {
			return arg.ID == 5 && arg.StargazersCount == 10
		})).Return(existing, nil).Once()
		mockQ.On("UpsertRepositoryFile", ctx, mock.Anything).Return(nil).Once()

		err := ing.upsertGithubRepository(ctx, mockQ, 42, meta)

		require.NoError(t, err)
		mockQ.AssertExpectations(t)
		mockQ.AssertNotCalled(t, "CreateGithubRepository")
	})
}
