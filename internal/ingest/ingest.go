// internal/ingest/ingest.go
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"vibe-apps-aggregator/internal/database"
	apperrors "vibe-apps-aggregator/internal/errors"
	"vibe-apps-aggregator/internal/normalize"
	"vibe-apps-aggregator/internal/source"
	"vibe-apps-aggregator/internal/tagger"
)

const (
	// Number of platforms to ingest in parallel. Platforms own disjoint row
	// sets, so concurrent batches never contend on application rows.
	concurrency = 3

	uniqueViolation = "23505"
)

// Ingestor pulls raw records from sources, normalizes them and reconciles
// them into the store.
type Ingestor struct {
	dbpool   *pgxpool.Pool
	registry *normalize.Registry
	tagger   *tagger.Tagger
	sources  []source.Source
	interval time.Duration
	logger   *slog.Logger
}

// NewIngestor creates a new Ingestor instance.
func NewIngestor(dbpool *pgxpool.Pool, registry *normalize.Registry, tg *tagger.Tagger,
	sources []source.Source, interval time.Duration, logger *slog.Logger) *Ingestor {
	return &Ingestor{
		dbpool:   dbpool,
		registry: registry,
		tagger:   tg,
		sources:  sources,
		interval: interval,
		logger:   logger,
	}
}

// Start begins the continuous ingestion process.
func (ing *Ingestor) Start(ctx context.Context) {
	ing.logger.Info("Starting ingestor", "interval", ing.interval.String(), "sources", len(ing.sources))
	ticker := time.NewTicker(ing.interval)
	defer ticker.Stop()

	ing.runCycle(ctx) // Initial cycle

	for {
		select {
		case <-ticker.C:
			ing.runCycle(ctx)
		case <-ctx.Done():
			ing.logger.Info("Ingestor shutting down", "reason", ctx.Err())
			return
		}
	}
}

// runCycle ingests all configured sources, fanning out across platforms.
func (ing *Ingestor) runCycle(ctx context.Context) {
	ing.logger.Info("Starting ingestion cycle")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, src := range ing.sources {
		src := src
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			if err := ing.ingestSource(gctx, src); err != nil && !errors.Is(err, context.Canceled) {
				ing.logger.Error("Failed to ingest source", "platform", src.Platform(), "error", err)
			}
			return nil
		})
	}

	g.Wait()
	ing.logger.Info("Ingestion cycle finished")
}

func (ing *Ingestor) ingestSource(ctx context.Context, src source.Source) error {
	raws, err := src.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch %s records: %w", src.Platform(), err)
	}
	if len(raws) == 0 {
		ing.logger.Info("No raw records for platform", "platform", src.Platform())
		return nil
	}
	_, err = ing.RunBatch(ctx, src.Platform(), "scrape", raws)
	return err
}

// SkippedRecord explains why one raw record did not make it into the store.
type SkippedRecord struct {
	Index  int
	Reason string
}

// BatchResult is the accounting of one ingestion batch.
type BatchResult struct {
	JobID          int64
	ItemsFound     int
	ItemsProcessed int
	ItemsSkipped   int
	Skipped        []SkippedRecord
}

// RunBatch ingests one platform's raw records as a single scraping job.
// Row-level failures (malformed records, duplicate collisions) are tallied
// and skipped; only store-level failures abort the batch, in which case the
// job is marked failed and previously committed records remain committed.
// Re-running the same batch is idempotent up to updated_at/last_scraped_at.
func (ing *Ingestor) RunBatch(ctx context.Context, platformName, jobType string, raws []map[string]any) (*BatchResult, error) {
	logger := ing.logger.With("platform", platformName, "job_type", jobType)
	q := database.New(ing.dbpool)

	plat, err := q.GetPlatformByName(ctx, platformName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("unknown platform %q", platformName)
	} else if err != nil {
		return nil, &apperrors.StoreUnavailableError{Op: "get platform", Err: err}
	}

	job, err := q.CreateScrapingJob(ctx, database.CreateScrapingJobParams{
		PlatformID: plat.ID,
		JobType:    jobType,
	})
	if err != nil {
		return nil, &apperrors.StoreUnavailableError{Op: "create job", Err: err}
	}
	if job, err = q.MarkScrapingJobRunning(ctx, job.ID); err != nil {
		return nil, &apperrors.StoreUnavailableError{Op: "mark job running", Err: err}
	}
	logger = logger.With("job_id", job.ID)
	logger.Info("Ingestion batch started", "items_found", len(raws))

	result := &BatchResult{JobID: job.ID, ItemsFound: len(raws)}
	records, skipped := ing.partition(platformName, raws)
	result.Skipped = skipped

	for _, entry := range records {
		if ctx.Err() != nil {
			ing.failJob(job.ID, result, "batch canceled")
			return result, ctx.Err()
		}

		err := ing.ingestRecordInTransaction(ctx, plat.ID, entry.record)
		switch {
		case err == nil:
			result.ItemsProcessed++
		case isRowLevel(err):
			logger.Warn("Skipping record", "index", entry.index, "error", err)
			result.Skipped = append(result.Skipped, SkippedRecord{Index: entry.index, Reason: err.Error()})
		default:
			storeErr := &apperrors.StoreUnavailableError{Op: "ingest record", Err: err}
			ing.failJob(job.ID, result, storeErr.Error())
			return result, storeErr
		}
	}

	result.ItemsSkipped = len(result.Skipped)
	if _, err := q.CompleteScrapingJob(ctx, database.CompleteScrapingJobParams{
		ID:             job.ID,
		ItemsFound:     int32(result.ItemsFound),
		ItemsProcessed: int32(result.ItemsProcessed),
		ItemsSkipped:   int32(result.ItemsSkipped),
		ErrorMessage:   joinReasons(result.Skipped),
	}); err != nil {
		return result, &apperrors.StoreUnavailableError{Op: "complete job", Err: err}
	}

	logger.Info("Ingestion batch completed",
		"items_processed", result.ItemsProcessed, "items_skipped", result.ItemsSkipped)
	return result, nil
}

type indexedRecord struct {
	index  int
	record *normalize.Record
}

// partition normalizes raws, separating canonical records from malformed ones.
func (ing *Ingestor) partition(platformName string, raws []map[string]any) ([]indexedRecord, []SkippedRecord) {
	var records []indexedRecord
	var skipped []SkippedRecord

	for i, raw := range raws {
		rec, err := ing.registry.Normalize(platformName, raw)
		if err != nil {
			skipped = append(skipped, SkippedRecord{Index: i, Reason: err.Error()})
			continue
		}
		records = append(records, indexedRecord{index: i, record: rec})
	}
	return records, skipped
}

// ingestRecordInTransaction wraps the upsert of a single record in a DB
// transaction, so a crash mid-batch leaves earlier records committed.
func (ing *Ingestor) ingestRecordInTransaction(ctx context.Context, platformID int64, rec *normalize.Record) error {
	tx, err := ing.dbpool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // Rollback is a no-op if the transaction is already committed.

	qtx := database.New(tx)
	if err := ing.ingestRecord(ctx, qtx, platformID, rec); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ingestRecord upserts the application row, its extension rows and its tool
// detections. External identity (platform, external_id) is never rewritten.
func (ing *Ingestor) ingestRecord(ctx context.Context, q database.Querier, platformID int64, rec *normalize.Record) error {
	app, err := ing.upsertApplication(ctx, q, platformID, rec)
	if err != nil {
		return err
	}

	if rec.GitHub != nil {
		if err := ing.upsertGithubRepository(ctx, q, app.ID, rec.GitHub); err != nil {
			return err
		}
	}
	if rec.Community != nil {
		if err := ing.upsertCommunityApp(ctx, q, app.ID, rec.Community); err != nil {
			return err
		}
	}

	return ing.applyDetections(ctx, q, app.ID, rec)
}

// upsertApplication resolves identity by (platform, external_id) and decides
// insert-vs-update. Updates touch only mutable fields.
func (ing *Ingestor) upsertApplication(ctx context.Context, q database.Querier, platformID int64, rec *normalize.Record) (database.Application, error) {
	existing, err := q.GetApplicationByExternalID(ctx, database.GetApplicationByExternalIDParams{
		PlatformID: platformID,
		ExternalID: rec.ExternalID,
	})

	if errors.Is(err, pgx.ErrNoRows) {
		var createdAt *time.Time
		if !rec.CreatedAt.IsZero() {
			t := rec.CreatedAt
			createdAt = &t
		}
		app, err := q.CreateApplication(ctx, database.CreateApplicationParams{
			PlatformID:  platformID,
			ExternalID:  rec.ExternalID,
			Name:        rec.Name,
			Url:         rec.URL,
			Description: rec.Description,
			CreatedAt:   createdAt,
		})
		if isUniqueViolation(err) {
			// The lookup raced another writer; the schema invariant caught it.
			return database.Application{}, &apperrors.DuplicateExternalIDError{
				Platform:   rec.Platform,
				ExternalID: rec.ExternalID,
			}
		}
		return app, err
	} else if err != nil {
		return database.Application{}, err
	}

	return q.UpdateApplication(ctx, database.UpdateApplicationParams{
		ID:          existing.ID,
		Name:        rec.Name,
		Url:         rec.URL,
		Description: rec.Description,
	})
}

func (ing *Ingestor) upsertGithubRepository(ctx context.Context, q database.Querier, appID int64, meta *normalize.GitHubMeta) error {
	existing, err := q.GetGithubRepositoryByRepoID(ctx, meta.RepoID)
	if errors.Is(err, pgx.ErrNoRows) {
		created, err := q.CreateGithubRepository(ctx, database.CreateGithubRepositoryParams{
			ApplicationID:   appID,
			RepoID:          meta.RepoID,
			FullName:        meta.FullName,
			OwnerLogin:      meta.OwnerLogin,
			Language:        meta.Language,
			DefaultBranch:   meta.DefaultBranch,
			StargazersCount: int32(meta.StargazersCount),
			ForksCount:      int32(meta.ForksCount),
			OpenIssuesCount: int32(meta.OpenIssuesCount),
			WatchersCount:   int32(meta.WatchersCount),
			Archived:        meta.Archived,
			RepoCreatedAt:   optionalTime(meta.RepoCreatedAt),
			RepoPushedAt:    optionalTime(meta.RepoPushedAt),
		})
		if err != nil {
			return err
		}
		existing = created
	} else if err != nil {
		return err
	} else {
		// repo_id is globally unique: the same repository surfaced again
		// (re-scrape, or a bot PR against an already-tracked repo) refreshes
		// metrics on the existing row.
		updated, err := q.UpdateGithubRepositoryMetrics(ctx, database.UpdateGithubRepositoryMetricsParams{
			ID:              existing.ID,
			Language:        meta.Language,
			StargazersCount: int32(meta.StargazersCount),
			ForksCount:      int32(meta.ForksCount),
			OpenIssuesCount: int32(meta.OpenIssuesCount),
			WatchersCount:   int32(meta.WatchersCount),
			Archived:        meta.Archived,
			RepoPushedAt:    optionalTime(meta.RepoPushedAt),
		})
		if err != nil {
			return err
		}
		existing = updated
	}

	for _, f := range meta.Files {
		if err := q.UpsertRepositoryFile(ctx, database.UpsertRepositoryFileParams{
			GithubRepositoryID: existing.ID,
			Name:               f.Name,
			Path:               f.Path,
			Sha:                f.Sha,
			HtmlUrl:            f.HTMLURL,
			FileType:           f.FileType,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (ing *Ingestor) upsertCommunityApp(ctx context.Context, q database.Querier, appID int64, meta *normalize.CommunityMeta) error {
	tags, _ := json.Marshal(meta.Tags)
	_, err := q.UpsertCommunityApp(ctx, database.UpsertCommunityAppParams{
		ApplicationID: appID,
		CommunityUrl:  meta.CommunityURL,
		CommunityID:   meta.CommunityID,
		Author:        meta.Author,
		Tags:          tags,
		ThumbnailUrl:  meta.ThumbnailURL,
		DemoUrl:       meta.DemoURL,
	})
	return err
}

// applyDetections runs the tagger and upserts one link row per detected tool.
func (ing *Ingestor) applyDetections(ctx context.Context, q database.Querier, appID int64, rec *normalize.Record) error {
	for _, det := range ing.tagger.Detect(rec) {
		tool, err := q.GetAiToolByName(ctx, det.Tool.Name)
		if errors.Is(err, pgx.ErrNoRows) {
			tool, err = q.CreateAiTool(ctx, database.CreateAiToolParams{
				Name:     det.Tool.Name,
				Category: det.Tool.Category,
				Provider: det.Tool.Provider,
			})
		}
		if err != nil {
			return err
		}

		if err := q.UpsertApplicationAiTool(ctx, database.UpsertApplicationAiToolParams{
			ApplicationID:   appID,
			AiToolID:        tool.ID,
			ConfidenceScore: det.Confidence,
			DetectionMethod: det.Method,
		}); err != nil {
			return err
		}
	}
	return nil
}

// failJob marks the job failed with the counts gathered so far. It uses a
// fresh context so cancellation of the batch does not lose the status write.
func (ing *Ingestor) failJob(jobID int64, result *BatchResult, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	q := database.New(ing.dbpool)
	if _, err := q.FailScrapingJob(ctx, database.FailScrapingJobParams{
		ID:             jobID,
		ItemsFound:     int32(result.ItemsFound),
		ItemsProcessed: int32(result.ItemsProcessed),
		ItemsSkipped:   int32(len(result.Skipped)),
		ErrorMessage:   message,
	}); err != nil {
		ing.logger.Error("Failed to mark job failed", "job_id", jobID, "error", err)
	}
}

// isRowLevel reports whether err affects a single record only. Unique
// violations (a colliding external id, repo id or community URL) are fatal
// for the record but not for the batch.
func isRowLevel(err error) bool {
	var dup *apperrors.DuplicateExternalIDError
	return errors.As(err, &dup) || isUniqueViolation(err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func joinReasons(skipped []SkippedRecord) string {
	if len(skipped) == 0 {
		return ""
	}
	reasons := make([]string, len(skipped))
	for i, s := range skipped {
		reasons[i] = fmt.Sprintf("record %d: %s", s.Index, s.Reason)
	}
	return strings.Join(reasons, "; ")
}
