// internal/database/scraping_jobs.go
package database

import "context"

const scrapingJobColumns = `id, platform_id, job_type, status, items_found, items_processed, items_skipped,
error_message, started_at, completed_at, created_at`

const createScrapingJob = `
INSERT INTO scraping_jobs (platform_id, job_type)
VALUES ($1, $2)
RETURNING ` + scrapingJobColumns

type CreateScrapingJobParams struct {
	PlatformID int64
	JobType    string
}

// CreateScrapingJob records a new pending ingestion run. Failed jobs are
// retried by creating a fresh job, never by mutating the failed one.
func (q *Queries) CreateScrapingJob(ctx context.Context, arg CreateScrapingJobParams) (ScrapingJob, error) {
	return scanScrapingJob(q.db.QueryRow(ctx, createScrapingJob, arg.PlatformID, arg.JobType))
}

const markScrapingJobRunning = `
UPDATE scraping_jobs
SET status = 'running', started_at = now()
WHERE id = $1 AND status = 'pending'
RETURNING ` + scrapingJobColumns

func (q *Queries) MarkScrapingJobRunning(ctx context.Context, id int64) (ScrapingJob, error) {
	return scanScrapingJob(q.db.QueryRow(ctx, markScrapingJobRunning, id))
}

const completeScrapingJob = `
UPDATE scraping_jobs
SET status = 'completed', items_found = $2, items_processed = $3, items_skipped = $4,
	error_message = $5, completed_at = now()
WHERE id = $1
RETURNING ` + scrapingJobColumns

type CompleteScrapingJobParams struct {
	ID             int64
	ItemsFound     int32
	ItemsProcessed int32
	ItemsSkipped   int32
	ErrorMessage   string
}

func (q *Queries) CompleteScrapingJob(ctx context.Context, arg CompleteScrapingJobParams) (ScrapingJob, error) {
	row := q.db.QueryRow(ctx, completeScrapingJob,
		arg.ID, arg.ItemsFound, arg.ItemsProcessed, arg.ItemsSkipped, arg.ErrorMessage)
	return scanScrapingJob(row)
}

const failScrapingJob = `
UPDATE scraping_jobs
SET status = 'failed', items_found = $2, items_processed = $3, items_skipped = $4,
	error_message = $5, completed_at = now()
WHERE id = $1
RETURNING ` + scrapingJobColumns

type FailScrapingJobParams struct {
	ID             int64
	ItemsFound     int32
	ItemsProcessed int32
	ItemsSkipped   int32
	ErrorMessage   string
}

func (q *Queries) FailScrapingJob(ctx context.Context, arg FailScrapingJobParams) (ScrapingJob, error) {
	row := q.db.QueryRow(ctx, failScrapingJob,
		arg.ID, arg.ItemsFound, arg.ItemsProcessed, arg.ItemsSkipped, arg.ErrorMessage)
	return scanScrapingJob(row)
}

const listRecentScrapingJobs = `
SELECT ` + scrapingJobColumns + `
FROM scraping_jobs
ORDER BY created_at DESC
LIMIT $1
`

func (q *Queries) ListRecentScrapingJobs(ctx context.Context, limit int32) ([]ScrapingJob, error) {
	rows, err := q.db.Query(ctx, listRecentScrapingJobs, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ScrapingJob
	for rows.Next() {
		var j ScrapingJob
		if err := rows.Scan(&j.ID, &j.PlatformID, &j.JobType, &j.Status, &j.ItemsFound,
			&j.ItemsProcessed, &j.ItemsSkipped, &j.ErrorMessage, &j.StartedAt, &j.CompletedAt, &j.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, j)
	}
	return items, rows.Err()
}

func scanScrapingJob(row interface{ Scan(...any) error }) (ScrapingJob, error) {
	var j ScrapingJob
	err := row.Scan(&j.ID, &j.PlatformID, &j.JobType, &j.Status, &j.ItemsFound,
		&j.ItemsProcessed, &j.ItemsSkipped, &j.ErrorMessage, &j.StartedAt, &j.CompletedAt, &j.CreatedAt)
	return j, err
}
