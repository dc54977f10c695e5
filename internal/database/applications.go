// internal/database/applications.go
package database

import (
	"context"
	"time"
)

const applicationColumns = `id, platform_id, external_id, name, url, description, is_active, created_at, updated_at, last_scraped_at`

const getApplicationByExternalID = `
SELECT ` + applicationColumns + `
FROM applications
WHERE platform_id = $1 AND external_id = $2
`

type GetApplicationByExternalIDParams struct {
	PlatformID int64
	ExternalID string
}

func (q *Queries) GetApplicationByExternalID(ctx context.Context, arg GetApplicationByExternalIDParams) (Application, error) {
	row := q.db.QueryRow(ctx, getApplicationByExternalID, arg.PlatformID, arg.ExternalID)
	return scanApplication(row)
}

const getApplication = `
SELECT ` + applicationColumns + `
FROM applications
WHERE id = $1
`

func (q *Queries) GetApplication(ctx context.Context, id int64) (Application, error) {
	return scanApplication(q.db.QueryRow(ctx, getApplication, id))
}

const createApplication = `
INSERT INTO applications (platform_id, external_id, name, url, description, created_at, last_scraped_at)
VALUES ($1, $2, $3, $4, $5, COALESCE($6, now()), now())
RETURNING ` + applicationColumns

type CreateApplicationParams struct {
	PlatformID  int64
	ExternalID  string
	Name        string
	Url         string
	Description string
	// CreatedAt carries the platform-reported creation time when the source
	// provides one; nil falls back to the insert time.
	CreatedAt *time.Time
}

func (q *Queries) CreateApplication(ctx context.Context, arg CreateApplicationParams) (Application, error) {
	row := q.db.QueryRow(ctx, createApplication,
		arg.PlatformID, arg.ExternalID, arg.Name, arg.Url, arg.Description, arg.CreatedAt)
	return scanApplication(row)
}

const updateApplication = `
UPDATE applications
SET name = $2, url = $3, description = $4, updated_at = now(), last_scraped_at = now()
WHERE id = $1
RETURNING ` + applicationColumns

type UpdateApplicationParams struct {
	ID          int64
	Name        string
	Url         string
	Description string
}

// UpdateApplication refreshes the mutable fields of an existing application.
// External identity (platform_id, external_id) is never touched.
func (q *Queries) UpdateApplication(ctx context.Context, arg UpdateApplicationParams) (Application, error) {
	row := q.db.QueryRow(ctx, updateApplication, arg.ID, arg.Name, arg.Url, arg.Description)
	return scanApplication(row)
}

const deactivateApplication = `
UPDATE applications SET is_active = FALSE, updated_at = now() WHERE id = $1
`

// DeactivateApplication soft-deletes an application. Extension rows stay
// queryable by join.
func (q *Queries) DeactivateApplication(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, deactivateApplication, id)
	return err
}

const deleteApplication = `
DELETE FROM applications WHERE id = $1
`

// DeleteApplication hard-deletes an application; extension and join rows go
// with it via ON DELETE CASCADE.
func (q *Queries) DeleteApplication(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, deleteApplication, id)
	return err
}

const countApplicationsByPlatform = `
SELECT COUNT(*) FROM applications WHERE platform_id = $1
`

func (q *Queries) CountApplicationsByPlatform(ctx context.Context, platformID int64) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countApplicationsByPlatform, platformID).Scan(&n)
	return n, err
}

func scanApplication(row interface{ Scan(...any) error }) (Application, error) {
	var a Application
	err := row.Scan(&a.ID, &a.PlatformID, &a.ExternalID, &a.Name, &a.Url,
		&a.Description, &a.IsActive, &a.CreatedAt, &a.UpdatedAt, &a.LastScrapedAt)
	return a, err
}
