// internal/database/community_apps.go
package database

import "context"

const communityAppColumns = `id, application_id, community_url, community_id, author, tags, thumbnail_url, demo_url`

const getCommunityAppByApplicationID = `
SELECT ` + communityAppColumns + `
FROM community_apps
WHERE application_id = $1
`

func (q *Queries) GetCommunityAppByApplicationID(ctx context.Context, applicationID int64) (CommunityApp, error) {
	return scanCommunityApp(q.db.QueryRow(ctx, getCommunityAppByApplicationID, applicationID))
}

const upsertCommunityApp = `
INSERT INTO community_apps (application_id, community_url, community_id, author, tags, thumbnail_url, demo_url)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (application_id) DO UPDATE SET
	author = EXCLUDED.author,
	tags = EXCLUDED.tags,
	thumbnail_url = EXCLUDED.thumbnail_url,
	demo_url = EXCLUDED.demo_url
RETURNING ` + communityAppColumns

type UpsertCommunityAppParams struct {
	ApplicationID int64
	CommunityUrl  string
	CommunityID   string
	Author        string
	Tags          []byte
	ThumbnailUrl  string
	DemoUrl       string
}

// UpsertCommunityApp creates or refreshes the gallery extension row for an
// application. community_url never changes once set: it is the row's natural key.
func (q *Queries) UpsertCommunityApp(ctx context.Context, arg UpsertCommunityAppParams) (CommunityApp, error) {
	tags := arg.Tags
	if tags == nil {
		tags = []byte("[]")
	}
	row := q.db.QueryRow(ctx, upsertCommunityApp,
		arg.ApplicationID, arg.CommunityUrl, arg.CommunityID, arg.Author, tags, arg.ThumbnailUrl, arg.DemoUrl)
	return scanCommunityApp(row)
}

func scanCommunityApp(row interface{ Scan(...any) error }) (CommunityApp, error) {
	var c CommunityApp
	err := row.Scan(&c.ID, &c.ApplicationID, &c.CommunityUrl, &c.CommunityID, &c.Author,
		&c.Tags, &c.ThumbnailUrl, &c.DemoUrl)
	return c, err
}
