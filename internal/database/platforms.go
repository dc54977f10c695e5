// internal/database/platforms.go
package database

import "context"

const upsertPlatform = `
INSERT INTO platforms (name, base_url, description)
VALUES ($1, $2, $3)
ON CONFLICT (name) DO UPDATE SET base_url = EXCLUDED.base_url, description = EXCLUDED.description
RETURNING id, name, base_url, description, created_at
`

type UpsertPlatformParams struct {
	Name        string
	BaseUrl     string
	Description string
}

// UpsertPlatform seeds or refreshes one platform reference row.
func (q *Queries) UpsertPlatform(ctx context.Context, arg UpsertPlatformParams) (Platform, error) {
	row := q.db.QueryRow(ctx, upsertPlatform, arg.Name, arg.BaseUrl, arg.Description)
	var p Platform
	err := row.Scan(&p.ID, &p.Name, &p.BaseUrl, &p.Description, &p.CreatedAt)
	return p, err
}

const getPlatformByName = `
SELECT id, name, base_url, description, created_at
FROM platforms
WHERE name = $1
`

func (q *Queries) GetPlatformByName(ctx context.Context, name string) (Platform, error) {
	row := q.db.QueryRow(ctx, getPlatformByName, name)
	var p Platform
	err := row.Scan(&p.ID, &p.Name, &p.BaseUrl, &p.Description, &p.CreatedAt)
	return p, err
}

const listPlatforms = `
SELECT id, name, base_url, description, created_at
FROM platforms
ORDER BY name
`

func (q *Queries) ListPlatforms(ctx context.Context) ([]Platform, error) {
	rows, err := q.db.Query(ctx, listPlatforms)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Platform
	for rows.Next() {
		var p Platform
		if err := rows.Scan(&p.ID, &p.Name, &p.BaseUrl, &p.Description, &p.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
