// internal/database/ai_tools.go
package database

import "context"

const getAiToolByName = `
SELECT id, name, category, provider
FROM ai_tools
WHERE name = $1
`

func (q *Queries) GetAiToolByName(ctx context.Context, name string) (AiTool, error) {
	row := q.db.QueryRow(ctx, getAiToolByName, name)
	var t AiTool
	err := row.Scan(&t.ID, &t.Name, &t.Category, &t.Provider)
	return t, err
}

const createAiTool = `
INSERT INTO ai_tools (name, category, provider)
VALUES ($1, $2, $3)
ON CONFLICT (name) DO UPDATE SET category = EXCLUDED.category, provider = EXCLUDED.provider
RETURNING id, name, category, provider
`

type CreateAiToolParams struct {
	Name     string
	Category string
	Provider string
}

func (q *Queries) CreateAiTool(ctx context.Context, arg CreateAiToolParams) (AiTool, error) {
	row := q.db.QueryRow(ctx, createAiTool, arg.Name, arg.Category, arg.Provider)
	var t AiTool
	err := row.Scan(&t.ID, &t.Name, &t.Category, &t.Provider)
	return t, err
}

const upsertApplicationAiTool = `
INSERT INTO application_ai_tools (application_id, ai_tool_id, confidence_score, detection_method)
VALUES ($1, $2, $3, $4)
ON CONFLICT (application_id, ai_tool_id) DO UPDATE SET
	confidence_score = EXCLUDED.confidence_score,
	detection_method = EXCLUDED.detection_method,
	detected_at = now()
`

type UpsertApplicationAiToolParams struct {
	ApplicationID   int64
	AiToolID        int64
	ConfidenceScore float64
	DetectionMethod string
}

// UpsertApplicationAiTool records a detection. Re-detection updates the stored
// confidence and method instead of duplicating the (application, tool) pair.
func (q *Queries) UpsertApplicationAiTool(ctx context.Context, arg UpsertApplicationAiToolParams) error {
	_, err := q.db.Exec(ctx, upsertApplicationAiTool,
		arg.ApplicationID, arg.AiToolID, arg.ConfidenceScore, arg.DetectionMethod)
	return err
}

const getApplicationAiTool = `
SELECT id, application_id, ai_tool_id, confidence_score, detection_method, detected_at
FROM application_ai_tools
WHERE application_id = $1 AND ai_tool_id = $2
`

type GetApplicationAiToolParams struct {
	ApplicationID int64
	AiToolID      int64
}

func (q *Queries) GetApplicationAiTool(ctx context.Context, arg GetApplicationAiToolParams) (ApplicationAiTool, error) {
	row := q.db.QueryRow(ctx, getApplicationAiTool, arg.ApplicationID, arg.AiToolID)
	var l ApplicationAiTool
	err := row.Scan(&l.ID, &l.ApplicationID, &l.AiToolID, &l.ConfidenceScore, &l.DetectionMethod, &l.DetectedAt)
	return l, err
}
