// internal/export/export.go
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"vibe-apps-aggregator/internal/database"
)

// csvHeader is the column order of the flat CSV projection.
var csvHeader = []string{
	"id", "platform", "external_id", "name", "url", "description", "is_active",
	"created_at", "updated_at", "github_full_name", "github_language",
	"stargazers_count", "forks_count", "community_url", "community_author",
}

// WriteCSV writes the flat application projection as CSV, header first.
func WriteCSV(w io.Writer, rows []database.ApplicationExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			strconv.FormatInt(r.ID, 10),
			r.PlatformName,
			r.ExternalID,
			r.Name,
			r.Url,
			r.Description,
			strconv.FormatBool(r.IsActive),
			r.CreatedAt.UTC().Format(time.RFC3339),
			r.UpdatedAt.UTC().Format(time.RFC3339),
			deref(r.GithubFullName),
			deref(r.GithubLanguage),
			derefInt(r.StargazersCount),
			derefInt(r.ForksCount),
			deref(r.CommunityUrl),
			deref(r.CommunityAuthor),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Row is the JSON shape of one exported application.
type Row struct {
	ID              int64     `json:"id"`
	Platform        string    `json:"platform"`
	ExternalID      string    `json:"external_id"`
	Name            string    `json:"name"`
	URL             string    `json:"url"`
	Description     string    `json:"description"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	GithubFullName  *string   `json:"github_full_name,omitempty"`
	GithubLanguage  *string   `json:"github_language,omitempty"`
	StargazersCount *int32    `json:"stargazers_count,omitempty"`
	ForksCount      *int32    `json:"forks_count,omitempty"`
	CommunityURL    *string   `json:"community_url,omitempty"`
	CommunityAuthor *string   `json:"community_author,omitempty"`
}

// ToRows converts store projection rows to their JSON shape.
func ToRows(rows []database.ApplicationExportRow) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = Row{
			ID:              r.ID,
			Platform:        r.PlatformName,
			ExternalID:      r.ExternalID,
			Name:            r.Name,
			URL:             r.Url,
			Description:     r.Description,
			IsActive:        r.IsActive,
			CreatedAt:       r.CreatedAt,
			UpdatedAt:       r.UpdatedAt,
			GithubFullName:  r.GithubFullName,
			GithubLanguage:  r.GithubLanguage,
			StargazersCount: r.StargazersCount,
			ForksCount:      r.ForksCount,
			CommunityURL:    r.CommunityUrl,
			CommunityAuthor: r.CommunityAuthor,
		}
	}
	return out
}

// WriteJSON writes the flat application projection as a JSON array.
func WriteJSON(w io.Writer, rows []database.ApplicationExportRow) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToRows(rows))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int32) string {
	if n == nil {
		return ""
	}
	return strconv.FormatInt(int64(*n), 10)
}
