// internal/export/export_test.go
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibe-apps-aggregator/internal/database"
)

func sampleRows() []database.ApplicationExportRow {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	updated := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	fullName := "acme/shop"
	language := "TypeScript"
	stars := int32(42)
	author := "acme"
	communityURL := "https://v0.app/community/shop"

	return []database.ApplicationExportRow{
		{
			ID:              1,
			PlatformName:    "github.com",
			ExternalID:      "98765",
			Name:            "acme/shop",
			Url:             "https://github.com/acme/shop",
			Description:     "a shop, \"vibe coded\"",
			IsActive:        true,
			CreatedAt:       created,
			UpdatedAt:       updated,
			GithubFullName:  &fullName,
			GithubLanguage:  &language,
			StargazersCount: &stars,
		},
		{
			ID:              2,
			PlatformName:    "v0.dev",
			ExternalID:      "shop",
			Name:            "shop",
			Url:             "https://v0.app/community/shop",
			IsActive:        false,
			CreatedAt:       created,
			UpdatedAt:       updated,
			CommunityUrl:    &communityURL,
			CommunityAuthor: &author,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRows()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, csvHeader, records[0])

	github := records[1]
	assert.Equal(t, "1", github[0])
	assert.Equal(t, "github.com", github[1])
	assert.Equal(t, "98765", github[2])
	assert.Equal(t, "a shop, \"vibe coded\"", github[5])
	assert.Equal(t, "true", github[6])
	assert.Equal(t, "2025-06-01T12:00:00Z", github[7])
	assert.Equal(t, "acme/shop", github[9])
	assert.Equal(t, "42", github[11])
	// No community extension: those cells stay empty.
	assert.Equal(t, "", github[13])
	assert.Equal(t, "", github[14])

	community := records[2]
	assert.Equal(t, "false", community[6])
	assert.Equal(t, "", community[9])
	assert.Equal(t, "", community[11])
	assert.Equal(t, "https://v0.app/community/shop", community[13])
	assert.Equal(t, "acme", community[14])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1) // header only
	assert.Equal(t, csvHeader, records[0])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleRows()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)

	assert.Equal(t, "github.com", decoded[0]["platform"])
	assert.Equal(t, "acme/shop", decoded[0]["github_full_name"])
	assert.Equal(t, float64(42), decoded[0]["stargazers_count"])
	// Absent extensions are omitted, not null.
	assert.NotContains(t, decoded[0], "community_url")

	assert.Equal(t, false, decoded[1]["is_active"])
	assert.Equal(t, "acme", decoded[1]["community_author"])
	assert.NotContains(t, decoded[1], "github_full_name")
}
