// internal/tagger/tagger_test.go
package tagger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibe-apps-aggregator/internal/normalize"
	"vibe-apps-aggregator/internal/platform"
)

func detectionFor(detections []Detection, tool string) (Detection, bool) {
	for _, d := range detections {
		if d.Tool.Name == tool {
			return d, true
		}
	}
	return Detection{}, false
}

func TestTagger_Detect(t *testing.T) {
	tg := Default()

	t.Run("filename match wins over keyword match for the same tool", func(t *testing.T) {
		rec := &normalize.Record{
			Platform:    platform.GitHub,
			Description: "Built with claude assistance",
			GitHub: &normalize.GitHubMeta{
				Files: []normalize.FileMeta{{Name: "CLAUDE.md", Path: "CLAUDE.md"}},
			},
		}

		det, ok := detectionFor(tg.Detect(rec), "Claude")
		require.True(t, ok)
		assert.Equal(t, 0.9, det.Confidence)
		assert.Equal(t, MethodFilename, det.Method)
	})

	t.Run("platform-implied tool has full confidence", func(t *testing.T) {
		rec := &normalize.Record{Platform: platform.V0}

		det, ok := detectionFor(tg.Detect(rec), "v0")
		require.True(t, ok)
		assert.Equal(t, 1.0, det.Confidence)
		assert.Equal(t, MethodPlatform, det.Method)
	})

	t.Run("keyword match alone has low confidence", func(t *testing.T) {
		rec := &normalize.Record{
			Platform:    platform.GitHub,
			Description: "Dashboard scaffolded with Copilot",
		}

		det, ok := detectionFor(tg.Detect(rec), "Copilot")
		require.True(t, ok)
		assert.Equal(t, 0.4, det.Confidence)
		assert.Equal(t, MethodKeyword, det.Method)
	})

	t.Run("detects several distinct tools, one tuple each", func(t *testing.T) {
		rec := &normalize.Record{
			Platform:    platform.GitHub,
			Description: "Uses claude and gemini",
			GitHub: &normalize.GitHubMeta{
				Files: []normalize.FileMeta{{Name: "GEMINI.md", Path: "GEMINI.md"}},
			},
		}

		detections := tg.Detect(rec)
		claude, ok := detectionFor(detections, "Claude")
		require.True(t, ok)
		assert.Equal(t, 0.4, claude.Confidence)

		gemini, ok := detectionFor(detections, "Gemini")
		require.True(t, ok)
		assert.Equal(t, 0.9, gemini.Confidence)

		names := make(map[string]int)
		for _, d := range detections {
			names[d.Tool.Name]++
		}
		for name, count := range names {
			assert.Equal(t, 1, count, "tool %s detected more than once", name)
		}
	})

	t.Run("no match yields no detections", func(t *testing.T) {
		rec := &normalize.Record{
			Platform:    platform.GitHub,
			Description: "A plain old web shop",
		}
		assert.Empty(t, tg.Detect(rec))
	})

	t.Run("filename match is case insensitive", func(t *testing.T) {
		rec := &normalize.Record{
			Platform: platform.GitHub,
			GitHub: &normalize.GitHubMeta{
				Files: []normalize.FileMeta{{Name: "claude.md", Path: "docs/claude.md"}},
			},
		}

		det, ok := detectionFor(tg.Detect(rec), "Claude")
		require.True(t, ok)
		assert.Equal(t, 0.9, det.Confidence)
	})
}
