// internal/source/filedump_test.go
package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibe-apps-aggregator/internal/platform"
)

func writeDump(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestFileDump_Fetch(t *testing.T) {
	ctx := context.Background()

	t.Run("reads a bare array of objects", func(t *testing.T) {
		dir := t.TempDir()
		writeDump(t, dir, "v0.json", `[{"url": "https://v0.app/community/a"}, {"url": "https://v0.app/community/b"}]`)

		raws, err := NewFileDump(platform.V0, dir, "v0.json").Fetch(ctx)

		require.NoError(t, err)
		require.Len(t, raws, 2)
		assert.Equal(t, "https://v0.app/community/a", raws[0]["url"])
	})

	t.Run("unwraps an items envelope", func(t *testing.T) {
		dir := t.TempDir()
		writeDump(t, dir, "github.json", `{"total_count": 1, "items": [{"name": "CLAUDE.md"}]}`)

		raws, err := NewFileDump(platform.GitHub, dir, "github.json").Fetch(ctx)

		require.NoError(t, err)
		require.Len(t, raws, 1)
		assert.Equal(t, "CLAUDE.md", raws[0]["name"])
	})

	t.Run("lifts bare URL strings into objects", func(t *testing.T) {
		dir := t.TempDir()
		writeDump(t, dir, "bolt.json", `["https://bolt.new/~/one", "https://bolt.new/~/two"]`)

		raws, err := NewFileDump(platform.Bolt, dir, "bolt.json").Fetch(ctx)

		require.NoError(t, err)
		require.Len(t, raws, 2)
		assert.Equal(t, "https://bolt.new/~/one", raws[0]["url"])
	})

	t.Run("missing file yields no records and no error", func(t *testing.T) {
		raws, err := NewFileDump(platform.Lovable, t.TempDir(), "lovable.json").Fetch(ctx)

		require.NoError(t, err)
		assert.Nil(t, raws)
	})

	t.Run("invalid JSON is an error", func(t *testing.T) {
		dir := t.TempDir()
		writeDump(t, dir, "bad.json", `{not json`)

		_, err := NewFileDump(platform.Jules, dir, "bad.json").Fetch(ctx)

		assert.Error(t, err)
	})
}
