// internal/source/filedump.go
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileDump reads raw records for one platform from a JSON dump file produced
// by an external scraper. Two shapes are accepted: a bare array of objects,
// or an object with an "items" array (the GitHub search response envelope).
// An array of bare URL strings is lifted into {"url": ...} objects.
type FileDump struct {
	platform string
	path     string
}

func NewFileDump(platform, dataDir, filename string) *FileDump {
	return &FileDump{platform: platform, path: filepath.Join(dataDir, filename)}
}

func (f *FileDump) Platform() string { return f.platform }

func (f *FileDump) Fetch(_ context.Context) ([]map[string]any, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			// A missing dump file means the external scraper has not run;
			// the platform simply contributes nothing this cycle.
			return nil, nil
		}
		return nil, fmt.Errorf("read dump %s: %w", f.path, err)
	}

	var envelope struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Items != nil {
		return envelope.Items, nil
	}

	var list []any
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode dump %s: %w", f.path, err)
	}

	raws := make([]map[string]any, 0, len(list))
	for _, item := range list {
		switch v := item.(type) {
		case map[string]any:
			raws = append(raws, v)
		case string:
			raws = append(raws, map[string]any{"url": v})
		}
	}
	return raws, nil
}
