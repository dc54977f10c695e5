// internal/source/source.go
package source

import "context"

// Source produces raw per-platform records for one platform. The records are
// opaque key-value structures; the normalizer owns their interpretation.
type Source interface {
	Platform() string
	Fetch(ctx context.Context) ([]map[string]any, error)
}
