// internal/normalize/normalize.go
package normalize

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"time"

	apperrors "vibe-apps-aggregator/internal/errors"
	"vibe-apps-aggregator/internal/platform"
)

// Record is the canonical intermediate form every platform's raw records are
// mapped into before they reach the upsert engine.
type Record struct {
	Platform    string
	ExternalID  string
	Name        string
	URL         string
	Description string
	// CreatedAt is the platform-reported creation time; zero when unknown.
	CreatedAt time.Time

	GitHub    *GitHubMeta
	Community *CommunityMeta
}

// GitHubMeta is the extension payload for GitHub-sourced records.
type GitHubMeta struct {
	RepoID          int64
	FullName        string
	OwnerLogin      string
	Language        string
	DefaultBranch   string
	StargazersCount int
	ForksCount      int
	OpenIssuesCount int
	WatchersCount   int
	Archived        bool
	RepoCreatedAt   time.Time
	RepoPushedAt    time.Time
	Files           []FileMeta
}

// FileMeta describes one detected marker file (for example CLAUDE.md).
type FileMeta struct {
	Name     string
	Path     string
	Sha      string
	HTMLURL  string
	FileType string
}

// CommunityMeta is the extension payload for gallery-sourced records.
type CommunityMeta struct {
	CommunityURL string
	CommunityID  string
	Author       string
	Tags         []string
	ThumbnailURL string
	DemoURL      string
}

// Normalizer maps one platform's raw record shape into a Record.
type Normalizer interface {
	Platform() string
	Normalize(raw map[string]any) (*Record, error)
}

// Registry holds one normalizer per platform.
type Registry struct {
	byPlatform map[string]Normalizer
}

// NewRegistry builds a registry over the given normalizers. Registering two
// normalizers for the same platform is a programming error.
func NewRegistry(normalizers ...Normalizer) *Registry {
	r := &Registry{byPlatform: make(map[string]Normalizer, len(normalizers))}
	for _, n := range normalizers {
		if _, dup := r.byPlatform[n.Platform()]; dup {
			panic(fmt.Sprintf("normalize: duplicate normalizer for platform %s", n.Platform()))
		}
		r.byPlatform[n.Platform()] = n
	}
	return r
}

// Default returns a registry covering every known platform.
func Default() *Registry {
	return NewRegistry(
		&GitHubNormalizer{},
		&JulesNormalizer{},
		NewGalleryNormalizer(platform.V0),
		NewGalleryNormalizer(platform.Lovable),
		NewGalleryNormalizer(platform.Bolt),
	)
}

// Normalize dispatches raw to the platform's normalizer.
func (r *Registry) Normalize(platform string, raw map[string]any) (*Record, error) {
	n, ok := r.byPlatform[platform]
	if !ok {
		return nil, fmt.Errorf("normalize: no normalizer registered for platform %q", platform)
	}
	return n.Normalize(raw)
}

// Platforms lists the registered platform names.
func (r *Registry) Platforms() []string {
	names := make([]string, 0, len(r.byPlatform))
	for name := range r.byPlatform {
		names = append(names, name)
	}
	return names
}

var communityIDPattern = regexp.MustCompile(`/(?:community|projects?)/([^/?#]+)`)

// communityIDFromURL extracts the opaque community id from a gallery URL, or
// falls back to a hash of the URL when the path carries none.
func communityIDFromURL(rawURL string) string {
	if m := communityIDPattern.FindStringSubmatch(rawURL); m != nil {
		return m[1]
	}
	sum := sha256.Sum256([]byte(rawURL))
	return hex.EncodeToString(sum[:8])
}

func malformed(platform, reason string) error {
	return &apperrors.MalformedRecordError{Platform: platform, Reason: reason}
}

func str(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := raw[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func obj(raw map[string]any, key string) map[string]any {
	v, _ := raw[key].(map[string]any)
	return v
}

func integer(raw map[string]any, key string) int {
	switch v := raw[key].(type) {
	case float64: // encoding/json decodes numbers as float64
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

func boolean(raw map[string]any, key string) bool {
	v, _ := raw[key].(bool)
	return v
}

func timestamp(raw map[string]any, keys ...string) time.Time {
	for _, k := range keys {
		s, ok := raw[k].(string)
		if !ok || s == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func stringSlice(raw map[string]any, key string) []string {
	vs, ok := raw[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// truncate limits free-text fields to n runes, matching the store's intent of
// keeping descriptions short.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// parseRepoID renders a numeric repository id as a decimal external id.
func parseRepoID(raw map[string]any, key string) (string, int64, bool) {
	switch v := raw[key].(type) {
	case float64:
		if v <= 0 {
			return "", 0, false
		}
		id := int64(v)
		return strconv.FormatInt(id, 10), id, true
	case int64:
		if v <= 0 {
			return "", 0, false
		}
		return strconv.FormatInt(v, 10), v, true
	case int:
		if v <= 0 {
			return "", 0, false
		}
		return strconv.Itoa(v), int64(v), true
	}
	return "", 0, false
}
