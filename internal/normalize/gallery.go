// internal/normalize/gallery.go
package normalize

import "fmt"

// GalleryNormalizer maps gallery-style records (v0.dev, lovable, bolt). These
// platforms expose no stable numeric id, so the external id is the community
// id extracted from the URL, falling back to a hash of the URL.
type GalleryNormalizer struct {
	platform string
}

func NewGalleryNormalizer(platform string) *GalleryNormalizer {
	return &GalleryNormalizer{platform: platform}
}

func (g *GalleryNormalizer) Platform() string { return g.platform }

func (g *GalleryNormalizer) Normalize(raw map[string]any) (*Record, error) {
	rawURL := str(raw, "url", "project_url", "link")
	if rawURL == "" {
		return nil, malformed(g.platform, "missing url")
	}

	communityID := str(raw, "community_id", "id")
	if communityID == "" {
		communityID = communityIDFromURL(rawURL)
	}

	name := str(raw, "name", "title")
	if name == "" {
		name = fmt.Sprintf("%s app %s", g.platform, communityID)
	}

	return &Record{
		Platform:    g.platform,
		ExternalID:  communityID,
		Name:        name,
		URL:         rawURL,
		Description: truncate(str(raw, "description", "summary"), 500),
		CreatedAt:   timestamp(raw, "created_at", "date"),
		Community: &CommunityMeta{
			CommunityURL: rawURL,
			CommunityID:  communityID,
			Author:       str(raw, "author", "creator"),
			Tags:         stringSlice(raw, "tags"),
			ThumbnailURL: str(raw, "thumbnail", "thumbnail_url"),
			DemoURL:      str(raw, "demo_url", "preview_url"),
		},
	}, nil
}
