// internal/platform/platform.go
package platform

// Known platform names. Applications are keyed by (platform, external_id), so
// these strings are part of the store's identity contract.
const (
	GitHub  = "github.com"
	V0      = "v0.dev"
	Lovable = "lovable"
	Bolt    = "bolt"
	Jules   = "jules"
)

// Definition is the immutable reference data seeded into the platforms table.
type Definition struct {
	Name        string
	BaseURL     string
	Description string
}

// Seed returns the reference set of platforms. The list is loaded once at
// startup; additions afterwards are an explicit administrative action.
func Seed() []Definition {
	return []Definition{
		{Name: GitHub, BaseURL: "https://github.com", Description: "GitHub code search for AI agent marker files"},
		{Name: V0, BaseURL: "https://v0.dev", Description: "v0.dev community gallery"},
		{Name: Lovable, BaseURL: "https://lovable.dev", Description: "Lovable community projects"},
		{Name: Bolt, BaseURL: "https://bolt.new", Description: "Bolt.new gallery projects"},
		{Name: Jules, BaseURL: "https://github.com", Description: "Google Jules bot-authored pull requests"},
	}
}

// Known reports whether name is one of the seeded platforms.
func Known(name string) bool {
	for _, d := range Seed() {
		if d.Name == name {
			return true
		}
	}
	return false
}
