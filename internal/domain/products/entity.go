package products

import (
	"strings"
	"time"
)

// Product is a catalog entry carrying palette/tag metadata used for
// recommendation matching. The catalog itself is maintained elsewhere;
// this backend only reads it.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand,omitempty"`
	Price       int64     `json:"price"`
	ImageURL    string    `json:"image_url,omitempty"`
	Palette     string    `json:"palette,omitempty"`
	Tags        string    `json:"tags,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// MatchesAnyTag reports whether the tag field contains any of the given
// tags as a case-sensitive substring. SQL repos mirror this with LIKE.
func (p *Product) MatchesAnyTag(tags []string) bool {
	for _, t := range tags {
		if t != "" && strings.Contains(p.Tags, t) {
			return true
		}
	}
	return false
}

// MatchesPalette reports whether the palette field contains the palette
// name as a substring.
func (p *Product) MatchesPalette(palette string) bool {
	return palette != "" && strings.Contains(p.Palette, palette)
}
