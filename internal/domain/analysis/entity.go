package analysis

import "time"

// HistoryID identifier type
type HistoryID string

// Allowed seasonal palettes. The prompt instructs the model to pick one
// of these; the value is stored as returned, not structurally enforced.
const (
	PaletteAutumnWarm = "Autumn Warm"
	PaletteSpringWarm = "Spring Warm"
	PaletteSummerCool = "Summer Cool"
	PaletteWinterCool = "Winter Cool"
)

// History is one persisted analysis, owned by a single user. Written once
// on a successful analysis and never mutated afterwards.
type History struct {
	ID            HistoryID      `json:"id"`
	UserID        string         `json:"user_id"`
	ResultPalette string         `json:"result_palette"`
	AIResult      map[string]any `json:"ai_result,omitempty"`
	InputData     map[string]any `json:"input_data,omitempty"`
	Colors        []string       `json:"colors"`
	Notes         string         `json:"notes,omitempty"`
	ImageURL      string         `json:"image_url,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}
