package middleware

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

// ValidationError carries field-level detail for 4xx responses.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const (
	MinColors = 3
	MaxColors = 32
	// accepts #RGB, #RRGGBB or a short named color
	maxNamedColorLen = 32
	MaxNotesLen      = 1000
)

var hexColorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
var namedColorPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9 -]*$`)

// ValidateColors checks the submitted color sample: at least MinColors
// entries, each a hex code or a named color.
func ValidateColors(colors []string) error {
	if len(colors) < MinColors {
		return &ValidationError{Field: "colors", Message: fmt.Sprintf("at least %d colors required", MinColors)}
	}
	if len(colors) > MaxColors {
		return &ValidationError{Field: "colors", Message: fmt.Sprintf("at most %d colors allowed", MaxColors)}
	}
	for i, c := range colors {
		c = strings.TrimSpace(c)
		if c == "" {
			return &ValidationError{Field: "colors", Message: fmt.Sprintf("entry %d is empty", i)}
		}
		if hexColorPattern.MatchString(c) {
			continue
		}
		if len(c) <= maxNamedColorLen && namedColorPattern.MatchString(c) {
			continue
		}
		return &ValidationError{Field: "colors", Message: fmt.Sprintf("entry %d is not a color code: %q", i, c)}
	}
	return nil
}

// ValidateNotes bounds the optional notes field.
func ValidateNotes(notes string) error {
	if len(notes) > MaxNotesLen {
		return &ValidationError{Field: "notes", Message: fmt.Sprintf("at most %d characters", MaxNotesLen)}
	}
	return nil
}

// ValidateImageURL checks the optional image reference.
func ValidateImageURL(rawURL string) error {
	if rawURL == "" {
		return nil // optional field
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "image_url", Message: "invalid URL format"}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ValidationError{Field: "image_url", Message: fmt.Sprintf("invalid scheme: %s (allowed: http, https)", u.Scheme)}
	}
	return nil
}

var historyIDPattern = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`)

// ValidateHistoryID validates history record id format (uuid)
func ValidateHistoryID(id string) error {
	if !historyIDPattern.MatchString(id) {
		return &ValidationError{Field: "id", Message: "invalid history id format"}
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateLimit clamps the pagination limit. Default 50 (same as the
// repository fallbacks), hard cap 100.
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	if limit > 100 {
		return 100
	}
	return limit
}
