package products

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesAnyTag(t *testing.T) {
	p := &Product{Tags: "earth,warm,terracotta"}

	assert.True(t, p.MatchesAnyTag([]string{"earth"}))
	assert.True(t, p.MatchesAnyTag([]string{"missing", "warm"}), "OR across tags")
	assert.True(t, p.MatchesAnyTag([]string{"terra"}), "substring match")
	assert.False(t, p.MatchesAnyTag([]string{"Earth"}), "case sensitive")
	assert.False(t, p.MatchesAnyTag([]string{"cool"}))
	assert.False(t, p.MatchesAnyTag(nil))
	assert.False(t, p.MatchesAnyTag([]string{""}), "empty tag never matches")
}

func TestMatchesPalette(t *testing.T) {
	p := &Product{Palette: "Autumn Warm Deluxe"}

	assert.True(t, p.MatchesPalette("Autumn Warm"), "substring match")
	assert.True(t, p.MatchesPalette("Deluxe"))
	assert.False(t, p.MatchesPalette("Winter Cool"))
	assert.False(t, p.MatchesPalette(""))
}
