package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPaletteAnalysisDeterministic(t *testing.T) {
	colors := []string{"#3B2219", "#C68642", "#8D5524"}

	a, err := BuildPaletteAnalysis(colors)
	require.NoError(t, err)
	b, err := BuildPaletteAnalysis(colors)
	require.NoError(t, err)

	assert.Equal(t, a, b, "same input must yield a byte-identical prompt")
}

func TestBuildPaletteAnalysisEmbedsColorsVerbatim(t *testing.T) {
	colors := []string{"#C68642", "#3B2219", "#C68642", "ivory"}

	p, err := BuildPaletteAnalysis(colors)
	require.NoError(t, err)

	// order preserved, duplicates kept
	assert.Contains(t, p, "#C68642, #3B2219, #C68642, ivory")
}

func TestBuildPaletteAnalysisListsAllPalettes(t *testing.T) {
	p, err := BuildPaletteAnalysis([]string{"#111111", "#222222", "#333333"})
	require.NoError(t, err)

	for _, palette := range []string{"Autumn Warm", "Spring Warm", "Summer Cool", "Winter Cool"} {
		assert.Contains(t, p, palette)
	}
	assert.Contains(t, p, `"palette_name"`)
	assert.Contains(t, p, `"tags"`)
	assert.Contains(t, p, `"recommendation"`)
}

func TestBuildPaletteAnalysisRejectsTooFewColors(t *testing.T) {
	for _, colors := range [][]string{nil, {}, {"#111111"}, {"#111111", "#222222"}} {
		_, err := BuildPaletteAnalysis(colors)
		assert.ErrorIs(t, err, ErrTooFewColors)
	}
}

func TestBuildPaletteAnalysisEndsInsideJSONRule(t *testing.T) {
	p, err := BuildPaletteAnalysis([]string{"#111111", "#222222", "#333333"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(p, "Do NOT add any text outside JSON."))
}
