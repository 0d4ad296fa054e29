package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResultStrictJSON(t *testing.T) {
	res := ParseResult(`{"paletteName":"Autumn Warm","tags":["earth"]}`)

	assert.Equal(t, "Autumn Warm", res.PaletteName)
	assert.Equal(t, []string{"earth"}, res.Tags)
	assert.False(t, res.Unparsed())
}

func TestParseResultSnakeCaseKey(t *testing.T) {
	res := ParseResult(`{"palette_name":"Summer Cool","explanation":"cool undertone","tags":["cool","soft"]}`)

	assert.Equal(t, "Summer Cool", res.PaletteName)
	assert.Equal(t, "cool undertone", res.Explanation)
	assert.Equal(t, []string{"cool", "soft"}, res.Tags)
}

func TestParseResultEmbeddedObject(t *testing.T) {
	res := ParseResult(`noise before {"paletteName":"Winter Cool"} noise after`)

	assert.Equal(t, "Winter Cool", res.PaletteName)
	assert.False(t, res.Unparsed())
}

func TestParseResultEmbeddedObjectSpansNewlines(t *testing.T) {
	text := "Sure, here is the result:\n```json\n{\n  \"palette_name\": \"Spring Warm\",\n  \"tags\": [\"bright\"]\n}\n```"
	res := ParseResult(text)

	assert.Equal(t, "Spring Warm", res.PaletteName)
	assert.Equal(t, []string{"bright"}, res.Tags)
}

func TestParseResultNonJSONFallsBackToRawText(t *testing.T) {
	res := ParseResult("sorry, I cannot comply")

	assert.True(t, res.Unparsed())
	assert.Equal(t, "sorry, I cannot comply", res.RawText)
	assert.Empty(t, res.PaletteName)
	assert.Equal(t, "sorry, I cannot comply", res.RawPayload())
}

func TestParseResultRecommendationCapped(t *testing.T) {
	res := ParseResult(`{"palette_name":"Autumn Warm","recommendation":[
		{"title":"a","reason":"ra"},
		{"title":"b","reason":"rb"},
		{"title":"c","reason":"rc"},
		{"title":"d","reason":"rd"}
	]}`)

	require.Len(t, res.Recommendation, 3)
	assert.Equal(t, Suggestion{Title: "a", Reason: "ra"}, res.Recommendation[0])
	assert.Equal(t, Suggestion{Title: "c", Reason: "rc"}, res.Recommendation[2])
}

func TestParseResultIgnoresWrongTypes(t *testing.T) {
	res := ParseResult(`{"palette_name":"Winter Cool","tags":"not-an-array","recommendation":{"title":"x"}}`)

	assert.Equal(t, "Winter Cool", res.PaletteName)
	assert.Nil(t, res.Tags)
	assert.Nil(t, res.Recommendation)
}

func TestParseResultMissingPalette(t *testing.T) {
	res := ParseResult(`{"explanation":"no palette today"}`)

	assert.Empty(t, res.PaletteName)
	assert.False(t, res.Unparsed())
	assert.NotNil(t, res.RawPayload())
}
