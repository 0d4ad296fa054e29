package prompt

import (
	"errors"
	"fmt"
	"strings"
)

// MinColors is the smallest sample the analysis accepts.
const MinColors = 3

// ErrTooFewColors rejects samples below MinColors before any provider call.
var ErrTooFewColors = errors.New("prompt: at least 3 colors required")

const paletteTemplate = `You are a professional personal color analyst.

Input:
HEX skin-tone colors detected from a face image:
%s

Task:
Determine the MOST SUITABLE seasonal color palette.

You MUST choose ONLY ONE from:
- Autumn Warm
- Spring Warm
- Summer Cool
- Winter Cool

Rules:
- Analyze undertone (warm vs cool)
- Analyze brightness (light vs dark)
- Analyze contrast

Respond with VALID JSON ONLY in this format:

{
  "palette_name": "",
  "explanation": "",
  "tags": [],
  "recommendation": [{"title": "", "reason": ""}]
}

Keys:
- palette_name: the chosen palette, exactly as listed above
- explanation: short reasoning
- tags: lowercase keywords describing the palette
- recommendation: up to 3 styling suggestions, optional

Do NOT add any text outside JSON.`

// BuildPaletteAnalysis renders the instruction for one color sample.
// Pure: identical input always yields a byte-identical prompt. Colors are
// embedded verbatim, order preserved, no deduplication.
func BuildPaletteAnalysis(colors []string) (string, error) {
	if len(colors) < MinColors {
		return "", ErrTooFewColors
	}
	return fmt.Sprintf(paletteTemplate, strings.Join(colors, ", ")), nil
}
