package ai

import (
	"encoding/json"
	"strings"
)

const maxSuggestions = 3

// Suggestion is one {title, reason} pair from the model's optional
// recommendation list.
type Suggestion struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// Result is the normalized model output. Only PaletteName is contractually
// required; everything else is best effort. Raw keeps the decoded payload
// for auditing; RawText is set instead when the text never parsed.
type Result struct {
	PaletteName    string
	Explanation    string
	Tags           []string
	Recommendation []Suggestion
	Raw            map[string]any
	RawText        string
}

// Unparsed reports whether the model text never yielded a JSON object.
func (r *Result) Unparsed() bool { return r.Raw == nil }

// RawPayload returns whichever payload is available for diagnostics.
func (r *Result) RawPayload() any {
	if r.Raw != nil {
		return r.Raw
	}
	return r.RawText
}

// ParseResult coerces raw model text into a Result. Strict JSON parse of
// the whole string first, then the first balanced {...} span (greedy,
// spans newlines). When both fail the original text is kept as RawText so
// the caller can still decide what to do with it.
func ParseResult(text string) *Result {
	obj := decodeObject(text)
	if obj == nil {
		if inner := widestObjectSpan(text); inner != "" {
			obj = decodeObject(inner)
		}
	}
	if obj == nil {
		return &Result{RawText: text}
	}

	res := &Result{Raw: obj}
	res.PaletteName = stringField(obj, "palette_name", "paletteName")
	res.Explanation = stringField(obj, "explanation")
	res.Tags = stringSlice(obj["tags"])
	res.Recommendation = suggestions(obj["recommendation"])
	return res
}

func decodeObject(s string) map[string]any {
	var obj map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &obj); err != nil {
		return nil
	}
	return obj
}

// widestObjectSpan returns the first opening brace through the last
// closing brace. Greedy on purpose, same as a /{.*}/s match.
func widestObjectSpan(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

func stringField(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := obj[k].(string); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func stringSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, it := range arr {
		if s, ok := it.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func suggestions(v any) []Suggestion {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []Suggestion
	for _, it := range arr {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		s := Suggestion{
			Title:  stringField(m, "title"),
			Reason: stringField(m, "reason"),
		}
		if s.Title == "" && s.Reason == "" {
			continue
		}
		out = append(out, s)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
