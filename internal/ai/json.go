package ai

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ExtractJSON returns the first brace-delimited object in raw, spanning from the
// first "{" to the last "}". Markdown code fences are stripped first.
func ExtractJSON(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end < start {
		return "", false
	}

	return raw[start : end+1], true
}

// DecodeObject extracts and unmarshals the JSON object embedded in raw.
func DecodeObject(raw string) (map[string]any, error) {
	cleaned, ok := ExtractJSON(raw)
	if !ok {
		return nil, fmt.Errorf("no json object in response")
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse llm response: %w", err)
	}

	return data, nil
}

// CoerceFloat converts numbers and numeric strings. NaN means "not a number".
func CoerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// CoerceString renders v as a trimmed string. nil and the literal "null" are empty.
func CoerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		trimmed := strings.TrimSpace(val)
		if strings.EqualFold(trimmed, "null") {
			return ""
		}
		return trimmed
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

// CoerceStrings accepts a JSON array of strings or a comma separated string.
func CoerceStrings(v any) []string {
	var out []string
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			if s := CoerceString(item); s != "" {
				out = append(out, s)
			}
		}
	case []string:
		for _, item := range val {
			if s := strings.TrimSpace(item); s != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, item := range strings.Split(val, ",") {
			if s := strings.TrimSpace(item); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
