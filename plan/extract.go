package plan

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/planforge/homeplan/core"
)

// fence is the triple-backtick marker models commonly wrap JSON in
const fence = "```"

// Extract recovers a Plan from raw backend text. Models rarely return bare
// JSON: the object may be wrapped in narrative text, fenced code blocks, or
// carry a language tag. The recovery steps, first success wins:
//
//  1. Trim surrounding whitespace.
//  2. If the text contains a fence marker, split on it and select the first
//     segment containing an opening brace, stripping a leading "json" tag.
//     Later segments are never inspected, even if they also hold JSON.
//  3. Take the substring from the first '{' to the last '}' in the selected
//     segment (or the whole text when unfenced) as the candidate body.
//  4. Strictly parse the candidate. No repair heuristics are applied: no
//     quote fixing, no trailing-comma removal.
//
// The outer-brace match is intentionally greedy rather than balance-aware.
// An input with a stray '}' after the real object produces a candidate that
// fails to parse and routes the caller to the local fallback; that is the
// documented behavior, not a defect to patch here.
//
// All failure paths wrap core.ErrExtractionFailed. On success the plan is
// normalized but not shape-validated: missing keys become empty values.
func Extract(raw string) (*Plan, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, fmt.Errorf("empty response text: %w", core.ErrExtractionFailed)
	}

	segment := text
	if strings.Contains(text, fence) {
		segment = ""
		for _, part := range strings.Split(text, fence) {
			if !strings.Contains(part, "{") {
				continue
			}
			part = strings.TrimSpace(part)
			// language tag from blocks like ```json
			part = strings.TrimPrefix(part, "json")
			segment = strings.TrimSpace(part)
			break
		}
		if segment == "" {
			return nil, fmt.Errorf("no fenced segment contains an object: %w", core.ErrExtractionFailed)
		}
	}

	start := strings.Index(segment, "{")
	end := strings.LastIndex(segment, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no brace-delimited region found: %w", core.ErrExtractionFailed)
	}
	candidate := segment[start : end+1]

	var p Plan
	if err := json.Unmarshal([]byte(candidate), &p); err != nil {
		return nil, fmt.Errorf("candidate region is not valid JSON (%v): %w", err, core.ErrExtractionFailed)
	}

	p.Normalize()
	return &p, nil
}
