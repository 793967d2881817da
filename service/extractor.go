package service

import (
	"encoding/json"
	"errors"
	"strings"

	"zpdraft-backend/models"
)

// ErrEmptyResponse marks a backend that returned nothing usable
var ErrEmptyResponse = errors.New("model returned an empty response")

// modelPayload is the JSON shape the system prompt asks the backend to emit
type modelPayload struct {
	Facts        *models.Facts `json:"facts"`
	DecisionText *string       `json:"decisionText"`
	OrderText    *string       `json:"orderText"`
}

// ExtractDraftResult parses raw backend text into a DraftResult.
//
// Generative backends do not reliably honor "return only JSON", so parsing is
// staged: the full (fence-stripped) text first, then the substring from the
// first '{' to the last '}' as a best-effort heuristic for JSON wrapped in
// prose. When both attempts fail the raw text is returned as a degraded but
// non-fatal result so a reviewer can still salvage the drafted text.
func ExtractDraftResult(raw string, mode models.DraftMode) (*models.DraftResult, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, ErrEmptyResponse
	}

	payload, ok := parsePayload(stripCodeFence(trimmed))
	if !ok {
		payload, ok = parsePayload(braceSubstring(trimmed))
	}
	if !ok {
		return &models.DraftResult{Raw: &trimmed}, nil
	}

	result := &models.DraftResult{Facts: payload.Facts}
	switch mode {
	case models.ModeAnalyze:
		// facts only, never drafted text
	case models.ModeDecision:
		result.DecisionText = payload.DecisionText
	default:
		result.OrderText = payload.OrderText
	}

	// A parse that produced none of the expected content is no better than a
	// failed parse; fall back to the raw text.
	if result.Facts == nil && result.DecisionText == nil && result.OrderText == nil {
		return &models.DraftResult{Raw: &trimmed}, nil
	}

	return result, nil
}

func parsePayload(candidate string) (*modelPayload, bool) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" || !strings.HasPrefix(candidate, "{") {
		return nil, false
	}
	var payload modelPayload
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return nil, false
	}
	return &payload, true
}

// stripCodeFence unwraps a ```json ... ``` block when the whole response is
// one fenced snippet
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	body := strings.TrimPrefix(s, "```json")
	body = strings.TrimPrefix(body, "```")
	if idx := strings.LastIndex(body, "```"); idx >= 0 {
		body = body[:idx]
	}
	return strings.TrimSpace(body)
}

// braceSubstring cuts from the first '{' to the last '}'. Best effort only:
// no pattern match can guarantee correctness against arbitrary generative
// text, which is why the raw fallback above always remains.
func braceSubstring(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
