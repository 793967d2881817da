package llm

import (
	"context"
	"errors"
)

// Options holds the sampling parameters for a generation call. Temperature is
// kept low for factual consistency in legal drafting.
type Options struct {
	Model           string
	Temperature     float32
	TopP            float32
	MaxOutputTokens int32
}

// Generator is the single capability the drafting pipeline needs from a
// backend: one prompt pair in, one text blob out. One call per request; no
// automatic retry, failures propagate to the caller.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

var (
	ErrNoContent = errors.New("model returned no content")
	ErrBlocked   = errors.New("model blocked the prompt")
)
