package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiGenerator generates text through the Gemini API
type GeminiGenerator struct {
	client *genai.Client
	opts   Options
}

// NewGeminiGenerator creates a Gemini-backed generator
func NewGeminiGenerator(ctx context.Context, apiKey string, opts Options) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{
		client: client,
		opts:   opts,
	}, nil
}

// Generate performs a single generation call and unwraps the candidate parts
// to plain text
func (g *GeminiGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	model := g.client.GenerativeModel(g.opts.Model)
	model.SetTemperature(g.opts.Temperature)
	model.SetTopP(g.opts.TopP)
	if g.opts.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(g.opts.MaxOutputTokens)
	}
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
		return "", fmt.Errorf("%w: %s", ErrBlocked, resp.PromptFeedback.BlockReason)
	}

	if len(resp.Candidates) == 0 {
		return "", ErrNoContent
	}

	var text strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text.WriteString(string(t))
			}
		}
	}

	if text.Len() == 0 {
		return "", ErrNoContent
	}

	return text.String(), nil
}

// Close releases the underlying client
func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}
