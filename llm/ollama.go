package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
	"github.com/ollama/ollama/envconfig"
)

// OllamaGenerator generates text through a local Ollama instance
type OllamaGenerator struct {
	client *api.Client
	opts   Options
}

// NewOllamaGenerator creates an Ollama-backed generator. An empty host falls
// back to the OLLAMA_HOST environment default.
func NewOllamaGenerator(host string, opts Options) (*OllamaGenerator, error) {
	hostURL := envconfig.Host()
	if host != "" {
		parsed, err := url.Parse(host)
		if err != nil {
			return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
		}
		hostURL = parsed
	}
	client := api.NewClient(hostURL, http.DefaultClient)

	return &OllamaGenerator{
		client: client,
		opts:   opts,
	}, nil
}

// Generate performs a single generation call, accumulating the streamed
// response into one text blob
func (o *OllamaGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	req := api.GenerateRequest{
		Model:  o.opts.Model,
		Prompt: userPrompt,
		System: systemPrompt,
		Options: map[string]interface{}{
			"temperature": o.opts.Temperature,
			"top_p":       o.opts.TopP,
			"num_predict": o.opts.MaxOutputTokens,
		},
	}

	var text strings.Builder
	err := o.client.Generate(ctx, &req, func(resp api.GenerateResponse) error {
		_, err := text.WriteString(resp.Response)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("ollama generation failed: %w", err)
	}

	if text.Len() == 0 {
		return "", ErrNoContent
	}

	return text.String(), nil
}
