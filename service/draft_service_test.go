package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"zpdraft-backend/models"
)

// stubGenerator records the prompts it was given and returns a canned response
type stubGenerator struct {
	response string
	err      error
	calls    int

	systemPrompt string
	userPrompt   string
}

func (s *stubGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	s.calls++
	s.systemPrompt = systemPrompt
	s.userPrompt = userPrompt
	return s.response, s.err
}

func fixedClock() time.Time {
	return time.Date(2026, time.August, 31, 10, 30, 0, 0, time.UTC)
}

func TestGenerateDraftHappyPath(t *testing.T) {
	gen := &stubGenerator{
		response: `{"facts": {"village": "Mul"}, "orderText": "order body"}`,
	}
	svc := NewDraftService(
		WithGenerator(gen),
		WithClock(fixedClock),
	)

	result, err := svc.GenerateDraft(context.Background(), map[string]interface{}{
		"applicantName": "Ramesh Patil",
		"caseText":      "case body",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gen.calls != 1 {
		t.Errorf("expected exactly one backend call, got %d", gen.calls)
	}
	if result.Result.OrderText == nil || *result.Result.OrderText != "order body" {
		t.Errorf("expected orderText, got %+v", result.Result)
	}
	if result.Record.Today != "31/08/2026" {
		t.Errorf("expected dd/mm/yyyy today, got %q", result.Record.Today)
	}
	if !strings.Contains(gen.userPrompt, "Ramesh Patil") {
		t.Error("expected applicant name rendered into the prompt")
	}
	if !strings.Contains(gen.systemPrompt, "Drafting Engine") {
		t.Error("expected the system prompt to be passed to the backend")
	}
}

func TestGenerateDraftNoGenerator(t *testing.T) {
	svc := NewDraftService()

	_, err := svc.GenerateDraft(context.Background(), nil)
	if !errors.Is(err, ErrGeneratorNotSet) {
		t.Errorf("expected ErrGeneratorNotSet, got %v", err)
	}
}

func TestGenerateDraftBackendError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("upstream unavailable")}
	svc := NewDraftService(WithGenerator(gen))

	_, err := svc.GenerateDraft(context.Background(), nil)
	if !errors.Is(err, ErrGenerationFailed) {
		t.Errorf("expected ErrGenerationFailed, got %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), "upstream unavailable") {
		t.Errorf("expected the backend error to be carried, got %v", err)
	}
}

func TestGenerateDraftEmptyBackendResponse(t *testing.T) {
	gen := &stubGenerator{response: "   "}
	svc := NewDraftService(WithGenerator(gen))

	_, err := svc.GenerateDraft(context.Background(), nil)
	if !errors.Is(err, ErrGenerationFailed) {
		t.Errorf("expected ErrGenerationFailed for empty response, got %v", err)
	}
}

func TestGenerateDraftDegradedStillSucceeds(t *testing.T) {
	gen := &stubGenerator{response: "I am unable to produce JSON today."}
	svc := NewDraftService(WithGenerator(gen))

	result, err := svc.GenerateDraft(context.Background(), nil)
	if err != nil {
		t.Fatalf("degraded extraction must not fail the pipeline: %v", err)
	}
	if result.Result.Raw == nil || *result.Result.Raw != gen.response {
		t.Errorf("expected raw fallback, got %+v", result.Result)
	}
}

func TestGenerateDraftSingleCallOnDegradation(t *testing.T) {
	// No retry on a malformed response; one request, one backend call.
	gen := &stubGenerator{response: "not json"}
	svc := NewDraftService(WithGenerator(gen))

	if _, err := svc.GenerateDraft(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if gen.calls != 1 {
		t.Errorf("expected one backend call, got %d", gen.calls)
	}
}

func TestGenerateDraftModeRouting(t *testing.T) {
	gen := &stubGenerator{
		response: `{"facts": {"village": "Mul"}, "decisionText": "d", "orderText": "o"}`,
	}
	svc := NewDraftService(WithGenerator(gen))

	result, err := svc.GenerateDraft(context.Background(), map[string]interface{}{
		"mode": "analyze",
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Record.Mode != models.ModeAnalyze {
		t.Errorf("expected analyze mode, got %s", result.Record.Mode)
	}
	if result.Result.OrderText != nil || result.Result.DecisionText != nil {
		t.Errorf("analyze mode must not carry drafted text, got %+v", result.Result)
	}
	if !strings.Contains(gen.userPrompt, "Extract the structured facts") {
		t.Error("expected the analyze task block in the prompt")
	}
}
