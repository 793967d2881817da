package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"zpdraft-backend/config"
	"zpdraft-backend/service"

	"github.com/gin-gonic/gin"
)

type stubGenerator struct {
	response string
	err      error
	calls    int
}

func (s *stubGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	s.calls++
	return s.response, s.err
}

func newTestRouter(gen *stubGenerator, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := service.NewDraftService(
		service.WithGenerator(gen),
		service.WithConfig(cfg),
	)
	handler := NewDraftHandler(svc, nil, cfg)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	r.GET("/api/generate", handler.Probe)
	r.POST("/api/generate", handler.Generate)
	r.GET("/api/drafts/generate", handler.Probe)
	r.POST("/api/drafts/generate", handler.GenerateDraft)

	return r
}

func testConfig() *config.Config {
	return &config.Config{
		Provider:       config.ProviderGemini,
		GeminiAPIKey:   "test-key",
		GeminiModel:    "gemini-2.5-pro",
		CaseTextLimit:  7000,
		GRTextLimit:    7000,
		LegalTextLimit: 4000,
		AppealPolicy:   config.AppealFlat,
	}
}

func TestProbe(t *testing.T) {
	router := newTestRouter(&stubGenerator{}, testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/generate", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["ok"] != true {
		t.Errorf("expected {ok: true}, got %v", body)
	}
}

func TestWrongMethodReturns405(t *testing.T) {
	router := newTestRouter(&stubGenerator{}, testConfig())

	for _, method := range []string{http.MethodPut, http.MethodDelete, http.MethodPatch} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(method, "/api/generate", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s: expected 405, got %d", method, w.Code)
		}
	}
}

func TestGenerateMissingCredential(t *testing.T) {
	gen := &stubGenerator{response: `{"orderText": "o"}`}
	cfg := testConfig()
	cfg.GeminiAPIKey = ""
	router := newTestRouter(gen, cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if gen.calls != 0 {
		t.Errorf("credential check must precede the backend call, got %d calls", gen.calls)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["error"] != "Server configuration error" {
		t.Errorf("unexpected error body: %v", body)
	}
}

func TestGenerateLegacyContract(t *testing.T) {
	gen := &stubGenerator{
		response: `{"facts": {"village": "Mul"}, "orderText": "आदेश मजकूर"}`,
	}
	router := newTestRouter(gen, testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/generate",
		strings.NewReader(`{"language": "mr", "mode": "order", "applicantName": "Ramesh"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["title"] != "आदेश" {
		t.Errorf("expected marathi order title, got %q", body["title"])
	}
	if body["content"] != "आदेश मजकूर" {
		t.Errorf("expected order text as content, got %q", body["content"])
	}
}

func TestGenerateLegacyEnglishDecisionTitle(t *testing.T) {
	gen := &stubGenerator{
		response: `{"decisionText": "decision body"}`,
	}
	router := newTestRouter(gen, testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/generate",
		strings.NewReader(`{"language": "en", "mode": "decision"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["title"] != "Decision" {
		t.Errorf("expected Decision title, got %q", body["title"])
	}
	if body["content"] != "decision body" {
		t.Errorf("expected decision text as content, got %q", body["content"])
	}
}

func TestGenerateDegradedStillOK(t *testing.T) {
	gen := &stubGenerator{response: "plain refusal text"}
	router := newTestRouter(gen, testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/drafts/generate", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("degraded extraction must still answer 200, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["raw"] != "plain refusal text" {
		t.Errorf("expected raw fallback in body, got %v", body)
	}
}

func TestGenerateEmptyBodyIsValid(t *testing.T) {
	gen := &stubGenerator{response: `{"orderText": "o"}`}
	router := newTestRouter(gen, testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/generate", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("empty body must default every field, got %d: %s", w.Code, w.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	// Defaults: Marathi order.
	if body["title"] != "आदेश" {
		t.Errorf("expected default marathi order title, got %q", body["title"])
	}
}

func TestGenerateBackendFailure(t *testing.T) {
	gen := &stubGenerator{err: context.DeadlineExceeded}
	router := newTestRouter(gen, testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/drafts/generate", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on backend failure, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["error"] != "Failed to generate draft" {
		t.Errorf("unexpected error body: %v", body)
	}
}
