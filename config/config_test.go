package config

import "testing"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LLM_PROVIDER", "GEMINI_API_KEY", "GEMINI_MODEL",
		"OLLAMA_HOST", "OLLAMA_MODEL", "LLM_TEMPERATURE", "LLM_TOP_P",
		"LLM_MAX_OUTPUT_TOKENS", "CASE_TEXT_LIMIT", "GR_TEXT_LIMIT",
		"LEGAL_TEXT_LIMIT", "APPEAL_POLICY", "DATABASE_URL",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Provider != ProviderGemini {
		t.Errorf("expected default provider gemini, got %s", cfg.Provider)
	}
	if cfg.GeminiModel != "gemini-2.5-pro" {
		t.Errorf("unexpected default model %s", cfg.GeminiModel)
	}
	if cfg.Temperature != 0.2 || cfg.TopP != 0.9 {
		t.Errorf("unexpected sampling defaults: %v / %v", cfg.Temperature, cfg.TopP)
	}
	if cfg.CaseTextLimit != 7000 || cfg.GRTextLimit != 7000 || cfg.LegalTextLimit != 4000 {
		t.Errorf("unexpected text limits: %d/%d/%d", cfg.CaseTextLimit, cfg.GRTextLimit, cfg.LegalTextLimit)
	}
	if cfg.AppealPolicy != AppealFlat {
		t.Errorf("expected flat appeal policy, got %s", cfg.AppealPolicy)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("OLLAMA_MODEL", "mistral")
	t.Setenv("CASE_TEXT_LIMIT", "5000")
	t.Setenv("APPEAL_POLICY", "two-tier")

	cfg := Load()

	if cfg.Provider != ProviderOllama {
		t.Errorf("expected ollama provider, got %s", cfg.Provider)
	}
	if cfg.Model() != "mistral" {
		t.Errorf("expected ollama model selected, got %s", cfg.Model())
	}
	if cfg.CaseTextLimit != 5000 {
		t.Errorf("expected overridden limit, got %d", cfg.CaseTextLimit)
	}
	if cfg.AppealPolicy != AppealTwoTier {
		t.Errorf("expected two-tier appeal policy, got %s", cfg.AppealPolicy)
	}
}

func TestLoadUnknownValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("APPEAL_POLICY", "three-tier")
	t.Setenv("CASE_TEXT_LIMIT", "not-a-number")

	cfg := Load()

	if cfg.Provider != ProviderGemini {
		t.Errorf("unknown provider must fall back to gemini, got %s", cfg.Provider)
	}
	if cfg.AppealPolicy != AppealFlat {
		t.Errorf("unknown policy must fall back to flat, got %s", cfg.AppealPolicy)
	}
	if cfg.CaseTextLimit != 7000 {
		t.Errorf("unparsable limit must fall back, got %d", cfg.CaseTextLimit)
	}
}

func TestCredentialMissing(t *testing.T) {
	tests := []struct {
		provider Provider
		key      string
		want     bool
	}{
		{ProviderGemini, "", true},
		{ProviderGemini, "key", false},
		{ProviderOllama, "", false},
	}

	for _, tt := range tests {
		cfg := &Config{Provider: tt.provider, GeminiAPIKey: tt.key}
		if got := cfg.CredentialMissing(); got != tt.want {
			t.Errorf("provider=%s key=%q: expected %v, got %v", tt.provider, tt.key, tt.want, got)
		}
	}
}
