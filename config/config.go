package config

import (
	"os"
	"strconv"
)

// Provider identifies the generation backend
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOllama Provider = "ollama"
)

// AppealPolicy selects the appeal clause rendered into orders. The timelines
// are a jurisdictional choice, so they are configured rather than hard-coded.
type AppealPolicy string

const (
	// AppealFlat: 60 days to the competent appellate authority
	AppealFlat AppealPolicy = "flat"
	// AppealTwoTier: 30 days to the divisional authority, then 60 days to the state
	AppealTwoTier AppealPolicy = "two-tier"
)

// Config is the process-wide immutable configuration, loaded once at startup
// and passed explicitly into handlers and services.
type Config struct {
	Port string

	Provider     Provider
	GeminiAPIKey string
	GeminiModel  string
	OllamaHost   string
	OllamaModel  string

	Temperature     float32
	TopP            float32
	MaxOutputTokens int32

	// Hard caps applied to source texts before prompt inclusion
	CaseTextLimit  int
	GRTextLimit    int
	LegalTextLimit int

	AppealPolicy AppealPolicy

	DatabaseURL string

	LogLevel  string
	LogFormat string
}

// Load builds a Config from environment variables with defaults
func Load() *Config {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Provider:        Provider(getEnv("LLM_PROVIDER", string(ProviderGemini))),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.5-pro"),
		OllamaHost:      os.Getenv("OLLAMA_HOST"),
		OllamaModel:     getEnv("OLLAMA_MODEL", "llama3"),
		Temperature:     float32(getEnvFloat("LLM_TEMPERATURE", 0.2)),
		TopP:            float32(getEnvFloat("LLM_TOP_P", 0.9)),
		MaxOutputTokens: int32(getEnvInt("LLM_MAX_OUTPUT_TOKENS", 8192)),
		CaseTextLimit:   getEnvInt("CASE_TEXT_LIMIT", 7000),
		GRTextLimit:     getEnvInt("GR_TEXT_LIMIT", 7000),
		LegalTextLimit:  getEnvInt("LEGAL_TEXT_LIMIT", 4000),
		AppealPolicy:    AppealPolicy(getEnv("APPEAL_POLICY", string(AppealFlat))),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
	}

	if cfg.Provider != ProviderOllama {
		cfg.Provider = ProviderGemini
	}
	if cfg.AppealPolicy != AppealTwoTier {
		cfg.AppealPolicy = AppealFlat
	}

	return cfg
}

// Model returns the model identifier for the selected provider
func (c *Config) Model() string {
	if c.Provider == ProviderOllama {
		return c.OllamaModel
	}
	return c.GeminiModel
}

// CredentialMissing reports whether the selected provider cannot be called
// because its credential is absent. Ollama needs none.
func (c *Config) CredentialMissing() bool {
	return c.Provider == ProviderGemini && c.GeminiAPIKey == ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
