package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	LLMProvider    string // openrouter, openai, anthropic, ollama
	OpenRouterKey  string
	OpenAIKey      string
	AnthropicKey   string // API key (X-Api-Key header)
	AnthropicToken string // OAuth token (Authorization: Bearer header)
	LLMModel       string
	OllamaBaseURL  string

	MaxTokens   int
	Temperature float64

	// OpenRouter attribution.
	AppName string
	SiteURL string

	MaxToolIterations int
	MaxContextTokens  int // 0 disables context trimming
}

func Load() *Config {
	_ = godotenv.Load() // ignore error if no .env

	return &Config{
		LLMProvider:       envOr("LLM_PROVIDER", "openrouter"),
		OpenRouterKey:     os.Getenv("OPENROUTER_API_KEY"),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		AnthropicKey:      os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicToken:    os.Getenv("ANTHROPIC_AUTH_TOKEN"),
		LLMModel:          os.Getenv("LLM_MODEL"),
		OllamaBaseURL:     envOr("OLLAMA_BASE_URL", "http://localhost:11434/v1"),
		MaxTokens:         envInt("MAX_TOKENS", 2048),
		Temperature:       envFloat("TEMPERATURE", 0.7),
		AppName:           envOr("APP_NAME", "helios"),
		SiteURL:           os.Getenv("SITE_URL"),
		MaxToolIterations: envInt("MAX_TOOL_ITERATIONS", 5),
		MaxContextTokens:  envInt("MAX_CONTEXT_TOKENS", 0),
	}
}

// APIKey returns the credential matching the configured provider.
func (c *Config) APIKey() string {
	switch c.LLMProvider {
	case "openai":
		return c.OpenAIKey
	case "anthropic":
		return c.AnthropicKey
	default:
		return c.OpenRouterKey
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
