package llm

import "fmt"

const openRouterBaseURL = "https://openrouter.ai/api/v1"

type ProviderConfig struct {
	Provider    string // openrouter, openai, anthropic, ollama
	APIKey      string
	AuthToken   string // OAuth token (Bearer auth), Anthropic only
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature float64

	// OpenRouter attribution headers (optional).
	AppName string
	SiteURL string
}

func NewClient(cfg ProviderConfig) (Client, error) {
	switch cfg.Provider {
	case "openrouter":
		return NewOpenAIClient(OpenAIOptions{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			BaseURL:     openRouterBaseURL,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
			AppName:     cfg.AppName,
			SiteURL:     cfg.SiteURL,
		}), nil
	case "openai":
		return NewOpenAIClient(OpenAIOptions{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		}), nil
	case "ollama":
		model := cfg.Model
		if model == "" {
			model = "llama3.1"
		}
		return NewOpenAIClient(OpenAIOptions{
			APIKey:      "ollama",
			Model:       model,
			BaseURL:     cfg.BaseURL,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		}), nil
	case "anthropic":
		return NewAnthropicClient(cfg.APIKey, cfg.AuthToken, cfg.Model, cfg.MaxTokens), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.Provider)
	}
}
