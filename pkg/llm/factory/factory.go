package factory

import (
	"fmt"

	"civic-bridge-be/pkg/llm"
	"civic-bridge-be/pkg/llm/gemini"
	"civic-bridge-be/pkg/llm/huggingface"
	"civic-bridge-be/pkg/llm/ollama"
)

type ProviderConfig struct {
	Provider       string
	Model          string
	OllamaBaseURL  string
	GeminiAPIKey   string
	GeminiBaseURL  string
	HuggingFaceKey string
}

func NewLLMProvider(cfg ProviderConfig) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		p := gemini.NewGeminiProvider(cfg.GeminiAPIKey, cfg.Model)
		if cfg.GeminiBaseURL != "" {
			p.BaseURL = cfg.GeminiBaseURL
		}
		return p, nil
	case "ollama":
		baseURL := cfg.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model), nil
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(cfg.HuggingFaceKey, "", cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
