package config

import (
	"fmt"
	"os"
	"sync"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// LLMConfig selects the chat-completion transport. The default provider talks to any
// OpenAI-compatible /chat/completions endpoint, the Hugging Face router by default.
type LLMConfig struct {
	Provider string
	BaseURL  string
	Model    string
	Token    string
}

var (
	llmConfig *LLMConfig
	llmOnce   sync.Once
)

func LoadLLMConfig() *LLMConfig {
	llmOnce.Do(func() {
		llmConfig = &LLMConfig{
			Provider: getEnv("LLM_PROVIDER", ProviderOpenAI),
			BaseURL:  getEnv("LLM_BASE_URL", "https://router.huggingface.co/v1"),
			Model:    getEnv("LLM_MODEL", "inclusionAI/Ling-1T:featherless-ai"),
			Token:    os.Getenv("HF_TOKEN"),
		}
	})
	return llmConfig
}

func (c *LLMConfig) Validate() error {
	switch c.Provider {
	case ProviderOpenAI:
		return requireVars(map[string]string{"HF_TOKEN": c.Token})
	case ProviderGemini:
		return LoadGeminiConfig().Validate()
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.Provider)
	}
}
