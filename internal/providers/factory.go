package providers

import (
	"fmt"
	"os"
)

// NewClientFromEnv creates a Client based on environment variables.
// LLM_PROVIDER selects the backend; each backend reads its own key and
// model variables. Returns the client and the resolved model name.
func NewClientFromEnv() (Client, string, error) {
	provider := os.Getenv("LLM_PROVIDER")
	if provider == "" {
		provider = "openai"
	}

	switch provider {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, "", fmt.Errorf("OPENAI_API_KEY not set")
		}

		modelName := os.Getenv("OPENAI_MODEL")
		if modelName == "" {
			modelName = "gpt-4o-mini"
		}

		baseURL := os.Getenv("OPENAI_BASE_URL") // For OpenAI-compatible APIs

		client, err := NewOpenAIClient(apiKey, modelName, baseURL)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create OpenAI client: %w", err)
		}

		return client, modelName, nil

	case "anthropic":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, "", fmt.Errorf("ANTHROPIC_API_KEY not set")
		}

		modelName := os.Getenv("ANTHROPIC_MODEL")
		if modelName == "" {
			modelName = "claude-3-5-haiku-latest"
		}

		client, err := NewAnthropicClient(apiKey, modelName)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create Anthropic client: %w", err)
		}

		return client, modelName, nil

	case "groq":
		// Groq (OpenAI-compatible, very fast inference)
		apiKey := os.Getenv("GROQ_API_KEY")
		if apiKey == "" {
			return nil, "", fmt.Errorf("GROQ_API_KEY not set")
		}

		modelName := os.Getenv("GROQ_MODEL")
		if modelName == "" {
			modelName = "llama-3.3-70b-versatile"
		}

		baseURL := "https://api.groq.com/openai/v1"

		client, err := NewOpenAIClient(apiKey, modelName, baseURL)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create Groq client: %w", err)
		}

		return client, modelName, nil

	case "ollama":
		// Ollama local server (OpenAI-compatible)
		baseURL := os.Getenv("OLLAMA_BASE_URL")
		if baseURL == "" {
			baseURL = "http://localhost:11434/v1"
		}

		modelName := os.Getenv("OLLAMA_MODEL")
		if modelName == "" {
			modelName = "llama3.1"
		}

		apiKey := os.Getenv("OLLAMA_API_KEY")
		if apiKey == "" {
			apiKey = "ollama"
		}

		client, err := NewOpenAIClient(apiKey, modelName, baseURL)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create Ollama client: %w", err)
		}

		return client, modelName, nil

	default:
		return nil, "", fmt.Errorf("unknown LLM_PROVIDER: %s (supported: openai, anthropic, groq, ollama)", provider)
	}
}
