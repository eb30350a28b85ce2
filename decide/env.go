package decide

import (
	"fmt"
	"os"
	"strings"
)

// FromEnv builds a backend for the named provider, reading its API key from
// the environment. Provider names match the original service: openai, gemini,
// mistral. Empty name falls back to AI_PROVIDER, then openai.
func FromEnv(provider string) (Backend, error) {
	if provider == "" {
		provider = os.Getenv("AI_PROVIDER")
	}
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		provider = "openai"
	}

	switch provider {
	case "openai":
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		return NewOpenAI(key), nil
	case "gemini":
		key := os.Getenv("GOOGLE_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("GOOGLE_API_KEY not set")
		}
		return NewGemini(key), nil
	case "mistral":
		key := os.Getenv("MISTRAL_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("MISTRAL_API_KEY not set")
		}
		return NewMistral(key), nil
	}

	return nil, fmt.Errorf("unknown provider: %s", provider)
}

// Available lists providers that have keys configured.
func Available() []string {
	out := []string{}
	if os.Getenv("OPENAI_API_KEY") != "" {
		out = append(out, "openai")
	}
	if os.Getenv("GOOGLE_API_KEY") != "" {
		out = append(out, "gemini")
	}
	if os.Getenv("MISTRAL_API_KEY") != "" {
		out = append(out, "mistral")
	}
	return out
}
