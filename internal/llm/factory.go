package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/daylingo/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = newDemoProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	logged := WithLogging(base, eventRepo)
	retried := WithRetry(logged, cfg.Retry)

	return retried, nil
}

// newDemoProvider returns a mock that serves the same stock lesson over
// and over. It keeps the app playable end to end without any API key.
func newDemoProvider() *MockProvider {
	m := NewMockProvider(MockResponse{
		Content: json.RawMessage(demoLesson),
		Usage:   Usage{InputTokens: 0, OutputTokens: 0, TotalTokens: 0},
	})
	m.Loop = true
	return m
}

// demoLesson is a stock beginner batch (English for a Spanish speaker).
const demoLesson = `{
  "exercises": [
    {
      "type": "MULTIPLE_CHOICE",
      "question": "¿Cómo se dice \"hola\" en inglés?",
      "correctAnswer": "hello",
      "options": ["hello", "goodbye", "please", "thanks"],
      "tip": "¡Es la palabra más importante del día!"
    },
    {
      "type": "MULTIPLE_CHOICE",
      "question": "¿Cómo se dice \"gracias\" en inglés?",
      "correctAnswer": "thank you",
      "options": ["thank you", "sorry", "excuse me", "welcome"]
    },
    {
      "type": "MATCHING",
      "question": "Une las parejas",
      "correctAnswer": "",
      "pairs": [
        {"source": "perro", "target": "dog"},
        {"source": "gato", "target": "cat"},
        {"source": "casa", "target": "house"},
        {"source": "agua", "target": "water"}
      ]
    },
    {
      "type": "TRANSLATE_TO_TARGET",
      "question": "Buenos días",
      "correctAnswer": "Good morning"
    },
    {
      "type": "TRANSLATE_TO_TARGET",
      "question": "El gato bebe agua",
      "correctAnswer": "The cat drinks water",
      "options": ["The", "cat", "drinks", "water", "dog", "eats", "house"]
    },
    {
      "type": "TRANSLATE_TO_SOURCE",
      "question": "The dog is in the house",
      "correctAnswer": "El perro está en la casa"
    },
    {
      "type": "LISTENING",
      "question": "Escucha y escribe lo que oyes",
      "correctAnswer": "Good morning",
      "tip": "Empieza como un saludo."
    },
    {
      "type": "PRONUNCIATION",
      "question": "Di esta frase en voz alta",
      "correctAnswer": "Hello, my name is Ana"
    }
  ]
}`
