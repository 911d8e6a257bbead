package providers

import (
	"context"

	"github.com/prmate/prmate/internal/ai"
	"github.com/prmate/prmate/internal/ai/gemini"
	"github.com/prmate/prmate/internal/ai/openai"
	"github.com/prmate/prmate/internal/config"
	domainErrors "github.com/prmate/prmate/internal/errors"
)

// AIProvider bundles the model-facing capabilities the agent needs.
type AIProvider interface {
	ai.PRReviewer
	ai.PRDescriber
	ai.PRAnswerer
	GetModelName() string
	GetProviderName() string
}

// NewAIProvider creates the AI backend based on the configured provider
func NewAIProvider(ctx context.Context, cfg *config.Config) (AIProvider, error) {
	switch cfg.AI.Provider {
	case "openai":
		return openai.NewOpenAIProvider(cfg.AI.OpenAI)
	case "gemini":
		return gemini.NewGeminiProvider(ctx, cfg.AI.Gemini)
	default:
		return nil, domainErrors.ErrProviderNotSupported.
			WithContext("ai_provider", cfg.AI.Provider)
	}
}
