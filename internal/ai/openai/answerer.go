package openai

import (
	"context"

	"github.com/prmate/prmate/internal/ai"
	domainErrors "github.com/prmate/prmate/internal/errors"
	"github.com/prmate/prmate/internal/logger"
	"github.com/prmate/prmate/internal/models"
)

var _ ai.PRAnswerer = (*OpenAIProvider)(nil)

func (p *OpenAIProvider) GenerateAnswer(ctx context.Context, prompt string) (string, *models.TokenUsage, error) {
	log := logger.FromContext(ctx)

	log.Info("generating answer via openai",
		"model", p.model,
		"prompt_length", len(prompt))

	text, usage, err := p.generate(ctx, prompt, false)
	if err != nil {
		return "", nil, err
	}

	if text == "" {
		return "", nil, domainErrors.ErrInvalidAIOutput.
			WithContext("reason", "empty response from AI")
	}

	return text, usage, nil
}
