package openai

import (
	"context"

	"github.com/prmate/prmate/internal/ai"
	"github.com/prmate/prmate/internal/logger"
	"github.com/prmate/prmate/internal/models"
)

var _ ai.PRDescriber = (*OpenAIProvider)(nil)

func (p *OpenAIProvider) GeneratePRSummary(ctx context.Context, prompt string) (models.PRSummary, error) {
	log := logger.FromContext(ctx)

	log.Info("generating PR summary via openai",
		"model", p.model,
		"prompt_length", len(prompt))

	text, usage, err := p.generate(ctx, prompt, true)
	if err != nil {
		return models.PRSummary{}, err
	}

	summary, err := ai.ParsePRSummary(text, usage)
	if err != nil {
		log.Error("failed to parse summary response",
			"error", err,
			"response_length", len(text))
		return models.PRSummary{}, err
	}

	return summary, nil
}
