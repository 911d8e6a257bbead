package openai

import (
	"context"

	"github.com/prmate/prmate/internal/ai"
	"github.com/prmate/prmate/internal/logger"
	"github.com/prmate/prmate/internal/models"
)

var _ ai.PRReviewer = (*OpenAIProvider)(nil)

func (p *OpenAIProvider) GeneratePRReview(ctx context.Context, prompt string) (models.ReviewResult, error) {
	log := logger.FromContext(ctx)

	log.Info("generating PR review via openai",
		"model", p.model,
		"prompt_length", len(prompt))

	text, usage, err := p.generate(ctx, prompt, true)
	if err != nil {
		return models.ReviewResult{}, err
	}

	result, err := ai.ParseReviewResult(text, usage)
	if err != nil {
		log.Error("failed to parse review response",
			"error", err,
			"response_length", len(text))
		return models.ReviewResult{}, err
	}

	log.Info("PR review generated",
		"findings_count", len(result.Findings),
		"security_ok", result.SecurityOK)

	return result, nil
}
