package gemini

import (
	"context"

	"github.com/prmate/prmate/internal/ai"
	domainErrors "github.com/prmate/prmate/internal/errors"
	"github.com/prmate/prmate/internal/logger"
	"github.com/prmate/prmate/internal/models"
)

var (
	_ ai.PRReviewer  = (*GeminiProvider)(nil)
	_ ai.PRDescriber = (*GeminiProvider)(nil)
	_ ai.PRAnswerer  = (*GeminiProvider)(nil)
)

func (p *GeminiProvider) GeneratePRReview(ctx context.Context, prompt string) (models.ReviewResult, error) {
	log := logger.FromContext(ctx)

	log.Info("generating PR review via gemini",
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

	return result, nil
}

func (p *GeminiProvider) GeneratePRSummary(ctx context.Context, prompt string) (models.PRSummary, error) {
	log := logger.FromContext(ctx)

	log.Info("generating PR summary via gemini",
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

func (p *GeminiProvider) GenerateAnswer(ctx context.Context, prompt string) (string, *models.TokenUsage, error) {
	log := logger.FromContext(ctx)

	log.Info("generating answer via gemini",
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
