package gemini

import (
	"context"
	"strings"

	"github.com/prmate/prmate/internal/config"
	domainErrors "github.com/prmate/prmate/internal/errors"
	"github.com/prmate/prmate/internal/logger"
	"github.com/prmate/prmate/internal/models"
	"google.golang.org/genai"
)

// GeminiProvider wraps the Gemini API behind the same interfaces as the
// OpenAI-compatible provider.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, cfg config.GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, domainErrors.ErrAPIKeyMissing
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "invalid") ||
			strings.Contains(errMsg, "unauthorized") ||
			strings.Contains(errMsg, "api key") ||
			strings.Contains(errMsg, "authentication") {
			return nil, domainErrors.NewAppError(domainErrors.TypeAI, "Gemini API key is invalid", err).
				WithSuggestion("Get a valid API key at: https://aistudio.google.com/app/apikey")
		}
		return nil, domainErrors.NewAppError(domainErrors.TypeAI, "error creating AI client", err)
	}

	return &GeminiProvider{
		client: client,
		model:  cfg.Model,
	}, nil
}

func (p *GeminiProvider) GetModelName() string {
	return p.model
}

func (p *GeminiProvider) GetProviderName() string {
	return "gemini"
}

func (p *GeminiProvider) generate(ctx context.Context, prompt string, jsonOutput bool) (string, *models.TokenUsage, error) {
	log := logger.FromContext(ctx)

	genConfig := &genai.GenerateContentConfig{
		Temperature:     float32Ptr(0.3),
		MaxOutputTokens: int32(10000),
	}
	if jsonOutput {
		genConfig.ResponseMIMEType = "application/json"
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), genConfig)
	if err != nil {
		log.Error("gemini API call failed",
			"error", err,
			"model", p.model)

		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "quota") ||
			strings.Contains(errMsg, "rate limit") ||
			strings.Contains(errMsg, "resource exhausted") {
			return "", nil, domainErrors.ErrQuotaExceeded.WithError(err)
		}
		if strings.Contains(errMsg, "invalid") ||
			strings.Contains(errMsg, "unauthorized") ||
			strings.Contains(errMsg, "api key") {
			return "", nil, domainErrors.NewAppError(domainErrors.TypeAI, "Gemini API key is invalid", err).
				WithSuggestion("Get a valid API key at: https://aistudio.google.com/app/apikey")
		}

		return "", nil, domainErrors.ErrAIGeneration.WithError(err)
	}

	return formatResponse(resp), extractUsage(p.model, resp), nil
}

// formatResponse concatenates the text parts of all candidates, skipping
// thinking parts.
func formatResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var result strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.Thought {
				continue
			}
			if part.Text != "" {
				result.WriteString(part.Text)
			}
		}
	}
	return result.String()
}

// extractUsage extracts usage metadata from the Gemini response
func extractUsage(model string, resp *genai.GenerateContentResponse) *models.TokenUsage {
	if resp == nil || resp.UsageMetadata == nil {
		return nil
	}
	return &models.TokenUsage{
		Model:        model,
		InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
		OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		TotalTokens:  int(resp.UsageMetadata.TotalTokenCount),
	}
}

func float32Ptr(f float32) *float32 {
	return &f
}
