package openai

import (
	"context"
	"errors"

	"github.com/prmate/prmate/internal/config"
	domainErrors "github.com/prmate/prmate/internal/errors"
	"github.com/prmate/prmate/internal/logger"
	"github.com/prmate/prmate/internal/models"
	openai "github.com/sashabaranov/go-openai"
)

// chatClient is a minimal interface for testing purposes
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIProvider wraps an OpenAI-compatible chat completion endpoint.
// It supports both the standard API and Azure-hosted deployments.
type OpenAIProvider struct {
	client chatClient
	model  string
}

func NewOpenAIProvider(cfg config.OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, domainErrors.ErrAPIKeyMissing
	}

	var clientCfg openai.ClientConfig
	switch cfg.APIType {
	case "azure":
		if cfg.Deployment == "" || cfg.APIBase == "" {
			return nil, domainErrors.ErrDeploymentMissing
		}
		clientCfg = openai.DefaultAzureConfig(cfg.APIKey, cfg.APIBase)
		if cfg.APIVersion != "" {
			clientCfg.APIVersion = cfg.APIVersion
		}
		deployment := cfg.Deployment
		clientCfg.AzureModelMapperFunc = func(string) string {
			return deployment
		}
	default:
		clientCfg = openai.DefaultConfig(cfg.APIKey)
		if cfg.APIBase != "" {
			clientCfg.BaseURL = cfg.APIBase
		}
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}, nil
}

func NewOpenAIProviderWithClient(client chatClient, model string) *OpenAIProvider {
	return &OpenAIProvider{
		client: client,
		model:  model,
	}
}

func (p *OpenAIProvider) GetModelName() string {
	return p.model
}

func (p *OpenAIProvider) GetProviderName() string {
	return "openai"
}

// generate runs a single-turn chat completion and returns the text plus usage.
func (p *OpenAIProvider) generate(ctx context.Context, prompt string, jsonOutput bool) (string, *models.TokenUsage, error) {
	log := logger.FromContext(ctx)

	req := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.3,
	}
	if jsonOutput {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Error("openai API call failed",
			"error", err,
			"model", p.model)
		return "", nil, mapAPIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", nil, domainErrors.ErrInvalidAIOutput.
			WithContext("reason", "no choices in response").
			WithContext("model", p.model)
	}

	usage := &models.TokenUsage{
		Model:        p.model,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		TotalTokens:  resp.Usage.TotalTokens,
	}

	return resp.Choices[0].Message.Content, usage, nil
}

func mapAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case 401, 403:
			return domainErrors.NewAppError(domainErrors.TypeAI, "OpenAI API key rejected", err).
				WithSuggestion("Check OPENAI_API_KEY (and OPENAI_API_BASE for self-hosted endpoints)")
		case 429:
			return domainErrors.ErrQuotaExceeded.WithError(err)
		case 404:
			return domainErrors.NewAppError(domainErrors.TypeAI, "model or deployment not found", err).
				WithSuggestion("Check OPENAI_MODEL and, for Azure, OPENAI_API_DEPLOYMENT")
		}
	}
	return domainErrors.ErrAIGeneration.WithError(err)
}
