package agent

import (
	"context"

	"github.com/prmate/prmate/internal/ai"
	"github.com/prmate/prmate/internal/config"
	domainErrors "github.com/prmate/prmate/internal/errors"
	"github.com/prmate/prmate/internal/logger"
	"github.com/prmate/prmate/internal/models"
	"github.com/prmate/prmate/internal/vcs"
)

// agentVCSClient defines the methods needed by the Agent from a VCS provider.
type agentVCSClient interface {
	GetPR(ctx context.Context, ref models.PRReference) (models.PRData, error)
	UpdatePR(ctx context.Context, ref models.PRReference, summary models.PRSummary) error
}

// agentAIProvider defines the methods needed by the Agent from an AI provider.
type agentAIProvider interface {
	GeneratePRReview(ctx context.Context, prompt string) (models.ReviewResult, error)
	GeneratePRSummary(ctx context.Context, prompt string) (models.PRSummary, error)
	GenerateAnswer(ctx context.Context, prompt string) (string, *models.TokenUsage, error)
}

// Agent orchestrates pull request analysis: it resolves a PR reference,
// fetches the PR from the Git provider, renders a task-specific prompt,
// and runs it through the configured AI provider.
type Agent struct {
	vcsClient  agentVCSClient
	aiProvider agentAIProvider
	config     *config.Config
}

type Option func(*Agent)

func WithVCSClient(vcsClient agentVCSClient) Option {
	return func(a *Agent) {
		a.vcsClient = vcsClient
	}
}

func WithAIProvider(aiProvider agentAIProvider) Option {
	return func(a *Agent) {
		a.aiProvider = aiProvider
	}
}

func WithConfig(cfg *config.Config) Option {
	return func(a *Agent) {
		a.config = cfg
	}
}

func New(opts ...Option) *Agent {
	a := &Agent{}
	for _, opt := range opts {
		opt(a)
	}
	if a.config == nil {
		a.config = &config.Config{}
	}
	return a
}

// Review reviews a pull request and returns the structured result.
// Security and effort labels are disabled for plain reviews.
func (a *Agent) Review(ctx context.Context, rawRef string) (models.ReviewResult, error) {
	log := logger.FromContext(ctx)

	prData, _, err := a.fetchPR(ctx, rawRef)
	if err != nil {
		return models.ReviewResult{}, err
	}

	reviewCfg := a.config.Review
	reviewCfg.EnableSecurityLabels = false
	reviewCfg.EnableEffortLabels = false

	prompt, err := a.reviewPrompt(prData, reviewCfg)
	if err != nil {
		return models.ReviewResult{}, err
	}

	result, err := a.aiProvider.GeneratePRReview(ctx, prompt)
	if err != nil {
		log.Error("failed to review PR",
			"error", err,
			"pr_number", prData.Number)
		return models.ReviewResult{}, err
	}

	log.Info("PR reviewed",
		"pr_number", prData.Number,
		"findings_count", len(result.Findings))

	return result, nil
}

// FindBugs reviews a pull request with a bug-focused settings overlay:
// security review required, score/tests/focused checks and labels off,
// and extra instructions narrowing the review to bugs and vulnerabilities.
// The overlay is a copy, so the configured defaults are untouched.
func (a *Agent) FindBugs(ctx context.Context, rawRef string) (models.ReviewResult, error) {
	log := logger.FromContext(ctx)

	prData, _, err := a.fetchPR(ctx, rawRef)
	if err != nil {
		return models.ReviewResult{}, err
	}

	reviewCfg := a.config.Review
	reviewCfg.EnableSecurityLabels = false
	reviewCfg.EnableEffortLabels = false
	reviewCfg.RequireScoreReview = false
	reviewCfg.RequireTestsReview = false
	reviewCfg.RequireSecurityReview = true
	reviewCfg.RequireFocusedReview = false
	reviewCfg.ExtraInstructions = "Focus exclusively on identifying bugs, logic errors, security vulnerabilities, and potential runtime issues. Skip style and maintainability concerns."

	prompt, err := a.reviewPrompt(prData, reviewCfg)
	if err != nil {
		return models.ReviewResult{}, err
	}

	result, err := a.aiProvider.GeneratePRReview(ctx, prompt)
	if err != nil {
		log.Error("failed to scan PR for bugs",
			"error", err,
			"pr_number", prData.Number)
		return models.ReviewResult{}, err
	}

	log.Info("PR scanned for bugs",
		"pr_number", prData.Number,
		"findings_count", len(result.Findings))

	return result, nil
}

// Describe generates a description for a pull request. When
// publish_description is enabled the title, body, and labels are written
// back to the PR.
func (a *Agent) Describe(ctx context.Context, rawRef string) (models.PRSummary, error) {
	log := logger.FromContext(ctx)

	prData, ref, err := a.fetchPR(ctx, rawRef)
	if err != nil {
		return models.PRSummary{}, err
	}

	content := ai.BuildPRContent(prData, a.config.Review.MaxDiffChars)
	prompt, err := ai.RenderPrompt("describe", ai.DescribePromptTemplate, ai.PromptData{PRContent: content})
	if err != nil {
		return models.PRSummary{}, domainErrors.NewAppError(domainErrors.TypeInternal, "error rendering prompt", err)
	}

	summary, err := a.aiProvider.GeneratePRSummary(ctx, prompt)
	if err != nil {
		log.Error("failed to describe PR",
			"error", err,
			"pr_number", prData.Number)
		return models.PRSummary{}, err
	}

	if a.config.Review.PublishDescription {
		if err := a.vcsClient.UpdatePR(ctx, ref, summary); err != nil {
			log.Error("failed to publish PR description",
				"error", err,
				"pr_number", prData.Number)
			return models.PRSummary{}, err
		}
		log.Info("PR description published",
			"pr_number", prData.Number,
			"title", summary.Title)
	}

	return summary, nil
}

// Improve suggests concrete code improvements for a pull request.
func (a *Agent) Improve(ctx context.Context, rawRef string) (string, *models.TokenUsage, error) {
	log := logger.FromContext(ctx)

	prData, _, err := a.fetchPR(ctx, rawRef)
	if err != nil {
		return "", nil, err
	}

	content := ai.BuildPRContent(prData, a.config.Review.MaxDiffChars)
	prompt, err := ai.RenderPrompt("improve", ai.ImprovePromptTemplate, ai.PromptData{
		PRContent:         content,
		ExtraInstructions: a.config.Review.ExtraInstructions,
	})
	if err != nil {
		return "", nil, domainErrors.NewAppError(domainErrors.TypeInternal, "error rendering prompt", err)
	}

	answer, usage, err := a.aiProvider.GenerateAnswer(ctx, prompt)
	if err != nil {
		log.Error("failed to suggest improvements",
			"error", err,
			"pr_number", prData.Number)
		return "", nil, err
	}

	return answer, usage, nil
}

// Ask answers a free-form question about a pull request.
func (a *Agent) Ask(ctx context.Context, rawRef, question string) (string, *models.TokenUsage, error) {
	log := logger.FromContext(ctx)

	if question == "" {
		return "", nil, domainErrors.NewAppError(domainErrors.TypeInternal, "question is empty", nil)
	}

	prData, _, err := a.fetchPR(ctx, rawRef)
	if err != nil {
		return "", nil, err
	}

	content := ai.BuildPRContent(prData, a.config.Review.MaxDiffChars)
	prompt, err := ai.RenderPrompt("ask", ai.AskPromptTemplate, ai.PromptData{
		PRContent: content,
		Question:  question,
	})
	if err != nil {
		return "", nil, domainErrors.NewAppError(domainErrors.TypeInternal, "error rendering prompt", err)
	}

	answer, usage, err := a.aiProvider.GenerateAnswer(ctx, prompt)
	if err != nil {
		log.Error("failed to answer question",
			"error", err,
			"pr_number", prData.Number)
		return "", nil, err
	}

	return answer, usage, nil
}

func (a *Agent) fetchPR(ctx context.Context, rawRef string) (models.PRData, models.PRReference, error) {
	log := logger.FromContext(ctx)

	ref, err := vcs.ParsePRReference(rawRef)
	if err != nil {
		return models.PRData{}, models.PRReference{}, err
	}

	log.Debug("resolved PR reference",
		"owner", ref.Owner,
		"repo", ref.Repo,
		"pr_number", ref.Number)

	prData, err := a.vcsClient.GetPR(ctx, ref)
	if err != nil {
		return models.PRData{}, models.PRReference{}, err
	}

	return prData, ref, nil
}

func (a *Agent) reviewPrompt(prData models.PRData, reviewCfg config.ReviewConfig) (string, error) {
	content := ai.BuildPRContent(prData, reviewCfg.MaxDiffChars)
	prompt, err := ai.RenderPrompt("review", ai.ReviewPromptTemplate, ai.NewReviewPromptData(content, reviewCfg))
	if err != nil {
		return "", domainErrors.NewAppError(domainErrors.TypeInternal, "error rendering prompt", err)
	}
	return prompt, nil
}
