package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/prmate/prmate/internal/config"
	domainErrors "github.com/prmate/prmate/internal/errors"
	"github.com/prmate/prmate/internal/models"
)

const testPRURL = "https://github.com/octo-org/widgets/pull/42"

func testPRData() models.PRData {
	return models.PRData{
		Number:     42,
		Title:      "Add retry logic",
		Creator:    "octocat",
		BranchName: "feature/retries",
		BaseBranch: "main",
		Diff:       "diff --git a/retry.go b/retry.go",
		Commits: []models.Commit{
			{SHA: "abc123", Message: "feat: add retries"},
		},
	}
}

func newTestAgent(vcsClient *MockVCSClient, aiProvider *MockAIProvider, cfg *config.Config) *Agent {
	if cfg == nil {
		cfg = &config.Config{
			Review: config.ReviewConfig{
				RequireTestsReview:    true,
				RequireSecurityReview: true,
				MaxDiffChars:          120000,
			},
		}
	}
	return New(
		WithVCSClient(vcsClient),
		WithAIProvider(aiProvider),
		WithConfig(cfg),
	)
}

func TestAgent_Review(t *testing.T) {
	t.Run("should fetch the PR and return the review", func(t *testing.T) {
		// Arrange
		mockVCS := &MockVCSClient{}
		mockAI := &MockAIProvider{}
		agent := newTestAgent(mockVCS, mockAI, nil)

		expectedRef := models.PRReference{Provider: "github", Owner: "octo-org", Repo: "widgets", Number: 42}
		mockVCS.On("GetPR", mock.Anything, expectedRef).Return(testPRData(), nil)
		mockAI.On("GeneratePRReview", mock.Anything, mock.MatchedBy(func(prompt string) bool {
			return strings.Contains(prompt, "PR #42: Add retry logic")
		})).Return(models.ReviewResult{Markdown: "## Summary\nLooks solid."}, nil)

		// Act
		result, err := agent.Review(context.Background(), testPRURL)

		// Assert
		require.NoError(t, err)
		assert.Contains(t, result.Markdown, "Looks solid")
		mockVCS.AssertExpectations(t)
		mockAI.AssertExpectations(t)
	})

	t.Run("should reject an invalid PR reference without calling providers", func(t *testing.T) {
		// Arrange
		mockVCS := &MockVCSClient{}
		mockAI := &MockAIProvider{}
		agent := newTestAgent(mockVCS, mockAI, nil)

		// Act
		_, err := agent.Review(context.Background(), "not-a-pr")

		// Assert
		var appErr *domainErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, domainErrors.ErrInvalidPRReference.Message, appErr.Message)
		mockVCS.AssertNotCalled(t, "GetPR")
		mockAI.AssertNotCalled(t, "GeneratePRReview")
	})

	t.Run("should propagate VCS errors", func(t *testing.T) {
		// Arrange
		mockVCS := &MockVCSClient{}
		mockAI := &MockAIProvider{}
		agent := newTestAgent(mockVCS, mockAI, nil)

		mockVCS.On("GetPR", mock.Anything, mock.Anything).
			Return(models.PRData{}, domainErrors.ErrRepositoryNotFound)

		// Act
		_, err := agent.Review(context.Background(), testPRURL)

		// Assert
		require.Error(t, err)
		mockAI.AssertNotCalled(t, "GeneratePRReview")
	})
}

func TestAgent_FindBugs(t *testing.T) {
	t.Run("should narrow the review to bugs and security", func(t *testing.T) {
		// Arrange
		mockVCS := &MockVCSClient{}
		mockAI := &MockAIProvider{}
		cfg := &config.Config{
			Review: config.ReviewConfig{
				EnableSecurityLabels: true,
				EnableEffortLabels:   true,
				RequireScoreReview:   true,
				RequireTestsReview:   true,
				MaxDiffChars:         120000,
			},
		}
		agent := newTestAgent(mockVCS, mockAI, cfg)

		mockVCS.On("GetPR", mock.Anything, mock.Anything).Return(testPRData(), nil)
		mockAI.On("GeneratePRReview", mock.Anything, mock.MatchedBy(func(prompt string) bool {
			return strings.Contains(prompt, "Focus exclusively on identifying bugs") &&
				strings.Contains(prompt, "security vulnerabilities") &&
				!strings.Contains(prompt, "Assign an overall score")
		})).Return(models.ReviewResult{Markdown: "## Security Issues\n- token logged"}, nil)

		// Act
		result, err := agent.FindBugs(context.Background(), testPRURL)

		// Assert
		require.NoError(t, err)
		assert.Contains(t, result.Markdown, "token logged")
		mockAI.AssertExpectations(t)
	})

	t.Run("should leave the configured defaults untouched", func(t *testing.T) {
		// Arrange
		mockVCS := &MockVCSClient{}
		mockAI := &MockAIProvider{}
		cfg := &config.Config{
			Review: config.ReviewConfig{
				RequireScoreReview: true,
				MaxDiffChars:       120000,
			},
		}
		agent := newTestAgent(mockVCS, mockAI, cfg)

		mockVCS.On("GetPR", mock.Anything, mock.Anything).Return(testPRData(), nil)
		mockAI.On("GeneratePRReview", mock.Anything, mock.Anything).
			Return(models.ReviewResult{}, nil)

		// Act
		_, err := agent.FindBugs(context.Background(), testPRURL)

		// Assert
		require.NoError(t, err)
		assert.True(t, cfg.Review.RequireScoreReview)
		assert.Empty(t, cfg.Review.ExtraInstructions)
	})
}

func TestAgent_Describe(t *testing.T) {
	t.Run("should generate a summary without publishing by default", func(t *testing.T) {
		// Arrange
		mockVCS := &MockVCSClient{}
		mockAI := &MockAIProvider{}
		agent := newTestAgent(mockVCS, mockAI, nil)

		summary := models.PRSummary{Title: "Add retry logic", Body: "Retries transient failures"}
		mockVCS.On("GetPR", mock.Anything, mock.Anything).Return(testPRData(), nil)
		mockAI.On("GeneratePRSummary", mock.Anything, mock.Anything).Return(summary, nil)

		// Act
		got, err := agent.Describe(context.Background(), testPRURL)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, summary, got)
		mockVCS.AssertNotCalled(t, "UpdatePR")
	})

	t.Run("should publish the summary when configured", func(t *testing.T) {
		// Arrange
		mockVCS := &MockVCSClient{}
		mockAI := &MockAIProvider{}
		cfg := &config.Config{
			Review: config.ReviewConfig{
				PublishDescription: true,
				MaxDiffChars:       120000,
			},
		}
		agent := newTestAgent(mockVCS, mockAI, cfg)

		summary := models.PRSummary{Title: "Add retry logic", Body: "Retries transient failures", Labels: []string{"feature"}}
		expectedRef := models.PRReference{Provider: "github", Owner: "octo-org", Repo: "widgets", Number: 42}
		mockVCS.On("GetPR", mock.Anything, expectedRef).Return(testPRData(), nil)
		mockAI.On("GeneratePRSummary", mock.Anything, mock.Anything).Return(summary, nil)
		mockVCS.On("UpdatePR", mock.Anything, expectedRef, summary).Return(nil)

		// Act
		_, err := agent.Describe(context.Background(), testPRURL)

		// Assert
		require.NoError(t, err)
		mockVCS.AssertExpectations(t)
	})
}

func TestAgent_Ask(t *testing.T) {
	t.Run("should include the question in the prompt", func(t *testing.T) {
		// Arrange
		mockVCS := &MockVCSClient{}
		mockAI := &MockAIProvider{}
		agent := newTestAgent(mockVCS, mockAI, nil)

		mockVCS.On("GetPR", mock.Anything, mock.Anything).Return(testPRData(), nil)
		mockAI.On("GenerateAnswer", mock.Anything, mock.MatchedBy(func(prompt string) bool {
			return strings.Contains(prompt, "Does this change the public API?")
		})).Return("No, the exported surface is unchanged.", &models.TokenUsage{TotalTokens: 100}, nil)

		// Act
		answer, usage, err := agent.Ask(context.Background(), testPRURL, "Does this change the public API?")

		// Assert
		require.NoError(t, err)
		assert.Contains(t, answer, "unchanged")
		require.NotNil(t, usage)
		assert.Equal(t, 100, usage.TotalTokens)
	})

	t.Run("should reject an empty question", func(t *testing.T) {
		// Arrange
		mockVCS := &MockVCSClient{}
		mockAI := &MockAIProvider{}
		agent := newTestAgent(mockVCS, mockAI, nil)

		// Act
		_, _, err := agent.Ask(context.Background(), testPRURL, "")

		// Assert
		require.Error(t, err)
		mockVCS.AssertNotCalled(t, "GetPR")
	})
}

func TestAgent_Improve(t *testing.T) {
	t.Run("should return the suggestions text", func(t *testing.T) {
		// Arrange
		mockVCS := &MockVCSClient{}
		mockAI := &MockAIProvider{}
		agent := newTestAgent(mockVCS, mockAI, nil)

		mockVCS.On("GetPR", mock.Anything, mock.Anything).Return(testPRData(), nil)
		mockAI.On("GenerateAnswer", mock.Anything, mock.Anything).
			Return("## Suggestions\n- extract the retry loop", nil, nil)

		// Act
		answer, _, err := agent.Improve(context.Background(), testPRURL)

		// Assert
		require.NoError(t, err)
		assert.Contains(t, answer, "retry loop")
	})
}
