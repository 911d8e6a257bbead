package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prmate/prmate/internal/config"
	"github.com/prmate/prmate/internal/models"
)

func samplePRData() models.PRData {
	return models.PRData{
		Number:      42,
		Title:       "Add retry logic",
		Creator:     "octocat",
		BranchName:  "feature/retries",
		BaseBranch:  "main",
		Description: "Retries transient failures",
		Diff:        "diff --git a/retry.go b/retry.go",
		Commits: []models.Commit{
			{SHA: "abc123", Message: "feat: add retries\n\nlong body"},
		},
		FilesStats: &models.FileStatistics{
			FilesChanged: 2,
			Insertions:   100,
			Deletions:    5,
			TopFiles: []models.FileChange{
				{Path: "retry.go", Additions: 40, Deletions: 5},
			},
		},
	}
}

func TestBuildPRContent(t *testing.T) {
	t.Run("should include metadata, commits, stats and diff", func(t *testing.T) {
		content := BuildPRContent(samplePRData(), 0)

		assert.Contains(t, content, "PR #42: Add retry logic")
		assert.Contains(t, content, "Author: octocat")
		assert.Contains(t, content, "Branch: feature/retries -> main")
		assert.Contains(t, content, "Retries transient failures")
		assert.Contains(t, content, "- feat: add retries")
		assert.NotContains(t, content, "long body")
		assert.Contains(t, content, "Change footprint: 2 files, +100 -5")
		assert.Contains(t, content, "diff --git a/retry.go")
	})

	t.Run("should clamp the diff to the configured limit", func(t *testing.T) {
		prData := samplePRData()
		prData.Diff = strings.Repeat("x", 500)

		content := BuildPRContent(prData, 100)

		assert.Contains(t, content, "[diff truncated]")
		assert.NotContains(t, content, strings.Repeat("x", 101))
	})
}

func TestRenderPrompt(t *testing.T) {
	t.Run("should toggle review focus sections from the config", func(t *testing.T) {
		reviewCfg := config.ReviewConfig{
			RequireSecurityReview: true,
			RequireScoreReview:    false,
			ExtraInstructions:     "Focus on the pager.",
		}

		prompt, err := RenderPrompt("review", ReviewPromptTemplate, NewReviewPromptData("pr body", reviewCfg))

		require.NoError(t, err)
		assert.Contains(t, prompt, "pr body")
		assert.Contains(t, prompt, "security vulnerabilities")
		assert.NotContains(t, prompt, "Assign an overall score")
		assert.Contains(t, prompt, "Focus on the pager.")
	})

	t.Run("should drop the label fields when label generation is off", func(t *testing.T) {
		withLabels, err := RenderPrompt("review", ReviewPromptTemplate, NewReviewPromptData("pr body", config.ReviewConfig{
			EnableSecurityLabels: true,
			EnableEffortLabels:   true,
		}))
		require.NoError(t, err)

		withoutLabels, err := RenderPrompt("review", ReviewPromptTemplate, NewReviewPromptData("pr body", config.ReviewConfig{}))
		require.NoError(t, err)

		assert.NotEqual(t, withLabels, withoutLabels)
		assert.Contains(t, withLabels, `"security_ok"`)
		assert.Contains(t, withLabels, `"effort"`)
		assert.Contains(t, withLabels, "review effort")
		assert.NotContains(t, withoutLabels, `"security_ok"`)
		assert.NotContains(t, withoutLabels, `"effort"`)
		assert.NotContains(t, withoutLabels, "review effort")
	})

	t.Run("should render the ask prompt with the question", func(t *testing.T) {
		prompt, err := RenderPrompt("ask", AskPromptTemplate, PromptData{
			PRContent: "pr body",
			Question:  "Is the pager bounded?",
		})

		require.NoError(t, err)
		assert.Contains(t, prompt, "Is the pager bounded?")
	})

	t.Run("should fail on a malformed template", func(t *testing.T) {
		_, err := RenderPrompt("bad", "{{.Broken", nil)

		assert.Error(t, err)
	})
}
