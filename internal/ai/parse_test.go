package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/prmate/prmate/internal/errors"
	"github.com/prmate/prmate/internal/models"
)

func TestParseReviewResult(t *testing.T) {
	t.Run("should decode a full review payload", func(t *testing.T) {
		payload := `{
			"summary": "Solid change",
			"score": 85,
			"security_ok": true,
			"effort": "M",
			"findings": [
				{"file": "retry.go", "line": 12, "severity": "high", "category": "bug", "message": "no backoff"}
			],
			"markdown": "## Summary\nSolid change"
		}`
		usage := &models.TokenUsage{TotalTokens: 321}

		result, err := ParseReviewResult(payload, usage)

		require.NoError(t, err)
		assert.Equal(t, "Solid change", result.Summary)
		assert.Equal(t, 85, result.Score)
		assert.True(t, result.SecurityOK)
		assert.Equal(t, "M", result.EffortLabel)
		require.Len(t, result.Findings, 1)
		assert.Equal(t, models.SeverityHigh, result.Findings[0].Severity)
		assert.Equal(t, usage, result.Usage)
	})

	t.Run("should normalize finding severities to the known set", func(t *testing.T) {
		payload := `{
			"summary": "ok",
			"markdown": "## Summary\nok",
			"findings": [
				{"file": "a.go", "severity": "HIGH", "message": "caps from the model"},
				{"file": "b.go", "severity": "catastrophic", "message": "made-up level"}
			]
		}`

		result, err := ParseReviewResult(payload, nil)

		require.NoError(t, err)
		require.Len(t, result.Findings, 2)
		assert.Equal(t, models.SeverityHigh, result.Findings[0].Severity)
		assert.Equal(t, models.SeverityLow, result.Findings[1].Severity)
	})

	t.Run("should tolerate markdown fences around the JSON", func(t *testing.T) {
		payload := "```json\n{\"summary\": \"ok\", \"markdown\": \"## Summary\\nok\"}\n```"

		result, err := ParseReviewResult(payload, nil)

		require.NoError(t, err)
		assert.Equal(t, "ok", result.Summary)
	})

	t.Run("should reject an empty response", func(t *testing.T) {
		_, err := ParseReviewResult("", nil)

		var appErr *domainErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, domainErrors.TypeAI, appErr.Type)
	})

	t.Run("should reject non-JSON output", func(t *testing.T) {
		_, err := ParseReviewResult("I could not review this PR, sorry.", nil)

		assert.Error(t, err)
	})
}

func TestParsePRSummary(t *testing.T) {
	t.Run("should decode and clean labels", func(t *testing.T) {
		payload := `{"title": "Add retries", "body": "Adds a retry loop", "labels": ["Feature", "made-up"]}`

		summary, err := ParsePRSummary(payload, nil)

		require.NoError(t, err)
		assert.Equal(t, "Add retries", summary.Title)
		assert.Equal(t, []string{"feature"}, summary.Labels)
	})

	t.Run("should reject a summary without a title", func(t *testing.T) {
		_, err := ParsePRSummary(`{"title": "", "body": "something"}`, nil)

		var appErr *domainErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "missing title", appErr.Context["reason"])
	})
}
