package ai

import (
	"encoding/json"
	"strings"

	domainErrors "github.com/prmate/prmate/internal/errors"
	"github.com/prmate/prmate/internal/models"
)

type reviewResultJSON struct {
	Summary    string `json:"summary"`
	Score      int    `json:"score"`
	SecurityOK bool   `json:"security_ok"`
	Effort     string `json:"effort"`
	Findings   []struct {
		File     string `json:"file"`
		Line     int    `json:"line"`
		Severity string `json:"severity"`
		Category string `json:"category"`
		Message  string `json:"message"`
	} `json:"findings"`
	Markdown string `json:"markdown"`
}

type prSummaryJSON struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels"`
}

// ParseReviewResult decodes a model response into a ReviewResult,
// tolerating markdown fences and stray text around the JSON.
func ParseReviewResult(text string, usage *models.TokenUsage) (models.ReviewResult, error) {
	if text == "" {
		return models.ReviewResult{}, domainErrors.ErrInvalidAIOutput.
			WithContext("reason", "empty response from AI").
			WithContext("operation", "review PR")
	}

	var parsed reviewResultJSON
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &parsed); err != nil {
		return models.ReviewResult{}, domainErrors.ErrInvalidAIOutput.
			WithError(err).
			WithContext("operation", "review PR")
	}

	result := models.ReviewResult{
		Summary:     parsed.Summary,
		Score:       parsed.Score,
		SecurityOK:  parsed.SecurityOK,
		EffortLabel: parsed.Effort,
		Markdown:    parsed.Markdown,
		Usage:       usage,
	}
	for _, f := range parsed.Findings {
		result.Findings = append(result.Findings, models.ReviewFinding{
			File:     f.File,
			Line:     f.Line,
			Severity: parseSeverity(f.Severity),
			Category: f.Category,
			Message:  f.Message,
		})
	}

	return result, nil
}

// parseSeverity maps a model-reported severity onto the known set.
// Anything unrecognized collapses to low rather than leaking free text.
func parseSeverity(raw string) models.ReviewSeverity {
	switch sev := models.ReviewSeverity(strings.ToLower(strings.TrimSpace(raw))); sev {
	case models.SeverityCritical, models.SeverityHigh, models.SeverityMedium, models.SeverityLow:
		return sev
	default:
		return models.SeverityLow
	}
}

// ParsePRSummary decodes a model response into a PRSummary.
func ParsePRSummary(text string, usage *models.TokenUsage) (models.PRSummary, error) {
	if text == "" {
		return models.PRSummary{}, domainErrors.ErrInvalidAIOutput.
			WithContext("reason", "empty response from AI").
			WithContext("operation", "describe PR")
	}

	var parsed prSummaryJSON
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &parsed); err != nil {
		return models.PRSummary{}, domainErrors.ErrInvalidAIOutput.
			WithError(err).
			WithContext("operation", "describe PR")
	}

	if parsed.Title == "" {
		return models.PRSummary{}, domainErrors.ErrInvalidAIOutput.
			WithContext("reason", "missing title").
			WithContext("operation", "describe PR")
	}

	return models.PRSummary{
		Title:  parsed.Title,
		Body:   parsed.Body,
		Labels: CleanLabels(parsed.Labels),
		Usage:  usage,
	}, nil
}
