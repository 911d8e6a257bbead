package models

type ReviewSeverity string

const (
	SeverityCritical ReviewSeverity = "critical"
	SeverityHigh     ReviewSeverity = "high"
	SeverityMedium   ReviewSeverity = "medium"
	SeverityLow      ReviewSeverity = "low"
)

type (
	// ReviewResult is the structured outcome of an AI review of a PR.
	ReviewResult struct {
		Summary     string
		Score       int
		Findings    []ReviewFinding
		SecurityOK  bool
		EffortLabel string
		Markdown    string
		Usage       *TokenUsage
	}

	// ReviewFinding is a single issue raised by the reviewer.
	ReviewFinding struct {
		File     string
		Line     int
		Severity ReviewSeverity
		Category string
		Message  string
	}
)
