package ai

import (
	"context"

	"github.com/prmate/prmate/internal/models"
)

// PRReviewer defines the interface for services that review Pull Requests.
type PRReviewer interface {
	// GeneratePRReview reviews a Pull Request given a rendered prompt.
	GeneratePRReview(ctx context.Context, prompt string) (models.ReviewResult, error)
}

// PRDescriber defines the interface for services that generate PR descriptions.
type PRDescriber interface {
	// GeneratePRSummary generates a title, body, and labels for a PR given a prompt.
	GeneratePRSummary(ctx context.Context, prompt string) (models.PRSummary, error)
}

// PRAnswerer defines the interface for free-form generation over a PR:
// answering questions and proposing improvements.
type PRAnswerer interface {
	// GenerateAnswer returns markdown text for the given prompt.
	GenerateAnswer(ctx context.Context, prompt string) (string, *models.TokenUsage, error)
}
