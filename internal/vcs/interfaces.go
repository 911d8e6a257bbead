package vcs

import (
	"context"
	"strconv"

	domainErrors "github.com/prmate/prmate/internal/errors"
	"github.com/prmate/prmate/internal/models"
	"github.com/prmate/prmate/internal/regex"
)

// VCSClient defines the methods needed from a Git hosting provider to
// analyze and manage pull requests.
type VCSClient interface {
	// GetPR gets the PR data (title, commits, diff, etc.).
	GetPR(ctx context.Context, ref models.PRReference) (models.PRData, error)
	// UpdatePR updates a Pull Request (title and body) in the provider.
	UpdatePR(ctx context.Context, ref models.PRReference, summary models.PRSummary) error
	// AddLabelsToPR adds labels to a PR.
	AddLabelsToPR(ctx context.Context, ref models.PRReference, labels []string) error
}

// ParsePRReference resolves a pull request reference from either a GitHub
// web URL (https://github.com/owner/repo/pull/123) or the owner/repo#123
// shorthand.
func ParsePRReference(raw string) (models.PRReference, error) {
	if m := regex.GitHubPRURL.FindStringSubmatch(raw); len(m) == 4 {
		number, err := strconv.Atoi(m[3])
		if err != nil {
			return models.PRReference{}, domainErrors.ErrInvalidPRReference.WithContext("input", raw)
		}
		return models.PRReference{
			Provider: "github",
			Owner:    m[1],
			Repo:     m[2],
			Number:   number,
		}, nil
	}

	if m := regex.ShortPRRef.FindStringSubmatch(raw); len(m) == 4 {
		number, err := strconv.Atoi(m[3])
		if err != nil {
			return models.PRReference{}, domainErrors.ErrInvalidPRReference.WithContext("input", raw)
		}
		return models.PRReference{
			Provider: "github",
			Owner:    m[1],
			Repo:     m[2],
			Number:   number,
		}, nil
	}

	return models.PRReference{}, domainErrors.ErrInvalidPRReference.WithContext("input", raw)
}
