package providers

import (
	"github.com/prmate/prmate/internal/config"
	domainErrors "github.com/prmate/prmate/internal/errors"
	"github.com/prmate/prmate/internal/vcs"
	"github.com/prmate/prmate/internal/vcs/github"
)

// NewVCSClient creates a VCSClient based on the configured Git provider
func NewVCSClient(cfg *config.Config) (vcs.VCSClient, error) {
	switch cfg.GitProvider {
	case "github":
		return github.NewGitHubClient(cfg.GitHub.Token), nil
	default:
		return nil, domainErrors.ErrProviderNotSupported.
			WithContext("git_provider", cfg.GitProvider)
	}
}
