package github

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/google/go-github/v80/github"
	domainErrors "github.com/prmate/prmate/internal/errors"
	"github.com/prmate/prmate/internal/logger"
	"github.com/prmate/prmate/internal/models"
	"github.com/prmate/prmate/internal/vcs"
	"golang.org/x/oauth2"
)

var _ vcs.VCSClient = (*GitHubClient)(nil)

type PullRequestsService interface {
	Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error)
	Edit(ctx context.Context, owner, repo string, number int, pr *github.PullRequest) (*github.PullRequest, *github.Response, error)
	ListCommits(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.RepositoryCommit, *github.Response, error)
	ListFiles(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.CommitFile, *github.Response, error)
	GetRaw(ctx context.Context, owner, repo string, number int, opts github.RawOptions) (string, *github.Response, error)
}

type IssuesService interface {
	AddLabelsToIssue(ctx context.Context, owner, repo string, number int, labels []string) ([]*github.Label, *github.Response, error)
}

type RepositoriesService interface {
	GetCommit(ctx context.Context, owner, repo, sha string, opts *github.ListOptions) (*github.RepositoryCommit, *github.Response, error)
}

type GitHubClient struct {
	prService     PullRequestsService
	issuesService IssuesService
	repoService   RepositoriesService
	httpClient    *http.Client
}

func NewGitHubClient(token string) *GitHubClient {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	return &GitHubClient{
		prService:     client.PullRequests,
		issuesService: client.Issues,
		repoService:   client.Repositories,
		httpClient:    httpClient,
	}
}

func NewGitHubClientWithServices(
	prService PullRequestsService,
	issuesService IssuesService,
	repoService RepositoriesService,
) *GitHubClient {
	return &GitHubClient{
		prService:     prService,
		issuesService: issuesService,
		repoService:   repoService,
		httpClient:    &http.Client{},
	}
}

func (ghc *GitHubClient) GetPR(ctx context.Context, ref models.PRReference) (models.PRData, error) {
	log := logger.FromContext(ctx)

	log.Debug("fetching github pull request",
		"owner", ref.Owner,
		"repo", ref.Repo,
		"pr_number", ref.Number)

	pr, resp, err := ghc.prService.Get(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		if mapped := mapResponseError(resp, "get PR", ref); mapped != nil {
			return models.PRData{}, mapped
		}
		log.Error("failed to fetch github PR",
			"error", err,
			"owner", ref.Owner,
			"repo", ref.Repo,
			"pr_number", ref.Number)
		return models.PRData{}, fmt.Errorf("failed to get PR #%d: %w", ref.Number, err)
	}

	commits, _, err := ghc.prService.ListCommits(ctx, ref.Owner, ref.Repo, ref.Number, &github.ListOptions{PerPage: 100})
	if err != nil {
		return models.PRData{}, fmt.Errorf("failed to get commits for PR #%d: %w", ref.Number, err)
	}

	prCommits := make([]models.Commit, len(commits))
	for i, commit := range commits {
		prCommits[i] = models.Commit{
			SHA:     commit.GetSHA(),
			Message: commit.GetCommit().GetMessage(),
		}
	}

	prLabels := make([]string, len(pr.Labels))
	for i, label := range pr.Labels {
		prLabels[i] = label.GetName()
	}

	diff, resp, err := ghc.prService.GetRaw(ctx, ref.Owner, ref.Repo, ref.Number, github.RawOptions{Type: github.Diff})
	if err != nil {
		// If 406 error (diff too large), use fallback commit by commit
		if resp != nil && resp.StatusCode == http.StatusNotAcceptable {
			log.Warn("PR diff too large, fetching diffs commit by commit",
				"pr_number", ref.Number,
				"commits_count", len(commits))
			diff, err = ghc.getDiffFromCommits(ctx, ref, commits)
			if err != nil {
				return models.PRData{}, fmt.Errorf("failed to get diff from commits for PR #%d: %w", ref.Number, err)
			}
		} else {
			return models.PRData{}, fmt.Errorf("failed to get diff for PR #%d: %w", ref.Number, err)
		}
	}

	stats, err := ghc.getFileStats(ctx, ref)
	if err != nil {
		log.Warn("failed to compute PR file stats",
			"error", err,
			"pr_number", ref.Number)
		stats = nil
	}

	prData := models.PRData{
		Number:      ref.Number,
		Title:       pr.GetTitle(),
		Creator:     pr.GetUser().GetLogin(),
		Commits:     prCommits,
		Diff:        diff,
		BranchName:  pr.GetHead().GetRef(),
		BaseBranch:  pr.GetBase().GetRef(),
		Description: pr.GetBody(),
		Labels:      prLabels,
		FilesStats:  stats,
	}

	log.Debug("github PR fetched successfully",
		"pr_number", ref.Number,
		"title", prData.Title,
		"commits_count", len(prCommits),
		"diff_size", len(diff))

	return prData, nil
}

func (ghc *GitHubClient) UpdatePR(ctx context.Context, ref models.PRReference, summary models.PRSummary) error {
	pr := &github.PullRequest{
		Title: github.Ptr(summary.Title),
		Body:  github.Ptr(summary.Body),
	}

	_, resp, err := ghc.prService.Edit(ctx, ref.Owner, ref.Repo, ref.Number, pr)
	if err != nil {
		if mapped := mapResponseError(resp, "update PR", ref); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to update PR #%d: %w", ref.Number, err)
	}

	if len(summary.Labels) > 0 {
		if err := ghc.AddLabelsToPR(ctx, ref, summary.Labels); err != nil {
			return fmt.Errorf("failed to add labels to PR #%d: %w", ref.Number, err)
		}
	}

	return nil
}

func (ghc *GitHubClient) AddLabelsToPR(ctx context.Context, ref models.PRReference, labels []string) error {
	cleaned := make([]string, 0, len(labels))
	for _, label := range labels {
		label = strings.ToLower(strings.TrimSpace(label))
		if label != "" {
			cleaned = append(cleaned, label)
		}
	}
	if len(cleaned) == 0 {
		return nil
	}

	_, resp, err := ghc.issuesService.AddLabelsToIssue(ctx, ref.Owner, ref.Repo, ref.Number, cleaned)
	if err != nil {
		if mapped := mapResponseError(resp, "add labels", ref); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to add labels to PR #%d: %w", ref.Number, err)
	}
	return nil
}

func (ghc *GitHubClient) getFileStats(ctx context.Context, ref models.PRReference) (*models.FileStatistics, error) {
	stats := &models.FileStatistics{
		TopFiles: make([]models.FileChange, 0),
	}

	fileChanges := make([]models.FileChange, 0)
	opts := &github.ListOptions{PerPage: 100}
	for {
		files, resp, err := ghc.prService.ListFiles(ctx, ref.Owner, ref.Repo, ref.Number, opts)
		if err != nil {
			return nil, err
		}

		for _, file := range files {
			stats.Insertions += file.GetAdditions()
			stats.Deletions += file.GetDeletions()
			fileChanges = append(fileChanges, models.FileChange{
				Path:      file.GetFilename(),
				Additions: file.GetAdditions(),
				Deletions: file.GetDeletions(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	stats.FilesChanged = len(fileChanges)

	sort.Slice(fileChanges, func(i, j int) bool {
		totalI := fileChanges[i].Additions + fileChanges[i].Deletions
		totalJ := fileChanges[j].Additions + fileChanges[j].Deletions
		return totalI > totalJ
	})

	if len(fileChanges) > 5 {
		stats.TopFiles = fileChanges[:5]
	} else {
		stats.TopFiles = fileChanges
	}
	return stats, nil
}

// getDiffFromCommits gets the combined diff of all commits when the total PR diff is too large
func (ghc *GitHubClient) getDiffFromCommits(ctx context.Context, ref models.PRReference, commits []*github.RepositoryCommit) (string, error) {
	log := logger.FromContext(ctx)
	var combinedDiff strings.Builder

	log.Info("fetching diffs from commits",
		"commits_count", len(commits),
		"owner", ref.Owner,
		"repo", ref.Repo)

	for i, commit := range commits {
		sha := commit.GetSHA()
		log.Debug("processing commit",
			"current", i+1,
			"total", len(commits),
			"sha", shortSHA(sha))
		fullCommit, _, err := ghc.repoService.GetCommit(ctx, ref.Owner, ref.Repo, sha, nil)
		if err != nil {
			return "", fmt.Errorf("failed to get diff for commit %s: %w", shortSHA(sha), err)
		}

		if fullCommit.GetStats().GetTotal() > 0 {
			combinedDiff.WriteString(fmt.Sprintf("\n# Commit: %s\n", shortSHA(sha)))
			combinedDiff.WriteString(fmt.Sprintf("# Message: %s\n\n", strings.Split(commit.GetCommit().GetMessage(), "\n")[0]))

			for _, file := range fullCommit.Files {
				if file.Patch != nil {
					combinedDiff.WriteString(fmt.Sprintf("diff --git a/%s b/%s\n", file.GetFilename(), file.GetFilename()))
					combinedDiff.WriteString(*file.Patch)
					combinedDiff.WriteString("\n")
				}
			}
		}
	}

	return combinedDiff.String(), nil
}

func mapResponseError(resp *github.Response, operation string, ref models.PRReference) error {
	if resp == nil {
		return nil
	}
	repo := fmt.Sprintf("%s/%s", ref.Owner, ref.Repo)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return domainErrors.ErrGitHubTokenInvalid.
			WithContext("operation", operation).
			WithContext("pr_number", ref.Number)
	case http.StatusForbidden:
		if resp.Header.Get("Retry-After") != "" || resp.Rate.Remaining == 0 {
			return domainErrors.ErrGitHubRateLimit.
				WithContext("retry_after", resp.Header.Get("Retry-After")).
				WithContext("operation", operation)
		}
		return domainErrors.ErrGitHubInsufficientPerms.
			WithContext("operation", operation).
			WithContext("pr_number", ref.Number).
			WithContext("repo", repo)
	case http.StatusTooManyRequests:
		return domainErrors.ErrGitHubRateLimit.
			WithContext("retry_after", resp.Header.Get("Retry-After")).
			WithContext("operation", operation)
	case http.StatusNotFound:
		return domainErrors.ErrRepositoryNotFound.
			WithContext("operation", operation).
			WithContext("pr_number", ref.Number).
			WithContext("repo", repo)
	}
	return nil
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
