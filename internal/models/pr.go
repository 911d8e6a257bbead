package models

type (
	// PRReference identifies a pull request on a Git provider.
	PRReference struct {
		Provider string
		Owner    string
		Repo     string
		Number   int
	}

	// PRData contains information extracted from a Pull Request.
	PRData struct {
		Number      int
		Title       string
		Creator     string
		Commits     []Commit
		Diff        string
		BranchName  string
		BaseBranch  string
		Description string
		Labels      []string
		FilesStats  *FileStatistics
	}

	// Commit represents a commit included in the PR.
	Commit struct {
		SHA     string
		Message string
	}

	// PRSummary is a generated description for the PR, with title, body, and labels.
	PRSummary struct {
		Title  string
		Body   string
		Labels []string
		Usage  *TokenUsage
	}

	// FileStatistics aggregates the change footprint of a PR.
	FileStatistics struct {
		FilesChanged int
		Insertions   int
		Deletions    int
		TopFiles     []FileChange
	}

	// FileChange describes the change volume of a single file.
	FileChange struct {
		Path      string
		Additions int
		Deletions int
	}
)
