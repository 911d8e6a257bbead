package ai

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/prmate/prmate/internal/config"
	"github.com/prmate/prmate/internal/models"
)

// PromptData holds the parameters for template rendering
type PromptData struct {
	PRContent         string
	Question          string
	ExtraInstructions string
	RequireSecurity   bool
	RequireTests      bool
	RequireScore      bool
	RequireFocused    bool
	SecurityLabels    bool
	EffortLabels      bool
}

// RenderPrompt renders a prompt template with the provided data
func RenderPrompt(name, tmplStr string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("error parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("error executing template %s: %w", name, err)
	}

	return buf.String(), nil
}

// BuildPRContent assembles the PR block shared by all prompts: metadata,
// commits, change stats, and the diff clamped to maxDiffChars.
func BuildPRContent(prData models.PRData, maxDiffChars int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "PR #%d: %s\n", prData.Number, prData.Title)
	fmt.Fprintf(&b, "Author: %s\n", prData.Creator)
	fmt.Fprintf(&b, "Branch: %s -> %s\n", prData.BranchName, prData.BaseBranch)
	if prData.Description != "" {
		fmt.Fprintf(&b, "\nDescription:\n%s\n", prData.Description)
	}

	b.WriteString("\nCommits:\n")
	for _, commit := range prData.Commits {
		fmt.Fprintf(&b, "- %s\n", strings.Split(commit.Message, "\n")[0])
	}

	if prData.FilesStats != nil {
		fmt.Fprintf(&b, "\nChange footprint: %d files, +%d -%d\n",
			prData.FilesStats.FilesChanged,
			prData.FilesStats.Insertions,
			prData.FilesStats.Deletions)
		for _, file := range prData.FilesStats.TopFiles {
			fmt.Fprintf(&b, "- %s (+%d -%d)\n", file.Path, file.Additions, file.Deletions)
		}
	}

	diff := prData.Diff
	if maxDiffChars > 0 && len(diff) > maxDiffChars {
		diff = diff[:maxDiffChars] + "\n\n[diff truncated]"
	}
	b.WriteString("\nChanges:\n")
	b.WriteString(diff)

	return b.String()
}

// NewReviewPromptData maps the reviewer tunables into template data.
func NewReviewPromptData(prContent string, reviewCfg config.ReviewConfig) PromptData {
	return PromptData{
		PRContent:         prContent,
		ExtraInstructions: reviewCfg.ExtraInstructions,
		RequireSecurity:   reviewCfg.RequireSecurityReview,
		RequireTests:      reviewCfg.RequireTestsReview,
		RequireScore:      reviewCfg.RequireScoreReview,
		RequireFocused:    reviewCfg.RequireFocusedReview,
		SecurityLabels:    reviewCfg.EnableSecurityLabels,
		EffortLabels:      reviewCfg.EnableEffortLabels,
	}
}

const ReviewPromptTemplate = `# Task
  Act as a Senior Tech Lead and review a Pull Request.

  # PR Content
  {{.PRContent}}

  # Golden Rules (Constraints)
  1. **No Hallucinations:** If it's not in the diff, DO NOT invent it.
  2. **Tone:** Professional, direct, technical.
  3. **Format:** Raw JSON only. Do not wrap in markdown blocks.

  # Review Focus
{{- if .RequireSecurity}}
  - Look for security vulnerabilities: injection, auth bypass, secrets in code, unsafe deserialization.
{{- end}}
{{- if .RequireTests}}
  - Check whether the change is covered by tests and call out missing coverage.
{{- end}}
{{- if .RequireFocused}}
  - Judge whether the PR is focused on a single concern or mixes unrelated changes.
{{- end}}
{{- if .RequireScore}}
  - Assign an overall score from 0 (broken) to 100 (ready to merge).
{{- end}}
{{- if .SecurityLabels}}
  - Set "security_ok" to whether the change is safe to merge from a security standpoint.
{{- end}}
{{- if .EffortLabels}}
  - Estimate the review effort for this PR as S, M, or L.
{{- end}}
{{- if .ExtraInstructions}}

  # Extra Instructions
  {{.ExtraInstructions}}
{{- end}}

  # STRICT OUTPUT FORMAT
  You MUST return ONLY valid JSON matching this schema. No markdown blocks,
  no explanations, no text before or after.

  {
    "summary": "one-paragraph overview of the PR",
    "score": 0,
{{- if .SecurityLabels}}
    "security_ok": true,
{{- end}}
{{- if .EffortLabels}}
    "effort": "S|M|L",
{{- end}}
    "findings": [
      {
        "file": "path/to/file.go",
        "line": 42,
        "severity": "critical|high|medium|low",
        "category": "bug|security|performance|style|tests",
        "message": "what is wrong and why it matters"
      }
    ],
    "markdown": "the full review as markdown, with '## Summary', '## Possible Issues' and '## Security Issues' sections"
  }

  Type rules (STRICT):
  - "summary" and "markdown" MUST be strings, never null.
  - "score" MUST be an integer{{if not .RequireScore}} (use 0 when scoring is not requested){{end}}.
{{- if .EffortLabels}}
  - "effort" MUST be one of "S", "M", "L".
{{- end}}
  - "findings" MUST be an array, use [] when there is nothing to report.

  Generate the review now. Return ONLY the JSON object, nothing else.`

const DescribePromptTemplate = `# Task
  Act as a Senior Tech Lead and generate a Pull Request description.

  # PR Content
  {{.PRContent}}

  # Golden Rules (Constraints)
  1. **No Hallucinations:** If it's not in the diff, DO NOT invent it.
  2. **Tone:** Professional, direct, technical. Use first person ("I implemented", "I added").
  3. **Format:** Raw JSON only. Do not wrap in markdown blocks.

  # Instructions
  1. Title: Catchy but descriptive (max 80 chars).
  2. Key Changes: Filter the noise. Explain the *technical impact*, not just the code change.
  3. Labels: Choose wisely (feature, fix, refactor, docs, infra, test, breaking-change).

  # STRICT OUTPUT FORMAT
  You MUST return ONLY valid JSON. No markdown blocks, no explanations,
  no text before or after.

  {
    "title": "PR title (max 80 chars)",
    "body": "Detailed markdown body with overview, key changes, and technical impact",
    "labels": ["feature"]
  }

  Type rules (STRICT):
  - "title" MUST be a string, never null, never empty.
  - "body" MUST be a string, can contain markdown.
  - "labels" MUST be an array of strings, use [] when empty.

  Generate the description now. Return ONLY the JSON object, nothing else.`

const ImprovePromptTemplate = `# Task
  Act as a Senior Tech Lead and suggest concrete improvements for a Pull Request.

  # PR Content
  {{.PRContent}}

  # Golden Rules (Constraints)
  1. **No Hallucinations:** Only suggest changes to code that appears in the diff.
  2. **Tone:** Professional, direct, technical.
  3. **Format:** Markdown.

  # Instructions
  Focus on:
  - Code quality and readability
  - Performance optimizations
  - Better design patterns
  - Potential edge cases
  - Security improvements
{{- if .ExtraInstructions}}

  # Extra Instructions
  {{.ExtraInstructions}}
{{- end}}

  For each suggestion show the relevant existing code and the improved
  version in fenced code blocks. Respond in markdown, nothing else.`

const AskPromptTemplate = `# Task
  Answer a question about a Pull Request.

  # PR Content
  {{.PRContent}}

  # Question
  {{.Question}}

  # Golden Rules (Constraints)
  1. **No Hallucinations:** Base the answer strictly on the PR content above.
  2. If the PR content does not contain the answer, say so explicitly.
  3. **Format:** Markdown.

  Answer the question now.`
