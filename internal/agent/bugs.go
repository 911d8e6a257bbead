package agent

import (
	"strings"

	"github.com/prmate/prmate/internal/regex"
)

// ExtractBugSections pulls the bug-related sections out of a review in
// markdown. A section starts at a recognized heading (Bugs, Possible
// Issues, Security Issues at level two or three) and runs until the next
// markdown heading.
func ExtractBugSections(markdown string) []string {
	starts := regex.BugSectionHeading.FindAllStringIndex(markdown, -1)
	if len(starts) == 0 {
		return nil
	}

	var sections []string
	for _, loc := range starts {
		rest := markdown[loc[0]:]
		headingEnd := strings.Index(rest, "\n")
		if headingEnd < 0 {
			sections = append(sections, strings.TrimSpace(rest))
			continue
		}

		body := rest[headingEnd+1:]
		end := len(body)
		if next := regex.MarkdownHeading.FindStringIndex(body); next != nil {
			end = next[0]
		}

		section := strings.TrimSpace(rest[:headingEnd+1+end])
		if section != "" {
			sections = append(sections, section)
		}
	}

	return sections
}

// FormatBugReport assembles the final bug scan report. When no bug
// sections are present the full review is appended after the fallback
// notice so nothing is silently dropped.
func FormatBugReport(reviewMarkdown, noBugsNotice string) string {
	var sb strings.Builder
	sb.WriteString("# Bug Scan Results\n\n")

	sections := ExtractBugSections(reviewMarkdown)
	if len(sections) == 0 {
		sb.WriteString(noBugsNotice)
		sb.WriteString("\n\n## Full Review\n\n")
		sb.WriteString(strings.TrimSpace(reviewMarkdown))
		return sb.String()
	}

	sb.WriteString(strings.Join(sections, "\n\n"))
	return sb.String()
}
