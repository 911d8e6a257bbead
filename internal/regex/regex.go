package regex

import "regexp"

var (
	// PR reference patterns
	GitHubPRURL = regexp.MustCompile(`^https?://(?:www\.)?github\.com/([^/]+)/([^/]+)/pull/(\d+)(?:/[^?#]*)?(?:[?#].*)?$`)
	ShortPRRef  = regexp.MustCompile(`^([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+)#(\d+)$`)

	// Review output parsing
	BugSectionHeading = regexp.MustCompile(`(?m)^(## Bugs|### Bugs|## Possible Issues|### Possible Issues|## Security Issues|### Security Issues)\s*$`)
	MarkdownHeading   = regexp.MustCompile(`(?m)^#{1,6}\s`)

	// AI and JSON parsing
	MarkdownJSONBlock = regexp.MustCompile("(?s)```(?:json)?\n?(.*?)```")
	JSONString        = regexp.MustCompile(`"(?:\\.|[^"\\])*"`)
)
