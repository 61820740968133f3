package prompt

import (
	"strings"
)

// ValidateText cleans generated document text before it is written to disk.
// Surrounding whitespace and an enclosing markdown fence are removed and the
// result ends with exactly one newline.
func ValidateText(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") && strings.HasSuffix(text, "```") && len(text) >= 6 {
		inner := strings.TrimSuffix(text, "```")
		if nl := strings.IndexByte(inner, '\n'); nl >= 0 {
			inner = inner[nl+1:]
		} else {
			inner = strings.TrimPrefix(inner, "```")
		}
		text = strings.TrimSpace(inner)
	}
	return text + "\n"
}

// CleanTitle strips whitespace, quotes and backticks around a generated title.
func CleanTitle(title string) string {
	title = strings.TrimSpace(title)
	title = strings.Trim(title, "\"`")
	title = strings.Trim(title, "'")
	return strings.TrimSpace(title)
}
