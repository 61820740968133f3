package domain

import "strings"

// SummaryPrefix starts the body of a posted issue summary comment.
const SummaryPrefix = "Summary:"

// Issue represents a GitHub issue and its discussion.
// Fields are ordered to minimize memory padding.
type Issue struct {
	Title    string
	Body     string
	Summary  string
	Comments []Comment
	ID       int
}

// Comment is one entry of an issue discussion.
type Comment struct {
	Author      string
	Association string
	Edited      string
	Status      string
	Body        string
}

// FindSummary returns the text of the first summary comment, if any.
func (i *Issue) FindSummary() (string, bool) {
	for _, c := range i.Comments {
		if strings.HasPrefix(c.Body, SummaryPrefix) {
			return strings.TrimSpace(strings.TrimPrefix(c.Body, SummaryPrefix)), true
		}
	}
	return "", false
}
