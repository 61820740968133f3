// Package issuetext parses the plain-text issue dumps printed by the gh CLI.
//
// The format alternates attribute blocks and body blocks separated by lines
// consisting of "--". Attribute blocks hold "key:\tvalue" lines.
package issuetext

import (
	"bufio"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/tawada/grass-grower/internal/domain"
)

const (
	delimiter         = "\n--\n"
	trailingDelimiter = "\n--"
	attrSeparator     = ":\t"
)

// Attribute keys.
const (
	KeyTitle       = "title"
	KeyAuthor      = "author"
	KeyAssociation = "association"
	KeyEdited      = "edited"
	KeyStatus      = "status"
)

// IssueKeys are the attributes recognized in an issue header.
var IssueKeys = []string{KeyTitle}

// CommentKeys are the attributes recognized in a comment header.
// A comment record needs all of them.
var CommentKeys = []string{KeyAuthor, KeyAssociation, KeyEdited, KeyStatus}

// Record is one attribute block paired with the body block that follows it.
type Record struct {
	Attrs map[string]string
	Body  string
}

// SplitFields splits raw text on delimiter lines.
// A delimiter at the very end of text is not followed by a field.
func SplitFields(text string) []string {
	if text == "" {
		return nil
	}
	fields := strings.Split(text, delimiter)
	last := len(fields) - 1
	if head, ok := strings.CutSuffix(fields[last], trailingDelimiter); ok {
		fields[last] = head
	} else if last > 0 && fields[last] == "" {
		fields = fields[:last]
	}
	return fields
}

// Parse converts text into records, keeping only the given attribute keys.
// Even-indexed fields are attribute blocks and odd-indexed fields are bodies.
// An attribute block with no recognized key does not open a record, a body
// with no open record is dropped, and a trailing attribute block without a
// body produces no record.
func Parse(text string, keys []string) []Record {
	var (
		records []Record
		open    map[string]string
	)
	for i, field := range SplitFields(text) {
		if i%2 == 0 {
			open = parseAttrs(field, keys)
			continue
		}
		if open == nil {
			continue
		}
		records = append(records, Record{Attrs: open, Body: trimOneNewline(field)})
		open = nil
	}
	return records
}

// ParseIssue parses the output of "gh issue view" into an issue without comments.
func ParseIssue(text string, id int) (*domain.Issue, error) {
	if records := Parse(text, IssueKeys); len(records) > 0 {
		return &domain.Issue{
			ID:    id,
			Title: records[0].Attrs[KeyTitle],
			Body:  records[0].Body,
		}, nil
	}
	// gh prints nothing after the delimiter for an issue without a body.
	if fields := SplitFields(text); len(fields) > 0 {
		if attrs := parseAttrs(fields[0], IssueKeys); attrs != nil {
			return &domain.Issue{ID: id, Title: attrs[KeyTitle]}, nil
		}
	}
	return nil, fmt.Errorf("%w: no issue header found", domain.ErrMalformedIssueText)
}

// ParseComments parses the output of "gh issue view --comments".
// Records missing any comment attribute are skipped; their number is returned.
func ParseComments(text string) ([]domain.Comment, int) {
	var (
		comments []domain.Comment
		skipped  int
	)
	for _, rec := range Parse(text, CommentKeys) {
		if !hasAll(rec.Attrs, CommentKeys) {
			skipped++
			continue
		}
		comments = append(comments, domain.Comment{
			Author:      rec.Attrs[KeyAuthor],
			Association: rec.Attrs[KeyAssociation],
			Edited:      rec.Attrs[KeyEdited],
			Status:      rec.Attrs[KeyStatus],
			Body:        rec.Body,
		})
	}
	return comments, skipped
}

// ParseIssueIDs parses the output of "gh issue list", one "<id>\t..." line per issue.
func ParseIssueIDs(text string) ([]int, error) {
	var ids []int
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		head, _, _ := strings.Cut(line, "\t")
		id, err := strconv.Atoi(strings.TrimPrefix(head, "#"))
		if err != nil {
			return nil, fmt.Errorf("%w: bad issue list line %q", domain.ErrMalformedIssueText, line)
		}
		ids = append(ids, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func parseAttrs(field string, keys []string) map[string]string {
	var attrs map[string]string
	for _, line := range strings.Split(field, "\n") {
		parts := strings.Split(line, attrSeparator)
		if len(parts) != 2 || !slices.Contains(keys, parts[0]) {
			continue
		}
		if attrs == nil {
			attrs = make(map[string]string, len(keys))
		}
		attrs[parts[0]] = strings.TrimSpace(parts[1])
	}
	return attrs
}

func trimOneNewline(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2]
	}
	return strings.TrimSuffix(s, "\n")
}

func hasAll(attrs map[string]string, keys []string) bool {
	for _, k := range keys {
		if _, ok := attrs[k]; !ok {
			return false
		}
	}
	return true
}
