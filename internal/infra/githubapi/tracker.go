// Package githubapi implements domain.IssueTracker on the GitHub REST API.
package githubapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/go-github/v84/github"
	"github.com/tawada/grass-grower/internal/domain"
)

const perPage = 100

// Ensure Tracker implements domain.IssueTracker.
var _ domain.IssueTracker = (*Tracker)(nil)

// Tracker reads and writes issues through the REST API.
type Tracker struct {
	client *github.Client
}

// NewTracker creates a Tracker authenticated with token.
func NewTracker(token string) *Tracker {
	return NewTrackerWithClient(github.NewClient(nil).WithAuthToken(token))
}

// NewTrackerWithClient creates a Tracker using an existing client.
// This is useful for testing against a local server.
func NewTrackerWithClient(client *github.Client) *Tracker {
	return &Tracker{client: client}
}

// GetIssue fetches the issue and all of its comments.
func (t *Tracker) GetIssue(ctx context.Context, repo domain.Repo, id int) (*domain.Issue, error) {
	gi, _, err := t.client.Issues.Get(ctx, repo.Owner, repo.Name, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get issue #%d: %w", id, classify(err))
	}
	issue := &domain.Issue{
		ID:    gi.GetNumber(),
		Title: gi.GetTitle(),
		Body:  gi.GetBody(),
	}

	opts := &github.IssueListCommentsOptions{ListOptions: github.ListOptions{PerPage: perPage}}
	for {
		page, resp, err := t.client.Issues.ListComments(ctx, repo.Owner, repo.Name, id, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list comments of issue #%d: %w", id, classify(err))
		}
		for _, c := range page {
			issue.Comments = append(issue.Comments, toComment(c))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	if summary, ok := issue.FindSummary(); ok {
		issue.Summary = summary
	}
	return issue, nil
}

// ListIssueIDs returns the numbers of the open issues, excluding pull requests.
func (t *Tracker) ListIssueIDs(ctx context.Context, repo domain.Repo) ([]int, error) {
	var ids []int
	opts := &github.IssueListByRepoOptions{State: "open", ListOptions: github.ListOptions{PerPage: perPage}}
	for {
		page, resp, err := t.client.Issues.ListByRepo(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list issues: %w", classify(err))
		}
		for _, gi := range page {
			if gi.IsPullRequest() {
				continue
			}
			ids = append(ids, gi.GetNumber())
		}
		if resp.NextPage == 0 {
			return ids, nil
		}
		opts.ListOptions.Page = resp.NextPage
	}
}

// CreateIssue opens a new issue.
func (t *Tracker) CreateIssue(ctx context.Context, repo domain.Repo, title, body string) error {
	_, _, err := t.client.Issues.Create(ctx, repo.Owner, repo.Name, &github.IssueRequest{
		Title: github.Ptr(title),
		Body:  github.Ptr(body),
	})
	if err != nil {
		return fmt.Errorf("failed to create issue: %w", classify(err))
	}
	return nil
}

// ReplyIssue posts a comment on an issue.
func (t *Tracker) ReplyIssue(ctx context.Context, repo domain.Repo, id int, body string) error {
	_, _, err := t.client.Issues.CreateComment(ctx, repo.Owner, repo.Name, id, &github.IssueComment{
		Body: github.Ptr(body),
	})
	if err != nil {
		return fmt.Errorf("failed to comment on issue #%d: %w", id, classify(err))
	}
	return nil
}

func toComment(c *github.IssueComment) domain.Comment {
	edited := c.UpdatedAt != nil && c.CreatedAt != nil && c.UpdatedAt.After(c.CreatedAt.Time)
	return domain.Comment{
		Author:      c.GetUser().GetLogin(),
		Association: c.GetAuthorAssociation(),
		Edited:      strconv.FormatBool(edited),
		Status:      "none",
		Body:        c.GetBody(),
	}
}

// classify maps a 404 response to domain.ErrIssueNotFound.
func classify(err error) error {
	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil && respErr.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", domain.ErrIssueNotFound, err)
	}
	return err
}
