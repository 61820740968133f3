// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tawada/grass-grower/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockExecutor is a test double for domain.CommandExecutor.
// Handler decides the result of each command; without one every command succeeds.
type MockExecutor struct {
	Handler  func(cmd *domain.ExecCommand) ([]byte, error)
	Commands []*domain.ExecCommand
}

// Execute records cmd and delegates to Handler.
func (m *MockExecutor) Execute(_ context.Context, cmd *domain.ExecCommand) ([]byte, error) {
	m.Commands = append(m.Commands, cmd)
	if m.Handler == nil {
		return nil, nil
	}
	return m.Handler(cmd)
}

// CommandLines returns the recorded commands as strings.
func (m *MockExecutor) CommandLines() []string {
	lines := make([]string, len(m.Commands))
	for i, c := range m.Commands {
		lines[i] = c.String()
	}
	return lines
}

// MockRepositoryGateway is a test double for domain.RepositoryGateway.
// Every call is appended to Calls as "<method> <arg>".
// Fields are ordered to minimize memory padding.
type MockRepositoryGateway struct {
	LastCommit           time.Time
	SetupErr             error
	CheckoutErr          error
	CheckoutNewBranchErr error
	DeleteBranchErr      error
	DiscardErr           error
	CommitErr            error
	PushErr              error
	LastCommitErr        error
	// OnCommit runs before a successful commit, e.g. to inspect the working copy.
	OnCommit func(message string)
	RootDir  string
	Calls    []string
}

// Setup records the call.
func (m *MockRepositoryGateway) Setup(_ context.Context, repo domain.Repo, branch string) error {
	m.Calls = append(m.Calls, fmt.Sprintf("setup %s %s", repo, branch))
	return m.SetupErr
}

// Dir returns RootDir.
func (m *MockRepositoryGateway) Dir(_ domain.Repo) string {
	return m.RootDir
}

// CheckoutBranch records the call.
func (m *MockRepositoryGateway) CheckoutBranch(_ context.Context, _ domain.Repo, branch string) error {
	m.Calls = append(m.Calls, "checkout "+branch)
	return m.CheckoutErr
}

// CheckoutNewBranch records the call.
func (m *MockRepositoryGateway) CheckoutNewBranch(_ context.Context, _ domain.Repo, branch string) error {
	m.Calls = append(m.Calls, "checkout -b "+branch)
	return m.CheckoutNewBranchErr
}

// DeleteBranch records the call.
func (m *MockRepositoryGateway) DeleteBranch(_ context.Context, _ domain.Repo, branch string) error {
	m.Calls = append(m.Calls, "delete "+branch)
	return m.DeleteBranchErr
}

// Discard records the call.
func (m *MockRepositoryGateway) Discard(_ context.Context, _ domain.Repo) error {
	m.Calls = append(m.Calls, "discard")
	return m.DiscardErr
}

// Commit records the call.
func (m *MockRepositoryGateway) Commit(_ context.Context, _ domain.Repo, message string) error {
	m.Calls = append(m.Calls, "commit "+message)
	if m.CommitErr != nil {
		return m.CommitErr
	}
	if m.OnCommit != nil {
		m.OnCommit(message)
	}
	return nil
}

// Push records the call.
func (m *MockRepositoryGateway) Push(_ context.Context, _ domain.Repo, branch string) error {
	m.Calls = append(m.Calls, "push "+branch)
	return m.PushErr
}

// LastCommitTime returns LastCommit.
func (m *MockRepositoryGateway) LastCommitTime(_ context.Context, _ domain.Repo, branch string) (time.Time, error) {
	m.Calls = append(m.Calls, "last-commit "+branch)
	return m.LastCommit, m.LastCommitErr
}

// CreatedIssue is an issue created through MockIssueTracker.
type CreatedIssue struct {
	Title string
	Body  string
}

// Reply is a comment posted through MockIssueTracker.
type Reply struct {
	Body    string
	IssueID int
}

// MockIssueTracker is a test double for domain.IssueTracker.
// Fields are ordered to minimize memory padding.
type MockIssueTracker struct {
	Issues    map[int]*domain.Issue
	GetErr    error
	CreateErr error
	ReplyErr  error
	Created   []CreatedIssue
	Replies   []Reply
}

// NewMockIssueTracker creates a new MockIssueTracker with initialized maps.
func NewMockIssueTracker() *MockIssueTracker {
	return &MockIssueTracker{Issues: make(map[int]*domain.Issue)}
}

// GetIssue returns the stored issue.
func (m *MockIssueTracker) GetIssue(_ context.Context, _ domain.Repo, id int) (*domain.Issue, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	issue, ok := m.Issues[id]
	if !ok {
		return nil, domain.ErrIssueNotFound
	}
	return issue, nil
}

// ListIssueIDs returns the stored issue IDs.
func (m *MockIssueTracker) ListIssueIDs(_ context.Context, _ domain.Repo) ([]int, error) {
	ids := make([]int, 0, len(m.Issues))
	for id := range m.Issues {
		ids = append(ids, id)
	}
	return ids, nil
}

// CreateIssue records the issue.
func (m *MockIssueTracker) CreateIssue(_ context.Context, _ domain.Repo, title, body string) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.Created = append(m.Created, CreatedIssue{Title: title, Body: body})
	return nil
}

// ReplyIssue records the reply.
func (m *MockIssueTracker) ReplyIssue(_ context.Context, _ domain.Repo, id int, body string) error {
	if m.ReplyErr != nil {
		return m.ReplyErr
	}
	m.Replies = append(m.Replies, Reply{IssueID: id, Body: body})
	return nil
}

// MockLLM is a test double for domain.LLM.
// Texts and JSONs are consumed in order, one per call.
// Fields are ordered to minimize memory padding.
type MockLLM struct {
	TextErr  error
	JSONErr  error
	Texts    []string
	JSONs    []string
	Requests [][]domain.Message
}

// GenerateText returns the next scripted text.
func (m *MockLLM) GenerateText(_ context.Context, messages []domain.Message) (string, error) {
	m.Requests = append(m.Requests, messages)
	if m.TextErr != nil {
		return "", m.TextErr
	}
	if len(m.Texts) == 0 {
		return "", fmt.Errorf("mock llm: no scripted text left")
	}
	text := m.Texts[0]
	m.Texts = m.Texts[1:]
	return text, nil
}

// GenerateJSON decodes the next scripted JSON document into out.
func (m *MockLLM) GenerateJSON(_ context.Context, messages []domain.Message, out any) error {
	m.Requests = append(m.Requests, messages)
	if m.JSONErr != nil {
		return m.JSONErr
	}
	if len(m.JSONs) == 0 {
		return fmt.Errorf("mock llm: no scripted json left")
	}
	doc := m.JSONs[0]
	m.JSONs = m.JSONs[1:]
	return json.Unmarshal([]byte(doc), out)
}
