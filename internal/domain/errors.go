package domain

import "errors"

// Patch errors.
var (
	ErrCodeNotFound        = errors.New("target code not found")
	ErrCodeNotModified     = errors.New("no effective change")
	ErrPathOutsideRepo     = errors.New("file path escapes repository root")
	ErrInvalidModification = errors.New("invalid modification")
)

// Command errors. A *CommandError unwraps to exactly one of these.
var (
	ErrBranchExists      = errors.New("branch already exists")
	ErrNothingToCommit   = errors.New("nothing to commit")
	ErrNoRefFetched      = errors.New("no such ref was fetched")
	ErrGitHubConnection  = errors.New("could not connect to github.com")
	ErrRepoNotFound      = errors.New("repository not found")
	ErrUnknownCommand    = errors.New("command failed")
	ErrCommandNotStarted = errors.New("command could not be started")
)

// LLM errors.
var (
	ErrMissingAPIKey    = errors.New("api key is not set")
	ErrLLMJSONParse     = errors.New("llm response is not valid json")
	ErrEmptyCompletion  = errors.New("llm returned an empty response")
	ErrUnknownProvider  = errors.New("unknown llm provider")
	ErrEmptyCommitTitle = errors.New("generated commit message is empty")
)

// Input and workflow errors.
var (
	ErrInvalidRepo         = errors.New("invalid repository format")
	ErrMissingIssueID      = errors.New("issue id is required for this action")
	ErrUnsupportedLanguage = errors.New("unsupported code language")
	ErrIssueNotFound       = errors.New("issue not found")
	ErrReadmeNotFound      = errors.New("README.md not found")
	ErrAlreadySummarized   = errors.New("issue already has a summary")
	ErrMalformedIssueText  = errors.New("malformed issue text")
	ErrUnknownBackend      = errors.New("unknown github backend")
)
