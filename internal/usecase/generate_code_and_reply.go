package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/tawada/grass-grower/internal/domain"
	"github.com/tawada/grass-grower/internal/patch"
	"github.com/tawada/grass-grower/internal/prompt"
)

// GenerateCodeFromIssueAndReplyInput contains the parameters for fixing an issue.
// Fields are ordered to minimize memory padding.
type GenerateCodeFromIssueAndReplyInput struct {
	Repo    domain.Repo
	Branch  string
	Lang    domain.Language
	IssueID int
}

// GenerateCodeFromIssueAndReplyOutput describes the pushed change.
type GenerateCodeFromIssueAndReplyOutput struct {
	Modification  domain.Modification
	CommitMessage string
	Branch        string
}

// GenerateCodeFromIssueAndReply generates a modification for an issue, applies
// it on a temporary branch, pushes it and replies to the issue.
// Fields are ordered to minimize memory padding.
type GenerateCodeFromIssueAndReply struct {
	repos               domain.RepositoryGateway
	issues              domain.IssueTracker
	llm                 domain.LLM
	assembler           *prompt.Assembler
	engine              *patch.Engine
	reportPatchFailures bool
}

// NewGenerateCodeFromIssueAndReply creates a new GenerateCodeFromIssueAndReply use case.
// When reportPatchFailures is set, a modification that cannot be applied is
// reported on the issue before the error is returned.
func NewGenerateCodeFromIssueAndReply(
	repos domain.RepositoryGateway,
	issues domain.IssueTracker,
	llm domain.LLM,
	assembler *prompt.Assembler,
	engine *patch.Engine,
	reportPatchFailures bool,
) *GenerateCodeFromIssueAndReply {
	return &GenerateCodeFromIssueAndReply{
		repos:               repos,
		issues:              issues,
		llm:                 llm,
		assembler:           assembler,
		engine:              engine,
		reportPatchFailures: reportPatchFailures,
	}
}

// Execute runs the whole fix workflow. The temporary branch is removed and the
// base branch checked out again on every path.
func (uc *GenerateCodeFromIssueAndReply) Execute(ctx context.Context, in GenerateCodeFromIssueAndReplyInput) (*GenerateCodeFromIssueAndReplyOutput, error) {
	log := clog.FromContext(ctx).With("repo", in.Repo.String(), "issue", in.IssueID)

	if err := uc.repos.Setup(ctx, in.Repo, in.Branch); err != nil {
		log.Error("failed to set up repository", "error", err)
		return nil, fmt.Errorf("setup repository: %w", err)
	}

	branch := domain.IssueBranchName(in.IssueID)
	var out *GenerateCodeFromIssueAndReplyOutput
	err := withTemporaryBranch(ctx, uc.repos, in.Repo, in.Branch, branch, true, func() error {
		var err error
		out, err = uc.run(ctx, in, branch)
		return err
	})
	if err != nil {
		log.Error("failed to fix issue", "error", err)
		return nil, err
	}
	return out, nil
}

func (uc *GenerateCodeFromIssueAndReply) run(ctx context.Context, in GenerateCodeFromIssueAndReplyInput, branch string) (*GenerateCodeFromIssueAndReplyOutput, error) {
	log := clog.FromContext(ctx).With("repo", in.Repo.String(), "issue", in.IssueID)
	root := uc.repos.Dir(in.Repo)

	issue, err := uc.issues.GetIssue(ctx, in.Repo, in.IssueID)
	if err != nil {
		return nil, fmt.Errorf("get issue #%d: %w", in.IssueID, err)
	}

	mod, err := uc.generateModification(ctx, root, in.Lang, issue)
	if err != nil {
		return nil, err
	}
	log.Info("modification generated", "file", mod.FilePath)

	ok, err := uc.engine.Verify(root, mod)
	if err != nil {
		return nil, fmt.Errorf("verify modification: %w", err)
	}
	if !ok {
		return nil, uc.patchFailed(ctx, in.Repo, issue.ID, mod,
			fmt.Errorf("verify modification of %s: %w", mod.FilePath, domain.ErrCodeNotFound))
	}

	message, err := generateCommitMessage(ctx, uc.llm, issue, mod)
	if err != nil {
		return nil, err
	}

	if err := uc.engine.Apply(root, mod); err != nil {
		if errors.Is(err, domain.ErrCodeNotModified) {
			log.Info("modification has no effect", "file", mod.FilePath)
		}
		return nil, uc.patchFailed(ctx, in.Repo, issue.ID, mod, fmt.Errorf("apply modification: %w", err))
	}

	if err := uc.repos.Commit(ctx, in.Repo, message); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	if err := uc.repos.Push(ctx, in.Repo, branch); err != nil {
		return nil, fmt.Errorf("push: %w", err)
	}
	log.Info("modification pushed", "branch", branch, "message", message)

	if err := uc.issues.ReplyIssue(ctx, in.Repo, issue.ID, replyMessage(mod, message)); err != nil {
		return nil, fmt.Errorf("reply to issue #%d: %w", issue.ID, err)
	}

	return &GenerateCodeFromIssueAndReplyOutput{
		Modification:  mod,
		CommitMessage: message,
		Branch:        branch,
	}, nil
}

func (uc *GenerateCodeFromIssueAndReply) generateModification(ctx context.Context, root string, lang domain.Language, issue *domain.Issue) (domain.Modification, error) {
	var mod domain.Modification

	instruction, err := prompt.ModificationInstruction()
	if err != nil {
		return mod, err
	}
	messages, err := uc.assembler.FileMessages(root, lang)
	if err != nil {
		return mod, fmt.Errorf("read files: %w", err)
	}
	messages = append(messages, prompt.IssueMessages(issue)...)

	if err := uc.llm.GenerateJSON(ctx, prompt.WithInstruction(messages, instruction), &mod); err != nil {
		return mod, fmt.Errorf("generate modification: %w", err)
	}
	if err := mod.Validate(); err != nil {
		return mod, err
	}
	return mod, nil
}

// patchFailed reports a patch error on the issue when enabled and returns cause.
// Only patch errors are reported.
func (uc *GenerateCodeFromIssueAndReply) patchFailed(ctx context.Context, repo domain.Repo, issueID int, mod domain.Modification, cause error) error {
	if !uc.reportPatchFailures {
		return cause
	}
	if !errors.Is(cause, domain.ErrCodeNotFound) && !errors.Is(cause, domain.ErrCodeNotModified) {
		return cause
	}
	if err := uc.issues.ReplyIssue(ctx, repo, issueID, patchFailureMessage(mod, cause)); err != nil {
		clog.FromContext(ctx).Error("failed to report patch failure", "issue", issueID, "error", err)
	}
	return cause
}
