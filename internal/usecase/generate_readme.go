package usecase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/natefinch/atomic"
	"github.com/tawada/grass-grower/internal/domain"
	"github.com/tawada/grass-grower/internal/prompt"
)

// readmeCommitMessage is the commit message of a regenerated README.
const readmeCommitMessage = "Update README.md"

// GenerateReadmeInput contains the parameters for regenerating README.md.
type GenerateReadmeInput struct {
	Repo   domain.Repo
	Branch string
	Lang   domain.Language
}

// GenerateReadmeOutput contains the written README content.
type GenerateReadmeOutput struct {
	Content string
	Branch  string
}

// GenerateReadme rewrites README.md from the code and pushes it on a temporary branch.
type GenerateReadme struct {
	repos     domain.RepositoryGateway
	llm       domain.LLM
	assembler *prompt.Assembler
}

// NewGenerateReadme creates a new GenerateReadme use case.
func NewGenerateReadme(repos domain.RepositoryGateway, llm domain.LLM, assembler *prompt.Assembler) *GenerateReadme {
	return &GenerateReadme{
		repos:     repos,
		llm:       llm,
		assembler: assembler,
	}
}

// Execute generates and pushes a new README.md.
// Returns domain.ErrReadmeNotFound if the repository has no README.md.
func (uc *GenerateReadme) Execute(ctx context.Context, in GenerateReadmeInput) (*GenerateReadmeOutput, error) {
	log := clog.FromContext(ctx).With("repo", in.Repo.String())

	if err := uc.repos.Setup(ctx, in.Repo, in.Branch); err != nil {
		return nil, fmt.Errorf("setup repository: %w", err)
	}
	root := uc.repos.Dir(in.Repo)
	path := filepath.Join(root, domain.ReadmeFileName)

	current, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrReadmeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", domain.ReadmeFileName, err)
	}

	messages, err := uc.assembler.FileMessages(root, in.Lang)
	if err != nil {
		return nil, fmt.Errorf("read files: %w", err)
	}
	messages = append(messages, prompt.ReadmeMessage(string(current)))

	generated, err := uc.llm.GenerateText(ctx, prompt.WithInstruction(messages, prompt.ReadmeInstruction))
	if err != nil {
		return nil, fmt.Errorf("generate readme: %w", err)
	}
	content := prompt.ValidateText(generated)

	err = withTemporaryBranch(ctx, uc.repos, in.Repo, in.Branch, domain.ReadmeBranch, false, func() error {
		if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
			return fmt.Errorf("write %s: %w", domain.ReadmeFileName, err)
		}
		if err := uc.repos.Commit(ctx, in.Repo, readmeCommitMessage); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		if err := uc.repos.Push(ctx, in.Repo, domain.ReadmeBranch); err != nil {
			return fmt.Errorf("push: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to update readme", "error", err)
		return nil, err
	}
	log.Info("readme pushed", "branch", domain.ReadmeBranch)

	return &GenerateReadmeOutput{Content: content, Branch: domain.ReadmeBranch}, nil
}
