package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tawada/grass-grower/internal/domain"
	"github.com/tawada/grass-grower/internal/prompt"
)

// maxCommitTitleRunes caps a single-line commit message with no sentence break.
const maxCommitTitleRunes = 72

// generateCommitMessage asks the LLM for a commit message describing mod and
// normalizes it to one line ending with the issue reference.
func generateCommitMessage(ctx context.Context, llm domain.LLM, issue *domain.Issue, mod domain.Modification) (string, error) {
	messages := prompt.IssueMessages(issue)
	messages = append(messages, domain.AssistantMessage(fmt.Sprintf("Before:\n%s\nAfter:\n%s", mod.BeforeCode, mod.AfterCode)))
	text, err := llm.GenerateText(ctx, prompt.WithInstruction(messages, prompt.CommitMessageInstruction))
	if err != nil {
		return "", fmt.Errorf("generate commit message: %w", err)
	}
	return normalizeCommitMessage(text, issue.ID)
}

// normalizeCommitMessage keeps the first line, else the first sentence, else
// at most maxCommitTitleRunes runes, and appends " (#<id>)".
func normalizeCommitMessage(text string, issueID int) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrEmptyCommitTitle
	}
	switch {
	case strings.Contains(text, "\n"):
		text, _, _ = strings.Cut(text, "\n")
	case strings.Contains(text, ". "):
		text, _, _ = strings.Cut(text, ". ")
	case utf8.RuneCountInString(text) > maxCommitTitleRunes:
		text = string([]rune(text)[:maxCommitTitleRunes])
	}
	text = strings.TrimSpace(strings.Trim(text, "\""))
	if text == "" {
		return "", domain.ErrEmptyCommitTitle
	}
	return fmt.Sprintf("%s (#%d)", text, issueID), nil
}

// replyMessage is the issue comment posted after a modification was pushed.
func replyMessage(mod domain.Modification, commitMessage string) string {
	var sb strings.Builder
	sb.WriteString("The following changes have been completed.\n\n")
	sb.WriteString(commitMessage + "\n")
	fmt.Fprintf(&sb, "`%s`\n", mod.FilePath)
	fmt.Fprintf(&sb, "Before:\n```\n%s\n```\n", mod.BeforeCode)
	fmt.Fprintf(&sb, "After:\n```\n%s\n```", mod.AfterCode)
	return sb.String()
}

// patchFailureMessage is the issue comment posted when a proposed
// modification could not be applied. It never claims success.
func patchFailureMessage(mod domain.Modification, cause error) string {
	var sb strings.Builder
	sb.WriteString("The proposed modification could not be applied.\n\n")
	fmt.Fprintf(&sb, "Reason: %v\n", cause)
	fmt.Fprintf(&sb, "`%s`\n", mod.FilePath)
	fmt.Fprintf(&sb, "Before:\n```\n%s\n```\n", mod.BeforeCode)
	fmt.Fprintf(&sb, "After:\n```\n%s\n```", mod.AfterCode)
	return sb.String()
}
