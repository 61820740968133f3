// Package prompt builds the ordered message sequences sent to the LLM.
//
// The order is part of the contract with the model: source files first,
// then the issue and its comments, then exactly one system instruction.
package prompt

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tawada/grass-grower/internal/domain"
)

// skippedDirPrefixes are directory name prefixes never descended into.
var skippedDirPrefixes = []string{".", "_", "venv"}

// Assembler builds message sequences from a working copy.
type Assembler struct {
	excludeDirs []string
}

// NewAssembler creates an Assembler that skips the given directory names.
func NewAssembler(excludeDirs []string) *Assembler {
	return &Assembler{excludeDirs: excludeDirs}
}

// EnumerateFiles returns the slash-separated paths, relative to root, of the
// files with the language's extension. The result is in lexical order.
func (a *Assembler) EnumerateFiles(root string, lang domain.Language) ([]string, error) {
	ext := lang.Extension()
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if a.skipDir(name) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || !d.Type().IsRegular() || filepath.Ext(name) != ext {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("enumerate files: %w", err)
	}
	return paths, nil
}

func (a *Assembler) skipDir(name string) bool {
	if slices.Contains(a.excludeDirs, name) {
		return true
	}
	for _, prefix := range skippedDirPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// FileMessages returns one user message per source file of the language.
func (a *Assembler) FileMessages(root string, lang domain.Language) ([]domain.Message, error) {
	paths, err := a.EnumerateFiles(root, lang)
	if err != nil {
		return nil, err
	}
	messages := make([]domain.Message, 0, len(paths))
	for _, rel := range paths {
		content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", rel, err)
		}
		messages = append(messages, domain.UserMessage(FileMessage(rel, string(content))))
	}
	return messages, nil
}

// FileMessage fences a file's content under its relative path.
func FileMessage(rel, content string) string {
	return fmt.Sprintf("```%s\n%s\n```", rel, content)
}

// IssueMessages returns the issue title and body as one message followed by
// one message per comment, in the original order.
func IssueMessages(issue *domain.Issue) []domain.Message {
	messages := make([]domain.Message, 0, 1+len(issue.Comments))
	messages = append(messages, domain.UserMessage(fmt.Sprintf("Issue #%d: %s\n\n%s", issue.ID, issue.Title, issue.Body)))
	for _, c := range issue.Comments {
		messages = append(messages, domain.UserMessage(fmt.Sprintf("Comment by %s (%s):\n\n%s", c.Author, c.Association, c.Body)))
	}
	return messages
}

// WithInstruction returns messages followed by the system instruction.
// The input slice is not modified.
func WithInstruction(messages []domain.Message, instruction string) []domain.Message {
	out := make([]domain.Message, 0, len(messages)+1)
	out = append(out, messages...)
	return append(out, domain.SystemMessage(instruction))
}

// ReadmeMessage wraps the current README content.
func ReadmeMessage(content string) domain.Message {
	return domain.UserMessage(fmt.Sprintf("```Current README.md\n%s```", content))
}
