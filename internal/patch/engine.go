// Package patch applies and verifies single-region text modifications.
//
// Matching is exact and literal: before_code is a verbatim snippet of the
// current file, never a pattern. Content is handled as raw bytes so line
// endings outside the replaced region round-trip unchanged.
package patch

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/tawada/grass-grower/internal/domain"
)

const newFileMode fs.FileMode = 0o644

// Engine applies modifications to files below a repository root.
type Engine struct{}

// NewEngine creates a new Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Verify reports whether the modification's before_code is present in the
// current content of its target file. A missing file verifies only when
// before_code is empty, which describes the create case.
func (e *Engine) Verify(repoRoot string, mod domain.Modification) (bool, error) {
	path, err := mod.ResolvePath(repoRoot)
	if err != nil {
		return false, err
	}
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return mod.BeforeCode == "", nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", mod.FilePath, err)
	}
	return bytes.Contains(content, []byte(mod.BeforeCode)), nil
}

// Apply replaces the first occurrence of before_code with after_code.
// If the target file does not exist, after_code becomes its entire content.
// No write happens when Apply returns an error.
func (e *Engine) Apply(repoRoot string, mod domain.Modification) error {
	if err := mod.Validate(); err != nil {
		return err
	}
	path, err := mod.ResolvePath(repoRoot)
	if err != nil {
		return err
	}

	original, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return createFile(path, []byte(mod.AfterCode))
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", mod.FilePath, err)
	}

	updated, err := ReplaceFirst(original, []byte(mod.BeforeCode), []byte(mod.AfterCode))
	if err != nil {
		return fmt.Errorf("%s: %w", mod.FilePath, err)
	}

	if err := atomic.WriteFile(path, bytes.NewReader(updated)); err != nil {
		return fmt.Errorf("write %s: %w", mod.FilePath, err)
	}
	return nil
}

// ReplaceFirst returns content with the first occurrence of before replaced by after.
// It returns domain.ErrCodeNotFound if before is empty or absent, and
// domain.ErrCodeNotModified if the result equals content.
func ReplaceFirst(content, before, after []byte) ([]byte, error) {
	if len(before) == 0 {
		return nil, domain.ErrCodeNotFound
	}
	idx := bytes.Index(content, before)
	if idx < 0 {
		return nil, domain.ErrCodeNotFound
	}

	updated := make([]byte, 0, len(content)-len(before)+len(after))
	updated = append(updated, content[:idx]...)
	updated = append(updated, after...)
	updated = append(updated, content[idx+len(before):]...)

	if bytes.Equal(updated, content) {
		return nil, domain.ErrCodeNotModified
	}
	return updated, nil
}

func createFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := os.Chmod(path, newFileMode); err != nil {
		return fmt.Errorf("chmod %s: %w", filepath.Base(path), err)
	}
	return nil
}
