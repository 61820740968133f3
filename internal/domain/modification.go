package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Modification is a proposed single-region text edit to one file.
// It is created from a structured LLM response and consumed once by the patch engine.
type Modification struct {
	FilePath   string `json:"file_path" jsonschema:"required,description=Path of the file to modify relative to the repository root"`
	BeforeCode string `json:"before_code" jsonschema:"required,description=Verbatim snippet of the current file content to replace or empty when creating a new file"`
	AfterCode  string `json:"after_code" jsonschema:"required,description=Replacement text for before_code"`
}

// Validate checks the structural invariants of a modification.
func (m Modification) Validate() error {
	if strings.TrimSpace(m.FilePath) == "" {
		return fmt.Errorf("%w: file_path is empty", ErrInvalidModification)
	}
	if m.AfterCode == "" {
		return fmt.Errorf("%w: after_code is empty", ErrInvalidModification)
	}
	return nil
}

// ResolvePath joins the modification path onto repoRoot.
// Absolute paths and paths that climb out of repoRoot are rejected.
func (m Modification) ResolvePath(repoRoot string) (string, error) {
	if filepath.IsAbs(m.FilePath) {
		return "", fmt.Errorf("%w: %s", ErrPathOutsideRepo, m.FilePath)
	}
	rel := filepath.Clean(filepath.FromSlash(m.FilePath))
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathOutsideRepo, m.FilePath)
	}
	return filepath.Join(repoRoot, rel), nil
}
