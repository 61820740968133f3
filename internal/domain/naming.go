package domain

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// ReadmeBranch is the temporary branch used when regenerating README.md.
const ReadmeBranch = "update-readme"

// ReadmeFileName is the file rewritten by the README action.
const ReadmeFileName = "README.md"

var repoPattern = regexp.MustCompile(`^[a-zA-Z0-9-]+/[a-zA-Z0-9_.-]{1,100}$`)

// Repo identifies a GitHub repository as owner/name.
type Repo struct {
	Owner string
	Name  string
}

// ParseRepo parses an "owner/name" string.
func ParseRepo(s string) (Repo, error) {
	if !repoPattern.MatchString(s) {
		return Repo{}, fmt.Errorf("%w: %q", ErrInvalidRepo, s)
	}
	owner, name, _ := strings.Cut(s, "/")
	if strings.Contains(name, "..") || strings.HasSuffix(name, ".") {
		return Repo{}, fmt.Errorf("%w: %q", ErrInvalidRepo, s)
	}
	return Repo{Owner: owner, Name: name}, nil
}

// String returns owner/name.
func (r Repo) String() string {
	return r.Owner + "/" + r.Name
}

// Dir returns the working copy directory under the repository storage path.
func (r Repo) Dir(repositoryPath string) string {
	return filepath.Join(repositoryPath, r.Owner, r.Name)
}

// IssueBranchName returns the temporary branch for an issue fix.
// Format: update-issue-#<id>
func IssueBranchName(issueID int) string {
	return fmt.Sprintf("update-issue-#%d", issueID)
}

// Language is a target code language for file enumeration and prompts.
type Language string

// Supported languages.
const (
	LangPython Language = "python"
	LangTeX    Language = "tex"
)

var languageExtensions = map[Language]string{
	LangPython: ".py",
	LangTeX:    ".tex",
}

// ParseLanguage validates a language name.
func ParseLanguage(s string) (Language, error) {
	lang := Language(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := languageExtensions[lang]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
	return lang, nil
}

// Extension returns the file extension for the language, including the dot.
func (l Language) Extension() string {
	return languageExtensions[l]
}

// Languages returns the supported language names.
func Languages() []string {
	return []string{string(LangPython), string(LangTeX)}
}
