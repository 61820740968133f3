// Package cli provides the command-line interface for grass.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tawada/grass-grower/internal/app"
	"github.com/tawada/grass-grower/internal/domain"
)

// globalOptions holds the flags shared by every action.
// Fields are ordered to minimize memory padding.
type globalOptions struct {
	repo     string
	branch   string
	codeLang string
	issueID  int
}

// target is the validated form of globalOptions.
type target struct {
	repo    domain.Repo
	branch  string
	lang    domain.Language
	issueID int
}

// resolve validates the flags. needIssue reports whether the action requires --issue-id.
func (o *globalOptions) resolve(needIssue bool) (target, error) {
	repo, err := domain.ParseRepo(o.repo)
	if err != nil {
		return target{}, err
	}
	lang, err := domain.ParseLanguage(o.codeLang)
	if err != nil {
		return target{}, err
	}
	if needIssue && o.issueID <= 0 {
		return target{}, domain.ErrMissingIssueID
	}
	return target{repo: repo, branch: o.branch, lang: lang, issueID: o.issueID}, nil
}

// NewRootCommand creates the root command for grass.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "grass",
		Short: "LLM-driven GitHub issue triage and code modification",
		Long: `grass reads a GitHub repository, asks an LLM about its code and issues,
and acts on the answer: it opens issues, comments on them, summarizes them,
rewrites README.md, or applies a single proposed edit on a temporary branch
and replies with the result.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if c == nil {
				return nil
			}
			for _, w := range c.Config.Warnings {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), warningStyle.Render("Warning: "+w))
			}
			return nil
		},
	}

	defaultRepo := domain.DefaultRepoName
	defaultBranch := domain.DefaultBranchName
	if c != nil {
		defaultRepo = c.Config.DefaultRepo
		defaultBranch = c.Config.DefaultBranch
	}
	pf := root.PersistentFlags()
	pf.StringVar(&opts.repo, "repo", defaultRepo, "Target repository as owner/name")
	pf.StringVar(&opts.branch, "branch", defaultBranch, "Base branch")
	pf.StringVar(&opts.codeLang, "code-lang", string(domain.LangPython), "Code language ("+strings.Join(domain.Languages(), "|")+")")
	pf.IntVar(&opts.issueID, "issue-id", 0, "Issue number (required by issue actions)")

	root.AddCommand(
		newAddIssueCommand(c, opts),
		newUpdateIssueCommand(c, opts),
		newSummarizeIssueCommand(c, opts),
		newGrowGrassCommand(c, opts),
		newGenerateCodeFromIssueCommand(c, opts),
		newGenerateCodeFromIssueAndReplyCommand(c, opts),
		newGenerateReadmeCommand(c, opts),
		newListIssuesCommand(c, opts),
		newConfigCommand(c),
	)

	return root
}
