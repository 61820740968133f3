package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tawada/grass-grower/internal/app"
	"github.com/tawada/grass-grower/internal/usecase"
)

// newAddIssueCommand creates the add_issue command.
func newAddIssueCommand(c *app.Container, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add_issue",
		Short: "Review the code and open one issue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := opts.resolve(false)
			if err != nil {
				return err
			}
			uc, err := c.AddIssueUseCase()
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.AddIssueInput{Repo: t.repo, Branch: t.branch, Lang: t.lang})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", successStyle.Render("Created issue:"), out.Title)
			return nil
		},
	}
}

// newUpdateIssueCommand creates the update_issue command.
func newUpdateIssueCommand(c *app.Container, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update_issue",
		Short: "Add an LLM comment to an issue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := opts.resolve(true)
			if err != nil {
				return err
			}
			uc, err := c.UpdateIssueUseCase()
			if err != nil {
				return err
			}
			if _, err := uc.Execute(cmd.Context(), usecase.UpdateIssueInput{
				Repo: t.repo, Branch: t.branch, Lang: t.lang, IssueID: t.issueID,
			}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s #%d\n", successStyle.Render("Commented on issue"), t.issueID)
			return nil
		},
	}
}

// newSummarizeIssueCommand creates the summarize_issue command.
func newSummarizeIssueCommand(c *app.Container, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summarize_issue",
		Short: "Post a summary of an issue thread",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := opts.resolve(true)
			if err != nil {
				return err
			}
			uc, err := c.SummarizeIssueUseCase()
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.SummarizeIssueInput{Repo: t.repo, Branch: t.branch, IssueID: t.issueID})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("Summary of #%d", t.issueID)))
			_, _ = fmt.Fprintln(w, out.Summary)
			return nil
		},
	}
}

// newGrowGrassCommand creates the grow_grass command.
func newGrowGrassCommand(c *app.Container, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "grow_grass",
		Short: "Open an issue unless the branch has a commit today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := opts.resolve(false)
			if err != nil {
				return err
			}
			uc, err := c.GrowGrassUseCase()
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.GrowGrassInput{Repo: t.repo, Branch: t.branch, Lang: t.lang})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if out.Skipped {
				_, _ = fmt.Fprintln(w, mutedStyle.Render("Already committed today, nothing to do."))
				return nil
			}
			_, _ = fmt.Fprintf(w, "%s %s\n", successStyle.Render("Created issue:"), out.Issue.Title)
			return nil
		},
	}
}

// newGenerateCodeFromIssueCommand creates the generate_code_from_issue command.
func newGenerateCodeFromIssueCommand(c *app.Container, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "generate_code_from_issue",
		Short: "Print a proposed rewrite for an issue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := opts.resolve(true)
			if err != nil {
				return err
			}
			uc, err := c.GenerateCodeFromIssueUseCase()
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.GenerateCodeFromIssueInput{
				Repo: t.repo, Branch: t.branch, Lang: t.lang, IssueID: t.issueID,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Code)
			return nil
		},
	}
}

// newGenerateCodeFromIssueAndReplyCommand creates the generate_code_from_issue_and_reply command.
func newGenerateCodeFromIssueAndReplyCommand(c *app.Container, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "generate_code_from_issue_and_reply",
		Short: "Apply a proposed edit on a temporary branch, push it and reply",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := opts.resolve(true)
			if err != nil {
				return err
			}
			uc, err := c.GenerateCodeFromIssueAndReplyUseCase()
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.GenerateCodeFromIssueAndReplyInput{
				Repo: t.repo, Branch: t.branch, Lang: t.lang, IssueID: t.issueID,
			})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "%s %s\n", successStyle.Render("Pushed"), out.Branch)
			_, _ = fmt.Fprintf(w, "%s %s\n", mutedStyle.Render(out.Modification.FilePath+":"), out.CommitMessage)
			return nil
		},
	}
}

// newGenerateReadmeCommand creates the generate_readme command.
func newGenerateReadmeCommand(c *app.Container, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "generate_readme",
		Short: "Regenerate README.md and push it on a temporary branch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := opts.resolve(false)
			if err != nil {
				return err
			}
			uc, err := c.GenerateReadmeUseCase()
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.GenerateReadmeInput{Repo: t.repo, Branch: t.branch, Lang: t.lang})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", successStyle.Render("Pushed"), out.Branch)
			return nil
		},
	}
}

// newListIssuesCommand creates the list_issues command.
func newListIssuesCommand(c *app.Container, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list_issues",
		Short: "List the open issue numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := opts.resolve(false)
			if err != nil {
				return err
			}
			out, err := c.ListIssuesUseCase().Execute(cmd.Context(), usecase.ListIssuesInput{Repo: t.repo})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, id := range out.IDs {
				_, _ = fmt.Fprintf(w, "#%d\n", id)
			}
			return nil
		},
	}
}
