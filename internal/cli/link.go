package cli

import (
	"context"
	"fmt"

	"github.com/mekberg/vikunjactl/internal/match"
	"github.com/spf13/cobra"
)

var linkCmd = &cobra.Command{
	Use:   "link-pr",
	Short: "Link a pull request to a card",
	Long: `Attach a pr-<n> label to a card and post the PR link as a comment,
so later commands can find the card by PR number.

Example:
  vikunjactl link-pr --title "Fix login redirect" --pr-number 123 \
    --pr-url https://github.com/org/repo/pull/123`,
	RunE: runLinkPR,
}

func init() {
	rootCmd.AddCommand(linkCmd)

	linkCmd.Flags().Int64("task-id", 0, "Existing task ID, skips matching")
	linkCmd.Flags().String("pr-number", "", "Pull request number")
	linkCmd.Flags().String("pr-url", "", "Pull request URL")
	linkCmd.Flags().String("branch", "", "Match by [branch:<b>] marker")
	linkCmd.Flags().String("title", "", "Match by exact title")
}

func runLinkPR(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, client, err := loadClient()
	if err != nil {
		return err
	}

	taskID, _ := cmd.Flags().GetInt64("task-id")
	crit := criteriaFromFlags(cmd)

	task, err := findTask(ctx, client, cfg, taskID, crit)
	if err != nil {
		return err
	}
	if task == nil {
		return fmt.Errorf("task not found for PR link")
	}

	if crit.PRNumber != "" {
		label, err := client.EnsureLabel(ctx, match.PRLabel(crit.PRNumber))
		if err != nil {
			return err
		}
		if err := client.AddTaskLabel(ctx, task.ID, label.ID); err != nil {
			return err
		}
	}

	prURL, _ := cmd.Flags().GetString("pr-url")
	if prURL != "" || crit.PRNumber != "" {
		label := prURL
		if label == "" {
			label = fmt.Sprintf("PR #%s", crit.PRNumber)
		}
		if err := client.AddComment(ctx, task.ID, "PR: "+label); err != nil {
			return err
		}
	}

	return printResult(map[string]interface{}{
		"action":  "linked-pr",
		"task_id": task.ID,
	})
}
