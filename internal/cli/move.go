package cli

import (
	"context"
	"fmt"

	"github.com/mekberg/vikunjactl/internal/match"
	"github.com/spf13/cobra"
)

var moveCmd = &cobra.Command{
	Use:   "move-task",
	Short: "Move a card to another bucket",
	Long: `Move a card to the named bucket within the configured kanban view.

Example:
  vikunjactl move-task --pr-number 123 --to "Pågående"`,
	RunE: runMoveTask,
}

func init() {
	rootCmd.AddCommand(moveCmd)

	moveCmd.Flags().Int64("task-id", 0, "Existing task ID, skips matching")
	moveCmd.Flags().String("pr-number", "", "Match by pr-<n> label or [PR-<n>] title")
	moveCmd.Flags().String("branch", "", "Match by [branch:<b>] marker")
	moveCmd.Flags().String("title", "", "Match by exact title")
	moveCmd.Flags().String("to", "", "Destination bucket name")
	_ = moveCmd.MarkFlagRequired("to")
}

func runMoveTask(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, client, err := loadClient()
	if err != nil {
		return err
	}

	// With an explicit task ID the project can come from the task itself,
	// sparing a name lookup.
	taskID, _ := cmd.Flags().GetInt64("task-id")
	if taskID != 0 {
		task, err := client.GetTask(ctx, taskID)
		if err != nil {
			return err
		}
		if cfg.ProjectID == 0 {
			cfg.ProjectID = task.ProjectID
		}
	}

	projectID, viewID, err := locateBoard(ctx, client, cfg)
	if err != nil {
		return err
	}

	task, err := match.Resolve(ctx, client, projectID, viewID, taskID, criteriaFromFlags(cmd))
	if err != nil {
		return err
	}
	if task == nil {
		return fmt.Errorf("task not found for move")
	}

	to, _ := cmd.Flags().GetString("to")
	bucket, err := client.FindBucket(ctx, projectID, viewID, to)
	if err != nil {
		return err
	}

	updated, err := client.GetTask(ctx, task.ID)
	if err != nil {
		return err
	}
	updated.BucketID = bucket.ID
	if _, err := client.UpdateTask(ctx, updated); err != nil {
		return err
	}

	return printResult(map[string]interface{}{
		"action":    "moved",
		"task_id":   task.ID,
		"bucket_id": bucket.ID,
	})
}
