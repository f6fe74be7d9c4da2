package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "Manage a card's labels",
	Long: `Add, remove or wholesale replace the labels on a card. Added labels
are created in Vikunja when they don't exist yet; removing a label the card
doesn't carry is a no-op.

Examples:
  vikunjactl labels --task-id 42 --add "backend,urgent"
  vikunjactl labels --task-id 42 --replace "backend,review"`,
	RunE: runLabels,
}

func init() {
	rootCmd.AddCommand(labelsCmd)

	labelsCmd.Flags().Int64("task-id", 0, "Task ID")
	labelsCmd.Flags().String("add", "", "Comma-separated labels to add")
	labelsCmd.Flags().String("remove", "", "Comma-separated labels to remove")
	labelsCmd.Flags().String("replace", "", "Comma-separated labels to replace the current set with")
	_ = labelsCmd.MarkFlagRequired("task-id")
}

func runLabels(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	_, client, err := loadClient()
	if err != nil {
		return err
	}

	taskID, _ := cmd.Flags().GetInt64("task-id")
	task, err := client.GetTask(ctx, taskID)
	if err != nil {
		return err
	}

	existing := make(map[string]int64, len(task.Labels))
	for _, label := range task.Labels {
		existing[strings.ToLower(strings.TrimSpace(label.Title))] = label.ID
	}

	if add, _ := cmd.Flags().GetString("add"); add != "" {
		var toAdd []string
		for _, name := range splitList(add) {
			if _, ok := existing[strings.ToLower(name)]; !ok {
				toAdd = append(toAdd, name)
			}
		}
		if err := client.EnsureTaskLabels(ctx, taskID, toAdd); err != nil {
			return err
		}
	}

	if remove, _ := cmd.Flags().GetString("remove"); remove != "" {
		for _, name := range splitList(remove) {
			if labelID, ok := existing[strings.ToLower(name)]; ok {
				if err := client.RemoveTaskLabel(ctx, taskID, labelID); err != nil {
					return err
				}
			}
		}
	}

	if replace, _ := cmd.Flags().GetString("replace"); replace != "" {
		var labelIDs []int64
		for _, name := range splitList(replace) {
			label, err := client.EnsureLabel(ctx, name)
			if err != nil {
				return err
			}
			labelIDs = append(labelIDs, label.ID)
		}
		if err := client.ReplaceTaskLabels(ctx, taskID, labelIDs); err != nil {
			return err
		}
	}

	return printResult(map[string]interface{}{
		"action":  "labels-updated",
		"task_id": taskID,
	})
}
