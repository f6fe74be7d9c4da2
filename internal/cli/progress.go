package cli

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/mekberg/vikunjactl/internal/render"
	"github.com/mekberg/vikunjactl/internal/skills"
	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress-update",
	Short: "Post a progress comment and update percent done",
	Long: `Post a structured progress comment on a card and set its percent
done from the --done/--total counters. For cards created by this tool the
status block in the description is rewritten as well; other descriptions are
left untouched.

Example:
  vikunjactl progress-update --pr-number 123 --done 3 --total 5 \
    --summary "Parser done, CLI wiring next"`,
	RunE: runProgressUpdate,
}

func init() {
	rootCmd.AddCommand(progressCmd)

	progressCmd.Flags().Int64("task-id", 0, "Existing task ID, skips matching")
	progressCmd.Flags().String("pr-number", "", "Match by pr-<n> label or [PR-<n>] title")
	progressCmd.Flags().String("branch", "", "Match by [branch:<b>] marker")
	progressCmd.Flags().String("title", "", "Match by exact title")
	progressCmd.Flags().Int("done", 0, "Completed step count")
	progressCmd.Flags().Int("total", 0, "Total step count")
	progressCmd.Flags().String("summary", "", "One-line summary of where things stand")
	progressCmd.Flags().String("completed", "", "What got done, plain text or - bullets")
	progressCmd.Flags().String("in-progress", "", "What is in flight")
	progressCmd.Flags().String("next", "", "Planned next steps")
	progressCmd.Flags().String("blockers", "", "Anything blocking progress")
	_ = progressCmd.MarkFlagRequired("done")
	_ = progressCmd.MarkFlagRequired("total")
}

func runProgressUpdate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, client, err := loadClient()
	if err != nil {
		return err
	}

	taskID, _ := cmd.Flags().GetInt64("task-id")
	task, err := findTask(ctx, client, cfg, taskID, criteriaFromFlags(cmd))
	if err != nil {
		return err
	}
	if task == nil {
		return fmt.Errorf("task not found for progress update")
	}

	done, _ := cmd.Flags().GetInt("done")
	total, _ := cmd.Flags().GetInt("total")

	ratio := 0.0
	if total > 0 {
		ratio = float64(done) / float64(total)
	}
	ratio = math.Max(0, math.Min(1, ratio))
	percent := int(math.Round(ratio * 100))

	summary, _ := cmd.Flags().GetString("summary")
	completed, _ := cmd.Flags().GetString("completed")
	inProgress, _ := cmd.Flags().GetString("in-progress")
	nextSteps, _ := cmd.Flags().GetString("next")
	blockers, _ := cmd.Flags().GetString("blockers")

	tmpl, err := skills.ProgressCommentTemplate()
	if err != nil {
		return err
	}
	comment := render.Template(tmpl, map[string]string{
		"summary_html":     render.Block(render.OrDash(summary)),
		"completed_html":   render.Block(render.OrDash(completed)),
		"in_progress_html": render.Block(render.OrDash(inProgress)),
		"next_steps_html":  render.Block(render.OrDash(nextSteps)),
		"blockers_html":    render.Block(render.OrDash(blockers)),
		"done":             fmt.Sprintf("%d", done),
		"total":            fmt.Sprintf("%d", total),
		"percent":          fmt.Sprintf("%d", percent),
	})

	if err := client.AddComment(ctx, task.ID, comment); err != nil {
		return err
	}

	// Refetch before updating so the write carries the latest state.
	updated, err := client.GetTask(ctx, task.ID)
	if err != nil {
		return err
	}
	updated.PercentDone = ratio

	if render.IsManaged(updated.Description) {
		progress := "–"
		if total > 0 {
			progress = fmt.Sprintf("%d/%d (%d%%)", done, total, percent)
		}
		updated.Description = render.SpliceStatus(
			updated.Description,
			render.Block(render.OrDash(summary)),
			progress,
			time.Now(),
		)
	}

	if _, err := client.UpdateTask(ctx, updated); err != nil {
		return err
	}

	return printResult(map[string]interface{}{
		"action":       "progress-updated",
		"task_id":      task.ID,
		"percent_done": percent,
	})
}
