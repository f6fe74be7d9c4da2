// Package match resolves which existing kanban task a command refers to.
//
// Resolution priority, first hit wins:
//
//  1. explicit task ID (direct fetch, no list scan)
//  2. task labelled pr-<n>
//  3. task titled with the [PR-<n>] prefix
//  4. task whose title or description carries the [branch:<b>] marker
//  5. exact title match (only when neither PR number nor branch was given)
package match

import (
	"context"
	"fmt"
	"strings"

	"github.com/mekberg/vikunjactl/internal/vikunja"
)

// Criteria describes the identifying hints supplied on the command line.
type Criteria struct {
	PRNumber string
	Branch   string
	Title    string
}

// Empty reports whether no hint is set at all.
func (c Criteria) Empty() bool {
	return c.PRNumber == "" && c.Branch == "" && c.Title == ""
}

// PRLabel returns the label name marking a task as tied to a PR.
func PRLabel(prNumber string) string {
	return "pr-" + prNumber
}

// PRTitlePrefix returns the title prefix marking a task as tied to a PR.
func PRTitlePrefix(prNumber string) string {
	return fmt.Sprintf("[PR-%s]", prNumber)
}

// BranchMarker returns the marker embedded in titles or descriptions to tie
// a task to a git branch.
func BranchMarker(branch string) string {
	return fmt.Sprintf("[branch:%s]", branch)
}

// Find scans tasks for the first one matching the criteria, in priority
// order. Returns nil when nothing matches.
func Find(tasks []vikunja.Task, crit Criteria) *vikunja.Task {
	if crit.PRNumber != "" {
		label := PRLabel(crit.PRNumber)
		for i := range tasks {
			if tasks[i].HasLabel(label) {
				return &tasks[i]
			}
		}
		prefix := PRTitlePrefix(crit.PRNumber)
		for i := range tasks {
			if strings.HasPrefix(tasks[i].Title, prefix) {
				return &tasks[i]
			}
		}
	}

	if crit.Branch != "" {
		marker := BranchMarker(crit.Branch)
		for i := range tasks {
			if strings.Contains(tasks[i].Title, marker) || strings.Contains(tasks[i].Description, marker) {
				return &tasks[i]
			}
		}
	}

	if crit.Title != "" && crit.PRNumber == "" && crit.Branch == "" {
		want := strings.ToLower(strings.TrimSpace(crit.Title))
		for i := range tasks {
			if strings.ToLower(strings.TrimSpace(tasks[i].Title)) == want {
				return &tasks[i]
			}
		}
	}

	return nil
}

// TaskSource is the slice of the Vikunja client resolution needs.
type TaskSource interface {
	GetTask(ctx context.Context, taskID int64) (*vikunja.Task, error)
	ListViewTasks(ctx context.Context, projectID, viewID int64) ([]vikunja.Task, error)
}

// Resolve finds the task identified by taskID, or failing that, by scanning
// the view with the given criteria. A zero taskID means "not given".
// Returns (nil, nil) when no task matches.
func Resolve(ctx context.Context, src TaskSource, projectID, viewID, taskID int64, crit Criteria) (*vikunja.Task, error) {
	if taskID != 0 {
		return src.GetTask(ctx, taskID)
	}

	tasks, err := src.ListViewTasks(ctx, projectID, viewID)
	if err != nil {
		return nil, err
	}
	return Find(tasks, crit), nil
}
