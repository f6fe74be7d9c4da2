package vikunja

import (
	"context"
	"fmt"
)

// ListLabels returns the caller's labels.
func (c *Client) ListLabels(ctx context.Context) ([]Label, error) {
	var labels []Label
	if err := c.do(ctx, "GET", "/labels", pageQuery(1, labelPageSize), nil, &labels); err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return labels, nil
}

// FindLabel resolves a label by title, case-insensitively.
func (c *Client) FindLabel(ctx context.Context, name string) (*Label, error) {
	labels, err := c.ListLabels(ctx)
	if err != nil {
		return nil, err
	}
	want := normalizeTitle(name)
	for i := range labels {
		if normalizeTitle(labels[i].Title) == want {
			return &labels[i], nil
		}
	}
	return nil, &NotFoundError{Kind: "label", Name: name}
}

// EnsureLabel resolves a label by title, creating it if missing.
func (c *Client) EnsureLabel(ctx context.Context, name string) (*Label, error) {
	label, err := c.FindLabel(ctx, name)
	if err == nil {
		return label, nil
	}
	if !IsNotFound(err) {
		return nil, err
	}

	var created Label
	if err := c.do(ctx, "PUT", "/labels", nil, Label{Title: name}, &created); err != nil {
		return nil, fmt.Errorf("failed to create label %q: %w", name, err)
	}
	return &created, nil
}

// AddTaskLabel attaches an existing label to a task.
func (c *Client) AddTaskLabel(ctx context.Context, taskID, labelID int64) error {
	path := fmt.Sprintf("/tasks/%d/labels", taskID)
	payload := map[string]int64{"label_id": labelID}
	if err := c.do(ctx, "PUT", path, nil, payload, nil); err != nil {
		return fmt.Errorf("failed to add label %d to task %d: %w", labelID, taskID, err)
	}
	return nil
}

// RemoveTaskLabel detaches a label from a task.
func (c *Client) RemoveTaskLabel(ctx context.Context, taskID, labelID int64) error {
	path := fmt.Sprintf("/tasks/%d/labels/%d", taskID, labelID)
	if err := c.do(ctx, "DELETE", path, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to remove label %d from task %d: %w", labelID, taskID, err)
	}
	return nil
}

// ReplaceTaskLabels replaces a task's labels with exactly the given set.
func (c *Client) ReplaceTaskLabels(ctx context.Context, taskID int64, labelIDs []int64) error {
	path := fmt.Sprintf("/tasks/%d/labels/bulk", taskID)
	payload := map[string][]int64{"labels": labelIDs}
	if err := c.do(ctx, "POST", path, nil, payload, nil); err != nil {
		return fmt.Errorf("failed to replace labels on task %d: %w", taskID, err)
	}
	return nil
}

// EnsureTaskLabels attaches the named labels to a task, creating labels as
// needed and skipping ones the task already carries.
func (c *Client) EnsureTaskLabels(ctx context.Context, taskID int64, names []string) error {
	if len(names) == 0 {
		return nil
	}

	task, err := c.GetTask(ctx, taskID)
	if err != nil {
		return err
	}

	existing := make(map[string]bool, len(task.Labels))
	for _, l := range task.Labels {
		existing[normalizeTitle(l.Title)] = true
	}

	for _, name := range names {
		key := normalizeTitle(name)
		if key == "" || existing[key] {
			continue
		}
		label, err := c.EnsureLabel(ctx, name)
		if err != nil {
			return err
		}
		if err := c.AddTaskLabel(ctx, taskID, label.ID); err != nil {
			return err
		}
		existing[key] = true
	}
	return nil
}
