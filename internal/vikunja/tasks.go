package vikunja

import (
	"context"
	"encoding/json"
	"fmt"
)

// ListViewTasks returns every task of a view, following pagination.
//
// Vikunja's view task endpoint answers in two shapes depending on the view
// kind: a flat task array, or an array of buckets each carrying its tasks.
// A bucket-grouped answer is always complete, so pagination stops there.
func (c *Client) ListViewTasks(ctx context.Context, projectID, viewID int64) ([]Task, error) {
	path := fmt.Sprintf("/projects/%d/views/%d/tasks", projectID, viewID)

	var all []Task
	for page := 1; ; page++ {
		var raw json.RawMessage
		if err := c.do(ctx, "GET", path, pageQuery(page, taskPageSize), nil, &raw); err != nil {
			return nil, fmt.Errorf("failed to list tasks for view %d: %w", viewID, err)
		}

		chunk, grouped, err := extractTasks(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse task list for view %d: %w", viewID, err)
		}
		if len(chunk) == 0 {
			break
		}
		all = append(all, chunk...)
		if grouped || len(chunk) < taskPageSize {
			break
		}
	}
	return all, nil
}

// extractTasks normalizes the two response shapes of the view task endpoint.
// The returned bool reports whether the response was bucket-grouped.
func extractTasks(raw json.RawMessage) ([]Task, bool, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, false, nil
	}

	// Probe the element shape: a bucket element has a "tasks" key.
	var probe []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err == nil {
		if len(probe) > 0 {
			if _, ok := probe[0]["tasks"]; ok {
				var buckets []Bucket
				if err := json.Unmarshal(raw, &buckets); err != nil {
					return nil, false, err
				}
				var tasks []Task
				for _, b := range buckets {
					tasks = append(tasks, b.Tasks...)
				}
				return tasks, true, nil
			}
		}
		var tasks []Task
		if err := json.Unmarshal(raw, &tasks); err != nil {
			return nil, false, err
		}
		return tasks, false, nil
	}

	// Some deployments wrap the list in an object. The wrapped list is
	// still paged, so it is not treated as grouped.
	var wrapped struct {
		Tasks []Task `json:"tasks"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, false, err
	}
	return wrapped.Tasks, false, nil
}

// GetTask fetches a single task by ID.
func (c *Client) GetTask(ctx context.Context, taskID int64) (*Task, error) {
	var task Task
	path := fmt.Sprintf("/tasks/%d", taskID)
	if err := c.do(ctx, "GET", path, nil, nil, &task); err != nil {
		return nil, fmt.Errorf("failed to get task %d: %w", taskID, err)
	}
	return &task, nil
}

// CreateTask creates a task in a project. Vikunja uses PUT for creation.
func (c *Client) CreateTask(ctx context.Context, projectID int64, task *Task) (*Task, error) {
	var created Task
	path := fmt.Sprintf("/projects/%d/tasks", projectID)
	if err := c.do(ctx, "PUT", path, nil, task, &created); err != nil {
		return nil, fmt.Errorf("failed to create task in project %d: %w", projectID, err)
	}
	return &created, nil
}

// UpdateTask updates an existing task. Vikunja uses POST for updates.
func (c *Client) UpdateTask(ctx context.Context, task *Task) (*Task, error) {
	if task.ID == 0 {
		return nil, fmt.Errorf("cannot update task without id")
	}
	var updated Task
	path := fmt.Sprintf("/tasks/%d", task.ID)
	if err := c.do(ctx, "POST", path, nil, task, &updated); err != nil {
		return nil, fmt.Errorf("failed to update task %d: %w", task.ID, err)
	}
	return &updated, nil
}

// AddComment posts a comment on a task.
func (c *Client) AddComment(ctx context.Context, taskID int64, comment string) error {
	path := fmt.Sprintf("/tasks/%d/comments", taskID)
	payload := Comment{Comment: comment}
	if err := c.do(ctx, "PUT", path, nil, payload, nil); err != nil {
		return fmt.Errorf("failed to comment on task %d: %w", taskID, err)
	}
	return nil
}
