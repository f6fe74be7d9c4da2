package vikunja

import "encoding/json"

// Project is a Vikunja project as returned by /projects.
type Project struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// View is a project view (list, kanban, table, gantt).
type View struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	ViewKind  string `json:"view_kind,omitempty"`
	ProjectID int64  `json:"project_id,omitempty"`
}

// Bucket is a kanban column. When a view's task endpoint returns
// bucket-grouped results, each bucket carries its tasks inline.
type Bucket struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Tasks []Task `json:"tasks,omitempty"`
}

// Label is a task label.
type Label struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	HexColor string `json:"hex_color,omitempty"`
}

// Task is a Vikunja task. Only the fields the helper reads or writes are
// mapped, but the full payload of a decoded task is kept and merged back in
// on marshal: Vikunja's task update overwrites the whole task, so fields the
// helper never touches (due dates, assignees, repeat settings) must survive
// a fetch-mutate-post round trip.
type Task struct {
	ID          int64   `json:"id,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Done        bool    `json:"done,omitempty"`
	ProjectID   int64   `json:"project_id,omitempty"`
	BucketID    int64   `json:"bucket_id,omitempty"`
	PercentDone float64 `json:"percent_done"`
	Priority    int     `json:"priority,omitempty"`
	Labels      []Label `json:"labels,omitempty"`

	raw map[string]json.RawMessage
}

// taskFields breaks the custom JSON method recursion.
type taskFields Task

func (t *Task) UnmarshalJSON(data []byte) error {
	var fields taskFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*t = Task(fields)
	return json.Unmarshal(data, &t.raw)
}

func (t Task) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(taskFields(t))
	if err != nil {
		return nil, err
	}
	if t.raw == nil {
		return known, nil
	}

	merged := make(map[string]json.RawMessage, len(t.raw))
	for key, value := range t.raw {
		merged[key] = value
	}
	var mutated map[string]json.RawMessage
	if err := json.Unmarshal(known, &mutated); err != nil {
		return nil, err
	}
	for key, value := range mutated {
		merged[key] = value
	}
	return json.Marshal(merged)
}

// HasLabel reports whether the task carries a label with the given title,
// compared case-insensitively after trimming.
func (t *Task) HasLabel(title string) bool {
	want := normalizeTitle(title)
	for _, l := range t.Labels {
		if normalizeTitle(l.Title) == want {
			return true
		}
	}
	return false
}

// Comment is a task comment.
type Comment struct {
	ID      int64  `json:"id,omitempty"`
	Comment string `json:"comment"`
}
