package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mekberg/vikunjactl/internal/render"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// runCommand executes the command tree with fresh flag state and decodes the
// JSON result it prints.
func runCommand(t *testing.T, args ...string) map[string]interface{} {
	t.Helper()

	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	defer rootCmd.SetOut(nil)

	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command failed: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode result %q: %v", out.String(), err)
	}
	return result
}

// resetFlags restores default flag values so tests don't leak state into
// each other through the shared command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func TestEnsureTask_FindsExistingByPRLabel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /api/v1/projects":
			w.Write([]byte(`[{"id":1,"title":"Internal TODO"}]`))
		case "GET /api/v1/projects/1/views":
			w.Write([]byte(`[{"id":2,"title":"Kanban"}]`))
		case "GET /api/v1/projects/1/views/2/tasks":
			w.Write([]byte(`[{"id":7,"title":"Fix login","labels":[{"id":5,"title":"pr-123"}]}]`))
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	result := runCommand(t, "ensure-task",
		"--base-url", server.URL, "--token", "secret",
		"--title", "Fix login", "--pr-number", "123")

	if result["action"] != "found" {
		t.Errorf("expected action found, got %v", result["action"])
	}
	task := result["task"].(map[string]interface{})
	if task["id"] != float64(7) {
		t.Errorf("expected task 7, got %v", task["id"])
	}
}

func TestEnsureTask_CreatesCard(t *testing.T) {
	var created map[string]json.RawMessage
	var comments []string
	var labelsCreated []string
	var labelsAttached int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /api/v1/projects":
			w.Write([]byte(`[{"id":1,"title":"Internal TODO"}]`))
		case "GET /api/v1/projects/1/views":
			w.Write([]byte(`[{"id":2,"title":"Kanban"}]`))
		case "GET /api/v1/projects/1/views/2/tasks":
			w.Write([]byte(`[]`))
		case "GET /api/v1/projects/1/views/2/buckets":
			w.Write([]byte(`[{"id":3,"title":"Idé"}]`))
		case "PUT /api/v1/projects/1/tasks":
			if err := json.NewDecoder(r.Body).Decode(&created); err != nil {
				t.Fatalf("failed to decode create body: %v", err)
			}
			w.Write([]byte(`{"id":42,"title":"created"}`))
		case "GET /api/v1/labels":
			w.Write([]byte(`[]`))
		case "PUT /api/v1/labels":
			var label struct {
				Title string `json:"title"`
			}
			_ = json.NewDecoder(r.Body).Decode(&label)
			labelsCreated = append(labelsCreated, label.Title)
			w.Write([]byte(`{"id":9,"title":"` + label.Title + `"}`))
		case "PUT /api/v1/tasks/42/labels":
			labelsAttached++
			w.WriteHeader(http.StatusCreated)
		case "GET /api/v1/tasks/42":
			w.Write([]byte(`{"id":42,"title":"created"}`))
		case "PUT /api/v1/tasks/42/comments":
			var payload struct {
				Comment string `json:"comment"`
			}
			_ = json.NewDecoder(r.Body).Decode(&payload)
			comments = append(comments, payload.Comment)
			w.WriteHeader(http.StatusCreated)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	result := runCommand(t, "ensure-task",
		"--base-url", server.URL, "--token", "secret",
		"--title", "Fix login", "--pr-number", "123", "--branch", "feat/login",
		"--pr-url", "https://git.example.com/pull/123",
		"--goal", "Users land on the right page",
		"--labels", "Bug")

	if result["action"] != "created" {
		t.Errorf("expected action created, got %v", result["action"])
	}

	var title string
	_ = json.Unmarshal(created["title"], &title)
	if title != "[PR-123] Fix login [branch:feat/login]" {
		t.Errorf("unexpected title: %q", title)
	}
	var bucketID int64
	_ = json.Unmarshal(created["bucket_id"], &bucketID)
	if bucketID != 3 {
		t.Errorf("expected bucket 3, got %d", bucketID)
	}

	var description string
	_ = json.Unmarshal(created["description"], &description)
	if !strings.Contains(description, render.ManagedMarker) {
		t.Error("description missing managed marker")
	}
	if !strings.Contains(description, "Users land on the right page") {
		t.Error("description missing goal")
	}
	// The fresh status block carries the summary bare, without a paragraph.
	if !strings.Contains(description, "\nEj påbörjat\n") {
		t.Error("description missing initial summary")
	}
	if strings.Contains(description, "<p>Ej påbörjat</p>") {
		t.Error("initial summary should not be wrapped in a paragraph")
	}

	if len(labelsCreated) != 2 || labelsCreated[0] != "pr-123" || labelsCreated[1] != "Bug" {
		t.Errorf("unexpected labels created: %v", labelsCreated)
	}
	if labelsAttached != 2 {
		t.Errorf("expected 2 label attachments, got %d", labelsAttached)
	}
	if len(comments) != 1 || comments[0] != "PR: https://git.example.com/pull/123" {
		t.Errorf("unexpected comments: %v", comments)
	}
}

func TestProgressUpdate_SplicesManagedStatus(t *testing.T) {
	description := render.ManagedMarker + "\n\n<h3>Mål</h3>\n<p>x</p>\n\n" +
		"<!-- vikunja-skill:status-start -->\nold status\n<!-- vikunja-skill:status-end -->\n"

	var posted map[string]json.RawMessage
	var comments []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /api/v1/tasks/7":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id":           7,
				"title":        "card",
				"description":  description,
				"percent_done": 0.5,
				"due_date":     "2026-09-01T00:00:00Z",
			})
		case "PUT /api/v1/tasks/7/comments":
			var payload struct {
				Comment string `json:"comment"`
			}
			_ = json.NewDecoder(r.Body).Decode(&payload)
			comments = append(comments, payload.Comment)
			w.WriteHeader(http.StatusCreated)
		case "POST /api/v1/tasks/7":
			if err := json.NewDecoder(r.Body).Decode(&posted); err != nil {
				t.Fatalf("failed to decode update body: %v", err)
			}
			w.Write([]byte(`{"id":7,"title":"card"}`))
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	result := runCommand(t, "progress-update",
		"--base-url", server.URL, "--token", "secret",
		"--task-id", "7", "--done", "0", "--total", "5", "--summary", "Omstart")

	if result["action"] != "progress-updated" {
		t.Errorf("expected action progress-updated, got %v", result["action"])
	}
	if result["percent_done"] != float64(0) {
		t.Errorf("expected percent_done 0, got %v", result["percent_done"])
	}

	if len(comments) != 1 || !strings.Contains(comments[0], "Omstart") {
		t.Errorf("unexpected comments: %v", comments)
	}
	if !strings.Contains(comments[0], "0/5") {
		t.Errorf("comment missing counters: %q", comments[0])
	}

	// A reset to 0% must reach the server, and fields the command never
	// touches must survive the round trip.
	if got, ok := posted["percent_done"]; !ok || string(got) != "0" {
		t.Errorf("expected percent_done 0 in body, got %s (present=%v)", got, ok)
	}
	if got := string(posted["due_date"]); got != `"2026-09-01T00:00:00Z"` {
		t.Errorf("due_date not preserved, got %s", got)
	}

	var updatedDescription string
	_ = json.Unmarshal(posted["description"], &updatedDescription)
	if !strings.Contains(updatedDescription, "0/5 (0%)") {
		t.Errorf("status block not rewritten: %q", updatedDescription)
	}
	if strings.Contains(updatedDescription, "old status") {
		t.Error("stale status block left in description")
	}
}

func TestMoveTask_ResolvesBucketByName(t *testing.T) {
	var posted map[string]json.RawMessage

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /api/v1/projects":
			w.Write([]byte(`[{"id":1,"title":"Internal TODO"}]`))
		case "GET /api/v1/projects/1/views":
			w.Write([]byte(`[{"id":2,"title":"Kanban"}]`))
		case "GET /api/v1/projects/1/views/2/tasks":
			w.Write([]byte(`[{"id":9,"title":"Card","project_id":1,"bucket_id":3}]`))
		case "GET /api/v1/projects/1/views/2/buckets":
			w.Write([]byte(`[{"id":3,"title":"Idé"},{"id":4,"title":"Pågående"}]`))
		case "GET /api/v1/tasks/9":
			w.Write([]byte(`{"id":9,"title":"Card","project_id":1,"bucket_id":3}`))
		case "POST /api/v1/tasks/9":
			if err := json.NewDecoder(r.Body).Decode(&posted); err != nil {
				t.Fatalf("failed to decode update body: %v", err)
			}
			w.Write([]byte(`{"id":9,"title":"Card","bucket_id":4}`))
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	result := runCommand(t, "move-task",
		"--base-url", server.URL, "--token", "secret",
		"--title", "Card", "--to", "Pågående")

	if result["action"] != "moved" {
		t.Errorf("expected action moved, got %v", result["action"])
	}
	if result["bucket_id"] != float64(4) {
		t.Errorf("expected bucket 4, got %v", result["bucket_id"])
	}
	var bucketID int64
	_ = json.Unmarshal(posted["bucket_id"], &bucketID)
	if bucketID != 4 {
		t.Errorf("expected bucket 4 in body, got %d", bucketID)
	}
}
