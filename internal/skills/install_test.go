package skills

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInstall(t *testing.T) {
	dir := t.TempDir()

	installed, err := Install(dir, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(installed) == 0 {
		t.Fatal("expected skills to be installed")
	}

	skillPath := filepath.Join(dir, ".claude", "skills", "vikunja-kanban", "SKILL.md")
	content, err := os.ReadFile(skillPath)
	if err != nil {
		t.Fatalf("skill file not written: %v", err)
	}
	if !strings.Contains(string(content), "vikunjactl") {
		t.Error("unexpected skill content")
	}
}

func TestInstall_SkipsExisting(t *testing.T) {
	dir := t.TempDir()
	skillDir := filepath.Join(dir, ".claude", "skills", "vikunja-kanban")
	if err := os.MkdirAll(skillDir, 0755); err != nil {
		t.Fatal(err)
	}
	skillPath := filepath.Join(skillDir, "SKILL.md")
	if err := os.WriteFile(skillPath, []byte("locally edited"), 0644); err != nil {
		t.Fatal(err)
	}

	installed, err := Install(dir, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, name := range installed {
		if name == "vikunja-kanban" {
			t.Error("existing skill should not be reinstalled without force")
		}
	}

	content, _ := os.ReadFile(skillPath)
	if string(content) != "locally edited" {
		t.Error("existing skill file was overwritten")
	}
}

func TestInstall_ForceOverwrites(t *testing.T) {
	dir := t.TempDir()
	skillDir := filepath.Join(dir, ".claude", "skills", "vikunja-kanban")
	if err := os.MkdirAll(skillDir, 0755); err != nil {
		t.Fatal(err)
	}
	skillPath := filepath.Join(skillDir, "SKILL.md")
	if err := os.WriteFile(skillPath, []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}

	installed, err := Install(dir, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(installed) == 0 {
		t.Fatal("expected forced reinstall")
	}

	content, _ := os.ReadFile(skillPath)
	if string(content) == "stale" {
		t.Error("force install should overwrite")
	}
}
