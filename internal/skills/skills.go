// Package skills bundles the Markdown skill documents and rendering
// templates that ship with vikunjactl, and installs the skill documents
// into a project's .claude/skills directory.
package skills

import (
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed manifest.yaml vikunja-kanban/SKILL.md templates/*.md
var bundle embed.FS

// Entry is a single skill definition from the manifest.
type Entry struct {
	Name        string `yaml:"name"`
	File        string `yaml:"file"`
	Description string `yaml:"description"`
}

// Manifest lists the bundled skills.
type Manifest struct {
	Skills []Entry `yaml:"skills"`
}

// Skill is a loaded skill with its document content.
type Skill struct {
	Entry   Entry
	Content string
}

// LoadManifest parses the embedded manifest.
func LoadManifest() (*Manifest, error) {
	raw, err := bundle.ReadFile("manifest.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read skills manifest: %w", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse skills manifest: %w", err)
	}
	return &manifest, nil
}

// Load returns every bundled skill with its content, sorted by name.
func Load() ([]Skill, error) {
	manifest, err := LoadManifest()
	if err != nil {
		return nil, err
	}

	loaded := make([]Skill, 0, len(manifest.Skills))
	for _, entry := range manifest.Skills {
		content, err := bundle.ReadFile(entry.File)
		if err != nil {
			return nil, fmt.Errorf("skill file %q not found for skill %q: %w", entry.File, entry.Name, err)
		}
		loaded = append(loaded, Skill{Entry: entry, Content: string(content)})
	}

	sort.Slice(loaded, func(i, j int) bool {
		return loaded[i].Entry.Name < loaded[j].Entry.Name
	})

	return loaded, nil
}

// TaskDescriptionTemplate returns the {{key}} template for new managed task
// descriptions.
func TaskDescriptionTemplate() (string, error) {
	return readTemplate("templates/task_description.md")
}

// ProgressCommentTemplate returns the {{key}} template for progress comments.
func ProgressCommentTemplate() (string, error) {
	return readTemplate("templates/progress_comment.md")
}

func readTemplate(path string) (string, error) {
	raw, err := bundle.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read embedded template %s: %w", path, err)
	}
	return string(raw), nil
}
