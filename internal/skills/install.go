package skills

import (
	"fmt"
	"os"
	"path/filepath"
)

// Install writes every bundled skill to <rootDir>/.claude/skills/<name>/SKILL.md.
// Existing skill files are left alone unless force is set. Returns the names
// of the skills actually written.
func Install(rootDir string, force bool) ([]string, error) {
	loaded, err := Load()
	if err != nil {
		return nil, err
	}

	var installed []string
	for _, skill := range loaded {
		written, err := installSkill(rootDir, skill, force)
		if err != nil {
			return installed, fmt.Errorf("failed to install skill %s: %w", skill.Entry.Name, err)
		}
		if written {
			installed = append(installed, skill.Entry.Name)
		}
	}

	return installed, nil
}

func installSkill(rootDir string, skill Skill, force bool) (bool, error) {
	skillDir := filepath.Join(rootDir, ".claude", "skills", skill.Entry.Name)
	skillPath := filepath.Join(skillDir, "SKILL.md")

	if _, err := os.Stat(skillPath); err == nil && !force {
		return false, nil // already installed
	}

	if err := os.MkdirAll(skillDir, 0755); err != nil {
		return false, fmt.Errorf("failed to create skills directory: %w", err)
	}

	if err := os.WriteFile(skillPath, []byte(skill.Content), 0644); err != nil {
		return false, fmt.Errorf("failed to write skill file: %w", err)
	}

	return true, nil
}
