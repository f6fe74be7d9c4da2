package render

import (
	"strings"
	"time"
)

// Markers embedded in task descriptions. Only descriptions carrying
// ManagedMarker are ever rewritten; the status markers delimit the block
// that progress updates replace.
const (
	ManagedMarker = "<!-- vikunja-skill:managed -->"
	statusStart   = "<!-- vikunja-skill:status-start -->"
	statusEnd     = "<!-- vikunja-skill:status-end -->"
)

// IsManaged reports whether a description was created by this tool.
func IsManaged(description string) bool {
	return strings.Contains(description, ManagedMarker)
}

// EnsureManaged prepends the managed marker when missing.
func EnsureManaged(description string) string {
	if IsManaged(description) {
		return description
	}
	return ManagedMarker + "\n\n" + description
}

// StatusBlock builds the marker-delimited status fragment.
func StatusBlock(summaryHTML, progress string, now time.Time) string {
	lines := []string{
		statusStart,
		"<p><strong>Sammanfattning:</strong></p>",
		summaryHTML,
		"<p><strong>Progress:</strong> " + Escape(progress) + "</p>",
		"<p><strong>Senast uppdaterad:</strong> " + now.Format("2006-01-02") + "</p>",
		statusEnd,
	}
	return strings.Join(lines, "\n")
}

// SpliceStatus replaces the status block in a description, or appends one
// when no block exists yet.
func SpliceStatus(description, summaryHTML, progress string, now time.Time) string {
	block := StatusBlock(summaryHTML, progress, now)

	if strings.Contains(description, statusStart) && strings.Contains(description, statusEnd) {
		before := strings.TrimRight(strings.SplitN(description, statusStart, 2)[0], " \t\n")
		after := strings.TrimLeft(strings.SplitN(description, statusEnd, 2)[1], " \t\n")
		return strings.TrimSpace(strings.Join([]string{before, block, after}, "\n")) + "\n"
	}

	return strings.TrimRight(description, " \t\n") + "\n\n" + block + "\n"
}
