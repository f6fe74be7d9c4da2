package render

import (
	"html"
	"strings"
)

// emptyField is what blank or missing optional fields render as.
const emptyField = "–"

// Escape HTML-escapes a string, including quotes.
func Escape(s string) string {
	return html.EscapeString(s)
}

// OrDash trims a field and substitutes a dash for blank values.
func OrDash(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return emptyField
	}
	return s
}

// Block renders plain text as a Vikunja HTML fragment. Input consisting only
// of -/* bullet lines becomes a nested list; anything else becomes a single
// paragraph with <br> line breaks. Blank input renders as a dash paragraph.
func Block(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return "<p>" + emptyField + "</p>"
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return "<p>" + emptyField + "</p>"
	}

	allList := true
	for _, line := range lines {
		if !isListLine(line) {
			allList = false
			break
		}
	}
	if allList {
		return renderList(lines)
	}

	escaped := make([]string, len(lines))
	for i, line := range lines {
		escaped[i] = Escape(strings.TrimSpace(line))
	}
	return "<p>" + strings.Join(escaped, "<br>") + "</p>"
}

func isListLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*")
}

type listItem struct {
	level   int
	content string
}

// renderList turns bullet lines into a nested <ul>. Indentation steps of two
// spaces add a level, capped at three levels deep.
func renderList(lines []string) string {
	expanded := make([]string, len(lines))
	minIndent := -1
	for i, line := range lines {
		expanded[i] = strings.ReplaceAll(line, "\t", "  ")
		indent := len(expanded[i]) - len(strings.TrimLeft(expanded[i], " "))
		if minIndent < 0 || indent < minIndent {
			minIndent = indent
		}
	}

	items := make([]listItem, 0, len(expanded))
	for _, line := range expanded {
		indent := len(line) - len(strings.TrimLeft(line, " "))
		content := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(content, "-") || strings.HasPrefix(content, "*") {
			content = strings.TrimLeft(content[1:], " \t")
		}
		level := (indent - minIndent) / 2
		if level < 0 {
			level = 0
		}
		if level > 2 {
			level = 2
		}
		items = append(items, listItem{level: level, content: applyCheckbox(content)})
	}

	return renderNestedList(items)
}

// applyCheckbox replaces leading [ ]/[x] markers with checkbox glyphs.
func applyCheckbox(content string) string {
	lowered := strings.ToLower(content)
	switch {
	case strings.HasPrefix(lowered, "[ ]"):
		return "☐ " + strings.TrimLeft(content[3:], " \t")
	case strings.HasPrefix(lowered, "[x]"):
		return "☑ " + strings.TrimLeft(content[3:], " \t")
	}
	return content
}

func renderNestedList(items []listItem) string {
	var sb strings.Builder
	sb.WriteString("<ul>")

	currentLevel := 0
	openLI := []bool{false}

	for _, item := range items {
		if item.level > currentLevel {
			for currentLevel < item.level {
				sb.WriteString("<ul>")
				currentLevel++
				openLI = append(openLI, false)
			}
		} else if item.level < currentLevel {
			for currentLevel > item.level {
				if openLI[currentLevel] {
					sb.WriteString("</li>")
					openLI[currentLevel] = false
				}
				sb.WriteString("</ul>")
				openLI = openLI[:len(openLI)-1]
				currentLevel--
			}
		}

		if openLI[currentLevel] {
			sb.WriteString("</li>")
			openLI[currentLevel] = false
		}

		sb.WriteString("<li>")
		sb.WriteString(Escape(item.content))
		openLI[currentLevel] = true
	}

	for currentLevel > 0 {
		if openLI[currentLevel] {
			sb.WriteString("</li>")
		}
		sb.WriteString("</ul>")
		openLI = openLI[:len(openLI)-1]
		currentLevel--
	}

	if openLI[0] {
		sb.WriteString("</li>")
	}
	sb.WriteString("</ul>")

	return sb.String()
}
