// Package render turns command-line text into the HTML fragments Vikunja
// displays, and fills the {{key}} placeholders of the bundled templates.
package render

import (
	"regexp"
)

// placeholderPattern matches Mustache-style {{key}} placeholders.
var placeholderPattern = regexp.MustCompile(`\{\{([a-zA-Z_][a-zA-Z0-9_]*)\}\}`)

// Template substitutes {{key}} placeholders with values from the map.
// Unknown placeholders are left as-is.
func Template(text string, values map[string]string) string {
	if len(values) == 0 {
		return text
	}

	return placeholderPattern.ReplaceAllStringFunc(text, func(m string) string {
		sub := placeholderPattern.FindStringSubmatch(m)
		if len(sub) < 2 {
			return m
		}
		if value, ok := values[sub[1]]; ok {
			return value
		}
		return m
	})
}
