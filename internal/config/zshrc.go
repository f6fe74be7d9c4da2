package config

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// applyZshrcFallback fills empty config fields from VIKUNJA_* exports in
// ~/.zshrc. Interactive users often keep their token there without exporting
// it to non-login shells, which is where the assistant runs this tool.
func applyZshrcFallback(cfg *Config) {
	if cfg.BaseURL != "" && cfg.Token != "" {
		return
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}

	f, err := os.Open(filepath.Join(home, ".zshrc"))
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()

	vars := parseZshrcVars(f)
	fillFromVars(cfg, vars)
}

// fillFromVars copies parsed VIKUNJA_* values into unset config fields.
func fillFromVars(cfg *Config, vars map[string]string) {
	set := func(dst *string, key string) {
		if *dst == "" {
			if v, ok := vars[key]; ok {
				*dst = v
			}
		}
	}
	set(&cfg.BaseURL, "VIKUNJA_BASE_URL")
	set(&cfg.Token, "VIKUNJA_API_TOKEN")
	set(&cfg.Project, "VIKUNJA_PROJECT_NAME")
	set(&cfg.View, "VIKUNJA_VIEW_NAME")
	set(&cfg.Bucket, "VIKUNJA_BUCKET_NAME")
}

// parseZshrcVars extracts VIKUNJA_* assignments from shell rc content.
// Handles optional "export " prefixes, single/double quoting and trailing
// comments on unquoted values. The first assignment of a key wins, matching
// how the values would land in the environment of a login shell.
func parseZshrcVars(r io.Reader) map[string]string {
	vars := make(map[string]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		if !strings.HasPrefix(line, "VIKUNJA_") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		quoted := strings.HasPrefix(value, `"`) || strings.HasPrefix(value, "'")
		if !quoted {
			if idx := strings.Index(value, "#"); idx >= 0 {
				value = strings.TrimRight(value[:idx], " \t")
			}
		}
		if len(value) >= 2 {
			if (strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`)) ||
				(strings.HasPrefix(value, "'") && strings.HasSuffix(value, "'")) {
				value = value[1 : len(value)-1]
			}
		}

		if _, exists := vars[key]; key != "" && !exists {
			vars[key] = value
		}
	}

	return vars
}
