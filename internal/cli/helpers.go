package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/mekberg/vikunjactl/internal/config"
	"github.com/mekberg/vikunjactl/internal/match"
	"github.com/mekberg/vikunjactl/internal/version"
	"github.com/mekberg/vikunjactl/internal/vikunja"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadClient loads and validates the config and builds a client from it.
func loadClient() (*config.Config, *vikunja.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	opts := []vikunja.Option{
		vikunja.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		vikunja.WithUserAgent("vikunjactl/" + version.Short()),
	}
	if viper.GetBool("verbose") {
		opts = append(opts, vikunja.WithLogger(log.New(os.Stderr, "vikunja: ", log.LstdFlags)))
	}

	client, err := vikunja.NewClient(cfg.BaseURL, cfg.Token, opts...)
	if err != nil {
		return nil, nil, err
	}
	return cfg, client, nil
}

// locateBoard resolves the configured project and view to IDs, honoring
// explicit ID overrides.
func locateBoard(ctx context.Context, client *vikunja.Client, cfg *config.Config) (projectID, viewID int64, err error) {
	projectID = cfg.ProjectID
	if projectID == 0 {
		project, err := client.FindProject(ctx, cfg.Project)
		if err != nil {
			return 0, 0, err
		}
		projectID = project.ID
	}

	viewID = cfg.ViewID
	if viewID == 0 {
		view, err := client.FindView(ctx, projectID, cfg.View)
		if err != nil {
			return 0, 0, err
		}
		viewID = view.ID
	}

	return projectID, viewID, nil
}

// criteriaFromFlags reads the shared task-selection flags.
func criteriaFromFlags(cmd *cobra.Command) match.Criteria {
	prNumber, _ := cmd.Flags().GetString("pr-number")
	branch, _ := cmd.Flags().GetString("branch")
	title, _ := cmd.Flags().GetString("title")
	return match.Criteria{PRNumber: prNumber, Branch: branch, Title: title}
}

// findTask resolves a task by explicit ID or by scanning the configured view
// with the given criteria. Returns (nil, nil) when nothing matches.
func findTask(ctx context.Context, client *vikunja.Client, cfg *config.Config, taskID int64, crit match.Criteria) (*vikunja.Task, error) {
	if taskID != 0 {
		return client.GetTask(ctx, taskID)
	}

	projectID, viewID, err := locateBoard(ctx, client, cfg)
	if err != nil {
		return nil, err
	}
	return match.Resolve(ctx, client, projectID, viewID, 0, crit)
}

// printResult writes a command's JSON result object to stdout.
func printResult(result interface{}) error {
	enc := json.NewEncoder(rootCmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

// splitList parses a comma-separated flag value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
