// Package cli implements the vikunjactl command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/mekberg/vikunjactl/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "vikunjactl",
	Short: "Keep a Vikunja kanban board in sync with coding work",
	Long: `vikunjactl manages kanban cards in a Vikunja instance on behalf of an
AI coding assistant: find-or-create cards, post progress updates, link pull
requests, move cards between buckets and manage labels.

Safe by construction: tasks are never deleted, and descriptions are only
rewritten for cards this tool created.

Example:
  vikunjactl ensure-task --title "Fix login redirect" --pr-number 123`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Version = version.Short()
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .vikunjactl.yaml)")
	rootCmd.PersistentFlags().String("base-url", "", "Vikunja base URL (override VIKUNJA_BASE_URL)")
	rootCmd.PersistentFlags().String("token", "", "Vikunja API token (override VIKUNJA_API_TOKEN)")
	rootCmd.PersistentFlags().String("project", "", fmt.Sprintf("project name (default: %q)", "Internal TODO"))
	rootCmd.PersistentFlags().Int64("project-id", 0, "project ID override, skips the name lookup")
	rootCmd.PersistentFlags().String("view", "", fmt.Sprintf("view name (default: %q)", "Kanban"))
	rootCmd.PersistentFlags().Int64("view-id", 0, "view ID override, skips the name lookup")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable verbose output")

	_ = viper.BindPFlag("base_url", rootCmd.PersistentFlags().Lookup("base-url"))
	_ = viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
	_ = viper.BindPFlag("project", rootCmd.PersistentFlags().Lookup("project"))
	_ = viper.BindPFlag("project_id", rootCmd.PersistentFlags().Lookup("project-id"))
	_ = viper.BindPFlag("view", rootCmd.PersistentFlags().Lookup("view"))
	_ = viper.BindPFlag("view_id", rootCmd.PersistentFlags().Lookup("view-id"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error getting working directory:", err)
			os.Exit(1)
		}

		viper.AddConfigPath(cwd)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".vikunjactl")
	}

	viper.SetEnvPrefix("VIKUNJA")
	viper.AutomaticEnv()

	// The helper predates this tool; its env names don't follow the
	// VIKUNJA_<key> convention, so bind them explicitly.
	_ = viper.BindEnv("base_url", "VIKUNJA_BASE_URL")
	_ = viper.BindEnv("token", "VIKUNJA_API_TOKEN")
	_ = viper.BindEnv("project", "VIKUNJA_PROJECT_NAME")
	_ = viper.BindEnv("view", "VIKUNJA_VIEW_NAME")
	_ = viper.BindEnv("bucket", "VIKUNJA_BUCKET_NAME")

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}
