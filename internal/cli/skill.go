package cli

import (
	"fmt"
	"os"

	"github.com/mekberg/vikunjactl/internal/skills"
	"github.com/spf13/cobra"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Manage the bundled assistant skill documents",
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the bundled skills",
	RunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := skills.Load()
		if err != nil {
			return err
		}
		for _, skill := range loaded {
			fmt.Printf("%-16s %s\n", skill.Entry.Name, skill.Entry.Description)
		}
		return nil
	},
}

var skillInstallCmd = &cobra.Command{
	Use:   "install [dir]",
	Short: "Install the skill documents into a project",
	Long: `Write the bundled skill documents to <dir>/.claude/skills/<name>/SKILL.md
so the coding assistant picks them up. Defaults to the current directory.
Existing files are kept unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDir := "."
		if len(args) == 1 {
			rootDir = args[0]
		}

		force, _ := cmd.Flags().GetBool("force")
		installed, err := skills.Install(rootDir, force)
		if err != nil {
			return err
		}

		if len(installed) == 0 {
			fmt.Fprintln(os.Stderr, "All skills already installed (use --force to overwrite).")
			return nil
		}
		for _, name := range installed {
			fmt.Printf("Installed skill %s\n", name)
		}
		return nil
	},
}

func init() {
	skillInstallCmd.Flags().Bool("force", false, "Overwrite existing skill files")
	skillCmd.AddCommand(skillListCmd)
	skillCmd.AddCommand(skillInstallCmd)
	rootCmd.AddCommand(skillCmd)
}
