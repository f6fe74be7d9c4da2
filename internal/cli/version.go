package cli

import (
	"fmt"

	"github.com/mekberg/vikunjactl/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including commit hash and build date.`,
	Run: func(cmd *cobra.Command, args []string) {
		full, _ := cmd.Flags().GetBool("full")
		if full {
			fmt.Println(version.Full())
		} else {
			fmt.Println(version.Info())
		}
	},
}

func init() {
	versionCmd.Flags().Bool("full", false, "print verbose version information")
	rootCmd.AddCommand(versionCmd)
}
