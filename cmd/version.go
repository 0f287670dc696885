package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/warm3snow/shellm/internal/ui"
)

// Version information
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Long:  `Display detailed version information about Shellm.`,
	Run: func(cmd *cobra.Command, args []string) {
		ui.PrintLogo("Version")

		fmt.Println("Shellm - Natural Language Shell Assistant")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Date: %s\n", BuildDate)
		fmt.Printf("Git Commit: %s\n", GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
