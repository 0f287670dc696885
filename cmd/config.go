package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/warm3snow/shellm/internal/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long:  `Print the effective Shellm configuration as YAML, with the API key masked.`,
	Run: func(cmd *cobra.Command, args []string) {
		ui.PrintLogo("Config")
		Config.Show(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
