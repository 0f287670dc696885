package cmd

import (
	"github.com/spf13/cobra"

	"github.com/warm3snow/shellm/internal/ui"
)

// chatCmd starts the interactive session, same as running shellm with no
// arguments
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive session",
	Long: `Start an interactive session. Each request is translated into a
shell command that runs after your confirmation; executed commands and their
errors feed back into the context for the next request.`,
	Run: func(cmd *cobra.Command, args []string) {
		ui.PrintLogo("Chat")
		runInteractive()
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
