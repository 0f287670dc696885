package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/warm3snow/shellm/internal/assistant"
)

// askCmd generates, confirms and runs a single command
var askCmd = &cobra.Command{
	Use:   "ask <request...>",
	Short: "Generate and run a single command from a natural-language request",
	Long: `Translate one natural-language request into a shell command,
show it for confirmation and execute it.

Example:
  shellm ask show me the largest files in this directory`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		asst, err := assistant.New(Config)
		if err != nil {
			exitOnStartupError(err)
		}

		asst.ProcessRequest(strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
