package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/warm3snow/shellm/internal/assistant"
	"github.com/warm3snow/shellm/internal/config"
	"github.com/warm3snow/shellm/internal/llm"
	"github.com/warm3snow/shellm/internal/logging"
	"github.com/warm3snow/shellm/internal/ui"
)

var (
	// Used for flags
	cfgFile string
	Config  *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "shellm",
	Short: "Shellm translates natural language into shell commands",
	Long: `Shellm is a terminal assistant that translates natural-language
requests into shell commands using a remote language model. Every proposed
command is shown to you and only runs after you confirm it.`,
	Run: func(cmd *cobra.Command, args []string) {
		ui.PrintLogo("")
		runInteractive()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := logging.InitLogger(); err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		// Continue execution even if logger fails, just without file logging
	}
	defer logging.Close()

	logging.LogAppStart(Version)

	if err := rootCmd.Execute(); err != nil {
		logging.LogError("Command execution failed", "error", err)
		fmt.Println(err)
		os.Exit(1)
	}

	logging.LogAppExit()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.shellm/shellm.yaml)")
}

func initConfig() {
	var err error
	Config, err = config.Load(cfgFile)
	if err != nil {
		logging.LogError("Failed to load config, using defaults", "error", err)
		Config = config.DefaultConfig()
	}
}

// runInteractive starts the interactive assistant session
func runInteractive() {
	asst, err := assistant.New(Config)
	if err != nil {
		exitOnStartupError(err)
	}

	if err := asst.Run(); err != nil {
		logging.LogError("Interactive session failed", "error", err)
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// exitOnStartupError reports a fatal construction error and exits. A missing
// API key gets a dedicated hint.
func exitOnStartupError(err error) {
	fmt.Printf("Error: %v\n", err)
	if errors.Is(err, llm.ErrAuthentication) {
		fmt.Println("\nPlease set your OpenRouter API key:")
		fmt.Println("  export OPENROUTER_API_KEY=your_api_key_here")
		fmt.Println("Get your API key from https://openrouter.ai/keys")
	}
	os.Exit(1)
}
