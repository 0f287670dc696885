// Package assistant orchestrates the generate → confirm → execute → record
// cycle around the terminal context and the completion client.
package assistant

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/warm3snow/shellm/internal/completion"
	"github.com/warm3snow/shellm/internal/config"
	"github.com/warm3snow/shellm/internal/llm"
	"github.com/warm3snow/shellm/internal/logging"
	"github.com/warm3snow/shellm/internal/terminal"
	"github.com/warm3snow/shellm/internal/ui"
)

var slashCommands = []string{"/help", "/context", "/reset", "/exit"}

// Assistant wires the terminal context, the completion client and the
// command executor together.
type Assistant struct {
	cfg      *config.Config
	termCtx  *terminal.Context
	client   *llm.Client
	executor *terminal.Executor

	userStyle *color.Color
	infoStyle *color.Color
	errStyle  *color.Color
}

// New creates an assistant. It fails when the completion client cannot be
// constructed, typically because no API key is configured.
func New(cfg *config.Config) (*Assistant, error) {
	if !cfg.UI.ColorEnabled {
		color.NoColor = true
	}

	client, err := llm.NewClient(cfg.LLM)
	if err != nil {
		return nil, err
	}

	termCtx := terminal.NewContext(cfg.History.MaxEntries)
	executor := terminal.NewExecutor(
		termCtx,
		cfg.Executor.Shell,
		time.Duration(cfg.Executor.TimeoutSeconds)*time.Second,
	)

	return &Assistant{
		cfg:       cfg,
		termCtx:   termCtx,
		client:    client,
		executor:  executor,
		userStyle: color.New(color.FgGreen).Add(color.Bold),
		infoStyle: color.New(color.FgCyan),
		errStyle:  color.New(color.FgRed).Add(color.Bold),
	}, nil
}

// Context returns the terminal context owned by this assistant
func (a *Assistant) Context() *terminal.Context {
	return a.termCtx
}

// Run starts the interactive session
func (a *Assistant) Run() error {
	ui.ShowWelcomeMessage()
	ui.PrintModelInfo(a.client.Model())

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32m❯\033[0m ",
		HistoryFile:     "/tmp/shellm_history.txt",
		AutoComplete:    completion.NewReadlineCompleter(slashCommands),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("error initializing readline: %v", err)
	}
	defer rl.Close()

	for {
		input, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(input) == 0 {
					break
				}
				continue
			} else if err == io.EOF {
				break
			}
			return fmt.Errorf("error reading input: %v", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "exit", "quit", "bye", "/exit":
			fmt.Println("Goodbye!")
			return nil
		}

		if a.handleSlashCommand(input) {
			continue
		}

		// "!" bypasses the model and runs the command directly
		if strings.HasPrefix(input, "!") {
			command := strings.TrimSpace(strings.TrimPrefix(input, "!"))
			if command != "" {
				result := a.executor.Execute(command, true)
				a.executor.DisplayResult(result)
			}
			continue
		}

		a.ProcessRequest(input)

		rl.SaveHistory(input)
	}

	return nil
}

// ProcessRequest turns one natural-language request into a proposed command,
// asks for confirmation and executes it.
func (a *Assistant) ProcessRequest(request string) {
	a.infoStyle.Println("Generating command...")

	prompt := llm.BuildPrompt(request, a.termCtx, a.cfg.History.PromptWindow)

	command, err := a.client.GenerateCommand(prompt)
	if err != nil {
		if errors.Is(err, llm.ErrAuthentication) {
			a.errStyle.Printf("Error: %v\n", err)
			fmt.Println("\nPlease set your OpenRouter API key:")
			fmt.Println("  export OPENROUTER_API_KEY=your_api_key_here")
			fmt.Println("Get your API key from https://openrouter.ai/keys")
			return
		}
		a.errStyle.Printf("Error generating command: %v\n", err)
		return
	}

	result := a.executor.Execute(command, true)
	a.executor.DisplayResult(result)
}

// handleSlashCommand handles /help, /context and /reset. Returns true when
// the input was a slash command.
func (a *Assistant) handleSlashCommand(input string) bool {
	switch input {
	case "/help":
		a.showHelpMessage()
		return true
	case "/context":
		fmt.Printf("\n%s\n\n", a.termCtx)
		return true
	case "/reset":
		a.termCtx.ClearError()
		a.infoStyle.Println("\nLast error has been cleared.")
		logging.Logger.Info("Context error cleared by user")
		return true
	}
	return false
}

func (a *Assistant) showHelpMessage() {
	fmt.Println("\nAvailable commands:")
	fmt.Println("  /help     Show this help message")
	fmt.Println("  /context  Show the current terminal context")
	fmt.Println("  /reset    Clear the recorded last error")
	fmt.Println("  /exit     Exit the assistant")
	fmt.Println("  !<cmd>    Run a shell command directly (still confirmed)")
	fmt.Println("\nAnything else is treated as a natural-language request.")
	fmt.Println()
}
