package llm

import (
	"fmt"
	"strings"

	"github.com/warm3snow/shellm/internal/terminal"
)

// systemMessage instructs the model to reply with a bare shell command.
// The wording and the few-shot examples are a contract with the model's
// output behavior; keep them stable.
const systemMessage = `
You are a helpful terminal assistant that translates natural language requests into executable bash commands.

INSTRUCTIONS:
1. Your response should ONLY contain the bash command without any explanations, markdown formatting, or additional text.
2. The user will confirm or reject your proposed command before execution.
3. Use the current working directory and terminal context provided to generate appropriate commands.
4. Choose the most efficient and correct command for the user's request.
5. Do not include ` + "```bash, ```" + `, or any other markdown formatting in your response.
6. Use appropriate flags and options for user-friendly output (e.g., -h for human-readable output in commands like ls -lh).

EXAMPLES:
Request: "Show me the largest files in this directory"
Response: find . -type f -exec du -h {} \; | sort -rh | head -n 10

Request: "Create a backup of my config file"
Response: cp ~/.config/myapp/config.yaml ~/.config/myapp/config.yaml.bak

Request: "How much disk space do I have left"
Response: df -h
`

// DefaultHistoryWindow is the default number of recent commands in the prompt
const DefaultHistoryWindow = 5

// formatHistory renders the most recent commands, numbered oldest first
func formatHistory(ctx *terminal.Context, window int) string {
	if window <= 0 {
		window = DefaultHistoryWindow
	}

	history := ctx.History()
	if len(history) > window {
		history = history[len(history)-window:]
	}

	if len(history) == 0 {
		return "No previous commands in history."
	}

	var b strings.Builder
	b.WriteString("Recent commands:\n")
	for i, cmd := range history {
		fmt.Fprintf(&b, "%d. %s\n", i+1, cmd)
	}

	return b.String()
}

// formatError renders the last error line, or "" when no error is recorded
func formatError(ctx *terminal.Context) string {
	if msg, ok := ctx.LastError(); ok {
		return fmt.Sprintf("Last error message: %s", msg)
	}
	return ""
}

// formatSystemInfo renders the OS/shell/host block
func formatSystemInfo(ctx *terminal.Context) string {
	return fmt.Sprintf(
		"OS: %s %s\nShell: %s %s\nHost: %s",
		ctx.OSName, ctx.OSVersion,
		ctx.ShellName, ctx.ShellVersion,
		ctx.Hostname)
}

// BuildPrompt combines the user request and the terminal context into the
// prompt sent to the model. The working directory is refreshed first so the
// prompt always reflects the process's current directory.
func BuildPrompt(request string, ctx *terminal.Context, historyWindow int) string {
	ctx.RefreshWorkingDirectory()

	parts := []string{
		systemMessage,
		"TERMINAL CONTEXT:",
		fmt.Sprintf("Current working directory: %s", ctx.WorkingDirectory),
		formatHistory(ctx, historyWindow),
	}

	if errLine := formatError(ctx); errLine != "" {
		parts = append(parts, errLine)
	}

	parts = append(parts,
		formatSystemInfo(ctx),
		"",
		"USER REQUEST:",
		request,
		"",
		"COMMAND:",
	)

	return strings.Join(parts, "\n")
}
