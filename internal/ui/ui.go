package ui

import (
	"fmt"

	"github.com/fatih/color"
)

const (
	Logo = `
███████╗██╗  ██╗███████╗██╗     ██╗     ███╗   ███╗
██╔════╝██║  ██║██╔════╝██║     ██║     ████╗ ████║
███████╗███████║█████╗  ██║     ██║     ██╔████╔██║
╚════██║██╔══██║██╔══╝  ██║     ██║     ██║╚██╔╝██║
███████║██║  ██║███████╗███████╗███████╗██║ ╚═╝ ██║
╚══════╝╚═╝  ╚═╝╚══════╝╚══════╝╚══════╝╚═╝     ╚═╝`
)

// PrintLogo prints the ASCII art logo with an optional subcommand name
func PrintLogo(subcommand string) {
	logoColor := color.New(color.FgCyan, color.Bold)
	logoColor.Println(Logo)

	if subcommand != "" {
		fmt.Printf("         %s\n", subcommand)
	}

	fmt.Println()
}

// ShowWelcomeMessage displays the welcome message for the interactive loop
func ShowWelcomeMessage() {
	fmt.Println("\n* Welcome to Shellm!")
	fmt.Println("\nAsk me anything in natural language, and I'll generate a shell command for you.")
	fmt.Println("Type 'exit' or 'quit' to exit. Type /help for available commands.")
	fmt.Println()
}

// PrintModelInfo displays information about the currently connected model
func PrintModelInfo(model string) {
	modelInfo := color.New(color.FgCyan)
	modelInfo.Printf("\nConnected to model: %s\n", model)
}
