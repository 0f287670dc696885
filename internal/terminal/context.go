// Package terminal captures terminal state and executes confirmed commands.
package terminal

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// DefaultMaxHistory is the default number of commands kept in history
const DefaultMaxHistory = 10

// Context is an in-memory snapshot of the terminal environment. It is owned
// by a single control flow; no locking.
type Context struct {
	Hostname     string
	OSName       string
	OSVersion    string
	ShellName    string
	ShellVersion string

	WorkingDirectory string

	history    []string
	maxHistory int
	lastError  string
}

// NewContext creates a context populated from the host environment.
// maxHistory <= 0 selects the default bound.
func NewContext(maxHistory int) *Context {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}

	hostname, _ := os.Hostname()
	cwd, _ := os.Getwd()

	shellName := "unknown"
	if shell := os.Getenv("SHELL"); shell != "" {
		shellName = filepath.Base(shell)
	}

	return &Context{
		Hostname:         hostname,
		OSName:           runtime.GOOS,
		OSVersion:        osVersion(),
		ShellName:        shellName,
		ShellVersion:     shellVersion(),
		WorkingDirectory: cwd,
		maxHistory:       maxHistory,
	}
}

// osVersion returns the kernel release, best effort
func osVersion() string {
	out, err := exec.Command("uname", "-r").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// shellVersion probes "$SHELL --version" and keeps the first line, best effort
func shellVersion() string {
	shell := os.Getenv("SHELL")
	if shell == "" {
		return ""
	}

	cmd := exec.Command(shell, "--version")
	out, err := cmd.Output()
	if err != nil {
		return ""
	}

	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(line)
}

// RefreshWorkingDirectory re-reads the process's current directory
func (c *Context) RefreshWorkingDirectory() {
	if cwd, err := os.Getwd(); err == nil {
		c.WorkingDirectory = cwd
	}
}

// RecordCommand appends a command to the history. Blank input is ignored.
// The history keeps only the most recent maxHistory entries.
func (c *Context) RecordCommand(command string) {
	command = strings.TrimSpace(command)
	if command == "" {
		return
	}

	c.history = append(c.history, command)
	if len(c.history) > c.maxHistory {
		c.history = c.history[len(c.history)-c.maxHistory:]
	}
}

// History returns a copy of the recorded command history, oldest first
func (c *Context) History() []string {
	out := make([]string, len(c.history))
	copy(out, c.history)
	return out
}

// MostRecentCommand returns the last history entry; ok is false when the
// history is empty.
func (c *Context) MostRecentCommand() (string, bool) {
	if len(c.history) == 0 {
		return "", false
	}
	return c.history[len(c.history)-1], true
}

// RecordError sets the last error message
func (c *Context) RecordError(message string) {
	c.lastError = message
}

// ClearError clears the last error message
func (c *Context) ClearError() {
	c.lastError = ""
}

// LastError returns the last recorded error message, if any
func (c *Context) LastError() (string, bool) {
	return c.lastError, c.lastError != ""
}

// Serialize converts the context to a structured mapping suitable for
// embedding in a prompt or a log entry.
func (c *Context) Serialize() map[string]any {
	return map[string]any{
		"system": map[string]any{
			"hostname":  c.Hostname,
			"os":        fmt.Sprintf("%s %s", c.OSName, c.OSVersion),
			"shell":     fmt.Sprintf("%s %s", c.ShellName, c.ShellVersion),
			"timestamp": time.Now().Format(time.RFC3339),
		},
		"terminal": map[string]any{
			"working_directory": c.WorkingDirectory,
			"previous_commands": c.History(),
			"last_error":        c.lastError,
		},
	}
}

// String returns a human-readable summary of the context
func (c *Context) String() string {
	previous := "None"
	if cmd, ok := c.MostRecentCommand(); ok {
		previous = cmd
	}

	lastError := "None"
	if msg, ok := c.LastError(); ok {
		lastError = msg
	}

	return fmt.Sprintf(
		"TerminalContext:\n"+
			"  Working Directory: %s\n"+
			"  Previous Command: %s\n"+
			"  Last Error: %s\n"+
			"  System: %s %s (%s)\n"+
			"  Shell: %s %s",
		c.WorkingDirectory, previous, lastError,
		c.OSName, c.OSVersion, c.Hostname,
		c.ShellName, c.ShellVersion)
}
