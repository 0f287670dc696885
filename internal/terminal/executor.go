package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/warm3snow/shellm/internal/logging"
)

// Result holds the outcome of a command execution
type Result struct {
	Success  bool
	Command  string
	Stdout   string
	Stderr   string
	ExitCode int
}

// Executor runs shell commands with user confirmation and feeds the outcome
// back into the terminal context.
type Executor struct {
	ctx     *Context
	shell   string
	timeout time.Duration

	// confirmation I/O, swappable in tests
	in  io.Reader
	out io.Writer

	cmdStyle *color.Color
	errStyle *color.Color
}

// NewExecutor creates a command executor bound to the given context
func NewExecutor(ctx *Context, shell string, timeout time.Duration) *Executor {
	if shell == "" {
		shell = "/bin/bash"
	}

	return &Executor{
		ctx:      ctx,
		shell:    shell,
		timeout:  timeout,
		in:       os.Stdin,
		out:      os.Stdout,
		cmdStyle: color.New(color.FgYellow).Add(color.Bold),
		errStyle: color.New(color.FgRed).Add(color.Bold),
	}
}

// SetIO overrides the confirmation input and output streams
func (e *Executor) SetIO(in io.Reader, out io.Writer) {
	e.in = in
	e.out = out
}

// displayCommand shows the proposed command before confirmation
func (e *Executor) displayCommand(command string) {
	fmt.Fprintln(e.out, "\nProposed command:")
	e.cmdStyle.Fprintf(e.out, "  $ %s\n\n", command)
}

// askConfirmation prompts the user to approve the command
func (e *Executor) askConfirmation(command string) bool {
	e.displayCommand(command)

	reader := bufio.NewReader(e.in)
	for {
		fmt.Fprint(e.out, "Execute this command? [y/n]: ")

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return false
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		default:
			fmt.Fprintln(e.out, "Please enter 'y' or 'n'.")
		}
	}
}

// Execute runs a shell command after recording it into the context and, when
// requireConfirmation is set, asking the user to approve it. A failed run
// stores its stderr as the context's last error; a successful run clears it.
func (e *Executor) Execute(command string, requireConfirmation bool) Result {
	e.ctx.RecordCommand(command)

	if requireConfirmation && !e.askConfirmation(command) {
		return Result{
			Success:  false,
			Command:  command,
			Stderr:   "Command execution cancelled by user.",
			ExitCode: -1,
		}
	}

	runCtx := context.Background()
	if e.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, e.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, e.shell, "-c", command)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if runCtx.Err() == context.DeadlineExceeded {
		errMsg := fmt.Sprintf("Command timed out after %d seconds.", int(e.timeout.Seconds()))
		e.ctx.RecordError(errMsg)
		logging.LogCommandExecution(command, -1)

		return Result{
			Success:  false,
			Command:  command,
			Stderr:   errMsg,
			ExitCode: -1,
		}
	}

	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			errMsg := fmt.Sprintf("Error executing command: %s", err)
			e.ctx.RecordError(errMsg)
			logging.LogCommandExecution(command, -1)

			return Result{
				Success:  false,
				Command:  command,
				Stderr:   errMsg,
				ExitCode: -1,
			}
		}
	}

	outStr := strings.TrimSpace(stdout.String())
	errStr := strings.TrimSpace(stderr.String())

	if exitCode != 0 {
		e.ctx.RecordError(errStr)
	} else {
		e.ctx.ClearError()
	}

	logging.LogCommandExecution(command, exitCode)

	return Result{
		Success:  exitCode == 0,
		Command:  command,
		Stdout:   outStr,
		Stderr:   errStr,
		ExitCode: exitCode,
	}
}

// DisplayResult prints the outcome of a command execution
func (e *Executor) DisplayResult(result Result) {
	if !result.Success {
		fmt.Fprintln(e.out, "\nCommand failed or was cancelled.")

		if result.Stderr != "" {
			fmt.Fprintln(e.out, "\nError output:")
			e.errStyle.Fprintln(e.out, result.Stderr)
		}
	} else {
		if result.Stdout != "" {
			fmt.Fprintln(e.out, "\nOutput:")
			fmt.Fprintln(e.out, result.Stdout)
		} else {
			fmt.Fprintln(e.out, "\nCommand executed successfully with no output.")
		}
	}

	fmt.Fprintln(e.out)
}
