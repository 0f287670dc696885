package terminal

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"testing"
)

func TestRecordCommandBoundsHistory(t *testing.T) {
	ctx := NewContext(3)

	for i := 1; i <= 5; i++ {
		ctx.RecordCommand(fmt.Sprintf("cmd%d", i))
	}

	want := []string{"cmd3", "cmd4", "cmd5"}
	if got := ctx.History(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected history %v, got %v", want, got)
	}
}

func TestRecordCommandKeepsInsertionOrder(t *testing.T) {
	ctx := NewContext(10)

	commands := []string{"ls", "cd /tmp", "pwd"}
	for _, cmd := range commands {
		ctx.RecordCommand(cmd)
	}

	if got := ctx.History(); !reflect.DeepEqual(got, commands) {
		t.Errorf("Expected history %v, got %v", commands, got)
	}
}

func TestRecordCommandIgnoresBlank(t *testing.T) {
	ctx := NewContext(10)

	ctx.RecordCommand("")
	ctx.RecordCommand("   ")
	ctx.RecordCommand("\t\n")

	if got := ctx.History(); len(got) != 0 {
		t.Errorf("Expected empty history, got %v", got)
	}
}

func TestRecordCommandTrimsWhitespace(t *testing.T) {
	ctx := NewContext(10)

	ctx.RecordCommand("  ls -la  ")

	cmd, ok := ctx.MostRecentCommand()
	if !ok {
		t.Fatal("Expected a recorded command")
	}
	if cmd != "ls -la" {
		t.Errorf("Expected trimmed command %q, got %q", "ls -la", cmd)
	}
}

func TestMostRecentCommandEmpty(t *testing.T) {
	ctx := NewContext(10)

	if cmd, ok := ctx.MostRecentCommand(); ok {
		t.Errorf("Expected no command, got %q", cmd)
	}
}

func TestLastError(t *testing.T) {
	ctx := NewContext(10)

	if _, ok := ctx.LastError(); ok {
		t.Error("Expected no error on a fresh context")
	}

	ctx.RecordError("command not found")
	msg, ok := ctx.LastError()
	if !ok || msg != "command not found" {
		t.Errorf("Expected recorded error, got %q ok=%v", msg, ok)
	}

	ctx.ClearError()
	if _, ok := ctx.LastError(); ok {
		t.Error("Expected error to be cleared")
	}
}

func TestRefreshWorkingDirectory(t *testing.T) {
	ctx := NewContext(10)

	tmpDir, err := os.MkdirTemp("", "shellm-context-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	defer os.Chdir(origDir)

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}

	ctx.RefreshWorkingDirectory()

	// Resolve symlinks; on some systems MkdirTemp returns a symlinked path
	resolved, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if ctx.WorkingDirectory != resolved {
		t.Errorf("Expected working directory %q, got %q", resolved, ctx.WorkingDirectory)
	}
}

func TestSerialize(t *testing.T) {
	ctx := NewContext(10)
	ctx.RecordCommand("ls")
	ctx.RecordError("boom")

	data := ctx.Serialize()

	system, ok := data["system"].(map[string]any)
	if !ok {
		t.Fatal("Expected a system block")
	}
	if system["hostname"] != ctx.Hostname {
		t.Errorf("Expected hostname %q, got %v", ctx.Hostname, system["hostname"])
	}
	if !strings.HasPrefix(system["os"].(string), ctx.OSName) {
		t.Errorf("Expected os to start with %q, got %v", ctx.OSName, system["os"])
	}

	term, ok := data["terminal"].(map[string]any)
	if !ok {
		t.Fatal("Expected a terminal block")
	}
	if term["working_directory"] != ctx.WorkingDirectory {
		t.Errorf("Expected working directory %q, got %v", ctx.WorkingDirectory, term["working_directory"])
	}
	if !reflect.DeepEqual(term["previous_commands"], []string{"ls"}) {
		t.Errorf("Expected previous commands [ls], got %v", term["previous_commands"])
	}
	if term["last_error"] != "boom" {
		t.Errorf("Expected last error %q, got %v", "boom", term["last_error"])
	}
}

func TestStringIncludesState(t *testing.T) {
	ctx := NewContext(10)
	ctx.RecordCommand("pwd")

	s := ctx.String()
	if !strings.Contains(s, "pwd") {
		t.Errorf("Expected summary to contain the previous command, got %q", s)
	}
	if !strings.Contains(s, ctx.WorkingDirectory) {
		t.Errorf("Expected summary to contain the working directory, got %q", s)
	}
}

func TestNewContextDefaultBound(t *testing.T) {
	ctx := NewContext(0)

	for i := 0; i < DefaultMaxHistory+5; i++ {
		ctx.RecordCommand(fmt.Sprintf("cmd%d", i))
	}

	if got := len(ctx.History()); got != DefaultMaxHistory {
		t.Errorf("Expected history bounded to %d, got %d", DefaultMaxHistory, got)
	}
}
