package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const (
	// MaxLogSize is the maximum size in bytes for the log file (10MB)
	MaxLogSize = 10 * 1024 * 1024

	// DefaultLogDir is the default directory for log files
	DefaultLogDir = "~/.shellm/logs"

	// DefaultLogFile is the default log file name
	DefaultLogFile = "shellm.log"
)

var (
	// Logger is the global logger instance
	Logger *slog.Logger

	// logFile is the current log file
	logFile *os.File
)

func init() {
	// Keep a usable logger even before InitLogger runs (tests, early errors)
	Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// InitLogger initializes the logger with file output only
func InitLogger() error {
	logDir, err := expandPath(DefaultLogDir)
	if err != nil {
		return fmt.Errorf("failed to expand log directory path: %v", err)
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %v", err)
	}

	logFilePath := filepath.Join(logDir, DefaultLogFile)

	logFile, err = os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %v", err)
	}

	handler := slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(time.Now().Format(time.RFC3339))
			}
			return a
		},
	})

	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	Logger.Info("Logger initialized", "path", logFilePath)

	// Rotate if a previous run left an oversized file behind
	if info, err := logFile.Stat(); err == nil && info.Size() >= MaxLogSize {
		rotateLogFile(logFilePath)
	}

	return nil
}

// expandPath expands the ~ to the user's home directory
func expandPath(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, path[1:]), nil
}

// rotateLogFile rotates the current log file
func rotateLogFile(logFilePath string) {
	if logFile != nil {
		logFile.Close()
	}

	timestamp := time.Now().Format("20060102-150405")
	backupPath := fmt.Sprintf("%s.%s", logFilePath, timestamp)

	if err := os.Rename(logFilePath, backupPath); err != nil {
		Logger.Error("Failed to rotate log file", "error", err)
		return
	}

	newLogFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		Logger.Error("Failed to create new log file", "error", err)
		return
	}

	logFile = newLogFile

	handler := slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	Logger.Info("Log file rotated", "old", backupPath, "new", logFilePath)
}

// Close properly closes the log file
func Close() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// LogLLMRequest logs a completion API request
func LogLLMRequest(model string, promptLength int) {
	Logger.Info("LLM Request",
		"model", model,
		"promptLength", promptLength)
}

// LogLLMResponse logs a completion API response
func LogLLMResponse(model string, attempts int, err error) {
	if err != nil {
		Logger.Error("LLM Response Failed",
			"model", model,
			"attempts", attempts,
			"error", err)
	} else {
		Logger.Info("LLM Response",
			"model", model,
			"attempts", attempts)
	}
}

// LogCommandExecution logs an executed command and its outcome
func LogCommandExecution(command string, exitCode int) {
	Logger.Info("Command Executed",
		"command", command,
		"exitCode", exitCode)
}

// LogAppStart logs application startup
func LogAppStart(version string) {
	Logger.Info("App Started", "version", version)
}

// LogAppExit logs application exit
func LogAppExit() {
	Logger.Info("App Exited")
}

// LogError logs an error
func LogError(msg string, args ...any) {
	Logger.Error(msg, args...)
}
