package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LLM.BaseURL != "https://openrouter.ai/api/v1" {
		t.Errorf("Unexpected default base URL: %q", cfg.LLM.BaseURL)
	}
	if cfg.LLM.MaxRetries != 3 {
		t.Errorf("Expected 3 retries, got %d", cfg.LLM.MaxRetries)
	}
	if cfg.LLM.Temperature != 0.2 {
		t.Errorf("Expected temperature 0.2, got %v", cfg.LLM.Temperature)
	}
	if cfg.History.MaxEntries != 10 {
		t.Errorf("Expected history bound 10, got %d", cfg.History.MaxEntries)
	}
	if cfg.History.PromptWindow != 5 {
		t.Errorf("Expected prompt window 5, got %d", cfg.History.PromptWindow)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "shellm-config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "shellm.yaml")
	content := `llm:
  model: some/other-model
  max_retries: 5
history:
  max_entries: 20
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LLM.Model != "some/other-model" {
		t.Errorf("Expected model from file, got %q", cfg.LLM.Model)
	}
	if cfg.LLM.MaxRetries != 5 {
		t.Errorf("Expected max retries from file, got %d", cfg.LLM.MaxRetries)
	}
	if cfg.History.MaxEntries != 20 {
		t.Errorf("Expected history bound from file, got %d", cfg.History.MaxEntries)
	}

	// Unset values keep their defaults
	if cfg.LLM.BaseURL != "https://openrouter.ai/api/v1" {
		t.Errorf("Expected default base URL, got %q", cfg.LLM.BaseURL)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load("/definitely/not/a/real/shellm.yaml"); err == nil {
		t.Error("Expected an error for a missing explicit config file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "shellm-config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "shellm.yaml")
	if err := os.WriteFile(configPath, []byte("llm: ["), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("Expected an error for invalid YAML")
	}
}

func TestAPIKeyFromEnvironment(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "env-key")

	cfg, err := applyEnv(DefaultConfig())
	if err != nil {
		t.Fatalf("applyEnv failed: %v", err)
	}

	if cfg.LLM.APIKey != "env-key" {
		t.Errorf("Expected API key from environment, got %q", cfg.LLM.APIKey)
	}
}

func TestConfigAPIKeyWinsOverEnvironment(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "env-key")

	cfg := DefaultConfig()
	cfg.LLM.APIKey = "file-key"

	cfg, err := applyEnv(cfg)
	if err != nil {
		t.Fatalf("applyEnv failed: %v", err)
	}

	if cfg.LLM.APIKey != "file-key" {
		t.Errorf("Expected config file API key to win, got %q", cfg.LLM.APIKey)
	}
}

func TestEnvOverlay(t *testing.T) {
	t.Setenv("SHELLM_LLM_MODEL", "override/model")
	t.Setenv("SHELLM_HISTORY_MAX_ENTRIES", "7")

	cfg, err := applyEnv(DefaultConfig())
	if err != nil {
		t.Fatalf("applyEnv failed: %v", err)
	}

	if cfg.LLM.Model != "override/model" {
		t.Errorf("Expected model from environment overlay, got %q", cfg.LLM.Model)
	}
	if cfg.History.MaxEntries != 7 {
		t.Errorf("Expected history bound from environment overlay, got %d", cfg.History.MaxEntries)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "shellm-config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	cfg := DefaultConfig()
	cfg.LLM.Model = "saved/model"

	configPath := filepath.Join(tmpDir, "shellm.yaml")
	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.LLM.Model != "saved/model" {
		t.Errorf("Expected saved model, got %q", loaded.LLM.Model)
	}
}
