package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration. Environment variables
// prefixed SHELLM_ (e.g. SHELLM_LLM_MODEL) override file values.
type Config struct {
	LLM      LLMConfig      `yaml:"llm"`
	History  HistoryConfig  `yaml:"history"`
	Executor ExecutorConfig `yaml:"executor"`
	UI       UIConfig       `yaml:"ui"`
}

// LLMConfig represents the completion API configuration
type LLMConfig struct {
	BaseURL           string  `yaml:"base_url" split_words:"true"`
	Model             string  `yaml:"model"`
	APIKey            string  `yaml:"api_key" split_words:"true"`
	Temperature       float64 `yaml:"temperature"`
	MaxTokens         int     `yaml:"max_tokens" split_words:"true"`
	TimeoutSeconds    int     `yaml:"timeout_seconds" split_words:"true"`
	MaxRetries        int     `yaml:"max_retries" split_words:"true"`
	RetryDelaySeconds float64 `yaml:"retry_delay_seconds" split_words:"true"`
}

// HistoryConfig controls the terminal context history
type HistoryConfig struct {
	MaxEntries   int `yaml:"max_entries" split_words:"true"`
	PromptWindow int `yaml:"prompt_window" split_words:"true"`
}

// ExecutorConfig controls command execution
type ExecutorConfig struct {
	Shell          string `yaml:"shell"`
	TimeoutSeconds int    `yaml:"timeout_seconds" split_words:"true"`
}

// UIConfig represents the UI configuration
type UIConfig struct {
	ColorEnabled bool `yaml:"color_enabled" split_words:"true"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			BaseURL:           "https://openrouter.ai/api/v1",
			Model:             "mistralai/mistral-small-3.1-24b-instruct:free",
			Temperature:       0.2,
			MaxTokens:         200,
			TimeoutSeconds:    30,
			MaxRetries:        3,
			RetryDelaySeconds: 1.0,
		},
		History: HistoryConfig{
			MaxEntries:   10,
			PromptWindow: 5,
		},
		Executor: ExecutorConfig{
			Shell:          "/bin/bash",
			TimeoutSeconds: 60,
		},
		UI: UIConfig{
			ColorEnabled: true,
		},
	}
}

// Load loads the configuration from the shellm.yaml file.
// Lookup order: explicit path, ./shellm.yaml, ~/.shellm/shellm.yaml.
// When no file exists the default config is written to ~/.shellm/shellm.yaml.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	configPath := path
	if configPath == "" {
		configPath = "shellm.yaml"
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			home, err := os.UserHomeDir()
			if err != nil {
				return applyEnv(cfg)
			}

			shellmDir := filepath.Join(home, ".shellm")
			configPath = filepath.Join(shellmDir, "shellm.yaml")

			if _, err := os.Stat(configPath); os.IsNotExist(err) {
				if err := os.MkdirAll(shellmDir, 0755); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: Failed to create directory %s: %s\n", shellmDir, err)
					return applyEnv(cfg)
				}

				data, err := yaml.Marshal(cfg)
				if err != nil {
					return applyEnv(cfg)
				}

				if err := os.WriteFile(configPath, data, 0644); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: Failed to write default config to %s: %s\n", configPath, err)
				}
				return applyEnv(cfg)
			}
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return applyEnv(cfg)
}

// applyEnv overlays SHELLM_* environment variables on top of the config,
// then falls back to OPENROUTER_API_KEY for the API key.
func applyEnv(cfg *Config) (*Config, error) {
	if err := envconfig.Process("SHELLM", cfg); err != nil {
		return nil, fmt.Errorf("error processing environment config: %w", err)
	}

	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENROUTER_API_KEY")
	}

	return cfg, nil
}

// Save saves the configuration to the specified path or ~/.shellm/shellm.yaml by default
func (c *Config) Save(path string) error {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error getting user home directory: %w", err)
		}

		shellmDir := filepath.Join(home, ".shellm")
		if err := os.MkdirAll(shellmDir, 0755); err != nil {
			return fmt.Errorf("error creating directory %s: %w", shellmDir, err)
		}

		path = filepath.Join(shellmDir, "shellm.yaml")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Show prints the effective configuration as YAML, masking the API key
func (c *Config) Show(w io.Writer) {
	masked := *c
	if masked.LLM.APIKey != "" {
		masked.LLM.APIKey = "********"
	}

	data, err := yaml.Marshal(&masked)
	if err != nil {
		fmt.Fprintf(w, "error marshaling config: %s\n", err)
		return
	}
	fmt.Fprint(w, string(data))
}
