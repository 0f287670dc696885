// Package llm builds prompts and talks to an OpenAI-compatible chat
// completion endpoint to turn natural-language requests into shell commands.
package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/warm3snow/shellm/internal/config"
	"github.com/warm3snow/shellm/internal/logging"
)

// ErrAuthentication marks a missing or rejected API key. It is fatal: the
// client never retries it and callers should stop and tell the user to fix
// their key.
var ErrAuthentication = errors.New("authentication failed")

const (
	// Static identifying headers required by OpenRouter
	refererHeader = "https://github.com/warm3snow/shellm"
	titleHeader   = "Shellm Terminal Assistant"
)

// Client sends chat completion requests to the configured provider.
// Each call is independent; the client keeps no per-call state.
type Client struct {
	cfg        config.LLMConfig
	httpClient *http.Client

	// sleep is time.Sleep, replaced in tests
	sleep func(time.Duration)
}

// NewClient creates a completion client. It fails when no API key is
// configured, either in the config file or via OPENROUTER_API_KEY.
func NewClient(cfg config.LLMConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: API key not found, set OPENROUTER_API_KEY or llm.api_key in shellm.yaml", ErrAuthentication)
	}

	defaults := config.DefaultConfig().LLM
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaults.Model
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaults.MaxRetries
	}
	if cfg.RetryDelaySeconds <= 0 {
		cfg.RetryDelaySeconds = defaults.RetryDelaySeconds
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		sleep: time.Sleep,
	}, nil
}

// Model returns the configured model identifier
func (c *Client) Model() string {
	return c.cfg.Model
}

// newRequest builds the HTTP request for one attempt
func (c *Client) newRequest(prompt string) (*http.Request, error) {
	payload := ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []Message{
			{Role: "user", Content: prompt},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %v", err)
	}

	apiURL := fmt.Sprintf("%s/chat/completions", c.cfg.BaseURL)
	req, err := http.NewRequest("POST", apiURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("HTTP-Referer", refererHeader)
	req.Header.Set("X-Title", titleHeader)

	return req, nil
}

// GenerateCommand sends the prompt and returns the generated shell command.
// Transient failures (rate limit, timeout) are retried up to the configured
// attempt budget; everything else fails on the first attempt.
func (c *Client) GenerateCommand(prompt string) (string, error) {
	logging.LogLLMRequest(c.cfg.Model, len(prompt))

	command, attempts, err := c.generate(prompt)
	logging.LogLLMResponse(c.cfg.Model, attempts, err)

	return command, err
}

func (c *Client) generate(prompt string) (string, int, error) {
	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		req, err := c.newRequest(prompt)
		if err != nil {
			return "", attempt + 1, fmt.Errorf("unexpected error: %v", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				if attempt < c.cfg.MaxRetries-1 {
					c.sleep(c.backoffDelay(attempt))
					continue
				}
				return "", attempt + 1, errors.New("request timed out")
			}
			return "", attempt + 1, fmt.Errorf("request error: %v", err)
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			if readErr != nil {
				return "", attempt + 1, fmt.Errorf("unexpected error: %v", readErr)
			}
			command, err := parseCommandResponse(body)
			return command, attempt + 1, err

		case resp.StatusCode == http.StatusUnauthorized:
			return "", attempt + 1, fmt.Errorf("%w: invalid API key", ErrAuthentication)

		case resp.StatusCode == http.StatusTooManyRequests:
			c.sleep(retryAfterDelay(resp, attempt))
			continue

		default:
			return "", attempt + 1, fmt.Errorf("API error: %d - %s", resp.StatusCode, body)
		}
	}

	return "", c.cfg.MaxRetries, errors.New("max retries exceeded")
}

// backoffDelay computes the exponential timeout backoff for an attempt
func (c *Client) backoffDelay(attempt int) time.Duration {
	delay := c.cfg.RetryDelaySeconds * math.Pow(2, float64(attempt))
	return time.Duration(delay * float64(time.Second))
}

// retryAfterDelay honors the server's Retry-After hint, falling back to
// 2^attempt seconds when the header is absent or unparsable
func retryAfterDelay(resp *http.Response, attempt int) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds >= 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return time.Duration(math.Pow(2, float64(attempt))) * time.Second
}

// parseCommandResponse extracts the command text from a 200 response body
func parseCommandResponse(body []byte) (string, error) {
	var chatResponse ChatCompletionResponse
	if err := json.Unmarshal(body, &chatResponse); err != nil {
		return "", fmt.Errorf("failed to parse command from response: %v", err)
	}

	if chatResponse.Error != nil {
		return "", fmt.Errorf("API error: %s", chatResponse.Error.Message)
	}

	if len(chatResponse.Choices) == 0 {
		return "", errors.New("failed to parse command from response")
	}

	command := strings.TrimSpace(chatResponse.Choices[0].Message.Content)
	if command == "" {
		return "", errors.New("failed to parse command from response")
	}

	return command, nil
}
