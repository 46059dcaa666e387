package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// FailurePrefix starts every assistant turn that reports a transport
	// failure to the user.
	FailurePrefix = "Could not reach the assistant service: "

	// NoResponseFallback is shown when a 2xx response carries no content.
	NoResponseFallback = "(no response)"
)

// Endpoint defaults. The gateway fronting the hosted model expects a
// tenant header alongside the bearer token.
// TODO: move the token out of the binary once the gateway supports
// per-install keys.
const (
	defaultEndpoint = "https://ai-gateway.elroy.app/v1/chat/completions"
	defaultModel    = "elroy-chat-1"
	defaultToken    = "sk-elroy-frontend-2c9f81d4a6b35e70"
	defaultTenant   = "elroy-web"
	defaultTimeout  = 120 * time.Second
)

// Config configures the assistant client. Zero values fall back to the
// fixed production endpoint.
type Config struct {
	Endpoint string
	Model    string
	Token    string
	Tenant   string
	Timeout  time.Duration
}

// Client issues chat completion requests against the hosted assistant
// endpoint. One request per send; no retries.
type Client struct {
	config Config
	client *http.Client
}

// NewClient creates a client, filling unset config fields with the fixed
// endpoint defaults.
func NewClient(config Config) *Client {
	if config.Endpoint == "" {
		config.Endpoint = defaultEndpoint
	}
	if config.Model == "" {
		config.Model = defaultModel
	}
	if config.Token == "" {
		config.Token = defaultToken
	}
	if config.Tenant == "" {
		config.Tenant = defaultTenant
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}

	return &Client{
		config: config,
		client: &http.Client{},
	}
}

// Complete sends the message sequence and returns the first choice's
// message text. The call is aborted after the configured timeout. A 2xx
// response with no parseable content yields NoResponseFallback rather
// than an error.
func (c *Client) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	reqBody, err := json.Marshal(chatRequest{
		Model:    c.config.Model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return NoResponseFallback, nil
	}

	return chatResp.Choices[0].Message.Content, nil
}

// ReplyOrFailure maps a completed call to the assistant-visible text:
// the reply on success, or the fixed failure prefix plus the error's
// description. Every failure surfaces this way; nothing is retried.
func ReplyOrFailure(reply string, err error) string {
	if err != nil {
		return FailurePrefix + err.Error()
	}
	return reply
}

// setHeaders sets the required headers for the assistant endpoint.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	req.Header.Set("X-Tenant-ID", c.config.Tenant)
}
