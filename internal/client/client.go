// Package client talks to the cadet gateway over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cadet/internal/types"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// maxResponseBytes bounds how much of a gateway answer is read. Images are
// returned inline, so this is generous.
const maxResponseBytes = 32 << 20

// StatusError is returned for any non-2xx gateway answer.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gateway returned %d %s", e.Code, http.StatusText(e.Code))
	}
	return e.Message
}

// Config configures a Client.
type Config struct {
	URL     string        // full endpoint URL, e.g. http://localhost:8787/api/generate
	Timeout time.Duration // zero = no timeout
}

// Client posts actions to the gateway endpoint.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a gateway client. logger may be nil.
func New(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		url:        cfg.URL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// URL returns the endpoint the client posts to.
func (c *Client) URL() string { return c.url }

// Translate runs the translate action.
func (c *Client) Translate(ctx context.Context, text string) (*types.TranslationResult, error) {
	var out types.TranslationResult
	if err := c.do(ctx, types.ActionTranslate, text, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VisualExplanation runs the visual_explanation action. It returns nil
// without error when the provider produced no image.
func (c *Client) VisualExplanation(ctx context.Context, text string) (*types.ImageResult, error) {
	var out types.ImageResponse
	if err := c.do(ctx, types.ActionVisualExplanation, text, &out); err != nil {
		return nil, err
	}
	if out.ImageURL == nil || *out.ImageURL == "" {
		return nil, nil
	}
	return types.ParseDataURL(*out.ImageURL)
}

// InfographicPrompt runs the infographic_prompt action. An empty string
// means the gateway answered without a prompt.
func (c *Client) InfographicPrompt(ctx context.Context, text string) (string, error) {
	var out types.PromptResponse
	if err := c.do(ctx, types.ActionInfographicPrompt, text, &out); err != nil {
		return "", err
	}
	return out.Prompt, nil
}

func (c *Client) do(ctx context.Context, action types.Action, text string, out any) error {
	start := time.Now()

	body, err := json.Marshal(types.ActionRequest{Action: action, Text: text})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("gateway request failed", zap.String("action", string(action)), zap.Error(err))
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("gateway response",
		zap.String("action", string(action)),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", resp.Header.Get("X-Request-ID")),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Message: errorMessage(data)}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// errorMessage extracts the "error" field of a gateway error body.
func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return strings.TrimSpace(string(body))
	}
	return gjson.GetBytes(body, "error").String()
}
