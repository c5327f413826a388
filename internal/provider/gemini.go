// Package provider connects cadet to the Google Gemini API.
package provider

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Generator is the slice of the genai API the gateway depends on.
// *genai.Models satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Config holds the settings needed to open a provider client.
type Config struct {
	APIKey  string
	Timeout time.Duration // zero = no timeout
}

// NewGemini opens a Gemini API client and returns its model service.
func NewGemini(ctx context.Context, cfg Config) (Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Timeout > 0 {
		cc.HTTPOptions.Timeout = &cfg.Timeout
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return client.Models, nil
}

// Logged wraps a Generator and logs every call.
type Logged struct {
	Next   Generator
	Logger *zap.Logger
}

// GenerateContent implements Generator.
func (l *Logged) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	start := time.Now()
	resp, err := l.Next.GenerateContent(ctx, model, contents, config)
	elapsed := time.Since(start)

	if err != nil {
		l.Logger.Warn("provider call failed",
			zap.String("model", model),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return nil, err
	}
	if resp == nil {
		l.Logger.Warn("provider returned no response",
			zap.String("model", model),
			zap.Duration("elapsed", elapsed))
		return nil, nil
	}

	fields := []zap.Field{
		zap.String("model", model),
		zap.Duration("elapsed", elapsed),
		zap.Int("candidates", len(resp.Candidates)),
	}
	if u := resp.UsageMetadata; u != nil {
		fields = append(fields,
			zap.Int32("prompt_tokens", u.PromptTokenCount),
			zap.Int32("output_tokens", u.CandidatesTokenCount))
	}
	l.Logger.Debug("provider call", fields...)
	return resp, nil
}
