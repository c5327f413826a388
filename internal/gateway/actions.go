package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"cadet/internal/prompt"
	"cadet/internal/provider"
	"cadet/internal/types"
	"cadet/internal/usage"

	"google.golang.org/genai"
)

// ErrInvalidAction is returned for an unknown action discriminator.
var ErrInvalidAction = errors.New("invalid action")

// Models names the provider models used per action.
type Models struct {
	Text  string
	Image string
}

// Actions runs the three gateway actions against a provider.
type Actions struct {
	gen    provider.Generator
	models Models
	usage  *usage.Tracker
}

// NewActions creates an action runner. tracker may be nil.
func NewActions(gen provider.Generator, models Models, tracker *usage.Tracker) *Actions {
	return &Actions{gen: gen, models: models, usage: tracker}
}

// Run dispatches action and returns the JSON-encodable response body.
func (a *Actions) Run(ctx context.Context, action types.Action, text string) (any, error) {
	switch action {
	case types.ActionTranslate:
		return a.Translate(ctx, text)
	case types.ActionVisualExplanation:
		return a.VisualExplanation(ctx, text)
	case types.ActionInfographicPrompt:
		return a.InfographicPrompt(ctx, text)
	default:
		return nil, ErrInvalidAction
	}
}

// Translate asks the text model for a structured simplified translation.
func (a *Actions) Translate(ctx context.Context, text string) (*types.TranslationResult, error) {
	p, err := prompt.Build(types.ActionTranslate, text)
	if err != nil {
		return nil, err
	}

	resp, err := a.generate(ctx, types.ActionTranslate, a.models.Text, p, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   prompt.TranslationSchema(),
	})
	if err != nil {
		return nil, err
	}

	raw := prompt.StripCodeFence(resp.Text())
	var result types.TranslationResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("failed to parse model output as JSON: %w", err)
	}
	if err := result.Normalize(); err != nil {
		return nil, fmt.Errorf("invalid model output: %w", err)
	}
	return &result, nil
}

// VisualExplanation asks the image model for an illustration. A response
// without an inline image yields a nil ImageURL, not an error.
func (a *Actions) VisualExplanation(ctx context.Context, text string) (*types.ImageResponse, error) {
	p, err := prompt.Build(types.ActionVisualExplanation, text)
	if err != nil {
		return nil, err
	}

	resp, err := a.generate(ctx, types.ActionVisualExplanation, a.models.Image, p, &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{AspectRatio: prompt.ImageAspectRatio},
	})
	if err != nil {
		return nil, err
	}

	img := FirstInlineImage(resp)
	if img == nil {
		return &types.ImageResponse{}, nil
	}
	url := img.DataURL()
	return &types.ImageResponse{ImageURL: &url}, nil
}

// InfographicPrompt asks the text model for a prompt usable in external
// image tools. The result always carries the negative-prompt marker.
func (a *Actions) InfographicPrompt(ctx context.Context, text string) (*types.PromptResponse, error) {
	p, err := prompt.Build(types.ActionInfographicPrompt, text)
	if err != nil {
		return nil, err
	}

	resp, err := a.generate(ctx, types.ActionInfographicPrompt, a.models.Text, p, nil)
	if err != nil {
		return nil, err
	}

	generated := strings.TrimSpace(resp.Text())
	if generated == "" {
		return nil, fmt.Errorf("model returned an empty prompt")
	}
	return &types.PromptResponse{Prompt: prompt.EnsureNegativePrompt(generated)}, nil
}

func (a *Actions) generate(ctx context.Context, action types.Action, model, p string, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	resp, err := a.gen.GenerateContent(ctx, model, genai.Text(p), cfg)
	if err != nil {
		a.usage.TrackFailure()
		return nil, err
	}
	if resp == nil {
		a.usage.TrackFailure()
		return nil, fmt.Errorf("provider returned no response")
	}

	var in, out int64
	if u := resp.UsageMetadata; u != nil {
		in, out = int64(u.PromptTokenCount), int64(u.CandidatesTokenCount)
	}
	a.usage.Track(string(action), model, in, out)
	usage.Record(ctx, in, out)
	return resp, nil
}

// FirstInlineImage returns the first inline image part of the first
// candidate, or nil.
func FirstInlineImage(resp *genai.GenerateContentResponse) *types.ImageResult {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return nil
	}
	for _, part := range content.Parts {
		if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		mime := part.InlineData.MIMEType
		if !strings.HasPrefix(mime, "image/") {
			mime = types.DefaultImageMIMEType
		}
		return &types.ImageResult{MIMEType: mime, Data: part.InlineData.Data}
	}
	return nil
}
