// Package types holds the wire types shared by the gateway, its HTTP client
// and the interactive UI.
package types

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// MaxGlossaryEntries caps the glossary returned by a translation.
const MaxGlossaryEntries = 5

// =============================================================================
// ACTIONS
// =============================================================================

// Action is the discriminator sent to the gateway.
type Action string

const (
	ActionTranslate         Action = "translate"
	ActionVisualExplanation Action = "visual_explanation"
	ActionInfographicPrompt Action = "infographic_prompt"
)

// Actions lists every supported action in UI order.
var Actions = []Action{ActionTranslate, ActionVisualExplanation, ActionInfographicPrompt}

// Valid reports whether a is one of the supported actions.
func (a Action) Valid() bool {
	switch a {
	case ActionTranslate, ActionVisualExplanation, ActionInfographicPrompt:
		return true
	}
	return false
}

// ParseAction converts a raw discriminator into an Action.
func ParseAction(s string) (Action, bool) {
	a := Action(strings.TrimSpace(s))
	return a, a.Valid()
}

// =============================================================================
// GATEWAY REQUEST / RESPONSE
// =============================================================================

// ActionRequest is the body accepted by the gateway endpoint.
type ActionRequest struct {
	Action Action `json:"action"`
	Text   string `json:"text"`
}

// ErrorResponse is the body of every non-2xx gateway answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// GlossaryEntry is a term/definition pair extracted from the source text.
type GlossaryEntry struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// TranslationResult is the structured output of the translate action.
// When Error is set the remaining fields are empty.
type TranslationResult struct {
	SimplifiedText string          `json:"simplifiedText"`
	Steps          []string        `json:"steps,omitempty"`
	Glossary       []GlossaryEntry `json:"glossary,omitempty"`
	Error          string          `json:"error,omitempty"`
}

// HasError reports whether the provider declined to answer.
func (r *TranslationResult) HasError() bool {
	return r != nil && strings.TrimSpace(r.Error) != ""
}

// Normalize enforces the result invariants: an error wipes the content,
// blank steps and glossary entries are dropped and the glossary is capped.
// It returns an error when a result without a provider error has no text.
func (r *TranslationResult) Normalize() error {
	if r.HasError() {
		*r = TranslationResult{Error: strings.TrimSpace(r.Error)}
		return nil
	}
	r.Error = ""
	r.SimplifiedText = strings.TrimSpace(r.SimplifiedText)
	if r.SimplifiedText == "" {
		return fmt.Errorf("translation has no simplifiedText")
	}

	steps := r.Steps[:0]
	for _, s := range r.Steps {
		if s = strings.TrimSpace(s); s != "" {
			steps = append(steps, s)
		}
	}
	r.Steps = steps

	glossary := make([]GlossaryEntry, 0, len(r.Glossary))
	for _, g := range r.Glossary {
		g.Term = strings.TrimSpace(g.Term)
		g.Definition = strings.TrimSpace(g.Definition)
		if g.Term == "" {
			continue
		}
		glossary = append(glossary, g)
		if len(glossary) == MaxGlossaryEntries {
			break
		}
	}
	r.Glossary = glossary

	if len(r.Steps) == 0 {
		r.Steps = nil
	}
	if len(r.Glossary) == 0 {
		r.Glossary = nil
	}
	return nil
}

// ImageResponse is the body of a visual_explanation answer. A nil ImageURL
// means the provider produced no image.
type ImageResponse struct {
	ImageURL *string `json:"imageUrl"`
}

// PromptResponse is the body of an infographic_prompt answer.
type PromptResponse struct {
	Prompt string `json:"prompt"`
}

// =============================================================================
// IMAGES
// =============================================================================

// DefaultImageMIMEType is used when the provider does not label its payload.
const DefaultImageMIMEType = "image/png"

// ImageResult is a decoded illustration.
type ImageResult struct {
	MIMEType string
	Data     []byte
}

// DataURL renders the image as a base64 data URL.
func (i *ImageResult) DataURL() string {
	mime := i.MIMEType
	if mime == "" {
		mime = DefaultImageMIMEType
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// Extension returns the file extension matching the image MIME type.
func (i *ImageResult) Extension() string {
	switch i.MIMEType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}

// ParseDataURL decodes a base64 data URL produced by DataURL.
func ParseDataURL(s string) (*ImageResult, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("data URL has no payload")
	}
	mime, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return nil, fmt.Errorf("data URL is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image payload: %w", err)
	}
	if mime == "" {
		mime = DefaultImageMIMEType
	}
	return &ImageResult{MIMEType: mime, Data: data}, nil
}
