package ui

import (
	"fmt"
	"strings"

	"cadet/internal/types"

	"github.com/charmbracelet/glamour"
)

// Section headings, as the cadet reads them.
const (
	HeadingTranslation = "Traducción Simplificada"
	HeadingSteps       = "Procedimiento (Paso a Paso)"
	HeadingGlossary    = "Glosario para Cadete"
	HeadingImage       = "Ilustración Técnica Generada por IA"
	HeadingPrompt      = "Prompt para Infografía"
)

// TranslationMarkdown formats a translation result as markdown. Empty
// sections are left out.
func TranslationMarkdown(res *types.TranslationResult) string {
	if res == nil || res.HasError() {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n%s\n", HeadingTranslation, res.SimplifiedText)

	if len(res.Steps) > 0 {
		fmt.Fprintf(&b, "\n## %s\n\n", HeadingSteps)
		for i, step := range res.Steps {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step)
		}
	}

	if len(res.Glossary) > 0 {
		fmt.Fprintf(&b, "\n## %s\n\n", HeadingGlossary)
		for _, g := range res.Glossary {
			fmt.Fprintf(&b, "- **%s:** %s\n", g.Term, g.Definition)
		}
	}
	return b.String()
}

// NewRenderer creates a glamour renderer matching the theme.
func NewRenderer(theme Theme, width int) (*glamour.TermRenderer, error) {
	style := "light"
	if theme.IsDark {
		style = "dark"
	}
	if width <= 0 {
		width = 80
	}
	return glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
}

// RenderMarkdown renders md with r, falling back to the raw text when the
// renderer is missing, fails or panics.
func RenderMarkdown(r *glamour.TermRenderer, md string) (out string) {
	if r == nil {
		return md
	}
	defer func() {
		if rec := recover(); rec != nil {
			out = md
		}
	}()
	rendered, err := r.Render(md)
	if err != nil {
		return md
	}
	return rendered
}
