package ui

import (
	"strings"
	"testing"

	"cadet/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("CADET_DARK_MODE", "1")
	assert.True(t, DetectTheme().IsDark)

	t.Setenv("CADET_DARK_MODE", "")
	assert.False(t, DetectTheme().IsDark)

	t.Setenv("COLORFGBG", "15;0")
	assert.True(t, DetectTheme().IsDark)
}

func TestTranslationMarkdown(t *testing.T) {
	assert.Empty(t, TranslationMarkdown(nil))
	assert.Empty(t, TranslationMarkdown(&types.TranslationResult{Error: "sin datos"}))

	md := TranslationMarkdown(&types.TranslationResult{SimplifiedText: "La PCU controla el combustible."})
	assert.Contains(t, md, HeadingTranslation)
	assert.NotContains(t, md, HeadingSteps)
	assert.NotContains(t, md, HeadingGlossary)

	md = TranslationMarkdown(&types.TranslationResult{
		SimplifiedText: "x",
		Steps:          []string{"Abrir válvula.", "Arrancar bomba."},
		Glossary:       []types.GlossaryEntry{{Term: "PCU", Definition: "Unidad de control."}},
	})
	assert.Contains(t, md, "1. Abrir válvula.\n2. Arrancar bomba.")
	assert.Contains(t, md, "- **PCU:** Unidad de control.")
	assert.Less(t, strings.Index(md, HeadingSteps), strings.Index(md, HeadingGlossary))
}

func TestRenderMarkdown(t *testing.T) {
	assert.Equal(t, "# hola", RenderMarkdown(nil, "# hola"))

	r, err := NewRenderer(LightTheme(), 60)
	require.NoError(t, err)
	out := RenderMarkdown(r, "**PCU**")
	assert.Contains(t, out, "PCU")
}

func TestLayout(t *testing.T) {
	l := NewLayoutConfig(200, 50)
	assert.Equal(t, MaxContentWidth, l.ContentWidth())
	assert.Greater(t, l.ResultsHeight(), 3)

	small := NewLayoutConfig(20, 10)
	assert.Equal(t, MinimumTerminalWidth-2, small.ContentWidth())
	assert.Equal(t, 3, small.ResultsHeight())
}
