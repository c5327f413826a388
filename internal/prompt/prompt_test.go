package prompt

import (
	"strings"
	"testing"

	"cadet/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

const pcuText = `La unidad de control de propulsión (PCU) modula el flujo de combustible al motor de turbina de gas principal (GTM) basándose en las entradas del acelerador desde el puente.`

func TestBuild_EmbedsTextVerbatim(t *testing.T) {
	tricky := pcuText + "\n{{.Text}} <b>&amp;</b> \"comillas\""

	for _, action := range types.Actions {
		t.Run(string(action), func(t *testing.T) {
			got, err := Build(action, tricky)
			require.NoError(t, err)
			assert.Contains(t, got, "\"\"\"\n"+tricky+"\n\"\"\"")
		})
	}
}

func TestBuild_Translate(t *testing.T) {
	got, err := Build(types.ActionTranslate, pcuText)
	require.NoError(t, err)

	assert.Contains(t, got, "Máximo 80 palabras")
	assert.Contains(t, got, "como máximo 5 términos")
	assert.Contains(t, got, InsufficientInfoMessage)
	assert.Contains(t, got, "No inventes información")
}

func TestBuild_Visual(t *testing.T) {
	got, err := Build(types.ActionVisualExplanation, pcuText)
	require.NoError(t, err)

	assert.Contains(t, got, "16:9")
	assert.Contains(t, got, "PROHIBIDO EL TEXTO")
}

func TestBuild_Infographic(t *testing.T) {
	got, err := Build(types.ActionInfographicPrompt, pcuText)
	require.NoError(t, err)

	assert.Contains(t, got, NegativePromptMarker)
	assert.Contains(t, got, "[Paleta de colores]")
	assert.Contains(t, got, "COMPLETAMENTE EN ESPAÑOL")
}

func TestBuild_UnknownAction(t *testing.T) {
	_, err := Build(types.Action("unknown"), pcuText)
	assert.Error(t, err)
}

func TestEnsureNegativePrompt(t *testing.T) {
	withMarker := "Infografía técnica... " + NegativePromptMarker
	assert.Equal(t, withMarker, EnsureNegativePrompt("  "+withMarker+"\n"))

	got := EnsureNegativePrompt("Infografía técnica de la PCU")
	assert.True(t, strings.HasSuffix(got, "\n\n"+NegativePromptMarker))
	assert.True(t, strings.HasPrefix(got, "Infografía técnica de la PCU"))

	assert.Equal(t, NegativePromptMarker, EnsureNegativePrompt(""))
}

func TestTranslationSchema(t *testing.T) {
	s := TranslationSchema()
	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, []string{"simplifiedText"}, s.Required)

	glossary := s.Properties["glossary"]
	require.NotNil(t, glossary)
	assert.Equal(t, genai.TypeArray, glossary.Type)
	require.NotNil(t, glossary.MaxItems)
	assert.Equal(t, int64(types.MaxGlossaryEntries), *glossary.MaxItems)
	assert.ElementsMatch(t, []string{"term", "definition"}, glossary.Items.Required)

	for _, optional := range []string{"steps", "glossary", "error"} {
		require.NotNil(t, s.Properties[optional].Nullable, optional)
		assert.True(t, *s.Properties[optional].Nullable, optional)
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := map[string]string{
		`{"a":1}`:                    `{"a":1}`,
		"```json\n{\"a\":1}\n```":    `{"a":1}`,
		"```\n{\"a\":1}\n```":        `{"a":1}`,
		"  ```JSON {\"a\":1} ```  ":  `{"a":1}`,
		"```json\n{\"a\":\"```\"}\n": "{\"a\":\"```\"}",
	}
	for in, want := range tests {
		assert.Equal(t, want, StripCodeFence(in), in)
	}
}
