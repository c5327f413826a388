// Package prompt renders the provider prompts for each gateway action and
// the structured-output schema used by the translate action.
//
// The source text is embedded verbatim: text/template performs no escaping,
// so the model sees exactly what the cadet pasted.
package prompt

import (
	"fmt"
	"strings"
	"text/template"

	"cadet/internal/types"
)

// InsufficientInfoMessage is the error the model must return instead of
// inventing content.
const InsufficientInfoMessage = "No tengo información sobre ese tema en el documento proporcionado."

// NegativePromptMarker must close every infographic prompt.
const NegativePromptMarker = "--no English text, text in english, foreign text, gibberish, blurry text, watermarks"

// MaxSimplifiedWords bounds the simplified explanation. Enforced only through
// the prompt.
const MaxSimplifiedWords = 80

// ImageAspectRatio is the aspect ratio requested for illustrations.
const ImageAspectRatio = "16:9"

const translateTemplate = `Eres un instructor naval experto y traductor de jerga técnica. Ayudas a cadetes recién incorporados, sin formación técnica, a entender párrafos de manuales navales. Tu tono es claro, didáctico y alentador.

Analiza el siguiente texto de un manual naval y responde con un objeto JSON. Usa *exclusivamente* la información contenida en el texto.

Texto del manual:
"""
{{.Text}}
"""

Reglas estrictas:
1. **simplifiedText**: explica el texto en lenguaje simple y directo, como a un cadete novato. Máximo {{.MaxWords}} palabras.
2. **steps**: solo si el texto describe un procedimiento o una secuencia de acciones, preséntalo como una lista de pasos cortos en imperativo. Si no hay procedimiento, omite el campo o devuelve un array vacío.
3. **glossary**: identifica como máximo {{.MaxGlossary}} términos técnicos o de jerga naval del texto, cada uno con una definición muy breve y fácil de entender. Si no hay términos técnicos claros, omite el campo o devuelve un array vacío.
4. **error**: si el texto no contiene información suficiente para responder, devuelve únicamente el campo "error" con el valor "{{.InsufficientInfo}}". No inventes información.
`

const visualTemplate = `Genera una ilustración técnica educativa, con estilo de diagrama de manual, que explique visualmente el siguiente concepto naval a un cadete.

Reglas estrictas de la imagen:
1. Estilo: diagrama técnico limpio, claro y esquemático, formato panorámico {{.AspectRatio}}.
2. Contenido: representación visual del concepto.
3. PROHIBIDO EL TEXTO: la imagen NO debe contener texto, palabras, letras, números ni etiquetas. Solo la ilustración gráfica.

Concepto a ilustrar:
"""
{{.Text}}
"""
`

const infographicTemplate = `Actúa como un ingeniero de prompts experto en IA generativa de imágenes (Midjourney, DALL-E 3, Imagen).

Escribe un PROMPT TÉCNICO DETALLADO EN ESPAÑOL para generar una INFOGRAFÍA PROFESIONAL basada en el texto naval que aparece más abajo.

Reglas para redactar el prompt:
1. **Idioma**: todo el texto del prompt debe estar COMPLETAMENTE EN ESPAÑOL.
2. **Contenido**: describe una infografía con explicaciones visuales y textuales. Indica explícitamente: "Texto en la imagen en ESPAÑOL, etiquetas claras en ESPAÑOL, títulos en ESPAÑOL".
3. **Estilo**: pide "Infografía corporativa técnica", "Alta resolución", "Diseño limpio y moderno".
4. **Negative prompt**: termina el prompt con esta sección obligatoria:
   "{{.NegativePrompt}}"

Estructura del prompt:
"[Descripción del tema central] + [Estilo visual detallado] + [Instrucción de texto en Español] + [Paleta de colores] + [Negative Prompt]"

Texto naval base para la infografía:
"""
{{.Text}}
"""

SALIDA: devuelve únicamente el texto del prompt generado.
`

var templates = map[types.Action]*template.Template{
	types.ActionTranslate:         template.Must(template.New("translate").Parse(translateTemplate)),
	types.ActionVisualExplanation: template.Must(template.New("visual_explanation").Parse(visualTemplate)),
	types.ActionInfographicPrompt: template.Must(template.New("infographic_prompt").Parse(infographicTemplate)),
}

type templateData struct {
	Text             string
	MaxWords         int
	MaxGlossary      int
	InsufficientInfo string
	AspectRatio      string
	NegativePrompt   string
}

// Build renders the prompt for action with text embedded verbatim.
func Build(action types.Action, text string) (string, error) {
	tmpl, ok := templates[action]
	if !ok {
		return "", fmt.Errorf("no prompt template for action %q", action)
	}

	var sb strings.Builder
	err := tmpl.Execute(&sb, templateData{
		Text:             text,
		MaxWords:         MaxSimplifiedWords,
		MaxGlossary:      types.MaxGlossaryEntries,
		InsufficientInfo: InsufficientInfoMessage,
		AspectRatio:      ImageAspectRatio,
		NegativePrompt:   NegativePromptMarker,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", action, err)
	}
	return sb.String(), nil
}

// EnsureNegativePrompt appends the negative-prompt marker when the model
// dropped it.
func EnsureNegativePrompt(generated string) string {
	generated = strings.TrimSpace(generated)
	if strings.Contains(generated, NegativePromptMarker) {
		return generated
	}
	if generated == "" {
		return NegativePromptMarker
	}
	return generated + "\n\n" + NegativePromptMarker
}
