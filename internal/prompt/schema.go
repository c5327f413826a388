package prompt

import (
	"strings"

	"google.golang.org/genai"
)

// TranslationSchema returns the structured-output schema for the translate
// action. Only simplifiedText is required.
func TranslationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"simplifiedText": {
				Type:        genai.TypeString,
				Description: "Explicación simple del texto para un cadete, máximo 80 palabras.",
			},
			"steps": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "Pasos cortos en imperativo si el texto describe un procedimiento. Vacío si no aplica.",
				Nullable:    genai.Ptr(true),
			},
			"glossary": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"term": {
							Type:        genai.TypeString,
							Description: "El término técnico o de jerga naval.",
						},
						"definition": {
							Type:        genai.TypeString,
							Description: "Definición simplificada del término.",
						},
					},
					Required:         []string{"term", "definition"},
					PropertyOrdering: []string{"term", "definition"},
				},
				MaxItems:    genai.Ptr[int64](5),
				Description: "Glosario con un máximo de 5 términos. Vacío si no aplica.",
				Nullable:    genai.Ptr(true),
			},
			"error": {
				Type:        genai.TypeString,
				Description: "Mensaje si el texto no contiene la información necesaria: '" + InsufficientInfoMessage + "'",
				Nullable:    genai.Ptr(true),
			},
		},
		Required:         []string{"simplifiedText"},
		PropertyOrdering: []string{"simplifiedText", "steps", "glossary", "error"},
	}
}

// StripCodeFence removes a ```json ... ``` wrapper some models add around
// JSON output.
func StripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimPrefix(s, "JSON")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
