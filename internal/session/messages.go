package session

// User-facing messages. The UI speaks Spanish, like the prompts.
const (
	MsgRejectedFile    = "Por favor, sube un archivo de texto plano (ej. .txt, .md)."
	MsgReadFailed      = "Error al leer el archivo."
	MsgTranslateFailed = "Error al procesar la solicitud: %s"
	MsgImageFailed     = "Error al generar la imagen. Intente de nuevo."
	MsgNoImage         = "No se pudo generar la imagen."
	MsgPromptFailed    = "Error al generar el prompt. Intente de nuevo."
	MsgNoPrompt        = "No se pudo generar el prompt."
	MsgCopyFailed      = "No se pudo copiar al portapapeles."
	MsgSaveImageFailed = "No se pudo guardar la imagen: %s"
	MsgPasteTooLong    = "El texto pegado es demasiado largo. Cárguelo como archivo (.txt, .md)."
)

// Placeholder is shown in the empty text box.
const Placeholder = `Pegue aquí un párrafo de su manual técnico, por ejemplo: "La unidad de control de propulsión (PCU) modula el flujo de combustible al motor de turbina de gas principal (GTM) basándose en las entradas del acelerador desde el puente. La realimentación del sensor de RPM asegura que se mantenga la velocidad de eje deseada, mientras que los sensores de temperatura de los gases de escape (EGT) previenen condiciones de sobrecalentamiento."`
