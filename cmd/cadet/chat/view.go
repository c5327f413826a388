package chat

import (
	"fmt"
	"strings"

	"cadet/cmd/cadet/ui"
	"cadet/internal/types"

	"github.com/charmbracelet/lipgloss"
)

const (
	title    = "Traductor de Jerga Técnica Naval"
	subtitle = "Una herramienta de IA para cadetes que simplifica manuales complejos."
)

// View implements tea.Model.
func (m Model) View() string {
	if m.viewMode == FilePickerView {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.renderHeader(),
			m.styles.Label.Render("Seleccionar archivo (.txt, .md)"),
			m.filepicker.View(),
			m.styles.Footer.Render("enter: abrir · esc: volver"),
		)
	}

	sections := []string{
		m.renderHeader(),
		m.renderInput(),
		m.renderActions(),
	}
	if m.state.Err != "" {
		sections = append(sections, m.styles.Error.Render(m.state.Err))
	}
	sections = append(sections, m.viewport.View(), m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	return m.styles.Header.Render("⚓ "+title) + "\n" + m.styles.Subtitle.Render(subtitle)
}

func (m Model) renderInput() string {
	var b strings.Builder
	if f := m.state.File; f != nil {
		b.WriteString(m.styles.FileChip.Render("📄 " + f.Name + "  (ctrl+x quitar)"))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Label.Render("Pegue el texto del manual aquí:"))
	b.WriteString("\n")

	box := m.styles.InputBox
	if m.state.InputLocked() {
		box = m.styles.InputBoxLocked
	}
	b.WriteString(box.Render(m.textarea.View()))
	return b.String()
}

func (m Model) renderActions() string {
	enabled := !m.state.Busy()
	label := func(a types.Action, idle, busy, key string) string {
		if m.state.InFlight(a) {
			return m.spinner.View() + " " + busy
		}
		return idle + " (" + key + ")"
	}

	buttons := []string{
		m.styles.ActionButton(label(types.ActionTranslate, "Traducir", "Traduciendo...", "ctrl+t"), ui.TranslateAccent, enabled),
		m.styles.ActionButton(label(types.ActionVisualExplanation, "Explicación visual", "Generando imagen...", "ctrl+g"), ui.ImageAccent, enabled),
		m.styles.ActionButton(label(types.ActionInfographicPrompt, "Prompt infografía", "Generando prompt...", "ctrl+p"), ui.PromptAccent, enabled),
	}
	return strings.Join(buttons, " ")
}

func (m Model) renderFooter() string {
	return m.styles.Footer.Render("ctrl+o: abrir archivo · ctrl+y: copiar prompt · pgup/pgdn: desplazar · esc: salir")
}

// refreshResults re-renders the results pane into the viewport.
func (m *Model) refreshResults() {
	m.viewport.SetContent(m.renderResults())
}

func (m Model) renderResults() string {
	width := m.viewport.Width
	var parts []string

	if md := ui.TranslationMarkdown(m.state.Translation); md != "" {
		parts = append(parts, m.styles.TranslatePanel.Width(width-2).Render(
			strings.TrimSpace(ui.RenderMarkdown(m.renderer, md))))
	}

	if img := m.state.Image; img != nil {
		body := m.styles.Title.Render(ui.HeadingImage) + "\n" +
			fmt.Sprintf("%s, %d bytes", img.MIMEType, len(img.Data))
		if m.imagePath != "" {
			body += "\n" + m.styles.Body.Render("Guardada en: "+m.imagePath)
		}
		body += "\n" + m.styles.Muted.Render("Imagen generada por Gemini (sin texto). Los diagramas pueden ser aproximados.")
		parts = append(parts, m.styles.ImagePanel.Width(width-2).Render(body))
	}

	if m.state.Prompt != "" {
		copyLabel := "Copiar (ctrl+y)"
		if m.state.Copied {
			copyLabel = m.styles.Success.Render("✓ Copiado")
		}
		body := m.styles.Title.Render(ui.HeadingPrompt) + "  " + copyLabel + "\n" +
			m.styles.PromptBody.Width(ui.PanelContentWidth(width)).Render(m.state.Prompt) + "\n" +
			m.styles.Muted.Render("Copia este prompt y úsalo en herramientas como Midjourney o Imagen para obtener una infografía profesional.")
		parts = append(parts, m.styles.PromptPanel.Width(width-2).Render(body))
	}

	return strings.Join(parts, "\n")
}
