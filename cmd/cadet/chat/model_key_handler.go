package chat

import (
	"path/filepath"
	"strings"

	"cadet/internal/textfile"
	"cadet/internal/types"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// File Picker View Handling
	if m.viewMode == FilePickerView {
		if msg.Type == tea.KeyEsc {
			m.viewMode = InputView
			m.syncTextarea()
			return m, nil
		}

		var cmd tea.Cmd
		m.filepicker, cmd = m.filepicker.Update(msg)

		if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
			m.viewMode = InputView
			return m.selectFile(path)
		}
		if didSelect, path := m.filepicker.DidSelectDisabledFile(msg); didSelect {
			m.viewMode = InputView
			return m.selectFile(path)
		}
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "ctrl+t":
		return m.start(types.ActionTranslate)
	case "ctrl+g":
		return m.start(types.ActionVisualExplanation)
	case "ctrl+p":
		return m.start(types.ActionInfographicPrompt)
	case "ctrl+o":
		if m.state.Busy() {
			return m, nil
		}
		m.viewMode = FilePickerView
		m.textarea.Blur()
		return m, m.filepicker.Init()
	case "ctrl+x":
		if m.state.Busy() || m.state.File == nil {
			return m, nil
		}
		m.state.RemoveFile()
		m.imagePath = ""
		m.syncTextarea()
		m.refreshResults()
		return m, nil
	case "ctrl+y":
		if m.state.Prompt == "" {
			return m, nil
		}
		return m, m.copyCmd(m.state.Prompt)
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.state.InputLocked() {
		return m, nil
	}

	if msg.Paste && pastedLines(m.textarea.Value(), string(msg.Runes)) > TextareaMaxLines {
		m.logger.Debug("paste refused", zap.Int("runes", len(msg.Runes)))
		m.state.RejectPaste()
		m.refreshResults()
		return m, nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	if v := m.textarea.Value(); v != m.state.InputText {
		m.state.EditText(v)
		m.imagePath = ""
		m.refreshResults()
	}
	return m, cmd
}

// pastedLines is the line count of the text box after inserting paste.
func pastedLines(current, paste string) int {
	return strings.Count(current, "\n") + strings.Count(paste, "\n") + 1
}

// selectFile validates path and starts reading it when accepted.
func (m Model) selectFile(path string) (tea.Model, tea.Cmd) {
	m.filepicker = resetPicker(m.filepicker)

	info, err := textfile.Inspect(path)
	if err != nil {
		m.logger.Debug("file inspection failed", zap.String("path", path), zap.Error(err))
		info = textfile.Info{Path: path, Name: filepath.Base(path)}
	}

	if !m.state.SelectFile(info.Name, path, info.MIMEType) {
		m.syncTextarea()
		m.refreshResults()
		return m, nil
	}
	m.imagePath = ""
	m.syncTextarea()
	m.refreshResults()
	return m, loadFileCmd(path)
}

func resetPicker(old filepicker.Model) filepicker.Model {
	fp := filepicker.New()
	fp.CurrentDirectory = old.CurrentDirectory
	fp.Height = old.Height
	return fp
}
