package chat

import (
	"fmt"

	"cadet/cmd/cadet/ui"
	"cadet/internal/session"
	"cadet/internal/types"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.state.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case translateDoneMsg:
		m.logDone(types.ActionTranslate, msg.err)
		m.state.CompleteTranslate(msg.res, msg.err)
		return m.afterAction(), nil

	case imageDoneMsg:
		m.logDone(types.ActionVisualExplanation, msg.err)
		m.state.CompleteImage(msg.img, msg.err)
		m.imagePath = ""
		if m.state.Image != nil {
			if msg.saveErr != nil {
				m.state.Err = fmt.Sprintf(session.MsgSaveImageFailed, msg.saveErr.Error())
			}
			m.imagePath = msg.path
		}
		return m.afterAction(), nil

	case promptDoneMsg:
		m.logDone(types.ActionInfographicPrompt, msg.err)
		m.state.CompletePrompt(msg.prompt, msg.err)
		return m.afterAction(), nil

	case fileLoadedMsg:
		if msg.err != nil {
			m.logger.Warn("failed to read file", zap.String("path", msg.path), zap.Error(msg.err))
			m.state.FileLoadFailed(msg.path)
		} else {
			m.state.FileLoaded(msg.path, msg.text)
		}
		m.syncTextarea()
		m.refreshResults()
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.logger.Warn("clipboard write failed", zap.Error(msg.err))
			m.state.Err = session.MsgCopyFailed
			m.refreshResults()
			return m, nil
		}
		if !m.state.MarkCopied() {
			return m, nil
		}
		m.copySeq++
		m.refreshResults()
		return m, copyResetCmd(m.copySeq)

	case copyResetMsg:
		if msg.seq == m.copySeq {
			m.state.ResetCopied()
			m.refreshResults()
		}
		return m, nil
	}

	if m.viewMode == FilePickerView {
		var cmd tea.Cmd
		m.filepicker, cmd = m.filepicker.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width, m.height = msg.Width, msg.Height
	if m.width <= 0 || m.height <= 0 {
		return m
	}

	layout := ui.NewLayoutConfig(msg.Width, msg.Height)
	width := layout.ContentWidth()

	m.textarea.SetWidth(width - 2)
	m.viewport.Width = width
	m.viewport.Height = layout.ResultsHeight()
	m.filepicker.Height = msg.Height - ui.HeaderHeight - ui.FooterHeight - 4
	if m.filepicker.Height < 3 {
		m.filepicker.Height = 3
	}

	if r, err := ui.NewRenderer(m.styles.Theme, ui.PanelContentWidth(width)); err == nil {
		m.renderer = r
	}
	m.ready = true
	m.refreshResults()
	return m
}

// start runs action a if the UI allows it. All triggers are disabled while
// any action is in flight.
func (m Model) start(a types.Action) (tea.Model, tea.Cmd) {
	if m.state.Busy() || !m.state.Start(a) {
		return m, nil
	}
	m.logger.Debug("action started", zap.String("action", string(a)))

	text := m.state.InputText
	var call tea.Cmd
	switch a {
	case types.ActionTranslate:
		m.imagePath = ""
		call = m.translateCmd(text)
	case types.ActionVisualExplanation:
		m.imagePath = ""
		call = m.imageCmd(text)
	case types.ActionInfographicPrompt:
		call = m.promptCmd(text)
	}

	m.textarea.Blur()
	m.refreshResults()
	return m, tea.Batch(m.spinner.Tick, call)
}

func (m Model) afterAction() Model {
	if !m.state.Busy() && m.state.File == nil {
		m.textarea.Focus()
	}
	m.refreshResults()
	return m
}

// syncTextarea mirrors the state input into the text box and focuses it
// only when it accepts edits.
func (m *Model) syncTextarea() {
	if m.textarea.Value() != m.state.InputText {
		m.textarea.SetValue(m.state.InputText)
	}
	if m.state.InputLocked() {
		m.textarea.Blur()
	} else {
		m.textarea.Focus()
	}
}
