package chat

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cadet/internal/textfile"
	"cadet/internal/types"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Each command performs exactly one gateway call and reports back with a
// completion message.

func (m Model) translateCmd(text string) tea.Cmd {
	gw, ctx := m.cfg.Gateway, m.ctx
	return func() tea.Msg {
		res, err := gw.Translate(ctx, text)
		return translateDoneMsg{res: res, err: err}
	}
}

func (m Model) imageCmd(text string) tea.Cmd {
	gw, ctx := m.cfg.Gateway, m.ctx
	dir, now := m.cfg.ImageDir, m.cfg.Now
	return func() tea.Msg {
		img, err := gw.VisualExplanation(ctx, text)
		if err != nil || img == nil {
			return imageDoneMsg{img: img, err: err}
		}
		path, saveErr := SaveImage(dir, img, now())
		return imageDoneMsg{img: img, path: path, saveErr: saveErr}
	}
}

func (m Model) promptCmd(text string) tea.Cmd {
	gw, ctx := m.cfg.Gateway, m.ctx
	return func() tea.Msg {
		p, err := gw.InfographicPrompt(ctx, text)
		return promptDoneMsg{prompt: p, err: err}
	}
}

func loadFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		text, err := textfile.Read(path)
		return fileLoadedMsg{path: path, text: text, err: err}
	}
}

func (m Model) copyCmd(text string) tea.Cmd {
	copyFn := m.cfg.Copy
	return func() tea.Msg {
		return copiedMsg{err: copyFn(text)}
	}
}

func copyResetCmd(seq int) tea.Cmd {
	return tea.Tick(CopiedIndicatorDuration, func(time.Time) tea.Msg {
		return copyResetMsg{seq: seq}
	})
}

// SaveImage writes img to dir as cadet-<timestamp><ext> and returns the path.
func SaveImage(dir string, img *types.ImageResult, now time.Time) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}
	name := fmt.Sprintf("cadet-%s%s", now.Format("20060102-150405.000"), img.Extension())
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, img.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return path, nil
}

func (m Model) logDone(action types.Action, err error) {
	if err != nil {
		m.logger.Warn("action failed", zap.String("action", string(action)), zap.Error(err))
		return
	}
	m.logger.Debug("action completed", zap.String("action", string(action)))
}
