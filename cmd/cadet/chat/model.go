package chat

import (
	"context"
	"os"
	"time"

	"cadet/cmd/cadet/ui"
	"cadet/internal/session"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// New builds the UI model.
func New(cfg Config) Model {
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Copy == nil {
		cfg.Copy = clipboard.WriteAll
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	styles := ui.DefaultStyles()
	if cfg.Styles != nil {
		styles = *cfg.Styles
	}

	ta := textarea.New()
	ta.Placeholder = session.Placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetHeight(ui.InputHeight)
	ta.SetWidth(80)
	ta.Focus()

	fp := filepicker.New()
	fp.CurrentDirectory = cfg.StartDir
	if fp.CurrentDirectory == "" {
		if wd, err := os.Getwd(); err == nil {
			fp.CurrentDirectory = wd
		}
	}
	fp.Height = ui.FilePickerHeight

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	vp := viewport.New(80, 10)

	renderer, _ := ui.NewRenderer(styles.Theme, 76)

	return Model{
		cfg:        cfg,
		ctx:        cfg.Context,
		logger:     cfg.Logger,
		styles:     styles,
		state:      session.New(),
		viewMode:   InputView,
		textarea:   ta,
		filepicker: fp,
		spinner:    sp,
		viewport:   vp,
		renderer:   renderer,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// State exposes the view-model, mainly for tests.
func (m Model) State() *session.State { return m.state }

// Run starts the UI on the alternate screen and blocks until it exits.
func Run(cfg Config) error {
	_, err := tea.NewProgram(New(cfg), tea.WithAltScreen()).Run()
	return err
}
