// Package chat implements the interactive terminal UI: a text box (or a
// selected plain-text file), three action keys and a results pane.
package chat

import (
	"context"
	"time"

	"cadet/cmd/cadet/ui"
	"cadet/internal/session"
	"cadet/internal/types"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"
)

// CopiedIndicatorDuration is how long the "copied" mark stays visible.
const CopiedIndicatorDuration = 2 * time.Second

// TextareaMaxLines is the line cap of the bubbles textarea. Longer pastes
// would be cut silently, so they are refused and the user is pointed to a
// file instead.
const TextareaMaxLines = 10000

// Gateway is the subset of the gateway client the UI calls.
// *client.Client satisfies it.
type Gateway interface {
	Translate(ctx context.Context, text string) (*types.TranslationResult, error)
	VisualExplanation(ctx context.Context, text string) (*types.ImageResult, error)
	InfographicPrompt(ctx context.Context, text string) (string, error)
}

// Config wires the UI to its collaborators.
type Config struct {
	Context  context.Context
	Gateway  Gateway
	ImageDir string // where illustrations are written; empty = os.TempDir()
	StartDir string // initial file picker directory; empty = working directory
	Logger   *zap.Logger
	Styles   *ui.Styles

	// Copy writes to the system clipboard. Defaults to clipboard.WriteAll.
	Copy func(string) error
	// Now stamps saved image file names. Defaults to time.Now.
	Now func() time.Time
}

// ViewMode selects what the main area shows.
type ViewMode int

const (
	InputView ViewMode = iota
	FilePickerView
)

// Model is the Bubble Tea model for the cadet UI.
type Model struct {
	cfg    Config
	ctx    context.Context
	logger *zap.Logger
	styles ui.Styles

	state *session.State

	viewMode   ViewMode
	textarea   textarea.Model
	filepicker filepicker.Model
	spinner    spinner.Model
	viewport   viewport.Model
	renderer   *glamour.TermRenderer

	width  int
	height int
	ready  bool

	imagePath string
	copySeq   int
}

// =============================================================================
// MESSAGES
// =============================================================================

type translateDoneMsg struct {
	res *types.TranslationResult
	err error
}

type imageDoneMsg struct {
	img     *types.ImageResult
	path    string
	err     error
	saveErr error
}

type promptDoneMsg struct {
	prompt string
	err    error
}

type fileLoadedMsg struct {
	path string
	text string
	err  error
}

type copiedMsg struct {
	err error
}

type copyResetMsg struct {
	seq int
}
