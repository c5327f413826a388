// Package ui layout constants for consistent spacing and dimensions
package ui

// Layout constants
const (
	HeaderHeight     = 3
	FooterHeight     = 2
	InputHeight      = 8
	FilePickerHeight = 12
	PanelBorderWidth = 1
	PanelPaddingH    = 1

	MinimumTerminalWidth = 60
	MaxContentWidth      = 100
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
}

// NewLayoutConfig creates a layout configuration for the given terminal size
func NewLayoutConfig(width, height int) LayoutConfig {
	return LayoutConfig{TerminalWidth: width, TerminalHeight: height}
}

// ContentWidth returns the usable content width, capped for readability.
func (l LayoutConfig) ContentWidth() int {
	w := l.TerminalWidth - 2
	if w > MaxContentWidth {
		w = MaxContentWidth
	}
	if w < MinimumTerminalWidth-2 {
		w = MinimumTerminalWidth - 2
	}
	return w
}

// ResultsHeight returns the height left for the results viewport below the
// header, input box, action bar and footer.
func (l LayoutConfig) ResultsHeight() int {
	h := l.TerminalHeight - HeaderHeight - (InputHeight + 2) - FooterHeight - 4
	if h < 3 {
		return 3
	}
	return h
}

// PanelContentWidth returns the content width inside a bordered panel
func PanelContentWidth(panelWidth int) int {
	return panelWidth - (PanelBorderWidth * 2) - (PanelPaddingH * 2)
}
