// Package ui provides the visual styling for the cadet terminal UI.
// Uses a naval palette (slate, cyan, purple, orange) with light/dark mode support.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	// Light Mode Colors
	LightBackground = lipgloss.Color("#f8fafc") // slate-50
	LightForeground = lipgloss.Color("#0f172a") // slate-900
	LightPrimary    = lipgloss.Color("#0e7490") // cyan-700
	LightBorder     = lipgloss.Color("#cbd5e1") // slate-300
	LightMuted      = lipgloss.Color("#64748b") // slate-500
	LightCard       = lipgloss.Color("#ffffff")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#0f172a") // slate-900
	DarkForeground = lipgloss.Color("#e2e8f0") // slate-200
	DarkPrimary    = lipgloss.Color("#22d3ee") // cyan-400
	DarkBorder     = lipgloss.Color("#334155") // slate-700
	DarkMuted      = lipgloss.Color("#94a3b8") // slate-400
	DarkCard       = lipgloss.Color("#1e293b") // slate-800

	// Per-action accents (same in both modes)
	TranslateAccent = lipgloss.Color("#06b6d4") // cyan-500
	ImageAccent     = lipgloss.Color("#a855f7") // purple-500
	PromptAccent    = lipgloss.Color("#f97316") // orange-500

	// Semantic Colors
	Destructive = lipgloss.Color("#ef4444")
	Success     = lipgloss.Color("#4ade80")
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Border     lipgloss.Color
	Muted      lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Border:     LightBorder,
		Muted:      LightMuted,
		Card:       LightCard,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Border:     DarkBorder,
		Muted:      DarkMuted,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// DetectTheme picks dark mode from COLORFGBG or CADET_DARK_MODE=1, light
// otherwise.
func DetectTheme() Theme {
	// Format is usually "foreground;background"
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) == 2 {
		if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
			if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
				return DarkTheme()
			}
		}
	}

	if os.Getenv("CADET_DARK_MODE") == "1" {
		return DarkTheme()
	}

	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header lipgloss.Style
	Footer lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Label    lipgloss.Style

	// Input
	InputBox       lipgloss.Style
	InputBoxLocked lipgloss.Style
	FileChip       lipgloss.Style

	// Actions
	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style

	// Panels
	TranslatePanel lipgloss.Style
	ImagePanel     lipgloss.Style
	PromptPanel    lipgloss.Style
	PromptBody     lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Spinner lipgloss.Style
}

func panel(theme Theme, accent lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent)
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Label: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Bold(true),

		InputBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary),

		InputBoxLocked: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		FileChip: lipgloss.NewStyle().
			Background(theme.Card).
			Foreground(theme.Muted).
			Padding(0, 1),

		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(TranslateAccent).
			Padding(0, 1).
			Bold(true),

		ButtonDisabled: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Card).
			Padding(0, 1),

		TranslatePanel: panel(theme, TranslateAccent),
		ImagePanel:     panel(theme, ImageAccent),
		PromptPanel:    panel(theme, PromptAccent),

		PromptBody: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Background(theme.Card).
			Padding(0, 1),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(Destructive),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Primary),
	}
}

// DefaultStyles returns styles for the detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// ActionButton renders a key hint as an enabled or disabled button.
func (s Styles) ActionButton(label string, accent lipgloss.Color, enabled bool) string {
	if !enabled {
		return s.ButtonDisabled.Render(label)
	}
	return s.Button.Background(accent).Render(label)
}
