// Package tui implements the interactive card browser behind
// `grimoire browse`. One card is rendered per spell, in manifest
// order; all interaction is handled by a single dispatch table.
package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	// Light mode colors
	LightForeground = lipgloss.Color("#1a1523")
	LightPrimary    = lipgloss.Color("#5f3dc4")
	LightAccent     = lipgloss.Color("#b08c0a")
	LightMuted      = lipgloss.Color("#8b8696")
	LightBorder     = lipgloss.Color("#d5cfe1")

	// Dark mode colors
	DarkForeground = lipgloss.Color("#e8e3f0")
	DarkPrimary    = lipgloss.Color("#9775fa")
	DarkAccent     = lipgloss.Color("#e3b341")
	DarkMuted      = lipgloss.Color("#6c6783")
	DarkBorder     = lipgloss.Color("#3b3350")

	// Semantic colors (same in both modes)
	Success = lipgloss.Color("#69db7c")
	Error   = lipgloss.Color("#e03131")
)

// Theme holds the current color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// DetectTheme picks a theme from the terminal background, defaulting
// to dark. COLORFGBG is "foreground;background"; ANSI backgrounds 7
// and 9-15 indicate a light terminal.
func DetectTheme() Theme {
	if os.Getenv("GRIMOIRE_LIGHT_MODE") == "1" {
		return LightTheme()
	}

	colorTerm := os.Getenv("COLORFGBG")
	if colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if bgIdx == 7 || (bgIdx >= 9 && bgIdx <= 15) {
					return LightTheme()
				}
			}
		}
	}

	return DarkTheme()
}

// Styles holds all the styled components of the browser.
type Styles struct {
	Theme Theme

	// Layout
	Header lipgloss.Style
	Footer lipgloss.Style

	// Cards
	Card        lipgloss.Style
	CardFocused lipgloss.Style
	CardTitle   lipgloss.Style
	Description lipgloss.Style
	Body        lipgloss.Style
	BodyFocused lipgloss.Style

	// Controls and status
	Control lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Spinner lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme.
func NewStyles(theme Theme) Styles {
	cardBase := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Card: cardBase.
			BorderForeground(theme.Border),

		CardFocused: cardBase.
			BorderForeground(theme.Accent),

		CardTitle: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Description: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		BodyFocused: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(1).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(theme.Accent),

		Control: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Error).
			Bold(true),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),
	}
}

// DefaultStyles returns styles with the detected theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// RenderTitle renders text with a horizontal blend from the primary
// to the accent color, falling back to a flat primary title when the
// theme colors cannot be parsed.
func (s Styles) RenderTitle(text string) string {
	start, errA := colorful.Hex(string(s.Theme.Primary))
	end, errB := colorful.Hex(string(s.Theme.Accent))
	runes := []rune(text)

	if errA != nil || errB != nil || len(runes) < 2 {
		return s.CardTitle.Render(text)
	}

	var b strings.Builder
	for i, r := range runes {
		blend := start.BlendLuv(end, float64(i)/float64(len(runes)-1))
		b.WriteString(lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(blend.Hex())).
			Render(string(r)))
	}
	return b.String()
}
