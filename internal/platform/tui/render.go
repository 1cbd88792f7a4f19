package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-roids/internal/core"
	"github.com/vovakirdan/tui-roids/internal/registry"
)

// Theme maps logical cell colors to terminal styles.
type Theme struct {
	Name   string
	styles [core.NumColors]lipgloss.Style
}

func (t *Theme) style(c core.Color) lipgloss.Style {
	if int(c) < len(t.styles) {
		return t.styles[c]
	}
	return t.styles[core.ColorDefault]
}

// ANSI 256-color codes for the full-color theme.
var colorCodes = [core.NumColors]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

func newColorTheme() *Theme {
	t := &Theme{Name: "color"}
	for c, code := range colorCodes {
		if code == "" {
			t.styles[c] = lipgloss.NewStyle()
			continue
		}
		t.styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	return t
}

// newPhosphorTheme renders everything in shades of green, like a vector
// monitor. Bright colors glow, gray is dim.
func newPhosphorTheme() *Theme {
	t := &Theme{Name: "phosphor"}
	for i := range t.styles {
		c := core.Color(i)
		code := "2"
		switch {
		case c.Bright():
			code = "10"
		case c == core.ColorGray:
			code = "22"
		}
		t.styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	return t
}

var (
	colorTheme    = newColorTheme()
	phosphorTheme = newPhosphorTheme()
)

// ThemeFor picks the theme a game asks for, falling back to full color.
func ThemeFor(game registry.Game) *Theme {
	if t, ok := game.(registry.Themed); ok && t.Theme() == phosphorTheme.Name {
		return phosphorTheme
	}
	return colorTheme
}

// Render converts a Screen buffer to a styled string for display.
// Runs of cells with the same color share one escape sequence.
func (t *Theme) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			sb.WriteString(t.style(color).Render(run.String()))
		}
	}
	return sb.String()
}
