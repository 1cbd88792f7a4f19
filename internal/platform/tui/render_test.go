package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-roids/internal/core"
)

type greenGame struct{ fakeGame }

func (g *greenGame) Theme() string { return "phosphor" }

func TestThemeFor(t *testing.T) {
	if got := ThemeFor(&fakeGame{}); got != colorTheme {
		t.Errorf("plain game: got theme %q, want color", got.Name)
	}
	if got := ThemeFor(&greenGame{}); got != phosphorTheme {
		t.Errorf("themed game: got theme %q, want phosphor", got.Name)
	}
}

func TestPhosphorShades(t *testing.T) {
	tests := []struct {
		color core.Color
		want  lipgloss.Color
	}{
		{core.ColorShip, "10"},
		{core.ColorUFOShot, "10"},
		{core.ColorAsteroid, "22"},
		{core.ColorFlame, "2"},
		{core.ColorDefault, "2"},
	}
	for _, tt := range tests {
		if got := phosphorTheme.style(tt.color).GetForeground(); got != tt.want {
			t.Errorf("color %d: got %v, want %v", tt.color, got, tt.want)
		}
	}
}

func TestThemeRenderKeepsLayout(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawTextColored(1, 0, "SCORE", core.ColorHUD)
	s.SetColored(5, 1, 'A', core.ColorShip)
	s.SetColored(6, 1, '*', core.ColorPlayerShot)

	for _, theme := range []*Theme{colorTheme, phosphorTheme} {
		out := theme.Render(s)
		lines := strings.Split(out, "\n")
		if len(lines) != 3 {
			t.Fatalf("%s: got %d lines, want 3", theme.Name, len(lines))
		}
		for y, line := range lines {
			if w := lipgloss.Width(line); w != 12 {
				t.Errorf("%s: line %d width = %d, want 12", theme.Name, y, w)
			}
		}
	}
}

func TestTickInterval(t *testing.T) {
	if got := tickInterval(50); got != 20*time.Millisecond {
		t.Errorf("tickInterval(50) = %v", got)
	}
	if got := tickInterval(0); got != tickInterval(core.DefaultTickRate) {
		t.Errorf("tickInterval(0) = %v, want default rate", got)
	}
}
