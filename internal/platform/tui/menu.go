package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-roids/internal/config"
	"github.com/vovakirdan/tui-roids/internal/core"
	"github.com/vovakirdan/tui-roids/internal/registry"
)

// Difficulties offered by the launcher, in display order.
var menuDifficulties = []config.DifficultyPreset{
	config.DifficultyNormal,
	config.DifficultyEasy,
	config.DifficultyHard,
	config.DifficultyFixed,
}

// MenuModel is the launcher: pick a ship style and a difficulty.
type MenuModel struct {
	games      []registry.GameInfo
	cursor     int
	difficulty int
	config     core.RuntimeConfig
	keys       *KeyMapper

	quitting       bool
	selected       bool
	openScoreboard bool
}

// NewMenuModel creates a new menu model. The difficulty starts at
// preset when it is one of the offered ones.
func NewMenuModel(cfg core.RuntimeConfig, preset config.DifficultyPreset) MenuModel {
	m := MenuModel{
		games:  registry.List(),
		config: cfg,
		keys:   NewKeyMapper(),
	}
	for i, d := range menuDifficulties {
		if d == preset {
			m.difficulty = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "tab" {
		m.openScoreboard = true
		return m, tea.Quit
	}

	action, quit := m.keys.MapKey(msg)
	if quit || action == core.ActionBack {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionUp:
		m.cursor = max(m.cursor-1, 0)
	case core.ActionDown:
		m.cursor = min(m.cursor+1, len(m.games)-1)
	case core.ActionLeft:
		m.difficulty = (m.difficulty + len(menuDifficulties) - 1) % len(menuDifficulties)
	case core.ActionRight:
		m.difficulty = (m.difficulty + 1) % len(menuDifficulties)
	case core.ActionConfirm, core.ActionFire:
		if len(m.games) > 0 {
			m.selected = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	width := m.config.ScreenW

	var b strings.Builder
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	b.WriteString("\n")
	b.WriteString(centerText(title.Render("R O I D S"), width))
	b.WriteString("\n\n")

	for i, g := range m.games {
		line := "  " + g.Title
		if i == m.cursor {
			line = "> " + g.Title
		}
		b.WriteString(centerText(line, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Difficulty: < %s >", m.Difficulty()), width))
	b.WriteString("\n\n")

	hint := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(centerText(hint.Render("Up/Down: Ship  Left/Right: Difficulty  Enter: Play  Tab: Scores  Q: Quit"), width))
	b.WriteString("\n")
	return b.String()
}

// Difficulty returns the chosen difficulty preset.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return menuDifficulties[m.difficulty]
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Difficulty      config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// Result reports what the user picked.
func (m MenuModel) Result() MenuResult {
	r := MenuResult{Config: m.config, Difficulty: m.Difficulty()}
	switch {
	case m.openScoreboard:
		r.WantsScoreboard = true
	case m.selected:
		r.GameID = m.games[m.cursor].ID
	default:
		r.Quit = true
	}
	return r
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig, preset config.DifficultyPreset) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(cfg, preset), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg, Quit: true}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
