package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lane-rush/internal/config"
)

// Menu entries, top to bottom.
const (
	itemStart = iota
	itemSpeed
	itemControl
	itemScores
	itemQuit
	itemCount
)

// MenuModel is the launch menu: pick speed and control mode, then start.
type MenuModel struct {
	launch   config.Launch
	best     int
	tiltURL  string
	cursor   int
	width    int
	height   int
	keys     MenuKeyMap
	help     help.Model
	quitting bool
	start    bool
	scores   bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(env Env, launch config.Launch, width, height int) MenuModel {
	if launch.Speed == "" {
		launch.Speed = config.SpeedSlow
	}
	if launch.Mode == "" {
		launch.Mode = config.ControlButtons
	}
	h := help.New()
	h.Width = width
	return MenuModel{
		launch:  launch,
		best:    env.best(),
		tiltURL: env.TiltURL,
		width:   width,
		height:  height,
		keys:    DefaultMenuKeyMap(),
		help:    h,
	}
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
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < itemCount-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Scores):
		m.scores = true
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		m.toggle()

	case key.Matches(msg, m.keys.Select):
		switch m.cursor {
		case itemStart:
			m.start = true
		case itemScores:
			m.scores = true
		case itemQuit:
			m.quitting = true
			return m, tea.Quit
		default:
			m.toggle()
		}
	}

	return m, nil
}

func (m *MenuModel) toggle() {
	switch m.cursor {
	case itemSpeed:
		if m.launch.Speed == config.SpeedFast {
			m.launch.Speed = config.SpeedSlow
		} else {
			m.launch.Speed = config.SpeedFast
		}
	case itemControl:
		if m.launch.Mode == config.ControlTilt {
			m.launch.Mode = config.ControlButtons
		} else {
			m.launch.Mode = config.ControlTilt
		}
	}
}

func (m MenuModel) itemLabel(i int) string {
	switch i {
	case itemStart:
		return "Start"
	case itemSpeed:
		return fmt.Sprintf("Speed:   < %s >", m.launch.Speed)
	case itemControl:
		return fmt.Sprintf("Control: < %s >", m.launch.Mode)
	case itemScores:
		return "High scores"
	case itemQuit:
		return "Quit"
	}
	return ""
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("L A N E   R U S H"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Best score: %d", m.best), m.width))
	b.WriteString("\n\n")

	for i := 0; i < itemCount; i++ {
		line := "  " + m.itemLabel(i)
		if i == m.cursor {
			line = activeStyle.Render("> " + m.itemLabel(i))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if m.launch.Mode == config.ControlTilt {
		b.WriteString("\n")
		hint := "Tilt control needs the phone feed (lanerush play --tilt-listen)"
		if m.tiltURL != "" {
			hint = "Open " + m.tiltURL + " on your phone"
		}
		b.WriteString(centerText(dimStyle.Render(hint), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// Launch returns the options picked so far.
func (m MenuModel) Launch() config.Launch {
	return m.launch
}

// Started returns true once the player chose Start.
func (m MenuModel) Started() bool {
	return m.start
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.scores
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}
