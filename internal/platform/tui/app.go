package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lane-rush/internal/config"
	"github.com/vovakirdan/lane-rush/internal/core"
)

type screenKind int

const (
	screenMenu screenKind = iota
	screenGame
	screenScores
)

// SessionModel manages the full flow: menu -> game -> menu, with the
// scoreboard reachable from the menu. It is the top-level model for both
// local and SSH play.
type SessionModel struct {
	env      Env
	rt       core.RuntimeConfig
	username string

	screen   screenKind
	menu     MenuModel
	game     *GameModel
	scores   ScoreboardModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(env Env, launch config.Launch, rt core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		env:      env,
		rt:       rt,
		username: username,
		menu:     NewMenuModel(env, launch, rt.ScreenW, rt.ScreenH),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.rt.ScreenW = wsm.Width
		m.rt.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.menu.scores = false
		m.scores = NewScoreboardModel(m.env.Book, m.rt.ScreenW, m.rt.ScreenH)
		m.screen = screenScores
		return m, m.scores.Init()

	case m.menu.Started():
		m.menu.start = false
		m.env.logger().Info("game started", "user", m.username,
			"mode", m.menu.Launch().Mode, "speed", m.menu.Launch().Speed)
		game := NewGameModel(m.env, m.menu.Launch(), m.rt)
		m.game = &game
		m.screen = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(GameModel); ok {
		m.game = &game
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.game = nil
		m.menu = NewMenuModel(m.env, m.menu.Launch(), m.rt.ScreenW, m.rt.ScreenH)
		m.screen = screenMenu
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if scores, ok := next.(ScoreboardModel); ok {
		m.scores = scores
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.screen = screenMenu
		return m, nil
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// stop ends a running game, if any.
func (m SessionModel) stop() {
	if m.game != nil {
		m.game.stop()
	}
}

// RunSession runs the menu-driven flow in the local terminal.
func RunSession(env Env, launch config.Launch, rt core.RuntimeConfig) error {
	model := NewSessionModel(env, launch, rt, "local")

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithContext(env.context()),
	)

	final, err := p.Run()
	if sm, ok := final.(SessionModel); ok {
		sm.stop()
	}
	return err
}
