package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lane-rush/internal/config"
	"github.com/vovakirdan/lane-rush/internal/core"
	"github.com/vovakirdan/lane-rush/internal/racer"
)

const noticeFor = 1500 * time.Millisecond

// GameModel is the Bubble Tea model for one racer session.
type GameModel struct {
	env    Env
	launch config.Launch
	rt     core.RuntimeConfig

	loop   *racer.Loop
	ctx    context.Context
	cancel context.CancelFunc
	fx     *termEffects

	screen *core.Screen
	keys   GameKeyMap
	help   help.Model

	frame       racer.Frame
	notice      string
	noticeUntil time.Time
	flashUntil  time.Time
	bell        bool
	best        int

	quitting   bool
	backToMenu bool
	standalone bool // No menu to return to; back quits
	now        func() time.Time
}

// NewGameModel creates a session and its loop sized for the terminal.
// The loop starts in Init.
func NewGameModel(env Env, launch config.Launch, rt core.RuntimeConfig) GameModel {
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	if env.Seed != 0 {
		rt.Seed = env.Seed
	}

	fx := newTermEffects()
	opts := racer.Options{
		Config:          env.Config,
		Launch:          launch,
		SensorAvailable: env.Tilt != nil,
		Seed:            rt.Seed,
		Logger:          env.logger(),
		Effects:         fx,
	}
	if env.Book != nil {
		opts.Recorder = env.Book
	}
	session := racer.NewSession(opts)
	loop := racer.NewLoop(session, env.logger())
	ctx, cancel := context.WithCancel(env.context())

	m := GameModel{
		env:    env,
		launch: launch,
		rt:     rt,
		loop:   loop,
		ctx:    ctx,
		cancel: cancel,
		fx:     fx,
		screen: core.NewScreen(rt.ScreenW, max(rt.ScreenH-helpRows, 0)),
		keys:   DefaultGameKeyMap(),
		help:   help.New(),
		best:   env.best(),
		now:    time.Now,
	}
	m.help.Width = rt.ScreenW
	m.resize(rt.ScreenW, rt.ScreenH)
	return m
}

// Init starts the game loop.
func (m GameModel) Init() tea.Cmd {
	m.env.Tilt.attach(m.loop)
	go func() {
		if err := m.loop.Run(m.ctx); err != nil {
			m.env.logger().Error("game loop stopped", "err", err)
		}
	}()
	return waitForFrame(m.loop)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.rt.ScreenW = msg.Width
		m.rt.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-helpRows, 0))
		m.help.Width = msg.Width
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.FocusMsg:
		m.loop.Send(racer.FocusGained{})
		return m, nil

	case tea.BlurMsg:
		m.loop.Send(racer.FocusLost{})
		return m, nil

	case frameMsg:
		// Frames from a loop this model no longer owns are dropped.
		if msg.loop != m.loop {
			return m, nil
		}
		m.handleFrame(msg.frame)
		return m, waitForFrame(m.loop)

	case loopDoneMsg:
		return m, nil
	}

	return m, nil
}

func (m *GameModel) resize(termW, termH int) {
	w, h := PlayfieldSize(termW, termH)
	if w > 0 && h > 0 {
		m.loop.Send(racer.Resize{Width: w, Height: h})
	}
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		m.stop()
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.stop()
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		return m, nil
	case core.ActionSteerLeft:
		m.loop.Send(racer.SteerLeft{})
	case core.ActionSteerRight:
		m.loop.Send(racer.SteerRight{})
	case core.ActionTogglePause:
		m.loop.Send(racer.TogglePause{})
	case core.ActionScreenshot:
		m.saveScreenshot()
	}
	return m, nil
}

func (m *GameModel) handleFrame(f racer.Frame) {
	now := m.now()
	m.frame = f

	for _, ev := range f.Events {
		if text := ev.Notice(); text != "" {
			m.notice = text
			m.noticeUntil = now.Add(noticeFor)
		}
		if ev.Kind == racer.EventGameOver {
			m.best = max(m.best, ev.Score)
		}
	}
	if now.After(m.noticeUntil) {
		m.notice = ""
	}

	m.bell, m.flashUntil = m.fx.drain()
}

func (m *GameModel) stop() {
	m.env.Tilt.detach(m.loop)
	m.cancel()
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".lanerush", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.env.logger().Warn("cannot create screenshot directory", "err", err)
		return
	}

	path := filepath.Join(dir, fmt.Sprintf("lanerush_%s.txt", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.env.logger().Warn("cannot save screenshot", "err", err)
	}
}

func (m GameModel) draw() {
	drawFrame(m.screen, m.frame.Snapshot, hud{
		Best:          m.best,
		Notice:        m.notice,
		Flash:         m.now().Before(m.flashUntil),
		DistanceScale: m.env.Config.Speed.DistanceScale,
		TiltURL:       m.env.TiltURL,
	})
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.draw()
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	view := RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
	if m.bell {
		view += "\a"
	}
	return view
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game in the local terminal until the player quits.
func Run(env Env, launch config.Launch, rt core.RuntimeConfig) error {
	model := NewGameModel(env, launch, rt)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithContext(env.context()),
	)

	final, err := p.Run()
	if gm, ok := final.(GameModel); ok {
		gm.stop()
	} else {
		model.stop()
	}
	return err
}
