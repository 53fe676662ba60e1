// Package tui provides the Bubble Tea front end for the racer: the launch
// menu, the game screen, the scoreboard and the SSH server.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lane-rush/internal/racer"
)

// frameMsg carries a frame published by a game loop.
type frameMsg struct {
	loop  *racer.Loop
	frame racer.Frame
}

// loopDoneMsg is sent once a game loop has stopped.
type loopDoneMsg struct {
	loop *racer.Loop
}

// waitForFrame blocks on the loop's frame channel.
func waitForFrame(loop *racer.Loop) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-loop.Frames()
		if !ok {
			return loopDoneMsg{loop: loop}
		}
		return frameMsg{loop: loop, frame: f}
	}
}
