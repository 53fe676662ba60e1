package tui

import (
	"context"
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-rush/internal/config"
	"github.com/vovakirdan/lane-rush/internal/racer"
	"github.com/vovakirdan/lane-rush/internal/scorebook"
)

// Env is what every game started from the UI shares.
type Env struct {
	// Context bounds every game loop; an SSH session passes its own.
	Context context.Context
	Config  config.Config
	Book    *scorebook.Book
	Logger  *log.Logger

	// Seed fixes the RNG; zero picks a time-based seed per game.
	Seed int64

	// Tilt forwards phone readings; nil when no tilt feed is running.
	Tilt *TiltRelay
	// TiltURL is shown to the player so they can open the phone page.
	TiltURL string
}

func (e Env) context() context.Context {
	if e.Context == nil {
		return context.Background()
	}
	return e.Context
}

func (e Env) logger() *log.Logger {
	if e.Logger == nil {
		return log.New(io.Discard)
	}
	return e.Logger
}

func (e Env) best() int {
	if e.Book == nil {
		return 0
	}
	return e.Book.Best()
}

// TiltRelay forwards readings to whichever game loop is active.
type TiltRelay struct {
	loop atomic.Pointer[racer.Loop]
}

// Forward is a sensor sink.
func (r *TiltRelay) Forward(reading racer.Reading) {
	if l := r.loop.Load(); l != nil {
		l.Send(reading)
	}
}

func (r *TiltRelay) attach(l *racer.Loop) {
	if r != nil {
		r.loop.Store(l)
	}
}

func (r *TiltRelay) detach(l *racer.Loop) {
	if r != nil {
		r.loop.CompareAndSwap(l, nil)
	}
}
