package tui

import (
	"sync"
	"time"

	"github.com/vovakirdan/lane-rush/internal/racer"
)

// termEffects turns sounds into a terminal bell and vibration into a red
// flash around the playfield. The loop goroutine writes, the UI drains.
type termEffects struct {
	mu         sync.Mutex
	bells      int
	flashUntil time.Time
	now        func() time.Time
}

func newTermEffects() *termEffects {
	return &termEffects{now: time.Now}
}

func (e *termEffects) PlaySound(racer.Sound) {
	e.mu.Lock()
	e.bells++
	e.mu.Unlock()
}

func (e *termEffects) Vibrate(d time.Duration) {
	e.mu.Lock()
	if until := e.now().Add(d); until.After(e.flashUntil) {
		e.flashUntil = until
	}
	e.mu.Unlock()
}

// drain reports whether a bell is pending and until when to flash.
func (e *termEffects) drain() (bell bool, flashUntil time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	bell = e.bells > 0
	e.bells = 0
	return bell, e.flashUntil
}
