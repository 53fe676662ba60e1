package racer

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Command is an input funneled through the loop.
type Command interface {
	apply(s *Session) ([]Event, error)
}

// SteerLeft moves the car one lane left.
type SteerLeft struct{}

// SteerRight moves the car one lane right.
type SteerRight struct{}

// TogglePause flips the manual pause.
type TogglePause struct{}

// FocusLost pauses until focus returns.
type FocusLost struct{}

// FocusGained lifts the focus pause.
type FocusGained struct{}

// Resize sets the playfield size in world units.
type Resize struct {
	Width, Height float64
}

func (SteerLeft) apply(s *Session) ([]Event, error)   { return s.SteerLeft(), nil }
func (SteerRight) apply(s *Session) ([]Event, error)  { return s.SteerRight(), nil }
func (TogglePause) apply(s *Session) ([]Event, error) { return s.TogglePause(), nil }
func (FocusLost) apply(s *Session) ([]Event, error)   { return s.FocusLost(), nil }
func (FocusGained) apply(s *Session) ([]Event, error) { return s.FocusGained(), nil }
func (r Reading) apply(s *Session) ([]Event, error)   { return s.Sensor(r), nil }

func (r Resize) apply(s *Session) ([]Event, error) {
	return nil, s.SetLayout(r.Width, r.Height)
}

// Frame is published after every handler run. Events holds everything that
// happened since the previous frame the consumer received.
type Frame struct {
	Snapshot Snapshot
	Events   []Event
}

const commandBuffer = 64

// Loop is the single consumer that owns a session while it runs. Ticks, the
// spawn timer, the restart timer and commands are handled one at a time.
type Loop struct {
	session *Session
	logger  *log.Logger

	tickEvery    time.Duration
	spawnEvery   time.Duration
	restartAfter time.Duration

	commands chan Command
	frames   chan Frame
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewLoop creates a loop for session using the session's timing settings.
func NewLoop(session *Session, logger *log.Logger) *Loop {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	timing := session.cfg.Timing
	return &Loop{
		session:      session,
		logger:       logger,
		tickEvery:    timing.TickInterval(),
		spawnEvery:   timing.SpawnInterval(session.baseFactor),
		restartAfter: timing.RestartDelay(),
		commands:     make(chan Command, commandBuffer),
		frames:       make(chan Frame, 1),
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
}

// Send queues a command. It returns false if the loop has finished or the
// queue is full.
func (l *Loop) Send(cmd Command) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.commands <- cmd:
		return true
	default:
		l.logger.Warn("command dropped", "command", fmt.Sprintf("%T", cmd))
		return false
	}
}

// Frames returns the frame channel. Only the latest frame is buffered; it is
// closed when Run returns.
func (l *Loop) Frames() <-chan Frame {
	return l.frames
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Stop ends Run. Safe to call more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// Run handles inputs until ctx is cancelled or Stop is called. The session
// is closed on return, so no handler runs afterwards. Run must be called
// at most once.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.tickEvery)
	spawn := time.NewTimer(l.spawnEvery)
	var restart *time.Timer
	var restartC <-chan time.Time

	defer func() {
		ticker.Stop()
		spawn.Stop()
		if restart != nil {
			restart.Stop()
		}
		l.session.Close()
		close(l.done)
		close(l.frames)
	}()

	l.publish(l.session.Startup())

	for {
		var events []Event
		select {
		case <-ctx.Done():
			return nil
		case <-l.stop:
			return nil
		case <-ticker.C:
			events = l.handle("tick", l.session.Tick)
		case <-spawn.C:
			events = l.handle("spawn", l.session.Spawn)
			spawn.Reset(l.spawnEvery)
		case <-restartC:
			restartC = nil
			events = l.handle("restart", l.session.Restart)
		case cmd := <-l.commands:
			events = l.handle(fmt.Sprintf("%T", cmd), func() []Event {
				evs, err := cmd.apply(l.session)
				if err != nil {
					l.logger.Warn("command failed", "command", fmt.Sprintf("%T", cmd), "err", err)
				}
				return evs
			})
		}

		if hasEvent(events, EventGameOver) {
			restart = time.NewTimer(l.restartAfter)
			restartC = restart.C
		}
		l.publish(events)
	}
}

// handle runs fn and recovers a panic so the loop keeps going.
func (l *Loop) handle(name string, fn func() []Event) (events []Event) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("handler panicked", "handler", name, "panic", r)
			events = nil
		}
	}()
	return fn()
}

// publish replaces an unread frame, carrying its events forward.
func (l *Loop) publish(events []Event) {
	frame := Frame{Snapshot: l.session.Snapshot(), Events: events}
	select {
	case old := <-l.frames:
		frame.Events = append(old.Events, frame.Events...)
	default:
	}
	l.frames <- frame
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
