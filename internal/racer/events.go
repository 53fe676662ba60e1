package racer

import (
	"fmt"
	"time"
)

// EventKind identifies what happened during a handler invocation.
type EventKind int

const (
	EventSpawned EventKind = iota
	EventLaneChanged
	EventObstacleDodged
	EventCollision
	EventLifeLost
	EventCoinCollected
	EventGameOver
	EventRestarted
	EventPaused
	EventResumed
	EventControlFallback
)

var eventNames = map[EventKind]string{
	EventSpawned:         "spawned",
	EventLaneChanged:     "lane_changed",
	EventObstacleDodged:  "obstacle_dodged",
	EventCollision:       "collision",
	EventLifeLost:        "life_lost",
	EventCoinCollected:   "coin_collected",
	EventGameOver:        "game_over",
	EventRestarted:       "restarted",
	EventPaused:          "paused",
	EventResumed:         "resumed",
	EventControlFallback: "control_fallback",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is a user-visible occurrence. Lives and Score are the values after
// the event was applied.
type Event struct {
	Kind  EventKind
	Lane  int
	Lives int
	Score int
	State RunState
}

// Notice returns the short message shown to the player, or "" for events
// that only update the HUD.
func (e Event) Notice() string {
	switch e.Kind {
	case EventLifeLost:
		return fmt.Sprintf("Crash! Lives left: %d", e.Lives)
	case EventCoinCollected:
		return "Coin collected!"
	case EventGameOver:
		return fmt.Sprintf("Game over! Score: %d", e.Score)
	case EventLaneChanged:
		return fmt.Sprintf("Lane %d", e.Lane+1)
	case EventControlFallback:
		return "Tilt control not available, using buttons."
	default:
		return ""
	}
}

// Sound is a short audio cue.
type Sound int

const (
	SoundCrash Sound = iota
	SoundCoin
)

func (s Sound) String() string {
	switch s {
	case SoundCrash:
		return "crash"
	case SoundCoin:
		return "coin"
	default:
		return "unknown"
	}
}

// Effects plays audio and haptic feedback. Calls must not block.
type Effects interface {
	PlaySound(s Sound)
	Vibrate(d time.Duration)
}

// NopEffects discards every effect.
type NopEffects struct{}

func (NopEffects) PlaySound(Sound)        {}
func (NopEffects) Vibrate(time.Duration) {}

// ScoreRecorder persists a final score.
type ScoreRecorder interface {
	Record(score int) error
}
