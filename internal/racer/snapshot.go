package racer

import (
	"github.com/vovakirdan/lane-rush/internal/config"
	"github.com/vovakirdan/lane-rush/internal/core"
)

// Snapshot is a read-only copy of the session for rendering.
type Snapshot struct {
	Score      int
	Lives      int
	Distance   int
	Lane       int
	State      RunState
	Mode       config.ControlMode
	SpeedBonus float64
	Ticks      uint64

	Layout Layout

	// Car is the full car box; zero while the layout is unknown.
	Car core.Box
	// CarOffset is the car's horizontal offset from screen center.
	CarOffset float64

	Obstacles []Entity
	Coins     []Entity
}

// Snapshot copies the current state. The returned slices are owned by the
// caller.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Score:      s.score,
		Lives:      s.lives,
		Distance:   int(s.distance),
		Lane:       s.lane,
		State:      s.state(),
		Mode:       s.mode,
		SpeedBonus: s.bonus,
		Ticks:      s.ticks,
		Layout:     s.layout.clone(),
		Obstacles:  append([]Entity(nil), s.obstacles...),
		Coins:      append([]Entity(nil), s.coins...),
	}

	if x, y, err := s.carOrigin(); err == nil {
		snap.Car = core.FullBox(x, y, s.cfg.Entities.CarWidth, s.cfg.Entities.CarHeight)
		snap.CarOffset, _ = s.layout.Offset(s.lane)
	}
	return snap
}
