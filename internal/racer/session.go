package racer

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-rush/internal/config"
	"github.com/vovakirdan/lane-rush/internal/core"
)

// ErrSessionClosed is returned by operations on a closed session.
var ErrSessionClosed = errors.New("racer: session closed")

// RunState is the externally visible state of a session.
type RunState int

const (
	StateRunning RunState = iota
	StatePausedManual
	StatePausedSystem
	StateGameOver
)

func (s RunState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePausedManual:
		return "paused"
	case StatePausedSystem:
		return "paused (focus lost)"
	case StateGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Options configures a new session.
type Options struct {
	Config config.Config
	Launch config.Launch

	// SensorAvailable is false when no tilt feed could be started.
	// A Tilt launch then falls back to buttons.
	SensorAvailable bool

	Seed     int64
	Logger   *log.Logger
	Effects  Effects
	Recorder ScoreRecorder
}

// Session owns all mutable game state. Every exported method is safe for
// concurrent use, but the Loop is expected to be the only caller while a
// game is running.
type Session struct {
	mu sync.Mutex

	cfg        config.Config
	mode       config.ControlMode
	baseFactor float64
	logger     *log.Logger
	effects    Effects
	recorder   ScoreRecorder

	layout  Layout
	spawner *Spawner
	tilt    *Tilt

	score     int
	lives     int
	lane      int
	distance  float64
	bonus     float64
	obstacles []Entity
	coins     []Entity
	ticks     uint64

	manualPause bool
	systemPause bool
	over        bool
	closed      bool

	startup []Event
}

// NewSession creates a running session. The layout is unknown until
// SetLayout is called; until then ticks and spawns are skipped.
func NewSession(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	effects := opts.Effects
	if effects == nil {
		effects = NopEffects{}
	}

	s := &Session{
		cfg:        opts.Config,
		mode:       opts.Launch.Mode,
		baseFactor: opts.Config.BaseSpeedFactor(opts.Launch.Speed),
		logger:     logger,
		effects:    effects,
		recorder:   opts.Recorder,
		spawner:    NewSpawner(opts.Seed, opts.Config),
		tilt:       NewTilt(opts.Config),
	}

	if s.mode == config.ControlTilt && !opts.SensorAvailable {
		s.mode = config.ControlButtons
		logger.Warn("tilt control not available, using buttons")
		s.startup = append(s.startup, Event{Kind: EventControlFallback})
	}

	s.reset()
	return s
}

func (s *Session) reset() {
	s.score = 0
	s.lives = s.cfg.Scoring.InitialLives
	s.lane = s.cfg.Lanes.Count / 2
	s.distance = 0
	s.bonus = 1.0
	s.obstacles = s.obstacles[:0]
	s.coins = s.coins[:0]
	s.manualPause = false
	s.over = false
	s.tilt.Reset()
}

// Startup returns the events produced while creating the session, once.
func (s *Session) Startup() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.startup
	s.startup = nil
	return events
}

// Mode returns the effective control mode after any fallback.
func (s *Session) Mode() config.ControlMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// State returns the current run state.
func (s *Session) State() RunState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

// Manual pause wins over system pause; game over wins over both.
func (s *Session) state() RunState {
	switch {
	case s.over:
		return StateGameOver
	case s.manualPause:
		return StatePausedManual
	case s.systemPause:
		return StatePausedSystem
	default:
		return StateRunning
	}
}

func (s *Session) event(kind EventKind) Event {
	return Event{
		Kind:  kind,
		Lane:  s.lane,
		Lives: s.lives,
		Score: s.score,
		State: s.state(),
	}
}

// SetLayout sets the playfield size in world units and re-places the car
// and every entity on its lane's new center.
func (s *Session) SetLayout(width, height float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	layout, err := NewLayout(width, height, s.cfg.Lanes.Count)
	if err != nil {
		return err
	}
	s.layout = layout

	for i := range s.obstacles {
		s.obstacles[i].X = layout.Centers[s.obstacles[i].Lane] - s.obstacles[i].Width/2
	}
	for i := range s.coins {
		s.coins[i].X = layout.Centers[s.coins[i].Lane] - s.coins[i].Width/2
	}

	s.logger.Debug("layout set", "width", width, "height", height, "lanes", len(layout.Centers))
	return nil
}

// Tick advances one fixed step: motion, then collision, then pickups.
func (s *Session) Tick() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state() != StateRunning || !s.layout.Known() {
		return nil
	}
	s.ticks++

	var events []Event

	speed := s.effectiveSpeed()
	var moved MotionResult
	s.obstacles, s.coins, moved = Advance(s.obstacles, s.coins, speed, s.layout.Height)
	for i := 0; i < moved.Dodged; i++ {
		s.score += s.cfg.Scoring.DodgePoints
		events = append(events, s.event(EventObstacleDodged))
	}
	s.distance += speed / s.cfg.Speed.DistanceScale

	car, err := s.carHitbox(s.cfg.Hitbox.CarScale)
	if err != nil {
		s.logger.Warn("collision skipped", "err", err)
		return events
	}

	var hit *Entity
	s.obstacles, hit = Collide(car, s.obstacles, s.cfg.Hitbox.ObstacleScale)
	if hit != nil {
		events = append(events, s.crash(hit)...)
		if s.over {
			return events
		}
	}

	pickup, _ := s.carHitbox(s.cfg.Hitbox.CarScale + s.cfg.Hitbox.CoinBonus)
	var picked []Entity
	s.coins, picked = Collect(pickup, s.coins)
	for range picked {
		s.score += s.cfg.Scoring.CoinPoints
		s.effects.PlaySound(SoundCoin)
		events = append(events, s.event(EventCoinCollected))
	}

	return events
}

func (s *Session) effectiveSpeed() float64 {
	return s.cfg.Speed.Base * s.baseFactor * s.bonus
}

func (s *Session) crash(hit *Entity) []Event {
	s.lives--
	s.effects.PlaySound(SoundCrash)
	s.effects.Vibrate(s.cfg.Effects.Vibrate())
	s.logger.Debug("collision", "obstacle", hit.ID, "lane", hit.Lane, "lives", s.lives)

	events := []Event{s.event(EventCollision)}
	if s.lives > 0 {
		return append(events, s.event(EventLifeLost))
	}

	s.lives = 0
	s.over = true
	s.persist()
	s.logger.Info("game over", "score", s.score, "distance", int(s.distance))
	return append(events, s.event(EventGameOver))
}

func (s *Session) persist() {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(s.score); err != nil {
		s.logger.Error("failed to save score", "score", s.score, "err", err)
	}
}

// Spawn creates one entity at the top of a random lane. It is a no-op
// unless the session is running with a known layout.
func (s *Session) Spawn() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state() != StateRunning {
		return nil
	}
	e, err := s.spawner.Next(s.layout)
	if err != nil {
		s.logger.Warn("spawn skipped", "err", err)
		return nil
	}

	if e.Kind == KindObstacle {
		s.obstacles = append(s.obstacles, e)
	} else {
		s.coins = append(s.coins, e)
	}
	ev := s.event(EventSpawned)
	ev.Lane = e.Lane
	return []Event{ev}
}

// SteerLeft moves the car one lane left. No-op at the leftmost lane.
func (s *Session) SteerLeft() []Event {
	return s.steer(-1)
}

// SteerRight moves the car one lane right. No-op at the rightmost lane.
func (s *Session) SteerRight() []Event {
	return s.steer(1)
}

func (s *Session) steer(delta int) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state() != StateRunning {
		return nil
	}
	target := s.lane + delta
	if target < 0 || target >= s.cfg.Lanes.Count {
		return nil
	}
	return s.moveTo(target)
}

// moveTo changes lanes. Invalid indexes are rejected, never clamped.
func (s *Session) moveTo(lane int) []Event {
	if err := s.checkLane(lane); err != nil {
		s.logger.Error("car not moved", "lane", lane, "err", err)
		return nil
	}
	if lane == s.lane {
		return nil
	}
	s.lane = lane
	return []Event{s.event(EventLaneChanged)}
}

func (s *Session) checkLane(lane int) error {
	if lane < 0 || lane >= s.cfg.Lanes.Count {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrLaneOutOfRange, lane, s.cfg.Lanes.Count)
	}
	return nil
}

// carOrigin returns the top-left corner of the car: centered on its lane,
// resting above the bottom edge.
func (s *Session) carOrigin() (float64, float64, error) {
	center, err := s.layout.LaneCenter(s.lane)
	if err != nil {
		return 0, 0, err
	}
	ent := s.cfg.Entities
	return center - ent.CarWidth/2, s.layout.Height - ent.CarHeight - ent.CarBottomMargin, nil
}

func (s *Session) carHitbox(scale float64) (core.Box, error) {
	x, y, err := s.carOrigin()
	if err != nil {
		return core.Box{}, err
	}
	return core.Hitbox(x, y, s.cfg.Entities.CarWidth, s.cfg.Entities.CarHeight, scale), nil
}

// Sensor applies a tilt reading. Readings are ignored unless the session
// is running in tilt mode.
func (s *Session) Sensor(r Reading) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.mode != config.ControlTilt || s.state() != StateRunning {
		return nil
	}
	res := s.tilt.Apply(r)
	s.bonus = res.SpeedBonus
	if !res.LaneAccepted {
		return nil
	}
	return s.moveTo(res.Lane)
}

// TogglePause flips the manual pause. Resuming requires lives left.
func (s *Session) TogglePause() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.over {
		return nil
	}
	before := s.state()
	if s.manualPause {
		if s.lives <= 0 {
			return nil
		}
		s.manualPause = false
	} else {
		s.manualPause = true
	}
	return s.transition(before)
}

// FocusLost pauses the session until focus returns. A manual pause is kept.
func (s *Session) FocusLost() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	before := s.state()
	s.systemPause = true
	return s.transition(before)
}

// FocusGained lifts the system pause once the layout is known. The session
// only resumes if it was not paused manually and is not over.
func (s *Session) FocusGained() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || !s.layout.Known() {
		return nil
	}
	before := s.state()
	s.systemPause = false
	return s.transition(before)
}

func (s *Session) transition(before RunState) []Event {
	after := s.state()
	switch {
	case before == after:
		return nil
	case after == StateRunning:
		return []Event{s.event(EventResumed)}
	case before == StateRunning:
		return []Event{s.event(EventPaused)}
	default:
		return nil
	}
}

// Restart starts a fresh run after game over. Entities are cleared.
func (s *Session) Restart() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || !s.over {
		return nil
	}
	s.reset()
	s.logger.Info("session restarted")
	return []Event{s.event(EventRestarted)}
}

// Close stops the session. Every later call is a no-op.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}
