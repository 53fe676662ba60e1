package racer

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/lane-rush/internal/config"
)

// Scales of 0.5 keep every hitbox edge exactly representable.
func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Hitbox.CarScale = 0.5
	cfg.Hitbox.ObstacleScale = 0.5
	return cfg
}

type recorder struct {
	scores []int
	err    error
}

func (r *recorder) Record(score int) error {
	r.scores = append(r.scores, score)
	return r.err
}

type effects struct {
	sounds  []Sound
	vibrate []time.Duration
}

func (e *effects) PlaySound(s Sound)        { e.sounds = append(e.sounds, s) }
func (e *effects) Vibrate(d time.Duration) { e.vibrate = append(e.vibrate, d) }

// newTestSession returns a session on a 500x1000 playfield. Lane centers
// are 50, 150, 250, 350, 450; the car rests at y=880 in lane 2.
func newTestSession(t *testing.T, opts Options) *Session {
	t.Helper()
	if opts.Config.Lanes.Count == 0 {
		opts.Config = testConfig()
	}
	s := NewSession(opts)
	if err := s.SetLayout(500, 1000); err != nil {
		t.Fatalf("SetLayout: %v", err)
	}
	return s
}

func obstacleAt(lane int, y float64) Entity {
	centers := ComputeLaneCenters(500, 5)
	return Entity{Kind: KindObstacle, Lane: lane, X: centers[lane] - 25, Y: y, Width: 50, Height: 50}
}

func coinAt(lane int, y float64) Entity {
	centers := ComputeLaneCenters(500, 5)
	return Entity{Kind: KindCoin, Lane: lane, X: centers[lane] - 15, Y: y, Width: 30, Height: 30}
}

func countEvents(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestNewSessionInitialState(t *testing.T) {
	s := NewSession(Options{Config: testConfig()})
	snap := s.Snapshot()

	if snap.State != StateRunning {
		t.Errorf("initial state = %v, expected running", snap.State)
	}
	if snap.Lives != 3 || snap.Score != 0 || snap.Lane != 2 {
		t.Errorf("initial lives/score/lane = %d/%d/%d", snap.Lives, snap.Score, snap.Lane)
	}
	if snap.Layout.Known() {
		t.Error("layout should be unknown before SetLayout")
	}
	if snap.SpeedBonus != 1.0 {
		t.Errorf("initial speed bonus = %v", snap.SpeedBonus)
	}
}

func TestSteerStaysInBounds(t *testing.T) {
	s := newTestSession(t, Options{})

	moves := 0
	for i := 0; i < 10; i++ {
		moves += countEvents(s.SteerLeft(), EventLaneChanged)
		if lane := s.Snapshot().Lane; lane < 0 || lane >= 5 {
			t.Fatalf("lane %d out of range", lane)
		}
	}
	if s.Snapshot().Lane != 0 || moves != 2 {
		t.Errorf("after steering left: lane %d, %d lane changes", s.Snapshot().Lane, moves)
	}

	moves = 0
	for i := 0; i < 10; i++ {
		moves += countEvents(s.SteerRight(), EventLaneChanged)
	}
	if s.Snapshot().Lane != 4 || moves != 4 {
		t.Errorf("after steering right: lane %d, %d lane changes", s.Snapshot().Lane, moves)
	}
}

func TestSteerIgnoredWhilePaused(t *testing.T) {
	s := newTestSession(t, Options{})
	s.TogglePause()

	if events := s.SteerLeft(); events != nil {
		t.Errorf("steering while paused produced %v", events)
	}
	if s.Snapshot().Lane != 2 {
		t.Error("lane changed while paused")
	}
}

func TestMoveToRejectsInvalidLane(t *testing.T) {
	s := newTestSession(t, Options{})

	if events := s.moveTo(7); events != nil {
		t.Errorf("moveTo(7) = %v, expected nil", events)
	}
	if events := s.moveTo(-1); events != nil {
		t.Errorf("moveTo(-1) = %v, expected nil", events)
	}
	if s.lane != 2 {
		t.Errorf("invalid lane was clamped to %d", s.lane)
	}
	if err := s.checkLane(5); !errors.Is(err, ErrLaneOutOfRange) {
		t.Errorf("checkLane(5) = %v, expected ErrLaneOutOfRange", err)
	}
}

func TestCollisionBoundary(t *testing.T) {
	// Car hitbox top is 905. An obstacle hitbox bottom is y+37.5; one tick
	// moves it 15 units.
	tests := []struct {
		name    string
		y       float64
		collide bool
	}{
		{"touching edge", 852.5, false},
		{"just overlapping", 853, true},
		{"well above", 700, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSession(t, Options{})
			s.obstacles = append(s.obstacles, obstacleAt(2, tc.y))

			events := s.Tick()
			got := countEvents(events, EventCollision) == 1
			if got != tc.collide {
				t.Errorf("collision = %v, expected %v", got, tc.collide)
			}
			if tc.collide && s.lives != 2 {
				t.Errorf("lives = %d, expected 2", s.lives)
			}
		})
	}
}

func TestCollisionOtherLaneMisses(t *testing.T) {
	s := newTestSession(t, Options{})
	s.obstacles = append(s.obstacles, obstacleAt(1, 880), obstacleAt(3, 880))

	if events := s.Tick(); countEvents(events, EventCollision) != 0 {
		t.Error("obstacles in neighboring lanes should not collide")
	}
}

func TestAtMostOneCollisionPerTick(t *testing.T) {
	fx := &effects{}
	s := newTestSession(t, Options{Effects: fx})
	s.obstacles = append(s.obstacles, obstacleAt(2, 870), obstacleAt(2, 875))
	first := s.obstacles[0]

	events := s.Tick()
	if n := countEvents(events, EventCollision); n != 1 {
		t.Fatalf("collisions = %d, expected 1", n)
	}
	if countEvents(events, EventLifeLost) != 1 {
		t.Error("life lost event missing")
	}
	if s.lives != 2 || len(s.obstacles) != 1 {
		t.Fatalf("lives %d, %d obstacles left", s.lives, len(s.obstacles))
	}
	if s.obstacles[0].Y == first.Y+15 {
		t.Error("the first obstacle in spawn order should be removed")
	}
	if len(fx.sounds) != 1 || fx.sounds[0] != SoundCrash {
		t.Errorf("sounds = %v, expected one crash", fx.sounds)
	}
	if len(fx.vibrate) != 1 || fx.vibrate[0] != 200*time.Millisecond {
		t.Errorf("vibrate = %v, expected one 200ms pulse", fx.vibrate)
	}

	s.Tick()
	if s.lives != 1 || len(s.obstacles) != 0 {
		t.Errorf("second tick: lives %d, %d obstacles left", s.lives, len(s.obstacles))
	}
}

func TestThreeCoinsPickedUpInOneTick(t *testing.T) {
	fx := &effects{}
	s := newTestSession(t, Options{Effects: fx})
	s.coins = append(s.coins, coinAt(2, 880), coinAt(2, 890), coinAt(2, 900))

	events := s.Tick()
	if n := countEvents(events, EventCoinCollected); n != 3 {
		t.Fatalf("coins collected = %d, expected 3", n)
	}
	if s.score != 75 {
		t.Errorf("score = %d, expected 75", s.score)
	}
	if len(s.coins) != 0 {
		t.Errorf("%d coins left", len(s.coins))
	}
	if len(fx.sounds) != 3 {
		t.Errorf("sounds = %v, expected three coin sounds", fx.sounds)
	}
}

func TestCoinsSkippedOnGameOverTick(t *testing.T) {
	s := newTestSession(t, Options{})
	s.lives = 1
	s.obstacles = append(s.obstacles, obstacleAt(2, 880))
	s.coins = append(s.coins, coinAt(2, 890))

	events := s.Tick()
	if countEvents(events, EventGameOver) != 1 {
		t.Fatal("expected game over")
	}
	if countEvents(events, EventCoinCollected) != 0 || s.score != 0 {
		t.Error("coins should not be collected on the tick that ends the game")
	}
}

func TestDodgeTiming(t *testing.T) {
	// (1001 + 50) / 15 = 70.07, so the obstacle leaves on tick 71.
	s := NewSession(Options{Config: testConfig()})
	if err := s.SetLayout(500, 1001); err != nil {
		t.Fatal(err)
	}
	s.obstacles = append(s.obstacles, Entity{Kind: KindObstacle, Lane: 0, X: 25, Y: -50, Width: 50, Height: 50})

	for i := 1; i <= 70; i++ {
		if events := s.Tick(); countEvents(events, EventObstacleDodged) != 0 {
			t.Fatalf("obstacle dodged early on tick %d", i)
		}
	}
	if len(s.obstacles) != 1 || s.score != 0 {
		t.Fatalf("after 70 ticks: %d obstacles, score %d", len(s.obstacles), s.score)
	}

	events := s.Tick()
	if countEvents(events, EventObstacleDodged) != 1 {
		t.Fatal("obstacle should be dodged on tick 71")
	}
	if len(s.obstacles) != 0 || s.score != 10 {
		t.Errorf("after dodge: %d obstacles, score %d", len(s.obstacles), s.score)
	}
}

func TestMissedCoinScoresNothing(t *testing.T) {
	s := newTestSession(t, Options{})
	s.coins = append(s.coins, coinAt(0, 995))

	s.Tick()
	if len(s.coins) != 0 || s.score != 0 {
		t.Errorf("missed coin: %d coins, score %d", len(s.coins), s.score)
	}
}

func TestDistanceAccumulates(t *testing.T) {
	s := newTestSession(t, Options{Launch: config.Launch{Speed: config.SpeedFast}})

	for i := 0; i < 10; i++ {
		s.Tick()
	}
	// 15 * 1.5 / 15 per tick.
	if got := s.Snapshot().Distance; got != 15 {
		t.Errorf("distance = %d, expected 15", got)
	}
}

func TestGameOverAfterThreeCollisions(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, Options{Recorder: rec})
	s.score = 40

	var gameOvers int
	for i := 1; i <= 3; i++ {
		if s.State() != StateRunning {
			t.Fatalf("collision %d: state %v before tick", i, s.State())
		}
		s.obstacles = append(s.obstacles, obstacleAt(2, 880))
		events := s.Tick()
		gameOvers += countEvents(events, EventGameOver)
		if s.lives != 3-i {
			t.Fatalf("collision %d: lives = %d", i, s.lives)
		}
	}

	if gameOvers != 1 {
		t.Errorf("game over fired %d times", gameOvers)
	}
	if s.State() != StateGameOver {
		t.Errorf("state = %v, expected game over", s.State())
	}
	if len(rec.scores) != 1 || rec.scores[0] != 40 {
		t.Errorf("recorded scores = %v, expected [40]", rec.scores)
	}

	s.obstacles = append(s.obstacles, obstacleAt(2, 880))
	if events := s.Tick(); events != nil || s.lives != 0 {
		t.Error("ticks after game over should do nothing")
	}
	if events := s.TogglePause(); events != nil {
		t.Error("pause toggle after game over should do nothing")
	}
}

func TestRecorderFailureDoesNotStopGameOver(t *testing.T) {
	rec := &recorder{err: errors.New("disk full")}
	s := newTestSession(t, Options{Recorder: rec})
	s.lives = 1
	s.obstacles = append(s.obstacles, obstacleAt(2, 880))

	s.Tick()
	if s.State() != StateGameOver {
		t.Errorf("state = %v, expected game over", s.State())
	}
}

func TestRestartResetsSession(t *testing.T) {
	s := newTestSession(t, Options{})
	if events := s.Restart(); events != nil {
		t.Error("restart while running should do nothing")
	}

	s.lives = 1
	s.score = 90
	s.SteerLeft()
	s.obstacles = append(s.obstacles, obstacleAt(1, 880), obstacleAt(3, 100))
	s.coins = append(s.coins, coinAt(4, 100))
	s.Tick()

	events := s.Restart()
	if countEvents(events, EventRestarted) != 1 {
		t.Fatal("expected restarted event")
	}
	snap := s.Snapshot()
	if snap.State != StateRunning || snap.Lives != 3 || snap.Score != 0 || snap.Lane != 2 {
		t.Errorf("after restart: %v lives %d score %d lane %d", snap.State, snap.Lives, snap.Score, snap.Lane)
	}
	if len(snap.Obstacles) != 0 || len(snap.Coins) != 0 || snap.Distance != 0 {
		t.Error("restart should clear entities and distance")
	}
}

func TestPausePrecedence(t *testing.T) {
	t.Run("manual then focus", func(t *testing.T) {
		s := newTestSession(t, Options{})

		if countEvents(s.TogglePause(), EventPaused) != 1 {
			t.Error("expected paused event")
		}
		s.FocusLost()
		if s.State() != StatePausedManual {
			t.Errorf("state = %v, manual pause should win", s.State())
		}
		if events := s.FocusGained(); events != nil {
			t.Errorf("focus regain should not resume a manual pause, got %v", events)
		}
		if s.State() != StatePausedManual {
			t.Errorf("state = %v after focus regain", s.State())
		}
		if countEvents(s.TogglePause(), EventResumed) != 1 || s.State() != StateRunning {
			t.Error("toggle should resume")
		}
	})

	t.Run("focus then manual", func(t *testing.T) {
		s := newTestSession(t, Options{})

		if countEvents(s.FocusLost(), EventPaused) != 1 || s.State() != StatePausedSystem {
			t.Fatal("focus loss should pause")
		}
		s.TogglePause()
		if s.State() != StatePausedManual {
			t.Errorf("state = %v, expected manual pause", s.State())
		}
		s.FocusGained()
		if s.State() != StatePausedManual {
			t.Errorf("state = %v, manual pause should survive focus regain", s.State())
		}
	})

	t.Run("focus round trip", func(t *testing.T) {
		s := newTestSession(t, Options{})

		s.FocusLost()
		s.TogglePause()
		s.TogglePause()
		if s.State() != StatePausedSystem {
			t.Errorf("state = %v, system pause should remain", s.State())
		}
		if countEvents(s.FocusGained(), EventResumed) != 1 || s.State() != StateRunning {
			t.Error("focus regain should resume")
		}
	})

	t.Run("focus regain before layout", func(t *testing.T) {
		s := NewSession(Options{Config: testConfig()})
		s.FocusLost()
		s.FocusGained()
		if s.State() != StatePausedSystem {
			t.Errorf("state = %v, should stay paused until layout is known", s.State())
		}
	})
}

func TestTickFrozenWhilePaused(t *testing.T) {
	s := newTestSession(t, Options{})
	s.obstacles = append(s.obstacles, obstacleAt(0, 100))
	s.TogglePause()

	for i := 0; i < 5; i++ {
		s.Tick()
	}
	if s.obstacles[0].Y != 100 || s.ticks != 0 {
		t.Errorf("entities moved while paused: y=%v ticks=%d", s.obstacles[0].Y, s.ticks)
	}
}

func TestSpawnSkippedWithoutLayout(t *testing.T) {
	s := NewSession(Options{Config: testConfig()})

	if events := s.Spawn(); events != nil {
		t.Errorf("spawn without layout = %v", events)
	}
	if events := s.Tick(); events != nil {
		t.Errorf("tick without layout = %v", events)
	}
	snap := s.Snapshot()
	if len(snap.Obstacles)+len(snap.Coins) != 0 {
		t.Error("no entity should exist without a layout")
	}
}

func TestSpawnPlacesEntitiesOnLanes(t *testing.T) {
	s := newTestSession(t, Options{Seed: 7})
	centers := ComputeLaneCenters(500, 5)

	for i := 0; i < 200; i++ {
		if countEvents(s.Spawn(), EventSpawned) != 1 {
			t.Fatal("expected spawned event")
		}
	}

	snap := s.Snapshot()
	if len(snap.Obstacles) == 0 || len(snap.Coins) == 0 {
		t.Fatalf("expected both kinds, got %d obstacles %d coins", len(snap.Obstacles), len(snap.Coins))
	}
	if len(snap.Obstacles) < len(snap.Coins) {
		t.Errorf("obstacles should be more common: %d vs %d", len(snap.Obstacles), len(snap.Coins))
	}
	for _, e := range append(snap.Obstacles, snap.Coins...) {
		if e.X+e.Width/2 != centers[e.Lane] {
			t.Errorf("entity %d not centered on lane %d", e.ID, e.Lane)
		}
		if e.Y != -e.Height {
			t.Errorf("entity %d spawned at y=%v", e.ID, e.Y)
		}
	}
}

func TestSpawnSkippedWhilePaused(t *testing.T) {
	s := newTestSession(t, Options{})
	s.FocusLost()

	if events := s.Spawn(); events != nil {
		t.Errorf("spawn while paused = %v", events)
	}
}

func TestSetLayoutReplacesEntities(t *testing.T) {
	s := newTestSession(t, Options{})
	s.obstacles = append(s.obstacles, obstacleAt(4, 100))
	s.coins = append(s.coins, coinAt(1, 200))

	if err := s.SetLayout(1000, 1000); err != nil {
		t.Fatal(err)
	}
	if s.obstacles[0].X != 900-25 || s.obstacles[0].Y != 100 {
		t.Errorf("obstacle at (%v, %v) after resize", s.obstacles[0].X, s.obstacles[0].Y)
	}
	if s.coins[0].X != 300-15 {
		t.Errorf("coin at x=%v after resize", s.coins[0].X)
	}

	snap := s.Snapshot()
	if snap.Car.Left != 500-30 || snap.CarOffset != 0 {
		t.Errorf("car left=%v offset=%v", snap.Car.Left, snap.CarOffset)
	}
}

func TestSetLayoutErrors(t *testing.T) {
	s := NewSession(Options{Config: testConfig()})

	if err := s.SetLayout(0, 100); !errors.Is(err, ErrLayoutUnknown) {
		t.Errorf("SetLayout(0, 100) = %v", err)
	}
	s.Close()
	if err := s.SetLayout(100, 100); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("SetLayout after close = %v", err)
	}
}

func TestClosedSessionIgnoresInput(t *testing.T) {
	s := newTestSession(t, Options{})
	s.Close()

	if s.Tick() != nil || s.Spawn() != nil || s.SteerLeft() != nil || s.TogglePause() != nil {
		t.Error("closed session should ignore input")
	}
}

func TestTiltFallbackWithoutSensor(t *testing.T) {
	s := newTestSession(t, Options{Launch: config.Launch{Mode: config.ControlTilt}})

	if s.Mode() != config.ControlButtons {
		t.Errorf("mode = %v, expected fallback to buttons", s.Mode())
	}
	startup := s.Startup()
	if countEvents(startup, EventControlFallback) != 1 {
		t.Fatalf("startup events = %v", startup)
	}
	if startup[0].Notice() != "Tilt control not available, using buttons." {
		t.Errorf("notice = %q", startup[0].Notice())
	}
	if s.Startup() != nil {
		t.Error("startup events should be returned once")
	}
}

func TestSensorSteersInTiltMode(t *testing.T) {
	s := newTestSession(t, Options{
		Launch:          config.Launch{Mode: config.ControlTilt},
		SensorAvailable: true,
	})
	t0 := time.Unix(1000, 0)

	events := s.Sensor(Reading{Roll: -20, Pitch: -30, At: t0})
	if countEvents(events, EventLaneChanged) != 1 || s.lane != 0 {
		t.Fatalf("lane = %d after strong left tilt", s.lane)
	}
	if s.bonus != 1.3 {
		t.Errorf("bonus = %v, expected 1.3", s.bonus)
	}

	// Inside the debounce window the lane holds but the bonus follows.
	s.Sensor(Reading{Roll: 20, Pitch: 30, At: t0.Add(50 * time.Millisecond)})
	if s.lane != 0 || s.bonus != 0.7 {
		t.Errorf("lane %d bonus %v inside debounce window", s.lane, s.bonus)
	}

	// Same target lane: no event.
	if events := s.Sensor(Reading{Roll: -20, At: t0.Add(200 * time.Millisecond)}); events != nil {
		t.Errorf("unchanged lane produced %v", events)
	}
}

func TestSensorIgnoredInButtonMode(t *testing.T) {
	s := newTestSession(t, Options{SensorAvailable: true})

	if events := s.Sensor(Reading{Roll: -40, Pitch: -40, At: time.Now()}); events != nil {
		t.Errorf("sensor in button mode = %v", events)
	}
	if s.lane != 2 || s.bonus != 1.0 {
		t.Error("sensor reading should not affect a button-mode session")
	}
}

func TestEventNotices(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{Event{Kind: EventLifeLost, Lives: 2}, "Crash! Lives left: 2"},
		{Event{Kind: EventCoinCollected}, "Coin collected!"},
		{Event{Kind: EventGameOver, Score: 120}, "Game over! Score: 120"},
		{Event{Kind: EventSpawned}, ""},
	}
	for _, tc := range tests {
		if got := tc.event.Notice(); got != tc.want {
			t.Errorf("%v notice = %q, expected %q", tc.event.Kind, got, tc.want)
		}
	}
}
