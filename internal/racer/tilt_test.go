package racer

import (
	"testing"
	"time"

	"github.com/vovakirdan/lane-rush/internal/config"
)

func TestTiltTargetLaneFiveLanes(t *testing.T) {
	tilt := NewTilt(config.DefaultConfig())

	tests := []struct {
		roll float64
		lane int
	}{
		{-40, 0},
		{-15.1, 0},
		{-15, 1},
		{-10, 1},
		{-5.1, 1},
		{-5, 2},
		{0, 2},
		{4.9, 2},
		{5, 2},
		{5.1, 3},
		{15, 3},
		{15.1, 4},
		{90, 4},
	}

	for _, tc := range tests {
		if got := tilt.TargetLane(tc.roll); got != tc.lane {
			t.Errorf("TargetLane(%v) = %d, expected %d", tc.roll, got, tc.lane)
		}
	}
}

func TestTiltTargetLaneAlwaysInRange(t *testing.T) {
	for lanes := 1; lanes <= 8; lanes++ {
		cfg := config.DefaultConfig()
		cfg.Lanes.Count = lanes
		cfg.Tilt.LaneThresholds = []float64{5, 10, 15, 20}
		tilt := NewTilt(cfg)

		for roll := -90.0; roll <= 90; roll += 0.5 {
			lane := tilt.TargetLane(roll)
			if lane < 0 || lane >= lanes {
				t.Fatalf("%d lanes: TargetLane(%v) = %d out of range", lanes, roll, lane)
			}
		}
		if got := tilt.TargetLane(0); got != lanes/2 {
			t.Errorf("%d lanes: zero roll should map to center %d, got %d", lanes, lanes/2, got)
		}
	}
}

func TestTiltTargetLaneMonotonic(t *testing.T) {
	tilt := NewTilt(config.DefaultConfig())
	prev := tilt.TargetLane(-90)
	for roll := -90.0; roll <= 90; roll += 0.25 {
		lane := tilt.TargetLane(roll)
		if lane < prev {
			t.Fatalf("lane decreased from %d to %d at roll %v", prev, lane, roll)
		}
		prev = lane
	}
}

func TestTiltSpeedBonus(t *testing.T) {
	tilt := NewTilt(config.DefaultConfig())

	tests := []struct {
		pitch float64
		bonus float64
	}{
		{-30, 1.3},
		{-15.5, 1.3},
		{-15, 1.0},
		{0, 1.0},
		{15, 1.0},
		{15.5, 0.7},
		{45, 0.7},
	}
	for _, tc := range tests {
		if got := tilt.SpeedBonus(tc.pitch); got != tc.bonus {
			t.Errorf("SpeedBonus(%v) = %v, expected %v", tc.pitch, got, tc.bonus)
		}
	}
}

func TestTiltDebounce(t *testing.T) {
	tilt := NewTilt(config.DefaultConfig())
	t0 := time.Unix(1000, 0)

	first := tilt.Apply(Reading{Roll: -20, At: t0})
	if !first.LaneAccepted || first.Lane != 0 {
		t.Fatalf("first reading should be accepted for lane 0, got %+v", first)
	}

	early := tilt.Apply(Reading{Roll: 20, Pitch: -30, At: t0.Add(99 * time.Millisecond)})
	if early.LaneAccepted {
		t.Error("reading inside the debounce window should not update the lane")
	}
	if early.SpeedBonus != 1.3 {
		t.Errorf("speed bonus should update on every reading, got %v", early.SpeedBonus)
	}

	late := tilt.Apply(Reading{Roll: 20, At: t0.Add(100 * time.Millisecond)})
	if !late.LaneAccepted || late.Lane != 4 {
		t.Errorf("reading at the debounce boundary should be accepted for lane 4, got %+v", late)
	}
}

func TestTiltResetClearsWindow(t *testing.T) {
	tilt := NewTilt(config.DefaultConfig())
	t0 := time.Unix(1000, 0)

	tilt.Apply(Reading{At: t0})
	tilt.Reset()
	if res := tilt.Apply(Reading{Roll: 20, At: t0.Add(time.Millisecond)}); !res.LaneAccepted {
		t.Error("reading after Reset should be accepted")
	}
}
