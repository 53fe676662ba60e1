package racer

import (
	"math"
	"time"

	"github.com/vovakirdan/lane-rush/internal/config"
)

// Reading is one device orientation sample in degrees.
// Negative roll tilts left, negative pitch tilts the top of the device away.
type Reading struct {
	Roll  float64
	Pitch float64
	At    time.Time
}

// TiltResult is the outcome of one sensor reading.
type TiltResult struct {
	Lane         int     // Target lane, meaningful only when LaneAccepted
	LaneAccepted bool    // False when the reading fell inside the debounce window
	SpeedBonus   float64 // Always set
}

// Tilt converts orientation readings to a target lane and a speed bonus.
type Tilt struct {
	laneCount  int
	thresholds []float64
	pitch      float64
	bonusFast  float64
	bonusSlow  float64
	debounce   time.Duration

	lastLane time.Time
	seen     bool
}

// NewTilt builds a Tilt from the racer configuration.
func NewTilt(cfg config.Config) *Tilt {
	return &Tilt{
		laneCount:  cfg.Lanes.Count,
		thresholds: append([]float64(nil), cfg.Tilt.LaneThresholds...),
		pitch:      cfg.Tilt.PitchThreshold,
		bonusFast:  cfg.Tilt.BonusFast,
		bonusSlow:  cfg.Tilt.BonusSlow,
		debounce:   cfg.Timing.SensorDebounce(),
	}
}

// TargetLane maps roll to a lane band. The band around zero is the center
// lane; each threshold crossed moves one lane further out, capped at the
// outermost lane on that side.
func (t *Tilt) TargetLane(roll float64) int {
	center := t.laneCount / 2
	steps := 0
	for _, edge := range t.thresholds {
		if math.Abs(roll) <= edge {
			break
		}
		steps++
	}
	if roll < 0 {
		return center - min(steps, center)
	}
	return center + min(steps, t.laneCount-1-center)
}

// SpeedBonus maps pitch to the dynamic speed factor.
func (t *Tilt) SpeedBonus(pitch float64) float64 {
	switch {
	case pitch < -t.pitch:
		return t.bonusFast
	case pitch > t.pitch:
		return t.bonusSlow
	default:
		return 1.0
	}
}

// Apply evaluates a reading. The speed bonus is computed for every reading;
// the lane only when at least the debounce interval has passed since the
// last accepted lane update. Early readings are dropped, not queued.
func (t *Tilt) Apply(r Reading) TiltResult {
	res := TiltResult{SpeedBonus: t.SpeedBonus(r.Pitch)}
	if t.seen && r.At.Sub(t.lastLane) < t.debounce {
		return res
	}
	t.seen = true
	t.lastLane = r.At
	res.LaneAccepted = true
	res.Lane = t.TargetLane(r.Roll)
	return res
}

// Reset forgets the debounce window.
func (t *Tilt) Reset() {
	t.seen = false
	t.lastLane = time.Time{}
}
