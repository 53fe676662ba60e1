package config

import (
	_ "embed"
	"errors"
	"fmt"
	"time"
)

//go:embed defaults/lanerush.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded tuning, identical to the embedded YAML.
func DefaultConfig() Config {
	return Config{
		Lanes: LanesConfig{Count: 5},
		Timing: TimingConfig{
			TickMs:           50,
			SpawnIntervalMs:  1800,
			RestartDelayMs:   3000,
			SensorDebounceMs: 100,
		},
		Speed: SpeedConfig{
			Base:          15,
			DistanceScale: 15,
			SlowFactor:    1.0,
			FastFactor:    1.5,
		},
		Entities: EntitiesConfig{
			CarWidth:        60,
			CarHeight:       100,
			CarBottomMargin: 20,
			ObstacleSize:    50,
			CoinSize:        30, // 0.6 x obstacle
		},
		Hitbox: HitboxConfig{
			CarScale:      0.70,
			ObstacleScale: 0.70,
			CoinBonus:     0.10,
		},
		Scoring: ScoringConfig{
			InitialLives:   3,
			DodgePoints:    10,
			CoinPoints:     25,
			MaxSavedScores: 10,
		},
		Spawn: SpawnConfig{ObstacleChance: 0.75},
		Tilt: TiltConfig{
			LaneThresholds: []float64{5, 15},
			PitchThreshold: 15,
			BonusFast:      1.3,
			BonusSlow:      0.7,
		},
		Effects: EffectsConfig{VibrateMs: 200},
	}
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultYAML
}

// Validate reports the first impossible value in the configuration.
func (c Config) Validate() error {
	if c.Lanes.Count < 1 {
		return fmt.Errorf("config: lanes.count must be at least 1, got %d", c.Lanes.Count)
	}
	if c.Timing.TickMs <= 0 || c.Timing.SpawnIntervalMs <= 0 {
		return errors.New("config: timing intervals must be positive")
	}
	if c.Timing.RestartDelayMs < 0 || c.Timing.SensorDebounceMs < 0 {
		return errors.New("config: timing delays must not be negative")
	}
	if c.Speed.Base <= 0 || c.Speed.DistanceScale <= 0 {
		return errors.New("config: speed.base and speed.distance_scale must be positive")
	}
	if c.Speed.SlowFactor <= 0 || c.Speed.FastFactor <= 0 {
		return errors.New("config: speed factors must be positive")
	}
	for name, scale := range map[string]float64{
		"hitbox.car_scale":      c.Hitbox.CarScale,
		"hitbox.obstacle_scale": c.Hitbox.ObstacleScale,
	} {
		if scale <= 0 || scale > 1 {
			return fmt.Errorf("config: %s must be in (0, 1], got %v", name, scale)
		}
	}
	if c.Scoring.InitialLives < 1 {
		return fmt.Errorf("config: scoring.initial_lives must be at least 1, got %d", c.Scoring.InitialLives)
	}
	if c.Scoring.MaxSavedScores < 1 {
		return fmt.Errorf("config: scoring.max_saved_scores must be at least 1, got %d", c.Scoring.MaxSavedScores)
	}
	if c.Spawn.ObstacleChance < 0 || c.Spawn.ObstacleChance > 1 {
		return fmt.Errorf("config: spawn.obstacle_chance must be in [0, 1], got %v", c.Spawn.ObstacleChance)
	}
	prev := 0.0
	for i, edge := range c.Tilt.LaneThresholds {
		if edge <= prev {
			return fmt.Errorf("config: tilt.lane_thresholds must be positive and ascending (index %d)", i)
		}
		prev = edge
	}
	// Enough bands to reach the outermost lane on the wider side.
	if need := c.Lanes.Count / 2; len(c.Tilt.LaneThresholds) < need {
		return fmt.Errorf("config: tilt.lane_thresholds needs %d edges for %d lanes, got %d",
			need, c.Lanes.Count, len(c.Tilt.LaneThresholds))
	}
	return nil
}

// TickInterval returns the game tick period.
func (t TimingConfig) TickInterval() time.Duration {
	return time.Duration(t.TickMs) * time.Millisecond
}

// SpawnInterval returns the spawn period for a base speed factor.
// A faster base speed spawns more often.
func (t TimingConfig) SpawnInterval(baseSpeedFactor float64) time.Duration {
	if baseSpeedFactor <= 0 {
		baseSpeedFactor = 1
	}
	return time.Duration(float64(t.SpawnIntervalMs)/baseSpeedFactor) * time.Millisecond
}

// RestartDelay returns the pause between game over and the automatic restart.
func (t TimingConfig) RestartDelay() time.Duration {
	return time.Duration(t.RestartDelayMs) * time.Millisecond
}

// SensorDebounce returns the minimum spacing between accepted lane updates from tilt.
func (t TimingConfig) SensorDebounce() time.Duration {
	return time.Duration(t.SensorDebounceMs) * time.Millisecond
}

// Vibrate returns the haptic pulse length used on collision.
func (e EffectsConfig) Vibrate() time.Duration {
	return time.Duration(e.VibrateMs) * time.Millisecond
}
