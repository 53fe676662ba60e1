// Package config provides YAML-based tuning and launch options for the racer.
package config

// Config contains every tunable of the racer.
type Config struct {
	Lanes    LanesConfig    `yaml:"lanes"`
	Timing   TimingConfig   `yaml:"timing"`
	Speed    SpeedConfig    `yaml:"speed"`
	Entities EntitiesConfig `yaml:"entities"`
	Hitbox   HitboxConfig   `yaml:"hitbox"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Spawn    SpawnConfig    `yaml:"spawn"`
	Tilt     TiltConfig     `yaml:"tilt"`
	Effects  EffectsConfig  `yaml:"effects"`
}

// LanesConfig defines the lane split of the playfield.
type LanesConfig struct {
	Count int `yaml:"count"`
}

// TimingConfig holds every scheduler period, in milliseconds.
type TimingConfig struct {
	TickMs           int `yaml:"tick_ms"`
	SpawnIntervalMs  int `yaml:"spawn_interval_ms"`
	RestartDelayMs   int `yaml:"restart_delay_ms"`
	SensorDebounceMs int `yaml:"sensor_debounce_ms"`
}

// SpeedConfig defines entity speed and the base speed factor of each preset.
type SpeedConfig struct {
	Base          float64 `yaml:"base"`           // World units per tick at factor 1.0
	DistanceScale float64 `yaml:"distance_scale"` // Units of travel per distance point
	SlowFactor    float64 `yaml:"slow_factor"`
	FastFactor    float64 `yaml:"fast_factor"`
}

// EntitiesConfig defines entity sizes in world units.
type EntitiesConfig struct {
	CarWidth        float64 `yaml:"car_width"`
	CarHeight       float64 `yaml:"car_height"`
	CarBottomMargin float64 `yaml:"car_bottom_margin"`
	ObstacleSize    float64 `yaml:"obstacle_size"`
	CoinSize        float64 `yaml:"coin_size"`
}

// HitboxConfig defines hitbox shrink factors.
type HitboxConfig struct {
	CarScale      float64 `yaml:"car_scale"`
	ObstacleScale float64 `yaml:"obstacle_scale"`
	CoinBonus     float64 `yaml:"coin_bonus"` // Added to CarScale for coin pickups
}

// ScoringConfig defines lives, score deltas and history size.
type ScoringConfig struct {
	InitialLives   int `yaml:"initial_lives"`
	DodgePoints    int `yaml:"dodge_points"`
	CoinPoints     int `yaml:"coin_points"`
	MaxSavedScores int `yaml:"max_saved_scores"`
}

// SpawnConfig defines the obstacle/coin mix.
type SpawnConfig struct {
	ObstacleChance float64 `yaml:"obstacle_chance"` // Probability that a spawn is an obstacle
}

// TiltConfig defines the roll bands and pitch speed bonus.
type TiltConfig struct {
	// LaneThresholds are ascending positive roll edges in degrees. Crossing
	// the k-th edge moves the target k+1 lanes away from center.
	LaneThresholds []float64 `yaml:"lane_thresholds"`
	PitchThreshold float64   `yaml:"pitch_threshold"`
	BonusFast      float64   `yaml:"bonus_fast"`
	BonusSlow      float64   `yaml:"bonus_slow"`
}

// EffectsConfig defines feedback effects.
type EffectsConfig struct {
	VibrateMs int `yaml:"vibrate_ms"`
}
