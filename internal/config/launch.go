package config

import "fmt"

// SpeedSetting is the difficulty picked at launch.
type SpeedSetting string

const (
	SpeedSlow SpeedSetting = "slow"
	SpeedFast SpeedSetting = "fast"
)

// ControlMode selects how the car is steered.
type ControlMode string

const (
	ControlButtons ControlMode = "buttons"
	ControlTilt    ControlMode = "tilt"
)

// Launch holds the options fixed for the lifetime of a session.
type Launch struct {
	Mode  ControlMode
	Speed SpeedSetting
}

// ParseSpeedSetting maps a CLI value to a SpeedSetting. Empty means slow.
func ParseSpeedSetting(s string) (SpeedSetting, error) {
	switch s {
	case "", "slow":
		return SpeedSlow, nil
	case "fast":
		return SpeedFast, nil
	default:
		return "", fmt.Errorf("config: unknown speed %q (want slow or fast)", s)
	}
}

// ParseControlMode maps a CLI value to a ControlMode. Empty means buttons.
func ParseControlMode(s string) (ControlMode, error) {
	switch s {
	case "", "buttons":
		return ControlButtons, nil
	case "tilt", "sensor":
		return ControlTilt, nil
	default:
		return "", fmt.Errorf("config: unknown control mode %q (want buttons or tilt)", s)
	}
}

// BaseSpeedFactor returns the speed multiplier for a setting.
func (c Config) BaseSpeedFactor(s SpeedSetting) float64 {
	if s == SpeedFast {
		return c.Speed.FastFactor
	}
	return c.Speed.SlowFactor
}
