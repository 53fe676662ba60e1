package core

// Color is a foreground color for a screen cell. The platform maps it to
// an ANSI 256-color style.
type Color uint8

// Colors used by the racer's renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorYellow
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightYellow
	ColorBrightCyan
	ColorOrange
	ColorGray
)
