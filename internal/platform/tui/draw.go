package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/lane-rush/internal/config"
	"github.com/vovakirdan/lane-rush/internal/core"
	"github.com/vovakirdan/lane-rush/internal/racer"
)

// World units covered by one terminal cell. Cells are about twice as tall
// as they are wide, so rows cover twice the distance.
const (
	cellWidth  = 10.0
	cellHeight = 20.0

	hudRows  = 1 // Status bar above the playfield
	helpRows = 1 // Key help below the screen buffer
)

// PlayfieldSize converts a terminal size to playfield world units.
func PlayfieldSize(termW, termH int) (float64, float64) {
	rows := termH - hudRows - helpRows
	if termW <= 0 || rows <= 0 {
		return 0, 0
	}
	return float64(termW) * cellWidth, float64(rows) * cellHeight
}

// hud carries what the status bar shows besides the snapshot.
type hud struct {
	Best          int
	Notice        string
	Flash         bool
	DistanceScale float64
	TiltURL       string
}

// cells converts a world box to the screen cells it touches.
func cells(b core.Box) core.Rect {
	x0 := int(math.Floor(b.Left / cellWidth))
	x1 := int(math.Ceil(b.Right / cellWidth))
	y0 := int(math.Floor(b.Top/cellHeight)) + hudRows
	y1 := int(math.Ceil(b.Bottom/cellHeight)) + hudRows
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

// clipTop drops the rows of r that would land on the status bar.
func clipTop(r core.Rect) core.Rect {
	if r.Y < hudRows {
		r.H -= hudRows - r.Y
		r.Y = hudRows
	}
	return r
}

// drawFrame renders the snapshot into s.
func drawFrame(s *core.Screen, snap racer.Snapshot, h hud) {
	s.Clear()

	if snap.Layout.Known() {
		drawRoad(s, snap, h)
		for _, e := range snap.Coins {
			s.DrawRect(clipTop(cells(e.Box())), '●', core.ColorBrightYellow)
		}
		for _, e := range snap.Obstacles {
			s.DrawRect(clipTop(cells(e.Box())), '█', core.ColorRed)
		}
		drawCar(s, snap.Car)
	}

	if h.Flash {
		s.DrawBox(core.NewRect(0, hudRows, s.Width(), s.Height()-hudRows), core.ColorBrightRed)
	}

	drawHUD(s, snap, h)

	switch snap.State {
	case racer.StatePausedManual:
		drawOverlay(s, core.ColorBrightCyan, "PAUSED", "press p to resume")
	case racer.StatePausedSystem:
		drawOverlay(s, core.ColorBrightCyan, "PAUSED", "focus lost")
	case racer.StateGameOver:
		drawOverlay(s, core.ColorBrightRed, "GAME OVER",
			fmt.Sprintf("Score: %d", snap.Score),
			fmt.Sprintf("Best: %d", max(h.Best, snap.Score)),
			"restarting...")
	default:
		if h.Notice != "" {
			drawCentered(s, hudRows+1, h.Notice, core.ColorYellow)
		}
	}
}

func drawRoad(s *core.Screen, snap racer.Snapshot, h hud) {
	lanes := len(snap.Layout.Centers)
	laneWidth := snap.Layout.Width / float64(lanes)

	// Dashes scroll with the distance travelled.
	scroll := int(float64(snap.Distance) * h.DistanceScale / cellHeight)
	for i := 1; i < lanes; i++ {
		x := int(math.Round(float64(i) * laneWidth / cellWidth))
		for y := hudRows; y < s.Height(); y++ {
			if ((y-scroll)%4+4)%4 < 2 {
				s.SetColored(x, y, '╎', core.ColorGray)
			}
		}
	}
}

func drawCar(s *core.Screen, car core.Box) {
	if car.Width() <= 0 {
		return
	}
	r := cells(car)
	s.DrawRect(r, '▒', core.ColorCyan)
	s.DrawBox(r, core.ColorBrightCyan)
}

func drawHUD(s *core.Screen, snap racer.Snapshot, h hud) {
	s.DrawRect(core.NewRect(0, 0, s.Width(), hudRows), ' ', core.ColorDefault)

	x := 0
	put := func(text string, c core.Color) {
		s.DrawTextColored(x, 0, text, c)
		x += len([]rune(text))
	}

	put(fmt.Sprintf(" SCORE %d  ", snap.Score), core.ColorWhite)
	put("LIVES ", core.ColorWhite)
	put(strings.Repeat("♥", snap.Lives), core.ColorBrightRed)
	put("  ", core.ColorDefault)
	put(fmt.Sprintf("DIST %dm  ", snap.Distance), core.ColorWhite)
	put(fmt.Sprintf("BEST %d  ", max(h.Best, snap.Score)), core.ColorGray)
	put(fmt.Sprintf("LANE %d/%d", snap.Lane+1, max(len(snap.Layout.Centers), 1)), core.ColorGray)

	if snap.Mode == config.ControlTilt {
		put(fmt.Sprintf("  TILT x%.1f", snap.SpeedBonus), core.ColorOrange)
		if h.TiltURL != "" {
			put("  "+h.TiltURL, core.ColorGray)
		}
	}
}

func drawOverlay(s *core.Screen, c core.Color, title string, lines ...string) {
	width := len([]rune(title))
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	width += 6
	height := len(lines) + 4

	x := (s.Width() - width) / 2
	y := hudRows + (s.Height()-hudRows-height)/2
	r := core.NewRect(x, y, width, height)

	s.DrawRect(r, ' ', core.ColorDefault)
	s.DrawBox(r, c)
	drawCentered(s, y+1, title, c)
	for i, l := range lines {
		drawCentered(s, y+3+i, l, core.ColorWhite)
	}
}

func drawCentered(s *core.Screen, y int, text string, c core.Color) {
	x := (s.Width() - len([]rune(text))) / 2
	s.DrawTextColored(x, y, text, c)
}
