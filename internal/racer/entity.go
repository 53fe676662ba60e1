package racer

import "github.com/vovakirdan/lane-rush/internal/core"

// Kind tags an entity as an obstacle or a coin.
type Kind int

const (
	KindObstacle Kind = iota
	KindCoin
)

func (k Kind) String() string {
	switch k {
	case KindObstacle:
		return "obstacle"
	case KindCoin:
		return "coin"
	default:
		return "unknown"
	}
}

// Entity is an obstacle or coin scrolling down a lane.
// X and Y are the top-left corner in world units.
type Entity struct {
	ID     uint64
	Kind   Kind
	Lane   int
	X, Y   float64
	Width  float64
	Height float64
}

// Box returns the full visual box.
func (e Entity) Box() core.Box {
	return core.FullBox(e.X, e.Y, e.Width, e.Height)
}

// Hitbox returns the box shrunk by scale around its midpoint.
func (e Entity) Hitbox(scale float64) core.Box {
	return core.Hitbox(e.X, e.Y, e.Width, e.Height, scale)
}

func (e Entity) sized() bool {
	return e.Width > 0 && e.Height > 0
}
