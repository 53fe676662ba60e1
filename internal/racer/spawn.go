package racer

import (
	"math/rand"

	"github.com/vovakirdan/lane-rush/internal/config"
)

// Spawner creates obstacles and coins at the top of random lanes.
type Spawner struct {
	rng            *rand.Rand
	laneCount      int
	obstacleChance float64
	obstacleSize   float64
	coinSize       float64
	nextID         uint64
}

// NewSpawner creates a spawner with the given RNG seed.
func NewSpawner(seed int64, cfg config.Config) *Spawner {
	return &Spawner{
		rng:            rand.New(rand.NewSource(seed)),
		laneCount:      cfg.Lanes.Count,
		obstacleChance: cfg.Spawn.ObstacleChance,
		obstacleSize:   cfg.Entities.ObstacleSize,
		coinSize:       cfg.Entities.CoinSize,
	}
}

// Next rolls the kind and lane of a new entity and places it centered on
// that lane, just above the top edge of the playfield.
func (s *Spawner) Next(layout Layout) (Entity, error) {
	if !layout.Known() {
		return Entity{}, ErrLayoutUnknown
	}

	kind := KindCoin
	size := s.coinSize
	if s.rng.Float64() < s.obstacleChance {
		kind = KindObstacle
		size = s.obstacleSize
	}
	lane := s.rng.Intn(s.laneCount)

	center, err := layout.LaneCenter(lane)
	if err != nil {
		return Entity{}, err
	}

	s.nextID++
	return Entity{
		ID:     s.nextID,
		Kind:   kind,
		Lane:   lane,
		X:      center - size/2,
		Y:      -size,
		Width:  size,
		Height: size,
	}, nil
}
