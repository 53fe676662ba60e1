package racer

import "github.com/vovakirdan/lane-rush/internal/core"

// Collide finds the first obstacle, in spawn order, whose hitbox overlaps
// car and removes it. At most one obstacle is removed per call.
func Collide(car core.Box, obstacles []Entity, obstacleScale float64) ([]Entity, *Entity) {
	for i, e := range obstacles {
		if !e.sized() {
			continue
		}
		if core.Overlaps(car, e.Hitbox(obstacleScale)) {
			hit := e
			return append(obstacles[:i], obstacles[i+1:]...), &hit
		}
	}
	return obstacles, nil
}

// Collect removes every coin whose full box overlaps car and returns them.
func Collect(car core.Box, coins []Entity) ([]Entity, []Entity) {
	var picked []Entity
	kept := coins[:0]
	for _, e := range coins {
		if e.sized() && core.Overlaps(car, e.Box()) {
			picked = append(picked, e)
			continue
		}
		kept = append(kept, e)
	}
	return kept, picked
}
