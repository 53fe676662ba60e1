package racer

// MotionResult reports what left the playfield during one advance.
type MotionResult struct {
	Dodged      int // Obstacles that passed the bottom edge
	CoinsMissed int
}

// Advance moves every entity down by dy and drops those whose top edge is
// strictly below height. Both slices are filtered in place and returned.
func Advance(obstacles, coins []Entity, dy, height float64) ([]Entity, []Entity, MotionResult) {
	var res MotionResult

	keptObstacles := obstacles[:0]
	for _, e := range obstacles {
		e.Y += dy
		if e.Y > height {
			res.Dodged++
			continue
		}
		keptObstacles = append(keptObstacles, e)
	}

	keptCoins := coins[:0]
	for _, e := range coins {
		e.Y += dy
		if e.Y > height {
			res.CoinsMissed++
			continue
		}
		keptCoins = append(keptCoins, e)
	}

	return keptObstacles, keptCoins, res
}
