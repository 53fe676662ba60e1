// Package racer implements the lane racer engine: lane layout, spawning,
// motion, collision and scoring, tilt steering and the session state machine.
// It has no terminal dependencies; the platform layer drives it through Loop
// and renders the Snapshot it publishes.
package racer

import (
	"errors"
	"fmt"
)

var (
	// ErrLayoutUnknown is returned by position-dependent operations before
	// the playfield dimensions are known.
	ErrLayoutUnknown = errors.New("racer: layout not initialized")

	// ErrLaneOutOfRange is returned when positioning with an invalid lane index.
	ErrLaneOutOfRange = errors.New("racer: lane index out of range")
)

// ComputeLaneCenters splits screenWidth into laneCount equal segments and
// returns the x-midpoint of each. A non-positive width yields all zeros.
func ComputeLaneCenters(screenWidth float64, laneCount int) []float64 {
	if laneCount <= 0 {
		return nil
	}
	centers := make([]float64, laneCount)
	if screenWidth <= 0 {
		return centers
	}
	laneWidth := screenWidth / float64(laneCount)
	for i := range centers {
		centers[i] = laneWidth/2 + float64(i)*laneWidth
	}
	return centers
}

// LaneOffsetFromCenter returns the horizontal translation that moves an
// entity anchored at screen center onto the given lane's center.
func LaneOffsetFromCenter(lane int, screenWidth float64, centers []float64) (float64, error) {
	if !centersKnown(centers) {
		return 0, ErrLayoutUnknown
	}
	if lane < 0 || lane >= len(centers) {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrLaneOutOfRange, lane, len(centers))
	}
	return centers[lane] - screenWidth/2, nil
}

func centersKnown(centers []float64) bool {
	for _, c := range centers {
		if c != 0 {
			return true
		}
	}
	return false
}

// Layout is the playfield geometry derived from the screen dimensions.
// The zero value is an unknown layout.
type Layout struct {
	Width   float64
	Height  float64
	Centers []float64
}

// NewLayout computes the lane centers for a width x height playfield.
func NewLayout(width, height float64, laneCount int) (Layout, error) {
	if width <= 0 || height <= 0 {
		return Layout{}, fmt.Errorf("%w: playfield %vx%v", ErrLayoutUnknown, width, height)
	}
	return Layout{
		Width:   width,
		Height:  height,
		Centers: ComputeLaneCenters(width, laneCount),
	}, nil
}

// Known reports whether lanes can be positioned.
func (l Layout) Known() bool {
	return l.Width > 0 && l.Height > 0 && centersKnown(l.Centers)
}

// LaneCenter returns the x-coordinate of a lane's center.
func (l Layout) LaneCenter(lane int) (float64, error) {
	if !l.Known() {
		return 0, ErrLayoutUnknown
	}
	if lane < 0 || lane >= len(l.Centers) {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrLaneOutOfRange, lane, len(l.Centers))
	}
	return l.Centers[lane], nil
}

// Offset is LaneOffsetFromCenter for this layout.
func (l Layout) Offset(lane int) (float64, error) {
	return LaneOffsetFromCenter(lane, l.Width, l.Centers)
}

func (l Layout) clone() Layout {
	c := l
	c.Centers = append([]float64(nil), l.Centers...)
	return c
}
