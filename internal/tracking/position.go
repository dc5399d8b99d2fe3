// Package tracking converts a stream of raw emitter detections into smoothed
// positions and relative pointer motion.
package tracking

import "math"

// Position is a sub-pixel location in frame coordinates
// (X = column, Y = row).
type Position struct {
	X float64
	Y float64
}

// Delta is a signed pointer displacement in actuator units.
type Delta struct {
	DX float64
	DY float64
}

// IsZero reports whether the delta carries no movement.
func (d Delta) IsZero() bool {
	return d.DX == 0 && d.DY == 0
}

// Distance returns the Euclidean distance between two positions.
func Distance(a, b Position) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
