package tracking

// Mapper default parameters.
const (
	// DefaultDeadZone is the minimum filtered displacement, in pixels,
	// before any pointer movement is emitted.
	DefaultDeadZone = 3.0
	// DefaultGain scales pixel displacement into pointer units.
	DefaultGain = 1.0
)

// speedBand pairs a displacement threshold with the extra scale applied
// above it. Larger emitter moves get a larger multiplier, giving fine
// control for small adjustments and faster traversal for sweeps.
type speedBand struct {
	minDistance float64
	scale       float64
}

// speedBands must be ordered from largest threshold to smallest.
var speedBands = []speedBand{
	{minDistance: 20, scale: 1.7},
	{minDistance: 9, scale: 1.4},
	{minDistance: 6, scale: 1.2},
}

// Mapper converts frame-to-frame displacement of the filtered position
// into a pointer delta, applying a dead-zone and a banded gain curve.
type Mapper struct {
	// DeadZone is the minimum displacement magnitude in pixels; smaller
	// moves produce a zero delta.
	DeadZone float64
	// Gain is the base pixel-to-pointer scale factor.
	Gain float64
	// InvertX mirrors the X axis. A webcam facing the user sees the
	// emitter move opposite to the intended cursor direction.
	InvertX bool
}

// NewMapper creates a Mapper with the given dead-zone and gain.
// Non-positive gain falls back to DefaultGain.
func NewMapper(deadZone, gain float64, invertX bool) *Mapper {
	if gain <= 0 {
		gain = DefaultGain
	}
	return &Mapper{DeadZone: deadZone, Gain: gain, InvertX: invertX}
}

// Map computes the pointer delta for a move from prev to cur. It always
// returns a delta; displacements inside the dead-zone return a zero one.
func (m *Mapper) Map(prev, cur Position) Delta {
	dx := cur.X - prev.X
	dy := cur.Y - prev.Y

	dist := Distance(prev, cur)
	if dist < m.DeadZone {
		return Delta{}
	}

	scale := m.Gain * curveScale(dist)
	if m.InvertX {
		dx = -dx
	}

	return Delta{DX: dx * scale, DY: dy * scale}
}

// curveScale returns the speed-band multiplier for a displacement.
func curveScale(dist float64) float64 {
	for _, b := range speedBands {
		if dist > b.minDistance {
			return b.scale
		}
	}
	return 1.0
}
