package tracking

// Filter default parameters.
const (
	// DefaultAlpha is the exponential smoothing factor. Values near 1
	// favor responsiveness, values near 0 favor stability.
	DefaultAlpha = 0.5
	// DefaultMaxJump is the largest raw-to-filtered displacement, in
	// pixels, accepted as genuine motion within a single cycle. Larger
	// jumps are treated as misdetections (a reflection catching the
	// threshold for a frame) and discarded.
	DefaultMaxJump = 150.0
)

// Filter smooths the raw centroid stream with an exponential moving
// average and rejects implausible single-cycle jumps.
//
// The filter starts uninitialized. The first accepted sample is adopted
// as-is so the cursor does not lag toward the emitter from some default
// origin; subsequent samples are blended.
type Filter struct {
	// Alpha is the smoothing factor in (0, 1].
	Alpha float64
	// MaxJump is the implausible-jump threshold in pixels. Zero or
	// negative disables jump rejection.
	MaxJump float64

	pos         Position
	initialized bool
}

// NewFilter creates a Filter with the given smoothing factor and jump
// threshold. Out-of-range alpha values fall back to DefaultAlpha.
func NewFilter(alpha, maxJump float64) *Filter {
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultAlpha
	}
	return &Filter{Alpha: alpha, MaxJump: maxJump}
}

// Update feeds one cycle's raw detection into the filter and returns the
// current filtered position. A nil raw sample means the emitter was not
// found this cycle; the filter holds its previous estimate rather than
// snapping anywhere. The boolean is false until the filter has accepted
// its first sample.
func (f *Filter) Update(raw *Position) (Position, bool) {
	if raw == nil {
		return f.pos, f.initialized
	}

	if !f.initialized {
		f.pos = *raw
		f.initialized = true
		return f.pos, true
	}

	// A jump larger than MaxJump in one cycle is noise, not motion.
	if f.MaxJump > 0 && Distance(*raw, f.pos) > f.MaxJump {
		return f.pos, true
	}

	f.pos.X += f.Alpha * (raw.X - f.pos.X)
	f.pos.Y += f.Alpha * (raw.Y - f.pos.Y)

	return f.pos, true
}

// Position returns the current filtered position. The boolean is false
// if the filter has not yet accepted a sample.
func (f *Filter) Position() (Position, bool) {
	return f.pos, f.initialized
}

// Reset returns the filter to its uninitialized state.
func (f *Filter) Reset() {
	f.pos = Position{}
	f.initialized = false
}
