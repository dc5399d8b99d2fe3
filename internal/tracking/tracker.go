package tracking

// Config holds the tunable parameters for a Tracker.
type Config struct {
	Alpha    float64
	MaxJump  float64
	DeadZone float64
	Gain     float64
	InvertX  bool
}

// DefaultConfig returns a Config with the stock tuning values.
func DefaultConfig() Config {
	return Config{
		Alpha:    DefaultAlpha,
		MaxJump:  DefaultMaxJump,
		DeadZone: DefaultDeadZone,
		Gain:     DefaultGain,
		InvertX:  true,
	}
}

// Tracker carries the per-cycle tracking state: the smoothing filter and
// the previous filtered position the mapper diffs against. It is owned by
// the control loop and must not be shared across goroutines.
type Tracker struct {
	filter *Filter
	mapper *Mapper
	prev   Position
	seen   bool
}

// NewTracker creates a Tracker from the given tuning parameters.
func NewTracker(cfg Config) *Tracker {
	return &Tracker{
		filter: NewFilter(cfg.Alpha, cfg.MaxJump),
		mapper: NewMapper(cfg.DeadZone, cfg.Gain, cfg.InvertX),
	}
}

// Observe feeds one cycle's raw detection (nil when the emitter was not
// found) through the filter and mapper. It returns the pointer delta for
// this cycle; the delta is zero until the tracker has two filtered
// positions to diff.
func (t *Tracker) Observe(raw *Position) Delta {
	cur, ok := t.filter.Update(raw)
	if !ok {
		return Delta{}
	}

	// First acquisition establishes the reference point without moving
	// the cursor.
	if !t.seen {
		t.prev = cur
		t.seen = true
		return Delta{}
	}

	d := t.mapper.Map(t.prev, cur)
	t.prev = cur
	return d
}

// Position returns the current filtered position; the boolean is false
// while the tracker is uninitialized.
func (t *Tracker) Position() (Position, bool) {
	return t.filter.Position()
}

// Retune replaces the tracker's tuning parameters in place. The filtered
// position survives so a live profile edit does not jolt the cursor.
func (t *Tracker) Retune(cfg Config) {
	alpha := cfg.Alpha
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultAlpha
	}
	t.filter.Alpha = alpha
	t.filter.MaxJump = cfg.MaxJump
	t.mapper.DeadZone = cfg.DeadZone
	gain := cfg.Gain
	if gain <= 0 {
		gain = DefaultGain
	}
	t.mapper.Gain = gain
	t.mapper.InvertX = cfg.InvertX
}

// Reset discards all tracking state, returning to the uninitialized
// condition.
func (t *Tracker) Reset() {
	t.filter.Reset()
	t.prev = Position{}
	t.seen = false
}
