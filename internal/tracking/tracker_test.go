package tracking

import "testing"

func defaultTestConfig() Config {
	return Config{
		Alpha:    0.5,
		MaxJump:  150,
		DeadZone: 1.0,
		Gain:     1.0,
		InvertX:  false,
	}
}

func TestTracker_NoMovementOnFirstAcquisition(t *testing.T) {
	tr := NewTracker(defaultTestConfig())

	d := tr.Observe(&Position{X: 50, Y: 50})
	if !d.IsZero() {
		t.Errorf("first acquisition should emit no movement, got (%f, %f)", d.DX, d.DY)
	}

	pos, ok := tr.Position()
	if !ok || pos.X != 50 || pos.Y != 50 {
		t.Errorf("position after first acquisition = (%f, %f), want (50, 50)", pos.X, pos.Y)
	}
}

func TestTracker_SmoothingStepScenario(t *testing.T) {
	// Frame 1: emitter at (50,50). Frame 2: emitter at (54,50) with
	// alpha=0.5 and a 1px dead-zone; the filtered position moves halfway
	// and a (2,0) delta is emitted.
	tr := NewTracker(defaultTestConfig())

	tr.Observe(&Position{X: 50, Y: 50})
	d := tr.Observe(&Position{X: 54, Y: 50})

	pos, _ := tr.Position()
	if pos.X != 52 || pos.Y != 50 {
		t.Errorf("filtered position = (%f, %f), want (52, 50)", pos.X, pos.Y)
	}
	if d.DX != 2 || d.DY != 0 {
		t.Errorf("delta = (%f, %f), want (2, 0)", d.DX, d.DY)
	}
}

func TestTracker_HoldThroughDetectionMiss(t *testing.T) {
	tr := NewTracker(defaultTestConfig())
	tr.Observe(&Position{X: 50, Y: 50})

	for i := 0; i < 10; i++ {
		tr.Observe(&Position{X: 50, Y: 50})
	}

	before, _ := tr.Position()
	d := tr.Observe(nil)
	after, _ := tr.Position()

	if !d.IsZero() {
		t.Errorf("a miss should emit no movement, got (%f, %f)", d.DX, d.DY)
	}
	if before != after {
		t.Errorf("position changed across a miss: (%f, %f) -> (%f, %f)", before.X, before.Y, after.X, after.Y)
	}
}

func TestTracker_NoDeltaBeforeInitialization(t *testing.T) {
	tr := NewTracker(defaultTestConfig())

	for i := 0; i < 5; i++ {
		if d := tr.Observe(nil); !d.IsZero() {
			t.Fatalf("uninitialized tracker emitted movement (%f, %f)", d.DX, d.DY)
		}
	}
}

func TestTracker_StationaryEmitterEmitsNothing(t *testing.T) {
	tr := NewTracker(defaultTestConfig())

	at := Position{X: 120, Y: 90}
	for i := 0; i < 20; i++ {
		if d := tr.Observe(&at); !d.IsZero() {
			t.Fatalf("stationary emitter emitted movement on cycle %d: (%f, %f)", i, d.DX, d.DY)
		}
	}

	pos, _ := tr.Position()
	if pos != at {
		t.Errorf("position = (%f, %f), want (%f, %f)", pos.X, pos.Y, at.X, at.Y)
	}
}

func TestTracker_JumpRejectionHoldsDelta(t *testing.T) {
	tr := NewTracker(defaultTestConfig())
	tr.Observe(&Position{X: 50, Y: 50})

	d := tr.Observe(&Position{X: 400, Y: 400})
	if !d.IsZero() {
		t.Errorf("rejected jump should emit no movement, got (%f, %f)", d.DX, d.DY)
	}

	pos, _ := tr.Position()
	if pos.X != 50 || pos.Y != 50 {
		t.Errorf("position after rejected jump = (%f, %f), want (50, 50)", pos.X, pos.Y)
	}
}

func TestTracker_Retune(t *testing.T) {
	tr := NewTracker(defaultTestConfig())
	tr.Observe(&Position{X: 50, Y: 50})

	cfg := defaultTestConfig()
	cfg.Gain = 3.0
	tr.Retune(cfg)

	// Position survives the retune.
	pos, ok := tr.Position()
	if !ok || pos.X != 50 {
		t.Fatalf("position lost across retune: (%f, %f), ok=%v", pos.X, pos.Y, ok)
	}

	d := tr.Observe(&Position{X: 54, Y: 50})
	if d.DX != 6 {
		t.Errorf("DX after retune = %f, want 6 (delta 2 at gain 3)", d.DX)
	}
}

func TestTracker_Reset(t *testing.T) {
	tr := NewTracker(defaultTestConfig())
	tr.Observe(&Position{X: 50, Y: 50})

	tr.Reset()
	if _, ok := tr.Position(); ok {
		t.Error("reset tracker should be uninitialized")
	}

	// First sample after reset is an acquisition, not a move.
	if d := tr.Observe(&Position{X: 200, Y: 200}); !d.IsZero() {
		t.Errorf("first observation after reset emitted movement (%f, %f)", d.DX, d.DY)
	}
}
