package tracking

import (
	"math"
	"testing"
)

func TestFilter_FirstSampleAdoptedExactly(t *testing.T) {
	f := NewFilter(0.5, 0)

	if _, ok := f.Position(); ok {
		t.Fatal("new filter should be uninitialized")
	}

	pos, ok := f.Update(&Position{X: 50, Y: 50})
	if !ok {
		t.Fatal("filter should initialize on first sample")
	}
	if pos.X != 50 || pos.Y != 50 {
		t.Errorf("first sample should be adopted without smoothing, got (%f, %f)", pos.X, pos.Y)
	}
}

func TestFilter_HoldsOnMissingSample(t *testing.T) {
	f := NewFilter(0.5, 0)
	f.Update(&Position{X: 10, Y: 20})

	pos, ok := f.Update(nil)
	if !ok {
		t.Fatal("filter should stay initialized through a miss")
	}
	if pos.X != 10 || pos.Y != 20 {
		t.Errorf("position should hold through a miss, got (%f, %f)", pos.X, pos.Y)
	}
}

func TestFilter_MissBeforeInitialization(t *testing.T) {
	f := NewFilter(0.5, 0)

	if _, ok := f.Update(nil); ok {
		t.Error("filter should remain uninitialized when the first samples are misses")
	}
}

func TestFilter_ExponentialSmoothing(t *testing.T) {
	tests := []struct {
		name  string
		alpha float64
		raw   Position
		want  Position
	}{
		{
			name:  "half step",
			alpha: 0.5,
			raw:   Position{X: 54, Y: 50},
			want:  Position{X: 52, Y: 50},
		},
		{
			name:  "full responsiveness",
			alpha: 1.0,
			raw:   Position{X: 54, Y: 58},
			want:  Position{X: 54, Y: 58},
		},
		{
			name:  "heavy damping",
			alpha: 0.1,
			raw:   Position{X: 60, Y: 50},
			want:  Position{X: 51, Y: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilter(tt.alpha, 0)
			f.Update(&Position{X: 50, Y: 50})

			pos, _ := f.Update(&tt.raw)
			if math.Abs(pos.X-tt.want.X) > 1e-9 || math.Abs(pos.Y-tt.want.Y) > 1e-9 {
				t.Errorf("got (%f, %f), want (%f, %f)", pos.X, pos.Y, tt.want.X, tt.want.Y)
			}
		})
	}
}

func TestFilter_ConvergesToStationaryEmitter(t *testing.T) {
	f := NewFilter(0.5, 0)
	f.Update(&Position{X: 0, Y: 0})

	target := Position{X: 100, Y: 40}
	var pos Position
	for i := 0; i < 50; i++ {
		pos, _ = f.Update(&target)
	}

	if Distance(pos, target) > 1e-6 {
		t.Errorf("filter did not converge: got (%f, %f), want (%f, %f)", pos.X, pos.Y, target.X, target.Y)
	}
}

func TestFilter_RejectsImplausibleJump(t *testing.T) {
	f := NewFilter(0.5, 100)
	f.Update(&Position{X: 50, Y: 50})

	// 300px jump in one cycle is a misdetection, not motion.
	pos, ok := f.Update(&Position{X: 350, Y: 50})
	if !ok {
		t.Fatal("filter should stay initialized after a rejected sample")
	}
	if pos.X != 50 || pos.Y != 50 {
		t.Errorf("implausible jump should be discarded, got (%f, %f)", pos.X, pos.Y)
	}

	// A plausible follow-up sample is accepted normally.
	pos, _ = f.Update(&Position{X: 60, Y: 50})
	if pos.X != 55 {
		t.Errorf("plausible sample after rejection should smooth normally, got X=%f", pos.X)
	}
}

func TestFilter_JumpRejectionDisabled(t *testing.T) {
	f := NewFilter(1.0, 0)
	f.Update(&Position{X: 0, Y: 0})

	pos, _ := f.Update(&Position{X: 500, Y: 500})
	if pos.X != 500 || pos.Y != 500 {
		t.Errorf("with MaxJump <= 0 any displacement should be accepted, got (%f, %f)", pos.X, pos.Y)
	}
}

func TestFilter_Reset(t *testing.T) {
	f := NewFilter(0.5, 0)
	f.Update(&Position{X: 10, Y: 10})

	f.Reset()
	if _, ok := f.Position(); ok {
		t.Error("reset filter should be uninitialized")
	}
}

func TestNewFilter_AlphaFallback(t *testing.T) {
	tests := []struct {
		name  string
		alpha float64
	}{
		{name: "zero", alpha: 0},
		{name: "negative", alpha: -0.3},
		{name: "above one", alpha: 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilter(tt.alpha, 0)
			if f.Alpha != DefaultAlpha {
				t.Errorf("Alpha = %f, want %f", f.Alpha, DefaultAlpha)
			}
		})
	}
}
