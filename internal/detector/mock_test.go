package detector

import (
	"errors"
	"testing"

	"github.com/ayusman/irpoint/internal/tracking"
)

func TestMockDetector_PlaysBackSequence(t *testing.T) {
	m := NewMockDetector()
	m.SetPositions([]*tracking.Position{
		{X: 10, Y: 10},
		nil,
		{X: 20, Y: 20},
	})

	pos, err := m.Detect(nil)
	if err != nil || pos == nil || pos.X != 10 {
		t.Fatalf("first Detect = %v, %v, want (10, 10)", pos, err)
	}

	pos, _ = m.Detect(nil)
	if pos != nil {
		t.Fatalf("second Detect = %v, want miss", pos)
	}

	// Last entry repeats once the sequence is exhausted.
	for i := 0; i < 3; i++ {
		pos, _ = m.Detect(nil)
		if pos == nil || pos.X != 20 {
			t.Fatalf("Detect after sequence end = %v, want (20, 20)", pos)
		}
	}
}

func TestMockDetector_Empty(t *testing.T) {
	m := NewMockDetector()

	pos, err := m.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if pos != nil {
		t.Errorf("Detect() = %v, want miss with no scripted positions", pos)
	}
}

func TestMockDetector_Error(t *testing.T) {
	m := NewMockDetector()
	wantErr := errors.New("decode failed")
	m.SetError(wantErr)

	if _, err := m.Detect(nil); !errors.Is(err, wantErr) {
		t.Errorf("Detect() error = %v, want %v", err, wantErr)
	}
}
