package detector

import (
	"sync"

	"gocv.io/x/gocv"

	"github.com/ayusman/irpoint/internal/tracking"
)

// MockDetector is a test implementation of the Detector interface. It
// plays back a scripted sequence of positions, one per Detect call,
// ignoring the frame contents.
type MockDetector struct {
	positions []*tracking.Position
	index     int
	err       error
	mu        sync.Mutex
}

// NewMockDetector creates a MockDetector with no scripted positions;
// every Detect call reports "not found" until SetPositions is called.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetPositions sets the sequence of results returned by successive
// Detect calls. A nil entry scripts a detection miss. After the sequence
// is exhausted the last entry repeats.
func (m *MockDetector) SetPositions(positions []*tracking.Position) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions = positions
	m.index = 0
}

// SetError sets the error returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Detect returns the next scripted position or error.
func (m *MockDetector) Detect(frame *gocv.Mat) (*tracking.Position, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if len(m.positions) == 0 {
		return nil, nil
	}

	pos := m.positions[m.index]
	if m.index < len(m.positions)-1 {
		m.index++
	}

	if pos == nil {
		return nil, nil
	}
	p := *pos
	return &p, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}
