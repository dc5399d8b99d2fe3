package pointer

import "sync"

// Move records a single MoveRelative call.
type Move struct {
	DX int
	DY int
}

// MockMover records cursor movements for tests instead of touching the
// real pointer.
type MockMover struct {
	moves []Move
	err   error
	mu    sync.Mutex
}

// NewMockMover creates an empty MockMover.
func NewMockMover() *MockMover {
	return &MockMover{}
}

// SetError sets the error returned by subsequent MoveRelative calls.
func (m *MockMover) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// MoveRelative records the movement, or returns the injected error.
func (m *MockMover) MoveRelative(dx, dy int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.moves = append(m.moves, Move{DX: dx, DY: dy})
	return nil
}

// Moves returns a copy of the recorded movements.
func (m *MockMover) Moves() []Move {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Move, len(m.moves))
	copy(out, m.moves)
	return out
}

// Reset clears the recorded movements.
func (m *MockMover) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moves = nil
}
