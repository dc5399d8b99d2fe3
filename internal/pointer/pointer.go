// Package pointer moves the system cursor in response to tracked motion.
package pointer

import (
	"sync"

	"github.com/go-vgo/robotgo"
)

// Mover applies relative cursor movement.
type Mover interface {
	// MoveRelative shifts the cursor by (dx, dy) screen pixels. An error
	// is fatal: the system cannot usefully continue without cursor
	// control.
	MoveRelative(dx, dy int) error
}

// RobotMover moves the real cursor via robotgo, clamping the result to
// the screen bounds so a large sweep never parks the cursor off-screen.
type RobotMover struct {
	once    sync.Once
	screenW int
	screenH int
}

// NewRobotMover creates a RobotMover. The screen size is read on the
// first move, not at construction, so creating one does not require a
// display.
func NewRobotMover() *RobotMover {
	return &RobotMover{}
}

// MoveRelative implements the Mover interface.
func (m *RobotMover) MoveRelative(dx, dy int) error {
	m.once.Do(func() {
		m.screenW, m.screenH = robotgo.GetScreenSize()
	})

	x, y := robotgo.Location()

	x = clamp(x+dx, 0, m.screenW-1)
	y = clamp(y+dy, 0, m.screenH-1)

	robotgo.Move(x, y)
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
