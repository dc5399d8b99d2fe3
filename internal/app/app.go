// Package app wires the capture, detection, tracking, and pointer
// components into the tracking control loop.
package app

import (
	"log"
	"sync"

	"github.com/ayusman/irpoint/internal/capture"
	"github.com/ayusman/irpoint/internal/detector"
	"github.com/ayusman/irpoint/internal/pointer"
	"github.com/ayusman/irpoint/internal/store"
	"github.com/ayusman/irpoint/internal/tracking"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while the emitter has not been seen for
	// a while.
	IdleFPS = 5
	// ActiveFPS is the frame rate while the emitter is being tracked.
	ActiveFPS = 30
	// IdleTimeoutMs is how long the emitter must stay missing, in
	// milliseconds, before dropping back to the idle frame rate.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for the application.
type Config struct {
	Store      *store.Store
	CameraID   int
	Thresholds detector.ThresholdConfig
	Tracking   tracking.Config
	Verbose    bool
}

// Cycle is one control-loop iteration's telemetry: what was detected,
// the filtered estimate, and the movement emitted.
type Cycle struct {
	Raw      *tracking.Position `json:"raw,omitempty"`
	Filtered *tracking.Position `json:"filtered,omitempty"`
	Delta    tracking.Delta     `json:"delta"`
	Moved    bool               `json:"moved"`
}

// App owns the tracking control loop and its state.
type App struct {
	config   Config
	camera   capture.Camera
	detector detector.Detector
	tracker  *tracking.Tracker
	mover    pointer.Mover

	enabled bool
	onCycle func(Cycle)
	mu      sync.RWMutex
	stopCh  chan struct{}
	doneCh  chan error
}

// New creates a new App instance with the given configuration.
func New(config Config) (*App, error) {
	d, err := detector.NewBlobDetector(config.Thresholds)
	if err != nil {
		return nil, err
	}

	return &App{
		config:   config,
		camera:   capture.NewCamera(config.CameraID),
		detector: d,
		tracker:  tracking.NewTracker(config.Tracking),
		mover:    pointer.NewRobotMover(),
		enabled:  true,
	}, nil
}

// SetEnabled enables or disables tracking. While disabled the loop keeps
// running but frames are not processed and the cursor is untouched.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if enabled && !a.enabled {
		// Re-acquire from scratch so the cursor does not leap to wherever
		// the emitter drifted while tracking was off.
		a.tracker.Reset()
	}
	a.enabled = enabled
}

// IsEnabled returns whether tracking is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetCamera replaces the frame source. Tests use this to inject a mock
// camera before Start.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// SetDetector replaces the emitter detector.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetMover replaces the pointer actuator.
func (a *App) SetMover(m pointer.Mover) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mover = m
}

// OnCycle registers a callback invoked after every processed cycle, used
// by the telemetry socket. The callback runs on the pipeline goroutine
// and must not block.
func (a *App) OnCycle(fn func(Cycle)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onCycle = fn
}

// ApplyProfile retunes the running tracker and detector from a stored
// profile. The filtered position survives, so live tuning does not jolt
// the cursor.
func (a *App) ApplyProfile(p *store.Profile) error {
	thresholds := detector.ThresholdConfig{
		HueMin:   p.HueMin,
		HueMax:   p.HueMax,
		ValueMin: p.ValueMin,
		ValueMax: p.ValueMax,
	}
	if err := thresholds.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if bd, ok := a.detector.(*detector.BlobDetector); ok {
		if err := bd.SetThresholds(thresholds); err != nil {
			return err
		}
	}

	a.tracker.Retune(tracking.Config{
		Alpha:    p.Alpha,
		MaxJump:  p.MaxJump,
		DeadZone: p.DeadZone,
		Gain:     p.Gain,
		InvertX:  p.InvertX,
	})

	log.Printf("Applied profile %q", p.Name)
	return nil
}

// Start opens the camera and begins the tracking loop.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	a.doneCh = make(chan error, 1)
	go a.runPipeline(a.stopCh, a.doneCh)

	log.Println("Tracking pipeline started")
	return nil
}

// Stop halts the tracking loop and releases resources. It is safe to
// call after the loop has already died on a fatal error.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Tracking pipeline stopped")
}

// Wait blocks until the pipeline exits and returns its terminal error:
// nil after a clean Stop, the capture or actuator error after a fatal
// failure.
func (a *App) Wait() error {
	a.mu.RLock()
	done := a.doneCh
	a.mu.RUnlock()

	if done == nil {
		return nil
	}
	return <-done
}

// Camera returns the frame source.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// Detector returns the emitter detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
