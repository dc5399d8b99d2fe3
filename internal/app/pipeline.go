package app

import (
	"log"
	"math"
	"time"

	"github.com/ayusman/irpoint/internal/tracking"
)

// runPipeline is the tracking control loop. Each cycle reads one frame,
// detects the emitter, feeds the detection through the filter and
// mapper, and moves the cursor.
//
// Per-cycle anomalies are non-fatal: a malformed frame skips the cycle,
// a detection miss or a rejected jump simply holds the previous
// position. Frame source failure and actuator failure are fatal; the
// loop exits and delivers the error through doneCh.
//
// The loop starts at the idle frame rate and switches to the active one
// while the emitter is visible, dropping back after IdleTimeoutMs
// without a detection.
func (a *App) runPipeline(stopCh <-chan struct{}, doneCh chan<- error) {
	activeMode := false
	lastSeen := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			doneCh <- nil
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.Camera().ReadFrame()
			if err != nil {
				// Stop() closes the camera; a read error during
				// shutdown is not a device failure.
				select {
				case <-stopCh:
					doneCh <- nil
					return
				default:
				}
				log.Printf("Fatal: frame capture failed: %v", err)
				doneCh <- err
				return
			}

			raw, err := a.Detector().Detect(frame)
			frame.Close()
			if err != nil {
				// Malformed frame; skip the cycle, state unchanged.
				log.Printf("Skipping frame: %v", err)
				continue
			}

			a.mu.Lock()
			delta := a.tracker.Observe(raw)
			filtered, tracked := a.tracker.Position()
			onCycle := a.onCycle
			mover := a.mover
			a.mu.Unlock()

			// Frame-rate management: run fast while the emitter is
			// visible, back off when it has been gone for a while.
			if raw != nil {
				lastSeen = time.Now()
				if !activeMode {
					activeMode = true
					a.Camera().SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Emitter acquired, switching to active frame rate")
				}
			} else if activeMode && time.Since(lastSeen) > time.Duration(IdleTimeoutMs)*time.Millisecond {
				activeMode = false
				a.Camera().SetFPS(IdleFPS)
				frameInterval = time.Second / time.Duration(IdleFPS)
				ticker.Reset(frameInterval)
				log.Println("Emitter lost, switching to idle frame rate")
			}

			moved := false
			if !delta.IsZero() {
				dx, dy := roundDelta(delta)
				if dx != 0 || dy != 0 {
					if err := mover.MoveRelative(dx, dy); err != nil {
						log.Printf("Fatal: pointer actuation failed: %v", err)
						doneCh <- err
						return
					}
					moved = true
				}
			}

			if a.config.Verbose && raw != nil {
				log.Printf("cycle: raw=(%.1f, %.1f) filtered=(%.1f, %.1f) delta=(%.2f, %.2f) moved=%v",
					raw.X, raw.Y, filtered.X, filtered.Y, delta.DX, delta.DY, moved)
			}

			if onCycle != nil {
				c := Cycle{Delta: delta, Moved: moved}
				if raw != nil {
					r := *raw
					c.Raw = &r
				}
				if tracked {
					f := filtered
					c.Filtered = &f
				}
				onCycle(c)
			}
		}
	}
}

// roundDelta converts a fractional delta to whole-pixel movement.
func roundDelta(d tracking.Delta) (int, int) {
	return int(math.Round(d.DX)), int(math.Round(d.DY))
}
