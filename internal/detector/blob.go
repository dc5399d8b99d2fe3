package detector

import (
	"sync"

	"gocv.io/x/gocv"

	"github.com/ayusman/irpoint/internal/tracking"
)

// BlobDetector finds the emitter by thresholding the hue and value
// planes and taking the centroid of the combined mask. The centroid is
// the arithmetic mean over all qualifying pixels; with a single emitter
// in frame that approximates its center even under minor sensor noise.
//
// Known limitation: if several disjoint bright regions pass the
// thresholds (reflections, a second IR source), the centroid is pulled
// toward all of them. No connected-component separation is attempted.
type BlobDetector struct {
	config ThresholdConfig
	mu     sync.RWMutex
}

// NewBlobDetector creates a BlobDetector with the given thresholds.
func NewBlobDetector(config ThresholdConfig) (*BlobDetector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &BlobDetector{config: config}, nil
}

// Detect implements the Detector interface.
func (d *BlobDetector) Detect(frame *gocv.Mat) (*tracking.Position, error) {
	planes, err := SplitHSV(frame)
	if err != nil {
		return nil, err
	}
	defer planes.Close()

	d.mu.RLock()
	cfg := d.config
	d.mu.RUnlock()

	hueMask := gocv.NewMat()
	defer hueMask.Close()
	gocv.InRangeWithScalar(planes.Hue,
		gocv.NewScalar(float64(cfg.HueMin), 0, 0, 0),
		gocv.NewScalar(float64(cfg.HueMax), 0, 0, 0),
		&hueMask)

	valueMask := gocv.NewMat()
	defer valueMask.Close()
	gocv.InRangeWithScalar(planes.Value,
		gocv.NewScalar(float64(cfg.ValueMin), 0, 0, 0),
		gocv.NewScalar(float64(cfg.ValueMax), 0, 0, 0),
		&valueMask)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.BitwiseAnd(hueMask, valueMask, &mask)

	// Image moments of a binary mask: m00 is the pixel count, m10/m00
	// and m01/m00 the mean column and row.
	m := gocv.Moments(mask, true)
	if m["m00"] == 0 {
		return nil, nil
	}

	return &tracking.Position{
		X: m["m10"] / m["m00"],
		Y: m["m01"] / m["m00"],
	}, nil
}

// SetThresholds replaces the acceptance region, taking effect on the
// next Detect call.
func (d *BlobDetector) SetThresholds(config ThresholdConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	d.mu.Lock()
	d.config = config
	d.mu.Unlock()
	return nil
}

// Thresholds returns the current acceptance region.
func (d *BlobDetector) Thresholds() ThresholdConfig {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.config
}

// Close implements the Detector interface. The blob detector holds no
// persistent Mats.
func (d *BlobDetector) Close() error {
	return nil
}
