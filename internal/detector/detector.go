// Package detector isolates the infrared emitter in a video frame and
// reports its centroid.
package detector

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"

	"github.com/ayusman/irpoint/internal/tracking"
)

// OpenCV 8-bit channel ranges.
const (
	// MaxHue is the largest hue value in OpenCV's 8-bit HSV encoding.
	MaxHue = 179
	// MaxValue is the largest brightness value.
	MaxValue = 255
)

// ErrEmptyFrame is returned when a frame is nil or has no pixels.
var ErrEmptyFrame = errors.New("frame is empty")

// Detector finds the emitter position in a frame.
type Detector interface {
	// Detect returns the emitter centroid in frame coordinates, or nil
	// if no qualifying pixels were found. An error means the frame
	// itself was unusable and the cycle should be skipped.
	Detect(frame *gocv.Mat) (*tracking.Position, error)

	// Close releases any resources held by the detector.
	Close() error
}

// ThresholdConfig defines the hue/value acceptance region for emitter
// pixels. Both ranges are inclusive.
type ThresholdConfig struct {
	HueMin   int
	HueMax   int
	ValueMin int
	ValueMax int
}

// DefaultThresholds returns the stock acceptance region, tuned for a
// bright IR emitter as most webcams render it.
func DefaultThresholds() ThresholdConfig {
	return ThresholdConfig{
		HueMin:   51,
		HueMax:   62,
		ValueMin: 250,
		ValueMax: 255,
	}
}

// Validate checks that both ranges are non-empty and within the 8-bit
// HSV encoding.
func (c ThresholdConfig) Validate() error {
	if c.HueMin < 0 || c.HueMax > MaxHue {
		return fmt.Errorf("hue range [%d, %d] outside [0, %d]", c.HueMin, c.HueMax, MaxHue)
	}
	if c.HueMin > c.HueMax {
		return fmt.Errorf("hue range [%d, %d] is empty", c.HueMin, c.HueMax)
	}
	if c.ValueMin < 0 || c.ValueMax > MaxValue {
		return fmt.Errorf("value range [%d, %d] outside [0, %d]", c.ValueMin, c.ValueMax, MaxValue)
	}
	if c.ValueMin > c.ValueMax {
		return fmt.Errorf("value range [%d, %d] is empty", c.ValueMin, c.ValueMax)
	}
	return nil
}
