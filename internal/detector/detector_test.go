package detector

import (
	"errors"
	"image"
	"math"
	"testing"

	"gocv.io/x/gocv"
)

func TestThresholdConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  ThresholdConfig
		wantErr bool
	}{
		{
			name:   "defaults",
			config: DefaultThresholds(),
		},
		{
			name:   "full ranges",
			config: ThresholdConfig{HueMin: 0, HueMax: MaxHue, ValueMin: 0, ValueMax: MaxValue},
		},
		{
			name:   "single-point ranges",
			config: ThresholdConfig{HueMin: 10, HueMax: 10, ValueMin: 255, ValueMax: 255},
		},
		{
			name:    "empty hue range",
			config:  ThresholdConfig{HueMin: 62, HueMax: 51, ValueMin: 0, ValueMax: 255},
			wantErr: true,
		},
		{
			name:    "empty value range",
			config:  ThresholdConfig{HueMin: 0, HueMax: 10, ValueMin: 255, ValueMax: 200},
			wantErr: true,
		},
		{
			name:    "hue above encoding range",
			config:  ThresholdConfig{HueMin: 0, HueMax: 200, ValueMin: 0, ValueMax: 255},
			wantErr: true,
		},
		{
			name:    "negative value",
			config:  ThresholdConfig{HueMin: 0, HueMax: 10, ValueMin: -1, ValueMax: 255},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewBlobDetector_InvalidConfig(t *testing.T) {
	_, err := NewBlobDetector(ThresholdConfig{HueMin: 50, HueMax: 10, ValueMin: 0, ValueMax: 255})
	if err == nil {
		t.Error("expected error for empty hue range")
	}
}

func TestBlobDetector_EmptyFrame(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	d, err := NewBlobDetector(DefaultThresholds())
	if err != nil {
		t.Fatalf("NewBlobDetector() error = %v", err)
	}
	defer d.Close()

	empty := gocv.NewMat()
	defer empty.Close()

	if _, err := d.Detect(&empty); !errors.Is(err, ErrEmptyFrame) {
		t.Errorf("Detect(empty) error = %v, want ErrEmptyFrame", err)
	}

	if _, err := d.Detect(nil); !errors.Is(err, ErrEmptyFrame) {
		t.Errorf("Detect(nil) error = %v, want ErrEmptyFrame", err)
	}
}

func TestBlobDetector_NoQualifyingPixels(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	d, err := NewBlobDetector(ThresholdConfig{HueMin: 0, HueMax: 10, ValueMin: 200, ValueMax: 255})
	if err != nil {
		t.Fatalf("NewBlobDetector() error = %v", err)
	}
	defer d.Close()

	// Black frame: no pixel passes the value threshold.
	frame := NewEmitterFrame(200, 200)
	defer frame.Close()

	pos, err := d.Detect(&frame)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if pos != nil {
		t.Errorf("Detect() = (%f, %f), want not found", pos.X, pos.Y)
	}
}

func TestBlobDetector_CentroidOfSingleBlock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	d, err := NewBlobDetector(ThresholdConfig{HueMin: 0, HueMax: 10, ValueMin: 200, ValueMax: 255})
	if err != nil {
		t.Fatalf("NewBlobDetector() error = %v", err)
	}
	defer d.Close()

	frame := NewEmitterFrame(200, 100, EmitterSpot{
		Center: image.Pt(50, 50),
		Size:   3,
		Hue:    5,
		Value:  250,
	})
	defer frame.Close()

	pos, err := d.Detect(&frame)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if pos == nil {
		t.Fatal("Detect() found nothing, want centroid at (50, 50)")
	}

	// Allow for BGR round-trip rounding at the block edges.
	if math.Abs(pos.X-50) > 1 || math.Abs(pos.Y-50) > 1 {
		t.Errorf("centroid = (%f, %f), want (50, 50)", pos.X, pos.Y)
	}
}

func TestBlobDetector_PixelsOutsideHueRangeIgnored(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	d, err := NewBlobDetector(ThresholdConfig{HueMin: 0, HueMax: 10, ValueMin: 200, ValueMax: 255})
	if err != nil {
		t.Fatalf("NewBlobDetector() error = %v", err)
	}
	defer d.Close()

	// Bright block, but its hue is far outside the acceptance range.
	frame := NewEmitterFrame(200, 100, EmitterSpot{
		Center: image.Pt(50, 50),
		Size:   5,
		Hue:    90,
		Value:  250,
	})
	defer frame.Close()

	pos, err := d.Detect(&frame)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if pos != nil {
		t.Errorf("Detect() = (%f, %f), want not found for out-of-range hue", pos.X, pos.Y)
	}
}

func TestBlobDetector_TwoRegionsPullCentroid(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	d, err := NewBlobDetector(ThresholdConfig{HueMin: 0, HueMax: 10, ValueMin: 200, ValueMax: 255})
	if err != nil {
		t.Fatalf("NewBlobDetector() error = %v", err)
	}
	defer d.Close()

	// Two equal-sized regions; the single-emitter assumption means the
	// centroid lands between them rather than on either.
	frame := NewEmitterFrame(200, 100,
		EmitterSpot{Center: image.Pt(40, 50), Size: 3, Hue: 5, Value: 250},
		EmitterSpot{Center: image.Pt(80, 50), Size: 3, Hue: 5, Value: 250},
	)
	defer frame.Close()

	pos, err := d.Detect(&frame)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if pos == nil {
		t.Fatal("Detect() found nothing")
	}
	if math.Abs(pos.X-60) > 2 || math.Abs(pos.Y-50) > 2 {
		t.Errorf("centroid = (%f, %f), want near (60, 50)", pos.X, pos.Y)
	}
}

func TestBlobDetector_SetThresholds(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	d, err := NewBlobDetector(ThresholdConfig{HueMin: 0, HueMax: 10, ValueMin: 200, ValueMax: 255})
	if err != nil {
		t.Fatalf("NewBlobDetector() error = %v", err)
	}
	defer d.Close()

	frame := NewEmitterFrame(200, 100, EmitterSpot{
		Center: image.Pt(50, 50),
		Size:   5,
		Hue:    90,
		Value:  250,
	})
	defer frame.Close()

	if pos, _ := d.Detect(&frame); pos != nil {
		t.Fatal("hue 90 should not qualify under the initial thresholds")
	}

	if err := d.SetThresholds(ThresholdConfig{HueMin: 85, HueMax: 95, ValueMin: 200, ValueMax: 255}); err != nil {
		t.Fatalf("SetThresholds() error = %v", err)
	}

	pos, err := d.Detect(&frame)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if pos == nil {
		t.Error("emitter should qualify after retuning the thresholds")
	}

	if err := d.SetThresholds(ThresholdConfig{HueMin: 95, HueMax: 85}); err == nil {
		t.Error("SetThresholds should reject an empty hue range")
	}
}

func TestSplitHSV(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	frame := gocv.NewMatWithSize(120, 160, gocv.MatTypeCV8UC3)
	defer frame.Close()

	planes, err := SplitHSV(&frame)
	if err != nil {
		t.Fatalf("SplitHSV() error = %v", err)
	}
	defer planes.Close()

	if planes.Hue.Rows() != 120 || planes.Hue.Cols() != 160 {
		t.Errorf("hue plane is %dx%d, want 120x160", planes.Hue.Rows(), planes.Hue.Cols())
	}
	if planes.Value.Rows() != 120 || planes.Value.Cols() != 160 {
		t.Errorf("value plane is %dx%d, want 120x160", planes.Value.Rows(), planes.Value.Cols())
	}
	if planes.Hue.Channels() != 1 || planes.Value.Channels() != 1 {
		t.Error("planes should be single channel")
	}
}

func TestSplitHSV_EmptyFrame(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	empty := gocv.NewMat()
	defer empty.Close()

	if _, err := SplitHSV(&empty); !errors.Is(err, ErrEmptyFrame) {
		t.Errorf("SplitHSV(empty) error = %v, want ErrEmptyFrame", err)
	}
}
