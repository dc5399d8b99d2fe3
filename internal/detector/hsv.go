package detector

import "gocv.io/x/gocv"

// HSVPlanes holds the hue and value channels of a frame. Saturation is
// discarded: an IR emitter saturates the sensor, so hue and brightness
// alone separate it from the scene.
type HSVPlanes struct {
	Hue   gocv.Mat
	Value gocv.Mat
}

// Close releases the underlying Mats.
func (p *HSVPlanes) Close() {
	p.Hue.Close()
	p.Value.Close()
}

// SplitHSV converts a BGR frame into its hue and value planes. The input
// frame is not modified. The caller owns the returned planes and must
// Close them.
func SplitHSV(frame *gocv.Mat) (*HSVPlanes, error) {
	if frame == nil || frame.Empty() {
		return nil, ErrEmptyFrame
	}

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(*frame, &hsv, gocv.ColorBGRToHSV)

	channels := gocv.Split(hsv)
	// Split yields hue, saturation, value.
	channels[1].Close()

	return &HSVPlanes{Hue: channels[0], Value: channels[2]}, nil
}
