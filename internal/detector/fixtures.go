package detector

import (
	"image"

	"gocv.io/x/gocv"
)

// EmitterSpot describes a synthetic emitter for test frames.
type EmitterSpot struct {
	// Center of the emitter block, (X = column, Y = row).
	Center image.Point
	// Size is the side length of the square block in pixels.
	Size int
	// Hue and Value of the block's pixels in OpenCV 8-bit HSV encoding.
	Hue   uint8
	Value uint8
}

// NewEmitterFrame builds a BGR frame containing the given emitter spots
// on a black background. It is used by tests in place of recorded
// footage; an IR blob is just a bright square, so synthesizing frames
// beats embedding image assets. The caller owns the returned Mat.
func NewEmitterFrame(width, height int, spots ...EmitterSpot) gocv.Mat {
	hsv := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)
	defer hsv.Close()

	for _, s := range spots {
		half := s.Size / 2
		for row := s.Center.Y - half; row <= s.Center.Y+half; row++ {
			for col := s.Center.X - half; col <= s.Center.X+half; col++ {
				if row < 0 || row >= height || col < 0 || col >= width {
					continue
				}
				hsv.SetUCharAt(row, col*3, s.Hue)
				hsv.SetUCharAt(row, col*3+1, 255)
				hsv.SetUCharAt(row, col*3+2, s.Value)
			}
		}
	}

	bgr := gocv.NewMat()
	gocv.CvtColor(hsv, &bgr, gocv.ColorHSVToBGR)
	return bgr
}
