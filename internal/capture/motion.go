package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// MotionMeter measures frame-to-frame activity using grayscale frame
// differencing with Gaussian blur for noise reduction. The detector
// preview mode shows its reading so players can check camera placement
// before starting a game.
type MotionMeter struct {
	threshold   float64
	prevGray    gocv.Mat
	initialized bool
	mu          sync.Mutex
}

// Motion measurement constants.
const (
	// gaussianBlurSize is the kernel size for the blur pass (21x21).
	gaussianBlurSize = 21
	// diffThreshold is the binary threshold for per-pixel change.
	diffThreshold = 25
)

// NewMotionMeter creates a MotionMeter. The threshold is the percentage
// of pixels that must change for Measure to report activity; 1.0 means
// 1% of pixels.
func NewMotionMeter(threshold float64) *MotionMeter {
	return &MotionMeter{
		threshold: threshold,
		prevGray:  gocv.NewMat(),
	}
}

// Measure compares a frame against the previous one and returns whether
// activity crossed the threshold plus the percentage of changed pixels.
// The first frame establishes the baseline and always reports false.
func (m *MotionMeter) Measure(frame *gocv.Mat) (bool, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: gaussianBlurSize, Y: gaussianBlurSize}, 0, 0, gocv.BorderDefault)

	if !m.initialized {
		blurred.CopyTo(&m.prevGray)
		m.initialized = true
		return false, 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, m.prevGray, &diff)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, diffThreshold, 255, gocv.ThresholdBinary)

	nonZero := gocv.CountNonZero(thresh)
	totalPixels := thresh.Rows() * thresh.Cols()

	changePercent := float64(nonZero) / float64(totalPixels) * 100.0

	blurred.CopyTo(&m.prevGray)

	return changePercent > m.threshold, changePercent
}

// Reset clears the baseline so the meter can be reused on a new stream.
func (m *MotionMeter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.prevGray.Empty() {
		m.prevGray.Close()
		m.prevGray = gocv.NewMat()
	}
	m.initialized = false
}

// Close releases resources used by the meter.
func (m *MotionMeter) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.prevGray.Empty() {
		m.prevGray.Close()
		m.prevGray = gocv.NewMat()
	}
	m.initialized = false
}
