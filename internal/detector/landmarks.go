// Package detector provides hand detection interfaces and types for the bubble game.
package detector

import (
	"math"
	"time"
)

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D represents a single landmark position. X and Y are normalized
// to [0,1] relative to the frame; Z is relative depth from MediaPipe.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Hand represents one detected hand. Points may hold fewer than
// NumLandmarks entries when the detector returns a partial skeleton;
// consumers must check Complete before indexing fixed landmarks.
type Hand struct {
	Points     []Point3D `json:"points"`
	Handedness string    `json:"handedness"` // "Left" or "Right"
	Score      float64   `json:"score"`
}

// Complete reports whether the hand carries the full 21-point skeleton.
func (h *Hand) Complete() bool {
	return h != nil && len(h.Points) >= NumLandmarks
}

// Landmark returns the landmark at the given skeleton index and whether
// it is present.
func (h *Hand) Landmark(idx int) (Point3D, bool) {
	if h == nil || idx < 0 || idx >= len(h.Points) {
		return Point3D{}, false
	}
	return h.Points[idx], true
}

// DetectionResult is one frame's worth of detector output.
// A nil result (no hands detected) is a normal state, not an error.
type DetectionResult struct {
	Hands     []Hand    `json:"hands"`
	Timestamp time.Time `json:"timestamp"`
}

// FirstHand returns the first detected hand, or nil when the result is
// absent or empty.
func (r *DetectionResult) FirstHand() *Hand {
	if r == nil || len(r.Hands) == 0 {
		return nil
	}
	return &r.Hands[0]
}

// Distance2D calculates the Euclidean distance between two landmarks
// in the normalized image plane, ignoring depth.
func Distance2D(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
