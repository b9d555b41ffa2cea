// Package gesture provides per-frame hand gesture classification and
// pointer smoothing for the bubble game.
package gesture

import (
	"github.com/ayusman/bubblepop/internal/detector"
)

// Classifier default thresholds.
const (
	// DefaultThumbCloseDistance is the normalized thumb-tip-to-wrist
	// distance below which the thumb counts as bent.
	DefaultThumbCloseDistance = 0.15
	// DefaultMinBentFingers is how many of the five fingers must be
	// bent for the hand to classify as closed.
	DefaultMinBentFingers = 4
)

// ClassifierConfig holds the tunable thresholds of the closed-hand vote.
type ClassifierConfig struct {
	// ThumbCloseDistance is the normalized distance threshold for the
	// thumb-tip-to-wrist check.
	ThumbCloseDistance float64

	// MinBentFingers is the minimum bent-finger count for a closed hand.
	MinBentFingers int
}

// DefaultClassifierConfig returns the thresholds used in normal play.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		ThumbCloseDistance: DefaultThumbCloseDistance,
		MinBentFingers:     DefaultMinBentFingers,
	}
}

// Classifier classifies a hand skeleton as open or closed. It is
// stateless; both operations are pure functions of the current frame.
type Classifier struct {
	config ClassifierConfig
}

// NewClassifier creates a Classifier with the given thresholds.
// Zero-valued fields fall back to the defaults.
func NewClassifier(config ClassifierConfig) *Classifier {
	if config.ThumbCloseDistance <= 0 {
		config.ThumbCloseDistance = DefaultThumbCloseDistance
	}
	if config.MinBentFingers <= 0 {
		config.MinBentFingers = DefaultMinBentFingers
	}
	return &Classifier{config: config}
}

// fingerJoints pairs each fingertip with the joint it is compared
// against. The thumb uses its IP joint slot but is actually judged by
// distance to the wrist.
var fingerJoints = [5][2]int{
	{detector.ThumbTip, detector.ThumbIP},
	{detector.IndexTip, detector.IndexPIP},
	{detector.MiddleTip, detector.MiddlePIP},
	{detector.RingTip, detector.RingPIP},
	{detector.PinkyTip, detector.PinkyPIP},
}

// IsClosed reports whether the hand forms a fist. A hand with fewer
// than 21 landmarks cannot be judged and fails open: it is reported as
// not closed rather than raising an error, so malformed detector output
// degrades to "not shooting" instead of crashing gameplay.
//
// The thumb counts as bent when its tip is within ThumbCloseDistance of
// the wrist. The other four fingers count as bent when the tip's
// normalized y exceeds the PIP joint's y, which assumes camera-space y
// grows downward and the hand is roughly upright. The heuristic is
// orientation-dependent and not compensated for hand rotation; the
// 4-of-5 vote tolerates one noisy or occluded finger.
func (c *Classifier) IsClosed(hand *detector.Hand) bool {
	if !hand.Complete() {
		return false
	}

	wrist := hand.Points[detector.Wrist]
	bent := 0

	for _, pair := range fingerJoints {
		tip := hand.Points[pair[0]]
		if pair[0] == detector.ThumbTip {
			if detector.Distance2D(tip, wrist) < c.config.ThumbCloseDistance {
				bent++
			}
			continue
		}
		if tip.Y > hand.Points[pair[1]].Y {
			bent++
		}
	}

	return bent >= c.config.MinBentFingers
}

// PointerAnchor returns the index fingertip landmark used to aim the
// pointer, and whether it is present on this hand.
func (c *Classifier) PointerAnchor(hand *detector.Hand) (detector.Point3D, bool) {
	return hand.Landmark(detector.IndexTip)
}
