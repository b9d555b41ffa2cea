package detector

import (
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control detection results frame by frame.
type MockDetector struct {
	mu      sync.Mutex
	result  *DetectionResult
	queue   []*DetectionResult
	err     error
	initErr error
	calls   int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetResult sets the result returned by every subsequent Detect call
// once the queued script (if any) is exhausted.
func (m *MockDetector) SetResult(r *DetectionResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.result = r
}

// QueueResults appends a scripted sequence of per-frame results.
// Each Detect call consumes one entry until the queue is empty.
func (m *MockDetector) QueueResults(results ...*DetectionResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, results...)
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SetInitError sets the error that will be returned by Initialize.
func (m *MockDetector) SetInitError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initErr = err
}

// Calls returns how many times Detect has been invoked.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Initialize returns the pre-configured initialization error, if any.
func (m *MockDetector) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initErr
}

// Detect returns the next scripted result, the fixed result, or the
// pre-configured error.
func (m *MockDetector) Detect(frame *gocv.Mat) (*DetectionResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.queue) > 0 {
		r := m.queue[0]
		m.queue = m.queue[1:]
		return r, nil
	}
	return m.result, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// OpenHandAt returns a preset Hand with all five fingers extended and
// the index fingertip at the given normalized position. The thumb tip
// sits well away from the wrist so the closed-hand vote fails.
func OpenHandAt(x, y float64) Hand {
	hand := Hand{
		Points:     make([]Point3D, NumLandmarks),
		Handedness: "Right",
		Score:      0.95,
	}

	wrist := Point3D{X: x, Y: y + 0.35}
	hand.Points[Wrist] = wrist

	// Thumb extended to the side, clear of the wrist
	hand.Points[ThumbCMC] = Point3D{X: x + 0.06, Y: y + 0.30}
	hand.Points[ThumbMCP] = Point3D{X: x + 0.12, Y: y + 0.26}
	hand.Points[ThumbIP] = Point3D{X: x + 0.17, Y: y + 0.20}
	hand.Points[ThumbTip] = Point3D{X: x + 0.20, Y: y + 0.15}

	// Four fingers extended upward: each tip above its PIP joint
	// (camera y grows downward).
	finger := func(mcp, pip, dip, tip int, dx float64) {
		hand.Points[mcp] = Point3D{X: x + dx, Y: y + 0.22}
		hand.Points[pip] = Point3D{X: x + dx, Y: y + 0.14}
		hand.Points[dip] = Point3D{X: x + dx, Y: y + 0.07}
		hand.Points[tip] = Point3D{X: x + dx, Y: y}
	}
	finger(IndexMCP, IndexPIP, IndexDIP, IndexTip, 0)
	finger(MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip, -0.04)
	finger(RingMCP, RingPIP, RingDIP, RingTip, -0.08)
	finger(PinkyMCP, PinkyPIP, PinkyDIP, PinkyTip, -0.12)

	return hand
}

// ClosedFistAt returns a preset Hand forming a fist, with the index
// fingertip at the given normalized position. The thumb tip is tucked
// within the closed-thumb distance of the wrist and every fingertip
// sits below its PIP joint.
func ClosedFistAt(x, y float64) Hand {
	hand := Hand{
		Points:     make([]Point3D, NumLandmarks),
		Handedness: "Right",
		Score:      0.95,
	}

	wrist := Point3D{X: x, Y: y + 0.12}
	hand.Points[Wrist] = wrist

	// Thumb tucked against the palm, close to the wrist
	hand.Points[ThumbCMC] = Point3D{X: x + 0.04, Y: y + 0.10}
	hand.Points[ThumbMCP] = Point3D{X: x + 0.06, Y: y + 0.08}
	hand.Points[ThumbIP] = Point3D{X: x + 0.05, Y: y + 0.07}
	hand.Points[ThumbTip] = Point3D{X: x + 0.04, Y: y + 0.08}

	// Four fingers curled: each tip below its PIP joint
	finger := func(mcp, pip, dip, tip int, dx float64) {
		hand.Points[mcp] = Point3D{X: x + dx, Y: y - 0.02}
		hand.Points[pip] = Point3D{X: x + dx, Y: y - 0.05}
		hand.Points[dip] = Point3D{X: x + dx, Y: y - 0.02}
		hand.Points[tip] = Point3D{X: x + dx, Y: y}
	}
	finger(IndexMCP, IndexPIP, IndexDIP, IndexTip, 0)
	finger(MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip, -0.04)
	finger(RingMCP, RingPIP, RingDIP, RingTip, -0.08)
	finger(PinkyMCP, PinkyPIP, PinkyDIP, PinkyTip, -0.12)

	return hand
}

// ResultWith wraps hands in a DetectionResult stamped with the current time.
func ResultWith(hands ...Hand) *DetectionResult {
	return &DetectionResult{Hands: hands, Timestamp: time.Now()}
}
