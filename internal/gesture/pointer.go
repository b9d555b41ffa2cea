package gesture

// DefaultSmoothing is the exponential smoothing factor applied to the
// pointer each tick. Lower values suppress more jitter at the cost of
// responsiveness.
const DefaultSmoothing = 0.15

// Pointer center/rest position in normalized coordinates.
const (
	restX = 0.5
	restY = 0.5
)

// PointerTracker smooths a stream of noisy per-frame pointer targets
// into a stable aiming position using a first-order exponential moving
// average. Error to the target shrinks by (1-alpha) each tick, so the
// pointer converges geometrically and never overshoots.
type PointerTracker struct {
	x, y    float64
	alpha   float64
	targetX float64
	targetY float64
}

// NewPointerTracker creates a tracker at the screen center with the
// given smoothing factor. A factor outside (0, 1] falls back to the
// default.
func NewPointerTracker(alpha float64) *PointerTracker {
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultSmoothing
	}
	return &PointerTracker{
		x:       restX,
		y:       restY,
		alpha:   alpha,
		targetX: restX,
		targetY: restY,
	}
}

// SetTarget aims the tracker at a new normalized position.
func (p *PointerTracker) SetTarget(x, y float64) {
	p.targetX = x
	p.targetY = y
}

// ClearTarget recenters the target so the pointer drifts back to the
// middle of the screen when hand tracking is lost.
func (p *PointerTracker) ClearTarget() {
	p.targetX = restX
	p.targetY = restY
}

// Step advances the smoothed position one tick toward the target,
// independently per axis.
func (p *PointerTracker) Step() {
	p.x += (p.targetX - p.x) * p.alpha
	p.y += (p.targetY - p.y) * p.alpha
}

// Position returns the current smoothed pointer position.
func (p *PointerTracker) Position() (x, y float64) {
	return p.x, p.y
}

// Reset snaps the pointer and its target back to the screen center.
func (p *PointerTracker) Reset() {
	p.x, p.y = restX, restY
	p.targetX, p.targetY = restX, restY
}
