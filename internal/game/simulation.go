package game

import (
	"math"
	"math/rand"
	"time"
)

// Simulation defaults, tuned for balanced play.
const (
	DefaultMaxBubbles   = 5
	DefaultSpawnRate    = 0.8 // bubbles per second
	DefaultMinRadius    = 30
	DefaultMaxRadius    = 50
	DefaultHitTolerance = 1.1

	// maxStep bounds the integration step so a stalled frame cannot
	// teleport bubbles across the screen.
	maxStep = 0.1

	// cullMargin is how far outside [0,1] a bubble may drift before the
	// safety net removes it without scoring.
	cullMargin = 0.1
)

// Config holds the simulation parameters, fixed at construction.
type Config struct {
	// ScreenWidth and ScreenHeight are the play area size in pixels.
	ScreenWidth  int
	ScreenHeight int

	// MaxBubbles is the maximum number of concurrent bubbles.
	MaxBubbles int

	// SpawnRate is how many bubbles spawn per second.
	SpawnRate float64

	// MinRadius and MaxRadius bound the spawned bubble radius in pixels.
	MinRadius int
	MaxRadius int

	// HitTolerance scales the bubble radius for collision tests. The
	// default 1.1 gives a 10% forgiveness margin over the visual edge.
	HitTolerance float64
}

// DefaultConfig returns the simulation parameters used in normal play
// for the given screen size.
func DefaultConfig(width, height int) Config {
	return Config{
		ScreenWidth:  width,
		ScreenHeight: height,
		MaxBubbles:   DefaultMaxBubbles,
		SpawnRate:    DefaultSpawnRate,
		MinRadius:    DefaultMinRadius,
		MaxRadius:    DefaultMaxRadius,
		HitTolerance: DefaultHitTolerance,
	}
}

// Simulation owns the bubble population and score for one game session.
// It is not safe for concurrent use; the session loop is its only
// writer and renderers read copied snapshots.
type Simulation struct {
	config    Config
	bubbles   []Bubble
	nextID    int
	score     int
	popped    int
	lastSpawn time.Time

	rng *rand.Rand
	now func() time.Time
}

// NewSimulation creates a Simulation with the given configuration.
// Zero-valued tuning fields fall back to the defaults.
func NewSimulation(config Config) *Simulation {
	if config.MaxBubbles <= 0 {
		config.MaxBubbles = DefaultMaxBubbles
	}
	if config.SpawnRate <= 0 {
		config.SpawnRate = DefaultSpawnRate
	}
	if config.MinRadius <= 0 {
		config.MinRadius = DefaultMinRadius
	}
	if config.MaxRadius < config.MinRadius {
		config.MaxRadius = config.MinRadius
	}
	if config.HitTolerance <= 0 {
		config.HitTolerance = DefaultHitTolerance
	}

	s := &Simulation{
		config: config,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}
	s.lastSpawn = s.now()
	return s
}

// Update advances the simulation by dt seconds: it spawns a bubble when
// the spawn clock allows, integrates motion, reflects bubbles off the
// walls and culls anything that escaped the safety margin.
func (s *Simulation) Update(dt float64) {
	if dt < 0 {
		dt = 0
	}
	if dt > maxStep {
		dt = maxStep
	}

	now := s.now()
	if len(s.bubbles) < s.config.MaxBubbles &&
		now.Sub(s.lastSpawn).Seconds() >= 1.0/s.config.SpawnRate {
		s.bubbles = append(s.bubbles, spawnBubble(s.rng, s.nextID, s.config.MinRadius, s.config.MaxRadius))
		s.nextID++
		s.lastSpawn = now
	}

	w := float64(s.config.ScreenWidth)
	h := float64(s.config.ScreenHeight)

	kept := s.bubbles[:0]
	for i := range s.bubbles {
		b := s.bubbles[i]
		b.X += b.VelX * dt
		b.Y += b.VelY * dt

		// Elastic reflection in pixel space, clamping the bubble fully
		// back on-screen. No damping.
		r := float64(b.Radius)
		px := b.X * w
		if px-r <= 0 || px+r >= w {
			b.VelX = -b.VelX
			b.X = clamp(b.X, r/w, 1.0-r/w)
		}
		py := b.Y * h
		if py-r <= 0 || py+r >= h {
			b.VelY = -b.VelY
			b.Y = clamp(b.Y, r/h, 1.0-r/h)
		}

		// Safety net against runaway integration; not expected in
		// normal play. Removed without scoring.
		if b.X < -cullMargin || b.X > 1+cullMargin || b.Y < -cullMargin || b.Y > 1+cullMargin {
			continue
		}

		kept = append(kept, b)
	}
	s.bubbles = kept
}

// CheckCollisions pops every bubble whose center lies within the hit
// tolerance of the pointer, provided the shooting gesture is active.
// All qualifying bubbles in the same tick pop simultaneously; each pop
// adds the bubble's point value to the score. The popped bubbles are
// removed from the active set and returned for downstream effects.
func (s *Simulation) CheckCollisions(pointerX, pointerY float64, isShooting bool) []Bubble {
	if !isShooting {
		return nil
	}

	w := float64(s.config.ScreenWidth)
	h := float64(s.config.ScreenHeight)
	px := pointerX * w
	py := pointerY * h

	var hit []Bubble
	kept := s.bubbles[:0]
	for i := range s.bubbles {
		b := s.bubbles[i]
		dist := math.Hypot(px-b.X*w, py-b.Y*h)
		if dist <= float64(b.Radius)*s.config.HitTolerance {
			hit = append(hit, b)
			s.score += b.Points
			s.popped++
			continue
		}
		kept = append(kept, b)
	}
	s.bubbles = kept

	return hit
}

// Reset clears the active set, zeroes the score and popped count and
// restarts the spawn clock. Calling it repeatedly is idempotent.
func (s *Simulation) Reset() {
	s.bubbles = nil
	s.score = 0
	s.popped = 0
	s.lastSpawn = s.now()
}

// Bubbles returns a copy of the active bubble set for renderers.
func (s *Simulation) Bubbles() []Bubble {
	out := make([]Bubble, len(s.bubbles))
	copy(out, s.bubbles)
	return out
}

// Score returns the cumulative score. It never decreases.
func (s *Simulation) Score() int {
	return s.score
}

// Popped returns how many bubbles have been popped this session.
func (s *Simulation) Popped() int {
	return s.popped
}

// Count returns the number of active bubbles.
func (s *Simulation) Count() int {
	return len(s.bubbles)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
