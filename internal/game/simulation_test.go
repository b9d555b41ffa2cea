package game

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

// newTestSim builds a simulation with a deterministic RNG and a
// manually advanced clock.
func newTestSim(config Config) (*Simulation, *time.Time) {
	s := NewSimulation(config)
	s.rng = rand.New(rand.NewSource(42))

	now := time.Unix(1000, 0)
	s.now = func() time.Time { return now }
	s.lastSpawn = now
	return s, &now
}

func testConfig() Config {
	return Config{
		ScreenWidth:  800,
		ScreenHeight: 600,
		MaxBubbles:   5,
		SpawnRate:    0.8,
		MinRadius:    30,
		MaxRadius:    50,
		HitTolerance: 1.1,
	}
}

func TestSimulation_SpawnTiming(t *testing.T) {
	s, now := newTestSim(testConfig())

	// Spawn interval at 0.8 bubbles/sec is 1.25s.
	*now = now.Add(1 * time.Second)
	s.Update(0.016)
	if s.Count() != 0 {
		t.Errorf("bubble spawned before the spawn interval elapsed")
	}

	*now = now.Add(300 * time.Millisecond)
	s.Update(0.016)
	if s.Count() != 1 {
		t.Errorf("Count() = %d after spawn interval, want 1", s.Count())
	}

	// The spawn clock resets: the next tick must not spawn again.
	s.Update(0.016)
	if s.Count() != 1 {
		t.Errorf("Count() = %d immediately after a spawn, want 1", s.Count())
	}
}

func TestSimulation_MaxBubblesCap(t *testing.T) {
	s, now := newTestSim(testConfig())

	for i := 0; i < 20; i++ {
		*now = now.Add(2 * time.Second)
		s.Update(0.016)
	}

	if s.Count() != 5 {
		t.Errorf("Count() = %d, want cap of 5", s.Count())
	}
}

func TestSimulation_SpawnedBubbleProperties(t *testing.T) {
	s, now := newTestSim(testConfig())

	for i := 0; i < 200; i++ {
		*now = now.Add(2 * time.Second)
		s.Update(0.016)
		// Pop everything so spawning continues, sampling many spawns.
		s.bubbles = nil
	}

	// Respawn a fresh batch and inspect it before any motion.
	*now = now.Add(2 * time.Second)
	s.Update(0)

	for _, b := range s.Bubbles() {
		if b.Radius < 30 || b.Radius > 50 {
			t.Errorf("bubble %d radius = %d, want within [30, 50]", b.ID, b.Radius)
		}
		if b.Points != b.Radius/5 {
			t.Errorf("bubble %d points = %d, want %d", b.ID, b.Points, b.Radius/5)
		}
		onEdge := b.X == 0 || b.X == 1 || b.Y == 0 || b.Y == 1
		if !onEdge {
			t.Errorf("bubble %d spawned at (%f, %f), want on an edge", b.ID, b.X, b.Y)
		}
		// Along-edge coordinate is inset away from the corners.
		if b.X == 0 || b.X == 1 {
			if b.Y < 0.15 || b.Y > 0.85 {
				t.Errorf("bubble %d along-edge y = %f, want within [0.15, 0.85]", b.ID, b.Y)
			}
		} else if b.X < 0.15 || b.X > 0.85 {
			t.Errorf("bubble %d along-edge x = %f, want within [0.15, 0.85]", b.ID, b.X)
		}
	}
}

func TestSimulation_SpawnVelocityIsInward(t *testing.T) {
	s, now := newTestSim(testConfig())

	for i := 0; i < 100; i++ {
		*now = now.Add(2 * time.Second)
		s.Update(0)

		for _, b := range s.Bubbles() {
			var inbound float64
			switch {
			case b.Y == 0:
				inbound = b.VelY
			case b.Y == 1:
				inbound = -b.VelY
			case b.X == 0:
				inbound = b.VelX
			case b.X == 1:
				inbound = -b.VelX
			}
			if inbound < 0.08 || inbound > 0.25 {
				t.Fatalf("bubble %d inbound speed = %f, want within [0.08, 0.25]", b.ID, inbound)
			}
		}
		s.bubbles = nil
	}
}

func TestSimulation_MonotonicIDs(t *testing.T) {
	s, now := newTestSim(testConfig())

	lastID := -1
	for i := 0; i < 30; i++ {
		*now = now.Add(2 * time.Second)
		s.Update(0)
		for _, b := range s.Bubbles() {
			if b.ID <= lastID {
				t.Fatalf("bubble id %d not greater than previous %d", b.ID, lastID)
			}
			lastID = b.ID
		}
		s.bubbles = nil
	}
}

func TestSimulation_UpdateZeroDt(t *testing.T) {
	s, _ := newTestSim(testConfig())

	s.bubbles = []Bubble{
		{ID: 0, X: 0.3, Y: 0.4, Radius: 40, VelX: 0.2, VelY: -0.1, Points: 8},
		{ID: 1, X: 0.7, Y: 0.6, Radius: 30, VelX: -0.1, VelY: 0.2, Points: 6},
	}
	before := s.Bubbles()
	scoreBefore := s.Score()

	s.Update(0)

	after := s.Bubbles()
	if len(after) != len(before) {
		t.Fatalf("bubble count changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i].X != after[i].X || before[i].Y != after[i].Y {
			t.Errorf("bubble %d moved on a zero-dt update", before[i].ID)
		}
	}
	if s.Score() != scoreBefore {
		t.Errorf("score changed on a zero-dt update")
	}
}

func TestSimulation_DtClamp(t *testing.T) {
	s, _ := newTestSim(testConfig())

	s.bubbles = []Bubble{{ID: 0, X: 0.5, Y: 0.5, Radius: 30, VelX: 0.5, VelY: 0}}

	// A 10-second stall integrates at most 0.1s worth of motion.
	s.Update(10)

	b := s.Bubbles()[0]
	if math.Abs(b.X-0.55) > 1e-12 {
		t.Errorf("x = %f after clamped update, want 0.55", b.X)
	}
}

func TestSimulation_WallReflection(t *testing.T) {
	s, _ := newTestSim(testConfig())

	// Heading left into the wall: 40px radius on an 800px screen means
	// the bubble must stay at x >= 0.05 after bouncing.
	s.bubbles = []Bubble{{ID: 0, X: 0.05, Y: 0.5, Radius: 40, VelX: -0.2, VelY: 0}}

	s.Update(0.1)

	b := s.Bubbles()[0]
	if b.VelX != 0.2 {
		t.Errorf("VelX = %f after wall hit, want 0.2", b.VelX)
	}
	if b.X < 0.05 {
		t.Errorf("x = %f, bubble must be clamped fully on-screen", b.X)
	}
	if b.VelY != 0 {
		t.Errorf("VelY = %f, cross-axis velocity must be untouched", b.VelY)
	}
}

func TestSimulation_OffscreenCull(t *testing.T) {
	s, _ := newTestSim(testConfig())

	s.bubbles = []Bubble{
		{ID: 0, X: -0.2, Y: 0.5, Radius: 30, Points: 6},
		{ID: 1, X: 0.5, Y: 1.2, Radius: 30, Points: 6},
		{ID: 2, X: 0.5, Y: 0.5, Radius: 30, VelX: 0.01, Points: 6},
	}

	s.Update(0.016)

	if s.Count() != 1 {
		t.Fatalf("Count() = %d after cull, want 1", s.Count())
	}
	if s.Bubbles()[0].ID != 2 {
		t.Errorf("wrong bubble survived the cull: %d", s.Bubbles()[0].ID)
	}
	if s.Score() != 0 || s.Popped() != 0 {
		t.Error("culled bubbles must not score")
	}
}

func TestSimulation_CheckCollisions_NotShooting(t *testing.T) {
	s, _ := newTestSim(testConfig())
	s.bubbles = []Bubble{{ID: 0, X: 0.5, Y: 0.5, Radius: 50, Points: 10}}

	hit := s.CheckCollisions(0.5, 0.5, false)

	if len(hit) != 0 {
		t.Errorf("pops while not shooting: %d", len(hit))
	}
	if s.Count() != 1 || s.Score() != 0 {
		t.Error("not-shooting check must leave state untouched")
	}
}

func TestSimulation_CheckCollisions_PopAndScore(t *testing.T) {
	s, _ := newTestSim(testConfig())

	// Radius 50 is worth 50/5 = 10 points.
	s.bubbles = []Bubble{{ID: 7, X: 0.5, Y: 0.5, Radius: 50, Points: 10}}

	hit := s.CheckCollisions(0.5, 0.5, true)

	if len(hit) != 1 || hit[0].ID != 7 {
		t.Fatalf("hit = %v, want bubble 7", hit)
	}
	if s.Score() != 10 {
		t.Errorf("Score() = %d, want 10", s.Score())
	}
	if s.Popped() != 1 {
		t.Errorf("Popped() = %d, want 1", s.Popped())
	}
	if s.Count() != 0 {
		t.Errorf("Count() = %d, popped bubble must leave the active set", s.Count())
	}
}

func TestSimulation_CheckCollisions_Boundary(t *testing.T) {
	s, _ := newTestSim(testConfig())

	// Bubble center at pixel (400, 300), radius 50: the hit boundary is
	// 55px. Pointer exactly on the boundary registers; just past it
	// does not.
	center := Bubble{ID: 0, X: 0.5, Y: 0.5, Radius: 50, Points: 10}

	s.bubbles = []Bubble{center}
	onBoundary := (400.0 + 55.0) / 800.0
	if hit := s.CheckCollisions(onBoundary, 0.5, true); len(hit) != 1 {
		t.Errorf("pointer at exactly radius*1.1: hit = %d, want 1", len(hit))
	}

	s.bubbles = []Bubble{center}
	s.score, s.popped = 0, 0
	pastBoundary := (400.0 + 55.5) / 800.0
	if hit := s.CheckCollisions(pastBoundary, 0.5, true); len(hit) != 0 {
		t.Errorf("pointer past radius*1.1: hit = %d, want 0", len(hit))
	}
	if s.Score() != 0 {
		t.Errorf("Score() = %d after miss, want 0", s.Score())
	}
}

func TestSimulation_CheckCollisions_SimultaneousPops(t *testing.T) {
	s, _ := newTestSim(testConfig())

	// Two overlapping bubbles under the pointer pop in the same tick.
	s.bubbles = []Bubble{
		{ID: 0, X: 0.5, Y: 0.5, Radius: 50, Points: 10},
		{ID: 1, X: 0.51, Y: 0.5, Radius: 40, Points: 8},
		{ID: 2, X: 0.9, Y: 0.9, Radius: 40, Points: 8},
	}

	hit := s.CheckCollisions(0.5, 0.5, true)

	if len(hit) != 2 {
		t.Fatalf("hit = %d bubbles, want 2", len(hit))
	}
	if s.Score() != 18 {
		t.Errorf("Score() = %d, want 18", s.Score())
	}
	if s.Popped() != 2 {
		t.Errorf("Popped() = %d, want 2", s.Popped())
	}
	if s.Count() != 1 || s.Bubbles()[0].ID != 2 {
		t.Error("distant bubble must survive the tick")
	}
}

func TestSimulation_ScoreNeverDecreases(t *testing.T) {
	s, now := newTestSim(testConfig())

	prev := 0
	for i := 0; i < 100; i++ {
		*now = now.Add(2 * time.Second)
		s.Update(0.05)
		s.CheckCollisions(0.5, 0.5, i%2 == 0)
		if s.Score() < prev {
			t.Fatalf("score decreased: %d -> %d", prev, s.Score())
		}
		prev = s.Score()
	}
}

func TestSimulation_RadiusStableOverLifetime(t *testing.T) {
	s, now := newTestSim(testConfig())

	radii := make(map[int]int)
	for i := 0; i < 500; i++ {
		*now = now.Add(200 * time.Millisecond)
		s.Update(0.05)
		for _, b := range s.Bubbles() {
			if r, seen := radii[b.ID]; seen && r != b.Radius {
				t.Fatalf("bubble %d radius changed: %d -> %d", b.ID, r, b.Radius)
			}
			radii[b.ID] = b.Radius
			if b.Radius < 30 || b.Radius > 50 {
				t.Fatalf("bubble %d radius = %d, want within [30, 50]", b.ID, b.Radius)
			}
		}
	}
}

func TestSimulation_Reset(t *testing.T) {
	s, now := newTestSim(testConfig())

	*now = now.Add(2 * time.Second)
	s.Update(0.016)
	s.CheckCollisions(0.5, 0.5, true)
	s.score = 42
	s.popped = 3

	s.Reset()

	if s.Count() != 0 || s.Score() != 0 || s.Popped() != 0 {
		t.Errorf("after Reset: count=%d score=%d popped=%d, want zeros",
			s.Count(), s.Score(), s.Popped())
	}
	if !s.lastSpawn.Equal(*now) {
		t.Error("Reset must restart the spawn clock")
	}

	// Idempotent: a second call leaves identical state.
	s.Reset()
	if s.Count() != 0 || s.Score() != 0 || s.Popped() != 0 {
		t.Error("Reset is not idempotent")
	}

	// IDs keep increasing across a reset.
	idBefore := s.nextID
	*now = now.Add(2 * time.Second)
	s.Update(0.016)
	if s.Count() == 1 && s.Bubbles()[0].ID != idBefore {
		t.Errorf("post-reset bubble id = %d, want %d", s.Bubbles()[0].ID, idBefore)
	}
}

func TestSimulation_BubblesReturnsCopy(t *testing.T) {
	s, _ := newTestSim(testConfig())
	s.bubbles = []Bubble{{ID: 0, X: 0.5, Y: 0.5, Radius: 30}}

	snapshot := s.Bubbles()
	snapshot[0].X = 0.0

	if s.bubbles[0].X != 0.5 {
		t.Error("mutating a snapshot must not affect simulation state")
	}
}
