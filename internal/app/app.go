// Package app orchestrates one bubble game session: camera frames in,
// gesture classification, pointer smoothing, menu flow and the bubble
// simulation.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/bubblepop/internal/capture"
	"github.com/ayusman/bubblepop/internal/config"
	"github.com/ayusman/bubblepop/internal/detector"
	"github.com/ayusman/bubblepop/internal/flow"
	"github.com/ayusman/bubblepop/internal/game"
	"github.com/ayusman/bubblepop/internal/gesture"
)

// TickRate is the target frame rate of the session loop.
const TickRate = 30

// Menu layout offsets from the vertical screen center, in pixels.
const (
	menuStartOffsetY = -30
	menuExitOffsetY  = 50
)

// Session owns all mutable state of one game session: the bubble
// simulation, the flow controller, the smoothed pointer and the
// shooting flag. The tick loop is its only writer; renderers observe
// it through published snapshots.
type Session struct {
	cfg        config.Config
	camera     capture.Camera
	detector   detector.Detector
	classifier *gesture.Classifier
	pointer    *gesture.PointerTracker
	flow       *flow.Controller
	sim        *game.Simulation

	id       string
	shooting bool
	lastTick time.Time
	now      func() time.Time

	stopCh    chan struct{}
	stopOnce  sync.Once
	closeOnce sync.Once

	snapMu   sync.RWMutex
	snapshot Snapshot
}

// MenuEntry is the render-facing view of one menu item.
type MenuEntry struct {
	Label   string `json:"label"`
	CenterX int    `json:"center_x"`
	CenterY int    `json:"center_y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Hovered bool   `json:"hovered"`
}

// Snapshot is a read-only view of the session published after every
// tick for renderers and the overlay server. It shares no memory with
// the live session state.
type Snapshot struct {
	SessionID string        `json:"session_id"`
	State     string        `json:"state"`
	PointerX  float64       `json:"pointer_x"`
	PointerY  float64       `json:"pointer_y"`
	Shooting  bool          `json:"shooting"`
	Score     int           `json:"score"`
	Popped    int           `json:"popped"`
	Bubbles   []game.Bubble `json:"bubbles"`
	Menu      []MenuEntry   `json:"menu"`
	Timestamp time.Time     `json:"timestamp"`
}

// NewSession creates a Session wired to the given camera and detector.
// Nothing is acquired until Start.
func NewSession(cfg config.Config, cam capture.Camera, det detector.Detector) *Session {
	s := &Session{
		cfg:      cfg,
		camera:   cam,
		detector: det,
		classifier: gesture.NewClassifier(gesture.ClassifierConfig{
			ThumbCloseDistance: cfg.ThumbCloseDistance,
			MinBentFingers:     cfg.MinBentFingers,
		}),
		pointer: gesture.NewPointerTracker(cfg.PointerSmoothing),
		flow:    flow.NewController(cfg.SelectionCooldown),
		sim: game.NewSimulation(game.Config{
			ScreenWidth:  cfg.ScreenWidth,
			ScreenHeight: cfg.ScreenHeight,
			MaxBubbles:   cfg.MaxBubbles,
			SpawnRate:    cfg.SpawnRate,
			MinRadius:    cfg.MinRadius,
			MaxRadius:    cfg.MaxRadius,
			HitTolerance: cfg.HitTolerance,
		}),
		id:     uuid.NewString(),
		now:    time.Now,
		stopCh: make(chan struct{}),
	}

	centerX := cfg.ScreenWidth / 2
	centerY := cfg.ScreenHeight / 2
	s.flow.AddItem("Start Game", centerX, centerY+menuStartOffsetY, func() string {
		return flow.ActionStartGame
	})
	s.flow.AddItem("Exit", centerX, centerY+menuExitOffsetY, func() string {
		return flow.ActionExit
	})

	return s
}

// ID returns the unique identifier of this session.
func (s *Session) ID() string {
	return s.id
}

// Start acquires the camera and initializes the detector. On failure
// anything partially acquired is released and the session must not be
// run; startup failures are fatal, not retried.
func (s *Session) Start() error {
	if err := s.camera.Open(); err != nil {
		return err
	}

	if err := s.detector.Initialize(); err != nil {
		if cerr := s.camera.Close(); cerr != nil {
			log.Printf("Error closing camera after failed detector init: %v", cerr)
		}
		return err
	}

	s.lastTick = s.now()
	s.publishSnapshot()

	log.Printf("Session %s started", s.id)
	return nil
}

// Stop signals the run loop to end. Safe to call from another
// goroutine and more than once.
func (s *Session) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// Close releases the camera and detector. It runs at most once and is
// called on every exit path of Run.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if err := s.camera.Close(); err != nil {
			log.Printf("Error closing camera: %v", err)
		}
		if err := s.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
		log.Printf("Session %s closed", s.id)
	})
}

// State returns the current flow state.
func (s *Session) State() flow.State {
	return s.flow.State()
}

// Snapshot returns the most recently published session snapshot.
func (s *Session) Snapshot() Snapshot {
	s.snapMu.RLock()
	defer s.snapMu.RUnlock()
	return s.snapshot
}

// publishSnapshot copies the current session state into the snapshot
// slot read by renderers.
func (s *Session) publishSnapshot() {
	px, py := s.pointer.Position()

	items := s.flow.Items()
	menu := make([]MenuEntry, len(items))
	for i, item := range items {
		menu[i] = MenuEntry{
			Label:   item.Label,
			CenterX: item.CenterX,
			CenterY: item.CenterY,
			Width:   item.Width,
			Height:  item.Height,
			Hovered: item.Hovered,
		}
	}

	snap := Snapshot{
		SessionID: s.id,
		State:     s.flow.State().String(),
		PointerX:  px,
		PointerY:  py,
		Shooting:  s.shooting,
		Score:     s.sim.Score(),
		Popped:    s.sim.Popped(),
		Bubbles:   s.sim.Bubbles(),
		Menu:      menu,
		Timestamp: s.now(),
	}

	s.snapMu.Lock()
	s.snapshot = snap
	s.snapMu.Unlock()
}
