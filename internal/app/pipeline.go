package app

import (
	"errors"
	"log"
	"time"

	"github.com/ayusman/bubblepop/internal/flow"
)

// errStreamEnd marks the normal end of the frame stream: a per-tick
// read failure terminates the loop gracefully rather than as an error.
var errStreamEnd = errors.New("frame stream ended")

// Run drives the session loop until the user exits, Stop is called or
// the frame stream ends. Resource teardown runs unconditionally on
// every exit path.
//
// One full tick: read frame -> detect hands -> classify gesture ->
// smooth pointer -> dispatch to menu selection or collision check
// depending on flow state -> advance the simulation. Classification
// and smoothing for a tick always see that tick's detection result
// before its selection/collision check runs.
func (s *Session) Run() error {
	defer s.Close()

	ticker := time.NewTicker(time.Second / TickRate)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			log.Printf("Session %s stopped", s.id)
			return nil
		case <-ticker.C:
			if err := s.tick(); err != nil {
				if errors.Is(err, errStreamEnd) {
					log.Printf("Frame stream ended, session %s over (score=%d, popped=%d)",
						s.id, s.sim.Score(), s.sim.Popped())
					return nil
				}
				return err
			}
			if s.flow.State() == flow.StateExited {
				log.Printf("Session %s exited via menu", s.id)
				return nil
			}
		}
	}
}

// tick processes exactly one frame.
func (s *Session) tick() error {
	now := s.now()
	dt := now.Sub(s.lastTick).Seconds()
	s.lastTick = now

	frame, err := s.camera.ReadFrame()
	if err != nil {
		// Normal stream end, not an exception.
		return errStreamEnd
	}

	result, err := s.detector.Detect(frame)
	frame.Close()
	if err != nil {
		log.Printf("Detector failure: %v", err)
		return errStreamEnd
	}

	// Absent hands are an ordinary state: the pointer drifts back to
	// center and shooting is forced off.
	s.shooting = false
	hand := result.FirstHand()
	if hand != nil {
		if anchor, ok := s.classifier.PointerAnchor(hand); ok {
			s.pointer.SetTarget(anchor.X, anchor.Y)
		} else {
			s.pointer.ClearTarget()
		}
		s.shooting = s.classifier.IsClosed(hand)
	} else {
		s.pointer.ClearTarget()
	}
	s.pointer.Step()

	px, py := s.pointer.Position()

	switch s.flow.State() {
	case flow.StateMainMenu:
		pixelX := int(px * float64(s.cfg.ScreenWidth))
		pixelY := int(py * float64(s.cfg.ScreenHeight))
		s.flow.Tick(pixelX, pixelY, s.shooting)

		// A fresh game starts from a clean simulation and spawn clock.
		if s.flow.State() == flow.StatePlaying {
			s.sim.Reset()
			log.Printf("Game started in session %s", s.id)
		}

	case flow.StatePlaying:
		if popped := s.sim.CheckCollisions(px, py, s.shooting); len(popped) > 0 {
			log.Printf("Popped %d bubble(s), score=%d", len(popped), s.sim.Score())
		}
	}

	s.sim.Update(dt)
	s.publishSnapshot()

	return nil
}
