package app

import (
	"log"
	"sync"
	"time"

	"github.com/ayusman/bubblepop/internal/capture"
	"github.com/ayusman/bubblepop/internal/detector"
	"github.com/ayusman/bubblepop/internal/gesture"
)

// Preview is the minimal detector-preview pipeline: it reads frames,
// reports detected hands, gesture classification and scene activity so
// players can check camera placement before starting a game.
type Preview struct {
	camera     capture.Camera
	detector   detector.Detector
	motion     *capture.MotionMeter
	classifier *gesture.Classifier

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewPreview creates a detector preview over the given camera and
// detector.
func NewPreview(cam capture.Camera, det detector.Detector) *Preview {
	return &Preview{
		camera:     cam,
		detector:   det,
		motion:     capture.NewMotionMeter(1.0),
		classifier: gesture.NewClassifier(gesture.DefaultClassifierConfig()),
		stopCh:     make(chan struct{}),
	}
}

// Stop signals the preview loop to end.
func (p *Preview) Stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
}

// Run acquires the camera and detector and loops until stopped or the
// stream ends, logging one status line per tick batch. Teardown runs
// on every exit path.
func (p *Preview) Run() error {
	if err := p.camera.Open(); err != nil {
		return err
	}

	if err := p.detector.Initialize(); err != nil {
		if cerr := p.camera.Close(); cerr != nil {
			log.Printf("Error closing camera after failed detector init: %v", cerr)
		}
		return err
	}

	defer func() {
		if err := p.camera.Close(); err != nil {
			log.Printf("Error closing camera: %v", err)
		}
		if err := p.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
		p.motion.Close()
	}()

	log.Println("Detector preview running")

	ticker := time.NewTicker(time.Second / TickRate)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return nil
		case <-ticker.C:
			frame, err := p.camera.ReadFrame()
			if err != nil {
				log.Println("Frame stream ended, preview over")
				return nil
			}

			_, activity := p.motion.Measure(frame)

			result, err := p.detector.Detect(frame)
			frame.Close()
			if err != nil {
				log.Printf("Detector failure: %v", err)
				return nil
			}

			hand := result.FirstHand()
			if hand == nil {
				log.Printf("No hands (activity %.1f%%)", activity)
				continue
			}

			state := "open"
			if p.classifier.IsClosed(hand) {
				state = "closed"
			}
			if anchor, ok := p.classifier.PointerAnchor(hand); ok {
				log.Printf("%s hand %s at (%.2f, %.2f), score %.2f, activity %.1f%%",
					hand.Handedness, state, anchor.X, anchor.Y, hand.Score, activity)
			} else {
				log.Printf("%s hand %s, score %.2f, activity %.1f%%",
					hand.Handedness, state, hand.Score, activity)
			}
		}
	}
}
