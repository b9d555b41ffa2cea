package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ayusman/bubblepop/internal/app"
	"github.com/ayusman/bubblepop/internal/capture"
	"github.com/ayusman/bubblepop/internal/config"
	"github.com/ayusman/bubblepop/internal/detector"
	"github.com/ayusman/bubblepop/internal/server"
	"github.com/ayusman/bubblepop/internal/store"
)

func main() {
	fmt.Println("Bubble Pop - Gesture Controlled Bubble Game")

	mode := "play"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	// Initialize the settings store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dbDir := filepath.Join(homeDir, ".bubblepop")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dbDir, "bubblepop.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	cfg := config.Load(st.Settings())

	cam := capture.NewCamera(cfg.CameraID)

	// One hand drives the game; extra hands are ignored anyway.
	detCfg := detector.DefaultConfig()
	detCfg.MaxHands = 1
	det, err := detector.NewMediaPipeDetector(detCfg)
	if err != nil {
		log.Fatalf("Failed to create detector: %v", err)
	}

	switch mode {
	case "play":
		runGame(cfg, st, cam, det)
	case "preview":
		runPreview(cam, det)
	default:
		fmt.Fprintf(os.Stderr, "Usage: %s [play|preview]\n", filepath.Base(os.Args[0]))
		os.Exit(2)
	}
}

// runGame runs the full menu-and-game session, with the overlay server
// alongside when configured.
func runGame(cfg config.Config, st *store.Store, cam capture.Camera, det detector.Detector) {
	session := app.NewSession(cfg, cam, det)

	if err := session.Start(); err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	if cfg.ServerAddr != "" {
		srv := server.New(server.Config{
			Settings: st.Settings(),
			Camera:   cam,
			Session:  session,
		})
		go func() {
			fmt.Printf("Overlay server listening on %s\n", cfg.ServerAddr)
			if err := srv.ListenAndServe(cfg.ServerAddr); err != nil {
				log.Printf("Overlay server stopped: %v", err)
			}
		}()
	}

	// Ctrl-C ends the session cleanly.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Received shutdown signal")
		session.Stop()
	}()

	if err := session.Run(); err != nil {
		log.Fatalf("Session failed: %v", err)
	}

	snap := session.Snapshot()
	fmt.Printf("Final score: %d (%d bubbles popped)\n", snap.Score, snap.Popped)
}

// runPreview runs the minimal detector preview loop for checking camera
// placement and hand tracking.
func runPreview(cam capture.Camera, det detector.Detector) {
	preview := app.NewPreview(cam, det)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Received shutdown signal")
		preview.Stop()
	}()

	if err := preview.Run(); err != nil {
		log.Fatalf("Preview failed: %v", err)
	}
}
