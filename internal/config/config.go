// Package config assembles the game's tunable settings from defaults,
// an optional .env file, environment variables and the settings store.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/ayusman/bubblepop/internal/store"
)

// Environment variable names. Each overrides the corresponding default
// or stored setting.
const (
	EnvCameraID           = "BUBBLEPOP_CAMERA_ID"
	EnvScreenWidth        = "BUBBLEPOP_SCREEN_WIDTH"
	EnvScreenHeight       = "BUBBLEPOP_SCREEN_HEIGHT"
	EnvMaxBubbles         = "BUBBLEPOP_MAX_BUBBLES"
	EnvSpawnRate          = "BUBBLEPOP_SPAWN_RATE"
	EnvMinRadius          = "BUBBLEPOP_MIN_RADIUS"
	EnvMaxRadius          = "BUBBLEPOP_MAX_RADIUS"
	EnvHitTolerance       = "BUBBLEPOP_HIT_TOLERANCE"
	EnvThumbCloseDistance = "BUBBLEPOP_THUMB_CLOSE_DISTANCE"
	EnvMinBentFingers     = "BUBBLEPOP_MIN_BENT_FINGERS"
	EnvPointerSmoothing   = "BUBBLEPOP_POINTER_SMOOTHING"
	EnvSelectionCooldown  = "BUBBLEPOP_SELECTION_COOLDOWN"
	EnvServerAddr         = "BUBBLEPOP_SERVER_ADDR"
)

// Config holds every tunable knob of the game. The policy constants
// (gesture thresholds, smoothing, cooldown) are configuration rather
// than hardcoded values so they can be tuned and pinned in tests.
type Config struct {
	CameraID     int
	ScreenWidth  int
	ScreenHeight int

	MaxBubbles   int
	SpawnRate    float64
	MinRadius    int
	MaxRadius    int
	HitTolerance float64

	ThumbCloseDistance float64
	MinBentFingers     int
	PointerSmoothing   float64
	SelectionCooldown  time.Duration

	// ServerAddr is where the overlay server listens; empty disables it.
	ServerAddr string
}

// Default returns the configuration used in normal play.
func Default() Config {
	return Config{
		CameraID:           0,
		ScreenWidth:        800,
		ScreenHeight:       600,
		MaxBubbles:         5,
		SpawnRate:          0.8,
		MinRadius:          30,
		MaxRadius:          50,
		HitTolerance:       1.1,
		ThumbCloseDistance: 0.15,
		MinBentFingers:     4,
		PointerSmoothing:   0.15,
		SelectionCooldown:  time.Second,
		ServerAddr:         ":8080",
	}
}

// Load builds the effective configuration: defaults, overlaid with the
// settings store (when non-nil), overlaid with environment variables.
// A .env file in the working directory is folded into the environment
// first when present.
func Load(settings *store.SettingsRepository) Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded settings from .env")
	}

	cfg := Default()

	if settings != nil {
		cfg.ThumbCloseDistance = settings.GetFloat(store.SettingThumbCloseDistance, cfg.ThumbCloseDistance)
		cfg.MinBentFingers = settings.GetInt(store.SettingMinBentFingers, cfg.MinBentFingers)
		cfg.PointerSmoothing = settings.GetFloat(store.SettingPointerSmoothing, cfg.PointerSmoothing)
		cfg.MaxBubbles = settings.GetInt(store.SettingMaxBubbles, cfg.MaxBubbles)
		cfg.SpawnRate = settings.GetFloat(store.SettingSpawnRate, cfg.SpawnRate)
		cfg.MinRadius = settings.GetInt(store.SettingMinRadius, cfg.MinRadius)
		cfg.MaxRadius = settings.GetInt(store.SettingMaxRadius, cfg.MaxRadius)
		cfg.HitTolerance = settings.GetFloat(store.SettingHitTolerance, cfg.HitTolerance)
		if secs := settings.GetFloat(store.SettingSelectionCooldown, cfg.SelectionCooldown.Seconds()); secs > 0 {
			cfg.SelectionCooldown = time.Duration(secs * float64(time.Second))
		}
	}

	cfg.CameraID = envInt(EnvCameraID, cfg.CameraID)
	cfg.ScreenWidth = envInt(EnvScreenWidth, cfg.ScreenWidth)
	cfg.ScreenHeight = envInt(EnvScreenHeight, cfg.ScreenHeight)
	cfg.MaxBubbles = envInt(EnvMaxBubbles, cfg.MaxBubbles)
	cfg.SpawnRate = envFloat(EnvSpawnRate, cfg.SpawnRate)
	cfg.MinRadius = envInt(EnvMinRadius, cfg.MinRadius)
	cfg.MaxRadius = envInt(EnvMaxRadius, cfg.MaxRadius)
	cfg.HitTolerance = envFloat(EnvHitTolerance, cfg.HitTolerance)
	cfg.ThumbCloseDistance = envFloat(EnvThumbCloseDistance, cfg.ThumbCloseDistance)
	cfg.MinBentFingers = envInt(EnvMinBentFingers, cfg.MinBentFingers)
	cfg.PointerSmoothing = envFloat(EnvPointerSmoothing, cfg.PointerSmoothing)
	if secs := envFloat(EnvSelectionCooldown, cfg.SelectionCooldown.Seconds()); secs > 0 {
		cfg.SelectionCooldown = time.Duration(secs * float64(time.Second))
	}
	if addr, ok := os.LookupEnv(EnvServerAddr); ok {
		cfg.ServerAddr = addr
	}

	return cfg
}

func envInt(name string, fallback int) int {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Ignoring %s=%q: %v", name, raw, err)
		return fallback
	}
	return v
}

func envFloat(name string, fallback float64) float64 {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("Ignoring %s=%q: %v", name, raw, err)
		return fallback
	}
	return v
}
