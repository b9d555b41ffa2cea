package store

import (
	"database/sql"
	"errors"
	"strconv"
	"time"
)

// ErrSettingNotFound is returned when a setting key has no stored value.
var ErrSettingNotFound = errors.New("setting not found")

// Well-known setting keys for the game's tuning values.
const (
	SettingThumbCloseDistance = "gesture.thumb_close_distance"
	SettingMinBentFingers     = "gesture.min_bent_fingers"
	SettingPointerSmoothing   = "pointer.smoothing"
	SettingMaxBubbles         = "game.max_bubbles"
	SettingSpawnRate          = "game.spawn_rate"
	SettingMinRadius          = "game.min_radius"
	SettingMaxRadius          = "game.max_radius"
	SettingHitTolerance       = "game.hit_tolerance"
	SettingSelectionCooldown  = "menu.selection_cooldown"
)

// SettingsRepository provides access to persisted tuning settings.
type SettingsRepository struct {
	db *sql.DB
}

// Settings returns the settings repository for this store.
func (s *Store) Settings() *SettingsRepository {
	return &SettingsRepository{db: s.db}
}

// Set stores a setting value, replacing any previous one.
func (r *SettingsRepository) Set(key, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now(),
	)
	return err
}

// Get retrieves a setting value by key.
func (r *SettingsRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrSettingNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// GetFloat retrieves a setting as a float64, returning fallback when
// the key is missing or does not parse.
func (r *SettingsRepository) GetFloat(key string, fallback float64) float64 {
	raw, err := r.Get(key)
	if err != nil {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

// GetInt retrieves a setting as an int, returning fallback when the
// key is missing or does not parse.
func (r *SettingsRepository) GetInt(key string, fallback int) int {
	raw, err := r.Get(key)
	if err != nil {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// SetFloat stores a float64 setting.
func (r *SettingsRepository) SetFloat(key string, value float64) error {
	return r.Set(key, strconv.FormatFloat(value, 'g', -1, 64))
}

// SetInt stores an int setting.
func (r *SettingsRepository) SetInt(key string, value int) error {
	return r.Set(key, strconv.Itoa(value))
}

// Delete removes a setting. Deleting a missing key is not an error.
func (r *SettingsRepository) Delete(key string) error {
	_, err := r.db.Exec(`DELETE FROM settings WHERE key = ?`, key)
	return err
}

// All returns every stored setting as a key-value map.
func (r *SettingsRepository) All() (map[string]string, error) {
	rows, err := r.db.Query(`SELECT key, value FROM settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}
	return settings, rows.Err()
}
