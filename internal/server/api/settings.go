// Package api provides HTTP API handlers for the bubble game overlay
// server.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/bubblepop/internal/store"
)

// SettingsHandler handles HTTP requests for persisted tuning settings.
type SettingsHandler struct {
	settings *store.SettingsRepository
}

// NewSettingsHandler creates a new SettingsHandler over the given
// settings repository.
func NewSettingsHandler(s *store.SettingsRepository) *SettingsHandler {
	return &SettingsHandler{settings: s}
}

// ServeHTTP implements the http.Handler interface and routes requests
// to the collection or item methods.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/settings or /api/settings/{key}
	key := strings.TrimPrefix(r.URL.Path, "/api/settings")
	key = strings.TrimPrefix(key, "/")

	if key == "" {
		// Collection endpoint: /api/settings
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, key)
	case http.MethodPut:
		h.put(w, r, key)
	case http.MethodDelete:
		h.delete(w, r, key)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type putSettingRequest struct {
	Value string `json:"value"`
}

type settingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type listSettingsResponse struct {
	Settings map[string]string `json:"settings"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/settings and returns all stored settings.
func (h *SettingsHandler) list(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list settings")
		return
	}
	writeJSON(w, http.StatusOK, listSettingsResponse{Settings: settings})
}

// get handles GET /api/settings/{key}.
func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request, key string) {
	value, err := h.settings.Get(key)
	if errors.Is(err, store.ErrSettingNotFound) {
		writeError(w, http.StatusNotFound, "Setting not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load setting")
		return
	}
	writeJSON(w, http.StatusOK, settingResponse{Key: key, Value: value})
}

// put handles PUT /api/settings/{key}, creating or replacing the value.
func (h *SettingsHandler) put(w http.ResponseWriter, r *http.Request, key string) {
	var req putSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Value == "" {
		writeError(w, http.StatusBadRequest, "Value is required")
		return
	}

	if err := h.settings.Set(key, req.Value); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store setting")
		return
	}
	writeJSON(w, http.StatusOK, settingResponse{Key: key, Value: req.Value})
}

// delete handles DELETE /api/settings/{key}. Deleting a missing key
// succeeds.
func (h *SettingsHandler) delete(w http.ResponseWriter, r *http.Request, key string) {
	if err := h.settings.Delete(key); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete setting")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
