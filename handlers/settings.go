package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"reelgrid/config"
	"reelgrid/services/metadata"
)

type SettingsHandler struct {
	Manager         *config.Manager
	MetadataService *metadata.Service
}

func NewSettingsHandler(m *config.Manager) *SettingsHandler {
	return &SettingsHandler{Manager: m}
}

// SetMetadataService sets the metadata service for hot reloading API keys
func (h *SettingsHandler) SetMetadataService(ms *metadata.Service) {
	h.MetadataService = ms
}

func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.Manager.Load()
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	current, err := h.Manager.Load()
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var incoming config.Settings
	if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Manager.Save(incoming); err != nil {
		writeJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Hot-reload the catalog client when the key changed so the new key
	// takes effect without a restart.
	if h.MetadataService != nil && incoming.Metadata.TMDBAPIKey != current.Metadata.TMDBAPIKey {
		log.Printf("[settings] tmdb api key changed, reloading metadata service")
		h.MetadataService.UpdateAPIKey(incoming.Metadata.TMDBAPIKey)
	}

	writeJSON(w, http.StatusOK, incoming)
}
