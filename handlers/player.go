package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"reelgrid/models"
	"reelgrid/services/player"
	"reelgrid/services/sources"
)

// PlayerHandler exposes the playback session state machine over HTTP. The
// frontend posts every player interaction here and renders whatever state
// comes back.
type PlayerHandler struct {
	Sessions *player.Manager
}

func NewPlayerHandler(m *player.Manager) *PlayerHandler {
	return &PlayerHandler{Sessions: m}
}

type sessionView struct {
	player.Session
	FrameKey string                `json:"frameKey"`
	EmbedURL string                `json:"embedUrl"`
	Sources  []models.StreamSource `json:"sources"`
}

func (h *PlayerHandler) view(s player.Session) sessionView {
	var srcs []models.StreamSource
	if s.MediaType == models.MediaTypeSeries {
		srcs = sources.ForEpisode(s.TitleID, s.Season, s.Episode)
	} else {
		srcs = sources.ForMovie(s.TitleID)
	}
	return sessionView{Session: s, FrameKey: s.FrameKey(), EmbedURL: s.EmbedURL(), Sources: srcs}
}

type startSessionRequest struct {
	MediaType string `json:"mediaType"`
	TitleID   int64  `json:"titleId"`
	Season    int    `json:"season"`
	Episode   int    `json:"episode"`
}

// Start handles POST /api/player/sessions.
func (h *PlayerHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	mediaType := strings.ToLower(strings.TrimSpace(req.MediaType))
	if mediaType != models.MediaTypeMovie && mediaType != models.MediaTypeSeries {
		writeJSONError(w, "mediaType must be movie or series", http.StatusBadRequest)
		return
	}
	if req.TitleID <= 0 {
		writeJSONError(w, "titleId required", http.StatusBadRequest)
		return
	}
	season, episode := 0, 0
	if mediaType == models.MediaTypeSeries {
		season, episode = req.Season, req.Episode
		if season < 1 {
			season = 1
		}
		if episode < 1 {
			episode = 1
		}
	}
	s := h.Sessions.Start(mediaType, req.TitleID, season, episode)
	writeJSON(w, http.StatusCreated, h.view(s))
}

// Get handles GET /api/player/sessions/{id}.
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.Sessions.Get(mux.Vars(r)["id"])
	if !ok {
		writeJSONError(w, "session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, h.view(s))
}

// Activate handles POST /api/player/sessions/{id}/activate.
func (h *PlayerHandler) Activate(w http.ResponseWriter, r *http.Request) {
	s, ok := h.Sessions.Activate(mux.Vars(r)["id"])
	if !ok {
		writeJSONError(w, "session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, h.view(s))
}

// SwitchSource handles POST /api/player/sessions/{id}/source.
func (h *PlayerHandler) SwitchSource(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Source string `json:"source"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	s, err := h.Sessions.SwitchSource(mux.Vars(r)["id"], req.Source)
	if err != nil {
		if errors.Is(err, player.ErrSessionNotFound) {
			writeJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, h.view(s))
}

// SelectEpisode handles POST /api/player/sessions/{id}/episode.
func (h *PlayerHandler) SelectEpisode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Season  int `json:"season"`
		Episode int `json:"episode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Season < 1 || req.Episode < 1 {
		writeJSONError(w, "season and episode must be positive", http.StatusBadRequest)
		return
	}
	s, err := h.Sessions.SelectEpisode(mux.Vars(r)["id"], req.Season, req.Episode)
	if err != nil {
		if errors.Is(err, player.ErrSessionNotFound) {
			writeJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, h.view(s))
}

// Fullscreen handles POST /api/player/sessions/{id}/fullscreen.
func (h *PlayerHandler) Fullscreen(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Fullscreen bool `json:"fullscreen"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	s, ok := h.Sessions.SetFullscreen(mux.Vars(r)["id"], req.Fullscreen)
	if !ok {
		writeJSONError(w, "session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, h.view(s))
}

// Activity handles POST /api/player/sessions/{id}/activity.
func (h *PlayerHandler) Activity(w http.ResponseWriter, r *http.Request) {
	s, ok := h.Sessions.Touch(mux.Vars(r)["id"])
	if !ok {
		writeJSONError(w, "session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, h.view(s))
}

// ReportError handles POST /api/player/sessions/{id}/error.
func (h *PlayerHandler) ReportError(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	s, ok := h.Sessions.SetError(mux.Vars(r)["id"], req.Message)
	if !ok {
		writeJSONError(w, "session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, h.view(s))
}

// Close handles DELETE /api/player/sessions/{id}.
func (h *PlayerHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Close(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}
