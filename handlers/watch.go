package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"reelgrid/models"
	"reelgrid/services/metadata"
	"reelgrid/services/sources"
	"reelgrid/utils"
)

type WatchTitle struct {
	ID          int64  `json:"id"`
	MediaType   string `json:"mediaType"`
	Name        string `json:"name"`
	Overview    string `json:"overview"`
	PosterURL   string `json:"posterUrl"`
	BackdropURL string `json:"backdropUrl"`
	Year        string `json:"year"`
	Rating      string `json:"rating"`
}

type WatchEpisodeView struct {
	models.Episode
	StillURL string `json:"stillUrl"`
	AirLong  string `json:"airLong"`
	Runtime  string `json:"runtime"`
}

type WatchResponse struct {
	Title         WatchTitle            `json:"title"`
	Season        int                   `json:"season,omitempty"`
	Episode       int                   `json:"episode,omitempty"`
	Seasons       []models.Season       `json:"seasons,omitempty"`
	Episodes      []WatchEpisodeView    `json:"episodes,omitempty"`
	Current       *WatchEpisodeView     `json:"current,omitempty"`
	Sources       []models.StreamSource `json:"sources"`
	DefaultSource string                `json:"defaultSource"`
	DownloadURL   string                `json:"downloadUrl"`
}

// WatchHandler assembles everything the playback page needs for one title.
type WatchHandler struct {
	Service catalogService
}

func NewWatchHandler(s catalogService) *WatchHandler {
	return &WatchHandler{Service: s}
}

// Get handles GET /api/watch/{type}/{id}?season=N&episode=N. Out-of-range
// season and episode numbers clamp into the valid range instead of erroring:
// stale bookmarks still land on something playable.
func (h *WatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	mediaType := strings.ToLower(mux.Vars(r)["type"])
	id, ok := parseTitleID(r)
	if !ok {
		writeJSONError(w, "title not found", http.StatusNotFound)
		return
	}

	switch mediaType {
	case models.MediaTypeMovie:
		h.movie(w, r, id)
	case models.MediaTypeSeries:
		h.series(w, r, id)
	default:
		writeJSONError(w, "title not found", http.StatusNotFound)
	}
}

func (h *WatchHandler) movie(w http.ResponseWriter, r *http.Request, id int64) {
	details, err := h.Service.MovieDetails(r.Context(), id)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, WatchResponse{
		Title:         watchTitle(details),
		Sources:       sources.ForMovie(id),
		DefaultSource: sources.DefaultID,
		DownloadURL:   sources.MovieDownloadURL(id),
	})
}

func (h *WatchHandler) series(w http.ResponseWriter, r *http.Request, id int64) {
	details, err := h.Service.SeriesDetails(r.Context(), id)
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	// Specials (season 0) are not part of the watch flow.
	seasons := make([]models.Season, 0, len(details.Seasons))
	maxSeason := 1
	for _, s := range details.Seasons {
		if s.SeasonNumber <= 0 {
			continue
		}
		seasons = append(seasons, s)
		if s.SeasonNumber > maxSeason {
			maxSeason = s.SeasonNumber
		}
	}

	season := clampInt(queryInt(r, "season", 1), 1, maxSeason)

	// A bad season payload should not take the whole page down; the episode
	// rail just renders empty.
	var episodes []models.Episode
	if seasonDetails, err := h.Service.Season(r.Context(), id, season); err != nil {
		log.Printf("[watch] failed to fetch series %d season %d: %v", id, season, err)
	} else {
		episodes = seasonDetails.Episodes
	}

	episode := queryInt(r, "episode", 1)
	if len(episodes) > 0 {
		episode = clampInt(episode, 1, len(episodes))
	} else {
		episode = 1
	}

	resp := WatchResponse{
		Title:         watchTitle(details),
		Season:        season,
		Episode:       episode,
		Seasons:       seasons,
		Episodes:      make([]WatchEpisodeView, 0, len(episodes)),
		Sources:       sources.ForEpisode(id, season, episode),
		DefaultSource: sources.DefaultID,
		DownloadURL:   sources.EpisodeDownloadURL(id, season, episode),
	}
	for _, e := range episodes {
		view := watchEpisode(e)
		resp.Episodes = append(resp.Episodes, view)
		// Resolve the current episode by number, not position: episode
		// numbering and slice order are not guaranteed to agree.
		if e.EpisodeNumber == episode {
			current := view
			resp.Current = &current
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func watchTitle(d models.TitleDetails) WatchTitle {
	return WatchTitle{
		ID:          d.ID,
		MediaType:   d.MediaType,
		Name:        d.Name,
		Overview:    d.Overview,
		PosterURL:   metadata.PosterURL(d.PosterPath, ""),
		BackdropURL: metadata.BackdropURL(d.BackdropPath, ""),
		Year:        utils.FormatYear(d.ReleaseDate),
		Rating:      utils.FormatVoteAverage(d.VoteAverage),
	}
}

func watchEpisode(e models.Episode) WatchEpisodeView {
	return WatchEpisodeView{
		Episode:  e,
		StillURL: metadata.StillURL(e.StillPath, ""),
		AirLong:  utils.FormatDate(e.AirDate),
		Runtime:  utils.FormatRuntime(e.RuntimeMinutes),
	}
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
