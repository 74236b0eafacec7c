package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"reelgrid/handlers"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Homepage *handlers.HomepageHandler
	Catalog  *handlers.CatalogHandler
	Details  *handlers.DetailsHandler
	Watch    *handlers.WatchHandler
	Search   *handlers.SearchHandler
	Player   *handlers.PlayerHandler
	Settings *handlers.SettingsHandler
}

// RegisterRoutes mounts the API surface under /api.
func RegisterRoutes(r *mux.Router, h Handlers) {
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/homepage", h.Homepage.Get).Methods(http.MethodGet)

	api.HandleFunc("/trending/{type}", h.Catalog.Trending).Methods(http.MethodGet)
	api.HandleFunc("/movies/{list}", h.Catalog.MovieList).Methods(http.MethodGet)
	api.HandleFunc("/series/{list}", h.Catalog.SeriesList).Methods(http.MethodGet)
	api.HandleFunc("/discover/{type}", h.Catalog.ByGenre).Methods(http.MethodGet)

	api.HandleFunc("/details/{type}/{id}", h.Details.Get).Methods(http.MethodGet)
	api.HandleFunc("/watch/{type}/{id}", h.Watch.Get).Methods(http.MethodGet)
	api.HandleFunc("/search", h.Search.Get).Methods(http.MethodGet)

	api.HandleFunc("/player/sessions", h.Player.Start).Methods(http.MethodPost)
	api.HandleFunc("/player/sessions/{id}", h.Player.Get).Methods(http.MethodGet)
	api.HandleFunc("/player/sessions/{id}", h.Player.Close).Methods(http.MethodDelete)
	api.HandleFunc("/player/sessions/{id}/activate", h.Player.Activate).Methods(http.MethodPost)
	api.HandleFunc("/player/sessions/{id}/source", h.Player.SwitchSource).Methods(http.MethodPost)
	api.HandleFunc("/player/sessions/{id}/episode", h.Player.SelectEpisode).Methods(http.MethodPost)
	api.HandleFunc("/player/sessions/{id}/fullscreen", h.Player.Fullscreen).Methods(http.MethodPost)
	api.HandleFunc("/player/sessions/{id}/activity", h.Player.Activity).Methods(http.MethodPost)
	api.HandleFunc("/player/sessions/{id}/error", h.Player.ReportError).Methods(http.MethodPost)

	api.HandleFunc("/settings", h.Settings.GetSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings", h.Settings.UpdateSettings).Methods(http.MethodPut)
}
