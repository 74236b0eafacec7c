package handlers

import (
	"net/http"
	"strings"

	"reelgrid/models"
)

// SearchHandler serves title search. People never appear in results; only
// movies and series are playable.
type SearchHandler struct {
	Service catalogService
}

func NewSearchHandler(s catalogService) *SearchHandler {
	return &SearchHandler{Service: s}
}

// Get handles GET /api/search?q=...&type=...&page=N. An empty query returns
// an empty page without touching the catalog.
func (h *SearchHandler) Get(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	mediaType := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("type")))
	page := queryInt(r, "page", 1)

	var (
		results models.Paged
		err     error
	)
	switch mediaType {
	case "", "multi":
		results, err = h.Service.SearchMulti(r.Context(), query, page)
	case models.MediaTypeMovie:
		results, err = h.Service.SearchMovies(r.Context(), query, page)
	case models.MediaTypeSeries:
		results, err = h.Service.SearchSeries(r.Context(), query, page)
	default:
		writeJSONError(w, "unknown media type", http.StatusNotFound)
		return
	}
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}
