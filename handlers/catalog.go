package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"reelgrid/models"
	metadatapkg "reelgrid/services/metadata"
)

// catalogService is the slice of the metadata service the HTTP layer needs.
type catalogService interface {
	TrendingMovies(ctx context.Context) (models.Paged, error)
	TrendingSeries(ctx context.Context) (models.Paged, error)
	MovieList(ctx context.Context, list string) (models.Paged, error)
	SeriesList(ctx context.Context, list string) (models.Paged, error)
	MoviesByGenre(ctx context.Context, genreID int64) (models.Paged, error)
	SeriesByGenre(ctx context.Context, genreID int64) (models.Paged, error)
	MovieDetails(ctx context.Context, id int64) (models.TitleDetails, error)
	SeriesDetails(ctx context.Context, id int64) (models.TitleDetails, error)
	Season(ctx context.Context, seriesID int64, seasonNumber int) (models.SeasonDetails, error)
	SearchMulti(ctx context.Context, query string, page int) (models.Paged, error)
	SearchMovies(ctx context.Context, query string, page int) (models.Paged, error)
	SearchSeries(ctx context.Context, query string, page int) (models.Paged, error)
}

var _ catalogService = (*metadatapkg.Service)(nil)

// CatalogHandler serves the raw list endpoints the browse pages page
// through.
type CatalogHandler struct {
	Service catalogService
}

func NewCatalogHandler(s catalogService) *CatalogHandler {
	return &CatalogHandler{Service: s}
}

// Trending handles GET /api/trending/{type}.
func (h *CatalogHandler) Trending(w http.ResponseWriter, r *http.Request) {
	mediaType := strings.ToLower(mux.Vars(r)["type"])
	var (
		page models.Paged
		err  error
	)
	switch mediaType {
	case models.MediaTypeMovie:
		page, err = h.Service.TrendingMovies(r.Context())
	case models.MediaTypeSeries:
		page, err = h.Service.TrendingSeries(r.Context())
	default:
		writeJSONError(w, "unknown media type", http.StatusNotFound)
		return
	}
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// MovieList handles GET /api/movies/{list}.
func (h *CatalogHandler) MovieList(w http.ResponseWriter, r *http.Request) {
	list := strings.ToLower(mux.Vars(r)["list"])
	page, err := h.Service.MovieList(r.Context(), list)
	if err != nil {
		if strings.Contains(err.Error(), "unknown movie list") {
			writeJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// SeriesList handles GET /api/series/{list}.
func (h *CatalogHandler) SeriesList(w http.ResponseWriter, r *http.Request) {
	list := strings.ToLower(mux.Vars(r)["list"])
	page, err := h.Service.SeriesList(r.Context(), list)
	if err != nil {
		if strings.Contains(err.Error(), "unknown series list") {
			writeJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// ByGenre handles GET /api/discover/{type}?genre=N.
func (h *CatalogHandler) ByGenre(w http.ResponseWriter, r *http.Request) {
	mediaType := strings.ToLower(mux.Vars(r)["type"])
	genreID, err := strconv.ParseInt(r.URL.Query().Get("genre"), 10, 64)
	if err != nil || genreID <= 0 {
		writeJSONError(w, "genre parameter required", http.StatusNotFound)
		return
	}

	var page models.Paged
	switch mediaType {
	case models.MediaTypeMovie:
		page, err = h.Service.MoviesByGenre(r.Context(), genreID)
	case models.MediaTypeSeries:
		page, err = h.Service.SeriesByGenre(r.Context(), genreID)
	default:
		writeJSONError(w, "unknown media type", http.StatusNotFound)
		return
	}
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// parseTitleID pulls the numeric {id} route variable. Non-numeric IDs read
// as a missing title rather than a malformed request.
func parseTitleID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
