package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"reelgrid/models"
	"reelgrid/services/metadata"
	"reelgrid/services/sources"
	"reelgrid/utils"
)

// castDisplayLimit caps how many cast members the detail page renders.
const castDisplayLimit = 20

type TrailerView struct {
	Name     string `json:"name"`
	Key      string `json:"key"`
	EmbedURL string `json:"embedUrl"`
}

type CastView struct {
	models.CastMember
	ProfileURL string `json:"profileUrl"`
}

type DetailsResponse struct {
	models.TitleDetails
	PosterURL     string                `json:"posterUrl"`
	BackdropURL   string                `json:"backdropUrl"`
	Year          string                `json:"year"`
	Rating        string                `json:"rating"`
	Runtime       string                `json:"runtime"`
	ReleaseLong   string                `json:"releaseLong"`
	Trailer       *TrailerView          `json:"trailer,omitempty"`
	TopCast       []CastView            `json:"topCast"`
	Sources       []models.StreamSource `json:"sources"`
	DownloadURL   string                `json:"downloadUrl"`
	DefaultSource string                `json:"defaultSource"`
}

// DetailsHandler serves the full detail-page payload for one title.
type DetailsHandler struct {
	Service catalogService
}

func NewDetailsHandler(s catalogService) *DetailsHandler {
	return &DetailsHandler{Service: s}
}

// Get handles GET /api/details/{type}/{id}.
func (h *DetailsHandler) Get(w http.ResponseWriter, r *http.Request) {
	mediaType := strings.ToLower(mux.Vars(r)["type"])
	id, ok := parseTitleID(r)
	if !ok {
		writeJSONError(w, "title not found", http.StatusNotFound)
		return
	}

	var (
		details models.TitleDetails
		err     error
	)
	switch mediaType {
	case models.MediaTypeMovie:
		details, err = h.Service.MovieDetails(r.Context(), id)
	case models.MediaTypeSeries:
		details, err = h.Service.SeriesDetails(r.Context(), id)
	default:
		writeJSONError(w, "title not found", http.StatusNotFound)
		return
	}
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, buildDetailsResponse(details))
}

func buildDetailsResponse(d models.TitleDetails) DetailsResponse {
	resp := DetailsResponse{
		TitleDetails:  d,
		PosterURL:     metadata.PosterURL(d.PosterPath, ""),
		BackdropURL:   metadata.BackdropURL(d.BackdropPath, ""),
		Year:          utils.FormatYear(d.ReleaseDate),
		Rating:        utils.FormatVoteAverage(d.VoteAverage),
		Runtime:       utils.FormatRuntime(runtimeMinutes(d)),
		ReleaseLong:   utils.FormatDate(d.ReleaseDate),
		TopCast:       []CastView{},
		DefaultSource: sources.DefaultID,
	}

	if t := utils.PickTrailer(d.Videos); t != nil {
		resp.Trailer = &TrailerView{Name: t.Name, Key: t.Key, EmbedURL: utils.TrailerEmbedURL(t.Key)}
	}

	for _, m := range d.Cast {
		if len(resp.TopCast) == castDisplayLimit {
			break
		}
		resp.TopCast = append(resp.TopCast, CastView{
			CastMember: m,
			ProfileURL: metadata.ProfileURL(m.ProfilePath, ""),
		})
	}

	if d.MediaType == models.MediaTypeSeries {
		// Series playback URLs resolve per episode on the watch page, so the
		// detail page links the first episode.
		resp.Sources = sources.ForEpisode(d.ID, 1, 1)
		resp.DownloadURL = sources.EpisodeDownloadURL(d.ID, 1, 1)
	} else {
		resp.Sources = sources.ForMovie(d.ID)
		resp.DownloadURL = sources.MovieDownloadURL(d.ID)
	}
	return resp
}

// runtimeMinutes picks the displayable runtime: the movie runtime, or the
// first episode runtime for series.
func runtimeMinutes(d models.TitleDetails) int {
	if d.RuntimeMinutes > 0 {
		return d.RuntimeMinutes
	}
	if len(d.EpisodeRunTimes) > 0 {
		return d.EpisodeRunTimes[0]
	}
	return 0
}
