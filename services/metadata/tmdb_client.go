package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"reelgrid/models"
)

const tmdbBaseURL = "https://api.themoviedb.org/3"

// Curated list endpoints the catalog exposes per media kind.
var (
	movieLists  = map[string]bool{"top_rated": true, "popular": true, "now_playing": true, "upcoming": true}
	seriesLists = map[string]bool{"top_rated": true, "popular": true, "on_the_air": true, "airing_today": true}
)

// Client is a thin TMDB v3 API client. It maps raw catalog payloads into
// models types and normalizes every failure into APIError.
type Client struct {
	apiKey     string
	language   string
	baseURL    string
	maxRetries int
	httpc      *http.Client
}

func NewClient(apiKey, language string, maxRetries int, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	if strings.TrimSpace(language) == "" {
		language = "en-US"
	}
	return &Client{
		apiKey:     strings.TrimSpace(apiKey),
		language:   language,
		baseURL:    tmdbBaseURL,
		maxRetries: maxRetries,
		httpc:      httpc,
	}
}

func (c *Client) isConfigured() bool {
	return c != nil && c.apiKey != ""
}

// doGET fetches endpoint and decodes the JSON body into v. The API key check
// happens before any network activity. Retries are opt-in via maxRetries and
// only cover transient failures.
func (c *Client) doGET(ctx context.Context, endpoint string, params url.Values, v any) error {
	if !c.isConfigured() {
		return ErrNotConfigured
	}
	if c.maxRetries <= 0 {
		return c.fetch(ctx, endpoint, params, v)
	}
	return retry.Do(
		func() error { return c.fetch(ctx, endpoint, params, v) },
		retry.Context(ctx),
		retry.Attempts(uint(c.maxRetries)+1),
		retry.Delay(300*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
	)
}

// isTransient reports whether a failure is worth retrying: no HTTP response
// at all, rate limiting, or a server-side error.
func isTransient(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == 0 || apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500
}

func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return err
	}
	q := req.URL.Query()
	for key, vals := range params {
		for _, val := range vals {
			q.Add(key, val)
		}
	}
	q.Set("api_key", c.apiKey)
	q.Set("language", c.language)
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &APIError{Message: err.Error(), StatusCode: 0, Endpoint: endpoint}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// TMDB error bodies carry a status_message; fall back to the code.
		msg := fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)
		var payload struct {
			StatusMessage string `json:"status_message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && strings.TrimSpace(payload.StatusMessage) != "" {
			msg = payload.StatusMessage
		}
		return &APIError{Message: msg, StatusCode: resp.StatusCode, Endpoint: endpoint}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &APIError{Message: "invalid response body: " + err.Error(), StatusCode: resp.StatusCode, Endpoint: endpoint}
	}
	return nil
}

// Raw catalog payload shapes. Movies and series share one record with
// disjoint field names (title vs name, release_date vs first_air_date).

type tmdbTitle struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Name          string  `json:"name"`
	OriginalTitle string  `json:"original_title"`
	OriginalName  string  `json:"original_name"`
	Overview      string  `json:"overview"`
	PosterPath    string  `json:"poster_path"`
	BackdropPath  string  `json:"backdrop_path"`
	ReleaseDate   string  `json:"release_date"`
	FirstAirDate  string  `json:"first_air_date"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int64   `json:"vote_count"`
	Popularity    float64 `json:"popularity"`
	GenreIDs      []int64 `json:"genre_ids"`
	MediaType     string  `json:"media_type"`
}

type tmdbPage struct {
	Page         int         `json:"page"`
	Results      []tmdbTitle `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

type tmdbVideo struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

type tmdbCast struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	Order       int    `json:"order"`
	ProfilePath string `json:"profile_path"`
}

type tmdbSeason struct {
	ID           int64  `json:"id"`
	SeasonNumber int    `json:"season_number"`
	Name         string `json:"name"`
	Overview     string `json:"overview"`
	PosterPath   string `json:"poster_path"`
	AirDate      string `json:"air_date"`
	EpisodeCount int    `json:"episode_count"`
}

type tmdbEpisode struct {
	ID            int64  `json:"id"`
	SeasonNumber  int    `json:"season_number"`
	EpisodeNumber int    `json:"episode_number"`
	Name          string `json:"name"`
	Overview      string `json:"overview"`
	StillPath     string `json:"still_path"`
	AirDate       string `json:"air_date"`
	Runtime       int    `json:"runtime"`
}

type tmdbDetail struct {
	tmdbTitle
	Tagline string `json:"tagline"`
	Status  string `json:"status"`
	Genres  []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
	Runtime          int          `json:"runtime"`
	EpisodeRunTime   []int        `json:"episode_run_time"`
	NumberOfSeasons  int          `json:"number_of_seasons"`
	NumberOfEpisodes int          `json:"number_of_episodes"`
	Seasons          []tmdbSeason `json:"seasons"`
	Credits          struct {
		Cast []tmdbCast `json:"cast"`
	} `json:"credits"`
	Videos struct {
		Results []tmdbVideo `json:"results"`
	} `json:"videos"`
	Similar         tmdbPage `json:"similar"`
	Recommendations tmdbPage `json:"recommendations"`
}

type tmdbSeasonDetail struct {
	tmdbSeason
	Episodes []tmdbEpisode `json:"episodes"`
}

// mapTitle resolves the movie/series split once. Entries from mixed feeds
// (trending, multi search) carry an explicit media_type; single-kind
// endpoints rely on fallbackType.
func mapTitle(r tmdbTitle, fallbackType string) models.Title {
	mediaType := fallbackType
	switch r.MediaType {
	case "movie":
		mediaType = models.MediaTypeMovie
	case "tv":
		mediaType = models.MediaTypeSeries
	}

	name, originalName, releaseDate := r.Name, r.OriginalName, r.FirstAirDate
	if mediaType == models.MediaTypeMovie {
		name, originalName, releaseDate = r.Title, r.OriginalTitle, r.ReleaseDate
	}

	return models.Title{
		ID:           r.ID,
		MediaType:    mediaType,
		Name:         name,
		OriginalName: originalName,
		Overview:     r.Overview,
		PosterPath:   r.PosterPath,
		BackdropPath: r.BackdropPath,
		ReleaseDate:  releaseDate,
		VoteAverage:  r.VoteAverage,
		VoteCount:    r.VoteCount,
		Popularity:   r.Popularity,
		GenreIDs:     r.GenreIDs,
	}
}

func mapPage(p tmdbPage, fallbackType string) models.Paged {
	out := models.Paged{
		Page:         p.Page,
		Results:      make([]models.Title, 0, len(p.Results)),
		TotalPages:   p.TotalPages,
		TotalResults: p.TotalResults,
	}
	for _, r := range p.Results {
		// Multi search mixes in people; only titles are playable.
		if r.MediaType == "person" {
			continue
		}
		out.Results = append(out.Results, mapTitle(r, fallbackType))
	}
	return out
}

func (c *Client) page(ctx context.Context, endpoint string, params url.Values, fallbackType string) (models.Paged, error) {
	var payload tmdbPage
	if err := c.doGET(ctx, endpoint, params, &payload); err != nil {
		return models.Paged{}, err
	}
	return mapPage(payload, fallbackType), nil
}

func (c *Client) TrendingMovies(ctx context.Context) (models.Paged, error) {
	return c.page(ctx, "/trending/movie/week", nil, models.MediaTypeMovie)
}

func (c *Client) TrendingSeries(ctx context.Context) (models.Paged, error) {
	return c.page(ctx, "/trending/tv/week", nil, models.MediaTypeSeries)
}

// MovieList fetches a curated movie list: top_rated, popular, now_playing
// or upcoming.
func (c *Client) MovieList(ctx context.Context, list string) (models.Paged, error) {
	if !movieLists[list] {
		return models.Paged{}, fmt.Errorf("unknown movie list %q", list)
	}
	return c.page(ctx, "/movie/"+list, nil, models.MediaTypeMovie)
}

// SeriesList fetches a curated TV list: top_rated, popular, on_the_air or
// airing_today.
func (c *Client) SeriesList(ctx context.Context, list string) (models.Paged, error) {
	if !seriesLists[list] {
		return models.Paged{}, fmt.Errorf("unknown series list %q", list)
	}
	return c.page(ctx, "/tv/"+list, nil, models.MediaTypeSeries)
}

func (c *Client) MoviesByGenre(ctx context.Context, genreID int64) (models.Paged, error) {
	params := url.Values{}
	params.Set("with_genres", strconv.FormatInt(genreID, 10))
	params.Set("include_adult", "false")
	return c.page(ctx, "/discover/movie", params, models.MediaTypeMovie)
}

func (c *Client) SeriesByGenre(ctx context.Context, genreID int64) (models.Paged, error) {
	params := url.Values{}
	params.Set("with_genres", strconv.FormatInt(genreID, 10))
	params.Set("include_adult", "false")
	return c.page(ctx, "/discover/tv", params, models.MediaTypeSeries)
}

// MovieDetails fetches a movie with credits, videos, similar titles and
// recommendations folded into one request.
func (c *Client) MovieDetails(ctx context.Context, id int64) (models.TitleDetails, error) {
	return c.details(ctx, "/movie/"+strconv.FormatInt(id, 10), models.MediaTypeMovie)
}

func (c *Client) SeriesDetails(ctx context.Context, id int64) (models.TitleDetails, error) {
	return c.details(ctx, "/tv/"+strconv.FormatInt(id, 10), models.MediaTypeSeries)
}

func (c *Client) details(ctx context.Context, endpoint, mediaType string) (models.TitleDetails, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits,videos,similar,recommendations")

	var payload tmdbDetail
	if err := c.doGET(ctx, endpoint, params, &payload); err != nil {
		return models.TitleDetails{}, err
	}

	d := models.TitleDetails{
		Title:            mapTitle(payload.tmdbTitle, mediaType),
		Tagline:          payload.Tagline,
		Status:           payload.Status,
		Genres:           make([]models.Genre, 0, len(payload.Genres)),
		RuntimeMinutes:   payload.Runtime,
		EpisodeRunTimes:  payload.EpisodeRunTime,
		NumberOfSeasons:  payload.NumberOfSeasons,
		NumberOfEpisodes: payload.NumberOfEpisodes,
		Similar:          mapPage(payload.Similar, mediaType),
		Recommendations:  mapPage(payload.Recommendations, mediaType),
	}
	for _, g := range payload.Genres {
		d.Genres = append(d.Genres, models.Genre{ID: g.ID, Name: g.Name})
	}
	for _, s := range payload.Seasons {
		d.Seasons = append(d.Seasons, mapSeason(s))
	}
	for _, m := range payload.Credits.Cast {
		d.Cast = append(d.Cast, models.CastMember{
			ID: m.ID, Name: m.Name, Character: m.Character, Order: m.Order, ProfilePath: m.ProfilePath,
		})
	}
	for _, v := range payload.Videos.Results {
		d.Videos = append(d.Videos, models.Video{
			ID: v.ID, Key: v.Key, Name: v.Name, Site: v.Site, Type: v.Type, Official: v.Official,
		})
	}
	return d, nil
}

func mapSeason(s tmdbSeason) models.Season {
	return models.Season{
		ID:           s.ID,
		SeasonNumber: s.SeasonNumber,
		Name:         s.Name,
		Overview:     s.Overview,
		PosterPath:   s.PosterPath,
		AirDate:      s.AirDate,
		EpisodeCount: s.EpisodeCount,
	}
}

// Season fetches one season of a series with its episode list.
func (c *Client) Season(ctx context.Context, seriesID int64, seasonNumber int) (models.SeasonDetails, error) {
	endpoint := fmt.Sprintf("/tv/%d/season/%d", seriesID, seasonNumber)

	var payload tmdbSeasonDetail
	if err := c.doGET(ctx, endpoint, nil, &payload); err != nil {
		return models.SeasonDetails{}, err
	}

	out := models.SeasonDetails{Season: mapSeason(payload.tmdbSeason)}
	out.SeasonNumber = payload.SeasonNumber
	for _, e := range payload.Episodes {
		out.Episodes = append(out.Episodes, models.Episode{
			ID:             e.ID,
			SeasonNumber:   e.SeasonNumber,
			EpisodeNumber:  e.EpisodeNumber,
			Name:           e.Name,
			Overview:       e.Overview,
			StillPath:      e.StillPath,
			AirDate:        e.AirDate,
			RuntimeMinutes: e.Runtime,
		})
	}
	return out, nil
}

func (c *Client) SearchMulti(ctx context.Context, query string, page int) (models.Paged, error) {
	return c.search(ctx, "/search/multi", query, page, "")
}

func (c *Client) SearchMovies(ctx context.Context, query string, page int) (models.Paged, error) {
	return c.search(ctx, "/search/movie", query, page, models.MediaTypeMovie)
}

func (c *Client) SearchSeries(ctx context.Context, query string, page int) (models.Paged, error) {
	return c.search(ctx, "/search/tv", query, page, models.MediaTypeSeries)
}

func (c *Client) search(ctx context.Context, endpoint, query string, page int, fallbackType string) (models.Paged, error) {
	// A blank query never hits the network.
	if strings.TrimSpace(query) == "" {
		return models.Paged{Page: 1, Results: []models.Title{}, TotalPages: 1, TotalResults: 0}, nil
	}
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("include_adult", "false")
	return c.page(ctx, endpoint, params, fallbackType)
}
