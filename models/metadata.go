package models

// Basic metadata structures for titles, seasons and episodes. Every record
// here mirrors the catalog API; nothing is owned or mutated locally.

// Media kind tags. The catalog API discriminates movies from series
// structurally; we resolve that once at decode time and carry an explicit
// tag everywhere else.
const (
	MediaTypeMovie  = "movie"
	MediaTypeSeries = "series"
)

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Title is a movie or TV series summary as returned by the catalog API.
// PosterPath/BackdropPath are relative CDN paths; empty means no artwork.
type Title struct {
	ID           int64   `json:"id"`
	MediaType    string  `json:"mediaType"` // movie | series
	Name         string  `json:"name"`
	OriginalName string  `json:"originalName,omitempty"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"posterPath,omitempty"`
	BackdropPath string  `json:"backdropPath,omitempty"`
	ReleaseDate  string  `json:"releaseDate,omitempty"` // ISO date, empty = unannounced
	VoteAverage  float64 `json:"voteAverage"`
	VoteCount    int64   `json:"voteCount"`
	Popularity   float64 `json:"popularity,omitempty"`
	GenreIDs     []int64 `json:"genreIds,omitempty"`
}

// Paged is one page of titles in server-determined order. The ordering is
// preserved verbatim; nothing re-sorts locally.
type Paged struct {
	Page         int     `json:"page"`
	Results      []Title `json:"results"`
	TotalPages   int     `json:"totalPages"`
	TotalResults int     `json:"totalResults"`
}

// Video is a clip record attached to a title (trailers, teasers, etc).
type Video struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

type CastMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	Order       int    `json:"order"`
	ProfilePath string `json:"profilePath,omitempty"`
}

type Season struct {
	ID           int64  `json:"id"`
	SeasonNumber int    `json:"seasonNumber"` // 0 = specials
	Name         string `json:"name"`
	Overview     string `json:"overview,omitempty"`
	PosterPath   string `json:"posterPath,omitempty"`
	AirDate      string `json:"airDate,omitempty"`
	EpisodeCount int    `json:"episodeCount"`
}

type Episode struct {
	ID             int64  `json:"id"`
	SeasonNumber   int    `json:"seasonNumber"`
	EpisodeNumber  int    `json:"episodeNumber"` // 1-based within a season
	Name           string `json:"name"`
	Overview       string `json:"overview"`
	StillPath      string `json:"stillPath,omitempty"`
	AirDate        string `json:"airDate,omitempty"`
	RuntimeMinutes int    `json:"runtimeMinutes,omitempty"`
}

// SeasonDetails is one season of a series with its full episode list.
type SeasonDetails struct {
	Season
	Episodes []Episode `json:"episodes"`
}

// TitleDetails is a Title extended with the detail-page payload.
// Assembled fresh per request, never persisted.
type TitleDetails struct {
	Title
	Tagline          string       `json:"tagline,omitempty"`
	Status           string       `json:"status,omitempty"`
	Genres           []Genre      `json:"genres"`
	RuntimeMinutes   int          `json:"runtimeMinutes,omitempty"` // movies only
	EpisodeRunTimes  []int        `json:"episodeRunTimes,omitempty"`
	NumberOfSeasons  int          `json:"numberOfSeasons,omitempty"`
	NumberOfEpisodes int          `json:"numberOfEpisodes,omitempty"`
	Seasons          []Season     `json:"seasons,omitempty"`
	Cast             []CastMember `json:"cast,omitempty"`
	Videos           []Video      `json:"videos,omitempty"`
	Similar          Paged        `json:"similar"`
	Recommendations  Paged        `json:"recommendations"`
}

// StreamSource is a named external embed provider resolved for one title
// (and, for series, one episode). Recomputed per request.
type StreamSource struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	EmbedURL string `json:"embedUrl"`
}
