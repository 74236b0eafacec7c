package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/sourcegraph/conc/pool"

	"reelgrid/models"
	"reelgrid/services/metadata"
	"reelgrid/utils"
)

// heroSlideCount caps how many trending titles rotate through the hero.
const heroSlideCount = 5

type homepageCategory struct {
	Key   string
	Name  string
	fetch func(ctx context.Context, s catalogService) (models.Paged, error)
}

// The homepage is one fixed set of shelves, fetched together.
var homepageCategories = []homepageCategory{
	{"trending-movies", "Trending Movies", func(ctx context.Context, s catalogService) (models.Paged, error) {
		return s.TrendingMovies(ctx)
	}},
	{"top-rated-movies", "Top Rated Movies", func(ctx context.Context, s catalogService) (models.Paged, error) {
		return s.MovieList(ctx, "top_rated")
	}},
	{"popular-movies", "Popular Movies", func(ctx context.Context, s catalogService) (models.Paged, error) {
		return s.MovieList(ctx, "popular")
	}},
	{"now-playing", "Now Playing", func(ctx context.Context, s catalogService) (models.Paged, error) {
		return s.MovieList(ctx, "now_playing")
	}},
	{"upcoming", "Upcoming", func(ctx context.Context, s catalogService) (models.Paged, error) {
		return s.MovieList(ctx, "upcoming")
	}},
	{"action", "Action", func(ctx context.Context, s catalogService) (models.Paged, error) {
		return s.MoviesByGenre(ctx, metadata.GenreAction)
	}},
	{"comedy", "Comedy", func(ctx context.Context, s catalogService) (models.Paged, error) {
		return s.MoviesByGenre(ctx, metadata.GenreComedy)
	}},
	{"horror", "Horror", func(ctx context.Context, s catalogService) (models.Paged, error) {
		return s.MoviesByGenre(ctx, metadata.GenreHorror)
	}},
	{"romance", "Romance", func(ctx context.Context, s catalogService) (models.Paged, error) {
		return s.MoviesByGenre(ctx, metadata.GenreRomance)
	}},
	{"documentaries", "Documentaries", func(ctx context.Context, s catalogService) (models.Paged, error) {
		return s.MoviesByGenre(ctx, metadata.GenreDocumentary)
	}},
	{"trending-series", "Trending TV Shows", func(ctx context.Context, s catalogService) (models.Paged, error) {
		return s.TrendingSeries(ctx)
	}},
	{"top-rated-series", "Top Rated TV Shows", func(ctx context.Context, s catalogService) (models.Paged, error) {
		return s.SeriesList(ctx, "top_rated")
	}},
}

type HomepageShelf struct {
	Key    string         `json:"key"`
	Name   string         `json:"name"`
	Titles []models.Title `json:"titles"`
}

type HeroSlide struct {
	models.Title
	BackdropURL string `json:"backdropUrl"`
	Year        string `json:"year"`
	Rating      string `json:"rating"`
}

type HomepageResponse struct {
	Hero            []HeroSlide     `json:"hero"`
	RotationSeconds int             `json:"rotationSeconds"`
	Shelves         []HomepageShelf `json:"shelves"`
}

// HomepageHandler assembles the full landing page in one response.
type HomepageHandler struct {
	Service         catalogService
	RotationSeconds int
}

func NewHomepageHandler(s catalogService, rotationSeconds int) *HomepageHandler {
	return &HomepageHandler{Service: s, RotationSeconds: rotationSeconds}
}

// Get handles GET /api/homepage. All shelves are fetched concurrently and
// fail together: one bad shelf empties the whole page rather than rendering
// a partial layout.
func (h *HomepageHandler) Get(w http.ResponseWriter, r *http.Request) {
	results := make([]models.Paged, len(homepageCategories))

	p := pool.New().WithContext(r.Context()).WithCancelOnError().WithFirstError()
	for i, cat := range homepageCategories {
		i, cat := i, cat
		p.Go(func(ctx context.Context) error {
			page, err := cat.fetch(ctx, h.Service)
			if err != nil {
				return err
			}
			results[i] = page
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		log.Printf("[homepage] shelf fetch failed, rendering empty page: %v", err)
		writeJSON(w, http.StatusOK, h.emptyResponse())
		return
	}

	resp := HomepageResponse{RotationSeconds: h.RotationSeconds}
	for i, cat := range homepageCategories {
		resp.Shelves = append(resp.Shelves, HomepageShelf{
			Key:    cat.Key,
			Name:   cat.Name,
			Titles: results[i].Results,
		})
	}
	resp.Hero = heroSlides(results[0].Results)
	writeJSON(w, http.StatusOK, resp)
}

func (h *HomepageHandler) emptyResponse() HomepageResponse {
	resp := HomepageResponse{
		Hero:            []HeroSlide{},
		RotationSeconds: h.RotationSeconds,
	}
	for _, cat := range homepageCategories {
		resp.Shelves = append(resp.Shelves, HomepageShelf{Key: cat.Key, Name: cat.Name, Titles: []models.Title{}})
	}
	return resp
}

// heroSlides picks the first trending titles that have backdrop artwork.
func heroSlides(titles []models.Title) []HeroSlide {
	slides := make([]HeroSlide, 0, heroSlideCount)
	for _, t := range titles {
		if t.BackdropPath == "" {
			continue
		}
		slides = append(slides, HeroSlide{
			Title:       t,
			BackdropURL: metadata.BackdropURL(t.BackdropPath, ""),
			Year:        utils.FormatYear(t.ReleaseDate),
			Rating:      utils.FormatVoteAverage(t.VoteAverage),
		})
		if len(slides) == heroSlideCount {
			break
		}
	}
	return slides
}
