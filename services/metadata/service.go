package metadata

import (
	"context"
	"log"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/spf13/afero"

	"reelgrid/models"
)

// Service wraps the catalog client with a read-through file cache. Cached
// pages are served until their TTL lapses; every miss goes to the network
// and is written back on success.
type Service struct {
	mu     sync.RWMutex
	client *Client
	cache  *fileCache

	language   string
	maxRetries int
	ttlSeconds int
}

func NewService(tmdbAPIKey, language, cacheDir string, ttlSeconds, maxRetries int, fs afero.Fs) *Service {
	// Dedicated subdirectory so metadata entries never collide with other
	// data stored under the cache root.
	metadataCacheDir := filepath.Join(cacheDir, "metadata")
	return &Service{
		client:     NewClient(tmdbAPIKey, language, maxRetries, nil),
		cache:      newFileCache(fs, metadataCacheDir, ttlSeconds),
		language:   language,
		maxRetries: maxRetries,
		ttlSeconds: ttlSeconds,
	}
}

// UpdateAPIKey swaps the catalog key and clears the cache so responses
// fetched with the old key are not served.
func (s *Service) UpdateAPIKey(tmdbAPIKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = NewClient(tmdbAPIKey, s.language, s.maxRetries, nil)
	if err := s.cache.clear(); err != nil {
		log.Printf("[metadata] warning: failed to clear cache: %v", err)
	} else {
		log.Printf("[metadata] cleared metadata cache due to API key change")
	}
}

func (s *Service) ClearCache() error {
	return s.cache.clear()
}

func (s *Service) getClient() *Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client
}

// cachedPage runs fetch behind the cache for page-shaped responses.
func (s *Service) cachedPage(ctx context.Context, key string, fetch func(context.Context) (models.Paged, error)) (models.Paged, error) {
	var cached models.Paged
	if ok, _ := s.cache.get(key, &cached); ok {
		return cached, nil
	}
	page, err := fetch(ctx)
	if err != nil {
		return models.Paged{}, err
	}
	if err := s.cache.set(key, page); err != nil {
		log.Printf("[metadata] failed to cache %s: %v", key, err)
	}
	return page, nil
}

func (s *Service) TrendingMovies(ctx context.Context) (models.Paged, error) {
	return s.cachedPage(ctx, cacheKey("trending", "movie"), s.getClient().TrendingMovies)
}

func (s *Service) TrendingSeries(ctx context.Context) (models.Paged, error) {
	return s.cachedPage(ctx, cacheKey("trending", "series"), s.getClient().TrendingSeries)
}

func (s *Service) MovieList(ctx context.Context, list string) (models.Paged, error) {
	return s.cachedPage(ctx, cacheKey("movies", "list", list), func(ctx context.Context) (models.Paged, error) {
		return s.getClient().MovieList(ctx, list)
	})
}

func (s *Service) SeriesList(ctx context.Context, list string) (models.Paged, error) {
	return s.cachedPage(ctx, cacheKey("series", "list", list), func(ctx context.Context) (models.Paged, error) {
		return s.getClient().SeriesList(ctx, list)
	})
}

func (s *Service) MoviesByGenre(ctx context.Context, genreID int64) (models.Paged, error) {
	key := cacheKey("movies", "genre", strconv.FormatInt(genreID, 10))
	return s.cachedPage(ctx, key, func(ctx context.Context) (models.Paged, error) {
		return s.getClient().MoviesByGenre(ctx, genreID)
	})
}

func (s *Service) SeriesByGenre(ctx context.Context, genreID int64) (models.Paged, error) {
	key := cacheKey("series", "genre", strconv.FormatInt(genreID, 10))
	return s.cachedPage(ctx, key, func(ctx context.Context) (models.Paged, error) {
		return s.getClient().SeriesByGenre(ctx, genreID)
	})
}

func (s *Service) MovieDetails(ctx context.Context, id int64) (models.TitleDetails, error) {
	key := cacheKey("movie", "details", strconv.FormatInt(id, 10))
	var cached models.TitleDetails
	if ok, _ := s.cache.get(key, &cached); ok {
		return cached, nil
	}
	details, err := s.getClient().MovieDetails(ctx, id)
	if err != nil {
		return models.TitleDetails{}, err
	}
	if err := s.cache.set(key, details); err != nil {
		log.Printf("[metadata] failed to cache movie %d details: %v", id, err)
	}
	return details, nil
}

func (s *Service) SeriesDetails(ctx context.Context, id int64) (models.TitleDetails, error) {
	key := cacheKey("series", "details", strconv.FormatInt(id, 10))
	var cached models.TitleDetails
	if ok, _ := s.cache.get(key, &cached); ok {
		return cached, nil
	}
	details, err := s.getClient().SeriesDetails(ctx, id)
	if err != nil {
		return models.TitleDetails{}, err
	}
	if err := s.cache.set(key, details); err != nil {
		log.Printf("[metadata] failed to cache series %d details: %v", id, err)
	}
	return details, nil
}

func (s *Service) Season(ctx context.Context, seriesID int64, seasonNumber int) (models.SeasonDetails, error) {
	key := cacheKey("series", strconv.FormatInt(seriesID, 10), "season", strconv.Itoa(seasonNumber))
	var cached models.SeasonDetails
	if ok, _ := s.cache.get(key, &cached); ok {
		return cached, nil
	}
	season, err := s.getClient().Season(ctx, seriesID, seasonNumber)
	if err != nil {
		return models.SeasonDetails{}, err
	}
	if err := s.cache.set(key, season); err != nil {
		log.Printf("[metadata] failed to cache series %d season %d: %v", seriesID, seasonNumber, err)
	}
	return season, nil
}

// Search results are not cached: the query space is unbounded and results
// shift too quickly for a useful hit rate.
func (s *Service) SearchMulti(ctx context.Context, query string, page int) (models.Paged, error) {
	return s.getClient().SearchMulti(ctx, query, page)
}

func (s *Service) SearchMovies(ctx context.Context, query string, page int) (models.Paged, error) {
	return s.getClient().SearchMovies(ctx, query, page)
}

func (s *Service) SearchSeries(ctx context.Context, query string, page int) (models.Paged, error) {
	return s.getClient().SearchSeries(ctx, query, page)
}
