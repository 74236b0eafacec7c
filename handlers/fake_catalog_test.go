package handlers

import (
	"context"

	"reelgrid/models"
)

// fakeCatalog satisfies catalogService with per-method overrides. Methods
// without an override return an empty page.
type fakeCatalog struct {
	trendingMovies func(ctx context.Context) (models.Paged, error)
	trendingSeries func(ctx context.Context) (models.Paged, error)
	movieList      func(ctx context.Context, list string) (models.Paged, error)
	seriesList     func(ctx context.Context, list string) (models.Paged, error)
	moviesByGenre  func(ctx context.Context, genreID int64) (models.Paged, error)
	seriesByGenre  func(ctx context.Context, genreID int64) (models.Paged, error)
	movieDetails   func(ctx context.Context, id int64) (models.TitleDetails, error)
	seriesDetails  func(ctx context.Context, id int64) (models.TitleDetails, error)
	season         func(ctx context.Context, seriesID int64, seasonNumber int) (models.SeasonDetails, error)
	searchMulti    func(ctx context.Context, query string, page int) (models.Paged, error)
	searchMovies   func(ctx context.Context, query string, page int) (models.Paged, error)
	searchSeries   func(ctx context.Context, query string, page int) (models.Paged, error)
}

func (f *fakeCatalog) TrendingMovies(ctx context.Context) (models.Paged, error) {
	if f.trendingMovies != nil {
		return f.trendingMovies(ctx)
	}
	return models.Paged{}, nil
}

func (f *fakeCatalog) TrendingSeries(ctx context.Context) (models.Paged, error) {
	if f.trendingSeries != nil {
		return f.trendingSeries(ctx)
	}
	return models.Paged{}, nil
}

func (f *fakeCatalog) MovieList(ctx context.Context, list string) (models.Paged, error) {
	if f.movieList != nil {
		return f.movieList(ctx, list)
	}
	return models.Paged{}, nil
}

func (f *fakeCatalog) SeriesList(ctx context.Context, list string) (models.Paged, error) {
	if f.seriesList != nil {
		return f.seriesList(ctx, list)
	}
	return models.Paged{}, nil
}

func (f *fakeCatalog) MoviesByGenre(ctx context.Context, genreID int64) (models.Paged, error) {
	if f.moviesByGenre != nil {
		return f.moviesByGenre(ctx, genreID)
	}
	return models.Paged{}, nil
}

func (f *fakeCatalog) SeriesByGenre(ctx context.Context, genreID int64) (models.Paged, error) {
	if f.seriesByGenre != nil {
		return f.seriesByGenre(ctx, genreID)
	}
	return models.Paged{}, nil
}

func (f *fakeCatalog) MovieDetails(ctx context.Context, id int64) (models.TitleDetails, error) {
	if f.movieDetails != nil {
		return f.movieDetails(ctx, id)
	}
	return models.TitleDetails{}, nil
}

func (f *fakeCatalog) SeriesDetails(ctx context.Context, id int64) (models.TitleDetails, error) {
	if f.seriesDetails != nil {
		return f.seriesDetails(ctx, id)
	}
	return models.TitleDetails{}, nil
}

func (f *fakeCatalog) Season(ctx context.Context, seriesID int64, seasonNumber int) (models.SeasonDetails, error) {
	if f.season != nil {
		return f.season(ctx, seriesID, seasonNumber)
	}
	return models.SeasonDetails{}, nil
}

func (f *fakeCatalog) SearchMulti(ctx context.Context, query string, page int) (models.Paged, error) {
	if f.searchMulti != nil {
		return f.searchMulti(ctx, query, page)
	}
	return models.Paged{}, nil
}

func (f *fakeCatalog) SearchMovies(ctx context.Context, query string, page int) (models.Paged, error) {
	if f.searchMovies != nil {
		return f.searchMovies(ctx, query, page)
	}
	return models.Paged{}, nil
}

func (f *fakeCatalog) SearchSeries(ctx context.Context, query string, page int) (models.Paged, error) {
	if f.searchSeries != nil {
		return f.searchSeries(ctx, query, page)
	}
	return models.Paged{}, nil
}
