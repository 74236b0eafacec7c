package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"reelgrid/models"
)

func seriesWithSeasons() models.TitleDetails {
	return models.TitleDetails{
		Title: models.Title{ID: 1396, MediaType: models.MediaTypeSeries, Name: "Breaking Bad"},
		Seasons: []models.Season{
			{ID: 10, SeasonNumber: 0, Name: "Specials"},
			{ID: 11, SeasonNumber: 1, Name: "Season 1"},
			{ID: 12, SeasonNumber: 2, Name: "Season 2"},
			{ID: 13, SeasonNumber: 3, Name: "Season 3"},
		},
	}
}

func seasonOf(n, episodes int) models.SeasonDetails {
	out := models.SeasonDetails{Season: models.Season{SeasonNumber: n}}
	for i := 1; i <= episodes; i++ {
		out.Episodes = append(out.Episodes, models.Episode{
			ID:            int64(n*100 + i),
			SeasonNumber:  n,
			EpisodeNumber: i,
			Name:          fmt.Sprintf("Episode %d", i),
		})
	}
	return out
}

func doWatch(t *testing.T, svc catalogService, url string) (WatchResponse, *httptest.ResponseRecorder) {
	t.Helper()
	r := mux.NewRouter()
	r.HandleFunc("/api/watch/{type}/{id}", NewWatchHandler(svc).Get)

	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var resp WatchResponse
	if rec.Code == http.StatusOK {
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return resp, rec
}

func TestWatchMovie(t *testing.T) {
	svc := &fakeCatalog{
		movieDetails: func(_ context.Context, id int64) (models.TitleDetails, error) {
			return models.TitleDetails{Title: models.Title{ID: id, MediaType: models.MediaTypeMovie, Name: "Heat"}}, nil
		},
	}
	resp, rec := doWatch(t, svc, "/api/watch/movie/949")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp.Title.Name != "Heat" || resp.Season != 0 {
		t.Errorf("resp = %+v", resp)
	}
	if len(resp.Sources) != 2 || resp.DefaultSource != "autoembed" {
		t.Errorf("sources = %+v default = %q", resp.Sources, resp.DefaultSource)
	}
	if resp.DownloadURL != "https://dl.vidsrc.vip/movie/949" {
		t.Errorf("download = %q", resp.DownloadURL)
	}
}

func TestWatchSeriesClampsSeasonHigh(t *testing.T) {
	var fetchedSeason int
	svc := &fakeCatalog{
		seriesDetails: func(context.Context, int64) (models.TitleDetails, error) { return seriesWithSeasons(), nil },
		season: func(_ context.Context, _ int64, n int) (models.SeasonDetails, error) {
			fetchedSeason = n
			return seasonOf(n, 13), nil
		},
	}
	resp, _ := doWatch(t, svc, "/api/watch/series/1396?season=99&episode=1")
	if resp.Season != 3 {
		t.Errorf("Season = %d, want clamped to 3", resp.Season)
	}
	if fetchedSeason != 3 {
		t.Errorf("fetched season %d, want 3", fetchedSeason)
	}
}

func TestWatchSeriesClampsSeasonLowAndSkipsSpecials(t *testing.T) {
	svc := &fakeCatalog{
		seriesDetails: func(context.Context, int64) (models.TitleDetails, error) { return seriesWithSeasons(), nil },
		season: func(_ context.Context, _ int64, n int) (models.SeasonDetails, error) {
			return seasonOf(n, 7), nil
		},
	}
	resp, _ := doWatch(t, svc, "/api/watch/series/1396?season=0")
	if resp.Season != 1 {
		t.Errorf("Season = %d, want 1", resp.Season)
	}
	for _, s := range resp.Seasons {
		if s.SeasonNumber == 0 {
			t.Error("specials season leaked into response")
		}
	}
	if len(resp.Seasons) != 3 {
		t.Errorf("got %d seasons, want 3", len(resp.Seasons))
	}
}

func TestWatchSeriesClampsEpisode(t *testing.T) {
	svc := &fakeCatalog{
		seriesDetails: func(context.Context, int64) (models.TitleDetails, error) { return seriesWithSeasons(), nil },
		season: func(_ context.Context, _ int64, n int) (models.SeasonDetails, error) {
			return seasonOf(n, 7), nil
		},
	}

	resp, _ := doWatch(t, svc, "/api/watch/series/1396?season=2&episode=0")
	if resp.Episode != 1 {
		t.Errorf("Episode = %d, want clamped to 1", resp.Episode)
	}

	resp, _ = doWatch(t, svc, "/api/watch/series/1396?season=2&episode=50")
	if resp.Episode != 7 {
		t.Errorf("Episode = %d, want clamped to 7", resp.Episode)
	}
	if resp.Current == nil || resp.Current.EpisodeNumber != 7 {
		t.Errorf("Current = %+v, want episode 7", resp.Current)
	}
	if resp.DownloadURL != "https://dl.vidsrc.vip/tv/1396/2/7" {
		t.Errorf("download = %q", resp.DownloadURL)
	}
}

func TestWatchSeriesToleratesSeasonFetchFailure(t *testing.T) {
	svc := &fakeCatalog{
		seriesDetails: func(context.Context, int64) (models.TitleDetails, error) { return seriesWithSeasons(), nil },
		season: func(context.Context, int64, int) (models.SeasonDetails, error) {
			return models.SeasonDetails{}, errors.New("season endpoint down")
		},
	}
	resp, rec := doWatch(t, svc, "/api/watch/series/1396?season=2&episode=5")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 despite season failure", rec.Code)
	}
	if len(resp.Episodes) != 0 {
		t.Errorf("episodes = %d, want empty", len(resp.Episodes))
	}
	if resp.Episode != 1 {
		t.Errorf("Episode = %d, want 1 when no episodes known", resp.Episode)
	}
}

func TestWatchInvalidID(t *testing.T) {
	_, rec := doWatch(t, &fakeCatalog{}, "/api/watch/movie/abc")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	_, rec = doWatch(t, &fakeCatalog{}, "/api/watch/album/5")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for unknown type", rec.Code)
	}
}
