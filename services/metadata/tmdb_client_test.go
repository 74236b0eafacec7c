package metadata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"reelgrid/models"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("test-key", "en-US", 0, srv.Client())
	c.baseURL = srv.URL
	return c
}

func TestClientNotConfigured(t *testing.T) {
	called := false
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	c.apiKey = ""

	_, err := c.TrendingMovies(context.Background())
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
	if called {
		t.Fatal("request hit the network despite missing API key")
	}
}

func TestClientUsesStatusMessageFromErrorBody(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status_message":"Invalid API key"}`))
	}))

	_, err := c.TrendingMovies(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Message != "Invalid API key" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "Invalid API key")
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", apiErr.StatusCode)
	}
	if apiErr.Endpoint != "/trending/movie/week" {
		t.Errorf("Endpoint = %q, want /trending/movie/week", apiErr.Endpoint)
	}
}

func TestClientFallbackErrorMessage(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("not json"))
	}))

	_, err := c.TrendingMovies(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Message != "HTTP error! status: 502" {
		t.Errorf("Message = %q, want fallback", apiErr.Message)
	}
}

func TestClientTransportErrorHasStatusZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := NewClient("test-key", "en-US", 0, srv.Client())
	c.baseURL = srv.URL
	srv.Close()

	_, err := c.TrendingMovies(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for transport failure", apiErr.StatusCode)
	}
}

func TestClientNotFound(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status_message":"The resource you requested could not be found."}`))
	}))

	_, err := c.MovieDetails(context.Background(), 99999999)
	if !IsNotFound(err) {
		t.Fatalf("IsNotFound(%v) = false, want true", err)
	}
}

func TestClientMapsMovieFields(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("api_key"); got != "test-key" {
			t.Errorf("api_key = %q", got)
		}
		if got := r.URL.Query().Get("language"); got != "en-US" {
			t.Errorf("language = %q", got)
		}
		w.Write([]byte(`{"page":1,"total_pages":10,"total_results":200,"results":[
			{"id":603,"title":"The Matrix","original_title":"The Matrix","overview":"o",
			 "poster_path":"/p.jpg","backdrop_path":"/b.jpg","release_date":"1999-03-31",
			 "vote_average":8.2,"vote_count":20000,"genre_ids":[28,878]}]}`))
	}))

	page, err := c.MovieList(context.Background(), "popular")
	if err != nil {
		t.Fatalf("MovieList: %v", err)
	}
	if len(page.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(page.Results))
	}
	title := page.Results[0]
	if title.MediaType != models.MediaTypeMovie {
		t.Errorf("MediaType = %q, want movie", title.MediaType)
	}
	if title.Name != "The Matrix" {
		t.Errorf("Name = %q", title.Name)
	}
	if title.ReleaseDate != "1999-03-31" {
		t.Errorf("ReleaseDate = %q", title.ReleaseDate)
	}
}

func TestClientMapsSeriesFields(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"page":1,"results":[
			{"id":1396,"name":"Breaking Bad","first_air_date":"2008-01-20","vote_average":8.9}]}`))
	}))

	page, err := c.SeriesList(context.Background(), "top_rated")
	if err != nil {
		t.Fatalf("SeriesList: %v", err)
	}
	title := page.Results[0]
	if title.MediaType != models.MediaTypeSeries {
		t.Errorf("MediaType = %q, want series", title.MediaType)
	}
	if title.Name != "Breaking Bad" {
		t.Errorf("Name = %q", title.Name)
	}
	if title.ReleaseDate != "2008-01-20" {
		t.Errorf("ReleaseDate = %q", title.ReleaseDate)
	}
}

func TestClientRejectsUnknownList(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request for invalid list")
	}))
	if _, err := c.MovieList(context.Background(), "bogus"); err == nil {
		t.Fatal("expected error for unknown list")
	}
	if _, err := c.SeriesList(context.Background(), "now_playing"); err == nil {
		t.Fatal("expected error for movie-only list on series endpoint")
	}
}

func TestSearchMultiFiltersPeople(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"page":1,"total_results":3,"results":[
			{"id":1,"media_type":"movie","title":"Heat"},
			{"id":2,"media_type":"person","name":"Al Pacino"},
			{"id":3,"media_type":"tv","name":"Luther"}]}`))
	}))

	page, err := c.SearchMulti(context.Background(), "al", 1)
	if err != nil {
		t.Fatalf("SearchMulti: %v", err)
	}
	if len(page.Results) != 2 {
		t.Fatalf("got %d results, want 2 (person filtered)", len(page.Results))
	}
	if page.Results[0].MediaType != models.MediaTypeMovie || page.Results[1].MediaType != models.MediaTypeSeries {
		t.Errorf("unexpected media types: %+v", page.Results)
	}
}

func TestSearchBlankQuerySkipsNetwork(t *testing.T) {
	called := false
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	page, err := c.SearchMulti(context.Background(), "   ", 1)
	if err != nil {
		t.Fatalf("SearchMulti: %v", err)
	}
	if called {
		t.Fatal("blank query hit the network")
	}
	if len(page.Results) != 0 || page.TotalResults != 0 {
		t.Errorf("expected empty page, got %+v", page)
	}
}

func TestClientDetailsAppendsSubresources(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("append_to_response"); got != "credits,videos,similar,recommendations" {
			t.Errorf("append_to_response = %q", got)
		}
		w.Write([]byte(`{"id":1396,"name":"Breaking Bad","number_of_seasons":5,
			"genres":[{"id":18,"name":"Drama"}],
			"seasons":[{"id":10,"season_number":0,"name":"Specials"},{"id":11,"season_number":1,"name":"Season 1","episode_count":7}],
			"credits":{"cast":[{"id":17419,"name":"Bryan Cranston","character":"Walter White","order":0}]},
			"videos":{"results":[{"id":"v1","key":"abc","site":"YouTube","type":"Trailer","official":true}]},
			"similar":{"page":1,"results":[{"id":2,"name":"Better Call Saul"}]},
			"recommendations":{"page":1,"results":[]}}`))
	}))

	d, err := c.SeriesDetails(context.Background(), 1396)
	if err != nil {
		t.Fatalf("SeriesDetails: %v", err)
	}
	if d.MediaType != models.MediaTypeSeries || d.Name != "Breaking Bad" {
		t.Errorf("title mapped wrong: %+v", d.Title)
	}
	if d.NumberOfSeasons != 5 || len(d.Seasons) != 2 {
		t.Errorf("seasons mapped wrong: %d, %d", d.NumberOfSeasons, len(d.Seasons))
	}
	if len(d.Cast) != 1 || d.Cast[0].Character != "Walter White" {
		t.Errorf("cast mapped wrong: %+v", d.Cast)
	}
	if len(d.Videos) != 1 || !d.Videos[0].Official {
		t.Errorf("videos mapped wrong: %+v", d.Videos)
	}
	if len(d.Similar.Results) != 1 || d.Similar.Results[0].MediaType != models.MediaTypeSeries {
		t.Errorf("similar mapped wrong: %+v", d.Similar)
	}
}

func TestClientSeason(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tv/1396/season/2" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"id":20,"season_number":2,"name":"Season 2","episodes":[
			{"id":100,"season_number":2,"episode_number":1,"name":"Seven Thirty-Seven","runtime":47},
			{"id":101,"season_number":2,"episode_number":2,"name":"Grilled","runtime":48}]}`))
	}))

	season, err := c.Season(context.Background(), 1396, 2)
	if err != nil {
		t.Fatalf("Season: %v", err)
	}
	if season.SeasonNumber != 2 || len(season.Episodes) != 2 {
		t.Fatalf("season mapped wrong: %+v", season)
	}
	if season.Episodes[1].EpisodeNumber != 2 || season.Episodes[1].RuntimeMinutes != 48 {
		t.Errorf("episode mapped wrong: %+v", season.Episodes[1])
	}
}

func TestClientRetriesTransientFailures(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"page":1,"results":[]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", "en-US", 3, srv.Client())
	c.baseURL = srv.URL

	if _, err := c.TrendingMovies(context.Background()); err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient("test-key", "en-US", 3, srv.Client())
	c.baseURL = srv.URL

	if _, err := c.TrendingMovies(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (4xx is not transient)", attempts)
	}
}
