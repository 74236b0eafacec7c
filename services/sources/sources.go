// Package sources resolves external embed providers for playable titles.
// Providers are external iframe hosts; nothing here touches media bytes.
package sources

import (
	"fmt"

	"reelgrid/models"
)

const (
	AutoEmbedID = "autoembed"
	VidSrcID    = "vidsrc"
)

// DefaultID is the provider selected when a player session starts.
const DefaultID = AutoEmbedID

type provider struct {
	id         string
	name       string
	movieURL   func(id int64) string
	episodeURL func(seriesID int64, season, episode int) string
}

// Provider order is stable; the first entry is the default.
var providers = []provider{
	{
		id:   AutoEmbedID,
		name: "AutoEmbed",
		movieURL: func(id int64) string {
			return fmt.Sprintf("https://autoembed.co/movie/tmdb/%d", id)
		},
		episodeURL: func(seriesID int64, season, episode int) string {
			return fmt.Sprintf("https://autoembed.co/tv/tmdb/%d-%d-%d", seriesID, season, episode)
		},
	},
	{
		id:   VidSrcID,
		name: "VidSrc",
		movieURL: func(id int64) string {
			return fmt.Sprintf("https://vidsrc.xyz/embed/movie/%d", id)
		},
		episodeURL: func(seriesID int64, season, episode int) string {
			return fmt.Sprintf("https://vidsrc.xyz/embed/tv/%d/%d/%d", seriesID, season, episode)
		},
	},
}

// IsValid reports whether id names a known provider.
func IsValid(id string) bool {
	for _, p := range providers {
		if p.id == id {
			return true
		}
	}
	return false
}

// ForMovie resolves every provider's embed URL for a movie.
func ForMovie(id int64) []models.StreamSource {
	out := make([]models.StreamSource, 0, len(providers))
	for _, p := range providers {
		out = append(out, models.StreamSource{ID: p.id, Name: p.name, EmbedURL: p.movieURL(id)})
	}
	return out
}

// ForEpisode resolves every provider's embed URL for one episode.
func ForEpisode(seriesID int64, season, episode int) []models.StreamSource {
	out := make([]models.StreamSource, 0, len(providers))
	for _, p := range providers {
		out = append(out, models.StreamSource{ID: p.id, Name: p.name, EmbedURL: p.episodeURL(seriesID, season, episode)})
	}
	return out
}

// MovieDownloadURL points at the external download mirror for a movie.
func MovieDownloadURL(id int64) string {
	return fmt.Sprintf("https://dl.vidsrc.vip/movie/%d", id)
}

// EpisodeDownloadURL points at the external download mirror for an episode.
func EpisodeDownloadURL(seriesID int64, season, episode int) string {
	return fmt.Sprintf("https://dl.vidsrc.vip/tv/%d/%d/%d", seriesID, season, episode)
}
