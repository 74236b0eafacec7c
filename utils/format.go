package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"reelgrid/models"
)

// FormatRuntime renders a minute count as "2h 5m" or "45m". Zero or
// negative means the runtime is unknown.
func FormatRuntime(minutes int) string {
	if minutes <= 0 {
		return "N/A"
	}
	h := minutes / 60
	m := minutes % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatYear extracts the year from an ISO release date. An empty date
// means the title is unannounced.
func FormatYear(releaseDate string) string {
	releaseDate = strings.TrimSpace(releaseDate)
	if releaseDate == "" {
		return "TBA"
	}
	if t, err := time.Parse("2006-01-02", releaseDate); err == nil {
		return strconv.Itoa(t.Year())
	}
	if len(releaseDate) >= 4 {
		return releaseDate[:4]
	}
	return "TBA"
}

// FormatVoteAverage renders a 0-10 rating with one decimal. Zero means the
// title has no votes yet.
func FormatVoteAverage(vote float64) string {
	if vote <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", vote)
}

// FormatDate renders an ISO date in long form, e.g. "March 7, 2014".
// Unparseable input passes through untouched.
func FormatDate(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return "TBA"
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}

// PickTrailer selects the clip worth showing on a detail page: a YouTube
// trailer (official ones win over unofficial), else a YouTube teaser, else
// the first clip. Returns nil when the winner is not hosted on YouTube,
// since only YouTube keys can be embedded.
func PickTrailer(videos []models.Video) *models.Video {
	if len(videos) == 0 {
		return nil
	}
	var pick *models.Video
	for i := range videos {
		v := &videos[i]
		if v.Site != "YouTube" || v.Type != "Trailer" {
			continue
		}
		if v.Official {
			pick = v
			break
		}
		if pick == nil {
			pick = v
		}
	}
	if pick == nil {
		for i := range videos {
			v := &videos[i]
			if v.Site == "YouTube" && v.Type == "Teaser" {
				pick = v
				break
			}
		}
	}
	if pick == nil {
		pick = &videos[0]
	}
	if pick.Site != "YouTube" {
		return nil
	}
	return pick
}

// TrailerEmbedURL builds the embeddable player URL for a YouTube video key.
func TrailerEmbedURL(key string) string {
	return "https://www.youtube.com/embed/" + key
}
