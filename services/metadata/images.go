package metadata

import "strings"

const imageBaseURL = "https://image.tmdb.org/t/p"

// Image size presets matched to where each artwork kind renders.
const (
	PosterSizeSmall    = "w185"
	PosterSizeDefault  = "w500"
	PosterSizeLarge    = "w780"
	BackdropSizeMedium = "w1280"
	BackdropSizeFull   = "original"
	ProfileSizeDefault = "w185"
	StillSizeDefault   = "w300"
)

// Placeholder assets served by the frontend when artwork is missing.
const (
	placeholderPoster   = "/images/no-poster.png"
	placeholderBackdrop = "/images/no-backdrop.png"
	placeholderProfile  = "/images/no-profile.png"
	placeholderStill    = "/images/no-still.png"
)

func imageURL(path, size, placeholder string) string {
	if strings.TrimSpace(path) == "" {
		return placeholder
	}
	return imageBaseURL + "/" + size + path
}

// PosterURL resolves a poster path to a CDN URL, or a placeholder when the
// title has no poster. Size defaults to w500.
func PosterURL(path, size string) string {
	if size == "" {
		size = PosterSizeDefault
	}
	return imageURL(path, size, placeholderPoster)
}

// BackdropURL defaults to the original size for full-bleed hero artwork.
func BackdropURL(path, size string) string {
	if size == "" {
		size = BackdropSizeFull
	}
	return imageURL(path, size, placeholderBackdrop)
}

func ProfileURL(path, size string) string {
	if size == "" {
		size = ProfileSizeDefault
	}
	return imageURL(path, size, placeholderProfile)
}

func StillURL(path, size string) string {
	if size == "" {
		size = StillSizeDefault
	}
	return imageURL(path, size, placeholderStill)
}
