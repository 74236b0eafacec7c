package metadata

// TMDB genre IDs shared by the discover endpoints.
const (
	GenreAction      int64 = 28
	GenreAdventure   int64 = 12
	GenreAnimation   int64 = 16
	GenreComedy      int64 = 35
	GenreCrime       int64 = 80
	GenreDocumentary int64 = 99
	GenreDrama       int64 = 18
	GenreFamily      int64 = 10751
	GenreFantasy     int64 = 14
	GenreHistory     int64 = 36
	GenreHorror      int64 = 27
	GenreMusic       int64 = 10402
	GenreMystery     int64 = 9648
	GenreRomance     int64 = 10749
	GenreSciFi       int64 = 878
	GenreTVMovie     int64 = 10770
	GenreThriller    int64 = 53
	GenreWar         int64 = 10752
	GenreWestern     int64 = 37
)

// GenreNames maps the IDs above to display names for clients that only have
// the numeric genre_ids from list payloads.
var GenreNames = map[int64]string{
	GenreAction:      "Action",
	GenreAdventure:   "Adventure",
	GenreAnimation:   "Animation",
	GenreComedy:      "Comedy",
	GenreCrime:       "Crime",
	GenreDocumentary: "Documentary",
	GenreDrama:       "Drama",
	GenreFamily:      "Family",
	GenreFantasy:     "Fantasy",
	GenreHistory:     "History",
	GenreHorror:      "Horror",
	GenreMusic:       "Music",
	GenreMystery:     "Mystery",
	GenreRomance:     "Romance",
	GenreSciFi:       "Science Fiction",
	GenreTVMovie:     "TV Movie",
	GenreThriller:    "Thriller",
	GenreWar:         "War",
	GenreWestern:     "Western",
}
