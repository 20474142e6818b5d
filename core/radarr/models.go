package radarr

// MinimumAvailabilityReleased makes Radarr only search once a movie is released.
const MinimumAvailabilityReleased = "released"

// Movie is one entry of a Radarr catalog as returned by GET /api/v3/movie.
// Only the fields needed to copy a movie are decoded.
type Movie struct {
	TMDbID           int    `json:"tmdbId"`
	Title            string `json:"title"`
	TitleSlug        string `json:"titleSlug"`
	Year             int    `json:"year,omitempty"`
	QualityProfileID int    `json:"qualityProfileId"`
	Monitored        bool   `json:"monitored"`
	Path             string `json:"path"`
}

// AddOptions controls what Radarr does right after adding a movie.
type AddOptions struct {
	SearchForMovie bool `json:"searchForMovie"`
}

// AddMovieRequest is the body of POST /api/v3/movie.
type AddMovieRequest struct {
	Title               string     `json:"title"`
	QualityProfileID    int        `json:"qualityProfileId"`
	TitleSlug           string     `json:"titleSlug"`
	TMDbID              int        `json:"tmdbId"`
	Year                int        `json:"year,omitempty"`
	Monitored           bool       `json:"monitored"`
	Path                string     `json:"path"`
	MinimumAvailability string     `json:"minimumAvailability"`
	AddOptions          AddOptions `json:"addOptions"`
}

// NewAddMovieRequest builds the create request for copying m to another
// instance under qualityProfileID at path. The movie is added as released-only
// and searched for immediately.
func NewAddMovieRequest(m Movie, qualityProfileID int, path string) AddMovieRequest {
	return AddMovieRequest{
		Title:               m.Title,
		QualityProfileID:    qualityProfileID,
		TitleSlug:           m.TitleSlug,
		TMDbID:              m.TMDbID,
		Year:                m.Year,
		Monitored:           m.Monitored,
		Path:                path,
		MinimumAvailability: MinimumAvailabilityReleased,
		AddOptions:          AddOptions{SearchForMovie: true},
	}
}
