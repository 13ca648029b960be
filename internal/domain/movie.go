package domain

import "errors"

var ErrMovieNotFound = errors.New("movie not found")

// Movie is a catalog record. The catalog is read-mostly: rows are created by
// the seeder and only Rating is rewritten, by the rating refresher.
type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Year        int     `json:"year"`
	Genre       string  `json:"genre"`
	Rating      float64 `json:"rating"`
	Description string  `json:"description,omitempty"`
	Duration    int     `json:"duration,omitempty"`
	PosterURL   string  `json:"poster_url,omitempty"`
	Director    string  `json:"director,omitempty"`
	Country     string  `json:"country,omitempty"`
}

// MovieFilter narrows catalog listings. Zero values mean "no constraint".
type MovieFilter struct {
	Genre  string
	Year   int
	Search string
	Limit  int
}
