package model

import (
	"sort"
	"strconv"
)

type MovieID int64

func (id MovieID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

const (
	posterBaseURL     = "https://image.tmdb.org/t/p/"
	posterPlaceholder = "https://via.placeholder.com/300x450?text=No+Image"

	DefaultPosterSize = "w300"
)

// Movie is a catalog snapshot. Once locked into a party it is never refreshed.
type Movie struct {
	ID               MovieID `json:"id"`
	Title            string  `json:"title"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	PosterPath       string  `json:"poster_path,omitempty"`
	GenreIDs         []int   `json:"genre_ids,omitempty"`
	OriginalLanguage string  `json:"original_language,omitempty"`
	Popularity       float64 `json:"popularity,omitempty"`
	Overview         string  `json:"overview,omitempty"`
}

// Year is taken from the release date, 0 when the catalog has none.
func (m Movie) Year() int {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	y, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return y
}

func (m Movie) PosterURL(size string) string {
	if m.PosterPath == "" {
		return posterPlaceholder
	}
	if size == "" {
		size = DefaultPosterSize
	}
	return posterBaseURL + size + m.PosterPath
}

// Clone returns a deep copy, so a locked list never aliases a working selection.
func (m Movie) Clone() Movie {
	c := m
	if m.GenreIDs != nil {
		c.GenreIDs = append([]int(nil), m.GenreIDs...)
	}
	return c
}

func CloneMovies(movies []Movie) []Movie {
	if movies == nil {
		return nil
	}
	out := make([]Movie, len(movies))
	for i, m := range movies {
		out[i] = m.Clone()
	}
	return out
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Genres maps catalog genre id to its display name.
type Genres map[int]string

// Sorted lists genres by name, then id.
func (g Genres) Sorted() []Genre {
	out := make([]Genre, 0, len(g))
	for id, name := range g {
		out = append(out, Genre{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Filters are the creator's catalog search parameters. Zero values mean "not set".
type Filters struct {
	GenreID  int    `json:"genre,omitempty"`
	Year     int    `json:"year,omitempty"`
	Language string `json:"language,omitempty"`
}

const DefaultLanguage = "en"

func DefaultFilters() Filters {
	return Filters{Language: DefaultLanguage}
}
