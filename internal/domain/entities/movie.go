package entities

import (
	"errors"
	"time"
)

// ErrMovieNotFound возвращается, когда фильм отсутствует в каталоге.
var ErrMovieNotFound = errors.New("movie not found")

// Genre представляет жанр, встроенный в запись фильма.
type Genre struct {
	Name        string
	Description string
}

// Director представляет режиссера, встроенного в запись фильма.
type Director struct {
	Name  string
	Bio   string
	Birth *time.Time
	Death *time.Time
}

// Movie представляет запись каталога фильмов. Каталог read-only:
// ни одна операция API не создает и не изменяет фильмы.
type Movie struct {
	ID          string
	Title       string
	Description string
	Genre       Genre
	Director    Director
}
