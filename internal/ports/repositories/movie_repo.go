package repositories

import (
	"context"

	"myflix/internal/domain/entities"
)

// MovieRepository определяет read-only операции над каталогом фильмов.
// Точечные методы возвращают entities.ErrMovieNotFound при отсутствии записи.
type MovieRepository interface {
	List(ctx context.Context) ([]*entities.Movie, error)
	FindByTitle(ctx context.Context, title string) (*entities.Movie, error)
	FindByGenreName(ctx context.Context, genreName string) (*entities.Movie, error)
	FindByDirectorName(ctx context.Context, directorName string) (*entities.Movie, error)
}
