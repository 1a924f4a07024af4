package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"myflix/internal/ports/repositories"
)

// RepositoryFactory создает все необходимые репозитории для работы с PostgreSQL.
type RepositoryFactory struct {
	userRepo  repositories.UserRepository
	movieRepo repositories.MovieRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool *pgxpool.Pool) *RepositoryFactory {
	return &RepositoryFactory{
		userRepo:  NewUserRepository(pool),
		movieRepo: NewMovieRepository(pool),
	}
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// MovieRepository возвращает репозиторий фильмов.
func (f *RepositoryFactory) MovieRepository() repositories.MovieRepository {
	return f.movieRepo
}
