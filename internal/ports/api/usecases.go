// Package api определяет интерфейсы прикладных сценариев myFlix.
package api

import (
	"context"
	"io"
	"time"

	"myflix/internal/domain/entities"
	"myflix/internal/ports/storage"
)

// RegisterParams содержит данные регистрации нового пользователя.
type RegisterParams struct {
	Username string
	Password string
	Email    string
	Birthday *time.Time
}

// UpdateParams содержит данные обновления профиля.
// Пустой Password означает "пароль не менять".
type UpdateParams struct {
	Username string
	Password string
	Email    string
	Birthday *time.Time
}

// AuthUseCase проверяет учетные данные и выпускает сессионный токен.
type AuthUseCase interface {
	Login(ctx context.Context, username, password string) (*entities.User, string, time.Time, error)
}

// UserUseCase реализует создание, изменение и удаление пользователей
// и управление списком избранных фильмов.
type UserUseCase interface {
	Register(ctx context.Context, params RegisterParams) (*entities.User, error)
	Update(ctx context.Context, username string, params UpdateParams) (*entities.User, error)
	AddFavorite(ctx context.Context, username, movieID string) (*entities.User, error)
	RemoveFavorite(ctx context.Context, username, movieID string) (*entities.User, error)
	Delete(ctx context.Context, username string) error
}

// CatalogUseCase реализует read-only запросы к каталогу фильмов.
type CatalogUseCase interface {
	ListMovies(ctx context.Context) ([]*entities.Movie, error)
	GetMovieByTitle(ctx context.Context, title string) (*entities.Movie, error)
	GetGenre(ctx context.Context, genreName string) (*entities.Genre, error)
	GetDirector(ctx context.Context, directorName string) (*entities.Director, error)
}

// ImageUseCase реализует операции над изображениями в объектном хранилище.
type ImageUseCase interface {
	ListImages(ctx context.Context) ([]storage.ObjectInfo, error)
	Upload(ctx context.Context, fileName, contentType string, size int64, body io.Reader) (string, error)
	GetImage(ctx context.Context, fileName string) (*storage.Object, error)
}
