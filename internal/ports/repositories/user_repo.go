// Package repositories определяет интерфейсы репозиториев myFlix.
package repositories

import (
	"context"

	"myflix/internal/domain/entities"
)

// UserRepository определяет операции над записями пользователей.
// Уникальность username обеспечивает хранилище: Create и Update возвращают
// entities.ErrUsernameTaken при нарушении уникального индекса.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) (*entities.User, error)
	Delete(ctx context.Context, username string) error

	// AddFavorite и RemoveFavorite имеют семантику множества: повторное
	// добавление не создает дубликата. Возвращают обновленного пользователя.
	AddFavorite(ctx context.Context, username, movieID string) (*entities.User, error)
	RemoveFavorite(ctx context.Context, username, movieID string) (*entities.User, error)
}
