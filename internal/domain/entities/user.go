// Package entities определяет доменные сущности myFlix.
package entities

import (
	"errors"
	"time"
)

// Ошибки домена пользователя.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
)

// User представляет основную сущность домена пользователя.
// FavoriteMovies хранит идентификаторы фильмов в порядке добавления.
type User struct {
	ID             string
	Username       string
	PasswordHash   string
	Email          string
	Birthday       *time.Time
	FavoriteMovies []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
