// Package services определяет интерфейсы прикладных сервисов myFlix.
package services

import (
	"context"
	"time"

	domain "myflix/internal/domain/services"
)

// TokenService определяет операции генерации и проверки сессионных токенов.
type TokenService interface {
	GenerateToken(ctx context.Context, userID, username string) (string, time.Time, error)
	ValidateToken(ctx context.Context, token string) (*domain.JWTClaims, error)
}
