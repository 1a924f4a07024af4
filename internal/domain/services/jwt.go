// Package services определяет доменные типы и ошибки сервисов myFlix.
package services

import (
	"errors"
	"time"
)

// Ошибки работы с JWT токенами.
var (
	ErrGeneratingJWTToken = errors.New("error generating jwt token")
	ErrInvalidJWTToken    = errors.New("invalid jwt token")
	ErrExpiredJWTToken    = errors.New("jwt token has expired")
)

// JWTConfig содержит параметры подписи токенов.
type JWTConfig struct {
	SecretKey []byte
	TokenTTL  time.Duration
}

// JWTClaims доменное представление содержимого токена.
// Subject токена равен Username; UserID используется для поиска пользователя.
type JWTClaims struct {
	UserID    string
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
