// Package services содержит реализации прикладных сервисов myFlix.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	domain "myflix/internal/domain/services"
	svc "myflix/internal/ports/services"
	"myflix/pkg/logger"
)

// Константы для работы с JWT.
const (
	methodGenerateToken = "GenerateToken"
	methodValidateToken = "ValidateToken"

	msgGeneratingToken = "generating session token"
	msgValidatingToken = "validating token"
	msgTokenGenerated  = "token generated successfully"
	msgTokenValidated  = "token validated successfully"
	msgInvalidToken    = "invalid token format"
	msgTokenExpired    = "token has expired"

	//nolint:gosec
	errSigningToken = "error signing token"
	//nolint:gosec
	errParsingToken       = "error parsing token"
	errCtxGeneratingToken = "generating token"
	errCtxParsingToken    = "parsing token"
	errCtxValidatingToken = "validating token"
)

// ErrInvalidAlgorithm представляет статическую ошибку неверного алгоритма подписи.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// Claims используется для адаптации между доменной моделью и библиотекой JWT.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует интерфейс TokenService.
type ServiceJWT struct {
	config domain.JWTConfig
}

// NewJWT создает новый экземпляр сервиса JWT.
func NewJWT(secretKey string, tokenTTL time.Duration) svc.TokenService {
	return &ServiceJWT{
		config: domain.JWTConfig{
			SecretKey: []byte(secretKey),
			TokenTTL:  tokenTTL,
		},
	}
}

// Subject токена равен username, как в исходном контракте API.
func domainToJWTClaims(claims domain.JWTClaims) Claims {
	return Claims{
		UserID:   claims.UserID,
		Username: claims.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			Subject:   claims.Username,
		},
	}
}

func jwtToDomainClaims(claims Claims) domain.JWTClaims {
	var expiresAt, issuedAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}

	return domain.JWTClaims{
		UserID:    claims.UserID,
		Username:  claims.Username,
		ExpiresAt: expiresAt,
		IssuedAt:  issuedAt,
	}
}

// GenerateToken генерирует сессионный JWT токен пользователя.
func (s *ServiceJWT) GenerateToken(ctx context.Context, userID, username string) (string, time.Time, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodGenerateToken),
		zap.String("userID", userID),
	)
	log.Debug(ctx, msgGeneratingToken)

	if len(s.config.SecretKey) == 0 {
		log.Error(ctx, "empty secret key provided")
		return "", time.Time{}, fmt.Errorf("%s: %w: empty secret key", errCtxGeneratingToken, domain.ErrGeneratingJWTToken)
	}

	now := time.Now()
	expiresAt := now.Add(s.config.TokenTTL)

	jwtClaims := domainToJWTClaims(domain.JWTClaims{
		UserID:    userID,
		Username:  username,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	})

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)

	tokenString, err := token.SignedString(s.config.SecretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%s: %w: %w", errCtxGeneratingToken, domain.ErrGeneratingJWTToken, err)
	}

	log.Debug(ctx, msgTokenGenerated, zap.Time("expiresAt", expiresAt))
	return tokenString, expiresAt, nil
}

// ValidateToken проверяет JWT токен и возвращает доменные claims.
func (s *ServiceJWT) ValidateToken(ctx context.Context, tokenString string) (*domain.JWTClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidateToken))
	log.Debug(ctx, msgValidatingToken)

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.config.SecretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, domain.ErrExpiredJWTToken)
		}
		log.Error(ctx, errParsingToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxParsingToken, domain.ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		log.Debug(ctx, msgInvalidToken)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, domain.ErrInvalidJWTToken)
	}

	if claims.UserID == "" {
		log.Debug(ctx, "user_id claim is empty")
		return nil, fmt.Errorf("%s: %w: empty user_id", errCtxValidatingToken, domain.ErrInvalidJWTToken)
	}

	domainClaims := jwtToDomainClaims(*claims)

	log.Debug(ctx, msgTokenValidated, zap.String("userID", domainClaims.UserID))
	return &domainClaims, nil
}
