// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"myflix/internal/ports/repositories"
	"myflix/internal/ports/services"
	"myflix/pkg/logger"
)

// IdentityKey ключ Locals с аутентифицированным пользователем.
const IdentityKey = "identity"

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorInvalidToken       = "invalid or expired token"
	ErrorUnknownUser        = "token subject no longer exists"
)

func sendUnauthorized(ctx fiber.Ctx, message string) error {
	if err := ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("error sending unauthorized response: %w", err)
	}
	return nil
}

// NewAuthMiddleware создает новое промежуточное ПО для проверки аутентификации.
// Проверенный пользователь сохраняется в Locals под ключом IdentityKey;
// любая неудача завершает запрос со статусом 401.
func NewAuthMiddleware(tokenService services.TokenService, userRepo repositories.UserRepository) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		authHeader := ctx.Get("Authorization")
		if authHeader == "" {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			return sendUnauthorized(ctx, ErrorNoAuthHeader)
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			return sendUnauthorized(ctx, ErrorInvalidTokenFormat)
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := tokenService.ValidateToken(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, ErrorInvalidToken, zap.Error(err))
			return sendUnauthorized(ctx, ErrorInvalidToken)
		}

		user, err := userRepo.FindByID(requestCtx, claims.UserID)
		if err != nil {
			log.Debug(requestCtx, ErrorUnknownUser, zap.Error(err))
			return sendUnauthorized(ctx, ErrorInvalidToken)
		}

		ctx.Locals(IdentityKey, user)

		return ctx.Next()
	}
}
