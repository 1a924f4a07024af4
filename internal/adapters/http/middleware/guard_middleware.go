// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"myflix/internal/domain/entities"
	"myflix/pkg/logger"
)

// Константы для логирования.
const (
	LogGuardMiddleware = "authorization guard"

	ErrorNoIdentity       = "no authenticated identity"
	ErrorPermissionDenied = "Permission denied"
)

// NewGuardMiddleware создает промежуточное ПО авторизации запроса:
// параметр пути :Username должен совпадать с аутентифицированным
// пользователем. Несовпадение завершает запрос со статусом 403
// до вызова обработчика.
func NewGuardMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "guard"))
		log.Debug(requestCtx, LogGuardMiddleware)

		user, ok := ctx.Locals(IdentityKey).(*entities.User)
		if !ok {
			log.Debug(requestCtx, ErrorNoIdentity)
			return sendUnauthorized(ctx, ErrorNoIdentity)
		}

		if ctx.Params("Username") != user.Username {
			log.Debug(requestCtx, ErrorPermissionDenied,
				zap.String("username", user.Username),
				zap.String("requested", ctx.Params("Username")))
			if err := ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": ErrorPermissionDenied,
			}); err != nil {
				return fmt.Errorf("error sending forbidden response: %w", err)
			}
			return nil
		}

		return ctx.Next()
	}
}
