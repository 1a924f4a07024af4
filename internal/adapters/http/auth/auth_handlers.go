// Package auth содержит HTTP обработчики аутентификации.
package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"myflix/internal/app/dto"
	domain "myflix/internal/domain/services"
	"myflix/internal/ports/api"
	"myflix/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerLogin = "auth handler: login"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"
	ErrorInternalServer       = "internal server error"
)

// Вспомогательная функция для обработки ошибок HTTP.
func sendErrorResponse(ctx fiber.Ctx, statusCode int, message string) error {
	if err := ctx.Status(statusCode).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Handler содержит HTTP обработчики аутентификации.
type Handler struct {
	authUseCase api.AuthUseCase
}

// NewHandler создает новый экземпляр обработчика аутентификации.
func NewHandler(authUseCase api.AuthUseCase) *Handler {
	return &Handler{
		authUseCase: authUseCase,
	}
}

// Login обрабатывает запрос на вход пользователя.
// Неизвестный username и неверный пароль дают одинаковый ответ 401.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	user, token, _, err := h.authUseCase.Login(requestCtx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return sendErrorResponse(ctx, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error())
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, ErrorInternalServer)
	}

	response := dto.LoginResponse{
		User:  dto.UserToResponse(user),
		Token: token,
	}

	if err := ctx.Status(http.StatusOK).JSON(response); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
