// Package users содержит HTTP обработчики управления пользователями
// и списком избранных фильмов.
package users

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"myflix/internal/app"
	"myflix/internal/app/dto"
	"myflix/internal/domain/entities"
	"myflix/internal/ports/api"
	"myflix/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister       = "users handler: register"
	LogHandlerUpdate         = "users handler: update"
	LogHandlerAddFavorite    = "users handler: add favorite"
	LogHandlerRemoveFavorite = "users handler: remove favorite"
	LogHandlerDelete         = "users handler: delete"

	ErrorInvalidRequest       = "invalid request"
	ErrorInvalidBirthday      = "Birthday must be a date in YYYY-MM-DD format"
	ErrorInvalidMovieID       = "invalid movie id"
	ErrorMovieNotFound        = "movie not found"
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

// Каждая неудачная операция над пользователем проходит через единое
// сопоставление доменных ошибок со статусами; текст внутренних ошибок
// клиенту не отдается.
func sendUserError(ctx fiber.Ctx, username string, err error) error {
	var vErr *app.ValidationError
	if errors.As(err, &vErr) {
		items := make([]dto.ValidationErrorItem, 0, len(vErr.Rules))
		for _, rule := range vErr.Rules {
			items = append(items, dto.ValidationErrorItem{Msg: rule})
		}
		if jsonErr := ctx.Status(http.StatusUnprocessableEntity).JSON(dto.ValidationErrorResponse{
			Errors: items,
		}); jsonErr != nil {
			return fmt.Errorf("error sending validation response: %w", jsonErr)
		}
		return nil
	}

	switch {
	case errors.Is(err, entities.ErrUsernameTaken):
		return sendErrorResponse(ctx, http.StatusConflict, username+" already exists.")
	case errors.Is(err, entities.ErrUserNotFound):
		return sendErrorResponse(ctx, http.StatusNotFound, username+" was not found.")
	case errors.Is(err, entities.ErrMovieNotFound):
		return sendErrorResponse(ctx, http.StatusNotFound, ErrorMovieNotFound)
	default:
		return sendErrorResponse(ctx, http.StatusInternalServerError, ErrorInternalServer)
	}
}

// Handler содержит HTTP обработчики управления пользователями.
type Handler struct {
	userUseCase api.UserUseCase
}

// NewHandler создает новый экземпляр обработчика пользователей.
func NewHandler(userUseCase api.UserUseCase) *Handler {
	return &Handler{
		userUseCase: userUseCase,
	}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	birthday, err := dto.ParseBirthday(req.Birthday)
	if err != nil {
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidBirthday)
	}

	user, err := h.userUseCase.Register(requestCtx, api.RegisterParams{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Birthday: birthday,
	})
	if err != nil {
		if !errors.Is(err, entities.ErrUsernameTaken) {
			log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		}
		return sendUserError(ctx, req.Username, err)
	}

	if err := ctx.Status(http.StatusCreated).JSON(dto.UserToResponse(user)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Update обрабатывает запрос на обновление профиля пользователя.
func (h *Handler) Update(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdate)

	username := ctx.Params("Username")

	var req dto.UpdateUserRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	birthday, err := dto.ParseBirthday(req.Birthday)
	if err != nil {
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidBirthday)
	}

	user, err := h.userUseCase.Update(requestCtx, username, api.UpdateParams{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Birthday: birthday,
	})
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendUserError(ctx, username, err)
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.UserToResponse(user)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// AddFavorite обрабатывает запрос на добавление фильма в избранное.
// Повторное добавление того же фильма не меняет список.
func (h *Handler) AddFavorite(ctx fiber.Ctx) error {
	return h.handleFavorite(ctx, LogHandlerAddFavorite, h.userUseCase.AddFavorite)
}

// RemoveFavorite обрабатывает запрос на удаление фильма из избранного.
func (h *Handler) RemoveFavorite(ctx fiber.Ctx) error {
	return h.handleFavorite(ctx, LogHandlerRemoveFavorite, h.userUseCase.RemoveFavorite)
}

func (h *Handler) handleFavorite(ctx fiber.Ctx, logMsg string,
	mutate func(ctx context.Context, username, movieID string) (*entities.User, error),
) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, logMsg)

	username := ctx.Params("Username")
	movieID := ctx.Params("MovieID")

	if _, err := uuid.Parse(movieID); err != nil {
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidMovieID)
	}

	user, err := mutate(requestCtx, username, movieID)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendUserError(ctx, username, err)
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.UserToResponse(user)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Delete обрабатывает запрос на удаление учетной записи.
func (h *Handler) Delete(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDelete)

	username := ctx.Params("Username")

	if err := h.userUseCase.Delete(requestCtx, username); err != nil {
		if !errors.Is(err, entities.ErrUserNotFound) {
			log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		}
		return sendUserError(ctx, username, err)
	}

	if err := ctx.Status(http.StatusOK).SendString(username + " was deleted."); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
