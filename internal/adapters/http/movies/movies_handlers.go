// Package movies содержит HTTP обработчики каталога фильмов.
package movies

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"myflix/internal/app/dto"
	"myflix/internal/domain/entities"
	"myflix/internal/ports/api"
	"myflix/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerListMovies  = "movies handler: list"
	LogHandlerGetMovie    = "movies handler: get by title"
	LogHandlerGetGenre    = "movies handler: get genre"
	LogHandlerGetDirector = "movies handler: get director"

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

// Handler содержит HTTP обработчики каталога.
type Handler struct {
	catalogUseCase api.CatalogUseCase
}

// NewHandler создает новый экземпляр обработчика каталога.
func NewHandler(catalogUseCase api.CatalogUseCase) *Handler {
	return &Handler{
		catalogUseCase: catalogUseCase,
	}
}

// ListMovies возвращает все фильмы каталога.
func (h *Handler) ListMovies(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerListMovies)

	movies, err := h.catalogUseCase.ListMovies(requestCtx)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, ErrorInternalServer)
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.MoviesToResponse(movies)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// GetMovie возвращает фильм по точному названию.
func (h *Handler) GetMovie(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGetMovie)

	movie, err := h.catalogUseCase.GetMovieByTitle(requestCtx, ctx.Params("Title"))
	if err != nil {
		return h.sendCatalogError(ctx, err)
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.MovieToResponse(movie)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// GetGenre возвращает описание жанра по его имени.
func (h *Handler) GetGenre(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGetGenre)

	genre, err := h.catalogUseCase.GetGenre(requestCtx, ctx.Params("genreName"))
	if err != nil {
		return h.sendCatalogError(ctx, err)
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.GenreToResponse(genre)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// GetDirector возвращает сведения о режиссере по его имени.
func (h *Handler) GetDirector(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGetDirector)

	director, err := h.catalogUseCase.GetDirector(requestCtx, ctx.Params("directorName"))
	if err != nil {
		return h.sendCatalogError(ctx, err)
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.DirectorToResponse(director)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

func (h *Handler) sendCatalogError(ctx fiber.Ctx, err error) error {
	if errors.Is(err, entities.ErrMovieNotFound) {
		return sendErrorResponse(ctx, http.StatusNotFound, ErrorMovieNotFound)
	}

	requestCtx := ctx.Context()
	logger.Log(requestCtx).Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
	return sendErrorResponse(ctx, http.StatusInternalServerError, ErrorInternalServer)
}
