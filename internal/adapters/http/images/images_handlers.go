// Package images содержит HTTP обработчики шлюза объектного хранилища.
package images

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"myflix/internal/app"
	"myflix/internal/ports/api"
	"myflix/internal/ports/storage"
	"myflix/pkg/logger"
)

// FormFileField имя поля multipart-формы с файлом изображения.
const FormFileField = "image"

// Константы для логирования.
const (
	LogHandlerListImages = "images handler: list"
	LogHandlerUpload     = "images handler: upload"
	LogHandlerGetImage   = "images handler: get"

	ErrorMissingFile          = "multipart field \"image\" is required"
	ErrorInvalidFileName      = "invalid file name"
	ErrorImageNotFound        = "image not found"
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

// Handler содержит HTTP обработчики изображений.
type Handler struct {
	imageUseCase api.ImageUseCase
}

// NewHandler создает новый экземпляр обработчика изображений.
func NewHandler(imageUseCase api.ImageUseCase) *Handler {
	return &Handler{
		imageUseCase: imageUseCase,
	}
}

// ListImages возвращает листинг объектов bucket.
func (h *Handler) ListImages(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerListImages)

	objects, err := h.imageUseCase.ListImages(requestCtx)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, ErrorInternalServer)
	}

	if err := ctx.Status(http.StatusOK).JSON(objects); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Upload принимает файл из multipart-формы и передает его в хранилище
// потоково, не сохраняя на диск.
func (h *Handler) Upload(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpload)

	fileHeader, err := ctx.FormFile(FormFileField)
	if err != nil {
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorMissingFile)
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, ErrorInternalServer)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Warn(requestCtx, "failed to close uploaded file", zap.Error(closeErr))
		}
	}()

	key, err := h.imageUseCase.Upload(requestCtx,
		fileHeader.Filename,
		fileHeader.Header.Get(fiber.HeaderContentType),
		fileHeader.Size,
		file,
	)
	if err != nil {
		if errors.Is(err, app.ErrInvalidFileName) {
			return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidFileName)
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, ErrorInternalServer)
	}

	if err := ctx.Status(http.StatusCreated).JSON(fiber.Map{
		"key": key,
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// GetImage отдает содержимое объекта с его Content-Type и Content-Length.
func (h *Handler) GetImage(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGetImage)

	object, err := h.imageUseCase.GetImage(requestCtx, ctx.Params("fileName"))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return sendErrorResponse(ctx, http.StatusNotFound, ErrorImageNotFound)
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, ErrorInternalServer)
	}

	if object.ContentType != "" {
		ctx.Set(fiber.HeaderContentType, object.ContentType)
	}

	if err := ctx.Status(http.StatusOK).SendStream(object.Body, int(object.ContentLength)); err != nil {
		return fmt.Errorf("sending image body: %w", err)
	}
	return nil
}
