package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"myflix/internal/ports/api"
	"myflix/internal/ports/storage"
	"myflix/pkg/logger"
)

// ErrInvalidFileName возвращается для пустого имени файла или имени,
// содержащего разделители пути.
var ErrInvalidFileName = errors.New("invalid file name")

const (
	methodListImages = "ListImages"
	methodUpload     = "Upload"
	methodGetImage   = "GetImage"

	msgStartUpload     = "uploading image"
	msgUploadDone      = "image uploaded"
	msgErrListImages   = "failed to list images"
	msgErrUploadImage  = "failed to upload image"
	msgErrGetImage     = "failed to get image"
	msgBadFileName    = "rejected file name"

	errCtxListingImages = "listing images"
	errCtxUploading     = "uploading image"
	errCtxGettingImage  = "getting image"
)

// ImageUseCaseImpl реализует интерфейс api.ImageUseCase поверх
// объектного хранилища.
type ImageUseCaseImpl struct {
	objectStore storage.ObjectStorage
}

// NewImageUseCase создает новый экземпляр сервиса изображений.
func NewImageUseCase(objectStore storage.ObjectStorage) api.ImageUseCase {
	return &ImageUseCaseImpl{objectStore: objectStore}
}

// ListImages возвращает листинг всех объектов bucket.
func (u *ImageUseCaseImpl) ListImages(ctx context.Context) ([]storage.ObjectInfo, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListImages))

	objects, err := u.objectStore.List(ctx)
	if err != nil {
		log.Error(ctx, msgErrListImages, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingImages, err)
	}

	return objects, nil
}

// Upload записывает изображение в хранилище потоково, без временного файла.
// Имя файла становится ключом объекта и возвращается вызывающей стороне.
func (u *ImageUseCaseImpl) Upload(ctx context.Context, fileName, contentType string, size int64, body io.Reader) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpload), zap.String("file_name", fileName))
	log.Debug(ctx, msgStartUpload, zap.Int64("size", size))

	if err := validateFileName(fileName); err != nil {
		log.Warn(ctx, msgBadFileName, zap.Error(err))
		return "", err
	}

	if err := u.objectStore.Put(ctx, fileName, contentType, size, body); err != nil {
		log.Error(ctx, msgErrUploadImage, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxUploading, err)
	}

	log.Info(ctx, msgUploadDone, zap.Int64("size", size))
	return fileName, nil
}

// GetImage читает объект по ключу. Body закрывает вызывающая сторона.
func (u *ImageUseCaseImpl) GetImage(ctx context.Context, fileName string) (*storage.Object, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetImage), zap.String("file_name", fileName))

	if err := validateFileName(fileName); err != nil {
		log.Warn(ctx, msgBadFileName, zap.Error(err))
		return nil, storage.ErrObjectNotFound
	}

	object, err := u.objectStore.Get(ctx, fileName)
	if err != nil {
		if !errors.Is(err, storage.ErrObjectNotFound) {
			log.Error(ctx, msgErrGetImage, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxGettingImage, err)
	}

	return object, nil
}

// validateFileName отклоняет пустые имена и любые разделители пути,
// чтобы ключ объекта не выходил за пределы bucket.
func validateFileName(fileName string) error {
	if fileName == "" ||
		strings.ContainsAny(fileName, `/\`) ||
		strings.Contains(fileName, "..") {
		return ErrInvalidFileName
	}
	return nil
}
