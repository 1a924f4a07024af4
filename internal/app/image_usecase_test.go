package app_test

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"myflix/internal/app"
	"myflix/internal/ports/storage"
)

func TestImageUseCase_ListImages(t *testing.T) {
	ctx := testContext(t)

	t.Run("Листинг возвращает объекты хранилища", func(t *testing.T) {
		objectStore := new(mockObjectStorage)

		objectStore.On("List", mock.Anything).Return([]storage.ObjectInfo{
			{Key: "poster-1.png", Size: 1024, LastModified: time.Now()},
			{Key: "poster-2.png", Size: 2048, LastModified: time.Now()},
		}, nil)

		imageUseCase := app.NewImageUseCase(objectStore)
		objects, err := imageUseCase.ListImages(ctx)

		require.NoError(t, err)
		require.Len(t, objects, 2)
		assert.Equal(t, "poster-1.png", objects[0].Key)
	})

	t.Run("Ошибка хранилища", func(t *testing.T) {
		objectStore := new(mockObjectStorage)

		objectStore.On("List", mock.Anything).Return(nil, errors.New("access denied"))

		imageUseCase := app.NewImageUseCase(objectStore)
		objects, err := imageUseCase.ListImages(ctx)

		assert.Nil(t, objects)
		assert.Error(t, err)
	})
}

func TestImageUseCase_Upload(t *testing.T) {
	ctx := testContext(t)

	t.Run("Тело запроса передается в хранилище без изменений", func(t *testing.T) {
		objectStore := new(mockObjectStorage)
		body := strings.NewReader("image bytes")

		objectStore.On("Put", mock.Anything, "poster.png", "image/png", int64(11), body).Return(nil)

		imageUseCase := app.NewImageUseCase(objectStore)
		key, err := imageUseCase.Upload(ctx, "poster.png", "image/png", 11, body)

		require.NoError(t, err)
		assert.Equal(t, "poster.png", key)

		objectStore.AssertExpectations(t)
	})

	t.Run("Имя файла с разделителем пути отклоняется", func(t *testing.T) {
		objectStore := new(mockObjectStorage)

		imageUseCase := app.NewImageUseCase(objectStore)

		for _, fileName := range []string{"", "../poster.png", "a/b.png", `a\b.png`, "a..b.png"} {
			key, err := imageUseCase.Upload(ctx, fileName, "image/png", 11, strings.NewReader("x"))

			assert.Empty(t, key, "file name %q", fileName)
			assert.ErrorIs(t, err, app.ErrInvalidFileName, "file name %q", fileName)
		}

		objectStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Ошибка хранилища при загрузке", func(t *testing.T) {
		objectStore := new(mockObjectStorage)

		objectStore.On("Put", mock.Anything, "poster.png", "image/png", int64(1), mock.Anything).
			Return(errors.New("bucket not found"))

		imageUseCase := app.NewImageUseCase(objectStore)
		key, err := imageUseCase.Upload(ctx, "poster.png", "image/png", 1, strings.NewReader("x"))

		assert.Empty(t, key)
		assert.Error(t, err)
	})
}

func TestImageUseCase_GetImage(t *testing.T) {
	ctx := testContext(t)

	t.Run("Объект найден", func(t *testing.T) {
		objectStore := new(mockObjectStorage)

		objectStore.On("Get", mock.Anything, "poster.png").Return(&storage.Object{
			Body:          io.NopCloser(strings.NewReader("image bytes")),
			ContentType:   "image/png",
			ContentLength: 11,
		}, nil)

		imageUseCase := app.NewImageUseCase(objectStore)
		object, err := imageUseCase.GetImage(ctx, "poster.png")

		require.NoError(t, err)
		assert.Equal(t, "image/png", object.ContentType)
		assert.Equal(t, int64(11), object.ContentLength)
		require.NoError(t, object.Body.Close())
	})

	t.Run("Объект отсутствует", func(t *testing.T) {
		objectStore := new(mockObjectStorage)

		objectStore.On("Get", mock.Anything, "missing.png").Return(nil, storage.ErrObjectNotFound)

		imageUseCase := app.NewImageUseCase(objectStore)
		object, err := imageUseCase.GetImage(ctx, "missing.png")

		assert.Nil(t, object)
		assert.ErrorIs(t, err, storage.ErrObjectNotFound)
	})

	t.Run("Имя с разделителем пути не доходит до хранилища", func(t *testing.T) {
		objectStore := new(mockObjectStorage)

		imageUseCase := app.NewImageUseCase(objectStore)
		object, err := imageUseCase.GetImage(ctx, "../secret.png")

		assert.Nil(t, object)
		assert.ErrorIs(t, err, storage.ErrObjectNotFound)

		objectStore.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}
