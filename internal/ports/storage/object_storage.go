// Package storage определяет интерфейс внешнего объектного хранилища.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrObjectNotFound возвращается при запросе отсутствующего объекта.
var ErrObjectNotFound = errors.New("object not found")

// ObjectInfo описывает объект в листинге хранилища.
type ObjectInfo struct {
	Key          string    `json:"Key"`
	Size         int64     `json:"Size"`
	LastModified time.Time `json:"LastModified"`
}

// Object представляет содержимое объекта. Body закрывает вызывающая сторона.
type Object struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// ObjectStorage определяет операции над bucket с изображениями.
type ObjectStorage interface {
	List(ctx context.Context) ([]ObjectInfo, error)
	Put(ctx context.Context, key, contentType string, size int64, body io.Reader) error
	Get(ctx context.Context, key string) (*Object, error)
}
