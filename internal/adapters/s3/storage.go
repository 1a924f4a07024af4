// Package s3 реализует шлюз объектного хранилища изображений поверх AWS S3.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"myflix/internal/config"
	"myflix/internal/ports/storage"
	"myflix/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodList = "List"
	LogMethodPut  = "Put"
	LogMethodGet  = "Get"

	ErrorFailedToList = "failed to list bucket objects"
	ErrorFailedToPut  = "failed to upload object"
	ErrorFailedToGet  = "failed to get object"
)

// Storage реализует интерфейс storage.ObjectStorage.
type Storage struct {
	client *s3.Client
	bucket string
}

// New создает клиент объектного хранилища.
// Для S3-совместимых хранилищ (MinIO) указывается BaseEndpoint и path-style адресация.
func New(ctx context.Context, cfg *config.S3Config) (*Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &Storage{client: client, bucket: cfg.Bucket}, nil
}

// List возвращает листинг объектов bucket.
func (s *Storage) List(ctx context.Context) ([]storage.ObjectInfo, error) {
	log := logger.Log(ctx).With(zap.String("storage", "s3"), zap.String("method", LogMethodList))

	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		log.Error(ctx, ErrorFailedToList, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToList, err)
	}

	objects := make([]storage.ObjectInfo, 0, len(out.Contents))
	for _, obj := range out.Contents {
		objects = append(objects, storage.ObjectInfo{
			Key:          aws.ToString(obj.Key),
			Size:         aws.ToInt64(obj.Size),
			LastModified: aws.ToTime(obj.LastModified),
		})
	}

	return objects, nil
}

// Put загружает объект, читая body напрямую, без временного файла.
// Существующий объект с тем же ключом перезаписывается.
func (s *Storage) Put(ctx context.Context, key, contentType string, size int64, body io.Reader) error {
	log := logger.Log(ctx).With(zap.String("storage", "s3"),
		zap.String("method", LogMethodPut), zap.String("key", key))

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		log.Error(ctx, ErrorFailedToPut, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToPut, err)
	}

	return nil
}

// Get возвращает содержимое объекта по ключу.
func (s *Storage) Get(ctx context.Context, key string) (*storage.Object, error) {
	log := logger.Log(ctx).With(zap.String("storage", "s3"),
		zap.String("method", LogMethodGet), zap.String("key", key))

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			log.Debug(ctx, "object not found")
			return nil, storage.ErrObjectNotFound
		}
		log.Error(ctx, ErrorFailedToGet, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}

	return &storage.Object{
		Body:          out.Body,
		ContentType:   aws.ToString(out.ContentType),
		ContentLength: aws.ToInt64(out.ContentLength),
	}, nil
}
