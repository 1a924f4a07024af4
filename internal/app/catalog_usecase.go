package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"myflix/internal/domain/entities"
	"myflix/internal/ports/api"
	"myflix/internal/ports/cache"
	"myflix/internal/ports/repositories"
	"myflix/pkg/logger"
)

// Ключи кэша каталога. Каталог read-only, поэтому инвалидация не требуется.
const (
	cacheKeyAllMovies   = "movies:all"
	cacheKeyTitlePrefix = "movies:title:"
	cacheKeyGenrePrefix = "movies:genre:"
	cacheKeyDirPrefix   = "movies:director:"
)

const (
	methodListMovies = "ListMovies"
	methodGetMovie   = "GetMovieByTitle"
	methodGetGenre   = "GetGenre"
	methodGetDir     = "GetDirector"

	msgCatalogCacheHit  = "catalog served from cache"
	msgCatalogCacheSkip = "cache unavailable, falling back to database"
	msgErrListMovies    = "failed to list movies"
	msgErrFindMovie     = "failed to find movie"

	errCtxListingMovies = "listing movies"
	errCtxFindingMovie  = "finding movie"
)

// CatalogUseCaseImpl реализует интерфейс api.CatalogUseCase.
// Все операции чтения фронтируются кэшем; ошибки кэша не фатальны
// и приводят к обращению в базу данных.
type CatalogUseCaseImpl struct {
	movieRepo repositories.MovieRepository
	cache     cache.Cache
	cacheTTL  time.Duration
}

// NewCatalogUseCase создает новый экземпляр сервиса каталога.
func NewCatalogUseCase(movieRepo repositories.MovieRepository, c cache.Cache, cacheTTL time.Duration) api.CatalogUseCase {
	return &CatalogUseCaseImpl{
		movieRepo: movieRepo,
		cache:     c,
		cacheTTL:  cacheTTL,
	}
}

// ListMovies возвращает все фильмы каталога.
func (c *CatalogUseCaseImpl) ListMovies(ctx context.Context) ([]*entities.Movie, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListMovies))

	var cached []*entities.Movie
	if c.lookupCache(ctx, cacheKeyAllMovies, &cached) {
		log.Debug(ctx, msgCatalogCacheHit, zap.String("key", cacheKeyAllMovies))
		return cached, nil
	}

	movies, err := c.movieRepo.List(ctx)
	if err != nil {
		log.Error(ctx, msgErrListMovies, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingMovies, err)
	}

	c.storeCache(ctx, cacheKeyAllMovies, movies)
	return movies, nil
}

// GetMovieByTitle возвращает фильм по точному названию.
func (c *CatalogUseCaseImpl) GetMovieByTitle(ctx context.Context, title string) (*entities.Movie, error) {
	return c.getMovie(ctx, methodGetMovie, cacheKeyTitlePrefix+title, func(ctx context.Context) (*entities.Movie, error) {
		return c.movieRepo.FindByTitle(ctx, title)
	})
}

// GetGenre возвращает вложенный объект жанра фильма с указанным именем жанра.
func (c *CatalogUseCaseImpl) GetGenre(ctx context.Context, genreName string) (*entities.Genre, error) {
	movie, err := c.getMovie(ctx, methodGetGenre, cacheKeyGenrePrefix+genreName, func(ctx context.Context) (*entities.Movie, error) {
		return c.movieRepo.FindByGenreName(ctx, genreName)
	})
	if err != nil {
		return nil, err
	}
	return &movie.Genre, nil
}

// GetDirector возвращает вложенный объект режиссера фильма с указанным именем режиссера.
func (c *CatalogUseCaseImpl) GetDirector(ctx context.Context, directorName string) (*entities.Director, error) {
	movie, err := c.getMovie(ctx, methodGetDir, cacheKeyDirPrefix+directorName, func(ctx context.Context) (*entities.Movie, error) {
		return c.movieRepo.FindByDirectorName(ctx, directorName)
	})
	if err != nil {
		return nil, err
	}
	return &movie.Director, nil
}

func (c *CatalogUseCaseImpl) getMovie(ctx context.Context, method, cacheKey string,
	find func(context.Context) (*entities.Movie, error),
) (*entities.Movie, error) {
	log := logger.Log(ctx).With(zap.String("method", method))

	var cached entities.Movie
	if c.lookupCache(ctx, cacheKey, &cached) {
		log.Debug(ctx, msgCatalogCacheHit, zap.String("key", cacheKey))
		return &cached, nil
	}

	movie, err := find(ctx)
	if err != nil {
		if !errors.Is(err, entities.ErrMovieNotFound) {
			log.Error(ctx, msgErrFindMovie, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxFindingMovie, err)
	}

	c.storeCache(ctx, cacheKey, movie)
	return movie, nil
}

// lookupCache возвращает true при попадании; промах и ошибка кэша равнозначны.
func (c *CatalogUseCaseImpl) lookupCache(ctx context.Context, key string, dest interface{}) bool {
	if c.cache == nil {
		return false
	}

	value, err := c.cache.Get(ctx, key)
	if err != nil {
		logger.Log(ctx).Warn(ctx, msgCatalogCacheSkip, zap.String("key", key), zap.Error(err))
		return false
	}
	if value == "" {
		return false
	}

	if err := json.Unmarshal([]byte(value), dest); err != nil {
		logger.Log(ctx).Warn(ctx, msgCatalogCacheSkip, zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *CatalogUseCaseImpl) storeCache(ctx context.Context, key string, value interface{}) {
	if c.cache == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		logger.Log(ctx).Warn(ctx, msgCatalogCacheSkip, zap.String("key", key), zap.Error(err))
		return
	}

	if err := c.cache.Set(ctx, key, string(payload), c.cacheTTL); err != nil {
		logger.Log(ctx).Warn(ctx, msgCatalogCacheSkip, zap.String("key", key), zap.Error(err))
	}
}
