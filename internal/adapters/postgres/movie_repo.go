package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"myflix/internal/domain/entities"
	"myflix/internal/ports/repositories"
	"myflix/pkg/logger"
)

const movieColumns = `id, title, description, genre_name, genre_description,
        director_name, director_bio, director_birth, director_death`

// MovieRepository реализует интерфейс repositories.MovieRepository для работы с Postgres.
type MovieRepository struct {
	pool PgxPoolInterface
}

// NewMovieRepository создает новый экземпляр репозитория фильмов.
func NewMovieRepository(pool PgxPoolInterface) repositories.MovieRepository {
	return &MovieRepository{pool: pool}
}

// List возвращает все фильмы каталога.
func (r *MovieRepository) List(ctx context.Context) ([]*entities.Movie, error) {
	log := logger.Log(ctx).With(zap.String("repository", "movie"), zap.String("method", "List"))

	rows, err := r.pool.Query(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY title`)
	if err != nil {
		log.Error(ctx, "error listing movies", zap.Error(err))
		return nil, fmt.Errorf("error listing movies: %w", err)
	}
	defer rows.Close()

	movies := make([]*entities.Movie, 0)
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			log.Error(ctx, "error scanning movie", zap.Error(err))
			return nil, err
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating movies", zap.Error(err))
		return nil, fmt.Errorf("error iterating movies: %w", err)
	}

	return movies, nil
}

// FindByTitle находит фильм по точному совпадению названия.
func (r *MovieRepository) FindByTitle(ctx context.Context, title string) (*entities.Movie, error) {
	return r.findOne(ctx, "FindByTitle", `WHERE title = $1`, title)
}

// FindByGenreName находит один фильм с указанным именем жанра.
func (r *MovieRepository) FindByGenreName(ctx context.Context, genreName string) (*entities.Movie, error) {
	return r.findOne(ctx, "FindByGenreName", `WHERE genre_name = $1`, genreName)
}

// FindByDirectorName находит один фильм с указанным именем режиссера.
func (r *MovieRepository) FindByDirectorName(ctx context.Context, directorName string) (*entities.Movie, error) {
	return r.findOne(ctx, "FindByDirectorName", `WHERE director_name = $1`, directorName)
}

func (r *MovieRepository) findOne(ctx context.Context, method, where string, arg interface{}) (*entities.Movie, error) {
	log := logger.Log(ctx).With(zap.String("repository", "movie"), zap.String("method", method))

	row := r.pool.QueryRow(ctx, `SELECT `+movieColumns+` FROM movies `+where+` LIMIT 1`, arg)

	movie, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "movie not found")
			return nil, entities.ErrMovieNotFound
		}
		log.Error(ctx, "error finding movie", zap.Error(err))
		return nil, fmt.Errorf("error finding movie: %w", err)
	}

	return movie, nil
}

func scanMovie(row pgx.Row) (*entities.Movie, error) {
	var movie entities.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Genre.Name,
		&movie.Genre.Description,
		&movie.Director.Name,
		&movie.Director.Bio,
		&movie.Director.Birth,
		&movie.Director.Death,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("error scanning movie: %w", err)
	}
	return &movie, nil
}
