// Package postgres содержит реализации репозиториев для PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"myflix/internal/domain/entities"
	"myflix/internal/ports/repositories"
	"myflix/pkg/logger"
)

// PgxPoolInterface описывает используемое подмножество pgxpool.Pool.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// UserRepository реализует интерфейс repositories.UserRepository для работы с Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// Регистрация закрыта уникальным индексом по username: дубликат
// обнаруживается по коду ошибки, а не предварительной выборкой.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}

// Create создает нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	query := `
        INSERT INTO users (username, password_hash, email, birthday)
        VALUES ($1, $2, $3, $4)
        RETURNING id, username, password_hash, email, birthday, created_at, updated_at
    `

	var createdUser entities.User
	err := r.pool.QueryRow(ctx, query,
		user.Username,
		user.PasswordHash,
		user.Email,
		user.Birthday,
	).Scan(
		&createdUser.ID,
		&createdUser.Username,
		&createdUser.PasswordHash,
		&createdUser.Email,
		&createdUser.Birthday,
		&createdUser.CreatedAt,
		&createdUser.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Debug(ctx, "username already taken", zap.String("username", user.Username))
			return nil, entities.ErrUsernameTaken
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	createdUser.FavoriteMovies = []string{}
	return &createdUser, nil
}

// FindByID находит пользователя по ID вместе со списком избранного.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))

	query := `
        SELECT id, username, password_hash, email, birthday, created_at, updated_at
        FROM users
        WHERE id = $1
    `

	user, err := r.scanUser(ctx, query, id)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, "user not found", zap.String("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by id", zap.Error(err))
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}

	return user, nil
}

// FindByUsername находит пользователя по username вместе со списком избранного.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByUsername"))

	query := `
        SELECT id, username, password_hash, email, birthday, created_at, updated_at
        FROM users
        WHERE username = $1
    `

	user, err := r.scanUser(ctx, query, username)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, "user not found", zap.String("username", username))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by username", zap.Error(err))
		return nil, fmt.Errorf("error querying user by username: %w", err)
	}

	return user, nil
}

// Update обновляет профиль пользователя по ID.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Update"))

	query := `
        UPDATE users
        SET username = $2, password_hash = $3, email = $4, birthday = $5, updated_at = $6
        WHERE id = $1
        RETURNING id, username, password_hash, email, birthday, created_at, updated_at
    `

	var updatedUser entities.User
	now := time.Now().UTC()

	err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.Email,
		user.Birthday,
		now,
	).Scan(
		&updatedUser.ID,
		&updatedUser.Username,
		&updatedUser.PasswordHash,
		&updatedUser.Email,
		&updatedUser.Birthday,
		&updatedUser.CreatedAt,
		&updatedUser.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found for update", zap.String("id", user.ID))
			return nil, entities.ErrUserNotFound
		}
		if isUniqueViolation(err) {
			log.Debug(ctx, "new username already taken", zap.String("username", user.Username))
			return nil, entities.ErrUsernameTaken
		}
		log.Error(ctx, "error updating user", zap.Error(err))
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	favorites, err := r.loadFavorites(ctx, updatedUser.ID)
	if err != nil {
		return nil, err
	}
	updatedUser.FavoriteMovies = favorites

	return &updatedUser, nil
}

// Delete удаляет пользователя по username. Избранное удаляется каскадно.
func (r *UserRepository) Delete(ctx context.Context, username string) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Delete"))

	query := `
        DELETE FROM users
        WHERE username = $1
    `

	result, err := r.pool.Exec(ctx, query, username)
	if err != nil {
		log.Error(ctx, "error deleting user", zap.Error(err))
		return fmt.Errorf("error deleting user: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "user not found for deletion", zap.String("username", username))
		return entities.ErrUserNotFound
	}

	return nil
}

// AddFavorite добавляет фильм в избранное пользователя.
// Повторное добавление того же фильма не создает дубликата.
func (r *UserRepository) AddFavorite(ctx context.Context, username, movieID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "AddFavorite"))

	query := `
        INSERT INTO user_favorites (user_id, movie_id)
        SELECT u.id, $2 FROM users u WHERE u.username = $1
        ON CONFLICT (user_id, movie_id) DO NOTHING
    `

	_, err := r.pool.Exec(ctx, query, username, movieID)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Debug(ctx, "movie not found", zap.String("movieID", movieID))
			return nil, entities.ErrMovieNotFound
		}
		log.Error(ctx, "error adding favorite", zap.Error(err))
		return nil, fmt.Errorf("error adding favorite: %w", err)
	}

	return r.FindByUsername(ctx, username)
}

// RemoveFavorite удаляет фильм из избранного пользователя.
func (r *UserRepository) RemoveFavorite(ctx context.Context, username, movieID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "RemoveFavorite"))

	query := `
        DELETE FROM user_favorites
        WHERE user_id = (SELECT id FROM users WHERE username = $1)
          AND movie_id = $2
    `

	_, err := r.pool.Exec(ctx, query, username, movieID)
	if err != nil {
		log.Error(ctx, "error removing favorite", zap.Error(err))
		return nil, fmt.Errorf("error removing favorite: %w", err)
	}

	return r.FindByUsername(ctx, username)
}

func (r *UserRepository) scanUser(ctx context.Context, query string, arg interface{}) (*entities.User, error) {
	var user entities.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Email,
		&user.Birthday,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}

	favorites, err := r.loadFavorites(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.FavoriteMovies = favorites

	return &user, nil
}

// loadFavorites возвращает идентификаторы избранных фильмов в порядке добавления.
func (r *UserRepository) loadFavorites(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT movie_id FROM user_favorites WHERE user_id = $1 ORDER BY added_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying favorites: %w", err)
	}
	defer rows.Close()

	favorites := make([]string, 0)
	for rows.Next() {
		var movieID string
		if err := rows.Scan(&movieID); err != nil {
			return nil, fmt.Errorf("error scanning favorite: %w", err)
		}
		favorites = append(favorites, movieID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favorites: %w", err)
	}

	return favorites, nil
}
