package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpServer "myflix/internal/adapters/http"
	"myflix/internal/domain/entities"
	domain "myflix/internal/domain/services"
	"myflix/internal/ports/api"
	"myflix/internal/ports/storage"
	"myflix/pkg/logger"
)

// Стабы прикладных сценариев: маршрутизатор тестируется изолированно
// от бизнес-логики.

type stubAuthUseCase struct {
	loginFn func(ctx context.Context, username, password string) (*entities.User, string, time.Time, error)
}

func (s *stubAuthUseCase) Login(ctx context.Context, username, password string) (*entities.User, string, time.Time, error) {
	return s.loginFn(ctx, username, password)
}

type stubUserUseCase struct {
	registerFn       func(ctx context.Context, params api.RegisterParams) (*entities.User, error)
	updateFn         func(ctx context.Context, username string, params api.UpdateParams) (*entities.User, error)
	addFavoriteFn    func(ctx context.Context, username, movieID string) (*entities.User, error)
	removeFavoriteFn func(ctx context.Context, username, movieID string) (*entities.User, error)
	deleteFn         func(ctx context.Context, username string) error
}

func (s *stubUserUseCase) Register(ctx context.Context, params api.RegisterParams) (*entities.User, error) {
	return s.registerFn(ctx, params)
}

func (s *stubUserUseCase) Update(ctx context.Context, username string, params api.UpdateParams) (*entities.User, error) {
	return s.updateFn(ctx, username, params)
}

func (s *stubUserUseCase) AddFavorite(ctx context.Context, username, movieID string) (*entities.User, error) {
	return s.addFavoriteFn(ctx, username, movieID)
}

func (s *stubUserUseCase) RemoveFavorite(ctx context.Context, username, movieID string) (*entities.User, error) {
	return s.removeFavoriteFn(ctx, username, movieID)
}

func (s *stubUserUseCase) Delete(ctx context.Context, username string) error {
	return s.deleteFn(ctx, username)
}

type stubCatalogUseCase struct {
	listFn     func(ctx context.Context) ([]*entities.Movie, error)
	titleFn    func(ctx context.Context, title string) (*entities.Movie, error)
	genreFn    func(ctx context.Context, genreName string) (*entities.Genre, error)
	directorFn func(ctx context.Context, directorName string) (*entities.Director, error)
}

func (s *stubCatalogUseCase) ListMovies(ctx context.Context) ([]*entities.Movie, error) {
	return s.listFn(ctx)
}

func (s *stubCatalogUseCase) GetMovieByTitle(ctx context.Context, title string) (*entities.Movie, error) {
	return s.titleFn(ctx, title)
}

func (s *stubCatalogUseCase) GetGenre(ctx context.Context, genreName string) (*entities.Genre, error) {
	return s.genreFn(ctx, genreName)
}

func (s *stubCatalogUseCase) GetDirector(ctx context.Context, directorName string) (*entities.Director, error) {
	return s.directorFn(ctx, directorName)
}

type stubImageUseCase struct {
	listFn   func(ctx context.Context) ([]storage.ObjectInfo, error)
	uploadFn func(ctx context.Context, fileName, contentType string, size int64, body io.Reader) (string, error)
	getFn    func(ctx context.Context, fileName string) (*storage.Object, error)
}

func (s *stubImageUseCase) ListImages(ctx context.Context) ([]storage.ObjectInfo, error) {
	return s.listFn(ctx)
}

func (s *stubImageUseCase) Upload(ctx context.Context, fileName, contentType string, size int64, body io.Reader) (string, error) {
	return s.uploadFn(ctx, fileName, contentType, size, body)
}

func (s *stubImageUseCase) GetImage(ctx context.Context, fileName string) (*storage.Object, error) {
	return s.getFn(ctx, fileName)
}

type stubTokenService struct {
	validateFn func(ctx context.Context, token string) (*domain.JWTClaims, error)
}

func (s *stubTokenService) GenerateToken(context.Context, string, string) (string, time.Time, error) {
	return "", time.Time{}, errors.New("not implemented")
}

func (s *stubTokenService) ValidateToken(ctx context.Context, token string) (*domain.JWTClaims, error) {
	return s.validateFn(ctx, token)
}

type stubUserRepository struct {
	findByIDFn func(ctx context.Context, id string) (*entities.User, error)
}

func (s *stubUserRepository) Create(context.Context, *entities.User) (*entities.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubUserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return s.findByIDFn(ctx, id)
}

func (s *stubUserRepository) FindByUsername(context.Context, string) (*entities.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubUserRepository) Update(context.Context, *entities.User) (*entities.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubUserRepository) Delete(context.Context, string) error {
	return errors.New("not implemented")
}

func (s *stubUserRepository) AddFavorite(context.Context, string, string) (*entities.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubUserRepository) RemoveFavorite(context.Context, string, string) (*entities.User, error) {
	return nil, errors.New("not implemented")
}

func authenticatedUser() *entities.User {
	return &entities.User{
		ID:             "user-1",
		Username:       "moviefan",
		Email:          "fan@example.com",
		FavoriteMovies: []string{},
	}
}

// validAuth настраивает TokenService и UserRepository так, что токен
// "valid-token" аутентифицирует пользователя moviefan.
func validAuth(deps *httpServer.Dependencies) {
	deps.TokenService = &stubTokenService{
		validateFn: func(_ context.Context, token string) (*domain.JWTClaims, error) {
			if token != "valid-token" {
				return nil, domain.ErrInvalidJWTToken
			}
			return &domain.JWTClaims{UserID: "user-1", Username: "moviefan"}, nil
		},
	}
	deps.UserRepository = &stubUserRepository{
		findByIDFn: func(_ context.Context, id string) (*entities.User, error) {
			if id != "user-1" {
				return nil, entities.ErrUserNotFound
			}
			return authenticatedUser(), nil
		},
	}
}

func newTestApp(t *testing.T, deps httpServer.Dependencies) *fiber.App {
	t.Helper()

	testLogger, err := logger.NewLogger(logger.Development, "error")
	require.NoError(t, err)
	logger.SetGlobalLogger(testLogger)

	fiberApp := fiber.New()
	httpServer.SetupRouter(fiberApp, deps)
	return fiberApp
}

func decodeBody(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()
	defer func() {
		require.NoError(t, resp.Body.Close())
	}()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func TestRouter_Welcome(t *testing.T) {
	fiberApp := newTestApp(t, httpServer.Dependencies{})

	resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, httpServer.WelcomeMessage, string(body))
}

func TestRouter_UnknownRoute(t *testing.T) {
	fiberApp := newTestApp(t, httpServer.Dependencies{})

	resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	catalogReached := false
	deps := httpServer.Dependencies{
		CatalogUseCase: &stubCatalogUseCase{
			listFn: func(context.Context) ([]*entities.Movie, error) {
				catalogReached = true
				return nil, nil
			},
		},
	}
	validAuth(&deps)
	fiberApp := newTestApp(t, deps)

	t.Run("Без заголовка Authorization", func(t *testing.T) {
		resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, "/movies", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Не Bearer схема", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/movies", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

		resp, err := fiberApp.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Невалидный токен", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/movies", nil)
		req.Header.Set("Authorization", "Bearer garbage")

		resp, err := fiberApp.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	assert.False(t, catalogReached)
}

func TestRouter_MoviesWithValidToken(t *testing.T) {
	deps := httpServer.Dependencies{
		CatalogUseCase: &stubCatalogUseCase{
			listFn: func(context.Context) ([]*entities.Movie, error) {
				return []*entities.Movie{
					{ID: "movie-2", Title: "Pulp Fiction", Genre: entities.Genre{Name: "Crime"}},
				}, nil
			},
			titleFn: func(_ context.Context, title string) (*entities.Movie, error) {
				return nil, entities.ErrMovieNotFound
			},
		},
	}
	validAuth(&deps)
	fiberApp := newTestApp(t, deps)

	t.Run("Список фильмов", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/movies", nil)
		req.Header.Set("Authorization", "Bearer valid-token")

		resp, err := fiberApp.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var movies []map[string]interface{}
		decodeBody(t, resp, &movies)
		require.Len(t, movies, 1)
		assert.Equal(t, "Pulp Fiction", movies[0]["Title"])
	})

	t.Run("Неизвестное название дает 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/movies/Unknown", nil)
		req.Header.Set("Authorization", "Bearer valid-token")

		resp, err := fiberApp.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestRouter_GuardRejectsForeignUsername(t *testing.T) {
	mutated := false
	deps := httpServer.Dependencies{
		UserUseCase: &stubUserUseCase{
			updateFn: func(_ context.Context, username string, _ api.UpdateParams) (*entities.User, error) {
				mutated = true
				return authenticatedUser(), nil
			},
			deleteFn: func(_ context.Context, username string) error {
				mutated = true
				return nil
			},
		},
	}
	validAuth(&deps)
	fiberApp := newTestApp(t, deps)

	t.Run("PUT чужого профиля дает 403 без мутации", func(t *testing.T) {
		body, err := json.Marshal(map[string]string{
			"Username": "otheruser",
			"Email":    "other@example.com",
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPut, "/users/otheruser", bytes.NewReader(body))
		req.Header.Set("Authorization", "Bearer valid-token")
		req.Header.Set("Content-Type", "application/json")

		resp, err := fiberApp.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.False(t, mutated)
	})

	t.Run("DELETE чужой учетной записи дает 403 без мутации", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/users/otheruser", nil)
		req.Header.Set("Authorization", "Bearer valid-token")

		resp, err := fiberApp.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.False(t, mutated)
	})
}

func TestRouter_Register(t *testing.T) {
	t.Run("Успешная регистрация дает 201 без хэша пароля", func(t *testing.T) {
		deps := httpServer.Dependencies{
			UserUseCase: &stubUserUseCase{
				registerFn: func(_ context.Context, params api.RegisterParams) (*entities.User, error) {
					return &entities.User{
						ID:             "user-1",
						Username:       params.Username,
						PasswordHash:   "stored-hash",
						Email:          params.Email,
						FavoriteMovies: []string{},
					}, nil
				},
			},
		}
		validAuth(&deps)
		fiberApp := newTestApp(t, deps)

		body, err := json.Marshal(map[string]string{
			"Username": "moviefan",
			"Password": "correcthorse",
			"Email":    "fan@example.com",
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := fiberApp.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var created map[string]interface{}
		decodeBody(t, resp, &created)
		assert.Equal(t, "moviefan", created["Username"])
		assert.NotContains(t, created, "Password")
		assert.NotContains(t, created, "PasswordHash")
	})

	t.Run("Дубликат username дает 409", func(t *testing.T) {
		deps := httpServer.Dependencies{
			UserUseCase: &stubUserUseCase{
				registerFn: func(context.Context, api.RegisterParams) (*entities.User, error) {
					return nil, entities.ErrUsernameTaken
				},
			},
		}
		validAuth(&deps)
		fiberApp := newTestApp(t, deps)

		body, err := json.Marshal(map[string]string{
			"Username": "moviefan",
			"Password": "correcthorse",
			"Email":    "fan@example.com",
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := fiberApp.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		var errBody map[string]string
		decodeBody(t, resp, &errBody)
		assert.Equal(t, "moviefan already exists.", errBody["error"])
	})
}

func TestRouter_Login(t *testing.T) {
	t.Run("Неверные учетные данные дают 401", func(t *testing.T) {
		deps := httpServer.Dependencies{
			AuthUseCase: &stubAuthUseCase{
				loginFn: func(context.Context, string, string) (*entities.User, string, time.Time, error) {
					return nil, "", time.Time{}, domain.ErrInvalidCredentials
				},
			},
		}
		validAuth(&deps)
		fiberApp := newTestApp(t, deps)

		body, err := json.Marshal(map[string]string{
			"Username": "moviefan",
			"Password": "wrongpassword",
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := fiberApp.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Успешный вход возвращает пользователя и токен", func(t *testing.T) {
		deps := httpServer.Dependencies{
			AuthUseCase: &stubAuthUseCase{
				loginFn: func(context.Context, string, string) (*entities.User, string, time.Time, error) {
					return authenticatedUser(), "signed-token", time.Now().Add(time.Hour), nil
				},
			},
		}
		validAuth(&deps)
		fiberApp := newTestApp(t, deps)

		body, err := json.Marshal(map[string]string{
			"Username": "moviefan",
			"Password": "correcthorse",
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := fiberApp.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var loginResp map[string]interface{}
		decodeBody(t, resp, &loginResp)
		assert.Equal(t, "signed-token", loginResp["token"])

		user, ok := loginResp["user"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "moviefan", user["Username"])
	})
}

func TestRouter_Favorites(t *testing.T) {
	deps := httpServer.Dependencies{
		UserUseCase: &stubUserUseCase{
			addFavoriteFn: func(_ context.Context, username, movieID string) (*entities.User, error) {
				user := authenticatedUser()
				user.FavoriteMovies = []string{movieID}
				return user, nil
			},
		},
	}
	validAuth(&deps)
	fiberApp := newTestApp(t, deps)

	t.Run("Добавление избранного возвращает обновленного пользователя", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost,
			"/users/moviefan/movies/6f1c9f4e-0d62-4a39-a52c-6e1b6f5b9d3a", nil)
		req.Header.Set("Authorization", "Bearer valid-token")

		resp, err := fiberApp.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var user map[string]interface{}
		decodeBody(t, resp, &user)
		favorites, ok := user["FavoriteMovies"].([]interface{})
		require.True(t, ok)
		assert.Len(t, favorites, 1)
	})

	t.Run("Невалидный идентификатор фильма дает 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/users/moviefan/movies/not-a-uuid", nil)
		req.Header.Set("Authorization", "Bearer valid-token")

		resp, err := fiberApp.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestRouter_Images(t *testing.T) {
	t.Run("Листинг изображений публичен", func(t *testing.T) {
		deps := httpServer.Dependencies{
			ImageUseCase: &stubImageUseCase{
				listFn: func(context.Context) ([]storage.ObjectInfo, error) {
					return []storage.ObjectInfo{{Key: "poster.png", Size: 1024}}, nil
				},
			},
		}
		validAuth(&deps)
		fiberApp := newTestApp(t, deps)

		resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, "/images", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var objects []map[string]interface{}
		decodeBody(t, resp, &objects)
		require.Len(t, objects, 1)
		assert.Equal(t, "poster.png", objects[0]["Key"])
	})

	t.Run("Отсутствующее изображение дает 404", func(t *testing.T) {
		deps := httpServer.Dependencies{
			ImageUseCase: &stubImageUseCase{
				getFn: func(_ context.Context, fileName string) (*storage.Object, error) {
					return nil, storage.ErrObjectNotFound
				},
			},
		}
		validAuth(&deps)
		fiberApp := newTestApp(t, deps)

		resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, "/images/missing.png", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
