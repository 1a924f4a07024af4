// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"

	"myflix/internal/adapters/http/auth"
	"myflix/internal/adapters/http/images"
	"myflix/internal/adapters/http/middleware"
	"myflix/internal/adapters/http/movies"
	"myflix/internal/adapters/http/users"
	"myflix/internal/ports/api"
	"myflix/internal/ports/repositories"
	"myflix/internal/ports/services"
)

// WelcomeMessage текст ответа корневого маршрута.
const WelcomeMessage = "Welcome to myFlix!"

// Dependencies содержит зависимости маршрутизатора.
type Dependencies struct {
	AuthUseCase    api.AuthUseCase
	UserUseCase    api.UserUseCase
	CatalogUseCase api.CatalogUseCase
	ImageUseCase   api.ImageUseCase
	TokenService   services.TokenService
	UserRepository repositories.UserRepository
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Dependencies) {
	authHandler := auth.NewHandler(deps.AuthUseCase)
	usersHandler := users.NewHandler(deps.UserUseCase)
	moviesHandler := movies.NewHandler(deps.CatalogUseCase)
	imagesHandler := images.NewHandler(deps.ImageUseCase)

	authRequired := middleware.NewAuthMiddleware(deps.TokenService, deps.UserRepository)
	guard := middleware.NewGuardMiddleware()

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(cors.New())

	// Публичные маршруты.
	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString(WelcomeMessage)
	})
	app.Post("/login", authHandler.Login)
	app.Post("/users", usersHandler.Register)

	// Шлюз изображений (публичный).
	imagesRoutes := app.Group("/images")
	imagesRoutes.Get("/", imagesHandler.ListImages)
	imagesRoutes.Post("/", imagesHandler.Upload)
	imagesRoutes.Get("/:fileName", imagesHandler.GetImage)

	// Каталог (требует авторизации). Маршруты жанров и режиссеров
	// регистрируются раньше /movies/:Title.
	moviesRoutes := app.Group("/movies")
	moviesRoutes.Use(authRequired)
	moviesRoutes.Get("/", moviesHandler.ListMovies)
	moviesRoutes.Get("/genre/:genreName", moviesHandler.GetGenre)
	moviesRoutes.Get("/directors/:directorName", moviesHandler.GetDirector)
	moviesRoutes.Get("/:Title", moviesHandler.GetMovie)

	// Мутации пользователя (требуют авторизации и совпадения identity).
	userRoutes := app.Group("/users/:Username")
	userRoutes.Use(authRequired)
	userRoutes.Use(guard)
	userRoutes.Put("/", usersHandler.Update)
	userRoutes.Delete("/", usersHandler.Delete)
	userRoutes.Post("/movies/:MovieID", usersHandler.AddFavorite)
	userRoutes.Delete("/movies/:MovieID", usersHandler.RemoveFavorite)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
