package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"myflix/internal/adapters/cache"
	httpServer "myflix/internal/adapters/http"
	"myflix/internal/adapters/postgres"
	"myflix/internal/adapters/s3"
	"myflix/internal/adapters/services"
	"myflix/internal/app"
	"myflix/internal/config"
	pgdb "myflix/pkg/db/postgres"
	"myflix/pkg/logger"
	"myflix/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "MYFLIX_LOGGER_MODE"
	EnvLoggerLevel = "MYFLIX_LOGGER_LEVEL"
)

// MigrationsPath путь к файлам миграций схемы.
const MigrationsPath = "file://migrations"

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrApplyMigrations      = "failed to apply database migrations"
	ErrConnectPostgres      = "failed to connect to PostgreSQL"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrCreateObjectStorage  = "failed to create object storage client"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "myFlix service started"
	LogServiceShutdownDone = "myFlix service shutdown complete"
	LogApplyingMigrations  = "applying database migrations"
	LogInitDatabase        = "initializing PostgreSQL connection"
	LogInitCache           = "initializing cache"
	LogInitObjectStorage   = "initializing object storage"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingRedis        = "closing Redis connection"
	LogClosingPostgres     = "closing PostgreSQL connection"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(env)),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogApplyingMigrations)
		if err := pgdb.MigrateDSN(ctx, cfg.Postgres.GetConnectionURL(), MigrationsPath); err != nil {
			log.Error(ctx, ErrApplyMigrations, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitDatabase)
		database, err := pgdb.New(ctx, cfg.Postgres.GetDSN(), cfg.Postgres.MinConn, cfg.Postgres.MaxConn)
		if err != nil {
			log.Error(ctx, ErrConnectPostgres, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitCache)
		redisCache, err := cache.NewRedisCache(ctx, &cfg.Redis)
		if err != nil {
			log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitObjectStorage)
		objectStorage, err := s3.New(ctx, &cfg.S3)
		if err != nil {
			log.Error(ctx, ErrCreateObjectStorage, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitServices)
		repos := postgres.NewRepositoryFactory(database.Pool())
		svcs := services.NewServiceFactory(cfg.JWT.SecretKey, cfg.JWT.GetTokenTTL(), cfg.JWT.BCryptCost)

		authUseCase := app.NewAuthUseCase(repos.UserRepository(), svcs.PasswordService(), svcs.TokenService())
		userUseCase := app.NewUserUseCase(repos.UserRepository(), svcs.PasswordService())
		catalogUseCase := app.NewCatalogUseCase(repos.MovieRepository(), redisCache, cfg.Redis.DefaultTTL)
		imageUseCase := app.NewImageUseCase(objectStorage)

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		httpServer.SetupRouter(fiberApp, httpServer.Dependencies{
			AuthUseCase:    authUseCase,
			UserUseCase:    userUseCase,
			CatalogUseCase: catalogUseCase,
			ImageUseCase:   imageUseCase,
			TokenService:   svcs.TokenService(),
			UserRepository: repos.UserRepository(),
		})

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(cfg.Shutdown.GetTimeout(),
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return fiberApp.Shutdown()
			},
			// Закрытие Redis соединения.
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingRedis)
				return redisCache.Close()
			},
			// Закрытие пула PostgreSQL.
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingPostgres)
				database.Close(ctx)
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
