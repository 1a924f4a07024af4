// Package app реализует прикладную бизнес-логику myFlix.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"myflix/internal/domain/entities"
	domain "myflix/internal/domain/services"
	"myflix/internal/ports/api"
	"myflix/internal/ports/repositories"
	svc "myflix/internal/ports/services"
	"myflix/pkg/logger"
)

const (
	methodLogin = "Login"

	msgLoginAttempt        = "login attempt"
	msgLoginNonExistent    = "login attempt with non-existent username"
	msgInvalidPasswordAuth = "invalid password provided"
	msgUserLoggedIn        = "user logged in successfully"
	msgTokenIssued         = "session token issued"

	msgErrFindingUser       = "error finding user by username"
	msgErrVerifyingPassword = "error verifying password"
	msgErrGenerateToken     = "failed to generate session token"

	errCtxInvalidCredentials = "invalid credentials"
	errCtxFindingUser        = "finding user"
	errCtxVerifyingPassword  = "verifying password"
	errCtxGeneratingToken    = "generating token"
)

// AuthUseCaseImpl реализует интерфейс api.AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
}

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Login аутентифицирует пользователя по username и паролю и выпускает токен.
// Неизвестный username и неверный пароль неотличимы для вызывающей стороны.
func (a *AuthUseCaseImpl) Login(ctx context.Context, username, password string) (*entities.User, string, time.Time, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("username", username))
	log.Debug(ctx, msgLoginAttempt)

	user, err := a.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return nil, "", time.Time{}, fmt.Errorf("%s: %w", errCtxInvalidCredentials, domain.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, "", time.Time{}, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.String("userID", user.ID))
		return nil, "", time.Time{}, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPasswordAuth, zap.String("userID", user.ID))
		return nil, "", time.Time{}, fmt.Errorf("%s: %w", errCtxInvalidCredentials, domain.ErrInvalidCredentials)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))

	token, expiresAt, err := a.tokenSvc.GenerateToken(ctx, user.ID, user.Username)
	if err != nil {
		log.Error(ctx, msgErrGenerateToken, zap.Error(err), zap.String("userID", user.ID))
		return nil, "", time.Time{}, fmt.Errorf("%s: %w", errCtxGeneratingToken, err)
	}

	log.Info(ctx, msgTokenIssued, zap.String("userID", user.ID), zap.Time("expiresAt", expiresAt))
	return user, token, expiresAt, nil
}
