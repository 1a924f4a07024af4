package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"myflix/internal/domain/entities"
	"myflix/internal/ports/api"
	"myflix/internal/ports/repositories"
	svc "myflix/internal/ports/services"
	"myflix/pkg/logger"
)

const (
	methodRegister       = "Register"
	methodUpdate         = "Update"
	methodAddFavorite    = "AddFavorite"
	methodRemoveFavorite = "RemoveFavorite"
	methodDeleteUser     = "Delete"

	msgStartRegistration = "starting user registration"
	msgInvalidUserInput  = "user input failed validation"
	msgUsernameExists    = "user with this username already exists"
	msgUserRegistered    = "user registered successfully"
	msgUpdatingUser      = "updating user profile"
	msgUserUpdated       = "user profile updated"
	msgAddingFavorite    = "adding movie to favorites"
	msgFavoriteAdded     = "movie added to favorites"
	msgRemovingFavorite  = "removing movie from favorites"
	msgFavoriteRemoved   = "movie removed from favorites"
	msgDeletingUser      = "deleting user account"
	msgUserDeleted       = "user account deleted"

	msgErrHashPassword   = "failed to hash password"
	msgErrCreateUser     = "failed to create user"
	msgErrFindUser       = "failed to find user"
	msgErrUpdateUser     = "failed to update user"
	msgErrAddFavorite    = "failed to add favorite"
	msgErrRemoveFavorite = "failed to remove favorite"
	msgErrDeleteUser     = "failed to delete user"

	errCtxValidatingInput  = "validating input"
	errCtxUsernameTaken    = "username already registered"
	errCtxHashingPassword  = "hashing password"
	errCtxCreatingUser     = "creating user"
	errCtxUpdatingUser     = "updating user"
	errCtxAddingFavorite   = "adding favorite"
	errCtxRemovingFavorite = "removing favorite"
	errCtxDeletingUser     = "deleting user"
)

// UserUseCaseImpl реализует интерфейс api.UserUseCase.
type UserUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
}

// NewUserUseCase создает новый экземпляр сервиса пользователей.
func NewUserUseCase(userRepo repositories.UserRepository, passwordSvc svc.PasswordService) api.UserUseCase {
	return &UserUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
	}
}

// Register создает нового пользователя с предоставленными данными.
// Уникальность username обеспечивается уникальным индексом хранилища,
// поэтому гонка параллельных регистраций невозможна.
func (u *UserUseCaseImpl) Register(ctx context.Context, params api.RegisterParams) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("username", params.Username))
	log.Debug(ctx, msgStartRegistration)

	if vErr := validateUser(params.Username, params.Password, params.Email, true); vErr != nil {
		log.Debug(ctx, msgInvalidUserInput, zap.Strings("rules", vErr.Rules))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, vErr)
	}

	hashedPassword, err := u.passwordSvc.Hash(ctx, params.Password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	newUser := &entities.User{
		Username:     params.Username,
		PasswordHash: hashedPassword,
		Email:        params.Email,
		Birthday:     params.Birthday,
	}

	createdUser, err := u.userRepo.Create(ctx, newUser)
	if err != nil {
		if errors.Is(err, entities.ErrUsernameTaken) {
			log.Debug(ctx, msgUsernameExists)
			return nil, fmt.Errorf("%s: %w", errCtxUsernameTaken, entities.ErrUsernameTaken)
		}
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", createdUser.ID))
	return createdUser, nil
}

// Update заменяет данные профиля пользователя username.
// Пароль перехэшируется только когда задан новый.
func (u *UserUseCaseImpl) Update(ctx context.Context, username string, params api.UpdateParams) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdate), zap.String("username", username))
	log.Debug(ctx, msgUpdatingUser)

	if vErr := validateUser(params.Username, params.Password, params.Email, false); vErr != nil {
		log.Debug(ctx, msgInvalidUserInput, zap.Strings("rules", vErr.Rules))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, vErr)
	}

	user, err := u.userRepo.FindByUsername(ctx, username)
	if err != nil {
		log.Debug(ctx, msgErrFindUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingUser, err)
	}

	user.Username = params.Username
	user.Email = params.Email
	user.Birthday = params.Birthday

	if params.Password != "" {
		hashedPassword, err := u.passwordSvc.Hash(ctx, params.Password)
		if err != nil {
			log.Error(ctx, msgErrHashPassword, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
		}
		user.PasswordHash = hashedPassword
	}

	updatedUser, err := u.userRepo.Update(ctx, user)
	if err != nil {
		if errors.Is(err, entities.ErrUsernameTaken) {
			log.Debug(ctx, msgUsernameExists)
			return nil, fmt.Errorf("%s: %w", errCtxUsernameTaken, entities.ErrUsernameTaken)
		}
		log.Error(ctx, msgErrUpdateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingUser, err)
	}

	log.Info(ctx, msgUserUpdated, zap.String("userID", updatedUser.ID))
	return updatedUser, nil
}

// AddFavorite добавляет фильм в избранное пользователя.
func (u *UserUseCaseImpl) AddFavorite(ctx context.Context, username, movieID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAddFavorite),
		zap.String("username", username), zap.String("movieID", movieID))
	log.Debug(ctx, msgAddingFavorite)

	user, err := u.userRepo.AddFavorite(ctx, username, movieID)
	if err != nil {
		log.Error(ctx, msgErrAddFavorite, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxAddingFavorite, err)
	}

	log.Info(ctx, msgFavoriteAdded, zap.String("userID", user.ID))
	return user, nil
}

// RemoveFavorite удаляет фильм из избранного пользователя.
func (u *UserUseCaseImpl) RemoveFavorite(ctx context.Context, username, movieID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRemoveFavorite),
		zap.String("username", username), zap.String("movieID", movieID))
	log.Debug(ctx, msgRemovingFavorite)

	user, err := u.userRepo.RemoveFavorite(ctx, username, movieID)
	if err != nil {
		log.Error(ctx, msgErrRemoveFavorite, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxRemovingFavorite, err)
	}

	log.Info(ctx, msgFavoriteRemoved, zap.String("userID", user.ID))
	return user, nil
}

// Delete удаляет учетную запись пользователя.
func (u *UserUseCaseImpl) Delete(ctx context.Context, username string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteUser), zap.String("username", username))
	log.Debug(ctx, msgDeletingUser)

	if err := u.userRepo.Delete(ctx, username); err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgErrFindUser)
			return fmt.Errorf("%s: %w", errCtxDeletingUser, entities.ErrUserNotFound)
		}
		log.Error(ctx, msgErrDeleteUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingUser, err)
	}

	log.Info(ctx, msgUserDeleted)
	return nil
}
