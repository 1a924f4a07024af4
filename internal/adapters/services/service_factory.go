package services

import (
	"time"

	svc "myflix/internal/ports/services"
)

// ServiceFactory создает прикладные сервисы myFlix.
type ServiceFactory struct {
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
}

// NewServiceFactory создает новую фабрику сервисов.
func NewServiceFactory(secretKey string, tokenTTL time.Duration, bcryptCost int) *ServiceFactory {
	return &ServiceFactory{
		passwordSvc: NewBcrypt(bcryptCost),
		tokenSvc:    NewJWT(secretKey, tokenTTL),
	}
}

// PasswordService возвращает сервис паролей.
func (f *ServiceFactory) PasswordService() svc.PasswordService {
	return f.passwordSvc
}

// TokenService возвращает сервис токенов.
func (f *ServiceFactory) TokenService() svc.TokenService {
	return f.tokenSvc
}
