package services

import "errors"

// Ошибки работы с паролями и учетными данными.
var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrHashingFailed   = errors.New("password hashing failed")

	// ErrInvalidCredentials возвращается и для неизвестного пользователя, и для
	// неверного пароля, чтобы не раскрывать, что именно не совпало.
	ErrInvalidCredentials = errors.New("incorrect username or password")
)
