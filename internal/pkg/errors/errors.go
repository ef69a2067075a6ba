package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется для ошибок авторизации (неверный токен, нет прав).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrAlreadyExists используется при попытке создать уже существующую запись
	// (пользователь с таким именем, повторное добавление в избранное и т.п.).
	ErrAlreadyExists = errors.New("record already exists")

	// ErrConflict используется для конфликтов состояния (например, попытка
	// запустить новую игру, пока предыдущая не завершена).
	ErrConflict = errors.New("resource state conflict")
)
