package repository

import "context"

// ErrorRepository хранит вопросы, на которые пользователь отвечал неверно
type ErrorRepository interface {
	GetIDs(ctx context.Context, userID uint) ([]uint, error)
	// Add идемпотентен: повторная ошибка по тому же вопросу не дублируется
	Add(ctx context.Context, userID, questionID uint) error
	Remove(ctx context.Context, userID, questionID uint) error
}
