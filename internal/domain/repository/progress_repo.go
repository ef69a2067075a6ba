package repository

import "context"

// SectionProgressRepository отслеживает вопросы, верно отвеченные в аркаде.
// Прогресс секции гейтит доступность следующей секции.
type SectionProgressRepository interface {
	GetIDs(ctx context.Context, userID uint) ([]uint, error)
	// DeleteIDs удаляет прогресс по перечисленным вопросам (сброс частичного
	// состояния секции перед записью итогов сессии)
	DeleteIDs(ctx context.Context, userID uint, questionIDs []uint) error
	AddIDs(ctx context.Context, userID uint, questionIDs []uint) error
	// CountCompleted возвращает, сколько из перечисленных вопросов пройдено
	CountCompleted(ctx context.Context, userID uint, questionIDs []uint) (int64, error)
}

// TrainProgressRepository отслеживает вопросы, пройденные в тренировке
type TrainProgressRepository interface {
	GetIDs(ctx context.Context, userID uint) ([]uint, error)
	AddIDs(ctx context.Context, userID uint, questionIDs []uint) error
	CountCompleted(ctx context.Context, userID uint, questionIDs []uint) (int64, error)
}
