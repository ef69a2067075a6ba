package repository

import "context"

// FavoriteRepository хранит вопросы, отмеченные пользователем как избранные
type FavoriteRepository interface {
	GetIDs(ctx context.Context, userID uint) ([]uint, error)
	Add(ctx context.Context, userID, questionID uint) error
	Remove(ctx context.Context, userID, questionID uint) error
}
