package repository

import (
	"context"

	"github.com/yourusername/quizgame-api/internal/domain/entity"
)

// RecordRepository определяет методы для работы с рекордами
type RecordRepository interface {
	// GetRecord возвращает рекорд пары (тема, режим) или ErrNotFound
	GetRecord(ctx context.Context, userID, themeID uint, mode entity.Mode) (*entity.Record, error)
	GetByUser(ctx context.Context, userID uint) ([]entity.Record, error)
	Add(ctx context.Context, record *entity.Record) error
	Update(ctx context.Context, record *entity.Record) error
}
