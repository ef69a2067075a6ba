package repository

import (
	"context"

	"github.com/yourusername/quizgame-api/internal/domain/entity"
)

// ThemeRepository определяет методы для работы с темами
type ThemeRepository interface {
	List(ctx context.Context) ([]entity.Theme, error)
	GetByID(ctx context.Context, id uint) (*entity.Theme, error)
	Create(ctx context.Context, theme *entity.Theme) error
}
