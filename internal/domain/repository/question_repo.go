package repository

import (
	"context"

	"github.com/yourusername/quizgame-api/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с вопросами
type QuestionRepository interface {
	GetByID(ctx context.Context, id uint) (*entity.Question, error)
	GetByIDs(ctx context.Context, ids []uint) ([]entity.Question, error)
	Create(ctx context.Context, question *entity.Question) error
	CreateBatch(ctx context.Context, questions []entity.Question) error

	// GetIDsBySection возвращает id вопросов секции. При sortByComplexity
	// пары (id, сложность) перемешиваются и затем стабильно сортируются по
	// возрастанию сложности, так что порядок внутри одной сложности случаен.
	GetIDsBySection(ctx context.Context, themeID uint, section int, sortByComplexity bool) ([]uint, error)

	// GetIDsByTheme возвращает все id вопросов темы
	GetIDsByTheme(ctx context.Context, themeID uint) ([]uint, error)

	// GetSections возвращает отсортированный список номеров секций темы
	GetSections(ctx context.Context, themeID uint) ([]int, error)

	CountByTheme(ctx context.Context, themeID uint) (int64, error)
}
