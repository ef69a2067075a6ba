package postgres

import (
	"context"
	"errors"
	"math/rand"
	"sort"

	"gorm.io/gorm"

	"github.com/yourusername/quizgame-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizgame-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(ctx context.Context, id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.WithContext(ctx).First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// GetByIDs возвращает вопросы по списку ID
func (r *QuestionRepo) GetByIDs(ctx context.Context, ids []uint) ([]entity.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var questions []entity.Question
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// Create создает новый вопрос
func (r *QuestionRepo) Create(ctx context.Context, question *entity.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

// CreateBatch создает пакет вопросов одной транзакцией
func (r *QuestionRepo) CreateBatch(ctx context.Context, questions []entity.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&questions).Error
	})
}

// idComplexityRow — строка выборки (id, сложность) для сортированной выдачи
type idComplexityRow struct {
	ID         uint
	Complexity int
}

// GetIDsBySection возвращает id вопросов секции темы.
// При sortByComplexity пары сначала перемешиваются, затем стабильно
// сортируются по сложности: внутри одной сложности порядок случаен.
func (r *QuestionRepo) GetIDsBySection(ctx context.Context, themeID uint, section int, sortByComplexity bool) ([]uint, error) {
	var rows []idComplexityRow
	err := r.db.WithContext(ctx).
		Model(&entity.Question{}).
		Select("id", "complexity").
		Where("theme_id = ? AND section = ?", themeID, section).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	rand.Shuffle(len(rows), func(i, j int) {
		rows[i], rows[j] = rows[j], rows[i]
	})
	if sortByComplexity {
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Complexity < rows[j].Complexity
		})
	}

	ids := make([]uint, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids, nil
}

// GetIDsByTheme возвращает все id вопросов темы
func (r *QuestionRepo) GetIDsByTheme(ctx context.Context, themeID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&entity.Question{}).
		Where("theme_id = ?", themeID).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// GetSections возвращает отсортированный список номеров секций темы
func (r *QuestionRepo) GetSections(ctx context.Context, themeID uint) ([]int, error) {
	var sections []int
	err := r.db.WithContext(ctx).
		Model(&entity.Question{}).
		Distinct("section").
		Where("theme_id = ?", themeID).
		Order("section").
		Pluck("section", &sections).Error
	if err != nil {
		return nil, err
	}
	return sections, nil
}

// CountByTheme возвращает количество вопросов темы
func (r *QuestionRepo) CountByTheme(ctx context.Context, themeID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Question{}).
		Where("theme_id = ?", themeID).
		Count(&count).Error
	return count, err
}
