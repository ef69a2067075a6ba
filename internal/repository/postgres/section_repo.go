package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/quizgame-api/internal/domain/entity"
)

// SectionProgressRepo реализует repository.SectionProgressRepository
type SectionProgressRepo struct {
	db *gorm.DB
}

// NewSectionProgressRepo создает новый репозиторий прогресса секций
func NewSectionProgressRepo(db *gorm.DB) *SectionProgressRepo {
	return &SectionProgressRepo{db: db}
}

// GetIDs возвращает id всех пройденных в аркаде вопросов пользователя
func (r *SectionProgressRepo) GetIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&entity.SectionProgress{}).
		Where("user_id = ?", userID).
		Pluck("question_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// DeleteIDs сбрасывает прогресс по перечисленным вопросам
func (r *SectionProgressRepo) DeleteIDs(ctx context.Context, userID uint, questionIDs []uint) error {
	if len(questionIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND question_id IN ?", userID, questionIDs).
		Delete(&entity.SectionProgress{}).Error
}

// AddIDs добавляет пройденные вопросы; дубликаты молча пропускаются
func (r *SectionProgressRepo) AddIDs(ctx context.Context, userID uint, questionIDs []uint) error {
	if len(questionIDs) == 0 {
		return nil
	}
	rows := make([]entity.SectionProgress, len(questionIDs))
	for i, id := range questionIDs {
		rows[i] = entity.SectionProgress{UserID: userID, QuestionID: id}
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

// CountCompleted возвращает, сколько из перечисленных вопросов пройдено
func (r *SectionProgressRepo) CountCompleted(ctx context.Context, userID uint, questionIDs []uint) (int64, error) {
	if len(questionIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.SectionProgress{}).
		Where("user_id = ? AND question_id IN ?", userID, questionIDs).
		Count(&count).Error
	return count, err
}
