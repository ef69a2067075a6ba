package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/quizgame-api/internal/domain/entity"
)

// TrainProgressRepo реализует repository.TrainProgressRepository
type TrainProgressRepo struct {
	db *gorm.DB
}

// NewTrainProgressRepo создает новый репозиторий прогресса тренировок
func NewTrainProgressRepo(db *gorm.DB) *TrainProgressRepo {
	return &TrainProgressRepo{db: db}
}

// GetIDs возвращает id всех пройденных в тренировке вопросов пользователя
func (r *TrainProgressRepo) GetIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&entity.TrainProgress{}).
		Where("user_id = ?", userID).
		Pluck("question_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// AddIDs добавляет пройденные вопросы; дубликаты молча пропускаются
func (r *TrainProgressRepo) AddIDs(ctx context.Context, userID uint, questionIDs []uint) error {
	if len(questionIDs) == 0 {
		return nil
	}
	rows := make([]entity.TrainProgress, len(questionIDs))
	for i, id := range questionIDs {
		rows[i] = entity.TrainProgress{UserID: userID, QuestionID: id}
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

// CountCompleted возвращает, сколько из перечисленных вопросов пройдено
func (r *TrainProgressRepo) CountCompleted(ctx context.Context, userID uint, questionIDs []uint) (int64, error) {
	if len(questionIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.TrainProgress{}).
		Where("user_id = ? AND question_id IN ?", userID, questionIDs).
		Count(&count).Error
	return count, err
}
