package postgres

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/yourusername/quizgame-api/internal/domain/entity"
)

// ErrorRepo реализует repository.ErrorRepository
type ErrorRepo struct {
	db *gorm.DB
}

// NewErrorRepo создает новый репозиторий ошибок
func NewErrorRepo(db *gorm.DB) *ErrorRepo {
	return &ErrorRepo{db: db}
}

// GetIDs возвращает id вопросов, на которые пользователь отвечал неверно
func (r *ErrorRepo) GetIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&entity.ErrorItem{}).
		Where("user_id = ?", userID).
		Order("question_id").
		Pluck("question_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Add записывает вопрос в список ошибок. Повторная ошибка по тому же
// вопросу не является сбоем: нарушение уникального ключа игнорируется.
func (r *ErrorRepo) Add(ctx context.Context, userID, questionID uint) error {
	item := entity.ErrorItem{UserID: userID, QuestionID: questionID}
	err := r.db.WithContext(ctx).Create(&item).Error
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return nil
		}
		return err
	}
	return nil
}

// Remove удаляет вопрос из списка ошибок
func (r *ErrorRepo) Remove(ctx context.Context, userID, questionID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		Delete(&entity.ErrorItem{}).Error
}
