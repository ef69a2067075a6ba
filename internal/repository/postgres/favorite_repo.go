package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/quizgame-api/internal/domain/entity"
)

// FavoriteRepo реализует repository.FavoriteRepository
type FavoriteRepo struct {
	db *gorm.DB
}

// NewFavoriteRepo создает новый репозиторий избранного
func NewFavoriteRepo(db *gorm.DB) *FavoriteRepo {
	return &FavoriteRepo{db: db}
}

// GetIDs возвращает id избранных вопросов пользователя
func (r *FavoriteRepo) GetIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&entity.Favorite{}).
		Where("user_id = ?", userID).
		Order("created_at").
		Pluck("question_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Add добавляет вопрос в избранное; повторное добавление — no-op
func (r *FavoriteRepo) Add(ctx context.Context, userID, questionID uint) error {
	fav := entity.Favorite{UserID: userID, QuestionID: questionID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&fav).Error
}

// Remove убирает вопрос из избранного
func (r *FavoriteRepo) Remove(ctx context.Context, userID, questionID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		Delete(&entity.Favorite{}).Error
}
