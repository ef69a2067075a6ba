package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/quizgame-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizgame-api/internal/pkg/errors"
)

// RecordRepo реализует repository.RecordRepository
type RecordRepo struct {
	db *gorm.DB
}

// NewRecordRepo создает новый репозиторий рекордов
func NewRecordRepo(db *gorm.DB) *RecordRepo {
	return &RecordRepo{db: db}
}

// GetRecord возвращает рекорд пары (тема, режим)
func (r *RecordRepo) GetRecord(ctx context.Context, userID, themeID uint, mode entity.Mode) (*entity.Record, error) {
	var record entity.Record
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND theme_id = ? AND mode = ?", userID, themeID, mode).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// GetByUser возвращает все рекорды пользователя
func (r *RecordRepo) GetByUser(ctx context.Context, userID uint) ([]entity.Record, error) {
	var records []entity.Record
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("theme_id, mode").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Add создает новую запись рекорда
func (r *RecordRepo) Add(ctx context.Context, record *entity.Record) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// Update обновляет существующий рекорд
func (r *RecordRepo) Update(ctx context.Context, record *entity.Record) error {
	return r.db.WithContext(ctx).Save(record).Error
}
