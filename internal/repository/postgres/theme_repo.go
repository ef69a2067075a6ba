package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/quizgame-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizgame-api/internal/pkg/errors"
)

// ThemeRepo реализует repository.ThemeRepository
type ThemeRepo struct {
	db *gorm.DB
}

// NewThemeRepo создает новый репозиторий тем
func NewThemeRepo(db *gorm.DB) *ThemeRepo {
	return &ThemeRepo{db: db}
}

// List возвращает все темы в порядке отображения
func (r *ThemeRepo) List(ctx context.Context) ([]entity.Theme, error) {
	var themes []entity.Theme
	err := r.db.WithContext(ctx).Order("order_num, id").Find(&themes).Error
	if err != nil {
		return nil, err
	}
	return themes, nil
}

// GetByID возвращает тему по ID
func (r *ThemeRepo) GetByID(ctx context.Context, id uint) (*entity.Theme, error) {
	var theme entity.Theme
	err := r.db.WithContext(ctx).First(&theme, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &theme, nil
}

// Create создает новую тему
func (r *ThemeRepo) Create(ctx context.Context, theme *entity.Theme) error {
	return r.db.WithContext(ctx).Create(theme).Error
}
