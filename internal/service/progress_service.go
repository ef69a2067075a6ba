package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/quizgame-api/internal/domain/entity"
	"github.com/yourusername/quizgame-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizgame-api/internal/pkg/errors"
)

// Время жизни кеша прогресса
const progressCacheTTL = 5 * time.Minute

// ThemeOverview описывает тему вместе с прогрессом пользователя
type ThemeOverview struct {
	Theme        entity.Theme `json:"theme"`
	Total        int64        `json:"total"`
	Completed    int64        `json:"completed"`
	Percent      int          `json:"percent"`
	ArcadeRecord int          `json:"arcade_record"`
	TrainRecord  int          `json:"train_record"`
}

// SectionOverview описывает секцию аркады с прогрессом пользователя.
// Секция открыта, если предыдущая пройдена полностью.
type SectionOverview struct {
	Section   int   `json:"section"`
	Total     int   `json:"total"`
	Completed int64 `json:"completed"`
	Unlocked  bool  `json:"unlocked"`
}

// ProgressService отдает прогресс, рекорды, ошибки и избранное пользователя
type ProgressService struct {
	themeRepo    repository.ThemeRepository
	questionRepo repository.QuestionRepository
	sectionRepo  repository.SectionProgressRepository
	trainRepo    repository.TrainProgressRepository
	errorRepo    repository.ErrorRepository
	favoriteRepo repository.FavoriteRepository
	recordRepo   repository.RecordRepository
	cacheRepo    repository.CacheRepository
}

// NewProgressService создает новый сервис прогресса
func NewProgressService(
	themeRepo repository.ThemeRepository,
	questionRepo repository.QuestionRepository,
	sectionRepo repository.SectionProgressRepository,
	trainRepo repository.TrainProgressRepository,
	errorRepo repository.ErrorRepository,
	favoriteRepo repository.FavoriteRepository,
	recordRepo repository.RecordRepository,
	cacheRepo repository.CacheRepository,
) *ProgressService {
	return &ProgressService{
		themeRepo:    themeRepo,
		questionRepo: questionRepo,
		sectionRepo:  sectionRepo,
		trainRepo:    trainRepo,
		errorRepo:    errorRepo,
		favoriteRepo: favoriteRepo,
		recordRepo:   recordRepo,
		cacheRepo:    cacheRepo,
	}
}

// Themes возвращает список тем с прогрессом тренировки и рекордами пользователя
func (s *ProgressService) Themes(ctx context.Context, userID uint) ([]ThemeOverview, error) {
	cacheKey := fmt.Sprintf("progress:user:%d", userID)
	if s.cacheRepo != nil {
		var cached []ThemeOverview
		if err := s.cacheRepo.GetJSON(cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	themes, err := s.themeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list themes: %w", err)
	}

	records, err := s.recordRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	recordByKey := make(map[string]int, len(records))
	for _, record := range records {
		recordByKey[fmt.Sprintf("%d:%s", record.ThemeID, record.Mode)] = record.Score
	}

	overviews := make([]ThemeOverview, 0, len(themes))
	for _, theme := range themes {
		total, err := s.questionRepo.CountByTheme(ctx, theme.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count questions for theme #%d: %w", theme.ID, err)
		}

		ids, err := s.questionRepo.GetIDsByTheme(ctx, theme.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load question ids for theme #%d: %w", theme.ID, err)
		}
		completed, err := s.trainRepo.CountCompleted(ctx, userID, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to count train progress for theme #%d: %w", theme.ID, err)
		}

		percent := 0
		if total > 0 {
			percent = int(completed * 100 / total)
		}

		overviews = append(overviews, ThemeOverview{
			Theme:        theme,
			Total:        total,
			Completed:    completed,
			Percent:      percent,
			ArcadeRecord: recordByKey[fmt.Sprintf("%d:%s", theme.ID, entity.ModeArcade)],
			TrainRecord:  recordByKey[fmt.Sprintf("%d:%s", theme.ID, entity.ModeTrain)],
		})
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(cacheKey, overviews, progressCacheTTL); err != nil {
			log.Printf("[ProgressService] Не удалось закешировать прогресс %s: %v", cacheKey, err)
		}
	}

	return overviews, nil
}

// Sections возвращает секции аркады темы с прогрессом пользователя.
// Первая секция открыта всегда, каждая следующая — после полного
// прохождения предыдущей.
func (s *ProgressService) Sections(ctx context.Context, userID, themeID uint) ([]SectionOverview, error) {
	sections, err := s.questionRepo.GetSections(ctx, themeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sections for theme #%d: %w", themeID, err)
	}

	overviews := make([]SectionOverview, 0, len(sections))
	previousCompleted := true
	for _, section := range sections {
		ids, err := s.questionRepo.GetIDsBySection(ctx, themeID, section, false)
		if err != nil {
			return nil, fmt.Errorf("failed to load section %d of theme #%d: %w", section, themeID, err)
		}
		completed, err := s.sectionRepo.CountCompleted(ctx, userID, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to count section progress: %w", err)
		}

		overviews = append(overviews, SectionOverview{
			Section:   section,
			Total:     len(ids),
			Completed: completed,
			Unlocked:  previousCompleted,
		})
		previousCompleted = len(ids) > 0 && completed >= int64(len(ids))
	}

	return overviews, nil
}

// Records возвращает все рекорды пользователя
func (s *ProgressService) Records(ctx context.Context, userID uint) ([]entity.Record, error) {
	return s.recordRepo.GetByUser(ctx, userID)
}

// ErrorQuestions возвращает вопросы из списка ошибок пользователя
func (s *ProgressService) ErrorQuestions(ctx context.Context, userID uint) ([]entity.Question, error) {
	ids, err := s.errorRepo.GetIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load error ids: %w", err)
	}
	if len(ids) == 0 {
		return []entity.Question{}, nil
	}
	return s.questionRepo.GetByIDs(ctx, ids)
}

// FavoriteQuestions возвращает избранные вопросы пользователя
func (s *ProgressService) FavoriteQuestions(ctx context.Context, userID uint) ([]entity.Question, error) {
	ids, err := s.favoriteRepo.GetIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorite ids: %w", err)
	}
	if len(ids) == 0 {
		return []entity.Question{}, nil
	}
	return s.questionRepo.GetByIDs(ctx, ids)
}

// AddFavorite добавляет вопрос в избранное
func (s *ProgressService) AddFavorite(ctx context.Context, userID, questionID uint) error {
	if _, err := s.questionRepo.GetByID(ctx, questionID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to load question #%d: %w", questionID, err)
	}
	return s.favoriteRepo.Add(ctx, userID, questionID)
}

// RemoveFavorite удаляет вопрос из избранного
func (s *ProgressService) RemoveFavorite(ctx context.Context, userID, questionID uint) error {
	return s.favoriteRepo.Remove(ctx, userID, questionID)
}

// RemoveError удаляет вопрос из списка ошибок пользователя
func (s *ProgressService) RemoveError(ctx context.Context, userID, questionID uint) error {
	return s.errorRepo.Remove(ctx, userID, questionID)
}

// ThemeList возвращает список тем без прогресса
func (s *ProgressService) ThemeList(ctx context.Context) ([]entity.Theme, error) {
	return s.themeRepo.List(ctx)
}
