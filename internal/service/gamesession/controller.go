package gamesession

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/yourusername/quizgame-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizgame-api/internal/pkg/errors"
)

// Controller управляет одной игровой сессией от запуска до завершения:
// подбирает id вопросов по режиму, выдает вопросы, принимает ответы,
// ведет счет и жизни, сохраняет рекорды и прогресс.
// Экземпляр обслуживает ровно одну активную сессию; StartGame
// переинициализирует состояние.
type Controller struct {
	config *Config
	deps   *Dependencies
	state  *SessionState
}

// NewController создает новый контроллер сессии
func NewController(config *Config, deps *Dependencies) *Controller {
	if config == nil {
		config = DefaultConfig()
	}
	return &Controller{
		config: config,
		deps:   deps,
	}
}

// State возвращает текущее состояние сессии (nil, если сессия не запущена)
func (c *Controller) State() *SessionState {
	return c.state
}

// StartGame сбрасывает состояние, подбирает набор вопросов по режиму и
// выдает первый вопрос через ContinueGame.
func (c *Controller) StartGame(ctx context.Context, payload entity.GameSessionPayload) (*entity.StepInfo, error) {
	lives := c.config.StartLives
	if payload.Mode == entity.ModeNone {
		lives = 0
	}

	ids, err := c.resolveIDs(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve question ids: %w", err)
	}

	c.state = &SessionState{
		Mode:       payload.Mode,
		ThemeID:    payload.ThemeID,
		Section:    payload.Section,
		OldRecord:  payload.OldRecord,
		IDs:        append([]uint(nil), ids...),
		InitialIDs: append([]uint(nil), ids...),
		Total:      len(ids),
		Condition:  lives,
		StartedAt:  time.Now(),
	}

	log.Printf("[GameSession] Сессия запущена: режим %s, тема #%d, секция %d, вопросов %d",
		payload.Mode, payload.ThemeID, payload.Section, len(ids))

	return c.ContinueGame(ctx)
}

// resolveIDs возвращает упорядоченный список кандидатов по правилам режима
func (c *Controller) resolveIDs(ctx context.Context, payload entity.GameSessionPayload) ([]uint, error) {
	switch payload.Mode {
	case entity.ModeArcade:
		return c.deps.Questions.SectionIDs(ctx, payload.ThemeID, payload.Section, c.config.SortByComplexity)

	case entity.ModeTrain:
		themeIDs, err := c.deps.Questions.ThemeIDs(ctx, payload.ThemeID)
		if err != nil {
			return nil, err
		}
		completed, err := c.deps.Train.CompletedIDs(ctx)
		if err != nil {
			return nil, err
		}
		remaining := subtractIDs(themeIDs, completed)
		if len(remaining) == 0 {
			// Тема полностью пройдена — начинаем тренировку заново
			return themeIDs, nil
		}
		return remaining, nil

	case entity.ModeError:
		ids, err := c.deps.Errors.IDs(ctx)
		if err != nil {
			return nil, err
		}
		shuffleIDs(ids)
		return ids, nil

	case entity.ModeFavorite:
		ids, err := c.deps.Favorites.IDs(ctx)
		if err != nil {
			return nil, err
		}
		shuffleIDs(ids)
		return ids, nil

	default:
		return nil, nil
	}
}

// ContinueGame выдает следующий вопрос либо сигнал завершения.
// Каждый id потребляется не более одного раза: выданный вопрос
// удаляется из списка оставшихся.
func (c *Controller) ContinueGame(ctx context.Context) (*entity.StepInfo, error) {
	s := c.state
	if s == nil || s.Finished {
		return nil, ErrNotStarted
	}

	if len(s.IDs) == 0 {
		return nil, ErrSessionExhausted
	}

	if s.Condition <= 0 {
		if !s.IsShowRewardedOffer && s.Mode != entity.ModeTrain {
			s.IsShowRewardedOffer = true
			return nil, ErrRewardedRetryOffered
		}
		return nil, ErrSessionExhausted
	}

	id := s.IDs[0]
	s.IDs = s.IDs[1:]

	question, err := c.deps.Questions.Question(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load question #%d: %w", id, err)
	}

	s.Current = question.GetQuestModel()
	s.Step++

	return &entity.StepInfo{
		Quest:     s.Current,
		Mode:      s.Mode,
		Condition: s.Condition,
		Score:     s.Score,
		Step:      s.Step,
		Total:     s.Total,
	}, nil
}

// ResultAnswer проверяет ответ на текущий вопрос и применяет игровые правила:
// счет, аккумуляторы прогресса, штраф жизней и список ошибок.
func (c *Controller) ResultAnswer(ctx context.Context, selected []int, freeText string) (*entity.HighlightResult, error) {
	s := c.state
	if s == nil || s.Finished {
		return nil, ErrNotStarted
	}
	quest := s.Current
	if quest == nil {
		return nil, ErrNoCurrentQuestion
	}

	evaluator, err := c.deps.Evaluators.For(quest.Type)
	if err != nil {
		return nil, err
	}

	highlight, err := evaluator.Check(ctx, quest, selected, freeText)
	if err != nil {
		return nil, fmt.Errorf("failed to check answer for question #%d: %w", quest.ID, err)
	}

	if highlight.Correct {
		s.Score++
		switch s.Mode {
		case entity.ModeArcade:
			s.SectionIDs = append(s.SectionIDs, quest.ID)
		case entity.ModeTrain:
			s.TrainIDs = append(s.TrainIDs, quest.ID)
		case entity.ModeError:
			// Работа над ошибками: верный ответ снимает вопрос из списка
			if err := c.deps.Errors.Remove(ctx, quest.ID); err != nil {
				return nil, fmt.Errorf("failed to remove error #%d: %w", quest.ID, err)
			}
		}
	} else {
		s.Condition -= fineFor(s.Mode)
		if s.Mode != entity.ModeError {
			if err := c.deps.Errors.Add(ctx, quest.ID); err != nil {
				return nil, fmt.Errorf("failed to save error #%d: %w", quest.ID, err)
			}
		}
		s.SessionErrorIDs = append(s.SessionErrorIDs, quest.ID)
	}

	s.Current = nil
	return highlight, nil
}

// OnUserEarnedReward начисляет одну дополнительную жизнь за просмотр
// рекламы. Повторный вызов в той же сессии ничего не меняет: флаг
// IsShowRewardedOffer не сбрасывается, а награда одноразовая.
func (c *Controller) OnUserEarnedReward() {
	s := c.state
	if s == nil || s.Finished {
		return
	}
	if !s.IsShowRewardedOffer || s.RewardUsed {
		return
	}
	s.Condition++
	s.RewardUsed = true
	log.Printf("[GameSession] Начислена жизнь за награду, осталось жизней: %d", s.Condition)
}

// FinishGame фиксирует сессию: сохраняет прогресс секции/тренировки,
// обновляет рекорд и оповещает слушателей. Оповещения уходят только
// после успешного сохранения.
func (c *Controller) FinishGame(ctx context.Context) (*entity.GameEndPayload, error) {
	s := c.state
	if s == nil {
		return nil, ErrNotStarted
	}

	s.Finished = true
	s.FinishedAt = time.Now()
	elapsedSec := int64(s.FinishedAt.Sub(s.StartedAt).Seconds())

	switch s.Mode {
	case entity.ModeArcade:
		// Прогресс секции замещается итогом сессии: сначала сбрасываем
		// прежнее частичное состояние, затем записываем верные ответы
		if err := c.deps.Sections.DeleteIDs(ctx, s.InitialIDs); err != nil {
			return nil, fmt.Errorf("failed to reset section progress: %w", err)
		}
		if err := c.deps.Sections.AddIDs(ctx, s.SectionIDs); err != nil {
			return nil, fmt.Errorf("failed to save section progress: %w", err)
		}
	case entity.ModeTrain:
		if err := c.deps.Train.AddIDs(ctx, s.TrainIDs); err != nil {
			return nil, fmt.Errorf("failed to save train progress: %w", err)
		}
	}

	if err := c.saveRecord(ctx, elapsedSec); err != nil {
		return nil, fmt.Errorf("failed to save record: %w", err)
	}

	if c.deps.Notifier != nil {
		c.deps.Notifier.RecordsChanged()
		if s.Mode == entity.ModeArcade {
			c.deps.Notifier.SectionsChanged()
		}
		if len(s.SessionErrorIDs) > 0 || s.Mode == entity.ModeError {
			c.deps.Notifier.ErrorsChanged()
		}
	}

	payload := &entity.GameEndPayload{
		Mode:       s.Mode,
		ThemeID:    s.ThemeID,
		OldRecord:  s.OldRecord,
		Score:      s.Score,
		Count:      s.Total,
		ErrorIDs:   append([]uint(nil), s.SessionErrorIDs...),
		RewardUsed: s.RewardUsed,
	}

	log.Printf("[GameSession] Сессия завершена: режим %s, тема #%d, счет %d/%d, ошибок %d",
		s.Mode, s.ThemeID, s.Score, s.Total, len(s.SessionErrorIDs))

	c.state = nil
	return payload, nil
}

// FirstFinishGame завершает сессию, брошенную до первого ответа.
// Имеет эффект только в тренировке: там прогресс сохраняется всегда.
func (c *Controller) FirstFinishGame(ctx context.Context) (*entity.GameEndPayload, error) {
	if c.state == nil {
		return nil, ErrNotStarted
	}
	if c.state.Mode != entity.ModeTrain {
		return nil, nil
	}
	return c.FinishGame(ctx)
}

// saveRecord применяет правило обновления рекорда: строго больше прежнего;
// тренировка сохраняется при любом ненулевом счете. Время рекорда
// накапливается между сессиями.
func (c *Controller) saveRecord(ctx context.Context, elapsedSec int64) error {
	s := c.state
	if s.Score == 0 {
		return nil
	}

	record, err := c.deps.Records.Record(ctx, s.ThemeID, s.Mode)
	if errors.Is(err, apperrors.ErrNotFound) {
		return c.deps.Records.Add(ctx, &entity.Record{
			ThemeID:      s.ThemeID,
			Mode:         s.Mode,
			Score:        s.Score,
			TotalTimeSec: elapsedSec,
		})
	}
	if err != nil {
		return err
	}

	if s.Mode != entity.ModeTrain && s.Score <= record.Score {
		return nil
	}

	record.Score = s.Score
	record.TotalTimeSec += elapsedSec
	return c.deps.Records.Update(ctx, record)
}

// subtractIDs возвращает элементы ids, отсутствующие в exclude, сохраняя порядок
func subtractIDs(ids, exclude []uint) []uint {
	if len(exclude) == 0 {
		return append([]uint(nil), ids...)
	}
	excluded := make(map[uint]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}
	result := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := excluded[id]; !ok {
			result = append(result, id)
		}
	}
	return result
}

func shuffleIDs(ids []uint) {
	rand.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
}
