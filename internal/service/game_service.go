package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/yourusername/quizgame-api/internal/domain/entity"
	"github.com/yourusername/quizgame-api/internal/domain/repository"
	"github.com/yourusername/quizgame-api/internal/service/gamesession"
	"github.com/yourusername/quizgame-api/internal/websocket"
)

// GameService управляет игровыми сессиями пользователей. На пользователя
// приходится не более одной активной сессии; новый StartGame замещает старую.
type GameService struct {
	questionRepo repository.QuestionRepository
	recordRepo   repository.RecordRepository
	sectionRepo  repository.SectionProgressRepository
	trainRepo    repository.TrainProgressRepository
	errorRepo    repository.ErrorRepository
	favoriteRepo repository.FavoriteRepository
	cacheRepo    repository.CacheRepository
	evaluators   *gamesession.Registry
	hub          *websocket.Hub
	config       *gamesession.Config

	mu       sync.Mutex
	sessions map[uint]*userSession
}

// userSession связывает контроллер с мьютексом: вызовы контроллера
// не потокобезопасны и сериализуются на уровне сессии
type userSession struct {
	mu         sync.Mutex
	controller *gamesession.Controller
}

// NewGameService создает новый игровой сервис
func NewGameService(
	questionRepo repository.QuestionRepository,
	recordRepo repository.RecordRepository,
	sectionRepo repository.SectionProgressRepository,
	trainRepo repository.TrainProgressRepository,
	errorRepo repository.ErrorRepository,
	favoriteRepo repository.FavoriteRepository,
	cacheRepo repository.CacheRepository,
	evaluators *gamesession.Registry,
	hub *websocket.Hub,
	config *gamesession.Config,
) *GameService {
	return &GameService{
		questionRepo: questionRepo,
		recordRepo:   recordRepo,
		sectionRepo:  sectionRepo,
		trainRepo:    trainRepo,
		errorRepo:    errorRepo,
		favoriteRepo: favoriteRepo,
		cacheRepo:    cacheRepo,
		evaluators:   evaluators,
		hub:          hub,
		config:       config,
		sessions:     make(map[uint]*userSession),
	}
}

// StartGame запускает новую сессию пользователя и возвращает первый шаг
func (s *GameService) StartGame(ctx context.Context, userID uint, payload entity.GameSessionPayload) (*entity.StepInfo, error) {
	if !payload.Mode.Valid() {
		return nil, fmt.Errorf("неизвестный режим игры: %q", payload.Mode)
	}

	session := s.sessionFor(userID, true)
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.controller == nil {
		session.controller = gamesession.NewController(s.config, s.dependenciesFor(userID))
	}
	return session.controller.StartGame(ctx, payload)
}

// NextQuestion выдает следующий вопрос активной сессии
func (s *GameService) NextQuestion(ctx context.Context, userID uint) (*entity.StepInfo, error) {
	session := s.sessionFor(userID, false)
	if session == nil {
		return nil, gamesession.ErrNotStarted
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.controller == nil {
		return nil, gamesession.ErrNotStarted
	}
	return session.controller.ContinueGame(ctx)
}

// AnswerQuestion проверяет ответ на текущий вопрос
func (s *GameService) AnswerQuestion(ctx context.Context, userID uint, selected []int, freeText string) (*entity.HighlightResult, error) {
	session := s.sessionFor(userID, false)
	if session == nil {
		return nil, gamesession.ErrNotStarted
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.controller == nil {
		return nil, gamesession.ErrNotStarted
	}
	return session.controller.ResultAnswer(ctx, selected, freeText)
}

// EarnReward начисляет жизнь за просмотр рекламы
func (s *GameService) EarnReward(ctx context.Context, userID uint) error {
	session := s.sessionFor(userID, false)
	if session == nil {
		return gamesession.ErrNotStarted
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.controller == nil {
		return gamesession.ErrNotStarted
	}
	session.controller.OnUserEarnedReward()
	return nil
}

// FinishGame завершает сессию и фиксирует результаты
func (s *GameService) FinishGame(ctx context.Context, userID uint) (*entity.GameEndPayload, error) {
	session := s.sessionFor(userID, false)
	if session == nil {
		return nil, gamesession.ErrNotStarted
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.controller == nil {
		return nil, gamesession.ErrNotStarted
	}

	payload, err := session.controller.FinishGame(ctx)
	if err != nil {
		return nil, err
	}

	s.invalidateProgressCache(userID)
	return payload, nil
}

// AbandonGame завершает сессию, брошенную до первого ответа.
// Результат есть только в тренировке; в остальных режимах сессия
// просто сбрасывается.
func (s *GameService) AbandonGame(ctx context.Context, userID uint) (*entity.GameEndPayload, error) {
	session := s.sessionFor(userID, false)
	if session == nil {
		return nil, gamesession.ErrNotStarted
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.controller == nil {
		return nil, gamesession.ErrNotStarted
	}

	payload, err := session.controller.FirstFinishGame(ctx)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		s.invalidateProgressCache(userID)
	}
	return payload, nil
}

// sessionFor возвращает сессию пользователя, создавая ее при необходимости
func (s *GameService) sessionFor(userID uint, create bool) *userSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok && create {
		session = &userSession{}
		s.sessions[userID] = session
	}
	return session
}

// dependenciesFor собирает зависимости контроллера, привязанные к пользователю
func (s *GameService) dependenciesFor(userID uint) *gamesession.Dependencies {
	return &gamesession.Dependencies{
		Questions:  &questionSource{repo: s.questionRepo},
		Records:    &recordSource{repo: s.recordRepo, userID: userID},
		Sections:   &sectionSource{repo: s.sectionRepo, userID: userID},
		Train:      &trainSource{repo: s.trainRepo, userID: userID},
		Errors:     &errorSource{repo: s.errorRepo, userID: userID},
		Favorites:  &favoriteSource{repo: s.favoriteRepo, userID: userID},
		Evaluators: s.evaluators,
		Notifier:   &userNotifier{hub: s.hub, userID: userID},
	}
}

// invalidateProgressCache сбрасывает закешированный прогресс пользователя
func (s *GameService) invalidateProgressCache(userID uint) {
	if s.cacheRepo == nil {
		return
	}
	key := fmt.Sprintf("progress:user:%d", userID)
	if err := s.cacheRepo.Delete(key); err != nil {
		log.Printf("[GameService] Не удалось сбросить кеш прогресса %s: %v", key, err)
	}
}

// Адаптеры привязывают пользовательские репозитории к интерфейсам сессии

type questionSource struct {
	repo repository.QuestionRepository
}

func (q *questionSource) SectionIDs(ctx context.Context, themeID uint, section int, sortByComplexity bool) ([]uint, error) {
	return q.repo.GetIDsBySection(ctx, themeID, section, sortByComplexity)
}

func (q *questionSource) ThemeIDs(ctx context.Context, themeID uint) ([]uint, error) {
	return q.repo.GetIDsByTheme(ctx, themeID)
}

func (q *questionSource) Question(ctx context.Context, id uint) (*entity.Question, error) {
	return q.repo.GetByID(ctx, id)
}

type recordSource struct {
	repo   repository.RecordRepository
	userID uint
}

func (r *recordSource) Record(ctx context.Context, themeID uint, mode entity.Mode) (*entity.Record, error) {
	return r.repo.GetRecord(ctx, r.userID, themeID, mode)
}

func (r *recordSource) Add(ctx context.Context, record *entity.Record) error {
	record.UserID = r.userID
	return r.repo.Add(ctx, record)
}

func (r *recordSource) Update(ctx context.Context, record *entity.Record) error {
	return r.repo.Update(ctx, record)
}

type sectionSource struct {
	repo   repository.SectionProgressRepository
	userID uint
}

func (s *sectionSource) DeleteIDs(ctx context.Context, questionIDs []uint) error {
	return s.repo.DeleteIDs(ctx, s.userID, questionIDs)
}

func (s *sectionSource) AddIDs(ctx context.Context, questionIDs []uint) error {
	return s.repo.AddIDs(ctx, s.userID, questionIDs)
}

type trainSource struct {
	repo   repository.TrainProgressRepository
	userID uint
}

func (t *trainSource) CompletedIDs(ctx context.Context) ([]uint, error) {
	return t.repo.GetIDs(ctx, t.userID)
}

func (t *trainSource) AddIDs(ctx context.Context, questionIDs []uint) error {
	return t.repo.AddIDs(ctx, t.userID, questionIDs)
}

type errorSource struct {
	repo   repository.ErrorRepository
	userID uint
}

func (e *errorSource) IDs(ctx context.Context) ([]uint, error) {
	return e.repo.GetIDs(ctx, e.userID)
}

func (e *errorSource) Add(ctx context.Context, questionID uint) error {
	return e.repo.Add(ctx, e.userID, questionID)
}

func (e *errorSource) Remove(ctx context.Context, questionID uint) error {
	return e.repo.Remove(ctx, e.userID, questionID)
}

type favoriteSource struct {
	repo   repository.FavoriteRepository
	userID uint
}

func (f *favoriteSource) IDs(ctx context.Context) ([]uint, error) {
	return f.repo.GetIDs(ctx, f.userID)
}

// userNotifier рассылает события пользователя через WebSocket-хаб
type userNotifier struct {
	hub    *websocket.Hub
	userID uint
}

func (n *userNotifier) RecordsChanged() {
	if n.hub != nil {
		n.hub.SendToUser(n.userID, websocket.Event{Type: websocket.EventRecordsUpdated})
	}
}

func (n *userNotifier) SectionsChanged() {
	if n.hub != nil {
		n.hub.SendToUser(n.userID, websocket.Event{Type: websocket.EventSectionsUpdated})
	}
}

func (n *userNotifier) ErrorsChanged() {
	if n.hub != nil {
		n.hub.SendToUser(n.userID, websocket.Event{Type: websocket.EventErrorsUpdated})
	}
}
