package gamesession

import (
	"context"
	"errors"
	"time"

	"github.com/yourusername/quizgame-api/internal/domain/entity"
)

// Константы значений по умолчанию
const (
	// DefaultStartLives — количество жизней в начале сессии
	DefaultStartLives = 2
)

// Сигналы завершения сессии и ошибки контроллера.
// ErrSessionExhausted и ErrRewardedRetryOffered — управляющие сигналы
// для вызывающей стороны, а не сбои.
var (
	// ErrNotStarted возвращается при вызове операций до StartGame
	ErrNotStarted = errors.New("game session is not started")

	// ErrSessionExhausted сигнализирует штатное завершение: вопросов больше
	// нет либо жизни исчерпаны и повтор за награду уже предлагался
	ErrSessionExhausted = errors.New("game session is exhausted")

	// ErrRewardedRetryOffered сигнализирует, что жизни кончились и вызывающая
	// сторона должна предложить повтор за просмотр рекламы (один раз за сессию)
	ErrRewardedRetryOffered = errors.New("rewarded retry offered")

	// ErrNoCurrentQuestion возвращается, если ответ пришел без активного вопроса
	ErrNoCurrentQuestion = errors.New("no current question to answer")

	// ErrUnknownQuestionType возвращается, когда для типа вопроса нет проверщика
	ErrUnknownQuestionType = errors.New("unknown question type")
)

// Config содержит настройки контроллера сессии
type Config struct {
	// StartLives — жизни в начале сессии (для режима None не используются)
	StartLives int

	// SortByComplexity включает выдачу аркадных вопросов по возрастанию
	// сложности (внутри одной сложности порядок случаен)
	SortByComplexity bool
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *Config {
	return &Config{
		StartLives:       DefaultStartLives,
		SortByComplexity: true,
	}
}

// QuestionSource — источник вопросов для сессии
type QuestionSource interface {
	// SectionIDs возвращает id вопросов секции темы
	SectionIDs(ctx context.Context, themeID uint, section int, sortByComplexity bool) ([]uint, error)
	// ThemeIDs возвращает все id вопросов темы
	ThemeIDs(ctx context.Context, themeID uint) ([]uint, error)
	// Question загружает вопрос по id
	Question(ctx context.Context, id uint) (*entity.Question, error)
}

// RecordSource — источник рекордов пользователя
type RecordSource interface {
	Record(ctx context.Context, themeID uint, mode entity.Mode) (*entity.Record, error)
	Add(ctx context.Context, record *entity.Record) error
	Update(ctx context.Context, record *entity.Record) error
}

// SectionSource — прогресс аркадных секций пользователя
type SectionSource interface {
	DeleteIDs(ctx context.Context, questionIDs []uint) error
	AddIDs(ctx context.Context, questionIDs []uint) error
}

// TrainSource — прогресс тренировок пользователя
type TrainSource interface {
	CompletedIDs(ctx context.Context) ([]uint, error)
	AddIDs(ctx context.Context, questionIDs []uint) error
}

// ErrorSource — список вопросов с ошибками пользователя
type ErrorSource interface {
	IDs(ctx context.Context) ([]uint, error)
	Add(ctx context.Context, questionID uint) error
	Remove(ctx context.Context, questionID uint) error
}

// FavoriteSource — избранные вопросы пользователя
type FavoriteSource interface {
	IDs(ctx context.Context) ([]uint, error)
}

// Notifier оповещает остальные экраны об изменениях после успешного
// завершения сессии. Вызывается только после фиксации записей в хранилище.
type Notifier interface {
	RecordsChanged()
	SectionsChanged()
	ErrorsChanged()
}

// Dependencies содержит зависимости контроллера сессии
type Dependencies struct {
	Questions  QuestionSource
	Records    RecordSource
	Sections   SectionSource
	Train      TrainSource
	Errors     ErrorSource
	Favorites  FavoriteSource
	Evaluators *Registry
	Notifier   Notifier
}

// SessionState хранит состояние одной игровой сессии. Владелец состояния —
// контроллер; вызовы контроллера сериализуются вызывающей стороной, поэтому
// внутренних блокировок нет.
type SessionState struct {
	Mode    entity.Mode
	ThemeID uint
	Section int

	// OldRecord — прежний лучший результат, переданный при запуске
	OldRecord int

	// IDs — оставшиеся id вопросов (FIFO), InitialIDs — исходный набор
	IDs        []uint
	InitialIDs []uint
	Total      int

	// Аккумуляторы верно отвеченных вопросов по режимам
	SectionIDs []uint
	TrainIDs   []uint

	// SessionErrorIDs — ошибки, допущенные в текущей сессии
	SessionErrorIDs []uint

	Condition int // Оставшиеся жизни
	Score     int
	Step      int

	// Current — последний выданный вопрос, ожидающий ответа
	Current *entity.QuestModel

	StartedAt  time.Time
	FinishedAt time.Time

	// IsShowRewardedOffer выставляется при первом исчерпании жизней и не
	// сбрасывается: повтор за награду предлагается не более одного раза
	IsShowRewardedOffer bool
	RewardUsed          bool
	Finished            bool
}

// fineFor возвращает штраф жизней за неверный ответ в данном режиме.
// Тренировка намеренно бесплатна; это правило не выводится из общей
// формулы и должно оставаться отдельной веткой.
func fineFor(mode entity.Mode) int {
	switch mode {
	case entity.ModeArcade, entity.ModeError, entity.ModeFavorite:
		return 1
	default:
		return 0
	}
}
