package gamesession

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quizgame-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizgame-api/internal/pkg/errors"
)

// ============================================================================
// Фейковые источники данных для контроллера сессии
// ============================================================================

type fakeQuestions struct {
	sectionIDs []uint
	themeIDs   []uint
	byID       map[uint]*entity.Question
}

func (f *fakeQuestions) SectionIDs(_ context.Context, _ uint, _ int, _ bool) ([]uint, error) {
	return append([]uint(nil), f.sectionIDs...), nil
}

func (f *fakeQuestions) ThemeIDs(_ context.Context, _ uint) ([]uint, error) {
	return append([]uint(nil), f.themeIDs...), nil
}

func (f *fakeQuestions) Question(_ context.Context, id uint) (*entity.Question, error) {
	q, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return q, nil
}

type fakeRecords struct {
	existing *entity.Record
	added    []*entity.Record
	updated  []*entity.Record
}

func (f *fakeRecords) Record(_ context.Context, _ uint, _ entity.Mode) (*entity.Record, error) {
	if f.existing == nil {
		return nil, apperrors.ErrNotFound
	}
	copied := *f.existing
	return &copied, nil
}

func (f *fakeRecords) Add(_ context.Context, record *entity.Record) error {
	f.added = append(f.added, record)
	return nil
}

func (f *fakeRecords) Update(_ context.Context, record *entity.Record) error {
	f.updated = append(f.updated, record)
	return nil
}

type fakeSections struct {
	deleted [][]uint
	added   [][]uint
}

func (f *fakeSections) DeleteIDs(_ context.Context, ids []uint) error {
	f.deleted = append(f.deleted, ids)
	return nil
}

func (f *fakeSections) AddIDs(_ context.Context, ids []uint) error {
	f.added = append(f.added, ids)
	return nil
}

type fakeTrain struct {
	completed []uint
	added     [][]uint
}

func (f *fakeTrain) CompletedIDs(_ context.Context) ([]uint, error) {
	return append([]uint(nil), f.completed...), nil
}

func (f *fakeTrain) AddIDs(_ context.Context, ids []uint) error {
	f.added = append(f.added, ids)
	return nil
}

type fakeErrors struct {
	ids     []uint
	added   []uint
	removed []uint
}

func (f *fakeErrors) IDs(_ context.Context) ([]uint, error) {
	return append([]uint(nil), f.ids...), nil
}

func (f *fakeErrors) Add(_ context.Context, id uint) error {
	f.added = append(f.added, id)
	return nil
}

func (f *fakeErrors) Remove(_ context.Context, id uint) error {
	f.removed = append(f.removed, id)
	return nil
}

type fakeFavorites struct {
	ids []uint
}

func (f *fakeFavorites) IDs(_ context.Context) ([]uint, error) {
	return append([]uint(nil), f.ids...), nil
}

type fakeNotifier struct {
	records  int
	sections int
	errors   int
}

func (f *fakeNotifier) RecordsChanged()  { f.records++ }
func (f *fakeNotifier) SectionsChanged() { f.sections++ }
func (f *fakeNotifier) ErrorsChanged()   { f.errors++ }

// ============================================================================
// Вспомогательные конструкторы
// ============================================================================

// simpleQuestion создает вопрос с одиночным выбором из двух вариантов
func simpleQuestion(id uint) *entity.Question {
	return &entity.Question{
		ID:         id,
		ThemeID:    1,
		Section:    1,
		Type:       entity.TypeSimple,
		Quest:      fmt.Sprintf("Вопрос %d", id),
		TrueAnswer: "верный",
		Answer2:    "неверный",
		Complexity: 1,
	}
}

type testEnv struct {
	controller *Controller
	questions  *fakeQuestions
	records    *fakeRecords
	sections   *fakeSections
	train      *fakeTrain
	errors     *fakeErrors
	favorites  *fakeFavorites
	notifier   *fakeNotifier
}

func newTestEnv(questionIDs []uint) *testEnv {
	byID := make(map[uint]*entity.Question, len(questionIDs))
	for _, id := range questionIDs {
		byID[id] = simpleQuestion(id)
	}

	env := &testEnv{
		questions: &fakeQuestions{sectionIDs: questionIDs, themeIDs: questionIDs, byID: byID},
		records:   &fakeRecords{},
		sections:  &fakeSections{},
		train:     &fakeTrain{},
		errors:    &fakeErrors{},
		favorites: &fakeFavorites{},
		notifier:  &fakeNotifier{},
	}
	env.controller = NewController(DefaultConfig(), &Dependencies{
		Questions:  env.questions,
		Records:    env.records,
		Sections:   env.sections,
		Train:      env.train,
		Errors:     env.errors,
		Favorites:  env.favorites,
		Evaluators: NewRegistry(nil),
		Notifier:   env.notifier,
	})
	return env
}

// answer отвечает на текущий вопрос верно либо неверно
func answer(t *testing.T, c *Controller, correct bool) *entity.HighlightResult {
	t.Helper()
	quest := c.State().Current
	require.NotNil(t, quest, "Должен быть активный вопрос")

	selected := quest.TrueIndex
	if !correct {
		selected = (quest.TrueIndex + 1) % len(quest.Answers)
	}

	result, err := c.ResultAnswer(context.Background(), []int{selected}, "")
	require.NoError(t, err, "Проверка ответа не должна падать")
	assert.Equal(t, correct, result.Correct, "Корректность ответа должна совпадать с ожидаемой")
	return result
}

// ============================================================================
// Тесты
// ============================================================================

func TestController_RewardOfferAfterLivesExhausted(t *testing.T) {
	// Arrange: аркада из 5 вопросов, 2 жизни
	env := newTestEnv([]uint{1, 2, 3, 4, 5})
	ctx := context.Background()

	_, err := env.controller.StartGame(ctx, entity.GameSessionPayload{Mode: entity.ModeArcade, ThemeID: 1, Section: 1})
	require.NoError(t, err)

	// Act: две ошибки подряд сжигают обе жизни
	answer(t, env.controller, false)
	_, err = env.controller.ContinueGame(ctx)
	require.NoError(t, err)
	answer(t, env.controller, false)

	// Assert: первый запрос после исчерпания жизней предлагает награду,
	// второй завершает сессию
	_, err = env.controller.ContinueGame(ctx)
	assert.ErrorIs(t, err, ErrRewardedRetryOffered, "Первое исчерпание жизней должно предложить повтор за награду")

	_, err = env.controller.ContinueGame(ctx)
	assert.ErrorIs(t, err, ErrSessionExhausted, "Повторное предложение награды недопустимо")
}

func TestController_RewardGrantsOneLifeOnce(t *testing.T) {
	// Arrange: доводим сессию до предложения награды
	env := newTestEnv([]uint{1, 2, 3, 4, 5})
	ctx := context.Background()

	_, err := env.controller.StartGame(ctx, entity.GameSessionPayload{Mode: entity.ModeArcade, ThemeID: 1, Section: 1})
	require.NoError(t, err)
	answer(t, env.controller, false)
	_, err = env.controller.ContinueGame(ctx)
	require.NoError(t, err)
	answer(t, env.controller, false)
	_, err = env.controller.ContinueGame(ctx)
	require.ErrorIs(t, err, ErrRewardedRetryOffered)

	// Act: награда получена, игра продолжается
	env.controller.OnUserEarnedReward()
	assert.Equal(t, 1, env.controller.State().Condition, "Награда должна дать ровно одну жизнь")

	// Повторная награда в той же сессии не начисляется
	env.controller.OnUserEarnedReward()
	assert.Equal(t, 1, env.controller.State().Condition, "Повторная награда не должна начисляться")

	step, err := env.controller.ContinueGame(ctx)
	require.NoError(t, err, "После награды должен выдаваться следующий вопрос")
	require.NotNil(t, step.Quest)

	// Assert: следующая ошибка завершает сессию без нового предложения
	answer(t, env.controller, false)
	_, err = env.controller.ContinueGame(ctx)
	assert.ErrorIs(t, err, ErrSessionExhausted, "Флаг предложения награды не сбрасывается")
}

func TestController_TrainHasNoLifePenalty(t *testing.T) {
	// Arrange
	env := newTestEnv([]uint{1, 2, 3})
	ctx := context.Background()

	_, err := env.controller.StartGame(ctx, entity.GameSessionPayload{Mode: entity.ModeTrain, ThemeID: 1})
	require.NoError(t, err)
	startLives := env.controller.State().Condition

	// Act: ошибка в тренировке
	answer(t, env.controller, false)

	// Assert
	assert.Equal(t, startLives, env.controller.State().Condition, "Тренировка не должна отнимать жизни")
	assert.Equal(t, []uint{1}, env.errors.added, "Ошибка должна попасть в список ошибок")
}

func TestController_TrainFallbackWhenThemeCompleted(t *testing.T) {
	// Arrange: все вопросы темы уже пройдены
	env := newTestEnv([]uint{1, 2, 3})
	env.train.completed = []uint{1, 2, 3}
	ctx := context.Background()

	// Act
	step, err := env.controller.StartGame(ctx, entity.GameSessionPayload{Mode: entity.ModeTrain, ThemeID: 1})

	// Assert: тренировка начинается заново с полного набора
	require.NoError(t, err)
	require.NotNil(t, step.Quest)
	assert.Equal(t, 3, env.controller.State().Total, "Пройденная тема должна тренироваться с полного набора")
}

func TestController_EachQuestionDeliveredOnce(t *testing.T) {
	// Arrange
	env := newTestEnv([]uint{1, 2, 3, 4})
	ctx := context.Background()

	step, err := env.controller.StartGame(ctx, entity.GameSessionPayload{Mode: entity.ModeTrain, ThemeID: 1})
	require.NoError(t, err)

	// Act: проходим всю сессию и собираем выданные id
	seen := map[uint]int{step.Quest.ID: 1}
	for {
		answer(t, env.controller, true)
		step, err = env.controller.ContinueGame(ctx)
		if err != nil {
			require.ErrorIs(t, err, ErrSessionExhausted)
			break
		}
		seen[step.Quest.ID]++
	}

	// Assert
	assert.Len(t, seen, 4, "Каждый вопрос должен быть выдан")
	for id, count := range seen {
		assert.Equal(t, 1, count, "Вопрос %d выдан более одного раза", id)
	}
}

func TestController_FinishReplacesSectionProgress(t *testing.T) {
	// Arrange: аркада из трех вопросов, один будет отвечен неверно
	env := newTestEnv([]uint{1, 2, 3})
	ctx := context.Background()

	_, err := env.controller.StartGame(ctx, entity.GameSessionPayload{Mode: entity.ModeArcade, ThemeID: 1, Section: 1})
	require.NoError(t, err)

	answer(t, env.controller, true)
	_, err = env.controller.ContinueGame(ctx)
	require.NoError(t, err)
	answer(t, env.controller, false)
	_, err = env.controller.ContinueGame(ctx)
	require.NoError(t, err)
	answer(t, env.controller, true)

	// Act
	payload, err := env.controller.FinishGame(ctx)

	// Assert: сначала сбрасывается исходный набор, затем пишутся верные ответы
	require.NoError(t, err)
	require.Len(t, env.sections.deleted, 1)
	assert.Equal(t, []uint{1, 2, 3}, env.sections.deleted[0], "Сброс должен покрывать исходный набор секции")
	require.Len(t, env.sections.added, 1)
	assert.Equal(t, []uint{1, 3}, env.sections.added[0], "Сохраняются только верно отвеченные вопросы")

	assert.Equal(t, 2, payload.Score)
	assert.Equal(t, []uint{2}, payload.ErrorIDs)
	assert.Equal(t, 1, env.notifier.records, "Завершение должно оповестить об изменении рекордов")
	assert.Equal(t, 1, env.notifier.sections, "Аркада должна оповестить об изменении секций")
	assert.Equal(t, 1, env.notifier.errors, "Ошибки сессии должны оповестить об изменении списка ошибок")

	assert.Nil(t, env.controller.State(), "Состояние после завершения должно быть сброшено")
}

func TestController_RecordUpdatedOnlyWhenStrictlyGreater(t *testing.T) {
	// Arrange: существующий рекорд 7, сессия наберет 3
	env := newTestEnv([]uint{1, 2, 3})
	env.records.existing = &entity.Record{ID: 10, UserID: 1, ThemeID: 1, Mode: entity.ModeArcade, Score: 7, TotalTimeSec: 100}
	ctx := context.Background()

	_, err := env.controller.StartGame(ctx, entity.GameSessionPayload{Mode: entity.ModeArcade, ThemeID: 1, Section: 1, OldRecord: 7})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		answer(t, env.controller, true)
		_, err = env.controller.ContinueGame(ctx)
		if i < 2 {
			require.NoError(t, err)
		}
	}

	// Act
	payload, err := env.controller.FinishGame(ctx)

	// Assert: 3 <= 7, рекорд не трогаем
	require.NoError(t, err)
	assert.Equal(t, 3, payload.Score)
	assert.Empty(t, env.records.updated, "Рекорд не должен обновляться меньшим результатом")
	assert.Empty(t, env.records.added)
}

func TestController_TrainRecordAccumulatesTime(t *testing.T) {
	// Arrange: тренировка с существующим рекордом
	env := newTestEnv([]uint{1, 2})
	env.records.existing = &entity.Record{ID: 10, UserID: 1, ThemeID: 1, Mode: entity.ModeTrain, Score: 5, TotalTimeSec: 40}
	ctx := context.Background()

	_, err := env.controller.StartGame(ctx, entity.GameSessionPayload{Mode: entity.ModeTrain, ThemeID: 1})
	require.NoError(t, err)
	answer(t, env.controller, true)

	// Act
	_, err = env.controller.FinishGame(ctx)

	// Assert: тренировка сохраняет любой ненулевой счет, даже меньший
	require.NoError(t, err)
	require.Len(t, env.records.updated, 1, "Тренировка должна сохранять ненулевой счет")
	assert.Equal(t, 1, env.records.updated[0].Score)
	assert.GreaterOrEqual(t, env.records.updated[0].TotalTimeSec, int64(40), "Время рекорда накапливается, а не замещается")
}

func TestController_ZeroScoreDoesNotTouchRecord(t *testing.T) {
	// Arrange
	env := newTestEnv([]uint{1})
	ctx := context.Background()

	_, err := env.controller.StartGame(ctx, entity.GameSessionPayload{Mode: entity.ModeArcade, ThemeID: 1, Section: 1})
	require.NoError(t, err)
	answer(t, env.controller, false)

	// Act
	_, err = env.controller.FinishGame(ctx)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, env.records.added, "Нулевой счет не должен создавать рекорд")
	assert.Empty(t, env.records.updated)
}

func TestController_ErrorModeRemovesFixedQuestions(t *testing.T) {
	// Arrange: работа над ошибками по двум вопросам
	env := newTestEnv([]uint{1, 2})
	env.errors.ids = []uint{1, 2}
	ctx := context.Background()

	_, err := env.controller.StartGame(ctx, entity.GameSessionPayload{Mode: entity.ModeError, ThemeID: 1})
	require.NoError(t, err)

	// Act: первый ответ верный, второй нет
	first := env.controller.State().Current.ID
	answer(t, env.controller, true)
	_, err = env.controller.ContinueGame(ctx)
	require.NoError(t, err)
	second := env.controller.State().Current.ID
	answer(t, env.controller, false)

	// Assert: верный ответ снимает вопрос, неверный не дублирует его в списке
	assert.Equal(t, []uint{first}, env.errors.removed, "Верный ответ должен снять вопрос из списка ошибок")
	assert.Empty(t, env.errors.added, "В режиме ошибок повторная ошибка не добавляется заново")
	assert.Equal(t, []uint{second}, env.controller.State().SessionErrorIDs)
}

func TestController_FirstFinishOnlyMattersInTrain(t *testing.T) {
	ctx := context.Background()

	// Вне тренировки брошенная сессия не дает итогов
	env := newTestEnv([]uint{1, 2})
	_, err := env.controller.StartGame(ctx, entity.GameSessionPayload{Mode: entity.ModeArcade, ThemeID: 1, Section: 1})
	require.NoError(t, err)
	payload, err := env.controller.FirstFinishGame(ctx)
	require.NoError(t, err)
	assert.Nil(t, payload, "Вне тренировки ранний выход не дает итогов")

	// В тренировке прогресс фиксируется даже при раннем выходе
	env = newTestEnv([]uint{1, 2})
	_, err = env.controller.StartGame(ctx, entity.GameSessionPayload{Mode: entity.ModeTrain, ThemeID: 1})
	require.NoError(t, err)
	answer(t, env.controller, true)
	payload, err = env.controller.FirstFinishGame(ctx)
	require.NoError(t, err)
	require.NotNil(t, payload, "Тренировка должна фиксироваться при раннем выходе")
	require.Len(t, env.train.added, 1)
	assert.Equal(t, []uint{1}, env.train.added[0])
}

func TestController_OperationsBeforeStartFail(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	_, err := env.controller.ContinueGame(ctx)
	assert.ErrorIs(t, err, ErrNotStarted)

	_, err = env.controller.ResultAnswer(ctx, []int{0}, "")
	assert.ErrorIs(t, err, ErrNotStarted)

	_, err = env.controller.FinishGame(ctx)
	assert.ErrorIs(t, err, ErrNotStarted)

	_, err = env.controller.FirstFinishGame(ctx)
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestController_NoneModeExhaustsImmediately(t *testing.T) {
	// Режим без вопросов: сессия завершается сразу и без предложения награды
	env := newTestEnv(nil)
	ctx := context.Background()

	_, err := env.controller.StartGame(ctx, entity.GameSessionPayload{Mode: entity.ModeNone, ThemeID: 1})
	assert.ErrorIs(t, err, ErrSessionExhausted)
}
