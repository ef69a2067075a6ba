package gamesession

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quizgame-api/internal/domain/entity"
)

// MockAIChecker реализует AIChecker
type MockAIChecker struct {
	mock.Mock
}

func (m *MockAIChecker) IsAnswerCorrect(ctx context.Context, quest, trueAnswer, userAnswer string) (bool, error) {
	args := m.Called(ctx, quest, trueAnswer, userAnswer)
	return args.Bool(0), args.Error(1)
}

func TestRegistry_UnknownTypeFails(t *testing.T) {
	registry := NewRegistry(nil)

	_, err := registry.For(entity.QuestionType("bogus"))
	assert.ErrorIs(t, err, ErrUnknownQuestionType)
}

func TestSimpleEvaluator(t *testing.T) {
	registry := NewRegistry(nil)
	evaluator, err := registry.For(entity.TypeSimple)
	require.NoError(t, err)

	quest := &entity.QuestModel{Type: entity.TypeSimple, Answers: []string{"а", "б", "в"}, TrueIndex: 1}

	result, err := evaluator.Check(context.Background(), quest, []int{1}, "")
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, 1, result.TrueIndex, "Позиция верного ответа нужна клиенту для подсветки")

	result, err = evaluator.Check(context.Background(), quest, []int{0}, "")
	require.NoError(t, err)
	assert.False(t, result.Correct)

	// Несколько выбранных индексов для одиночного выбора — неверный ответ
	result, err = evaluator.Check(context.Background(), quest, []int{0, 1}, "")
	require.NoError(t, err)
	assert.False(t, result.Correct)
}

func TestEnterEvaluator_NormalizesInput(t *testing.T) {
	registry := NewRegistry(nil)
	evaluator, err := registry.For(entity.TypeEnter)
	require.NoError(t, err)

	quest := &entity.QuestModel{Type: entity.TypeEnter, TrueAnswer: "Пётр Первый;Петр I"}

	cases := []struct {
		input   string
		correct bool
	}{
		{"Пётр Первый", true},
		{"петр первый", true},          // регистр и «ё» не важны
		{"  Петр   I  ", true},         // лишние пробелы схлопываются
		{"Петр I.", true},              // конечная точка не считается ошибкой
		{"Екатерина Вторая", false},
		{"", false},                    // пустой ввод всегда неверен
		{"   ", false},
	}

	for _, tc := range cases {
		result, err := evaluator.Check(context.Background(), quest, nil, tc.input)
		require.NoError(t, err)
		assert.Equal(t, tc.correct, result.Correct, "Ввод %q", tc.input)
	}
}

func TestSetMatchEvaluator(t *testing.T) {
	registry := NewRegistry(nil)
	evaluator, err := registry.For(entity.TypeMulti)
	require.NoError(t, err)

	quest := &entity.QuestModel{Type: entity.TypeMulti, TrueIndices: []int{0, 2}}

	// Порядок выбора не важен
	result, err := evaluator.Check(context.Background(), quest, []int{2, 0}, "")
	require.NoError(t, err)
	assert.True(t, result.Correct)

	// Неполный выбор неверен
	result, err = evaluator.Check(context.Background(), quest, []int{0}, "")
	require.NoError(t, err)
	assert.False(t, result.Correct)

	// Лишний выбор неверен
	result, err = evaluator.Check(context.Background(), quest, []int{0, 1, 2}, "")
	require.NoError(t, err)
	assert.False(t, result.Correct)

	// Пустой выбор неверен при непустом наборе правильных
	result, err = evaluator.Check(context.Background(), quest, nil, "")
	require.NoError(t, err)
	assert.False(t, result.Correct)
}

func TestAIEvaluator(t *testing.T) {
	quest := &entity.QuestModel{Type: entity.TypeAIEnter, Quest: "Почему небо голубое?", TrueAnswer: "Рэлеевское рассеяние"}

	t.Run("пустой ввод не уходит в нейросеть", func(t *testing.T) {
		checker := new(MockAIChecker)
		registry := NewRegistry(checker)
		evaluator, err := registry.For(entity.TypeAIEnter)
		require.NoError(t, err)

		result, err := evaluator.Check(context.Background(), quest, nil, "   ")
		require.NoError(t, err)
		assert.False(t, result.Correct)
		checker.AssertNotCalled(t, "IsAnswerCorrect")
	})

	t.Run("вердикт нейросети определяет результат", func(t *testing.T) {
		checker := new(MockAIChecker)
		checker.On("IsAnswerCorrect", mock.Anything, quest.Quest, "Рэлеевское рассеяние", "рассеяние света").
			Return(true, nil)
		registry := NewRegistry(checker)
		evaluator, err := registry.For(entity.TypeAIEnter)
		require.NoError(t, err)

		result, err := evaluator.Check(context.Background(), quest, nil, "рассеяние света")
		require.NoError(t, err)
		assert.True(t, result.Correct)
		checker.AssertExpectations(t)
	})

	t.Run("ошибка нейросети пробрасывается", func(t *testing.T) {
		checker := new(MockAIChecker)
		checker.On("IsAnswerCorrect", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(false, errors.New("api unavailable"))
		registry := NewRegistry(checker)
		evaluator, err := registry.For(entity.TypeAIEnter)
		require.NoError(t, err)

		_, err = evaluator.Check(context.Background(), quest, nil, "ответ")
		assert.Error(t, err)
	})
}
