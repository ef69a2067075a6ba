package gamesession

import (
	"context"
	"fmt"
	"strings"

	"github.com/yourusername/quizgame-api/internal/domain/entity"
)

// Evaluator проверяет ответ пользователя на вопрос своего типа и строит
// данные для подсветки: UI не должен перевычислять правильные позиции.
type Evaluator interface {
	Check(ctx context.Context, quest *entity.QuestModel, selected []int, freeText string) (*entity.HighlightResult, error)
}

// AIChecker выносит проверку свободного ответа нейросетью за интерфейс
type AIChecker interface {
	IsAnswerCorrect(ctx context.Context, quest, trueAnswer, userAnswer string) (bool, error)
}

// Registry сопоставляет тип вопроса с проверщиком. Один поиск по таблице
// вместо каскада проверок типов.
type Registry struct {
	evaluators map[entity.QuestionType]Evaluator
}

// NewRegistry создает реестр со всеми известными типами вопросов
func NewRegistry(ai AIChecker) *Registry {
	enter := &enterEvaluator{}
	setMatch := &setMatchEvaluator{}
	return &Registry{
		evaluators: map[entity.QuestionType]Evaluator{
			entity.TypeSimple:    &simpleEvaluator{},
			entity.TypeEnter:     enter,
			entity.TypeEnterHint: enter,
			entity.TypeMulti:     setMatch,
			entity.TypeSelect:    setMatch,
			entity.TypeAIEnter:   &aiEvaluator{checker: ai},
		},
	}
}

// For возвращает проверщик для типа вопроса
func (r *Registry) For(questionType entity.QuestionType) (Evaluator, error) {
	evaluator, ok := r.evaluators[questionType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownQuestionType, questionType)
	}
	return evaluator, nil
}

// simpleEvaluator — одиночный выбор: верен единственный индекс TrueIndex
type simpleEvaluator struct{}

func (e *simpleEvaluator) Check(_ context.Context, quest *entity.QuestModel, selected []int, _ string) (*entity.HighlightResult, error) {
	result := &entity.HighlightResult{
		TrueIndex:       quest.TrueIndex,
		SelectedIndices: selected,
	}
	if len(selected) == 1 && selected[0] == quest.TrueIndex {
		result.Correct = true
	}
	return result, nil
}

// enterEvaluator — свободный ввод. Ответ сравнивается с каждым эталонным
// вариантом без учета регистра, лишних пробелов и «ё»/«е».
type enterEvaluator struct{}

func (e *enterEvaluator) Check(_ context.Context, quest *entity.QuestModel, _ []int, freeText string) (*entity.HighlightResult, error) {
	variants := quest.TrueVariants()
	result := &entity.HighlightResult{TrueIndex: -1}
	if len(variants) > 0 {
		result.TrueAnswer = variants[0]
	}

	normalized := normalizeInput(freeText)
	if normalized == "" {
		return result, nil
	}
	for _, variant := range variants {
		if normalizeInput(variant) == normalized {
			result.Correct = true
			break
		}
	}
	return result, nil
}

// setMatchEvaluator — выбор нескольких вариантов: множество выбранных
// индексов должно совпасть с множеством правильных
type setMatchEvaluator struct{}

func (e *setMatchEvaluator) Check(_ context.Context, quest *entity.QuestModel, selected []int, _ string) (*entity.HighlightResult, error) {
	result := &entity.HighlightResult{
		TrueIndex:       -1,
		TrueIndices:     quest.TrueIndices,
		SelectedIndices: selected,
	}
	result.Correct = sameIndexSet(selected, quest.TrueIndices)
	return result, nil
}

// aiEvaluator — свободный ввод, который оценивает нейросеть.
// Пустой ответ не отправляется на проверку.
type aiEvaluator struct {
	checker AIChecker
}

func (e *aiEvaluator) Check(ctx context.Context, quest *entity.QuestModel, _ []int, freeText string) (*entity.HighlightResult, error) {
	variants := quest.TrueVariants()
	result := &entity.HighlightResult{TrueIndex: -1}
	if len(variants) > 0 {
		result.TrueAnswer = variants[0]
	}

	if strings.TrimSpace(freeText) == "" {
		return result, nil
	}
	if e.checker == nil {
		return nil, fmt.Errorf("AI checker is not configured")
	}

	correct, err := e.checker.IsAnswerCorrect(ctx, quest.Quest, result.TrueAnswer, freeText)
	if err != nil {
		return nil, err
	}
	result.Correct = correct
	return result, nil
}

// normalizeInput приводит свободный ввод к сравнимому виду
func normalizeInput(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "ё", "е")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimRight(s, ".")
}

// sameIndexSet сравнивает два списка индексов как множества
func sameIndexSet(a, b []int) bool {
	if len(a) == 0 || len(a) != len(b) {
		return len(a) == 0 && len(b) == 0
	}
	set := make(map[int]struct{}, len(a))
	for _, idx := range a {
		set[idx] = struct{}{}
	}
	if len(set) != len(b) {
		return false
	}
	for _, idx := range b {
		if _, ok := set[idx]; !ok {
			return false
		}
	}
	return true
}
