package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeABQuestion_CanonicalOrder(t *testing.T) {
	quest := "А) Земля плоская Б) Земля круглая"

	normalizedQuest, answers, ok := normalizeABQuestion(quest, []string{"Б", "А"})

	assert.True(t, ok, "Словарь А/Б должен распознаваться в любом порядке")
	assert.Equal(t, []string{"А", "Б"}, answers, "Варианты должны приводиться к каноническому порядку")
	assert.Equal(t, "А) Земля плоская\n\nБ) Земля круглая", normalizedQuest)
}

func TestNormalizeABQuestion_AllVocabularies(t *testing.T) {
	cases := []struct {
		answers []string
		want    []string
	}{
		{[]string{"А", "Б"}, []string{"А", "Б"}},
		{[]string{"Нет", "Да"}, []string{"Да", "Нет"}},
		{[]string{"No", "Yes"}, []string{"Yes", "No"}},
	}

	for _, tc := range cases {
		_, answers, ok := normalizeABQuestion("вопрос", tc.answers)
		assert.True(t, ok, "Варианты %v должны распознаваться", tc.answers)
		assert.Equal(t, tc.want, answers)
	}
}

func TestNormalizeABQuestion_UnknownVocabularyPassesThrough(t *testing.T) {
	quest := "Какой газ преобладает в атмосфере?"
	original := []string{"Азот", "Кислород"}

	normalizedQuest, answers, ok := normalizeABQuestion(quest, original)

	assert.False(t, ok, "Незнакомые варианты не нормализуются")
	assert.Equal(t, quest, normalizedQuest)
	assert.Equal(t, original, answers)
}

func TestNormalizeABQuestion_Idempotent(t *testing.T) {
	quest := "А) Первое утверждение  Б) Второе утверждение"

	once, answers, ok := normalizeABQuestion(quest, []string{"А", "Б"})
	assert.True(t, ok)

	twice, answers2, ok := normalizeABQuestion(once, answers)
	assert.True(t, ok)
	assert.Equal(t, once, twice, "Повторная нормализация не должна менять текст")
	assert.Equal(t, answers, answers2)
}

func TestSplitABQuest_MissingMarkers(t *testing.T) {
	// Без маркеров текст возвращается как есть
	assert.Equal(t, "просто вопрос", splitABQuest("просто вопрос"))

	// Маркер Б) раньше А) — неожиданный порядок, текст не трогаем
	weird := "Б) вторая часть А) первая часть"
	assert.Equal(t, weird, splitABQuest(weird))
}
