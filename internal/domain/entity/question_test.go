package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetQuestModel_Simple(t *testing.T) {
	q := &Question{
		ID:         1,
		Type:       TypeSimple,
		Quest:      "Столица Франции?",
		TrueAnswer: "Париж",
		Answer2:    "Лион",
		Answer3:    "Марсель",
	}

	model := q.GetQuestModel()

	require.Len(t, model.Answers, 3)
	require.GreaterOrEqual(t, model.TrueIndex, 0, "Позиция верного ответа должна быть найдена")
	assert.Equal(t, "Париж", model.Answers[model.TrueIndex], "TrueIndex должен указывать на верный ответ")
	assert.ElementsMatch(t, []string{"Париж", "Лион", "Марсель"}, model.Answers)
}

func TestGetQuestModel_SimpleABNotShuffled(t *testing.T) {
	q := &Question{
		ID:         2,
		Type:       TypeSimple,
		Quest:      "А) Киты — рыбы Б) Киты — млекопитающие",
		TrueAnswer: "Б",
		Answer2:    "А",
	}

	// Нормализованный вопрос не перемешивается, порядок детерминирован
	for i := 0; i < 20; i++ {
		model := q.GetQuestModel()
		require.Equal(t, []string{"А", "Б"}, model.Answers)
		assert.Equal(t, 1, model.TrueIndex)
		assert.Equal(t, "А) Киты — рыбы\n\nБ) Киты — млекопитающие", model.Quest)
	}
}

func TestGetQuestModel_Multi(t *testing.T) {
	q := &Question{
		ID:         3,
		Type:       TypeMulti,
		Quest:      "Какие планеты — газовые гиганты?",
		TrueAnswer: "Юпитер;Сатурн",
		Answer2:    "Марс",
		Answer3:    "Венера",
	}

	model := q.GetQuestModel()

	require.Len(t, model.Answers, 4)
	require.Len(t, model.TrueIndices, 2)
	got := make([]string, 0, len(model.TrueIndices))
	for _, idx := range model.TrueIndices {
		require.Less(t, idx, len(model.Answers))
		got = append(got, model.Answers[idx])
	}
	assert.ElementsMatch(t, []string{"Юпитер", "Сатурн"}, got, "Индексы должны указывать на эталонные варианты")
}

func TestGetQuestModel_SelectKeepsOrder(t *testing.T) {
	q := &Question{
		ID:         4,
		Type:       TypeSelect,
		Quest:      "Отметьте верные утверждения",
		TrueAnswer: "13",
		Answer2:    "Вода кипит при 100 градусах",
		Answer3:    "Солнце вращается вокруг Земли",
		Answer4:    "Звук не распространяется в вакууме",
	}

	model := q.GetQuestModel()

	// Утверждения не перемешиваются
	assert.Equal(t, []string{
		"Вода кипит при 100 градусах",
		"Солнце вращается вокруг Земли",
		"Звук не распространяется в вакууме",
	}, model.Answers)
	assert.Equal(t, []int{0, 2}, model.TrueIndices)
}

func TestGetQuestModel_SelectIgnoresOutOfRangeDigits(t *testing.T) {
	q := &Question{
		ID:         5,
		Type:       TypeSelect,
		TrueAnswer: "17",
		Answer2:    "единственное утверждение",
	}

	model := q.GetQuestModel()

	assert.Equal(t, []int{0}, model.TrueIndices, "Номера за пределами списка должны игнорироваться")
}

func TestGetQuestModel_EnterHasNoAnswers(t *testing.T) {
	for _, typ := range []QuestionType{TypeEnter, TypeAIEnter} {
		q := &Question{ID: 6, Type: typ, Quest: "Назовите автора", TrueAnswer: "Пушкин"}

		model := q.GetQuestModel()

		assert.Empty(t, model.Answers, "Для типа %s клиент показывает поле ввода", typ)
		assert.Equal(t, -1, model.TrueIndex)
	}
}

func TestGetQuestModel_EnterHintShowsExtras(t *testing.T) {
	q := &Question{
		ID:         7,
		Type:       TypeEnterHint,
		TrueAnswer: "Лермонтов",
		Answer2:    "Лермонтов",
		Answer3:    "Пушкин",
		Answer4:    "Гоголь",
	}

	model := q.GetQuestModel()

	assert.ElementsMatch(t, []string{"Лермонтов", "Пушкин", "Гоголь"}, model.Answers)
}

func TestTrueVariants(t *testing.T) {
	q := &Question{TrueAnswer: "Москва; москва ;Moscow;"}

	assert.Equal(t, []string{"Москва", "москва", "Moscow"}, q.TrueVariants(), "Варианты обрезаются и пустые отбрасываются")

	m := &QuestModel{TrueAnswer: "один;два"}
	assert.Equal(t, []string{"один", "два"}, m.TrueVariants())
}

func TestExtrasSkipsEmptyAnswers(t *testing.T) {
	q := &Question{Answer2: "a", Answer4: "b", Answer8: "c"}

	assert.Equal(t, []string{"a", "b", "c"}, q.Extras())
}
