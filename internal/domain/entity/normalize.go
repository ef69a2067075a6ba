package entity

import "strings"

// Известные словари дихотомий. Если варианты вопроса в точности совпадают
// с одним из наборов, они приводятся к каноническому порядку.
var abVocabularies = [][2]string{
	{"А", "Б"},
	{"Да", "Нет"},
	{"Yes", "No"},
}

// Маркеры двухчастного текста вопроса ("Часть А ... Часть Б")
const (
	partAMarker = "А)"
	partBMarker = "Б)"
)

// normalizeABQuestion выполняет презентационную нормализацию А/Б-вопросов:
// варианты переупорядочиваются в канонической последовательности, а текст
// вопроса разбивается на два абзаца по границе маркера второй части.
// Если варианты не совпадают ни с одним словарем или маркеры отсутствуют,
// текст и варианты возвращаются без изменений — это штатный fallback,
// а не ошибка. Повторное применение не меняет результат.
func normalizeABQuestion(quest string, answers []string) (string, []string, bool) {
	vocabulary, ok := matchVocabulary(answers)
	if !ok {
		return quest, answers, false
	}

	normalized := []string{vocabulary[0], vocabulary[1]}
	return splitABQuest(quest), normalized, true
}

// matchVocabulary ищет словарь, с которым совпадает набор вариантов
func matchVocabulary(answers []string) ([2]string, bool) {
	if len(answers) != 2 {
		return [2]string{}, false
	}
	for _, vocab := range abVocabularies {
		if (answers[0] == vocab[0] && answers[1] == vocab[1]) ||
			(answers[0] == vocab[1] && answers[1] == vocab[0]) {
			return vocab, true
		}
	}
	return [2]string{}, false
}

// splitABQuest вставляет пустую строку перед частью «Б)». Если оба маркера
// не найдены или идут в неожиданном порядке, текст возвращается как есть.
func splitABQuest(quest string) string {
	idxA := strings.Index(quest, partAMarker)
	idxB := strings.LastIndex(quest, partBMarker)
	if idxA < 0 || idxB < 0 || idxB <= idxA {
		return quest
	}

	head := strings.TrimRight(quest[:idxB], " \t\n")
	return head + "\n\n" + quest[idxB:]
}
