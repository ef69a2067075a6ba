package entity

import (
	"math/rand"
	"strings"
)

// QuestionType определяет тип вопроса и, соответственно, способ проверки ответа
type QuestionType string

const (
	// TypeSimple — одиночный выбор из перемешанных вариантов
	TypeSimple QuestionType = "simple"
	// TypeEnter — свободный ввод текста
	TypeEnter QuestionType = "enter"
	// TypeEnterHint — свободный ввод с вариантами-подсказками
	TypeEnterHint QuestionType = "enter_hint"
	// TypeMulti — выбор нескольких вариантов из перемешанного списка
	TypeMulti QuestionType = "multi"
	// TypeSelect — выбор верных утверждений, порядок фиксирован
	TypeSelect QuestionType = "select"
	// TypeAIEnter — свободный ввод, проверяемый нейросетью
	TypeAIEnter QuestionType = "ai_enter"
)

// answerSeparator разделяет эталонные варианты в TrueAnswer
// (несколько допустимых написаний для ввода, несколько верных опций для multi)
const answerSeparator = ";"

// Question представляет вопрос викторины, как он хранится в базе
type Question struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	ThemeID    uint         `gorm:"not null;index:idx_theme_section" json:"theme_id"`
	Section    int          `gorm:"not null;default:1;index:idx_theme_section" json:"section"`
	Type       QuestionType `gorm:"size:20;not null;default:'simple'" json:"type"`
	Quest      string       `gorm:"size:2000;not null" json:"quest"`
	Image      string       `gorm:"size:255;not null;default:''" json:"image,omitempty"`
	TrueAnswer string       `gorm:"size:700;not null" json:"-"` // Скрыто от клиента
	Answer2    string       `gorm:"size:500;not null;default:''" json:"-"`
	Answer3    string       `gorm:"size:500;not null;default:''" json:"-"`
	Answer4    string       `gorm:"size:500;not null;default:''" json:"-"`
	Answer5    string       `gorm:"size:500;not null;default:''" json:"-"`
	Answer6    string       `gorm:"size:500;not null;default:''" json:"-"`
	Answer7    string       `gorm:"size:500;not null;default:''" json:"-"`
	Answer8    string       `gorm:"size:500;not null;default:''" json:"-"`
	Complexity int          `gorm:"not null;default:1" json:"complexity"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// Extras возвращает непустые дополнительные варианты ответа (дистракторы)
func (q *Question) Extras() []string {
	extras := make([]string, 0, 7)
	for _, a := range []string{q.Answer2, q.Answer3, q.Answer4, q.Answer5, q.Answer6, q.Answer7, q.Answer8} {
		if a != "" {
			extras = append(extras, a)
		}
	}
	return extras
}

// TrueVariants возвращает список эталонных ответов из TrueAnswer
func (q *Question) TrueVariants() []string {
	parts := strings.Split(q.TrueAnswer, answerSeparator)
	variants := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			variants = append(variants, p)
		}
	}
	return variants
}

// QuestModel — игровая модель вопроса, отдаваемая клиенту.
// Позиции правильных ответов вычислены один раз при построении.
type QuestModel struct {
	ID          uint         `json:"id"`
	ThemeID     uint         `json:"theme_id"`
	Section     int          `json:"section"`
	Type        QuestionType `json:"type"`
	Quest       string       `json:"quest"`
	Image       string       `json:"image,omitempty"`
	Answers     []string     `json:"answers,omitempty"`
	Complexity  int          `json:"complexity"`
	TrueIndex   int          `json:"-"`
	TrueIndices []int        `json:"-"`
	TrueAnswer  string       `json:"-"`
}

// TrueVariants возвращает список эталонных ответов из TrueAnswer
func (m *QuestModel) TrueVariants() []string {
	parts := strings.Split(m.TrueAnswer, answerSeparator)
	variants := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			variants = append(variants, p)
		}
	}
	return variants
}

// GetQuestModel строит игровую модель вопроса: нормализует А/Б-вопросы,
// собирает список вариантов, перемешивает его и запоминает позиции
// правильных ответов. Нормализация выполняется ДО перемешивания, чтобы
// закешированные индексы оставались корректными.
func (q *Question) GetQuestModel() *QuestModel {
	model := &QuestModel{
		ID:         q.ID,
		ThemeID:    q.ThemeID,
		Section:    q.Section,
		Type:       q.Type,
		Quest:      q.Quest,
		Image:      q.Image,
		Complexity: q.Complexity,
		TrueIndex:  -1,
		TrueAnswer: q.TrueAnswer,
	}

	switch q.Type {
	case TypeSimple:
		answers := append([]string{q.TrueAnswer}, q.Extras()...)
		quest, answers, normalized := normalizeABQuestion(q.Quest, answers)
		model.Quest = quest
		if !normalized {
			shuffleStrings(answers)
		}
		model.Answers = answers
		model.TrueIndex = indexOf(answers, q.TrueAnswer)

	case TypeMulti:
		answers := append(q.TrueVariants(), q.Extras()...)
		shuffleStrings(answers)
		model.Answers = answers
		for _, variant := range q.TrueVariants() {
			if idx := indexOf(answers, variant); idx >= 0 {
				model.TrueIndices = append(model.TrueIndices, idx)
			}
		}

	case TypeSelect:
		// Утверждения показываются в исходном порядке, TrueAnswer хранит
		// номера верных позиций ("13" — первое и третье утверждения верны)
		model.Answers = q.Extras()
		for _, r := range q.TrueAnswer {
			if r >= '1' && r <= '8' {
				idx := int(r - '1')
				if idx < len(model.Answers) {
					model.TrueIndices = append(model.TrueIndices, idx)
				}
			}
		}

	case TypeEnterHint:
		// Подсказки-варианты без гарантий порядка
		answers := append([]string{}, q.Extras()...)
		shuffleStrings(answers)
		model.Answers = answers

	case TypeEnter, TypeAIEnter:
		// Вариантов нет, клиент показывает поле ввода
	}

	return model
}

func shuffleStrings(s []string) {
	rand.Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}

func indexOf(s []string, value string) int {
	for i, v := range s {
		if v == value {
			return i
		}
	}
	return -1
}
