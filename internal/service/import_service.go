package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quizgame-api/internal/domain/entity"
	"github.com/yourusername/quizgame-api/internal/domain/repository"
)

// Размер пакета при массовой вставке вопросов
const importBatchSize = 200

// Колонки листа импорта в ожидаемом порядке
var importColumns = []string{
	"theme_id", "section", "type", "quest", "true_answer",
	"answer2", "answer3", "answer4", "answer5", "answer6", "answer7", "answer8",
	"complexity", "image",
}

// ImportService загружает вопросы из xlsx-файлов
type ImportService struct {
	questionRepo repository.QuestionRepository
	themeRepo    repository.ThemeRepository
}

// NewImportService создает новый сервис импорта
func NewImportService(questionRepo repository.QuestionRepository, themeRepo repository.ThemeRepository) *ImportService {
	return &ImportService{
		questionRepo: questionRepo,
		themeRepo:    themeRepo,
	}
}

// ImportFromFile читает вопросы из первого листа xlsx-файла и сохраняет их
// пакетами. Первая строка листа — заголовок, порядок колонок фиксирован.
// Возвращает число импортированных вопросов.
func (s *ImportService) ImportFromFile(ctx context.Context, path string) (int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open xlsx file %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return 0, fmt.Errorf("xlsx file %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return 0, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return 0, nil
	}

	imported := 0
	knownThemes := make(map[uint]bool)
	batch := make([]entity.Question, 0, importBatchSize)
	for i, row := range rows[1:] {
		question, err := parseQuestionRow(row)
		if err != nil {
			log.Printf("[ImportService] Строка %d пропущена: %v", i+2, err)
			continue
		}

		// Вопросы несуществующих тем не импортируем
		exists, ok := knownThemes[question.ThemeID]
		if !ok {
			_, err := s.themeRepo.GetByID(ctx, question.ThemeID)
			exists = err == nil
			knownThemes[question.ThemeID] = exists
		}
		if !exists {
			log.Printf("[ImportService] Строка %d пропущена: тема #%d не найдена", i+2, question.ThemeID)
			continue
		}

		batch = append(batch, *question)
		if len(batch) >= importBatchSize {
			if err := s.questionRepo.CreateBatch(ctx, batch); err != nil {
				return imported, fmt.Errorf("failed to save batch: %w", err)
			}
			imported += len(batch)
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := s.questionRepo.CreateBatch(ctx, batch); err != nil {
			return imported, fmt.Errorf("failed to save batch: %w", err)
		}
		imported += len(batch)
	}

	log.Printf("[ImportService] Импортировано вопросов: %d (файл %s)", imported, path)
	return imported, nil
}

// parseQuestionRow превращает строку листа в вопрос
func parseQuestionRow(row []string) (*entity.Question, error) {
	cell := func(idx int) string {
		if idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	themeID, err := strconv.ParseUint(cell(0), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("некорректный theme_id %q", cell(0))
	}
	section, err := strconv.Atoi(cell(1))
	if err != nil {
		return nil, fmt.Errorf("некорректная секция %q", cell(1))
	}

	questionType := entity.QuestionType(cell(2))
	switch questionType {
	case entity.TypeSimple, entity.TypeEnter, entity.TypeEnterHint,
		entity.TypeMulti, entity.TypeSelect, entity.TypeAIEnter:
	default:
		return nil, fmt.Errorf("неизвестный тип вопроса %q", cell(2))
	}

	quest := cell(3)
	trueAnswer := cell(4)
	if quest == "" || trueAnswer == "" {
		return nil, fmt.Errorf("пустой текст вопроса или эталонный ответ")
	}

	complexity := 1
	if raw := cell(12); raw != "" {
		complexity, err = strconv.Atoi(raw)
		if err != nil || complexity < 1 {
			return nil, fmt.Errorf("некорректная сложность %q", raw)
		}
	}

	return &entity.Question{
		ThemeID:    uint(themeID),
		Section:    section,
		Type:       questionType,
		Quest:      quest,
		TrueAnswer: trueAnswer,
		Answer2:    cell(5),
		Answer3:    cell(6),
		Answer4:    cell(7),
		Answer5:    cell(8),
		Answer6:    cell(9),
		Answer7:    cell(10),
		Answer8:    cell(11),
		Complexity: complexity,
		Image:      cell(13),
	}, nil
}
