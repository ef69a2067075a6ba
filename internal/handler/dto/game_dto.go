package dto

import "github.com/yourusername/quizgame-api/internal/domain/entity"

// Статусы игровых ответов. Сигналы окончания сессии приходят клиенту
// обычным JSON, а не кодами ошибок.
const (
	StatusQuestion      = "question"
	StatusRewardOffered = "reward_offered"
	StatusExhausted     = "exhausted"
)

// StepResponse — очередной шаг сессии либо сигнал ее окончания
type StepResponse struct {
	Status    string             `json:"status"`
	Quest     *entity.QuestModel `json:"quest,omitempty"`
	Condition int                `json:"condition"`
	Score     int                `json:"score"`
	Step      int                `json:"step"`
	Total     int                `json:"total"`
}

// NewStepResponse создает ответ с очередным вопросом
func NewStepResponse(step *entity.StepInfo) StepResponse {
	return StepResponse{
		Status:    StatusQuestion,
		Quest:     step.Quest,
		Condition: step.Condition,
		Score:     step.Score,
		Step:      step.Step,
		Total:     step.Total,
	}
}

// AnswerResponse — результат проверки ответа с данными для подсветки
type AnswerResponse struct {
	Correct         bool   `json:"correct"`
	TrueIndex       int    `json:"true_index"`
	TrueIndices     []int  `json:"true_indices,omitempty"`
	SelectedIndices []int  `json:"selected_indices,omitempty"`
	TrueAnswer      string `json:"true_answer,omitempty"`
}

// NewAnswerResponse создает ответ проверки
func NewAnswerResponse(result *entity.HighlightResult) AnswerResponse {
	return AnswerResponse{
		Correct:         result.Correct,
		TrueIndex:       result.TrueIndex,
		TrueIndices:     result.TrueIndices,
		SelectedIndices: result.SelectedIndices,
		TrueAnswer:      result.TrueAnswer,
	}
}

// GameEndResponse — итог завершенной сессии
type GameEndResponse struct {
	Mode       entity.Mode `json:"mode"`
	ThemeID    uint        `json:"theme_id"`
	OldRecord  int         `json:"old_record"`
	Score      int         `json:"score"`
	Count      int         `json:"count"`
	ErrorIDs   []uint      `json:"error_ids"`
	RewardUsed bool        `json:"reward_used"`
}

// NewGameEndResponse создает итоговый ответ
func NewGameEndResponse(payload *entity.GameEndPayload) GameEndResponse {
	errorIDs := payload.ErrorIDs
	if errorIDs == nil {
		errorIDs = []uint{}
	}
	return GameEndResponse{
		Mode:       payload.Mode,
		ThemeID:    payload.ThemeID,
		OldRecord:  payload.OldRecord,
		Score:      payload.Score,
		Count:      payload.Count,
		ErrorIDs:   errorIDs,
		RewardUsed: payload.RewardUsed,
	}
}
