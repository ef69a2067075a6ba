package entity

// Mode определяет режим игровой сессии
type Mode string

const (
	ModeNone     Mode = "none"
	ModeArcade   Mode = "arcade"
	ModeTrain    Mode = "train"
	ModeError    Mode = "error"
	ModeFavorite Mode = "favorite"
)

// Valid проверяет, является ли режим известным
func (m Mode) Valid() bool {
	switch m {
	case ModeNone, ModeArcade, ModeTrain, ModeError, ModeFavorite:
		return true
	}
	return false
}

// GameSessionPayload содержит входные параметры для запуска сессии
type GameSessionPayload struct {
	Mode      Mode `json:"mode"`
	ThemeID   uint `json:"theme_id"`
	Section   int  `json:"section"`
	OldRecord int  `json:"old_record"`
}

// StepInfo — снимок управляющего состояния сессии, возвращаемый вместе с вопросом
type StepInfo struct {
	Quest     *QuestModel `json:"quest"`
	Mode      Mode        `json:"mode"`
	Condition int         `json:"condition"`
	Score     int         `json:"score"`
	Step      int         `json:"step"`
	Total     int         `json:"total"`
}

// GameEndPayload — итог завершенной сессии
type GameEndPayload struct {
	Mode       Mode   `json:"mode"`
	ThemeID    uint   `json:"theme_id"`
	OldRecord  int    `json:"old_record"`
	Score      int    `json:"score"`
	Count      int    `json:"count"`
	ErrorIDs   []uint `json:"error_ids"`
	RewardUsed bool   `json:"reward_used"`
}

// HighlightResult описывает результат проверки ответа для подсветки в UI.
// Клиент не должен самостоятельно перевычислять правильные позиции.
type HighlightResult struct {
	Correct         bool   `json:"correct"`
	TrueIndex       int    `json:"true_index"`
	TrueIndices     []int  `json:"true_indices,omitempty"`
	SelectedIndices []int  `json:"selected_indices,omitempty"`
	TrueAnswer      string `json:"true_answer,omitempty"`
}
