package entity

import "time"

// SectionProgress хранит id вопроса, верно отвеченного в аркадном режиме.
// Набор таких строк по секции определяет доступность следующей секции.
type SectionProgress struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index;uniqueIndex:idx_section_user_question" json:"user_id"`
	QuestionID uint      `gorm:"not null;uniqueIndex:idx_section_user_question" json:"question_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (SectionProgress) TableName() string {
	return "section_progress"
}

// TrainProgress хранит id вопроса, пройденного в режиме тренировки
type TrainProgress struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index;uniqueIndex:idx_train_user_question" json:"user_id"`
	QuestionID uint      `gorm:"not null;uniqueIndex:idx_train_user_question" json:"question_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (TrainProgress) TableName() string {
	return "train_progress"
}

// ErrorItem хранит id вопроса, на который пользователь ответил неверно
type ErrorItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index;uniqueIndex:idx_error_user_question" json:"user_id"`
	QuestionID uint      `gorm:"not null;uniqueIndex:idx_error_user_question" json:"question_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (ErrorItem) TableName() string {
	return "error_items"
}

// Favorite хранит id вопроса, отмеченного пользователем как избранный
type Favorite struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index;uniqueIndex:idx_favorite_user_question" json:"user_id"`
	QuestionID uint      `gorm:"not null;uniqueIndex:idx_favorite_user_question" json:"question_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Favorite) TableName() string {
	return "favorites"
}
