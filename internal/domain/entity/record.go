package entity

import "time"

// Record представляет лучший результат пользователя для пары (тема, режим)
type Record struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index;uniqueIndex:idx_user_theme_mode" json:"user_id"`
	ThemeID      uint      `gorm:"not null;uniqueIndex:idx_user_theme_mode" json:"theme_id"`
	Mode         Mode      `gorm:"size:20;not null;uniqueIndex:idx_user_theme_mode" json:"mode"`
	Score        int       `gorm:"not null;default:0" json:"score"`
	TotalTimeSec int64     `gorm:"not null;default:0" json:"total_time_sec"` // Накапливается между сессиями
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Record) TableName() string {
	return "records"
}
