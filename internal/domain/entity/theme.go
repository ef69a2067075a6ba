package entity

// Theme представляет тему викторины (набор вопросов, разбитый на секции)
type Theme struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:200;not null" json:"name"`
	Category string `gorm:"size:100;not null;default:''" json:"category"`
	OrderNum int    `gorm:"not null;default:0" json:"order_num"`
}

// TableName определяет имя таблицы для GORM
func (Theme) TableName() string {
	return "themes"
}
