package entity

import "time"

// Term представляет один пункт опубликованной версии условий (LGPD).
// Правки текста всегда создают новую строку; updatedAt меняется только при
// мутации строки на месте (например, деактивации) и служит сигналом
// "термин изменился" для проверки соответствия.
type Term struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Version   string    `gorm:"size:20;not null;index" json:"version"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Mandatory bool      `gorm:"not null;default:false" json:"mandatory"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true;index" json:"isActive"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Term) TableName() string {
	return "terms"
}
