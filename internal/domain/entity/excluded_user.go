package entity

import "time"

// ExcludedUser помечает userId как удаленный. Таблица живет в отдельной базе
// и намеренно не имеет внешнего ключа на users: запись должна пережить
// удаление самой строки пользователя.
type ExcludedUser struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (ExcludedUser) TableName() string {
	return "excluded_users"
}
