package entity

import "time"

// UserTerm хранит факт принятия пользователем конкретного термина.
// Строки никогда не перезаписываются: при повторной отправке согласий
// старые строки помечаются is_active = false, история накапливается.
type UserTerm struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	TermID     uint      `gorm:"column:terms_id;not null;index" json:"terms_id"`
	AcceptedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"accepted_at"`
	IsActive   bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`

	// TermUpdatedAt — снимок Term.UpdatedAt, замороженный в момент принятия.
	// Реконсилиация сравнивает текущий Term.UpdatedAt с этим снимком:
	// если термин был изменен позже, согласие считается устаревшим.
	TermUpdatedAt time.Time `gorm:"column:term_updated_at;not null" json:"term_updated_at"`

	Term Term `gorm:"foreignKey:TermID;references:ID" json:"term"`
}

// TableName определяет имя таблицы для GORM
func (UserTerm) TableName() string {
	return "user_terms"
}
