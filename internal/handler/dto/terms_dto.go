package dto

import "time"

// PublishTermRequest — один пункт тела POST /terms/cadastrartermos.
// Mandatory — указатель: отсутствующий флаг отличим от false и дает 400.
type PublishTermRequest struct {
	Version   string `json:"version"`
	Content   string `json:"content"`
	Mandatory *bool  `json:"mandatory"`
}

// AcceptanceHistoryDTO — строка аудиторского следа в GET /terms/termos-aceitos
type AcceptanceHistoryDTO struct {
	TermID     uint      `json:"terms_id"`
	Content    string    `json:"content"`
	Version    string    `json:"version"`
	Mandatory  bool      `json:"mandatory"`
	AcceptedAt time.Time `json:"accepted_at"`
	IsActive   bool      `json:"is_active"`
}
