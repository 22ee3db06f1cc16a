package repository

import (
	"github.com/yourusername/consent-api/internal/domain/entity"
)

// UserTermRepository определяет методы для работы с реестром согласий
type UserTermRepository interface {
	// ReplaceActive в одной транзакции помечает все активные согласия
	// пользователя неактивными и вставляет новые активные строки.
	// Блокирует строки пользователя, чтобы сериализовать конкурентные вызовы.
	ReplaceActive(userID uint, acceptances []*entity.UserTerm) error

	// GetActiveByUserID возвращает активные согласия пользователя вместе
	// с терминами, по возрастанию acceptedAt.
	GetActiveByUserID(userID uint) ([]entity.UserTerm, error)

	// GetHistoryByUserID возвращает все согласия пользователя (активные и
	// неактивные) вместе с терминами — аудиторский след.
	GetHistoryByUserID(userID uint) ([]entity.UserTerm, error)

	// GetHistory возвращает весь реестр согласий (для административного экспорта).
	GetHistory() ([]entity.UserTerm, error)

	// DeleteByUserID жестко удаляет все согласия пользователя.
	// Используется только при удалении аккаунта.
	DeleteByUserID(userID uint) error
}
