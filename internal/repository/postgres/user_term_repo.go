package postgres

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/consent-api/internal/domain/entity"
)

// UserTermRepo реализует repository.UserTermRepository
type UserTermRepo struct {
	db *gorm.DB
}

// NewUserTermRepo создает новый репозиторий согласий
func NewUserTermRepo(db *gorm.DB) *UserTermRepo {
	return &UserTermRepo{db: db}
}

// ReplaceActive заменяет активный набор согласий пользователя.
// Деактивация старых строк должна завершиться до вставки новых, иначе
// конкурентный читатель увидит два активных поколения. Обе записи идут в
// одной транзакции, а строки пользователя берутся под FOR UPDATE, чтобы
// два конкурентных вызова для одного пользователя сериализовались.
func (r *UserTermRepo) ReplaceActive(userID uint, acceptances []*entity.UserTerm) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var current []entity.UserTerm
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND is_active = ?", userID, true).
			Find(&current).Error; err != nil {
			return fmt.Errorf("failed to lock active acceptances: %w", err)
		}

		if err := tx.Model(&entity.UserTerm{}).
			Where("user_id = ? AND is_active = ?", userID, true).
			Update("is_active", false).Error; err != nil {
			return fmt.Errorf("failed to deactivate acceptances: %w", err)
		}

		for _, acceptance := range acceptances {
			acceptance.UserID = userID
			acceptance.IsActive = true
			if err := tx.Omit("Term").Create(acceptance).Error; err != nil {
				return fmt.Errorf("failed to insert acceptance: %w", err)
			}
		}
		return nil
	})
}

// GetActiveByUserID возвращает активные согласия пользователя вместе с терминами
func (r *UserTermRepo) GetActiveByUserID(userID uint) ([]entity.UserTerm, error) {
	var acceptances []entity.UserTerm
	err := r.db.Preload("Term").
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("accepted_at ASC").
		Find(&acceptances).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get active acceptances: %w", err)
	}
	return acceptances, nil
}

// GetHistoryByUserID возвращает все согласия пользователя (аудиторский след)
func (r *UserTermRepo) GetHistoryByUserID(userID uint) ([]entity.UserTerm, error) {
	var acceptances []entity.UserTerm
	err := r.db.Preload("Term").
		Where("user_id = ?", userID).
		Order("accepted_at ASC").
		Find(&acceptances).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get acceptance history: %w", err)
	}
	return acceptances, nil
}

// GetHistory возвращает весь реестр согласий
func (r *UserTermRepo) GetHistory() ([]entity.UserTerm, error) {
	var acceptances []entity.UserTerm
	err := r.db.Preload("Term").
		Order("user_id ASC, accepted_at ASC").
		Find(&acceptances).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get acceptance ledger: %w", err)
	}
	return acceptances, nil
}

// DeleteByUserID жестко удаляет все согласия пользователя
func (r *UserTermRepo) DeleteByUserID(userID uint) error {
	if err := r.db.Where("user_id = ?", userID).Delete(&entity.UserTerm{}).Error; err != nil {
		return fmt.Errorf("failed to delete acceptances: %w", err)
	}
	return nil
}
