package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/consent-api/internal/domain/entity"
)

// ExcludedUserRepo реализует repository.ExcludedUserRepository.
// Работает с отдельным подключением к базе исключенных.
type ExcludedUserRepo struct {
	db *gorm.DB
}

// NewExcludedUserRepo создает новый репозиторий реестра исключенных
func NewExcludedUserRepo(db *gorm.DB) *ExcludedUserRepo {
	return &ExcludedUserRepo{db: db}
}

// IsExcluded проверяет наличие userId в реестре
func (r *ExcludedUserRepo) IsExcluded(userID uint) (bool, error) {
	var record entity.ExcludedUser
	err := r.db.Where("user_id = ?", userID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check exclusion: %w", err)
	}
	return true, nil
}

// MarkExcluded идемпотентно добавляет userId в реестр.
// Дубликат определяется предварительным поиском, а не ошибкой
// уникальности: повторное удаление — no-op, а не сбой.
func (r *ExcludedUserRepo) MarkExcluded(userID uint) error {
	excluded, err := r.IsExcluded(userID)
	if err != nil {
		return err
	}
	if excluded {
		return nil
	}

	if err := r.db.Create(&entity.ExcludedUser{UserID: userID}).Error; err != nil {
		return fmt.Errorf("failed to mark user %d excluded: %w", userID, err)
	}
	return nil
}
