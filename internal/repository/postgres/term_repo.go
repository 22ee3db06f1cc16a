package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/consent-api/internal/domain/entity"
	apperrors "github.com/yourusername/consent-api/internal/pkg/errors"
)

// TermRepo реализует repository.TermRepository
type TermRepo struct {
	db *gorm.DB
}

// NewTermRepo создает новый репозиторий терминов
func NewTermRepo(db *gorm.DB) *TermRepo {
	return &TermRepo{db: db}
}

// PublishBatch публикует новое поколение терминов.
// Деактивация старого поколения и вставка нового выполняются в одной
// транзакции: в любой момент существует ровно одно активное поколение.
func (r *TermRepo) PublishBatch(terms []*entity.Term) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Одним апдейтом по предикату is_active гасим текущее поколение.
		// Updates также обновит updated_at деактивированных строк — это и
		// есть сигнал "термин изменился" для реконсилиации согласий.
		if err := tx.Model(&entity.Term{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return fmt.Errorf("failed to deactivate current terms: %w", err)
		}

		for _, term := range terms {
			term.IsActive = true
			if err := tx.Create(term).Error; err != nil {
				return fmt.Errorf("failed to insert term: %w", err)
			}
		}
		return nil
	})
}

// GetLatestVersion возвращает версию самого свежего термина
func (r *TermRepo) GetLatestVersion() (string, error) {
	var term entity.Term
	err := r.db.Order("created_at DESC").First(&term).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrNotFound
		}
		return "", err
	}
	return term.Version, nil
}

// GetActiveByVersion возвращает активные термины указанной версии
func (r *TermRepo) GetActiveByVersion(version string) ([]entity.Term, error) {
	var terms []entity.Term
	err := r.db.
		Where("version = ? AND is_active = ?", version, true).
		Order("created_at ASC").
		Find(&terms).Error
	if err != nil {
		return nil, err
	}
	return terms, nil
}

// GetAll возвращает все термины по возрастанию времени создания
func (r *TermRepo) GetAll() ([]entity.Term, error) {
	var terms []entity.Term
	if err := r.db.Order("created_at ASC").Find(&terms).Error; err != nil {
		return nil, err
	}
	return terms, nil
}

// GetByIDs возвращает термины с указанными идентификаторами
func (r *TermRepo) GetByIDs(ids []uint) ([]entity.Term, error) {
	var terms []entity.Term
	if err := r.db.Where("id IN ?", ids).Find(&terms).Error; err != nil {
		return nil, err
	}
	return terms, nil
}
