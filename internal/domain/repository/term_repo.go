package repository

import (
	"github.com/yourusername/consent-api/internal/domain/entity"
)

// TermRepository определяет методы для работы с каталогом терминов
type TermRepository interface {
	// PublishBatch в одной транзакции деактивирует текущее активное
	// поколение терминов и вставляет новое с is_active = true.
	PublishBatch(terms []*entity.Term) error

	// GetLatestVersion возвращает версию самого свежего термина.
	GetLatestVersion() (string, error)

	// GetActiveByVersion возвращает активные термины указанной версии,
	// отсортированные по времени создания по возрастанию.
	GetActiveByVersion(version string) ([]entity.Term, error)

	// GetAll возвращает все термины (включая неактивные) по возрастанию createdAt.
	GetAll() ([]entity.Term, error)

	// GetByIDs возвращает термины с указанными идентификаторами.
	GetByIDs(ids []uint) ([]entity.Term, error)
}
