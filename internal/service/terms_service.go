package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/consent-api/internal/domain/entity"
	"github.com/yourusername/consent-api/internal/domain/repository"
	apperrors "github.com/yourusername/consent-api/internal/pkg/errors"
)

// PublishTermInput — один пункт новой версии условий.
// Mandatory — указатель, чтобы отличать отсутствующий флаг от false.
type PublishTermInput struct {
	Version   string
	Content   string
	Mandatory *bool
}

// TermsService управляет каталогом терминов: публикует новые поколения
// и отдает активную выборку.
type TermsService struct {
	termRepo repository.TermRepository
}

// NewTermsService создает новый сервис каталога терминов
func NewTermsService(termRepo repository.TermRepository) (*TermsService, error) {
	if termRepo == nil {
		return nil, fmt.Errorf("TermRepository is required for TermsService")
	}
	return &TermsService{termRepo: termRepo}, nil
}

// PublishBatch публикует новое поколение терминов, атомарно деактивируя
// прежнее активное поколение. Исторические строки не удаляются.
func (s *TermsService) PublishBatch(entries []PublishTermInput) ([]entity.Term, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: terms batch must not be empty", apperrors.ErrValidation)
	}

	terms := make([]*entity.Term, 0, len(entries))
	for i, entry := range entries {
		if strings.TrimSpace(entry.Version) == "" {
			return nil, fmt.Errorf("%w: entry %d is missing version", apperrors.ErrValidation, i)
		}
		if strings.TrimSpace(entry.Content) == "" {
			return nil, fmt.Errorf("%w: entry %d is missing content", apperrors.ErrValidation, i)
		}
		if entry.Mandatory == nil {
			return nil, fmt.Errorf("%w: entry %d is missing mandatory flag", apperrors.ErrValidation, i)
		}
		terms = append(terms, &entity.Term{
			Version:   entry.Version,
			Content:   entry.Content,
			Mandatory: *entry.Mandatory,
			IsActive:  true,
		})
	}

	if err := s.termRepo.PublishBatch(terms); err != nil {
		return nil, fmt.Errorf("failed to publish terms batch: %w", err)
	}

	published := make([]entity.Term, len(terms))
	for i, term := range terms {
		published[i] = *term
	}

	log.Printf("[TermsService] Опубликовано поколение из %d терминов (версия %s)", len(published), published[0].Version)
	return published, nil
}

// GetActiveLatestVersion возвращает активные термины самой свежей версии.
// Возвращает ErrNotFound при пустом каталоге.
func (s *TermsService) GetActiveLatestVersion() ([]entity.Term, error) {
	version, err := s.termRepo.GetLatestVersion()
	if err != nil {
		return nil, err
	}
	return s.termRepo.GetActiveByVersion(version)
}

// GetAll возвращает все термины, включая неактивные поколения
func (s *TermsService) GetAll() ([]entity.Term, error) {
	return s.termRepo.GetAll()
}
