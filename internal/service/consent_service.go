package service

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yourusername/consent-api/internal/domain/entity"
	"github.com/yourusername/consent-api/internal/domain/repository"
	apperrors "github.com/yourusername/consent-api/internal/pkg/errors"
)

// ComplianceResult — результат сверки согласий пользователя с каталогом.
// TermsToUpdate — принятые термины, измененные после принятия (устаревшие
// согласия). NotAcceptedMandatoryTerms — активные обязательные термины,
// которые пользователь не принимал.
type ComplianceResult struct {
	TermsToUpdate             []entity.Term
	NotAcceptedMandatoryTerms []entity.Term
}

// IsCompliant возвращает true, если пользователю не нужно переподтверждать термины
func (r *ComplianceResult) IsCompliant() bool {
	return len(r.TermsToUpdate) == 0 && len(r.NotAcceptedMandatoryTerms) == 0
}

// ConsentManager описывает операции реестра согласий, нужные
// аутентификационному потоку.
type ConsentManager interface {
	RecordAcceptances(userID uint, termIDs []uint) error
	GetAcceptedTerms(userID uint) ([]entity.UserTerm, error)
	CheckUserCompliance(userID uint) (*ComplianceResult, error)
}

// ConsentService предоставляет методы для работы с реестром согласий
// и выполняет сверку соответствия (compliance reconciliation).
type ConsentService struct {
	userTermRepo repository.UserTermRepository
	termRepo     repository.TermRepository
}

// NewConsentService создает новый сервис согласий и возвращает ошибку при проблемах
func NewConsentService(
	userTermRepo repository.UserTermRepository,
	termRepo repository.TermRepository,
) (*ConsentService, error) {
	if userTermRepo == nil {
		return nil, fmt.Errorf("UserTermRepository is required for ConsentService")
	}
	if termRepo == nil {
		return nil, fmt.Errorf("TermRepository is required for ConsentService")
	}
	return &ConsentService{
		userTermRepo: userTermRepo,
		termRepo:     termRepo,
	}, nil
}

// RecordAcceptances заменяет активный набор согласий пользователя.
// Клиент передает ПОЛНЫЙ набор терминов, который должен стать активным,
// а не дельту: все прежние активные строки помечаются неактивными, история
// при этом не теряется.
func (s *ConsentService) RecordAcceptances(userID uint, termIDs []uint) error {
	if len(termIDs) == 0 {
		return fmt.Errorf("%w: term id list must not be empty", apperrors.ErrValidation)
	}

	// termIDs должен быть множеством: дубликаты — ошибка клиента
	seen := make(map[uint]struct{}, len(termIDs))
	for _, id := range termIDs {
		if id == 0 {
			return fmt.Errorf("%w: term id must be a positive integer", apperrors.ErrValidation)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate term id %d", apperrors.ErrValidation, id)
		}
		seen[id] = struct{}{}
	}

	terms, err := s.termRepo.GetByIDs(termIDs)
	if err != nil {
		return fmt.Errorf("failed to load terms: %w", err)
	}
	if len(terms) != len(termIDs) {
		found := make(map[uint]struct{}, len(terms))
		for _, t := range terms {
			found[t.ID] = struct{}{}
		}
		for _, id := range termIDs {
			if _, ok := found[id]; !ok {
				return fmt.Errorf("%w: term %d does not exist", apperrors.ErrNotFound, id)
			}
		}
	}

	now := time.Now()
	acceptances := make([]*entity.UserTerm, 0, len(terms))
	for _, term := range terms {
		acceptances = append(acceptances, &entity.UserTerm{
			UserID:     userID,
			TermID:     term.ID,
			AcceptedAt: now,
			// Снимок updatedAt термина замораживается в момент принятия,
			// по нему реконсилиация определяет устаревшие согласия.
			TermUpdatedAt: term.UpdatedAt,
		})
	}

	if err := s.userTermRepo.ReplaceActive(userID, acceptances); err != nil {
		return fmt.Errorf("failed to replace acceptances: %w", err)
	}

	log.Printf("[ConsentService] Пользователь ID=%d принял %d терминов", userID, len(acceptances))
	return nil
}

// GetAcceptedTerms возвращает активные согласия пользователя вместе с терминами
func (s *ConsentService) GetAcceptedTerms(userID uint) ([]entity.UserTerm, error) {
	return s.userTermRepo.GetActiveByUserID(userID)
}

// GetHistory возвращает все согласия пользователя — аудиторский след.
// Возвращает ErrNotFound, если у пользователя нет ни одной записи.
func (s *ConsentService) GetHistory(userID uint) ([]entity.UserTerm, error) {
	history, err := s.userTermRepo.GetHistoryByUserID(userID)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("%w: no acceptance history for user %d", apperrors.ErrNotFound, userID)
	}
	return history, nil
}

// CheckUserCompliance сверяет согласия пользователя с текущим каталогом.
// Активные согласия и полный каталог читаются параллельно — это
// независимые чтения.
func (s *ConsentService) CheckUserCompliance(userID uint) (*ComplianceResult, error) {
	var (
		accepted []entity.UserTerm
		allTerms []entity.Term
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		accepted, err = s.userTermRepo.GetActiveByUserID(userID)
		return err
	})
	g.Go(func() error {
		var err error
		allTerms, err = s.termRepo.GetAll()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load compliance inputs: %w", err)
	}

	byID := make(map[uint]entity.Term, len(allTerms))
	for _, term := range allTerms {
		byID[term.ID] = term
	}

	result := &ComplianceResult{
		TermsToUpdate:             []entity.Term{},
		NotAcceptedMandatoryTerms: []entity.Term{},
	}

	// Устаревшие согласия: термин был изменен после снимка, сделанного
	// в момент принятия. Любая мутация строки термина (включая
	// деактивацию) сдвигает updated_at и требует переподтверждения.
	acceptedIDs := make(map[uint]struct{}, len(accepted))
	for _, acceptance := range accepted {
		acceptedIDs[acceptance.TermID] = struct{}{}

		current, ok := byID[acceptance.TermID]
		if !ok {
			continue
		}
		if current.UpdatedAt.After(acceptance.TermUpdatedAt) {
			log.Printf("[ConsentService] Термин %d изменен после принятия пользователем ID=%d", current.ID, userID)
			result.TermsToUpdate = append(result.TermsToUpdate, current)
		}
	}

	// Обязательные термины активного поколения, которых нет среди принятых
	for _, term := range allTerms {
		if !term.Mandatory || !term.IsActive {
			continue
		}
		if _, ok := acceptedIDs[term.ID]; !ok {
			result.NotAcceptedMandatoryTerms = append(result.NotAcceptedMandatoryTerms, term)
		}
	}

	return result, nil
}
