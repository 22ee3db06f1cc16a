package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/consent-api/internal/domain/entity"
	"github.com/yourusername/consent-api/internal/domain/repository"
	apperrors "github.com/yourusername/consent-api/internal/pkg/errors"
	"github.com/yourusername/consent-api/pkg/auth"
)

// AuthService предоставляет методы регистрации, входа и управления аккаунтом.
// Вход — двухфазный: проверка пароля и проверка соответствия согласий —
// независимые ворота, валидный пароль сам по себе не дает полную сессию.
type AuthService struct {
	userRepo     repository.UserRepository
	userTermRepo repository.UserTermRepository
	excludedRepo repository.ExcludedUserRepository
	termRepo     repository.TermRepository
	consent      ConsentManager
	jwtService   *auth.JWTService
}

// RegisterInput содержит все данные для регистрации
type RegisterInput struct {
	Name          string
	Email         string
	Password      string
	AcceptedTerms []uint
}

// UpdateUserInput содержит изменяемые поля профиля; nil — поле не трогаем
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
}

// LoginResult — результат входа. Токен выдается всегда при верном пароле;
// при непройденной сверке согласий профиль не отдается, а RedirectToTerms
// сигнализирует клиенту о необходимости переподтверждения.
type LoginResult struct {
	Token           string
	RedirectToTerms bool
	TermsToUpdate   []entity.Term
	MandatoryTerms  []entity.Term
	User            *entity.User
	AcceptedTerms   []entity.UserTerm
}

// NewAuthService создает новый сервис аутентификации и возвращает ошибку при проблемах
func NewAuthService(
	userRepo repository.UserRepository,
	userTermRepo repository.UserTermRepository,
	excludedRepo repository.ExcludedUserRepository,
	termRepo repository.TermRepository,
	consent ConsentManager,
	jwtService *auth.JWTService,
) (*AuthService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for AuthService")
	}
	if userTermRepo == nil {
		return nil, fmt.Errorf("UserTermRepository is required for AuthService")
	}
	if excludedRepo == nil {
		return nil, fmt.Errorf("ExcludedUserRepository is required for AuthService")
	}
	if termRepo == nil {
		return nil, fmt.Errorf("TermRepository is required for AuthService")
	}
	if consent == nil {
		return nil, fmt.Errorf("ConsentManager is required for AuthService")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("JWTService is required for AuthService")
	}
	return &AuthService{
		userRepo:     userRepo,
		userTermRepo: userTermRepo,
		excludedRepo: excludedRepo,
		termRepo:     termRepo,
		consent:      consent,
		jwtService:   jwtService,
	}, nil
}

// RegisterUser регистрирует нового пользователя. Регистрация требует
// принятия всех обязательных терминов активного поколения.
func (s *AuthService) RegisterUser(input RegisterInput) (*entity.User, error) {
	input.Email = normalizeEmail(input.Email)
	input.Name = strings.TrimSpace(input.Name)

	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", apperrors.ErrValidation)
	}

	// Все обязательные термины активного поколения должны быть приняты
	allTerms, err := s.termRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load terms: %w", err)
	}
	acceptedSet := make(map[uint]struct{}, len(input.AcceptedTerms))
	for _, id := range input.AcceptedTerms {
		acceptedSet[id] = struct{}{}
	}
	for _, term := range allTerms {
		if !term.Mandatory || !term.IsActive {
			continue
		}
		if _, ok := acceptedSet[term.ID]; !ok {
			return nil, fmt.Errorf("%w: all mandatory terms must be accepted", apperrors.ErrValidation)
		}
	}

	// Проверяем, существует ли пользователь с таким email
	_, err = s.userRepo.GetByEmail(input.Email)
	if err == nil {
		return nil, fmt.Errorf("%w: user with this email already exists", apperrors.ErrConflict)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}

	user := &entity.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password, // Хешируется в BeforeSave
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.consent.RecordAcceptances(user.ID, input.AcceptedTerms); err != nil {
		return nil, fmt.Errorf("failed to record signup acceptances: %w", err)
	}

	log.Printf("[AuthService] Зарегистрирован пользователь ID=%d, email=%s", user.ID, user.Email)
	return user, nil
}

// Login выполняет вход. Порядок ворот:
//  1. пользователь существует (404);
//  2. аккаунт не в реестре исключенных — иначе завершаем отложенное
//     удаление и возвращаем ErrAccountDeleted (403);
//  3. пароль верен (401);
//  4. сверка согласий — токен выдается в любом случае, но при
//     непройденной сверке профиль не отдается.
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	excluded, err := s.excludedRepo.IsExcluded(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check exclusion registry: %w", err)
	}
	if excluded {
		// Завершаем отложенное удаление: кто-то пометил аккаунт
		// исключенным, не уничтожив живую строку.
		if err := s.purgeUser(user.ID); err != nil {
			return nil, err
		}
		log.Printf("[AuthService] Отложенное удаление завершено для пользователя ID=%d", user.ID)
		return nil, apperrors.ErrAccountDeleted
	}

	if !user.CheckPassword(password) {
		return nil, fmt.Errorf("%w: invalid password", apperrors.ErrUnauthorized)
	}

	compliance, err := s.consent.CheckUserCompliance(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check compliance: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	if !compliance.IsCompliant() {
		return &LoginResult{
			Token:           token,
			RedirectToTerms: true,
			TermsToUpdate:   compliance.TermsToUpdate,
			MandatoryTerms:  compliance.NotAcceptedMandatoryTerms,
		}, nil
	}

	accepted, err := s.consent.GetAcceptedTerms(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accepted terms: %w", err)
	}

	return &LoginResult{
		Token:         token,
		User:          user,
		AcceptedTerms: accepted,
	}, nil
}

// GetProfile возвращает пользователя и его активные согласия
func (s *AuthService) GetProfile(userID uint) (*entity.User, []entity.UserTerm, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, nil, err
	}
	accepted, err := s.consent.GetAcceptedTerms(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load accepted terms: %w", err)
	}
	return user, accepted, nil
}

// UpdateUser обновляет имя/email/пароль пользователя; nil-поля не трогаются
func (s *AuthService) UpdateUser(userID uint, input UpdateUserInput) (*entity.User, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil && strings.TrimSpace(*input.Email) != "" {
		updates["email"] = normalizeEmail(*input.Email)
	}
	if len(updates) > 0 {
		if err := s.userRepo.UpdateProfile(userID, updates); err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	if input.Password != nil && *input.Password != "" {
		if err := s.userRepo.UpdatePassword(userID, *input.Password); err != nil {
			return nil, fmt.Errorf("failed to update password: %w", err)
		}
	}

	return s.userRepo.GetByID(userID)
}

// DeleteUser удаляет аккаунт: уничтожает согласия, идемпотентно помечает
// userId в реестре исключенных и затем уничтожает строку пользователя.
// Пометка в реестре предшествует уничтожению пользователя: при сбое между
// шагами повтор никогда не оставит уничтоженный аккаунт без записи об
// исключении.
func (s *AuthService) DeleteUser(userID uint) error {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return err
	}

	if err := s.userTermRepo.DeleteByUserID(userID); err != nil {
		return err
	}
	if err := s.excludedRepo.MarkExcluded(userID); err != nil {
		return err
	}
	if err := s.userRepo.Delete(userID); err != nil {
		return err
	}

	log.Printf("[AuthService] Пользователь ID=%d удален и помещен в реестр исключенных", userID)
	return nil
}

// ListUsers возвращает всех пользователей (административный список)
func (s *AuthService) ListUsers() ([]entity.User, error) {
	return s.userRepo.List()
}

// purgeUser уничтожает согласия и строку пользователя (без реестра:
// запись об исключении там уже есть)
func (s *AuthService) purgeUser(userID uint) error {
	if err := s.userTermRepo.DeleteByUserID(userID); err != nil {
		return fmt.Errorf("failed to purge acceptances: %w", err)
	}
	if err := s.userRepo.Delete(userID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to purge user: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
