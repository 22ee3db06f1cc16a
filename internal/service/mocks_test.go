package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/consent-api/internal/domain/entity"
)

// ============================================================================
// Моки репозиториев для тестов сервисного слоя
// ============================================================================

// MockUserRepository реализует repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateProfile(userID uint, updates map[string]interface{}) error {
	args := m.Called(userID, updates)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(userID uint, newPassword string) error {
	args := m.Called(userID, newPassword)
	return args.Error(0)
}

func (m *MockUserRepository) List() ([]entity.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepository) Delete(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockTermRepository реализует repository.TermRepository
type MockTermRepository struct {
	mock.Mock
}

func (m *MockTermRepository) PublishBatch(terms []*entity.Term) error {
	args := m.Called(terms)
	return args.Error(0)
}

func (m *MockTermRepository) GetLatestVersion() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockTermRepository) GetActiveByVersion(version string) ([]entity.Term, error) {
	args := m.Called(version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Term), args.Error(1)
}

func (m *MockTermRepository) GetAll() ([]entity.Term, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Term), args.Error(1)
}

func (m *MockTermRepository) GetByIDs(ids []uint) ([]entity.Term, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Term), args.Error(1)
}

// MockUserTermRepository реализует repository.UserTermRepository
type MockUserTermRepository struct {
	mock.Mock
}

func (m *MockUserTermRepository) ReplaceActive(userID uint, acceptances []*entity.UserTerm) error {
	args := m.Called(userID, acceptances)
	return args.Error(0)
}

func (m *MockUserTermRepository) GetActiveByUserID(userID uint) ([]entity.UserTerm, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.UserTerm), args.Error(1)
}

func (m *MockUserTermRepository) GetHistoryByUserID(userID uint) ([]entity.UserTerm, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.UserTerm), args.Error(1)
}

func (m *MockUserTermRepository) GetHistory() ([]entity.UserTerm, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.UserTerm), args.Error(1)
}

func (m *MockUserTermRepository) DeleteByUserID(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockExcludedUserRepository реализует repository.ExcludedUserRepository
type MockExcludedUserRepository struct {
	mock.Mock
}

func (m *MockExcludedUserRepository) IsExcluded(userID uint) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockExcludedUserRepository) MarkExcluded(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockConsentManager реализует ConsentManager
type MockConsentManager struct {
	mock.Mock
}

func (m *MockConsentManager) RecordAcceptances(userID uint, termIDs []uint) error {
	args := m.Called(userID, termIDs)
	return args.Error(0)
}

func (m *MockConsentManager) GetAcceptedTerms(userID uint) ([]entity.UserTerm, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.UserTerm), args.Error(1)
}

func (m *MockConsentManager) CheckUserCompliance(userID uint) (*ComplianceResult, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ComplianceResult), args.Error(1)
}

// MockEmailSender реализует EmailSender
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, toEmail, subject, text, html, idempotencyKey string) error {
	args := m.Called(ctx, toEmail, subject, text, html, idempotencyKey)
	return args.Error(0)
}
