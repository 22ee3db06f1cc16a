package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/consent-api/internal/domain/entity"
)

func TestReportService_BuildAcceptanceReport(t *testing.T) {
	userTermRepo := new(MockUserTermRepository)
	userRepo := new(MockUserRepository)
	svc, err := NewReportService(userTermRepo, userRepo)
	require.NoError(t, err)

	acceptedAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	userTermRepo.On("GetHistory").Return([]entity.UserTerm{
		{
			UserID:     1,
			TermID:     10,
			AcceptedAt: acceptedAt,
			IsActive:   true,
			Term:       entity.Term{ID: 10, Version: "1.0", Content: "Termo de uso", Mandatory: true},
		},
		{
			// Аккаунт уже уничтожен: email не резолвится, остается голый id
			UserID:     99,
			TermID:     10,
			AcceptedAt: acceptedAt,
			IsActive:   false,
			Term:       entity.Term{ID: 10, Version: "1.0", Content: "Termo de uso", Mandatory: true},
		},
	}, nil)
	userRepo.On("List").Return([]entity.User{
		{ID: 1, Name: "Ana", Email: "ana@example.com"},
	}, nil)

	report, err := svc.BuildAcceptanceReport()
	require.NoError(t, err)
	require.NotEmpty(t, report)

	f, err := excelize.OpenReader(bytes.NewReader(report))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Acceptances")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "User ID", rows[0][0])
	assert.Equal(t, "ana@example.com", rows[1][1])
	assert.Equal(t, "1.0", rows[1][3])
	// У второй строки нет email — пользователь удален
	assert.Equal(t, "99", rows[2][0])
}

func TestReportService_BuildAcceptanceReport_EmptyLedger(t *testing.T) {
	userTermRepo := new(MockUserTermRepository)
	userRepo := new(MockUserRepository)
	svc, err := NewReportService(userTermRepo, userRepo)
	require.NoError(t, err)

	userTermRepo.On("GetHistory").Return([]entity.UserTerm{}, nil)
	userRepo.On("List").Return([]entity.User{}, nil)

	report, err := svc.BuildAcceptanceReport()
	require.NoError(t, err)
	assert.NotEmpty(t, report)
}
