package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/consent-api/internal/domain/entity"
	apperrors "github.com/yourusername/consent-api/internal/pkg/errors"
)

func boolPtr(v bool) *bool { return &v }

func TestTermsService_PublishBatch_EmptyBatch(t *testing.T) {
	svc, err := NewTermsService(new(MockTermRepository))
	require.NoError(t, err)

	_, err = svc.PublishBatch(nil)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestTermsService_PublishBatch_MissingFields(t *testing.T) {
	svc, err := NewTermsService(new(MockTermRepository))
	require.NoError(t, err)

	cases := []struct {
		name  string
		entry PublishTermInput
	}{
		{"без версии", PublishTermInput{Content: "C", Mandatory: boolPtr(true)}},
		{"без текста", PublishTermInput{Version: "2.0", Mandatory: boolPtr(true)}},
		{"без флага mandatory", PublishTermInput{Version: "2.0", Content: "C"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.PublishBatch([]PublishTermInput{tc.entry})
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestTermsService_PublishBatch_Success(t *testing.T) {
	termRepo := new(MockTermRepository)
	termRepo.On("PublishBatch", mock.MatchedBy(func(terms []*entity.Term) bool {
		return len(terms) == 2 &&
			terms[0].Version == "2.0" && terms[0].Mandatory && terms[0].IsActive &&
			terms[1].Version == "2.0" && !terms[1].Mandatory && terms[1].IsActive
	})).Return(nil)

	svc, err := NewTermsService(termRepo)
	require.NoError(t, err)

	published, err := svc.PublishBatch([]PublishTermInput{
		{Version: "2.0", Content: "C1", Mandatory: boolPtr(true)},
		{Version: "2.0", Content: "C2", Mandatory: boolPtr(false)},
	})

	require.NoError(t, err)
	assert.Len(t, published, 2)
	termRepo.AssertExpectations(t)
}

func TestTermsService_GetActiveLatestVersion_EmptyCatalog(t *testing.T) {
	termRepo := new(MockTermRepository)
	termRepo.On("GetLatestVersion").Return("", apperrors.ErrNotFound)

	svc, err := NewTermsService(termRepo)
	require.NoError(t, err)

	_, err = svc.GetActiveLatestVersion()

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTermsService_GetActiveLatestVersion_ReturnsActiveSubset(t *testing.T) {
	termRepo := new(MockTermRepository)
	termRepo.On("GetLatestVersion").Return("2.0", nil)
	termRepo.On("GetActiveByVersion", "2.0").Return([]entity.Term{
		{ID: 3, Version: "2.0", Content: "C1", Mandatory: true, IsActive: true},
	}, nil)

	svc, err := NewTermsService(termRepo)
	require.NoError(t, err)

	terms, err := svc.GetActiveLatestVersion()

	require.NoError(t, err)
	require.Len(t, terms, 1)
	assert.Equal(t, "2.0", terms[0].Version)
	assert.Equal(t, "C1", terms[0].Content)
}
