package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/consent-api/internal/domain/entity"
)

func TestNotificationService_NotifyAllUsers_NoUsers(t *testing.T) {
	userRepo := new(MockUserRepository)
	sender := new(MockEmailSender)
	svc, err := NewNotificationService(userRepo, sender)
	require.NoError(t, err)

	userRepo.On("List").Return([]entity.User{}, nil)

	sent, err := svc.NotifyAllUsers(context.Background(), NotificationInput{})

	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNotificationService_NotifyAllUsers_ContinuesPastFailure(t *testing.T) {
	// Рассылка best-effort: сбой на одном адресе не прерывает batch
	userRepo := new(MockUserRepository)
	sender := new(MockEmailSender)
	svc, err := NewNotificationService(userRepo, sender)
	require.NoError(t, err)

	userRepo.On("List").Return([]entity.User{
		{ID: 1, Name: "Ana", Email: "ana@example.com"},
		{ID: 2, Name: "Bruno", Email: "bruno@example.com"},
		{ID: 3, Name: "Clara", Email: "clara@example.com"},
	}, nil)

	sender.On("Send", mock.Anything, "ana@example.com", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	sender.On("Send", mock.Anything, "bruno@example.com", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp boom"))
	sender.On("Send", mock.Anything, "clara@example.com", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	sent, err := svc.NotifyAllUsers(context.Background(), NotificationInput{})

	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	sender.AssertNumberOfCalls(t, "Send", 3)
}

func TestNotificationService_NotifyAllUsers_UsesOverrides(t *testing.T) {
	userRepo := new(MockUserRepository)
	sender := new(MockEmailSender)
	svc, err := NewNotificationService(userRepo, sender)
	require.NoError(t, err)

	userRepo.On("List").Return([]entity.User{
		{ID: 1, Name: "Ana", Email: "ana@example.com"},
	}, nil)

	sender.On("Send", mock.Anything, "ana@example.com", "Manutenção", "corpo", "<p>corpo</p>",
		mock.MatchedBy(func(key string) bool { return key != "" })).Return(nil)

	sent, err := svc.NotifyAllUsers(context.Background(), NotificationInput{
		Subject: "Manutenção",
		Text:    "corpo",
		HTML:    "<p>corpo</p>",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	sender.AssertExpectations(t)
}

func TestNotificationService_NotifyAllUsers_DefaultsMentionUserName(t *testing.T) {
	userRepo := new(MockUserRepository)
	sender := new(MockEmailSender)
	svc, err := NewNotificationService(userRepo, sender)
	require.NoError(t, err)

	userRepo.On("List").Return([]entity.User{
		{ID: 1, Name: "Ana", Email: "ana@example.com"},
	}, nil)

	sender.On("Send", mock.Anything, "ana@example.com", defaultNotificationSubject,
		mock.MatchedBy(func(text string) bool { return len(text) > 0 }),
		mock.MatchedBy(func(html string) bool { return len(html) > 0 }),
		mock.Anything).Return(nil)

	_, err = svc.NotifyAllUsers(context.Background(), NotificationInput{})

	require.NoError(t, err)
	sender.AssertExpectations(t)
}
