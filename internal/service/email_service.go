package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"

	"github.com/yourusername/consent-api/internal/domain/repository"
)

// EmailSender delivers a single transactional email.
type EmailSender interface {
	Send(ctx context.Context, toEmail, subject, text, html, idempotencyKey string) error
}

// NoopEmailSender is used when outbound email is disabled.
type NoopEmailSender struct{}

func (s *NoopEmailSender) Send(ctx context.Context, toEmail, subject, text, html, idempotencyKey string) error {
	log.Printf("[EmailSender] noop send to=%s subject=%q", toEmail, subject)
	return nil
}

// ResendEmailSender sends emails via the Resend REST API.
type ResendEmailSender struct {
	from   string
	client *resend.Client
}

func NewResendEmailSender(apiKey, from string) (*ResendEmailSender, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("email from is required")
	}
	return &ResendEmailSender{
		from:   from,
		client: resend.NewClient(apiKey),
	}, nil
}

func (s *ResendEmailSender) Send(ctx context.Context, toEmail, subject, text, html, idempotencyKey string) error {
	if toEmail == "" {
		return fmt.Errorf("toEmail is required")
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: subject,
		Text:    text,
		Html:    html,
	}

	options := &resend.SendEmailOptions{}
	if strings.TrimSpace(idempotencyKey) != "" {
		options.IdempotencyKey = strings.TrimSpace(idempotencyKey)
	}

	if _, err := s.client.Emails.SendWithOptions(ctx, params, options); err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	return nil
}

// NotificationInput carries an optional override for the broadcast content.
// Empty fields fall back to the stock incident notice.
type NotificationInput struct {
	Subject string
	Text    string
	HTML    string
}

const (
	defaultNotificationSubject = "[Importante] Aviso de segurança"

	defaultNotificationText = `Olá, %s!

Estamos entrando em contato para informar sobre um incidente de segurança que pode ter afetado os seus dados pessoais.

Recomendamos que fique atento a contatos suspeitos e altere as senhas usadas em nossa plataforma.

Em caso de dúvidas, entre em contato com o nosso suporte.`

	defaultNotificationHTML = `<p>Olá, <strong>%s</strong>!</p>
<p>Estamos entrando em contato para informar sobre um incidente de segurança que pode ter afetado os seus dados pessoais.</p>
<p>Recomendamos que fique atento a contatos suspeitos e altere as senhas usadas em nossa plataforma.</p>
<p>Em caso de dúvidas, entre em contato com o nosso suporte.</p>`
)

// NotificationService broadcasts an email to every registered user.
type NotificationService struct {
	userRepo repository.UserRepository
	sender   EmailSender
}

func NewNotificationService(userRepo repository.UserRepository, sender EmailSender) (*NotificationService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for NotificationService")
	}
	if sender == nil {
		return nil, fmt.Errorf("EmailSender is required for NotificationService")
	}
	return &NotificationService{userRepo: userRepo, sender: sender}, nil
}

// NotifyAllUsers sends the notice to every user sequentially. This is a
// best-effort broadcast: a failed recipient is logged and skipped so one
// bad address does not abort the batch. Returns the number of emails sent.
func (s *NotificationService) NotifyAllUsers(ctx context.Context, input NotificationInput) (int, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}
	if len(users) == 0 {
		log.Printf("[NotificationService] Нет пользователей для рассылки")
		return 0, nil
	}

	subject := input.Subject
	if subject == "" {
		subject = defaultNotificationSubject
	}

	sent := 0
	for _, user := range users {
		text := input.Text
		if text == "" {
			text = fmt.Sprintf(defaultNotificationText, user.Name)
		}
		html := input.HTML
		if html == "" {
			html = fmt.Sprintf(defaultNotificationHTML, user.Name)
		}

		// Each recipient gets its own idempotency key so a retried batch
		// does not double-send to users already covered.
		key := uuid.NewString()
		if err := s.sender.Send(ctx, user.Email, subject, text, html, key); err != nil {
			log.Printf("[NotificationService] Ошибка отправки письма для %s: %v", user.Email, err)
			continue
		}
		sent++
	}

	log.Printf("[NotificationService] Рассылка завершена: отправлено %d из %d", sent, len(users))
	return sent, nil
}
