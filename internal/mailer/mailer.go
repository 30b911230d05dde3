package mailer

import (
	"context"
	"fmt"
	"time"

	"go-gin-event-ticketing/pkg/logger"

	"github.com/mailersend/mailersend-go"
	"go.uber.org/zap"
)

type Email struct {
	ToEmail string
	ToName  string
	Subject string
	Text    string
}

type Mailer interface {
	Send(ctx context.Context, email Email) error
}

type MailersendMailer struct {
	client    *mailersend.Mailersend
	fromEmail string
	fromName  string
	timeout   time.Duration
}

func NewMailersendMailer(apiKey, fromName, fromEmail string) Mailer {
	return &MailersendMailer{
		client:    mailersend.NewMailersend(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
		timeout:   5 * time.Second,
	}
}

func (m *MailersendMailer) Send(ctx context.Context, email Email) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	message := m.client.Email.NewMessage()
	message.SetFrom(mailersend.From{
		Name:  m.fromName,
		Email: m.fromEmail,
	})
	message.SetRecipients([]mailersend.Recipient{
		{
			Name:  email.ToName,
			Email: email.ToEmail,
		},
	})
	message.SetSubject(email.Subject)
	message.SetText(email.Text)

	res, err := m.client.Email.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.WithComponent("mailer").Info("email sent",
		zap.String("to", email.ToEmail),
		zap.String("message_id", res.Header.Get("X-Message-Id")))
	return nil
}

// LogMailer writes messages to the log instead of sending them. Used when no API key is set.
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer() Mailer {
	return &LogMailer{log: logger.WithComponent("mailer")}
}

func (m *LogMailer) Send(ctx context.Context, email Email) error {
	m.log.Info("email not sent, mailer disabled",
		zap.String("to", email.ToEmail),
		zap.String("subject", email.Subject),
		zap.String("body", email.Text))
	return nil
}

// New picks the mailersend client when an API key is configured.
func New(apiKey, fromName, fromEmail string) Mailer {
	if apiKey == "" {
		return NewLogMailer()
	}
	return NewMailersendMailer(apiKey, fromName, fromEmail)
}
