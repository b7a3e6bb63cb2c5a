package notify

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/config"
)

// OutboundEmail is one rendered notification ready for transport.
type OutboundEmail struct {
	Subject string
	Body    string
	To      string
	Cc      []string
}

// Mailer delivers a single outbound email.
type Mailer interface {
	Send(ctx context.Context, email OutboundEmail) error
}

// SMTPMailer sends plain-text mail over SMTP via gomail.
type SMTPMailer struct {
	dialer  *gomail.Dialer
	from    string
	timeout time.Duration
	logger  *zap.Logger
}

// NewSMTPMailer constructs the mailer from mail settings.
func NewSMTPMailer(cfg config.MailConfig, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:    cfg.From,
		timeout: cfg.SendTimeout(),
		logger:  logger,
	}
}

// Send delivers the email within the configured timeout. The transport has
// no cancellation hook, so on expiry the in-flight send is abandoned and
// its eventual outcome only logged.
func (m *SMTPMailer) Send(ctx context.Context, email OutboundEmail) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email.To)
	if len(email.Cc) > 0 {
		msg.SetHeader("Cc", email.Cc...)
	}
	msg.SetHeader("Subject", email.Subject)
	msg.SetBody("text/plain", email.Body)

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		go func() {
			if err := <-done; err != nil {
				m.logger.Error("mail send completed after timeout", zap.Error(err))
			}
		}()
		return ctx.Err()
	}
}
