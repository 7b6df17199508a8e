package mailer

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"yamdb-api/pkg/utils"
)

// Mailer delivers confirmation codes out-of-band. Delivery failures are
// returned to the caller, never swallowed.
type Mailer interface {
	SendConfirmationCode(to, username, code string) error
}

type smtpMailer struct {
	dialer      *gomail.Dialer
	from        string
	expiryHours int
	log         *zap.Logger
}

func NewSMTPMailer(config utils.EmailConfig, expiryHours int, log *zap.Logger) Mailer {
	return &smtpMailer{
		dialer:      gomail.NewDialer(config.Host, config.Port, config.User, config.Password),
		from:        config.From,
		expiryHours: expiryHours,
		log:         log.With(zap.String("component", "mailer")),
	}
}

func (m *smtpMailer) SendConfirmationCode(to, username, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "You're signed up on YaMDB!")
	msg.SetBody("text/plain", confirmationBody(username, code, m.expiryHours))

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.log.Error("Failed to send confirmation email",
			zap.Error(err),
			zap.String("to", to),
		)
		return fmt.Errorf("send confirmation email to %s: %w", to, err)
	}

	m.log.Info("Confirmation email sent", zap.String("to", to))
	return nil
}

// confirmationBody states the expiry in the same units the code is
// actually configured with, so the wording cannot drift from the config.
func confirmationBody(username, code string, expiryHours int) string {
	return fmt.Sprintf(
		"Hello, %s!\n\n"+
			"Your confirmation code to receive a token is: %s\n"+
			"Note: it will expire in %s.\n",
		username, code, expiryWording(expiryHours),
	)
}

func expiryWording(hours int) string {
	if hours > 0 && hours%24 == 0 {
		days := hours / 24
		if days == 1 {
			return "1 day"
		}
		return fmt.Sprintf("%d days", days)
	}
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
