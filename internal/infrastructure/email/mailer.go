package email

import (
	"github.com/go-account-api/internal/config"
	"gopkg.in/gomail.v2"
)

// Mailer sends multipart (plain + HTML) emails.
type Mailer interface {
	// Configured reports whether delivery credentials were provided at
	// startup. A false return means any Send would fail before dialing.
	Configured() bool
	Send(to, subject, textBody, htmlBody string) error
}

type mailer struct {
	dialer *gomail.Dialer
	host   string
	from   string
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		host:   cfg.SMTPHost,
		from:   cfg.SMTPFrom,
	}
}

func (m *mailer) Configured() bool {
	return m.host != "" && m.from != ""
}

func (m *mailer) Send(to, subject, textBody, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)
	msg.AddAlternative("text/html", htmlBody)
	return m.dialer.DialAndSend(msg)
}
