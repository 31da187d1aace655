package mailingservices

import (
	"context"
	"time"

	"github.com/ecosenseai/ecosense/config"
	"github.com/mailgun/mailgun-go/v4"
)

// Mailgun wraps the mailgun client used for transactional mail such as
// redemption confirmations.
type Mailgun struct {
	Client *mailgun.MailgunImpl
	From   string
}

func (m *Mailgun) Init(conf *config.Config) {
	if conf.MailgunApiKey == "" || conf.MgDomain == "" {
		return
	}
	m.Client = mailgun.NewMailgun(conf.MgDomain, conf.MailgunApiKey)
	m.From = conf.MgEmailFrom
}

func (m *Mailgun) SendMail(to, subject, body string) error {
	message := m.Client.NewMessage(m.From, subject, body, to)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _, err := m.Client.Send(ctx, message)
	return err
}
