package mailservice

import (
	"time"

	"github.com/go-mail/mail/v2"
)

// NewMailer creates a new mailer with the given host, port, username, password, sender, and template.
func NewMailer(host string, port int, username, password, sender string, tp *Template) *Mail {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = 5 * time.Second

	return &Mail{
		dialer: dialer,
		sender: sender,
		parser: tp,
	}
}

// message renders e into a multipart message with a plain text body and an
// HTML alternative.
func (m *Mail) message(e *email) (*mail.Message, error) {
	subject, plainBody, htmlBody, err := m.parser.ParseTemplate(e.template, e.data)
	if err != nil {
		return nil, err
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", e.recipient)
	if e.replyTo != "" {
		msg.SetHeader("Reply-To", e.replyTo)
	}
	msg.SetHeader("Subject", subject.String())
	msg.SetBody("text/plain", plainBody.String())
	msg.AddAlternative("text/html", htmlBody.String())

	return msg, nil
}

func (m *Mail) send(e *email) error {
	msg, err := m.message(e)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.dialer.DialAndSend(msg)
}
