package mailservice

import (
	"bytes"
	"context"
	"html/template"
	"sync"

	"github.com/go-mail/mail/v2"

	"github.com/sushihentaime/folio/internal/common"
)

// SiteConfig holds the site details rendered into outgoing mail.
type SiteConfig struct {
	Name             string
	URL              string
	ContactRecipient string
}

type MailService struct {
	mb     common.MessageConsumer
	m      Mailer
	site   SiteConfig
	logger MailLogger
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type MailLogger interface {
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

type Mail struct {
	mu     sync.Mutex
	dialer Dialer
	parser TemplateParser
	sender string
}

type Mailer interface {
	send(e *email) error
}

// Template parses embedded email templates, keeping each parsed file for reuse.
type Template struct {
	mu     sync.Mutex
	parsed map[string]*template.Template
}

type Dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type TemplateParser interface {
	ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error)
}

// email is a rendered-and-sent unit of work derived from a broker message.
type email struct {
	recipient string
	replyTo   string
	template  string
	data      any
}

type userCreatedMessage struct {
	Username string
	Email    string
	Token    string
}

type contactCreatedMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type subscriberCreatedMessage struct {
	Email string `json:"email"`
	Token string `json:"token"`
}
