package mailservice

import (
	"bytes"
	"errors"

	"github.com/go-mail/mail/v2"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/mock"
	"github.com/sushihentaime/folio/internal/common"
)

type MockTemplate struct {
	mock.Mock
}

func (m *MockTemplate) ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error) {
	args := m.Called(name, data)
	if args.Get(0) == nil {
		return nil, nil, nil, args.Error(3)
	}
	return args.Get(0).(*bytes.Buffer), args.Get(1).(*bytes.Buffer), args.Get(2).(*bytes.Buffer), args.Error(3)
}

type MockDialer struct {
	mock.Mock
}

func (d *MockDialer) DialAndSend(m ...*mail.Message) error {
	args := d.Called(m)
	return args.Error(0)
}

var errTemporary = errors.New("temporary failure")

// MockMailer reports every email it is asked to send on Sent. The first
// Failures sends fail.
type MockMailer struct {
	Sent     chan *email
	Failures int
	attempts int
}

func NewMockMailer() *MockMailer {
	return &MockMailer{Sent: make(chan *email, 10)}
}

func (m *MockMailer) send(e *email) error {
	m.attempts++
	if m.attempts <= m.Failures {
		return errTemporary
	}

	m.Sent <- e
	return nil
}

// MockMessageConsumer hands out a channel per queue preloaded with the
// configured message bodies.
type MockMessageConsumer struct {
	mock.Mock
	Bodies map[common.Queue][]string
}

func (m *MockMessageConsumer) Consume(key common.BindingKey, exchange common.Exchange, queue common.Queue) (<-chan amqp.Delivery, error) {
	args := m.Called(key, exchange, queue)
	if err := args.Error(0); err != nil {
		return nil, err
	}

	msgs := make(chan amqp.Delivery, len(m.Bodies[queue]))
	for _, body := range m.Bodies[queue] {
		msgs <- amqp.Delivery{Body: []byte(body)}
	}

	return msgs, nil
}
