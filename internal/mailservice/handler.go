package mailservice

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sushihentaime/folio/internal/common"
	"golang.org/x/exp/rand"
)

const (
	maxRetries = 5
	baseDelay  = 500 * time.Millisecond
)

var errNoRecipient = errors.New("no recipient configured")

func NewMailService(mb common.MessageConsumer, host, username, password, sender string, port int, site SiteConfig, logger *slog.Logger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:     mb,
		m:      NewMailer(host, port, username, password, sender, NewTemplate()),
		site:   site,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start consumes all mail queues in the background until Close is called.
func (s *MailService) Start() {
	s.SendActivationEmail()
	s.SendContactNotification()
	s.SendNewsletterWelcome()
}

func (s *MailService) SendActivationEmail() {
	s.consume("activation", common.UserCreatedKey, common.UserExchange, common.UserCreatedQueue, func(body []byte) (*email, error) {
		var data userCreatedMessage
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, err
		}

		return &email{
			recipient: data.Email,
			template:  "activation_email.html",
			data: map[string]any{
				"SiteName":        s.site.Name,
				"Username":        data.Username,
				"ActivationToken": data.Token,
			},
		}, nil
	})
}

// SendContactNotification forwards contact form submissions to the site owner.
func (s *MailService) SendContactNotification() {
	s.consume("contact notification", common.ContactCreatedKey, common.SiteExchange, common.ContactCreatedQueue, func(body []byte) (*email, error) {
		if s.site.ContactRecipient == "" {
			return nil, errNoRecipient
		}

		var data contactCreatedMessage
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, err
		}

		return &email{
			recipient: s.site.ContactRecipient,
			replyTo:   data.Email,
			template:  "contact_notification.html",
			data: map[string]any{
				"SiteName": s.site.Name,
				"Name":     data.Name,
				"Email":    data.Email,
				"Message":  data.Message,
			},
		}, nil
	})
}

// SendNewsletterWelcome greets new subscribers with their unsubscribe link.
func (s *MailService) SendNewsletterWelcome() {
	s.consume("newsletter welcome", common.SubscriberCreatedKey, common.SiteExchange, common.SubscriberCreatedQueue, func(body []byte) (*email, error) {
		var data subscriberCreatedMessage
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, err
		}

		return &email{
			recipient: data.Email,
			template:  "newsletter_welcome.html",
			data: map[string]any{
				"SiteName":        s.site.Name,
				"SiteURL":         s.site.URL,
				"UnsubscribeLink": s.unsubscribeLink(data.Token),
			},
		}, nil
	})
}

func (s *MailService) unsubscribeLink(token string) string {
	return strings.TrimRight(s.site.URL, "/") + "/unsubscribe?token=" + url.QueryEscape(token)
}

// consume reads deliveries from queue and mails each of them. Messages that
// cannot be decoded are dropped, failed sends are retried with exponential
// backoff and jitter before being dropped.
func (s *MailService) consume(kind string, key common.BindingKey, exchange common.Exchange, queue common.Queue, build func([]byte) (*email, error)) {
	msgs, err := s.mb.Consume(key, exchange, queue)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("queue", string(queue)), slog.String("error", err.Error()))
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				e, err := build(msg.Body)
				if err != nil {
					s.logger.Error("could not build "+kind+" email", slog.String("error", err.Error()))
					ack(msg)
					continue
				}

				s.deliver(kind, e)
				ack(msg)

			case <-s.ctx.Done():
				s.logger.Info("stopping " + kind + " consumer due to context cancellation")
				return
			}
		}
	}()
}

func (s *MailService) deliver(kind string, e *email) {
	for attempt := 0; attempt < maxRetries; attempt++ {
		err := s.m.send(e)
		if err == nil {
			s.logger.Info(kind+" email sent", slog.String("email", e.recipient))
			return
		}

		delay := time.Duration(rand.Int63n(int64(baseDelay) << uint(attempt)))
		s.logger.Info("delaying "+kind+" email", slog.String("email", e.recipient), slog.Int("attempt", attempt), slog.Duration("delay", delay))

		select {
		case <-time.After(delay):
		case <-s.ctx.Done():
			return
		}
	}

	s.logger.Error("could not send "+kind+" email", slog.String("email", e.recipient))
}

// ack acknowledges deliveries coming from a broker channel; deliveries built
// by hand have no acknowledger.
func ack(msg amqp.Delivery) {
	if msg.Acknowledger != nil {
		msg.Ack(false)
	}
}

// Close stops the consumers and waits for them to return.
func (s *MailService) Close() {
	s.cancel()
	s.wg.Wait()
}
