package newsletterservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sushihentaime/folio/internal/common"
)

func NewNewsletterService(db *sql.DB, mb common.MessageProducer) *NewsletterService {
	return &NewsletterService{m: newSubscriberModel(db), mb: mb}
}

// Subscribe adds email to the newsletter, or reactivates it if it had
// unsubscribed. Either way a subscriber.created event is published so a
// welcome mail carrying the unsubscribe token goes out.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) (*Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	v := common.NewValidator()
	common.ValidateEmail(v, email)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	sub, err := s.m.getByEmail(ctx, email)
	switch {
	case err == nil && sub.Active:
		return nil, ErrAlreadySubscribed
	case err == nil:
		err = s.m.setActive(ctx, sub.Token, true)
		if err != nil {
			return nil, err
		}
		sub.Active = true
	case errors.Is(err, common.ErrRecordNotFound):
		sub = &Subscriber{Email: email, Token: uuid.New()}
		err = s.m.insert(ctx, sub)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	msg, err := json.Marshal(SubscriberCreatedEvent{Email: sub.Email, Token: sub.Token.String()})
	if err != nil {
		return nil, err
	}

	err = s.mb.Publish(ctx, msg, common.SubscriberCreatedKey, common.SiteExchange)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// Unsubscribe deactivates the subscription owning token. Unknown tokens and
// already inactive subscriptions yield ErrRecordNotFound.
func (s *NewsletterService) Unsubscribe(ctx context.Context, token string) error {
	t, err := uuid.Parse(token)
	if err != nil {
		return common.ValidationError{Errors: map[string]string{"token": "must be a valid token"}}
	}

	return s.m.setActive(ctx, t, false)
}

func (s *NewsletterService) GetSubscribers(ctx context.Context, activeOnly bool, p common.Pagination) ([]Subscriber, common.Metadata, error) {
	subscribers, total, err := s.m.list(ctx, activeOnly, p)
	if err != nil {
		return nil, common.Metadata{}, err
	}

	return subscribers, p.Metadata(total), nil
}
