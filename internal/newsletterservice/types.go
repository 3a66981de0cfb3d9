package newsletterservice

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/sushihentaime/folio/internal/common"
)

type Subscriber struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Token     uuid.UUID `json:"-"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SubscriberCreatedEvent is published for new and reactivated subscribers.
type SubscriberCreatedEvent struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

type SubscriberModel struct {
	db *sql.DB
}

type NewsletterService struct {
	m  *SubscriberModel
	mb common.MessageProducer
}
