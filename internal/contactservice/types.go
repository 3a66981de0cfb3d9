package contactservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/folio/internal/common"
)

type Contact struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactCreatedEvent is published when a contact form is submitted.
type ContactCreatedEvent struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type ContactModel struct {
	db *sql.DB
}

type ContactService struct {
	m  *ContactModel
	mb common.MessageProducer
}
