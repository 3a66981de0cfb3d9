package contactservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/sushihentaime/folio/internal/common"
)

func NewContactService(db *sql.DB, mb common.MessageProducer) *ContactService {
	return &ContactService{m: newContactModel(db), mb: mb}
}

// SubmitContact stores a contact form submission and publishes a
// contact.created event for the notification mail.
func (s *ContactService) SubmitContact(ctx context.Context, name, email, message string) (*Contact, error) {
	c := &Contact{
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Message: strings.TrimSpace(message),
	}

	v := common.NewValidator()
	v.Check(c.Name != "", "name", "must be provided")
	v.Check(v.CheckStringLength(c.Name, 2, 100), "name", "must be between 2 and 100 characters long")
	common.ValidateEmail(v, c.Email)
	v.Check(c.Message != "", "message", "must be provided")
	v.Check(v.CheckStringLength(c.Message, 10, 5000), "message", "must be between 10 and 5000 characters long")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err := s.m.insert(ctx, c)
	if err != nil {
		return nil, err
	}

	msg, err := json.Marshal(ContactCreatedEvent{Name: c.Name, Email: c.Email, Message: c.Message})
	if err != nil {
		return nil, err
	}

	err = s.mb.Publish(ctx, msg, common.ContactCreatedKey, common.SiteExchange)
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (s *ContactService) GetContacts(ctx context.Context, p common.Pagination) ([]Contact, common.Metadata, error) {
	contacts, total, err := s.m.list(ctx, p)
	if err != nil {
		return nil, common.Metadata{}, err
	}

	return contacts, p.Metadata(total), nil
}

func (s *ContactService) MarkRead(ctx context.Context, id int, read bool) error {
	v := common.NewValidator()
	common.ValidateID(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.setRead(ctx, id, read)
}

func (s *ContactService) DeleteContact(ctx context.Context, id int) error {
	v := common.NewValidator()
	common.ValidateID(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.delete(ctx, id)
}
