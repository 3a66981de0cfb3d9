package newsletterservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sushihentaime/folio/internal/common"
)

var (
	ErrAlreadySubscribed = errors.New("email is already subscribed")
)

func newSubscriberModel(db *sql.DB) *SubscriberModel {
	return &SubscriberModel{db: db}
}

func (m *SubscriberModel) insert(ctx context.Context, s *Subscriber) error {
	query := `
		INSERT INTO subscribers (email, token)
		VALUES ($1, $2)
		RETURNING id, active, created_at, updated_at`

	err := m.db.QueryRowContext(ctx, query, s.Email, s.Token).Scan(&s.ID, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		switch {
		case common.UniqueViolation(err, "subscribers_email_key"):
			return ErrAlreadySubscribed
		default:
			return err
		}
	}

	return nil
}

func (m *SubscriberModel) getByEmail(ctx context.Context, email string) (*Subscriber, error) {
	query := `
		SELECT id, email, token, active, created_at, updated_at
		FROM subscribers
		WHERE email = $1`

	var s Subscriber
	err := m.db.QueryRowContext(ctx, query, email).Scan(&s.ID, &s.Email, &s.Token, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &s, nil
}

// setActive toggles the subscription identified by token. Only rows whose
// state actually changes are counted.
func (m *SubscriberModel) setActive(ctx context.Context, token uuid.UUID, active bool) error {
	query := `
		UPDATE subscribers
		SET active = $1, updated_at = NOW()
		WHERE token = $2 AND active <> $1`

	res, err := m.db.ExecContext(ctx, query, active, token)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return common.ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

func (m *SubscriberModel) list(ctx context.Context, activeOnly bool, p common.Pagination) ([]Subscriber, int, error) {
	query := `
		SELECT count(*) OVER(), id, email, token, active, created_at, updated_at
		FROM subscribers
		WHERE active OR NOT $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := m.db.QueryContext(ctx, query, activeOnly, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	total := 0
	subscribers := []Subscriber{}

	for rows.Next() {
		var s Subscriber
		if err := rows.Scan(&total, &s.ID, &s.Email, &s.Token, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, err
		}
		subscribers = append(subscribers, s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return subscribers, total, nil
}
