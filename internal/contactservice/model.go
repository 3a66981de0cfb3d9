package contactservice

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sushihentaime/folio/internal/common"
)

func newContactModel(db *sql.DB) *ContactModel {
	return &ContactModel{db: db}
}

func (m *ContactModel) insert(ctx context.Context, c *Contact) error {
	query := `
		INSERT INTO contacts (name, email, message)
		VALUES ($1, $2, $3)
		RETURNING id, read, created_at`

	return m.db.QueryRowContext(ctx, query, c.Name, c.Email, c.Message).Scan(&c.ID, &c.Read, &c.CreatedAt)
}

// list returns contacts newest first, unread ones before read ones.
func (m *ContactModel) list(ctx context.Context, p common.Pagination) ([]Contact, int, error) {
	query := `
		SELECT count(*) OVER(), id, name, email, message, read, created_at
		FROM contacts
		ORDER BY read, created_at DESC, id DESC
		LIMIT $1 OFFSET $2`

	rows, err := m.db.QueryContext(ctx, query, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	total := 0
	contacts := []Contact{}

	for rows.Next() {
		var c Contact
		if err := rows.Scan(&total, &c.ID, &c.Name, &c.Email, &c.Message, &c.Read, &c.CreatedAt); err != nil {
			return nil, 0, err
		}
		contacts = append(contacts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return contacts, total, nil
}

func (m *ContactModel) exec(ctx context.Context, query string, args ...any) error {
	res, err := m.db.ExecContext(ctx, query, args...)
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

func (m *ContactModel) setRead(ctx context.Context, id int, read bool) error {
	return m.exec(ctx, `UPDATE contacts SET read = $1 WHERE id = $2`, read, id)
}

func (m *ContactModel) delete(ctx context.Context, id int) error {
	return m.exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
}
