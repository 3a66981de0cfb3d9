package byteservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sushihentaime/folio/internal/common"
)

var ErrUserForeignKey = errors.New("user_id does not exist")

func newByteModel(db *sql.DB) *ByteModel {
	return &ByteModel{db: db}
}

func (m *ByteModel) insert(ctx context.Context, b *Byte) error {
	query := `
		INSERT INTO bytes (headline, body, image_url, link_url, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at, version`

	err := m.db.QueryRowContext(ctx, query, b.Headline, b.Body, b.ImageURL, b.LinkURL, b.UserID).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt, &b.Version)
	if err != nil {
		switch {
		case common.ForeignKeyViolation(err, ""):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

func (m *ByteModel) getByteById(ctx context.Context, id int) (*Byte, error) {
	query := `
		SELECT id, headline, body, image_url, link_url, user_id, created_at, updated_at, version
		FROM bytes
		WHERE id = $1`

	var b Byte
	err := m.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.Headline, &b.Body, &b.ImageURL, &b.LinkURL,
		&b.UserID, &b.CreatedAt, &b.UpdatedAt, &b.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &b, nil
}

func (m *ByteModel) update(ctx context.Context, b *Byte) error {
	query := `
		UPDATE bytes
		SET headline = $1, body = $2, image_url = $3, link_url = $4, updated_at = NOW(), version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING updated_at, version`

	err := m.db.QueryRowContext(ctx, query, b.Headline, b.Body, b.ImageURL, b.LinkURL, b.ID, b.Version).
		Scan(&b.UpdatedAt, &b.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return common.ErrEditConflict
		default:
			return err
		}
	}

	return nil
}

func (m *ByteModel) delete(ctx context.Context, id int) error {
	query := `
		DELETE FROM bytes
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
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

// list returns bytes newest first. A non-empty pattern filters on headline and
// body.
func (m *ByteModel) list(ctx context.Context, pattern string, p common.Pagination) ([]Byte, int, error) {
	query := `
		SELECT count(*) OVER(), id, headline, body, image_url, link_url, user_id, created_at, updated_at, version
		FROM bytes
		WHERE $1 = '' OR headline ILIKE $1 OR body ILIKE $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := m.db.QueryContext(ctx, query, pattern, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	total := 0
	bytes := []Byte{}

	for rows.Next() {
		var b Byte
		err := rows.Scan(&total, &b.ID, &b.Headline, &b.Body, &b.ImageURL, &b.LinkURL, &b.UserID,
			&b.CreatedAt, &b.UpdatedAt, &b.Version)
		if err != nil {
			return nil, 0, err
		}
		bytes = append(bytes, b)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return bytes, total, nil
}
