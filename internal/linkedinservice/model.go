package linkedinservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sushihentaime/folio/internal/common"
)

var ErrUserForeignKey = errors.New("user_id does not exist")

const contentColumns = `id, kind, topic, content, slides, images, style, user_id, created_at, updated_at, version`

type scanner interface {
	Scan(dest ...any) error
}

func newContentModel(db *sql.DB) *ContentModel {
	return &ContentModel{db: db}
}

func scanContent(row scanner, extra ...any) (*Content, error) {
	var (
		c              Content
		slides, images []byte
	)

	dest := append(extra, &c.ID, &c.Kind, &c.Topic, &c.Content, &slides, &images, &c.Style, &c.UserID,
		&c.CreatedAt, &c.UpdatedAt, &c.Version)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(slides, &c.Slides); err != nil {
		return nil, fmt.Errorf("could not decode slides: %w", err)
	}

	if err := json.Unmarshal(images, &c.Images); err != nil {
		return nil, fmt.Errorf("could not decode images: %w", err)
	}

	return &c, nil
}

// marshalJSONB encodes v for a JSONB column, storing nil slices as [].
func marshalJSONB[T any](v []T) (string, error) {
	if v == nil {
		v = []T{}
	}
	b, err := json.Marshal(v)
	return string(b), err
}

func (m *ContentModel) insert(ctx context.Context, c *Content) error {
	query := `
		INSERT INTO linkedin_posts (kind, topic, content, slides, images, style, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at, version`

	slides, err := marshalJSONB(c.Slides)
	if err != nil {
		return err
	}

	images, err := marshalJSONB(c.Images)
	if err != nil {
		return err
	}

	err = m.db.QueryRowContext(ctx, query, c.Kind, c.Topic, c.Content, slides, images, c.Style, c.UserID).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt, &c.Version)
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

func (m *ContentModel) get(ctx context.Context, id int) (*Content, error) {
	query := `
		SELECT ` + contentColumns + `
		FROM linkedin_posts
		WHERE id = $1`

	c, err := scanContent(m.db.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return c, nil
}

func (m *ContentModel) update(ctx context.Context, c *Content) error {
	query := `
		UPDATE linkedin_posts
		SET topic = $1, content = $2, slides = $3, images = $4, style = $5, updated_at = NOW(), version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING updated_at, version`

	slides, err := marshalJSONB(c.Slides)
	if err != nil {
		return err
	}

	images, err := marshalJSONB(c.Images)
	if err != nil {
		return err
	}

	err = m.db.QueryRowContext(ctx, query, c.Topic, c.Content, slides, images, c.Style, c.ID, c.Version).
		Scan(&c.UpdatedAt, &c.Version)
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

func (m *ContentModel) delete(ctx context.Context, id int) error {
	query := `
		DELETE FROM linkedin_posts
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

// list returns content newest first; an empty kind lists both kinds.
func (m *ContentModel) list(ctx context.Context, kind string, p common.Pagination) ([]Content, int, error) {
	query := `
		SELECT count(*) OVER(), ` + contentColumns + `
		FROM linkedin_posts
		WHERE $1 = '' OR kind = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := m.db.QueryContext(ctx, query, kind, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	total := 0
	contents := []Content{}

	for rows.Next() {
		c, err := scanContent(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		contents = append(contents, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return contents, total, nil
}
