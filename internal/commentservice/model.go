package commentservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sushihentaime/folio/internal/common"
)

func newCommentModel(db *sql.DB) *CommentModel {
	return &CommentModel{db: db}
}

// getPublishedBlogID resolves the slug of a published blog to its id.
func (m *CommentModel) getPublishedBlogID(ctx context.Context, slug string) (int, error) {
	query := `
		SELECT id
		FROM blogs
		WHERE slug = $1 AND published`

	var id int
	err := m.db.QueryRowContext(ctx, query, slug).Scan(&id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return 0, common.ErrRecordNotFound
		default:
			return 0, err
		}
	}

	return id, nil
}

func (m *CommentModel) insert(ctx context.Context, c *Comment) error {
	query := `
		INSERT INTO comments (blog_id, user_id, name, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := m.db.QueryRowContext(ctx, query, c.BlogID, c.UserID, c.Name, c.Content).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		switch {
		case common.ForeignKeyViolation(err, "comments_blog_id_fkey"):
			return common.ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

func (m *CommentModel) getComment(ctx context.Context, id int) (*Comment, error) {
	query := `
		SELECT id, blog_id, user_id, name, content, created_at
		FROM comments
		WHERE id = $1`

	var c Comment
	err := m.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.BlogID, &c.UserID, &c.Name, &c.Content, &c.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &c, nil
}

func (m *CommentModel) listByBlog(ctx context.Context, blogID int) ([]Comment, error) {
	query := `
		SELECT id, blog_id, user_id, name, content, created_at
		FROM comments
		WHERE blog_id = $1
		ORDER BY created_at, id`

	rows, err := m.db.QueryContext(ctx, query, blogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.BlogID, &c.UserID, &c.Name, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}

func (m *CommentModel) delete(ctx context.Context, id int) error {
	query := `
		DELETE FROM comments
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
