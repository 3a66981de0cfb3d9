package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sushihentaime/folio/internal/common"
)

var (
	ErrDuplicateSlug  = errors.New("a blog with this slug already exists")
	ErrUserForeignKey = errors.New("user_id does not exist")
)

const blogColumns = `
	b.id, b.title, b.slug, b.excerpt, b.content, b.tags, b.cover_image, b.published, b.published_at,
	b.user_id, u.username, b.created_at, b.updated_at, b.version`

type scanner interface {
	Scan(dest ...any) error
}

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

func scanBlog(row scanner, extra ...any) (*Blog, error) {
	var blog Blog

	dest := append(extra,
		&blog.ID, &blog.Title, &blog.Slug, &blog.Excerpt, &blog.Content, pq.Array(&blog.Tags), &blog.CoverImage,
		&blog.Published, &blog.PublishedAt, &blog.Author.ID, &blog.Author.Username, &blog.CreatedAt,
		&blog.UpdatedAt, &blog.Version)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if blog.Tags == nil {
		blog.Tags = []string{}
	}
	blog.ReadingTime = ReadingTime(blog.Content)

	return &blog, nil
}

// queryBlogs runs a query selecting count(*) OVER() followed by blogColumns.
func (m *BlogModel) queryBlogs(ctx context.Context, query string, args ...any) ([]Blog, int, error) {
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	total := 0
	blogs := []Blog{}

	for rows.Next() {
		blog, err := scanBlog(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		blogs = append(blogs, *blog)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return blogs, total, nil
}

func (m *BlogModel) insertVersion(tx *sql.Tx, ctx context.Context, blog *Blog) error {
	query := `
		INSERT INTO blog_versions (blog_id, version, title, excerpt, content, tags)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := tx.ExecContext(ctx, query, blog.ID, blog.Version, blog.Title, blog.Excerpt, blog.Content, pq.Array(blog.Tags))
	return err
}

// insert stores the blog and its first version snapshot.
func (m *BlogModel) insert(ctx context.Context, blog *Blog) error {
	query := `
		INSERT INTO blogs (title, slug, excerpt, content, tags, cover_image, published, published_at, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CASE WHEN $7 THEN NOW() END, $8)
		RETURNING id, published_at, created_at, updated_at, version`

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	args := []any{blog.Title, blog.Slug, blog.Excerpt, blog.Content, pq.Array(blog.Tags), blog.CoverImage, blog.Published, blog.Author.ID}

	err = tx.QueryRowContext(ctx, query, args...).Scan(&blog.ID, &blog.PublishedAt, &blog.CreatedAt, &blog.UpdatedAt, &blog.Version)
	if err != nil {
		switch {
		case common.UniqueViolation(err, "blogs_slug_key"):
			return ErrDuplicateSlug
		case common.ForeignKeyViolation(err, "blogs_user_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	if err := m.insertVersion(tx, ctx, blog); err != nil {
		return err
	}

	return tx.Commit()
}

func (m *BlogModel) getBlogById(ctx context.Context, id int) (*Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		WHERE b.id = $1`

	blog, err := scanBlog(m.db.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return blog, nil
}

func (m *BlogModel) getPublishedBySlug(ctx context.Context, slug string) (*Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		WHERE b.slug = $1 AND b.published`

	blog, err := scanBlog(m.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return blog, nil
}

// updateBlog saves the blog if its version still matches and stores a
// snapshot of the new version.
func (m *BlogModel) updateBlog(ctx context.Context, blog *Blog, by Editor) error {
	query := `
		UPDATE blogs
		SET title = $1, slug = $2, excerpt = $3, content = $4, tags = $5, cover_image = $6, published = $7,
			published_at = CASE WHEN $7 THEN COALESCE(published_at, NOW()) END,
			updated_at = NOW(), version = version + 1
		WHERE id = $8 AND version = $9 AND (user_id = $10 OR $11)
		RETURNING published_at, updated_at, version`

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	args := []any{blog.Title, blog.Slug, blog.Excerpt, blog.Content, pq.Array(blog.Tags), blog.CoverImage, blog.Published, blog.ID, blog.Version, by.UserID, by.Admin}

	err = tx.QueryRowContext(ctx, query, args...).Scan(&blog.PublishedAt, &blog.UpdatedAt, &blog.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return common.ErrEditConflict
		case common.UniqueViolation(err, "blogs_slug_key"):
			return ErrDuplicateSlug
		default:
			return err
		}
	}

	if err := m.insertVersion(tx, ctx, blog); err != nil {
		return err
	}

	return tx.Commit()
}

func (m *BlogModel) deleteBlog(ctx context.Context, id int, by Editor) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1 AND (user_id = $2 OR $3)`

	res, err := m.db.ExecContext(ctx, query, id, by.UserID, by.Admin)
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

// getBlogs returns a page of blogs sorted newest first. Drafts are included
// only when publishedOnly is false; an empty tag disables tag filtering and a
// zero ownerID lists every author.
func (m *BlogModel) getBlogs(ctx context.Context, publishedOnly bool, tag string, ownerID int, p common.Pagination) ([]Blog, int, error) {
	query := `
		SELECT count(*) OVER(), ` + blogColumns + `
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		WHERE (b.published OR NOT $1) AND ($2 = '' OR $2 = ANY(b.tags)) AND ($3 = 0 OR b.user_id = $3)
		ORDER BY COALESCE(b.published_at, b.created_at) DESC, b.id DESC
		LIMIT $4 OFFSET $5`

	return m.queryBlogs(ctx, query, publishedOnly, tag, ownerID, p.Limit, p.Offset())
}

// getBlogsByQuery matches published blogs whose title, excerpt, content or
// tags contain q, case-insensitively.
func (m *BlogModel) getBlogsByQuery(ctx context.Context, q string, p common.Pagination) ([]Blog, int, error) {
	query := `
		SELECT count(*) OVER(), ` + blogColumns + `
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		WHERE b.published AND (
			b.title ILIKE $1 OR b.excerpt ILIKE $1 OR b.content ILIKE $1
			OR array_to_string(b.tags, ' ') ILIKE $1)
		ORDER BY (b.title ILIKE $1) DESC, b.published_at DESC, b.id DESC
		LIMIT $2 OFFSET $3`

	return m.queryBlogs(ctx, query, common.ContainsPattern(q), p.Limit, p.Offset())
}

// getRelatedCandidates returns the published blogs other than id that share
// at least one tag.
func (m *BlogModel) getRelatedCandidates(ctx context.Context, id int, tags []string) ([]Blog, error) {
	query := `
		SELECT count(*) OVER(), ` + blogColumns + `
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		WHERE b.published AND b.id <> $1 AND b.tags && $2`

	blogs, _, err := m.queryBlogs(ctx, query, id, pq.Array(tags))
	return blogs, err
}

func (m *BlogModel) getTags(ctx context.Context) ([]TagCount, error) {
	query := `
		SELECT t.tag, COUNT(*)
		FROM blogs b, unnest(b.tags) AS t(tag)
		WHERE b.published
		GROUP BY t.tag
		ORDER BY COUNT(*) DESC, t.tag`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []TagCount{}
	for rows.Next() {
		var tc TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, err
		}
		tags = append(tags, tc)
	}

	return tags, rows.Err()
}

func (m *BlogModel) getVersions(ctx context.Context, blogID int) ([]BlogVersion, error) {
	query := `
		SELECT blog_id, version, title, excerpt, content, tags, created_at
		FROM blog_versions
		WHERE blog_id = $1
		ORDER BY version DESC`

	rows, err := m.db.QueryContext(ctx, query, blogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	versions := []BlogVersion{}
	for rows.Next() {
		var v BlogVersion
		if err := rows.Scan(&v.BlogID, &v.Version, &v.Title, &v.Excerpt, &v.Content, pq.Array(&v.Tags), &v.CreatedAt); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}

	return versions, rows.Err()
}

func (m *BlogModel) getVersion(ctx context.Context, blogID, version int) (*BlogVersion, error) {
	query := `
		SELECT blog_id, version, title, excerpt, content, tags, created_at
		FROM blog_versions
		WHERE blog_id = $1 AND version = $2`

	var v BlogVersion
	err := m.db.QueryRowContext(ctx, query, blogID, version).Scan(&v.BlogID, &v.Version, &v.Title, &v.Excerpt, &v.Content, pq.Array(&v.Tags), &v.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &v, nil
}
