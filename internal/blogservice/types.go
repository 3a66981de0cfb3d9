package blogservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/folio/internal/common"
)

type Author struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

type Blog struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
	// Excerpt is plain text.
	Excerpt string `json:"excerpt"`
	// Content is stored in Markdown format.
	Content     string     `json:"content"`
	ContentHTML string     `json:"content_html,omitempty"`
	Tags        []string   `json:"tags"`
	CoverImage  string     `json:"cover_image,omitempty"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Author      Author     `json:"author"`
	ReadingTime int        `json:"reading_time"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Version     int        `json:"version"`
}

// BlogVersion is the snapshot of a blog taken each time it is saved.
type BlogVersion struct {
	BlogID    int       `json:"blog_id"`
	Version   int       `json:"version"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

type CreateBlogRequest struct {
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Excerpt    string   `json:"excerpt"`
	Content    string   `json:"content"`
	Format     string   `json:"format"`
	Tags       []string `json:"tags"`
	CoverImage string   `json:"cover_image"`
	Published  bool     `json:"published"`
	UserID     int      `json:"-"`
}

// UpdateBlogRequest carries a partial update; nil fields are left unchanged.
// Version, when set, must match the stored version.
type UpdateBlogRequest struct {
	Title      *string   `json:"title"`
	Slug       *string   `json:"slug"`
	Excerpt    *string   `json:"excerpt"`
	Content    *string   `json:"content"`
	Format     *string   `json:"format"`
	Tags       *[]string `json:"tags"`
	CoverImage *string   `json:"cover_image"`
	Published  *bool     `json:"published"`
	Version    *int      `json:"version"`
}

// Editor identifies who is acting on a post. Admins may edit any post,
// everyone else only their own.
type Editor struct {
	UserID int
	Admin  bool
}

func (e Editor) canEdit(b *Blog) bool {
	return e.Admin || b.Author.ID == e.UserID
}

// ownerFilter is the user_id to scope listings to; zero lists every post.
func (e Editor) ownerFilter() int {
	if e.Admin {
		return 0
	}
	return e.UserID
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
	c *common.Cache
}
