package commentservice

import (
	"database/sql"
	"time"
)

type Comment struct {
	ID        int       `json:"id"`
	BlogID    int       `json:"blog_id"`
	UserID    *int      `json:"user_id,omitempty"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Commenter identifies the author of a new comment. A zero UserID marks an
// anonymous comment, which must carry a Name.
type Commenter struct {
	UserID   int
	Username string
	Name     string
}

type CommentModel struct {
	db *sql.DB
}

type CommentService struct {
	m *CommentModel
}
