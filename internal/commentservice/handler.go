package commentservice

import (
	"context"
	"database/sql"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/sushihentaime/folio/internal/common"
)

var strictPolicy = bluemonday.StrictPolicy()

func NewCommentService(db *sql.DB) *CommentService {
	return &CommentService{m: newCommentModel(db)}
}

// sanitize strips every tag from s. The result stays HTML-escaped so it can
// be rendered as is.
func sanitize(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

// CreateComment adds a comment to the published blog identified by slug.
// Authenticated commenters are named after their username.
func (s *CommentService) CreateComment(ctx context.Context, slug string, by Commenter, content string) (*Comment, error) {
	c := &Comment{
		Name:    sanitize(by.Name),
		Content: sanitize(content),
	}

	if by.UserID > 0 {
		c.UserID = &by.UserID
		c.Name = by.Username
	}

	v := common.NewValidator()
	if c.UserID == nil {
		v.Check(c.Name != "", "name", "must be provided")
		v.Check(v.CheckStringLength(c.Name, 2, 50), "name", "must be between 2 and 50 characters long")
	}
	v.Check(c.Content != "", "content", "must be provided")
	v.Check(v.CheckStringLength(c.Content, 1, 2000), "content", "must not be more than 2000 characters long")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blogID, err := s.m.getPublishedBlogID(ctx, slug)
	if err != nil {
		return nil, err
	}
	c.BlogID = blogID

	err = s.m.insert(ctx, c)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// GetComments lists the comments of a published blog, oldest first.
func (s *CommentService) GetComments(ctx context.Context, slug string) ([]Comment, error) {
	blogID, err := s.m.getPublishedBlogID(ctx, slug)
	if err != nil {
		return nil, err
	}

	return s.m.listByBlog(ctx, blogID)
}

// DeleteComment deletes a comment owned by userID. Admins may delete any
// comment.
func (s *CommentService) DeleteComment(ctx context.Context, id, userID int, isAdmin bool) error {
	v := common.NewValidator()
	common.ValidateID(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	c, err := s.m.getComment(ctx, id)
	if err != nil {
		return err
	}

	if !isAdmin && (c.UserID == nil || *c.UserID != userID) {
		return common.ErrForbidden
	}

	return s.m.delete(ctx, id)
}
