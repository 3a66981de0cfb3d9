package linkedinservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/folio/internal/aiservice"
)

const (
	KindPost     = "post"
	KindCarousel = "carousel"
)

// Content is a generated or hand-written LinkedIn post or carousel.
type Content struct {
	ID        int               `json:"id"`
	Kind      string            `json:"kind"`
	Topic     string            `json:"topic"`
	Content   string            `json:"content"`
	Slides    []aiservice.Slide `json:"slides"`
	Images    []string          `json:"images"`
	Style     string            `json:"style"`
	UserID    int               `json:"user_id"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Version   int               `json:"version"`
}

type SaveContentRequest struct {
	Kind    string            `json:"kind"`
	Topic   string            `json:"topic"`
	Content string            `json:"content"`
	Slides  []aiservice.Slide `json:"slides"`
	Images  []string          `json:"images"`
	Style   string            `json:"style"`
	UserID  int               `json:"-"`
}

type UpdateContentRequest struct {
	Topic   *string            `json:"topic"`
	Content *string            `json:"content"`
	Slides  *[]aiservice.Slide `json:"slides"`
	Images  *[]string          `json:"images"`
	Style   *string            `json:"style"`
	Version *int               `json:"version"`
}

type ContentModel struct {
	db *sql.DB
}

type LinkedInService struct {
	m  *ContentModel
	ai *aiservice.AIService
}
