package byteservice

import (
	"database/sql"
	"time"
)

// Byte is a short post with an optional image and link.
type Byte struct {
	ID        int       `json:"id"`
	Headline  string    `json:"headline"`
	Body      string    `json:"body"`
	ImageURL  string    `json:"image_url,omitempty"`
	LinkURL   string    `json:"link_url,omitempty"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

type CreateByteRequest struct {
	Headline string `json:"headline"`
	Body     string `json:"body"`
	ImageURL string `json:"image_url"`
	LinkURL  string `json:"link_url"`
	UserID   int    `json:"-"`
}

type UpdateByteRequest struct {
	Headline *string `json:"headline"`
	Body     *string `json:"body"`
	ImageURL *string `json:"image_url"`
	LinkURL  *string `json:"link_url"`
	Version  *int    `json:"version"`
}

type ByteModel struct {
	db *sql.DB
}

type ByteService struct {
	m *ByteModel
}
