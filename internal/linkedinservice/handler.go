package linkedinservice

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sushihentaime/folio/internal/aiservice"
	"github.com/sushihentaime/folio/internal/common"
)

func NewLinkedInService(db *sql.DB, ai *aiservice.AIService) *LinkedInService {
	return &LinkedInService{m: newContentModel(db), ai: ai}
}

func (s *LinkedInService) save(ctx context.Context, c *Content) (*Content, error) {
	v := common.NewValidator()
	validateContent(v, c)
	common.ValidateID(v, c.UserID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err := s.m.insert(ctx, c)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// GeneratePost generates a LinkedIn post about topic and stores it.
func (s *LinkedInService) GeneratePost(ctx context.Context, userID int, topic, style string) (*Content, error) {
	text, err := s.ai.LinkedInPost(ctx, topic, style)
	if err != nil {
		return nil, err
	}

	return s.save(ctx, &Content{
		Kind:    KindPost,
		Topic:   strings.TrimSpace(topic),
		Content: text,
		Style:   strings.TrimSpace(style),
		UserID:  userID,
	})
}

// GenerateCarousel generates the slides of a carousel about topic and stores
// them.
func (s *LinkedInService) GenerateCarousel(ctx context.Context, userID int, topic string, slides int, style string) (*Content, error) {
	generated, err := s.ai.CarouselSlides(ctx, topic, slides, style)
	if err != nil {
		return nil, err
	}

	return s.save(ctx, &Content{
		Kind:   KindCarousel,
		Topic:  strings.TrimSpace(topic),
		Slides: generated,
		Style:  strings.TrimSpace(style),
		UserID: userID,
	})
}

// SaveContent stores hand-written or edited content.
func (s *LinkedInService) SaveContent(ctx context.Context, req *SaveContentRequest) (*Content, error) {
	return s.save(ctx, &Content{
		Kind:    req.Kind,
		Topic:   strings.TrimSpace(req.Topic),
		Content: strings.TrimSpace(req.Content),
		Slides:  req.Slides,
		Images:  req.Images,
		Style:   strings.TrimSpace(req.Style),
		UserID:  req.UserID,
	})
}

func (s *LinkedInService) GetContent(ctx context.Context, id int) (*Content, error) {
	v := common.NewValidator()
	common.ValidateID(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.get(ctx, id)
}

// GetContents lists stored content, newest first. kind may be empty, post or
// carousel.
func (s *LinkedInService) GetContents(ctx context.Context, kind string, p common.Pagination) ([]Content, common.Metadata, error) {
	v := common.NewValidator()
	v.Check(common.PermittedValue(kind, "", KindPost, KindCarousel), "kind", "must be either post or carousel")
	if !v.Valid() {
		return nil, common.Metadata{}, v.ValidationError()
	}

	contents, total, err := s.m.list(ctx, kind, p)
	if err != nil {
		return nil, common.Metadata{}, err
	}

	return contents, p.Metadata(total), nil
}

// UpdateContent applies a partial update; the kind of a stored item is fixed.
func (s *LinkedInService) UpdateContent(ctx context.Context, id int, req *UpdateContentRequest) (*Content, error) {
	c, err := s.GetContent(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Version != nil && *req.Version != c.Version {
		return nil, common.ErrEditConflict
	}

	if req.Topic != nil {
		c.Topic = strings.TrimSpace(*req.Topic)
	}
	if req.Content != nil {
		c.Content = strings.TrimSpace(*req.Content)
	}
	if req.Slides != nil {
		c.Slides = *req.Slides
	}
	if req.Images != nil {
		c.Images = *req.Images
	}
	if req.Style != nil {
		c.Style = strings.TrimSpace(*req.Style)
	}

	return s.update(ctx, c)
}

func (s *LinkedInService) update(ctx context.Context, c *Content) (*Content, error) {
	v := common.NewValidator()
	validateContent(v, c)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err := s.m.update(ctx, c)
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (s *LinkedInService) DeleteContent(ctx context.Context, id int) error {
	v := common.NewValidator()
	common.ValidateID(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.delete(ctx, id)
}

// ReorderSlides moves the carousel slide at index from to index to. Images
// follow their slides when there is exactly one image per slide.
func (s *LinkedInService) ReorderSlides(ctx context.Context, id, from, to int) (*Content, error) {
	c, err := s.GetContent(ctx, id)
	if err != nil {
		return nil, err
	}

	n := len(c.Slides)

	v := common.NewValidator()
	v.Check(c.Kind == KindCarousel, "kind", "must be a carousel")
	v.Check(from >= 0 && from < n, "from", "must be a valid slide index")
	v.Check(to >= 0 && to < n, "to", "must be a valid slide index")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if from == to {
		return c, nil
	}

	if len(c.Images) == n {
		c.Images = move(c.Images, from, to)
	}
	c.Slides = move(c.Slides, from, to)

	return s.update(ctx, c)
}
