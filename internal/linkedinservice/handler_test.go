package linkedinservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/folio/internal/aiservice"
	"github.com/sushihentaime/folio/internal/common"
)

func setupTestEnvironment(t *testing.T) (*LinkedInService, *aiservice.MockGenerator, int) {
	db := common.TestDB("file://../../migrations", t)

	var userId int
	err := db.QueryRow(`
		INSERT INTO users (username, email, password)
		VALUES ('admin', 'admin@example.com', '\x00')
		RETURNING id`).Scan(&userId)
	require.NoError(t, err)

	g := new(aiservice.MockGenerator)

	return NewLinkedInService(db, aiservice.NewAIService(g)), g, userId
}

func TestGeneratePost(t *testing.T) {
	s, g, userId := setupTestEnvironment(t)
	g.On("Generate", mock.Anything, mock.Anything).Return("Shipping beats perfect. What did you ship this week?", nil)

	c, err := s.GeneratePost(context.Background(), userId, "Shipping fast", "")
	require.NoError(t, err)
	assert.Equal(t, KindPost, c.Kind)
	assert.Equal(t, "Shipping beats perfect. What did you ship this week?", c.Content)

	stored, err := s.GetContent(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Content, stored.Content)
	assert.Empty(t, stored.Slides)
}

func TestGenerateCarousel(t *testing.T) {
	s, g, userId := setupTestEnvironment(t)
	g.On("Generate", mock.Anything, mock.Anything).
		Return(`[{"title":"One","body":"1"},{"title":"Two","body":"2"},{"title":"Three","body":"3"}]`, nil)

	c, err := s.GenerateCarousel(context.Background(), userId, "Go tips", 3, "playful")
	require.NoError(t, err)
	assert.Equal(t, KindCarousel, c.Kind)
	assert.Equal(t, "playful", c.Style)

	stored, err := s.GetContent(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, []aiservice.Slide{{Title: "One", Body: "1"}, {Title: "Two", Body: "2"}, {Title: "Three", Body: "3"}}, stored.Slides)
}

func TestSaveAndListContent(t *testing.T) {
	s, _, userId := setupTestEnvironment(t)
	ctx := context.Background()

	testCases := []struct {
		name        string
		req         *SaveContentRequest
		expectedErr error
	}{
		{
			name: "post",
			req:  &SaveContentRequest{Kind: KindPost, Topic: "Hiring", Content: "We are hiring!", UserID: userId},
		},
		{
			name: "carousel",
			req: &SaveContentRequest{
				Kind:   KindCarousel,
				Topic:  "Go tips",
				Slides: []aiservice.Slide{{Title: "Tip 1"}},
				Images: []string{"https://example.com/1.png"},
				UserID: userId,
			},
		},
		{
			name:        "unknown kind",
			req:         &SaveContentRequest{Kind: "story", Topic: "Hiring", Content: "text", UserID: userId},
			expectedErr: common.ValidationError{Errors: map[string]string{"kind": "must be either post or carousel"}},
		},
		{
			name:        "post without content",
			req:         &SaveContentRequest{Kind: KindPost, Topic: "Hiring", UserID: userId},
			expectedErr: common.ValidationError{Errors: map[string]string{"content": "must be provided"}},
		},
		{
			name:        "carousel without slides",
			req:         &SaveContentRequest{Kind: KindCarousel, Topic: "Go tips", UserID: userId},
			expectedErr: common.ValidationError{Errors: map[string]string{"slides": "must contain at least one slide"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.SaveContent(ctx, tc.req)
			assert.Equal(t, tc.expectedErr, err)
		})
	}

	all, md, err := s.GetContents(ctx, "", common.NewPagination(1, 10))
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, 2, md.TotalRecords)

	carousels, _, err := s.GetContents(ctx, KindCarousel, common.NewPagination(1, 10))
	require.NoError(t, err)
	require.Len(t, carousels, 1)
	assert.Equal(t, []string{"https://example.com/1.png"}, carousels[0].Images)

	_, _, err = s.GetContents(ctx, "story", common.NewPagination(1, 10))
	assert.Equal(t, common.ValidationError{Errors: map[string]string{"kind": "must be either post or carousel"}}, err)
}

func TestUpdateAndDeleteContent(t *testing.T) {
	s, _, userId := setupTestEnvironment(t)
	ctx := context.Background()

	c, err := s.SaveContent(ctx, &SaveContentRequest{Kind: KindPost, Topic: "Hiring", Content: "We are hiring!", UserID: userId})
	require.NoError(t, err)

	text := "We are still hiring!"
	updated, err := s.UpdateContent(ctx, c.ID, &UpdateContentRequest{Content: &text})
	require.NoError(t, err)
	assert.Equal(t, text, updated.Content)
	assert.Equal(t, 2, updated.Version)

	stale := 1
	_, err = s.UpdateContent(ctx, c.ID, &UpdateContentRequest{Content: &text, Version: &stale})
	assert.Equal(t, common.ErrEditConflict, err)

	assert.NoError(t, s.DeleteContent(ctx, c.ID))
	assert.Equal(t, common.ErrRecordNotFound, s.DeleteContent(ctx, c.ID))
}

func TestReorderSlides(t *testing.T) {
	s, _, userId := setupTestEnvironment(t)
	ctx := context.Background()

	slides := []aiservice.Slide{{Title: "A"}, {Title: "B"}, {Title: "C"}}

	withImages, err := s.SaveContent(ctx, &SaveContentRequest{
		Kind:   KindCarousel,
		Topic:  "Ordering",
		Slides: slides,
		Images: []string{"https://example.com/a.png", "https://example.com/b.png", "https://example.com/c.png"},
		UserID: userId,
	})
	require.NoError(t, err)

	moved, err := s.ReorderSlides(ctx, withImages.ID, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []aiservice.Slide{{Title: "B"}, {Title: "C"}, {Title: "A"}}, moved.Slides)
	assert.Equal(t, []string{"https://example.com/b.png", "https://example.com/c.png", "https://example.com/a.png"}, moved.Images)

	oneImage, err := s.SaveContent(ctx, &SaveContentRequest{
		Kind:   KindCarousel,
		Topic:  "Ordering",
		Slides: slides,
		Images: []string{"https://example.com/cover.png"},
		UserID: userId,
	})
	require.NoError(t, err)

	moved, err = s.ReorderSlides(ctx, oneImage.ID, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []aiservice.Slide{{Title: "C"}, {Title: "A"}, {Title: "B"}}, moved.Slides)
	assert.Equal(t, []string{"https://example.com/cover.png"}, moved.Images)

	_, err = s.ReorderSlides(ctx, oneImage.ID, 0, 3)
	assert.Equal(t, common.ValidationError{Errors: map[string]string{"to": "must be a valid slide index"}}, err)

	post, err := s.SaveContent(ctx, &SaveContentRequest{Kind: KindPost, Topic: "Plain", Content: "text", UserID: userId})
	require.NoError(t, err)

	_, err = s.ReorderSlides(ctx, post.ID, 0, 0)
	assert.Equal(t, common.ValidationError{Errors: map[string]string{
		"kind": "must be a carousel",
		"from": "must be a valid slide index",
		"to":   "must be a valid slide index",
	}}, err)
}
