package aiservice

import (
	"context"
	"errors"
)

var (
	ErrDisabled      = errors.New("content generation is not configured")
	ErrEmptyResponse = errors.New("the model returned an empty response")
)

const (
	MinSlides = 3
	MaxSlides = 10
	maxTags   = 5
)

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Slide is one page of a LinkedIn carousel.
type Slide struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type AIService struct {
	g Generator
}
