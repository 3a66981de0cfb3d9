package aiservice

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/sushihentaime/folio/internal/common"
)

var codeFenceRX = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")

// NewAIService returns a service backed by g. A nil generator disables every
// operation with ErrDisabled.
func NewAIService(g Generator) *AIService {
	return &AIService{g: g}
}

func (s *AIService) Enabled() bool {
	return s.g != nil
}

func (s *AIService) generate(ctx context.Context, prompt string) (string, error) {
	if s.g == nil {
		return "", ErrDisabled
	}

	return s.g.Generate(ctx, prompt)
}

func validateTopic(v *common.Validator, topic string) {
	v.Check(topic != "", "topic", "must be provided")
	v.Check(v.CheckStringLength(topic, 3, 200), "topic", "must be between 3 and 200 characters long")
}

func validateStyle(v *common.Validator, style string) {
	v.Check(v.CheckStringLength(style, 0, 100), "style", "must not be more than 100 characters long")
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

// stripCodeFence removes a Markdown code fence wrapping the whole response.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if m := codeFenceRX.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

// BlogDraft generates a Markdown blog post about topic.
func (s *AIService) BlogDraft(ctx context.Context, topic, tone string) (string, error) {
	topic = strings.TrimSpace(topic)

	v := common.NewValidator()
	validateTopic(v, topic)
	validateStyle(v, tone)
	if !v.Valid() {
		return "", v.ValidationError()
	}

	text, err := s.generate(ctx, blogDraftPrompt(topic, orDefault(tone, "informative")))
	if err != nil {
		return "", err
	}

	return stripCodeFence(text), nil
}

// Excerpt generates a one sentence summary of content.
func (s *AIService) Excerpt(ctx context.Context, content string) (string, error) {
	v := common.NewValidator()
	v.Check(strings.TrimSpace(content) != "", "content", "must be provided")
	if !v.Valid() {
		return "", v.ValidationError()
	}

	text, err := s.generate(ctx, excerptPrompt(content))
	if err != nil {
		return "", err
	}

	return strings.Trim(strings.TrimSpace(text), `"`), nil
}

// SuggestTags returns up to five lower-cased, de-duplicated tags for content.
func (s *AIService) SuggestTags(ctx context.Context, content string) ([]string, error) {
	v := common.NewValidator()
	v.Check(strings.TrimSpace(content) != "", "content", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	text, err := s.generate(ctx, tagsPrompt(content))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	tags := []string{}
	for _, t := range strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == '\n' }) {
		t = strings.ToLower(strings.Trim(strings.TrimSpace(t), "#-*\"'`"))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
		if len(tags) == maxTags {
			break
		}
	}

	return tags, nil
}

// LinkedInPost generates the text of a LinkedIn post about topic.
func (s *AIService) LinkedInPost(ctx context.Context, topic, style string) (string, error) {
	topic = strings.TrimSpace(topic)

	v := common.NewValidator()
	validateTopic(v, topic)
	validateStyle(v, style)
	if !v.Valid() {
		return "", v.ValidationError()
	}

	return s.generate(ctx, linkedInPostPrompt(topic, orDefault(style, "professional")))
}

// ClampSlides limits a requested slide count to MinSlides..MaxSlides.
func ClampSlides(n int) int {
	return min(max(n, MinSlides), MaxSlides)
}

// CarouselSlides generates n carousel slides about topic. n is clamped to
// MinSlides..MaxSlides.
func (s *AIService) CarouselSlides(ctx context.Context, topic string, n int, style string) ([]Slide, error) {
	topic = strings.TrimSpace(topic)

	v := common.NewValidator()
	validateTopic(v, topic)
	validateStyle(v, style)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	n = ClampSlides(n)

	text, err := s.generate(ctx, carouselPrompt(topic, n, orDefault(style, "professional")))
	if err != nil {
		return nil, err
	}

	var slides []Slide
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &slides); err != nil {
		return nil, fmt.Errorf("could not decode carousel slides: %w", err)
	}

	out := make([]Slide, 0, len(slides))
	for _, sl := range slides {
		sl.Title = strings.TrimSpace(sl.Title)
		sl.Body = strings.TrimSpace(sl.Body)
		if sl.Title == "" && sl.Body == "" {
			continue
		}
		out = append(out, sl)
	}

	if len(out) == 0 {
		return nil, ErrEmptyResponse
	}

	if len(out) > n {
		out = out[:n]
	}

	return out, nil
}
