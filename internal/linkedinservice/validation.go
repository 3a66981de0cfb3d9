package linkedinservice

import (
	"github.com/sushihentaime/folio/internal/aiservice"
	"github.com/sushihentaime/folio/internal/common"
)

const maxPostLength = 3000

func validateContent(v *common.Validator, c *Content) {
	v.Check(common.PermittedValue(c.Kind, KindPost, KindCarousel), "kind", "must be either post or carousel")
	v.Check(c.Topic != "", "topic", "must be provided")
	v.Check(v.CheckStringLength(c.Topic, 3, 200), "topic", "must be between 3 and 200 characters long")
	v.Check(v.CheckStringLength(c.Style, 0, 100), "style", "must not be more than 100 characters long")
	v.Check(v.CheckStringLength(c.Content, 0, maxPostLength), "content", "must not be more than 3000 characters long")

	switch c.Kind {
	case KindPost:
		v.Check(c.Content != "", "content", "must be provided")
	case KindCarousel:
		v.Check(len(c.Slides) > 0, "slides", "must contain at least one slide")
		v.Check(len(c.Slides) <= aiservice.MaxSlides, "slides", "must not contain more than 10 slides")
		for _, s := range c.Slides {
			v.Check(s.Title != "" || s.Body != "", "slides", "each slide must have a title or a body")
		}
	}

	for _, img := range c.Images {
		v.Check(common.ValidURL(img), "images", "each image must be an absolute http or https URL")
	}
}
