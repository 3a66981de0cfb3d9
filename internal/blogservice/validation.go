package blogservice

import (
	"github.com/sushihentaime/folio/internal/common"
)

const (
	maxTags      = 10
	maxTagLength = 30
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 3, 200), "title", "must be between 3 and 200 characters long")
}

func validateContent(v *common.Validator, content string) {
	v.Check(content != "", "content", "must be provided")
}

func validateSlug(v *common.Validator, slug string) {
	v.Check(slug != "", "slug", "must be provided")
	v.Check(len(slug) <= maxSlugLength, "slug", "must not be more than 80 characters long")
	v.Check(SlugRX.MatchString(slug), "slug", "must only contain lowercase letters, numbers, and dashes")
}

func validateExcerpt(v *common.Validator, excerpt string) {
	v.Check(v.CheckStringLength(excerpt, 0, 300), "excerpt", "must not be more than 300 characters long")
}

func validateTags(v *common.Validator, tags []string) {
	v.Check(len(tags) <= maxTags, "tags", "must not contain more than 10 tags")
	for _, t := range tags {
		v.Check(v.CheckStringLength(t, 1, maxTagLength), "tags", "each tag must be between 1 and 30 characters long")
	}
}

func validateCoverImage(v *common.Validator, url string) {
	if url != "" {
		v.Check(common.ValidURL(url), "cover_image", "must be an absolute http or https URL")
	}
}

func validateFormat(v *common.Validator, format string) {
	v.Check(common.PermittedValue(format, "", FormatMarkdown, FormatHTML), "format", "must be either markdown or html")
}
