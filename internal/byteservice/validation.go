package byteservice

import "github.com/sushihentaime/folio/internal/common"

func validateHeadline(v *common.Validator, headline string) {
	v.Check(headline != "", "headline", "must be provided")
	v.Check(v.CheckStringLength(headline, 3, 140), "headline", "must be between 3 and 140 characters long")
}

func validateBody(v *common.Validator, body string) {
	v.Check(body != "", "body", "must be provided")
	v.Check(v.CheckStringLength(body, 1, 1000), "body", "must not be more than 1000 characters long")
}

func validateURL(v *common.Validator, url, key string) {
	if url != "" {
		v.Check(common.ValidURL(url), key, "must be an absolute http or https URL")
	}
}

func validateByte(v *common.Validator, b *Byte) {
	validateHeadline(v, b.Headline)
	validateBody(v, b.Body)
	validateURL(v, b.ImageURL, "image_url")
	validateURL(v, b.LinkURL, "link_url")
}
