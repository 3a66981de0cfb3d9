package blogservice

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxSlugLength = 80

var (
	nonSlugRX = regexp.MustCompile(`[^a-z0-9]+`)
	SlugRX    = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// letterFolds spells out latin letters that have no decomposition into a
// base letter plus accent.
var letterFolds = strings.NewReplacer(
	"ß", "ss", "ẞ", "ss",
	"æ", "ae", "Æ", "ae",
	"œ", "oe", "Œ", "oe",
	"ø", "o", "Ø", "o",
	"ł", "l", "Ł", "l",
	"đ", "d", "Đ", "d",
	"ð", "d", "Ð", "d",
	"þ", "th", "Þ", "th",
	"ı", "i",
)

// Slugify derives a URL-safe identifier from a title: accents are folded to
// their base letter, everything outside [a-z0-9] collapses to a single dash.
// Titles without any latin letters or digits give an empty slug.
func Slugify(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, letterFolds.Replace(title))
	if err != nil {
		folded = title
	}

	slug := nonSlugRX.ReplaceAllString(strings.ToLower(folded), "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}

	return slug
}
