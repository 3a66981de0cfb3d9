package blogservice

import (
	"bytes"
	"html"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

const (
	wordsPerMinute   = 200
	maxExcerptLength = 160
)

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
)

type rule struct {
	re   *regexp.Regexp
	repl string
	fn   func(string) string
}

// attrValue matches a double or single quoted attribute value as two groups,
// only one of which is set.
const attrValue = `(?:"([^"]*)"|'([^']*)')`

var (
	// listItemRX matches an <li> that contains no other <li>.
	listItemRX = regexp.MustCompile(`(?is)<li[^>]*>((?:[^<]|<[^l/]|<l[^i]|</[^l]|</l[^i])*?)</li>`)
	listTagRX  = regexp.MustCompile(`(?is)</?(?:ul|ol)[^>]*>`)
)

// htmlToMarkdownRules run in order; later rules see the output of earlier ones.
var htmlToMarkdownRules = []rule{
	{re: regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(?:script|style)\s*>`)},
	{re: regexp.MustCompile(`(?is)<!--.*?-->`)},
	{re: regexp.MustCompile(`(?is)<h1[^>]*>(.*?)</h1>`), repl: "\n# $1\n\n"},
	{re: regexp.MustCompile(`(?is)<h2[^>]*>(.*?)</h2>`), repl: "\n## $1\n\n"},
	{re: regexp.MustCompile(`(?is)<h3[^>]*>(.*?)</h3>`), repl: "\n### $1\n\n"},
	{re: regexp.MustCompile(`(?is)<h4[^>]*>(.*?)</h4>`), repl: "\n#### $1\n\n"},
	{re: regexp.MustCompile(`(?is)<h5[^>]*>(.*?)</h5>`), repl: "\n##### $1\n\n"},
	{re: regexp.MustCompile(`(?is)<h6[^>]*>(.*?)</h6>`), repl: "\n###### $1\n\n"},
	{re: regexp.MustCompile(`(?is)<pre[^>]*>\s*<code[^>]*>(.*?)</code>\s*</pre>`), repl: "\n```\n$1\n```\n\n"},
	{re: regexp.MustCompile(`(?is)<pre[^>]*>(.*?)</pre>`), repl: "\n```\n$1\n```\n\n"},
	{re: regexp.MustCompile(`(?is)<(?:strong|b)(?:\s[^>]*)?>(.*?)</(?:strong|b)>`), repl: "**$1**"},
	{re: regexp.MustCompile(`(?is)<(?:em|i)(?:\s[^>]*)?>(.*?)</(?:em|i)>`), repl: "*$1*"},
	{re: regexp.MustCompile(`(?is)<code[^>]*>(.*?)</code>`), repl: "`$1`"},
	{re: regexp.MustCompile(`(?is)<img[^>]*?\ssrc\s*=\s*` + attrValue + `[^>]*?\salt\s*=\s*` + attrValue + `[^>]*>`), repl: "![${3}${4}](${1}${2})"},
	{re: regexp.MustCompile(`(?is)<img[^>]*?\salt\s*=\s*` + attrValue + `[^>]*?\ssrc\s*=\s*` + attrValue + `[^>]*>`), repl: "![${1}${2}](${3}${4})"},
	{re: regexp.MustCompile(`(?is)<img[^>]*?\ssrc\s*=\s*` + attrValue + `[^>]*>`), repl: "![](${1}${2})"},
	{re: regexp.MustCompile(`(?is)<a[^>]*?\shref\s*=\s*` + attrValue + `[^>]*>(.*?)</a>`), repl: "[${3}](${1}${2})"},
	{re: regexp.MustCompile(`(?is)<blockquote[^>]*>\s*(.*?)\s*</blockquote>`), repl: "\n> $1\n\n"},
	{fn: convertListItems},
	{re: listTagRX, repl: "\n"},
	{re: regexp.MustCompile(`(?is)<br\s*/?>`), repl: "\n"},
	{re: regexp.MustCompile(`(?is)<hr[^>]*>`), repl: "\n---\n\n"},
	{re: regexp.MustCompile(`(?is)<p[^>]*>(.*?)</p>`), repl: "$1\n\n"},
	{re: regexp.MustCompile(`(?s)<[^>]+>`)},
}

// convertListItems turns list items into "- " bullets, innermost first, so a
// nested list ends up indented under its parent item.
func convertListItems(s string) string {
	for {
		out := listItemRX.ReplaceAllStringFunc(s, func(m string) string {
			body := listItemRX.FindStringSubmatch(m)[1]
			body = strings.TrimSpace(listTagRX.ReplaceAllString(body, "\n"))

			lines := strings.Split(body, "\n")
			var b strings.Builder
			b.WriteString("- " + strings.TrimSpace(lines[0]) + "\n")
			for _, l := range lines[1:] {
				if strings.TrimSpace(l) != "" {
					b.WriteString("  " + l + "\n")
				}
			}
			return b.String()
		})
		if out == s {
			return s
		}
		s = out
	}
}

var (
	trailingSpaceRX = regexp.MustCompile(`(?m)[ \t]+$`)
	blankLinesRX    = regexp.MustCompile(`\n{3,}`)

	mdCodeFenceRX = regexp.MustCompile("(?s)```.*?```")
	mdImageRX     = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	mdLinkRX      = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	mdSyntaxRX    = regexp.MustCompile("(?m)^\\s{0,3}(?:#{1,6}\\s+|>\\s?|[-*+]\\s+|\\d+\\.\\s+)|[*_`~]")
	whitespaceRX  = regexp.MustCompile(`\s+`)
)

// HTMLToMarkdown converts the subset of HTML produced by rich text editors to
// Markdown. Unknown tags are dropped and their text kept.
func HTMLToMarkdown(s string) string {
	for _, r := range htmlToMarkdownRules {
		if r.fn != nil {
			s = r.fn(s)
			continue
		}
		s = r.re.ReplaceAllString(s, r.repl)
	}

	s = html.UnescapeString(s)
	s = trailingSpaceRX.ReplaceAllString(s, "")
	s = blankLinesRX.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}

// RenderHTML renders Markdown to sanitized HTML.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}

	return sanitizeHTML(buf.String()), nil
}

// PlainText strips Markdown syntax, leaving whitespace-normalised prose.
func PlainText(markdown string) string {
	s := mdCodeFenceRX.ReplaceAllString(markdown, " ")
	s = mdImageRX.ReplaceAllString(s, " ")
	s = mdLinkRX.ReplaceAllString(s, "$1")
	s = mdSyntaxRX.ReplaceAllString(s, "")
	s = whitespaceRX.ReplaceAllString(s, " ")

	return strings.TrimSpace(s)
}

const ellipsis = "..."

// Excerpt returns at most n runes of the plain text, cut at a word boundary.
// The trailing ellipsis counts towards n.
func Excerpt(markdown string, n int) string {
	text := PlainText(markdown)
	if utf8.RuneCountInString(text) <= n {
		return text
	}

	keep := max(n-len(ellipsis), 0)
	r := []rune(text)
	cut := string(r[:keep])
	if r[keep] != ' ' {
		if i := strings.LastIndexByte(cut, ' '); i > 0 {
			cut = cut[:i]
		}
	}

	return strings.TrimRight(cut, " ,.;:") + ellipsis
}

// ReadingTime returns the estimated minutes needed to read the content, at
// least one.
func ReadingTime(markdown string) int {
	words := len(strings.Fields(PlainText(markdown)))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}
