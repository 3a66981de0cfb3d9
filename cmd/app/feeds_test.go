package main

import (
	"encoding/xml"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/folio/internal/blogservice"
)

func TestBuildRSS(t *testing.T) {
	site := SiteConfig{Name: "Folio", URL: "https://example.com", Description: "notes"}
	older := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 5, 2, 8, 30, 0, 0, time.UTC)

	feed := buildRSS(site, []blogservice.Blog{
		{Title: "Second", Slug: "second", Excerpt: "two", Tags: []string{"go"}, PublishedAt: &newer},
		{Title: "First", Slug: "first", Excerpt: "one", PublishedAt: &older},
	})

	assert.Equal(t, "2.0", feed.Version)
	assert.Equal(t, "Folio", feed.Channel.Title)
	assert.Equal(t, newer.Format(time.RFC1123Z), feed.Channel.LastBuildDate)
	require.Len(t, feed.Channel.Items, 2)

	item := feed.Channel.Items[0]
	assert.Equal(t, "https://example.com/blog/second", item.Link)
	assert.Equal(t, item.Link, item.GUID)
	assert.Equal(t, []string{"go"}, item.Categories)
	assert.Equal(t, "Thu, 02 May 2024 08:30:00 +0000", item.PubDate)

	out, err := xml.Marshal(feed)
	require.NoError(t, err)
	assert.Contains(t, string(out), `<rss version="2.0"><channel><title>Folio</title>`)
	assert.Contains(t, string(out), `<category>go</category>`)
}

func TestBuildRSSEmpty(t *testing.T) {
	feed := buildRSS(SiteConfig{Name: "Folio", URL: "https://example.com"}, nil)

	assert.Empty(t, feed.Channel.Items)
	assert.Empty(t, feed.Channel.LastBuildDate)
}

func TestBuildSitemap(t *testing.T) {
	site := SiteConfig{URL: "https://example.com"}
	updated := time.Date(2024, 5, 2, 23, 30, 0, 0, time.UTC)

	sitemap := buildSitemap(site, []blogservice.Blog{{Slug: "hello-world", UpdatedAt: updated}})

	assert.Equal(t, "http://www.sitemaps.org/schemas/sitemap/0.9", sitemap.XMLNS)
	require.Len(t, sitemap.URLs, 4)
	assert.Equal(t, "https://example.com/", sitemap.URLs[0].Loc)
	assert.Equal(t, sitemapURL{Loc: "https://example.com/blog/hello-world", LastMod: "2024-05-02"}, sitemap.URLs[3])

	out, err := xml.Marshal(sitemap)
	require.NoError(t, err)
	assert.Contains(t, string(out), `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
}
