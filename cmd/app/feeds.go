package main

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/sushihentaime/folio/internal/blogservice"
	"github.com/sushihentaime/folio/internal/common"
)

const rssItemCount = 20

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	Categories  []string `xml:"category"`
	PubDate     string   `xml:"pubDate,omitempty"`
	GUID        string   `xml:"guid"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func postURL(base, slug string) string {
	return base + "/blog/" + slug
}

func buildRSS(site SiteConfig, blogs []blogservice.Blog) rssFeed {
	items := make([]rssItem, 0, len(blogs))
	var lastBuild time.Time

	for _, b := range blogs {
		link := postURL(site.URL, b.Slug)
		item := rssItem{
			Title:       b.Title,
			Link:        link,
			Description: b.Excerpt,
			Categories:  b.Tags,
			GUID:        link,
		}
		if b.PublishedAt != nil {
			item.PubDate = b.PublishedAt.UTC().Format(time.RFC1123Z)
			if b.PublishedAt.After(lastBuild) {
				lastBuild = *b.PublishedAt
			}
		}
		items = append(items, item)
	}

	feed := rssFeed{
		Version: "2.0",
		Channel: rssChannel{
			Title:       site.Name,
			Link:        site.URL,
			Description: site.Description,
			Items:       items,
		},
	}
	if !lastBuild.IsZero() {
		feed.Channel.LastBuildDate = lastBuild.UTC().Format(time.RFC1123Z)
	}

	return feed
}

func buildSitemap(site SiteConfig, blogs []blogservice.Blog) sitemapURLSet {
	urls := []sitemapURL{
		{Loc: site.URL + "/"},
		{Loc: site.URL + "/blog"},
		{Loc: site.URL + "/bytes"},
	}

	for _, b := range blogs {
		urls = append(urls, sitemapURL{
			Loc:     postURL(site.URL, b.Slug),
			LastMod: b.UpdatedAt.UTC().Format("2006-01-02"),
		})
	}

	return sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
}

func (app *application) writeXML(w http.ResponseWriter, r *http.Request, contentType string, v any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(xml.Header))

	if err := xml.NewEncoder(w).Encode(v); err != nil {
		app.logError(r, err)
	}
}

func (app *application) rssHandler(w http.ResponseWriter, r *http.Request) {
	blogs, _, err := app.blogService.GetBlogs(r.Context(), "", common.NewPagination(1, rssItemCount))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeXML(w, r, "application/rss+xml; charset=utf-8", buildRSS(app.config.Site, blogs))
}

func (app *application) sitemapHandler(w http.ResponseWriter, r *http.Request) {
	var all []blogservice.Blog

	for page := 1; ; page++ {
		blogs, md, err := app.blogService.GetBlogs(r.Context(), "", common.NewPagination(page, common.MaxPageSize))
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
		all = append(all, blogs...)
		if !md.HasNext {
			break
		}
	}

	app.writeXML(w, r, "application/xml; charset=utf-8", buildSitemap(app.config.Site, all))
}
