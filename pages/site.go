package pages

import (
	"bytes"
	"io/fs"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/invoiceflow/site/content"
	"github.com/invoiceflow/site/invoice"
	"github.com/invoiceflow/site/ogimage"
	"github.com/invoiceflow/site/rss"
	"github.com/invoiceflow/site/seo"
	"github.com/invoiceflow/site/share"
	"github.com/invoiceflow/site/sitemap"
	"github.com/yaoapp/kun/log"
)

// Entry an indexable page of the site
type Entry struct {
	Path       string
	LastMod    string
	ChangeFreq string
	Priority   string
	Card       ogimage.Card
}

// LogoSize the logo edge in pixels
const LogoSize = 512

const imageCache = "public, max-age=86400"

var (
	cards     map[string]ogimage.Card
	cardsOnce sync.Once
)

// Entries every indexable page, hubs first
func Entries() []Entry {
	articles := content.BlogArticles()
	guides := content.Guides()
	latest := ""
	if len(articles) > 0 {
		latest = articles[0].Published
	}
	reviewed := ""
	for _, g := range guides {
		if g.Reviewed > reviewed {
			reviewed = g.Reviewed
		}
	}
	newest := latest
	if reviewed > newest {
		newest = reviewed
	}

	entries := []Entry{
		{Path: "/", LastMod: newest, ChangeFreq: "weekly", Priority: "1.0", Card: ogimage.Card{Title: share.Site.Tagline, Subtitle: share.Site.Description, Kind: "home"}},
		{Path: generatorPath, ChangeFreq: "monthly", Priority: "0.9", Card: ogimage.Card{Title: "Free UK invoice generator", Subtitle: "VAT, CIS and reverse charge worked out for you", Kind: "tool"}},
		{Path: "/templates", ChangeFreq: "monthly", Priority: "0.8", Card: ogimage.Card{Title: "Free UK invoice templates", Kind: "template"}},
		{Path: "/alternatives", ChangeFreq: "monthly", Priority: "0.8", Card: ogimage.Card{Title: "Invoicing software alternatives compared", Kind: "alternative"}},
		{Path: "/guides", LastMod: reviewed, ChangeFreq: "monthly", Priority: "0.8", Card: ogimage.Card{Title: "UK tax compliance guides", Kind: "guide"}},
		{Path: "/blog", LastMod: latest, ChangeFreq: "weekly", Priority: "0.8", Card: ogimage.Card{Title: "Invoicing and UK tax answers", Kind: "blog"}},
	}

	for _, t := range invoice.Templates() {
		entries = append(entries, Entry{
			Path: "/templates/" + t.Slug, ChangeFreq: "monthly", Priority: "0.7",
			Card: ogimage.Card{Title: t.Name, Subtitle: t.Description, Kind: "template"},
		})
	}
	for _, comp := range content.Competitors() {
		entries = append(entries, Entry{
			Path: "/alternatives/" + comp.Slug, ChangeFreq: "monthly", Priority: "0.7",
			Card: ogimage.Card{Title: share.Site.Name + " vs " + comp.Name, Subtitle: comp.Tagline, Kind: "alternative"},
		})
	}
	for _, g := range guides {
		entries = append(entries, Entry{
			Path: "/guides/" + g.Slug, LastMod: g.Reviewed, ChangeFreq: "monthly", Priority: "0.7",
			Card: ogimage.Card{Title: g.Title, Subtitle: g.Summary, Kind: "guide"},
		})
	}
	for _, cat := range content.BlogCategories() {
		entries = append(entries, Entry{
			Path: "/blog/category/" + cat.Slug, ChangeFreq: "weekly", Priority: "0.5",
			Card: ogimage.Card{Title: cat.Name, Subtitle: "Articles for UK businesses", Kind: "blog"},
		})
	}
	for _, a := range articles {
		entries = append(entries, Entry{
			Path: "/blog/" + a.Slug, LastMod: a.Updated, ChangeFreq: "monthly", Priority: "0.6",
			Card: ogimage.Card{Title: a.Title, Subtitle: a.Category, Kind: "blog"},
		})
	}
	return entries
}

// URLs the sitemap entries of the site
func URLs(baseURL string) []sitemap.URL {
	entries := Entries()
	urls := make([]sitemap.URL, 0, len(entries))
	for _, e := range entries {
		urls = append(urls, sitemap.URL{
			Loc:        seo.Absolute(baseURL, e.Path),
			LastMod:    e.LastMod,
			ChangeFreq: e.ChangeFreq,
			Priority:   e.Priority,
			Images:     []sitemap.Image{{Loc: seo.Absolute(baseURL, seo.ImagePath(e.Path)), Title: e.Card.Title}},
		})
	}
	return urls
}

// CardOf the Open Graph card of a page path
func CardOf(path string) (ogimage.Card, bool) {
	cardsOnce.Do(func() {
		cards = map[string]ogimage.Card{
			"/search": {Title: "Search", Subtitle: "Blog, guides and comparisons", Kind: "page"},
		}
		for _, e := range Entries() {
			cards[e.Path] = e.Card
		}
	})
	card, has := cards[path]
	return card, has
}

// Robots the robots.txt of the site
func Robots(baseURL string) string {
	return sitemap.BuildRobots(sitemap.RobotsOptions{
		UserAgent: "*",
		Allow:     []string{"/"},
		Disallow:  []string{"/api/", "/search"},
		Sitemaps:  []string{seo.Absolute(baseURL, "/sitemap.xml")},
	})
}

// Feed the blog feed, self is the path of the feed document
func Feed(baseURL string, self string) *rss.Feed {
	articles := content.BlogArticles()
	feed := &rss.Feed{
		Title:       share.Site.Name + " blog",
		Link:        seo.Absolute(baseURL, "/blog"),
		Self:        seo.Absolute(baseURL, self),
		Description: "Answers on UK invoicing, VAT, CIS and getting paid.",
		Language:    share.Site.Language,
		Author:      content.Author,
		Image:       seo.Absolute(baseURL, share.Site.Logo),
		Items:       make([]rss.FeedItem, 0, len(articles)),
	}

	for _, a := range articles {
		link := seo.Absolute(baseURL, "/blog/"+a.Slug)
		item := rss.FeedItem{
			Title:       a.Title,
			Link:        link,
			Description: a.Description,
			Content:     string(a.HTML),
			Author:      a.Author,
			GUID:        link,
			Categories:  []string{a.Category},
		}
		if t, err := time.Parse(invoice.DateLayout, a.Published); err == nil {
			item.Published = t
		}
		if t, err := time.Parse(invoice.DateLayout, a.Updated); err == nil {
			item.Updated = t
		}
		feed.Items = append(feed.Items, item)
	}
	return feed
}

func (h *Handler) sitemap(c *gin.Context) {
	data, err := sitemap.Build(URLs(h.BaseURL))
	if err != nil {
		log.Error("[pages] sitemap: %s", err.Error())
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(data))
}

func (h *Handler) robots(c *gin.Context) {
	c.String(http.StatusOK, Robots(h.BaseURL))
}

func (h *Handler) rss(c *gin.Context) {
	h.feed(c, "rss", "/blog/rss.xml", rss.ContentType)
}

func (h *Handler) atom(c *gin.Context) {
	h.feed(c, "atom", "/blog/atom.xml", rss.AtomContentType)
}

func (h *Handler) feed(c *gin.Context, format string, self string, contentType string) {
	data, err := rss.Build(Feed(h.BaseURL, self), format)
	if err != nil {
		log.Error("[pages] %s feed: %s", format, err.Error())
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.Data(http.StatusOK, contentType, []byte(data))
}

// ImageTarget the page path of an Open Graph image path: "/blog/x.png" -> "/blog/x"
func ImageTarget(path string) (string, bool) {
	if !strings.HasSuffix(path, ".png") {
		return "", false
	}
	target := strings.TrimSuffix(path, ".png")
	if target == "/index" {
		return "/", true
	}
	return target, true
}

func (h *Handler) ogImage(c *gin.Context) {
	target, ok := ImageTarget(c.Param("path"))
	if !ok {
		h.NotFound(c)
		return
	}
	card, has := CardOf(target)
	if !has {
		h.NotFound(c)
		return
	}

	var buf bytes.Buffer
	if err := ogimage.Render(&buf, card); err != nil {
		log.Error("[pages] og image %s: %s", target, err.Error())
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.Header("Cache-Control", imageCache)
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (h *Handler) staticFile(c *gin.Context) {
	name := c.Param("filepath")
	if name == strings.TrimPrefix(share.Site.Logo, "/static") {
		var buf bytes.Buffer
		if err := ogimage.RenderLogo(&buf, LogoSize); err != nil {
			log.Error("[pages] logo: %s", err.Error())
			c.String(http.StatusInternalServerError, "Internal Server Error")
			return
		}
		c.Header("Cache-Control", imageCache)
		c.Data(http.StatusOK, "image/png", buf.Bytes())
		return
	}

	if _, err := fs.Stat(staticFS, "static"+name); err != nil || strings.HasSuffix(name, "/") {
		h.NotFound(c)
		return
	}
	c.FileFromFS(name, h.static)
}
