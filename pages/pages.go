// Package pages renders the HTML pages of the site. Every page is the
// layout template plus one page template, sharing the badge, card and
// text components.
package pages

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/invoiceflow/site/content"
	"github.com/invoiceflow/site/invoice"
	"github.com/invoiceflow/site/seo"
	"github.com/invoiceflow/site/share"
	"github.com/invoiceflow/site/tax"
	"github.com/yaoapp/kun/log"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var shared = []string{"templates/layout.html", "templates/components.html"}

var views = []string{
	"home", "alternatives", "alternative", "blog", "article", "guides", "guide",
	"templates", "template", "generator", "search", "404",
}

// NavItem a link of the site navigation
type NavItem struct {
	Name string
	Path string
}

// Nav the main navigation
var Nav = []NavItem{
	{Name: "Invoice generator", Path: "/invoice-generator"},
	{Name: "Templates", Path: "/templates"},
	{Name: "Guides", Path: "/guides"},
	{Name: "Blog", Path: "/blog"},
	{Name: "Alternatives", Path: "/alternatives"},
}

// View the data every page template receives
type View struct {
	Meta   seo.Meta
	JSONLD template.HTML
	Graph  []interface{}
	Crumbs []seo.Crumb
	Site   share.SiteInfo
	Nav    []NavItem
	Path   string
	Year   int
	Data   interface{}
}

// Handler the page handlers
type Handler struct {
	BaseURL string
	views   map[string]*template.Template
	static  http.FileSystem
}

// New parse the page templates
func New(baseURL string) (*Handler, error) {
	h := &Handler{
		BaseURL: strings.TrimRight(baseURL, "/"),
		views:   map[string]*template.Template{},
	}

	funcs := template.FuncMap{
		"dict":     dict,
		"markdown": content.Markdown,
		"abs":      func(path string) string { return seo.Absolute(h.BaseURL, path) },
		"join":     strings.Join,
		"vat":      func(r tax.VATRate) string { return strconv.Itoa(int(r)) },
		"cis":      func(r tax.CISRate) string { return strconv.Itoa(int(r)) },
		"rating":   func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) },
		"inc":      func(i int) int { return i + 1 },
	}
	for name, fn := range invoice.Funcs {
		funcs[name] = fn
	}

	for _, name := range views {
		files := append([]string{}, shared...)
		files = append(files, "templates/"+name+".html")
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, files...)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		h.views[name] = tmpl
	}

	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("static files: %w", err)
	}
	h.static = http.FS(sub)
	return h, nil
}

// Attach register the page routes
func (h *Handler) Attach(router gin.IRoutes) {
	router.GET("/", h.home)

	router.GET("/alternatives", h.alternatives)
	router.GET("/alternatives/:slug", h.alternative)

	router.GET("/blog", h.blog)
	router.GET("/blog/rss.xml", h.rss)
	router.GET("/blog/atom.xml", h.atom)
	router.GET("/blog/category/:category", h.category)
	router.GET("/blog/:slug", h.article)

	router.GET("/guides", h.guides)
	router.GET("/guides/:slug", h.guide)

	router.GET("/templates", h.templates)
	router.GET("/templates/:slug", h.template)

	router.GET("/invoice-generator", h.generator)
	router.POST("/invoice-generator", h.generatorSubmit)

	router.GET("/search", h.search)

	router.GET("/sitemap.xml", h.sitemap)
	router.GET("/robots.txt", h.robots)
	router.GET("/og/*path", h.ogImage)
	router.GET("/static/*filepath", h.staticFile)
}

// NotFound render the 404 page
func (h *Handler) NotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "404", View{
		Meta: seo.Meta{
			Title:       "Page not found",
			Description: "The page you were looking for does not exist.",
			NoIndex:     true,
			Image:       seo.Absolute(h.BaseURL, seo.ImagePath("/")),
		},
		Data: notFoundData{Guides: content.Guides(), Templates: invoice.Templates()},
	})
}

func (h *Handler) render(c *gin.Context, code int, name string, view View) {
	tmpl, has := h.views[name]
	if !has {
		log.Error("[pages] view %s not found", name)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	path := c.Request.URL.Path
	view.Site = share.Site
	view.Nav = Nav
	view.Path = path
	view.Year = time.Now().Year()
	if view.Meta.Canonical == "" {
		view.Meta.Canonical = seo.Absolute(h.BaseURL, path)
	}
	if view.Meta.Image == "" {
		view.Meta.Image = seo.Absolute(h.BaseURL, seo.ImagePath(path))
	}

	graph := view.Graph
	if len(view.Crumbs) > 1 {
		graph = append(graph, seo.NewBreadcrumbList(h.BaseURL, view.Crumbs...))
	}
	view.JSONLD = seo.Script(graph...)

	c.Render(code, render.HTML{Template: tmpl, Name: "layout", Data: view})
}

func (h *Handler) crumbs(trail ...seo.Crumb) []seo.Crumb {
	return append([]seo.Crumb{{Name: "Home", Path: "/"}}, trail...)
}

// dict build a map from key value pairs, for passing several values to a component
func dict(values ...interface{}) (map[string]interface{}, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]interface{}, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", values[i])
		}
		m[key] = values[i+1]
	}
	return m, nil
}

// plain the plain text of a markdown answer, for structured data
func plain(markdown string) string {
	return content.Text(string(content.Markdown(markdown)))
}

func faqs(list []content.QA) []seo.FAQ {
	out := make([]seo.FAQ, 0, len(list))
	for _, qa := range list {
		out = append(out, seo.FAQ{Question: qa.Question, Answer: plain(qa.Answer)})
	}
	return out
}
