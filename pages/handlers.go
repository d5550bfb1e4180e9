package pages

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/invoiceflow/site/content"
	"github.com/invoiceflow/site/invoice"
	"github.com/invoiceflow/site/seo"
	"github.com/invoiceflow/site/share"
	"github.com/yaoapp/kun/log"
)

// Feature a selling point on the home page
type Feature struct {
	Title string
	Body  string
	Badge string
}

// Features the home page selling points
var Features = []Feature{
	{Title: "Capture every invoice", Body: "Forward supplier invoices by email and InvoiceFlow reads the supplier, VAT number, dates and totals for you.", Badge: "Automatic"},
	{Title: "VAT and CIS built in", Body: "Standard, reduced, zero rate, exempt, domestic reverse charge and CIS deductions are worked out line by line.", Badge: "UK tax"},
	{Title: "Approve in one click", Body: "Route invoices to the right approver, spot duplicates and pay on time without chasing email threads.", Badge: "Workflow"},
	{Title: "Ready for Making Tax Digital", Body: "Keep digital records HMRC accepts and export them to Xero, QuickBooks, FreeAgent or Sage.", Badge: "MTD"},
}

const latestArticles = 3

type homeData struct {
	Features    []Feature
	Competitors []content.Competitor
	Articles    []content.BlogArticle
	Guides      []content.GuideArticle
	Templates   []invoice.Template
}

type alternativeData struct {
	Competitor *content.Competitor
	Others     []content.Competitor
}

type blogData struct {
	Title      string
	Intro      string
	Category   *content.Category
	Categories []content.Category
	Articles   []content.BlogArticle
}

type articleData struct {
	Article *content.BlogArticle
	Related []content.BlogArticle
}

type guideData struct {
	Guide  *content.GuideArticle
	Others []content.GuideArticle
}

type templateData struct {
	Template *invoice.Template
	Invoice  *invoice.InvoiceData
	Summary  invoice.Summary
	Items    []invoice.LineItem
}

type searchData struct {
	Query   string
	Results []content.SearchResult
}

type notFoundData struct {
	Guides    []content.GuideArticle
	Templates []invoice.Template
}

func (h *Handler) home(c *gin.Context) {
	articles := content.BlogArticles()
	if len(articles) > latestArticles {
		articles = articles[:latestArticles]
	}

	h.render(c, http.StatusOK, "home", View{
		Meta: seo.Meta{Title: share.Site.Tagline, Description: share.Site.Description},
		Graph: []interface{}{
			seo.NewOrganization(h.BaseURL),
			seo.NewSoftwareApplication(h.BaseURL),
		},
		Data: homeData{
			Features:    Features,
			Competitors: content.Competitors(),
			Articles:    articles,
			Guides:      content.Guides(),
			Templates:   invoice.Templates(),
		},
	})
}

func (h *Handler) alternatives(c *gin.Context) {
	competitors := content.Competitors()
	items := make([]seo.Crumb, 0, len(competitors))
	for _, comp := range competitors {
		items = append(items, seo.Crumb{Name: comp.Name + " alternative", Path: "/alternatives/" + comp.Slug})
	}

	h.render(c, http.StatusOK, "alternatives", View{
		Meta: seo.Meta{
			Title:       "Invoicing software alternatives compared",
			Description: "How InvoiceFlow compares with Xero, QuickBooks, FreeAgent, Sage and other invoicing tools for UK businesses, feature by feature.",
		},
		Graph:  []interface{}{seo.NewItemList(h.BaseURL, "Invoicing software alternatives", items)},
		Crumbs: h.crumbs(seo.Crumb{Name: "Alternatives"}),
		Data:   competitors,
	})
}

func (h *Handler) alternative(c *gin.Context) {
	comp := content.CompetitorBySlug(c.Param("slug"))
	if comp == nil {
		h.NotFound(c)
		return
	}

	others := []content.Competitor{}
	for _, other := range content.Competitors() {
		if other.Slug != comp.Slug {
			others = append(others, other)
		}
	}

	path := "/alternatives/" + comp.Slug
	title := fmt.Sprintf("%s alternative for UK businesses", comp.Name)
	graph := []interface{}{
		seo.NewArticle(h.BaseURL, seo.ArticleInfo{
			Headline:    fmt.Sprintf("%s vs %s", share.Site.Name, comp.Name),
			Description: comp.Tagline,
			Path:        path,
			Section:     "Alternatives",
		}),
		seo.NewSoftwareApplication(h.BaseURL),
	}
	if len(comp.FAQs) > 0 {
		graph = append(graph, seo.NewFAQPage(faqs(comp.FAQs)))
	}

	h.render(c, http.StatusOK, "alternative", View{
		Meta: seo.Meta{
			Title:       title,
			Description: content.Excerpt(string(content.Markdown(comp.Description)), content.DescriptionLength),
			Type:        "article",
		},
		Graph:  graph,
		Crumbs: h.crumbs(seo.Crumb{Name: "Alternatives", Path: "/alternatives"}, seo.Crumb{Name: comp.Name}),
		Data:   alternativeData{Competitor: comp, Others: others},
	})
}

func (h *Handler) blog(c *gin.Context) {
	articles := content.BlogArticles()
	h.render(c, http.StatusOK, "blog", View{
		Meta: seo.Meta{
			Title:       "Blog",
			Description: "Plain English answers on UK invoicing, VAT, CIS, Making Tax Digital and getting paid on time.",
		},
		Graph:  []interface{}{seo.NewItemList(h.BaseURL, "Blog articles", articleCrumbs(articles))},
		Crumbs: h.crumbs(seo.Crumb{Name: "Blog"}),
		Data: blogData{
			Title:      "Invoicing and UK tax answers",
			Intro:      "Short, practical answers to the questions UK businesses ask about invoices, VAT and CIS.",
			Categories: content.BlogCategories(),
			Articles:   articles,
		},
	})
}

func (h *Handler) category(c *gin.Context) {
	category := content.CategoryBySlug(c.Param("category"))
	if category == nil {
		h.NotFound(c)
		return
	}

	articles := content.BlogArticlesByCategory(category.Slug)
	h.render(c, http.StatusOK, "blog", View{
		Meta: seo.Meta{
			Title:       category.Name + " articles",
			Description: fmt.Sprintf("%d articles on %s for UK businesses.", category.Count, strings.ToLower(category.Name)),
		},
		Graph: []interface{}{seo.NewItemList(h.BaseURL, category.Name, articleCrumbs(articles))},
		Crumbs: h.crumbs(
			seo.Crumb{Name: "Blog", Path: "/blog"},
			seo.Crumb{Name: category.Name},
		),
		Data: blogData{
			Title:      category.Name,
			Intro:      fmt.Sprintf("Everything we have written about %s.", strings.ToLower(category.Name)),
			Category:   category,
			Categories: content.BlogCategories(),
			Articles:   articles,
		},
	})
}

func articleCrumbs(articles []content.BlogArticle) []seo.Crumb {
	items := make([]seo.Crumb, 0, len(articles))
	for _, a := range articles {
		items = append(items, seo.Crumb{Name: a.Title, Path: "/blog/" + a.Slug})
	}
	return items
}

func (h *Handler) article(c *gin.Context) {
	article := content.BlogArticleBySlug(c.Param("slug"))
	if article == nil {
		h.NotFound(c)
		return
	}

	path := "/blog/" + article.Slug
	graph := []interface{}{
		seo.NewArticle(h.BaseURL, seo.ArticleInfo{
			Type:        "BlogPosting",
			Headline:    article.Title,
			Description: article.Description,
			Path:        path,
			Published:   article.Published,
			Modified:    article.Updated,
			Section:     article.Category,
			Keywords:    article.Keywords,
			WordCount:   article.WordCount,
		}),
	}
	if len(article.FAQs) > 0 {
		graph = append(graph, seo.NewFAQPage(faqs(article.FAQs)))
	}

	h.render(c, http.StatusOK, "article", View{
		Meta: seo.Meta{
			Title:       article.Title,
			Description: article.Description,
			Type:        "article",
			Published:   article.Published,
			Modified:    article.Updated,
		},
		Graph: graph,
		Crumbs: h.crumbs(
			seo.Crumb{Name: "Blog", Path: "/blog"},
			seo.Crumb{Name: article.Category, Path: "/blog/category/" + article.CategorySlug},
			seo.Crumb{Name: article.Title},
		),
		Data: articleData{Article: article, Related: content.RelatedArticles(article)},
	})
}

func (h *Handler) guides(c *gin.Context) {
	guides := content.Guides()
	items := make([]seo.Crumb, 0, len(guides))
	for _, g := range guides {
		items = append(items, seo.Crumb{Name: g.Title, Path: "/guides/" + g.Slug})
	}

	h.render(c, http.StatusOK, "guides", View{
		Meta: seo.Meta{
			Title:       "UK tax compliance guides",
			Description: "Step by step guides to VAT invoices, the Construction Industry Scheme, the domestic reverse charge and getting paid on time.",
		},
		Graph:  []interface{}{seo.NewItemList(h.BaseURL, "Guides", items)},
		Crumbs: h.crumbs(seo.Crumb{Name: "Guides"}),
		Data:   guides,
	})
}

func (h *Handler) guide(c *gin.Context) {
	guide := content.GuideBySlug(c.Param("slug"))
	if guide == nil {
		h.NotFound(c)
		return
	}

	path := "/guides/" + guide.Slug
	steps := make([]seo.Step, 0, len(guide.Sections))
	for _, s := range guide.Sections {
		steps = append(steps, seo.Step{Name: s.Heading, Text: content.Text(string(s.HTML)), Path: path + "#" + s.ID})
	}

	others := []content.GuideArticle{}
	for _, g := range content.Guides() {
		if g.Slug != guide.Slug {
			others = append(others, g)
		}
	}

	h.render(c, http.StatusOK, "guide", View{
		Meta: seo.Meta{
			Title:       guide.Title,
			Description: guide.Summary,
			Type:        "article",
			Modified:    guide.Reviewed,
		},
		Graph: []interface{}{
			seo.NewArticle(h.BaseURL, seo.ArticleInfo{
				Headline:    guide.Title,
				Description: guide.Summary,
				Path:        path,
				Published:   guide.Reviewed,
				Section:     guide.Category,
			}),
			seo.NewHowTo(h.BaseURL, guide.Title, guide.Summary, steps),
		},
		Crumbs: h.crumbs(seo.Crumb{Name: "Guides", Path: "/guides"}, seo.Crumb{Name: guide.Title}),
		Data:   guideData{Guide: guide, Others: others},
	})
}

func (h *Handler) templates(c *gin.Context) {
	templates := invoice.Templates()
	items := make([]seo.Crumb, 0, len(templates))
	for _, t := range templates {
		items = append(items, seo.Crumb{Name: t.Name, Path: "/templates/" + t.Slug})
	}

	h.render(c, http.StatusOK, "templates", View{
		Meta: seo.Meta{
			Title:       "Free UK invoice templates",
			Description: "Invoice templates for freelancers, construction subcontractors, consultants and more, with the right VAT and CIS settings already filled in.",
		},
		Graph:  []interface{}{seo.NewItemList(h.BaseURL, "Invoice templates", items)},
		Crumbs: h.crumbs(seo.Crumb{Name: "Templates"}),
		Data:   templates,
	})
}

func (h *Handler) template(c *gin.Context) {
	tpl := invoice.TemplateBySlug(c.Param("slug"))
	if tpl == nil {
		h.NotFound(c)
		return
	}

	inv, err := invoice.FromTemplate(tpl.Slug)
	if err != nil {
		log.Error("[pages] template %s: %s", tpl.Slug, err.Error())
		h.NotFound(c)
		return
	}

	path := "/templates/" + tpl.Slug
	h.render(c, http.StatusOK, "template", View{
		Meta: seo.Meta{
			Title:       tpl.Name,
			Description: tpl.Description,
		},
		Graph: []interface{}{
			seo.NewWebApplication(h.BaseURL, tpl.Name, path, tpl.Description),
		},
		Crumbs: h.crumbs(seo.Crumb{Name: "Templates", Path: "/templates"}, seo.Crumb{Name: tpl.Name}),
		Data: templateData{
			Template: tpl,
			Invoice:  inv,
			Summary:  inv.Summarize(),
			Items:    inv.Filled(),
		},
	})
}

const searchLimit = 20

func (h *Handler) search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	data := searchData{Query: query}
	if query != "" {
		data.Results = content.Search(query, searchLimit)
	}

	h.render(c, http.StatusOK, "search", View{
		Meta: seo.Meta{
			Title:       "Search",
			Description: "Search the InvoiceFlow blog, guides and comparisons.",
			NoIndex:     query != "",
			Canonical:   seo.Absolute(h.BaseURL, "/search"),
		},
		Crumbs: h.crumbs(seo.Crumb{Name: "Search"}),
		Data:   data,
	})
}
