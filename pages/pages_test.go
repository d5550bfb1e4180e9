package pages

import (
	"bytes"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/invoiceflow/site/sitemap"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBase = "https://example.test"

func prepare(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h, err := New(testBase + "/")
	require.NoError(t, err)
	router := gin.New()
	h.Attach(router)
	router.NoRoute(h.NotFound)
	return router
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	res := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(res, req)
	return res
}

func post(router http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	res := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(res, req)
	return res
}

func document(t *testing.T, res *httptest.ResponseRecorder) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body.Bytes()))
	require.NoError(t, err)
	return doc
}

// graphTypes the @type of every node of the JSON-LD graph
func graphTypes(t *testing.T, doc *goquery.Document) []string {
	script := doc.Find(`script[type="application/ld+json"]`)
	require.Equal(t, 1, script.Length())

	var ld struct {
		Context string                   `json:"@context"`
		Graph   []map[string]interface{} `json:"@graph"`
	}
	require.NoError(t, jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(script.Text(), &ld))
	assert.Equal(t, "https://schema.org", ld.Context)

	types := []string{}
	for _, node := range ld.Graph {
		types = append(types, node["@type"].(string))
	}
	return types
}

func attr(doc *goquery.Document, selector string, name string) string {
	v, _ := doc.Find(selector).Attr(name)
	return v
}

func validForm() url.Values {
	return url.Values{
		"number":              {"INV-TEST1"},
		"date":                {"2026-03-02"},
		"due_date":            {"2026-04-01"},
		"currency":            {"GBP"},
		"business_name":       {"Oak Joinery Ltd"},
		"business_vat_number": {"999999973"},
		"client_name":         {"Northern Builds Ltd"},
		"vat_rate":            {"20"},
		"cis_rate":            {"0"},
		"line_id":             {"a1"},
		"line_description":    {"Site visit"},
		"line_quantity":       {"2"},
		"line_rate":           {"100"},
	}
}

func TestHome(t *testing.T) {
	router := prepare(t)
	res := get(router, "/")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Header().Get("Content-Type"), "text/html")

	doc := document(t, res)
	assert.Equal(t, "Invoice processing for UK businesses | InvoiceFlow", doc.Find("title").Text())
	assert.Equal(t, testBase+"/", attr(doc, `link[rel="canonical"]`, "href"))
	assert.Equal(t, testBase+"/og/index.png", attr(doc, `meta[property="og:image"]`, "content"))
	assert.Equal(t, "index, follow", attr(doc, `meta[name="robots"]`, "content"))
	assert.Equal(t, "en-GB", attr(doc, "html", "lang"))
	assert.ElementsMatch(t, []string{"Organization", "SoftwareApplication"}, graphTypes(t, doc))
	assert.Equal(t, len(Features), doc.Find(".features .card").Length())
	assert.Equal(t, 3, doc.Find(".latest .card").Length())
	assert.Equal(t, 0, doc.Find("nav.breadcrumbs").Length())
}

func TestPages(t *testing.T) {
	router := prepare(t)
	tests := []struct {
		path  string
		h1    string
		types []string
	}{
		{"/alternatives", "Invoicing software alternatives", []string{"ItemList", "BreadcrumbList"}},
		{"/alternatives/xero", "InvoiceFlow vs Xero", []string{"Article", "SoftwareApplication", "FAQPage", "BreadcrumbList"}},
		{"/blog", "Invoicing and UK tax answers", []string{"ItemList", "BreadcrumbList"}},
		{"/blog/category/cis", "CIS", []string{"ItemList", "BreadcrumbList"}},
		{"/blog/how-does-cis-work", "How does the Construction Industry Scheme work?", []string{"BlogPosting", "FAQPage", "BreadcrumbList"}},
		{"/guides", "UK tax compliance guides", []string{"ItemList", "BreadcrumbList"}},
		{"/guides/vat-invoice-guide", "The complete guide to VAT invoices", []string{"Article", "HowTo", "BreadcrumbList"}},
		{"/templates", "Free UK invoice templates", []string{"ItemList", "BreadcrumbList"}},
		{"/templates/construction-cis", "Construction Invoice Template with CIS", []string{"WebApplication", "BreadcrumbList"}},
		{"/invoice-generator", "Free UK invoice generator", []string{"WebApplication", "BreadcrumbList"}},
		{"/search", "Search", []string{"BreadcrumbList"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			res := get(router, tt.path)
			require.Equal(t, http.StatusOK, res.Code)
			doc := document(t, res)
			assert.Equal(t, tt.h1, strings.TrimSpace(doc.Find("main h1").First().Text()))
			assert.Equal(t, testBase+tt.path, attr(doc, `link[rel="canonical"]`, "href"))
			assert.Equal(t, testBase+"/og"+tt.path+".png", attr(doc, `meta[property="og:image"]`, "content"))
			assert.NotEmpty(t, attr(doc, `meta[name="description"]`, "content"))
			assert.True(t, strings.HasSuffix(doc.Find("title").Text(), " | InvoiceFlow"))
			assert.Equal(t, tt.types, graphTypes(t, doc))
			assert.Equal(t, 1, doc.Find("nav.breadcrumbs").Length())
		})
	}
}

func TestArticle(t *testing.T) {
	router := prepare(t)
	doc := document(t, get(router, "/blog/how-does-cis-work"))

	assert.Equal(t, "article", attr(doc, `meta[property="og:type"]`, "content"))
	assert.Equal(t, "2026-02-02", attr(doc, `meta[property="article:published_time"]`, "content"))
	assert.Equal(t, "/blog/category/cis", attr(doc, "article header a", "href"))
	assert.NotEmpty(t, strings.TrimSpace(doc.Find(".prose").Text()))
	assert.Greater(t, doc.Find(".related .card").Length(), 0)

	crumbs := doc.Find("nav.breadcrumbs li")
	assert.Equal(t, 4, crumbs.Length())
	assert.Equal(t, "CIS", crumbs.Eq(2).Text())
}

func TestAlternative(t *testing.T) {
	router := prepare(t)
	doc := document(t, get(router, "/alternatives/xero"))
	assert.Greater(t, doc.Find(".comparison tbody tr").Length(), 0)
	assert.Greater(t, doc.Find(".faqs details").Length(), 0)
	assert.Equal(t, 0, doc.Find(`.others a[href="/alternatives/xero"]`).Length())
	assert.Equal(t, 1, doc.Find(`.others a[href="/alternatives/quickbooks"]`).Length())
}

func TestCategory(t *testing.T) {
	router := prepare(t)
	doc := document(t, get(router, "/blog/category/getting-paid"))
	assert.Equal(t, 3, doc.Find(".articles .card").Length())
	assert.Equal(t, "/blog/category/getting-paid", attr(doc, `.categories a[aria-current]`, "href"))
}

func TestNotFound(t *testing.T) {
	router := prepare(t)
	for _, path := range []string{
		"/alternatives/nope", "/blog/nope", "/blog/category/nope", "/guides/nope",
		"/templates/nope", "/nope", "/og/nope.png", "/og/blog", "/static/missing.css",
	} {
		t.Run(path, func(t *testing.T) {
			res := get(router, path)
			require.Equal(t, http.StatusNotFound, res.Code)
			doc := document(t, res)
			assert.Equal(t, "Page not found", doc.Find("main h1").Text())
			assert.Equal(t, "noindex, nofollow", attr(doc, `meta[name="robots"]`, "content"))
			assert.Equal(t, testBase+"/og/index.png", attr(doc, `meta[property="og:image"]`, "content"))
		})
	}
}

func TestSearch(t *testing.T) {
	router := prepare(t)
	doc := document(t, get(router, "/search?q=cis+deduction"))
	assert.Equal(t, "noindex, nofollow", attr(doc, `meta[name="robots"]`, "content"))
	assert.Equal(t, testBase+"/search", attr(doc, `link[rel="canonical"]`, "href"))
	assert.Equal(t, "cis deduction", attr(doc, `main input[name="q"]`, "value"))
	assert.Greater(t, doc.Find(".results li").Length(), 0)

	doc = document(t, get(router, "/search?q=zzzzqqqq"))
	assert.Equal(t, 0, doc.Find(".results li").Length())
	assert.Contains(t, doc.Find(".text-muted").Text(), "No results")
}

func TestGeneratorTemplate(t *testing.T) {
	router := prepare(t)
	doc := document(t, get(router, "/invoice-generator?template=construction-cis"))

	assert.Equal(t, "20", attr(doc, `select[name="vat_rate"] option[selected]`, "value"))
	assert.Equal(t, "20", attr(doc, `select[name="cis_rate"] option[selected]`, "value"))
	assert.Equal(t, "construction-cis", attr(doc, `input[name="template"]`, "value"))
	assert.Equal(t, 2, doc.Find(`input[name="line_description"]`).Length())
	assert.Equal(t, 0, doc.Find(".error").Length())

	doc = document(t, get(router, "/invoice-generator?template=nope"))
	assert.Equal(t, 1, doc.Find(`input[name="line_description"]`).Length())
	assert.Equal(t, "20", attr(doc, `select[name="vat_rate"] option[selected]`, "value"))
}

func TestGeneratorCalculate(t *testing.T) {
	router := prepare(t)
	res := post(router, "/invoice-generator", validForm())
	require.Equal(t, http.StatusOK, res.Code)

	doc := document(t, res)
	assert.Equal(t, 0, doc.Find(".error").Length())
	assert.Equal(t, "£240.00", doc.Find(".summary tr.due td").Text())
	assert.Equal(t, "£200.00", doc.Find(".items td.amount").First().Text())
	assert.Equal(t, "GB 999 9999 73", attr(doc, `input[name="business_vat_number"]`, "value"))
	assert.Equal(t, testBase+"/invoice-generator", attr(doc, `link[rel="canonical"]`, "href"))

	form := validForm()
	form.Set("vat_rate", "0")
	form.Set("cis_rate", "20")
	form.Set("business_utr", "2234567890")
	doc = document(t, post(router, "/invoice-generator", form))
	assert.Equal(t, "£160.00", doc.Find(".summary tr.due td").Text())
}

func TestGeneratorErrors(t *testing.T) {
	router := prepare(t)

	form := validForm()
	form.Del("business_name")
	form.Set("line_quantity", "two")
	form.Set("action", "pdf")
	res := post(router, "/invoice-generator", form)
	require.Equal(t, http.StatusUnprocessableEntity, res.Code)
	assert.Contains(t, res.Header().Get("Content-Type"), "text/html")

	doc := document(t, res)
	assert.Equal(t, 1, doc.Find(".alert").Length())
	assert.Equal(t, "name is required", doc.Find(".business .field.invalid .error").First().Text())
	assert.Equal(t, "must be a number", doc.Find(".items .error").First().Text())

	form = validForm()
	form.Set("business_vat_number", "GB123456789")
	doc = document(t, post(router, "/invoice-generator", form))
	assert.Equal(t, "true", attr(doc, `input[name="business_vat_number"]`, "aria-invalid"))
	assert.Equal(t, "GB123456789", attr(doc, `input[name="business_vat_number"]`, "value"))
}

func TestGeneratorShareLink(t *testing.T) {
	router := prepare(t)
	doc := document(t, post(router, "/invoice-generator", validForm()))
	link := attr(doc, ".summary .share a", "href")
	require.True(t, strings.HasPrefix(link, "/invoice-generator?"), link)

	res := get(router, link)
	require.Equal(t, http.StatusOK, res.Code)
	shared := document(t, res)
	assert.Equal(t, "£240.00", shared.Find(".summary tr.due td").Text())
	assert.Equal(t, "INV-TEST1", attr(shared, `input[name="number"]`, "value"))
	assert.Equal(t, 0, shared.Find(".summary .share").Length())

	form := validForm()
	form.Set("business_vat_number", "GB123456789")
	doc = document(t, post(router, "/invoice-generator", form))
	assert.Equal(t, 0, doc.Find(".summary .share").Length())
}

func TestGeneratorRejectsHugeNumbers(t *testing.T) {
	router := prepare(t)
	form := validForm()
	form.Set("line_quantity", "1e20000000")
	res := post(router, "/invoice-generator", form)
	require.Equal(t, http.StatusOK, res.Code)

	doc := document(t, res)
	assert.Equal(t, "must be a number", doc.Find(".items .error").First().Text())
	assert.Equal(t, "£0.00", doc.Find(".summary tr.due td").Text())

	res = get(router, "/invoice-generator?line_description=Labour&line_quantity=9999999999999&line_rate=1")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "must be a number", document(t, res).Find(".items .error").First().Text())
}

func TestGeneratorLines(t *testing.T) {
	router := prepare(t)

	form := validForm()
	form.Set("action", "add")
	doc := document(t, post(router, "/invoice-generator", form))
	require.Equal(t, 2, doc.Find(`input[name="line_description"]`).Length())
	assert.Equal(t, "a1", attr(doc, `input[name="line_id"]`, "value"))

	form = validForm()
	form.Set("action", "remove:a1")
	doc = document(t, post(router, "/invoice-generator", form))
	require.Equal(t, 1, doc.Find(`input[name="line_description"]`).Length())
	assert.Equal(t, "", attr(doc, `input[name="line_description"]`, "value"))
	assert.NotEqual(t, "a1", attr(doc, `input[name="line_id"]`, "value"))
}

func TestGeneratorDownloads(t *testing.T) {
	router := prepare(t)

	form := validForm()
	form.Set("action", "pdf")
	res := post(router, "/invoice-generator", form)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "application/pdf", res.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="INV-TEST1.pdf"`, res.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(res.Body.Bytes(), []byte("%PDF")))

	form.Set("action", "xlsx")
	res = post(router, "/invoice-generator", form)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, `attachment; filename="INV-TEST1.xlsx"`, res.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(res.Body.Bytes(), []byte("PK")))

	form.Set("action", "preview")
	res = post(router, "/invoice-generator", form)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Empty(t, res.Header().Get("Content-Disposition"))
	doc := document(t, res)
	assert.Equal(t, "Invoice INV-TEST1", doc.Find("title").Text())
}

func TestSitemap(t *testing.T) {
	router := prepare(t)
	res := get(router, "/sitemap.xml")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Header().Get("Content-Type"), "application/xml")

	body := res.Body.String()
	require.NoError(t, sitemap.Validate(body))
	result, err := sitemap.Parse(body)
	require.NoError(t, err)
	assert.Equal(t, "urlset", result.Type)
	assert.Len(t, result.URLs, len(Entries()))

	locs := map[string]bool{}
	for _, u := range result.URLs {
		locs[u.Loc] = true
	}
	for _, path := range []string{"/", "/blog/how-does-cis-work", "/alternatives/xero", "/guides/cis-subcontractor-guide", "/templates/freelance", "/blog/category/vat", "/invoice-generator"} {
		assert.True(t, locs[testBase+path], path)
	}
	assert.False(t, locs[testBase+"/search"])
}

func TestRobots(t *testing.T) {
	router := prepare(t)
	res := get(router, "/robots.txt")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "Disallow: /api/\n")
	assert.Equal(t, []string{testBase + "/sitemap.xml"}, sitemap.ParseRobots(res.Body.String()))
}

func TestFeeds(t *testing.T) {
	router := prepare(t)

	res := get(router, "/blog/rss.xml")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "application/rss+xml; charset=utf-8", res.Header().Get("Content-Type"))
	assert.Contains(t, res.Body.String(), `<rss version="2.0"`)
	assert.Contains(t, res.Body.String(), testBase+"/blog/how-does-cis-work")
	assert.Contains(t, res.Body.String(), testBase+"/blog/rss.xml")

	res = get(router, "/blog/atom.xml")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "application/atom+xml; charset=utf-8", res.Header().Get("Content-Type"))
	assert.Contains(t, res.Body.String(), "<feed")
	assert.Contains(t, res.Body.String(), testBase+"/blog/atom.xml")
}

func TestOGImage(t *testing.T) {
	router := prepare(t)
	for _, path := range []string{"/og/index.png", "/og/blog/how-does-cis-work.png", "/og/blog/category/vat.png", "/og/search.png"} {
		res := get(router, path)
		require.Equal(t, http.StatusOK, res.Code, path)
		assert.Equal(t, "image/png", res.Header().Get("Content-Type"))
		assert.NotEmpty(t, res.Header().Get("Cache-Control"))
		cfg, err := png.DecodeConfig(res.Body)
		require.NoError(t, err)
		assert.Equal(t, 1200, cfg.Width)
		assert.Equal(t, 630, cfg.Height)
	}
}

func TestStatic(t *testing.T) {
	router := prepare(t)

	res := get(router, "/static/style.css")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Header().Get("Content-Type"), "text/css")
	assert.Contains(t, res.Body.String(), ":root")

	res = get(router, "/static/logo.png")
	require.Equal(t, http.StatusOK, res.Code)
	cfg, err := png.DecodeConfig(res.Body)
	require.NoError(t, err)
	assert.Equal(t, LogoSize, cfg.Width)
}

func TestEntries(t *testing.T) {
	entries := Entries()
	seen := map[string]bool{}
	for _, e := range entries {
		assert.False(t, seen[e.Path], e.Path)
		seen[e.Path] = true
		assert.NotEmpty(t, e.Card.Title, e.Path)
		assert.NotEmpty(t, e.Card.Kind, e.Path)
		card, has := CardOf(e.Path)
		assert.True(t, has)
		assert.Equal(t, e.Card, card)
	}
	assert.Equal(t, "/", entries[0].Path)

	urls := URLs(testBase)
	require.Len(t, urls, len(entries))
	assert.Equal(t, testBase+"/", urls[0].Loc)
	assert.Equal(t, testBase+"/og/index.png", urls[0].Images[0].Loc)
}

func TestImageTarget(t *testing.T) {
	tests := []struct {
		path   string
		target string
		ok     bool
	}{
		{"/index.png", "/", true},
		{"/blog/x.png", "/blog/x", true},
		{"/blog/x", "", false},
	}
	for _, tt := range tests {
		target, ok := ImageTarget(tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
		assert.Equal(t, tt.target, target, tt.path)
	}
}

func TestDict(t *testing.T) {
	m, err := dict("Title", "x", "Count", 2)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"Title": "x", "Count": 2}, m)

	_, err = dict("Title")
	assert.Error(t, err)
	_, err = dict(1, "x")
	assert.Error(t, err)
}
