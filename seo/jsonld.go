package seo

import (
	"html/template"

	"github.com/invoiceflow/site/share"
	jsoniter "github.com/json-iterator/go"
	"github.com/yaoapp/kun/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Context the schema.org vocabulary
const Context = "https://schema.org"

// Document a JSON-LD document holding a graph of nodes
type Document struct {
	Context string        `json:"@context"`
	Graph   []interface{} `json:"@graph"`
}

// ImageObject schema.org ImageObject
type ImageObject struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

// Organization schema.org Organization
type Organization struct {
	Type      string       `json:"@type"`
	ID        string       `json:"@id,omitempty"`
	Name      string       `json:"name"`
	LegalName string       `json:"legalName,omitempty"`
	URL       string       `json:"url,omitempty"`
	Logo      *ImageObject `json:"logo,omitempty"`
	Email     string       `json:"email,omitempty"`
	SameAs    []string     `json:"sameAs,omitempty"`
}

// Ref a reference to a node of the graph
type Ref struct {
	ID string `json:"@id"`
}

// Offer schema.org Offer
type Offer struct {
	Type          string `json:"@type"`
	Name          string `json:"name,omitempty"`
	Price         string `json:"price"`
	PriceCurrency string `json:"priceCurrency"`
}

// Application schema.org SoftwareApplication or WebApplication
type Application struct {
	Type                string  `json:"@type"`
	ID                  string  `json:"@id,omitempty"`
	Name                string  `json:"name"`
	Description         string  `json:"description,omitempty"`
	URL                 string  `json:"url"`
	ApplicationCategory string  `json:"applicationCategory"`
	OperatingSystem     string  `json:"operatingSystem,omitempty"`
	BrowserRequirements string  `json:"browserRequirements,omitempty"`
	Offers              []Offer `json:"offers,omitempty"`
	Publisher           *Ref    `json:"publisher,omitempty"`
}

// ListItem schema.org ListItem
type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item,omitempty"`
}

// Crumb a named link
type Crumb struct {
	Name string
	Path string
}

// BreadcrumbList schema.org BreadcrumbList
type BreadcrumbList struct {
	Type            string     `json:"@type"`
	ItemListElement []ListItem `json:"itemListElement"`
}

// ItemList schema.org ItemList
type ItemList struct {
	Type            string     `json:"@type"`
	Name            string     `json:"name,omitempty"`
	NumberOfItems   int        `json:"numberOfItems"`
	ItemListElement []ListItem `json:"itemListElement"`
}

// Article schema.org Article or BlogPosting
type Article struct {
	Type             string   `json:"@type"`
	Headline         string   `json:"headline"`
	Description      string   `json:"description,omitempty"`
	URL              string   `json:"url"`
	MainEntityOfPage string   `json:"mainEntityOfPage"`
	Image            string   `json:"image,omitempty"`
	DatePublished    string   `json:"datePublished,omitempty"`
	DateModified     string   `json:"dateModified,omitempty"`
	ArticleSection   string   `json:"articleSection,omitempty"`
	Keywords         []string `json:"keywords,omitempty"`
	WordCount        int      `json:"wordCount,omitempty"`
	Author           *Ref     `json:"author"`
	Publisher        *Ref     `json:"publisher"`
}

// ArticleInfo the page facts an Article is built from
type ArticleInfo struct {
	Type        string
	Headline    string
	Description string
	Path        string
	Published   string
	Modified    string
	Section     string
	Keywords    []string
	WordCount   int
}

// Answer schema.org Answer
type Answer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

// Question schema.org Question
type Question struct {
	Type           string `json:"@type"`
	Name           string `json:"name"`
	AcceptedAnswer Answer `json:"acceptedAnswer"`
}

// FAQ a question and a plain text answer
type FAQ struct {
	Question string
	Answer   string
}

// FAQPage schema.org FAQPage
type FAQPage struct {
	Type       string     `json:"@type"`
	MainEntity []Question `json:"mainEntity"`
}

// HowToStep schema.org HowToStep
type HowToStep struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	Text string `json:"text"`
	URL  string `json:"url,omitempty"`
}

// HowTo schema.org HowTo
type HowTo struct {
	Type        string      `json:"@type"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Step        []HowToStep `json:"step"`
}

// Step a guide section
type Step struct {
	Name string
	Text string
	Path string
}

// OrganizationID the @id of the site organization
func OrganizationID(baseURL string) string {
	return Absolute(baseURL, "/") + "#organization"
}

// NewOrganization the site organization
func NewOrganization(baseURL string) Organization {
	site := share.Site
	return Organization{
		Type:      "Organization",
		ID:        OrganizationID(baseURL),
		Name:      site.Name,
		LegalName: site.Legal,
		URL:       Absolute(baseURL, "/"),
		Logo:      &ImageObject{Type: "ImageObject", URL: Absolute(baseURL, site.Logo)},
		Email:     site.Email,
		SameAs:    site.SameAs,
	}
}

// NewSoftwareApplication the product
func NewSoftwareApplication(baseURL string) Application {
	site := share.Site
	return Application{
		Type:                "SoftwareApplication",
		ID:                  Absolute(baseURL, "/") + "#software",
		Name:                site.Name,
		Description:         site.Description,
		URL:                 Absolute(baseURL, "/"),
		ApplicationCategory: "BusinessApplication",
		OperatingSystem:     "Web",
		Offers: []Offer{
			{Type: "Offer", Name: "Free", Price: "0", PriceCurrency: "GBP"},
			{Type: "Offer", Name: "Pro", Price: "12.00", PriceCurrency: "GBP"},
		},
		Publisher: &Ref{ID: OrganizationID(baseURL)},
	}
}

// NewWebApplication a free tool of the site
func NewWebApplication(baseURL string, name string, path string, description string) Application {
	return Application{
		Type:                "WebApplication",
		Name:                name,
		Description:         description,
		URL:                 Absolute(baseURL, path),
		ApplicationCategory: "FinanceApplication",
		BrowserRequirements: "Requires a modern web browser",
		Offers:              []Offer{{Type: "Offer", Price: "0", PriceCurrency: "GBP"}},
		Publisher:           &Ref{ID: OrganizationID(baseURL)},
	}
}

func listItems(baseURL string, crumbs []Crumb) []ListItem {
	items := make([]ListItem, 0, len(crumbs))
	for i, c := range crumbs {
		item := ListItem{Type: "ListItem", Position: i + 1, Name: c.Name}
		if c.Path != "" {
			item.Item = Absolute(baseURL, c.Path)
		}
		items = append(items, item)
	}
	return items
}

// NewBreadcrumbList the trail from the home page to the current page
func NewBreadcrumbList(baseURL string, crumbs ...Crumb) BreadcrumbList {
	return BreadcrumbList{Type: "BreadcrumbList", ItemListElement: listItems(baseURL, crumbs)}
}

// NewItemList a list of pages, the hub pages use it
func NewItemList(baseURL string, name string, items []Crumb) ItemList {
	return ItemList{
		Type:            "ItemList",
		Name:            name,
		NumberOfItems:   len(items),
		ItemListElement: listItems(baseURL, items),
	}
}

// NewArticle an article published by the site organization
func NewArticle(baseURL string, info ArticleInfo) Article {
	typ := info.Type
	if typ == "" {
		typ = "Article"
	}
	url := Absolute(baseURL, info.Path)
	org := &Ref{ID: OrganizationID(baseURL)}
	modified := info.Modified
	if modified == "" {
		modified = info.Published
	}
	return Article{
		Type:             typ,
		Headline:         info.Headline,
		Description:      info.Description,
		URL:              url,
		MainEntityOfPage: url,
		Image:            Absolute(baseURL, ImagePath(info.Path)),
		DatePublished:    info.Published,
		DateModified:     modified,
		ArticleSection:   info.Section,
		Keywords:         info.Keywords,
		WordCount:        info.WordCount,
		Author:           org,
		Publisher:        org,
	}
}

// NewFAQPage the questions and answers of a page
func NewFAQPage(faqs []FAQ) FAQPage {
	questions := make([]Question, 0, len(faqs))
	for _, f := range faqs {
		questions = append(questions, Question{
			Type:           "Question",
			Name:           f.Question,
			AcceptedAnswer: Answer{Type: "Answer", Text: f.Answer},
		})
	}
	return FAQPage{Type: "FAQPage", MainEntity: questions}
}

// NewHowTo a guide as steps
func NewHowTo(baseURL string, name string, description string, steps []Step) HowTo {
	list := make([]HowToStep, 0, len(steps))
	for _, s := range steps {
		step := HowToStep{Type: "HowToStep", Name: s.Name, Text: s.Text}
		if s.Path != "" {
			step.URL = Absolute(baseURL, s.Path)
		}
		list = append(list, step)
	}
	return HowTo{Type: "HowTo", Name: name, Description: description, Step: list}
}

// Graph a JSON-LD document of the nodes
func Graph(nodes ...interface{}) Document {
	return Document{Context: Context, Graph: nodes}
}

// Marshal the JSON of a document. <, > and & are escaped so the result is
// safe inside a script element.
func Marshal(doc Document) ([]byte, error) {
	return json.Marshal(doc)
}

// Script the JSON-LD script element of the nodes
func Script(nodes ...interface{}) template.HTML {
	if len(nodes) == 0 {
		return ""
	}
	bytes, err := Marshal(Graph(nodes...))
	if err != nil {
		log.Error("[seo] json-ld: %s", err.Error())
		return ""
	}
	return template.HTML(`<script type="application/ld+json">` + string(bytes) + `</script>`)
}
