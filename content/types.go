package content

import "html/template"

// Feature one row of a comparison table
type Feature struct {
	Name string `json:"name" yaml:"name"`
	Us   string `json:"us" yaml:"us"`
	Them string `json:"them" yaml:"them"`
}

// QA a question and its answer (markdown)
type QA struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Competitor an entry of the alternatives directory
type Competitor struct {
	Slug        string    `json:"slug" yaml:"slug"`
	Name        string    `json:"name" yaml:"name"`
	Tagline     string    `json:"tagline" yaml:"tagline"`
	Description string    `json:"description" yaml:"description"`
	Website     string    `json:"website" yaml:"website"`
	Pricing     string    `json:"pricing" yaml:"pricing"`
	Founded     int       `json:"founded" yaml:"founded"`
	BestFor     string    `json:"best_for" yaml:"best_for"`
	Rating      float64   `json:"rating" yaml:"rating"`
	Pros        []string  `json:"pros" yaml:"pros"`
	Cons        []string  `json:"cons" yaml:"cons"`
	Features    []Feature `json:"features" yaml:"features"`
	FAQs        []QA      `json:"faqs" yaml:"faqs"`
}

// FAQ a knowledge base question, every FAQ is published as a blog article
type FAQ struct {
	Slug      string   `json:"slug" yaml:"slug"`
	Question  string   `json:"question" yaml:"question"`
	Answer    string   `json:"answer" yaml:"answer"`
	Category  string   `json:"category" yaml:"category"`
	Published string   `json:"published" yaml:"published"`
	Keywords  []string `json:"keywords" yaml:"keywords"`
}

// BlogArticle an article generated from a FAQ
type BlogArticle struct {
	Slug           string        `json:"slug"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Category       string        `json:"category"`
	CategorySlug   string        `json:"category_slug"`
	Author         string        `json:"author"`
	Published      string        `json:"published"`
	Updated        string        `json:"updated"`
	Keywords       []string      `json:"keywords"`
	Body           string        `json:"body"`
	HTML           template.HTML `json:"-"`
	Headings       []Heading     `json:"headings"`
	WordCount      int           `json:"word_count"`
	ReadingMinutes int           `json:"reading_minutes"`
	FAQs           []QA          `json:"faqs"`
	Related        []string      `json:"related"`
}

// Category a blog category
type Category struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Section a titled part of a guide
type Section struct {
	Heading string        `json:"heading" yaml:"heading"`
	Body    string        `json:"body" yaml:"body"`
	ID      string        `json:"id" yaml:"-"`
	HTML    template.HTML `json:"-" yaml:"-"`
}

// Source a reference cited by a guide
type Source struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
}

// GuideArticle a UK tax compliance guide
type GuideArticle struct {
	Slug           string    `json:"slug" yaml:"slug"`
	Title          string    `json:"title" yaml:"title"`
	Summary        string    `json:"summary" yaml:"summary"`
	Category       string    `json:"category" yaml:"category"`
	Reviewed       string    `json:"reviewed" yaml:"reviewed"`
	Sections       []Section `json:"sections" yaml:"sections"`
	Takeaways      []string  `json:"takeaways" yaml:"takeaways"`
	Sources        []Source  `json:"sources" yaml:"sources"`
	ReadingMinutes int       `json:"reading_minutes" yaml:"-"`
}

// Heading a heading of rendered HTML
type Heading struct {
	Level int    `json:"level"`
	ID    string `json:"id"`
	Text  string `json:"text"`
}

// SearchResult a search hit
type SearchResult struct {
	Kind        string  `json:"kind"`
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
	Score       float64 `json:"score"`
}
