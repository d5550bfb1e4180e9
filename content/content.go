package content

import (
	"embed"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/yaoapp/kun/log"
	"gopkg.in/yaml.v3"
)

// Author the byline of generated articles
const Author = "InvoiceFlow Team"

// MaxRelated the number of related articles per article
const MaxRelated = 3

// DescriptionLength the length of generated meta descriptions
const DescriptionLength = 155

//go:embed data/*.yaml
var data embed.FS

type dataset struct {
	competitors []Competitor
	faqs        []FAQ
	articles    []BlogArticle
	guides      []GuideArticle
	categories  []Category
	index       map[string]map[string]int
	search      *index
}

var (
	store    *dataset
	loadOnce sync.Once
)

func load() *dataset {
	loadOnce.Do(func() {
		ds, err := build()
		if err != nil {
			panic(fmt.Sprintf("content: %s", err))
		}
		store = ds
		log.Trace("[content] %d competitors, %d articles, %d guides loaded", len(ds.competitors), len(ds.articles), len(ds.guides))
	})
	return store
}

func read(name string, v interface{}) error {
	src, err := data.ReadFile("data/" + name)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(src, v); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func build() (*dataset, error) {
	ds := &dataset{index: map[string]map[string]int{}}
	if err := read("competitors.yaml", &ds.competitors); err != nil {
		return nil, err
	}
	if err := read("faqs.yaml", &ds.faqs); err != nil {
		return nil, err
	}
	if err := read("guides.yaml", &ds.guides); err != nil {
		return nil, err
	}

	ds.articles = articles(ds.faqs)
	ds.categories = categories(ds.articles)

	for i := range ds.guides {
		guide := &ds.guides[i]
		words := 0
		for j := range guide.Sections {
			section := &guide.Sections[j]
			section.ID = Slugify(section.Heading)
			section.HTML = Markdown(section.Body)
			words += WordCount(string(section.HTML))
		}
		guide.ReadingMinutes = ReadingMinutes(words)
	}

	slugs := map[string][]string{}
	for _, c := range ds.competitors {
		slugs["competitor"] = append(slugs["competitor"], c.Slug)
	}
	for _, f := range ds.faqs {
		slugs["faq"] = append(slugs["faq"], f.Slug)
	}
	for _, a := range ds.articles {
		slugs["article"] = append(slugs["article"], a.Slug)
	}
	for _, g := range ds.guides {
		slugs["guide"] = append(slugs["guide"], g.Slug)
	}
	for kind, list := range slugs {
		ds.index[kind] = map[string]int{}
		for i, slug := range list {
			if slug == "" {
				return nil, fmt.Errorf("%s %d has no slug", kind, i)
			}
			if _, has := ds.index[kind][slug]; has {
				return nil, fmt.Errorf("duplicate %s slug %s", kind, slug)
			}
			ds.index[kind][slug] = i
		}
	}

	ds.search = newIndex(ds)
	return ds, nil
}

// articles one article per FAQ, related articles come from the same category
func articles(faqs []FAQ) []BlogArticle {
	byCategory := map[string][]int{}
	for i, f := range faqs {
		byCategory[f.Category] = append(byCategory[f.Category], i)
	}

	list := make([]BlogArticle, 0, len(faqs))
	for i, f := range faqs {
		html := Markdown(f.Answer)
		words := WordCount(string(html))

		article := BlogArticle{
			Slug:           f.Slug,
			Title:          f.Question,
			Description:    Excerpt(string(html), DescriptionLength),
			Category:       f.Category,
			CategorySlug:   Slugify(f.Category),
			Author:         Author,
			Published:      f.Published,
			Updated:        f.Published,
			Keywords:       f.Keywords,
			Body:           f.Answer,
			HTML:           html,
			Headings:       Headings(string(html)),
			WordCount:      words,
			ReadingMinutes: ReadingMinutes(words),
			FAQs:           []QA{{Question: f.Question, Answer: Text(string(html))}},
		}

		for _, j := range byCategory[f.Category] {
			if j == i {
				continue
			}
			if len(article.Related) == MaxRelated {
				break
			}
			article.Related = append(article.Related, faqs[j].Slug)
			related := Markdown(faqs[j].Answer)
			article.FAQs = append(article.FAQs, QA{Question: faqs[j].Question, Answer: Text(string(related))})
		}
		list = append(list, article)
	}

	sort.SliceStable(list, func(i, j int) bool { return list[i].Published > list[j].Published })
	return list
}

func categories(articles []BlogArticle) []Category {
	counts := map[string]*Category{}
	list := []Category{}
	for _, a := range articles {
		if c, has := counts[a.CategorySlug]; has {
			c.Count++
			continue
		}
		counts[a.CategorySlug] = &Category{Slug: a.CategorySlug, Name: a.Category, Count: 1}
	}
	for _, c := range counts {
		list = append(list, *c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

var reSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower case words joined by dashes: "Getting paid" -> "getting-paid"
func Slugify(s string) string {
	return strings.Trim(reSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

func (ds *dataset) lookup(kind string, slug string) (int, bool) {
	i, has := ds.index[kind][slug]
	return i, has
}

// CompetitorBySlug the competitor or nil when there is none
func CompetitorBySlug(slug string) *Competitor {
	ds := load()
	if i, has := ds.lookup("competitor", slug); has {
		return &ds.competitors[i]
	}
	return nil
}

// BlogArticleBySlug the article or nil when there is none
func BlogArticleBySlug(slug string) *BlogArticle {
	ds := load()
	if i, has := ds.lookup("article", slug); has {
		return &ds.articles[i]
	}
	return nil
}

// GuideBySlug the guide or nil when there is none
func GuideBySlug(slug string) *GuideArticle {
	ds := load()
	if i, has := ds.lookup("guide", slug); has {
		return &ds.guides[i]
	}
	return nil
}

// FAQBySlug the FAQ or nil when there is none
func FAQBySlug(slug string) *FAQ {
	ds := load()
	if i, has := ds.lookup("faq", slug); has {
		return &ds.faqs[i]
	}
	return nil
}

// Competitors all competitors, in directory order
func Competitors() []Competitor {
	return load().competitors
}

// FAQs all FAQs
func FAQs() []FAQ {
	return load().faqs
}

// BlogArticles all articles, newest first
func BlogArticles() []BlogArticle {
	return load().articles
}

// BlogCategories the categories with their article counts, by name
func BlogCategories() []Category {
	return load().categories
}

// CategoryBySlug the category or nil when there is none
func CategoryBySlug(slug string) *Category {
	list := load().categories
	for i := range list {
		if list[i].Slug == slug {
			return &list[i]
		}
	}
	return nil
}

// BlogArticlesByCategory the articles of a category slug, newest first
func BlogArticlesByCategory(slug string) []BlogArticle {
	list := []BlogArticle{}
	for _, a := range load().articles {
		if a.CategorySlug == slug {
			list = append(list, a)
		}
	}
	return list
}

// RelatedArticles the related articles of an article
func RelatedArticles(article *BlogArticle) []BlogArticle {
	list := []BlogArticle{}
	for _, slug := range article.Related {
		if a := BlogArticleBySlug(slug); a != nil {
			list = append(list, *a)
		}
	}
	return list
}

// Guides all guides
func Guides() []GuideArticle {
	return load().guides
}
