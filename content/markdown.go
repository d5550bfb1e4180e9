package content

import (
	"bytes"
	"html/template"
	"math"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// WordsPerMinute reading speed used for reading time
const WordsPerMinute = 200

var (
	markdown     goldmark.Markdown
	markdownOnce sync.Once
)

func markdownParser() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdown = goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Typographer),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		)
	})
	return markdown
}

// Markdown render markdown (GitHub flavoured) to HTML. Raw HTML in the
// source is not rendered.
func Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdownParser().Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

func document(html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	return doc
}

// Text the plain text of an HTML fragment, whitespace collapsed
func Text(html string) string {
	doc := document(html)
	if doc == nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Excerpt the plain text cut at a word boundary to at most n characters
func Excerpt(html string, n int) string {
	text := Text(html)
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	cut := string(runes[:n])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

// WordCount the number of words of an HTML fragment
func WordCount(html string) int {
	return len(strings.Fields(Text(html)))
}

// ReadingMinutes the reading time of the given number of words, at least 1
func ReadingMinutes(words int) int {
	minutes := int(math.Ceil(float64(words) / WordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Headings the h2 to h4 headings of an HTML fragment
func Headings(html string) []Heading {
	doc := document(html)
	if doc == nil {
		return nil
	}

	headings := []Heading{}
	doc.Find("h2, h3, h4").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		headings = append(headings, Heading{
			Level: int(goquery.NodeName(s)[1] - '0'),
			ID:    id,
			Text:  strings.TrimSpace(s.Text()),
		})
	})
	return headings
}
