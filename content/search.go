package content

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// Okapi BM25 parameters
const (
	bm25K1      = 1.2
	bm25B       = 0.75
	bm25Epsilon = 0.25
)

var reToken = regexp.MustCompile(`[a-z0-9]+`)

// field weights: the title counts three times, the description twice
type field struct {
	text   string
	weight int
}

type entry struct {
	result SearchResult
	terms  map[string]int
	length int
}

type index struct {
	entries []entry
	average float64
	idf     map[string]float64
}

// Tokenize lower case alphanumeric runs
func Tokenize(text string) []string {
	return reToken.FindAllString(strings.ToLower(text), -1)
}

func newIndex(ds *dataset) *index {
	idx := &index{idf: map[string]float64{}}

	add := func(result SearchResult, fields ...field) {
		e := entry{result: result, terms: map[string]int{}}
		for _, f := range fields {
			tokens := Tokenize(f.text)
			for w := 0; w < f.weight; w++ {
				for _, t := range tokens {
					e.terms[t]++
					e.length++
				}
			}
		}
		idx.entries = append(idx.entries, e)
	}

	for _, a := range ds.articles {
		add(SearchResult{Kind: "blog", Slug: a.Slug, Title: a.Title, Description: a.Description, URL: "/blog/" + a.Slug},
			field{a.Title, 3},
			field{a.Description + " " + strings.Join(a.Keywords, " "), 2},
			field{Text(string(a.HTML)), 1},
		)
	}

	for _, g := range ds.guides {
		body := []string{}
		for _, s := range g.Sections {
			body = append(body, s.Heading, Text(string(s.HTML)))
		}
		body = append(body, g.Takeaways...)
		add(SearchResult{Kind: "guide", Slug: g.Slug, Title: g.Title, Description: g.Summary, URL: "/guides/" + g.Slug},
			field{g.Title, 3},
			field{g.Summary, 2},
			field{strings.Join(body, " "), 1},
		)
	}

	for _, c := range ds.competitors {
		body := append([]string{c.BestFor, c.Pricing}, c.Pros...)
		body = append(body, c.Cons...)
		add(SearchResult{Kind: "competitor", Slug: c.Slug, Title: c.Name + " alternative", Description: c.Tagline, URL: "/alternatives/" + c.Slug},
			field{c.Name + " alternative", 3},
			field{c.Tagline + " " + c.Description, 2},
			field{strings.Join(body, " "), 1},
		)
	}

	frequency := map[string]int{}
	total := 0
	for _, e := range idx.entries {
		total += e.length
		for t := range e.terms {
			frequency[t]++
		}
	}
	if len(idx.entries) > 0 {
		idx.average = float64(total) / float64(len(idx.entries))
	}

	n := float64(len(idx.entries))
	for t, f := range frequency {
		idf := math.Log(1 + (n-float64(f)+0.5)/(float64(f)+0.5))
		if idf < 0 {
			idf = bm25Epsilon
		}
		idx.idf[t] = idf
	}
	return idx
}

func (idx *index) score(e entry, tokens []string) float64 {
	score := 0.0
	for _, t := range tokens {
		tf := float64(e.terms[t])
		if tf == 0 {
			continue
		}
		score += idx.idf[t] * tf * (bm25K1 + 1) / (tf + bm25K1*(1-bm25B+bm25B*float64(e.length)/idx.average))
	}
	return score
}

// Search rank the articles, guides and competitors against the query
// (BM25). Returns at most limit results, all of them when limit <= 0.
func Search(query string, limit int) []SearchResult {
	idx := load().search
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return []SearchResult{}
	}

	results := []SearchResult{}
	for _, e := range idx.entries {
		if score := idx.score(e, tokens); score > 0 {
			r := e.result
			r.Score = score
			results = append(results, r)
		}
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
