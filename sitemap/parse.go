package sitemap

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
)

// Parse a sitemap document, a <urlset> or a <sitemapindex>
func Parse(data string) (*ParseResult, error) {
	trimmed := []byte(strings.TrimSpace(data))
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("input is empty")
	}

	root, err := rootElement(trimmed)
	if err != nil {
		return nil, err
	}

	switch root {
	case "urlset":
		var set xmlURLSet
		if err := xml.Unmarshal(trimmed, &set); err != nil {
			return nil, fmt.Errorf("failed to parse urlset: %w", err)
		}
		return &ParseResult{Type: "urlset", URLs: set.URLs}, nil

	case "sitemapindex":
		var idx xmlSitemapIndex
		if err := xml.Unmarshal(trimmed, &idx); err != nil {
			return nil, fmt.Errorf("failed to parse sitemapindex: %w", err)
		}
		return &ParseResult{Type: "sitemapindex", Sitemaps: idx.Sitemaps}, nil
	}

	return nil, fmt.Errorf("root element is <%s>, expected <urlset> or <sitemapindex>", root)
}

// Validate check the document is well formed and every entry has an
// absolute loc, a known changefreq and a priority between 0 and 1.
func Validate(data string) error {
	trimmed := strings.TrimSpace(data)
	if trimmed == "" {
		return fmt.Errorf("input is empty")
	}

	decoder := xml.NewDecoder(strings.NewReader(trimmed))
	for {
		_, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("not valid XML: %w", err)
		}
	}

	result, err := Parse(trimmed)
	if err != nil {
		return err
	}

	if result.Type == "sitemapindex" {
		for i, s := range result.Sitemaps {
			if err := checkLoc(s.Loc); err != nil {
				return fmt.Errorf("sitemap at index %d: %w", i, err)
			}
		}
		return nil
	}

	if len(result.URLs) > MaxURLsPerFile {
		return fmt.Errorf("%d URLs, a sitemap holds at most %d", len(result.URLs), MaxURLsPerFile)
	}

	for i, u := range result.URLs {
		if err := checkLoc(u.Loc); err != nil {
			return fmt.Errorf("url at index %d: %w", i, err)
		}
		if u.ChangeFreq != "" && !ChangeFreqs[u.ChangeFreq] {
			return fmt.Errorf("url at index %d: unknown changefreq %q", i, u.ChangeFreq)
		}
		if u.Priority != "" {
			p, err := strconv.ParseFloat(u.Priority, 64)
			if err != nil || p < 0 || p > 1 {
				return fmt.Errorf("url at index %d: priority %q is not between 0.0 and 1.0", i, u.Priority)
			}
		}
	}
	return nil
}

func checkLoc(loc string) error {
	loc = strings.TrimSpace(loc)
	if loc == "" {
		return fmt.Errorf("missing required <loc> element")
	}
	u, err := url.Parse(loc)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("loc %q is not an absolute URL", loc)
	}
	return nil
}

func rootElement(data []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := decoder.Token()
		if err != nil {
			return "", fmt.Errorf("failed to detect sitemap format: %w", err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se.Name.Local, nil
		}
	}
}
