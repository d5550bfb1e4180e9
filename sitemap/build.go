package sitemap

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// Build the urlset document of the URLs
func Build(urls []URL) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, urls); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Write stream the urlset document to w. More than MaxURLsPerFile URLs or
// an entry without <loc> is an error.
func Write(w io.Writer, urls []URL) error {
	if len(urls) > MaxURLsPerFile {
		return fmt.Errorf("%d URLs, a sitemap holds at most %d", len(urls), MaxURLsPerFile)
	}

	header := xml.Header + `<urlset xmlns="` + NSSitemap + `" xmlns:image="` + NSImage + `">` + "\n"
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}

	encoder := xml.NewEncoder(w)
	for i, u := range urls {
		if u.Loc == "" {
			return fmt.Errorf("url at index %d has no loc", i)
		}
		u.XMLName = xml.Name{}
		if err := encoder.Encode(u); err != nil {
			return fmt.Errorf("url %s: %w", u.Loc, err)
		}
		if err := encoder.Flush(); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</urlset>\n")
	return err
}
