package seo

import (
	"strings"

	"github.com/invoiceflow/site/share"
)

// Meta the head metadata of a page
type Meta struct {
	Title       string
	Description string
	Canonical   string
	Image       string
	Type        string
	NoIndex     bool
	Published   string
	Modified    string
}

// FullTitle "Title | Site", the site name alone for the home page
func (m Meta) FullTitle() string {
	if m.Title == "" || m.Title == share.Site.Name {
		return share.Site.Name
	}
	return m.Title + " | " + share.Site.Name
}

// OGType the og:type, website unless set
func (m Meta) OGType() string {
	if m.Type == "" {
		return "website"
	}
	return m.Type
}

// Robots the robots meta value
func (m Meta) Robots() string {
	if m.NoIndex {
		return "noindex, nofollow"
	}
	return "index, follow"
}

// Absolute join the base URL and a path
func Absolute(baseURL string, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if path == "" || path == "/" {
		return strings.TrimRight(baseURL, "/") + "/"
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// ImagePath the Open Graph image path of a page path: "/" -> "/og/index.png"
func ImagePath(path string) string {
	path = strings.Trim(path, "/")
	if path == "" {
		path = "index"
	}
	return "/og/" + path + ".png"
}
