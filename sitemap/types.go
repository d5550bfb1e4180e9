package sitemap

import "encoding/xml"

// URL a page entry of a <urlset>
type URL struct {
	XMLName    xml.Name `json:"-"                    xml:"url"`
	Loc        string   `json:"loc"                  xml:"loc"`
	LastMod    string   `json:"lastmod,omitempty"     xml:"lastmod,omitempty"`
	ChangeFreq string   `json:"changefreq,omitempty"  xml:"changefreq,omitempty"`
	Priority   string   `json:"priority,omitempty"    xml:"priority,omitempty"`
	Images     []Image  `json:"images,omitempty"      xml:"http://www.google.com/schemas/sitemap-image/1.1 image,omitempty"`
}

// Image the Google image extension, the Open Graph image of the page
type Image struct {
	XMLName xml.Name `json:"-"                xml:"http://www.google.com/schemas/sitemap-image/1.1 image"`
	Loc     string   `json:"loc"              xml:"http://www.google.com/schemas/sitemap-image/1.1 loc"`
	Title   string   `json:"title,omitempty"   xml:"http://www.google.com/schemas/sitemap-image/1.1 title,omitempty"`
}

type xmlURLSet struct {
	XMLName xml.Name `xml:"urlset"`
	URLs    []URL    `xml:"url"`
}

type xmlSitemapIndex struct {
	XMLName  xml.Name       `xml:"sitemapindex"`
	Sitemaps []SitemapEntry `xml:"sitemap"`
}

// SitemapEntry a <sitemap> of a sitemapindex
type SitemapEntry struct {
	Loc     string `json:"loc"               xml:"loc"`
	LastMod string `json:"lastmod,omitempty"  xml:"lastmod,omitempty"`
}

// ParseResult Type is "urlset" or "sitemapindex", only the matching field is set
type ParseResult struct {
	Type     string         `json:"type"`
	URLs     []URL          `json:"urls,omitempty"`
	Sitemaps []SitemapEntry `json:"sitemaps,omitempty"`
}

// RobotsOptions the rules of robots.txt
type RobotsOptions struct {
	UserAgent string
	Allow     []string
	Disallow  []string
	Sitemaps  []string
}

const (
	// MaxURLsPerFile the sitemaps.org limit of URLs per file
	MaxURLsPerFile = 50000

	// NSSitemap the sitemap namespace
	NSSitemap = "http://www.sitemaps.org/schemas/sitemap/0.9"

	// NSImage the image extension namespace
	NSImage = "http://www.google.com/schemas/sitemap-image/1.1"
)

// ChangeFreqs the allowed changefreq values
var ChangeFreqs = map[string]bool{
	"always": true, "hourly": true, "daily": true, "weekly": true,
	"monthly": true, "yearly": true, "never": true,
}
