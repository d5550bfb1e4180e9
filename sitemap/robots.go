package sitemap

import (
	"regexp"
	"strings"
)

// reSitemapLine "Sitemap:" directives, case insensitive
var reSitemapLine = regexp.MustCompile(`(?im)^\s*Sitemap:\s*(.+?)\s*$`)

// BuildRobots the robots.txt text of the rules
func BuildRobots(opts RobotsOptions) string {
	agent := opts.UserAgent
	if agent == "" {
		agent = "*"
	}

	var b strings.Builder
	b.WriteString("User-agent: " + agent + "\n")
	for _, path := range opts.Allow {
		b.WriteString("Allow: " + path + "\n")
	}
	for _, path := range opts.Disallow {
		b.WriteString("Disallow: " + path + "\n")
	}
	if len(opts.Allow) == 0 && len(opts.Disallow) == 0 {
		b.WriteString("Allow: /\n")
	}

	if len(opts.Sitemaps) > 0 {
		b.WriteString("\n")
	}
	for _, u := range opts.Sitemaps {
		b.WriteString("Sitemap: " + u + "\n")
	}
	return b.String()
}

// ParseRobots the deduplicated sitemap URLs of a robots.txt
func ParseRobots(text string) []string {
	urls := []string{}
	seen := map[string]bool{}
	for _, m := range reSitemapLine.FindAllStringSubmatch(text, -1) {
		u := strings.TrimSpace(m[1])
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}
	return urls
}
