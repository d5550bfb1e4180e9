package rss

import "time"

// Feed a feed built as RSS 2.0 or Atom 1.0
type Feed struct {
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	Self        string     `json:"self,omitempty"`
	Description string     `json:"description"`
	Language    string     `json:"language,omitempty"`
	Author      string     `json:"author,omitempty"`
	Image       string     `json:"image,omitempty"`
	Updated     time.Time  `json:"updated"`
	Items       []FeedItem `json:"items"`
}

// FeedItem a feed entry
type FeedItem struct {
	Title       string      `json:"title"`
	Link        string      `json:"link"`
	Description string      `json:"description,omitempty"`
	Content     string      `json:"content,omitempty"`
	Author      string      `json:"author,omitempty"`
	Published   time.Time   `json:"published"`
	Updated     time.Time   `json:"updated"`
	GUID        string      `json:"guid,omitempty"`
	Categories  []string    `json:"categories,omitempty"`
	Enclosures  []Enclosure `json:"enclosures,omitempty"`
}

// Enclosure an attached media file
type Enclosure struct {
	URL    string `json:"url"`
	Type   string `json:"type,omitempty"`
	Length string `json:"length,omitempty"`
}

const (
	// ContentType the RSS 2.0 content type
	ContentType = "application/rss+xml; charset=utf-8"

	// AtomContentType the Atom 1.0 content type
	AtomContentType = "application/atom+xml; charset=utf-8"
)
