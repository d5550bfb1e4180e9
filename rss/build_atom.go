package rss

import (
	"encoding/xml"
	"time"
)

func buildAtomXML(feed *Feed) (string, error) {
	doc := atomBuildFeed{
		NS:       atomNS,
		Lang:     feed.Language,
		Title:    feed.Title,
		Subtitle: feed.Description,
		ID:       feed.Link,
		Icon:     feed.Image,
		Updated:  updated(feed).UTC().Format(time.RFC3339),
	}

	if feed.Link != "" {
		doc.Links = append(doc.Links, atomBuildLink{Href: feed.Link, Rel: "alternate", Type: "text/html"})
	}
	if feed.Self != "" {
		doc.Links = append(doc.Links, atomBuildLink{Href: feed.Self, Rel: "self", Type: "application/atom+xml"})
	}
	if feed.Author != "" {
		doc.Author = &atomBuildPerson{Name: feed.Author}
	}

	for _, item := range feed.Items {
		entry := atomBuildEntry{Title: item.Title, ID: item.GUID}
		if entry.ID == "" {
			entry.ID = item.Link
		}

		if item.Link != "" {
			entry.Links = append(entry.Links, atomBuildLink{Href: item.Link, Rel: "alternate", Type: "text/html"})
		}
		if item.Description != "" {
			entry.Summary = &atomBuildText{Type: "text", Value: item.Description}
		}
		if item.Content != "" {
			entry.Content = &atomBuildText{Type: "html", Value: item.Content}
		}
		if item.Author != "" {
			entry.Authors = append(entry.Authors, atomBuildPerson{Name: item.Author})
		}

		if !item.Published.IsZero() {
			entry.Published = item.Published.UTC().Format(time.RFC3339)
		}
		modified := item.Updated
		if modified.IsZero() {
			modified = item.Published
		}
		if !modified.IsZero() {
			entry.Updated = modified.UTC().Format(time.RFC3339)
		}

		for _, cat := range item.Categories {
			entry.Categories = append(entry.Categories, atomBuildCategory{Term: cat, Label: cat})
		}

		doc.Entries = append(doc.Entries, entry)
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return xml.Header + string(output), nil
}

type atomBuildFeed struct {
	XMLName  xml.Name         `xml:"feed"`
	NS       string           `xml:"xmlns,attr"`
	Lang     string           `xml:"xml:lang,attr,omitempty"`
	Title    string           `xml:"title"`
	Subtitle string           `xml:"subtitle,omitempty"`
	Links    []atomBuildLink  `xml:"link"`
	ID       string           `xml:"id"`
	Icon     string           `xml:"icon,omitempty"`
	Updated  string           `xml:"updated"`
	Author   *atomBuildPerson `xml:"author,omitempty"`
	Entries  []atomBuildEntry `xml:"entry"`
}

type atomBuildLink struct {
	XMLName xml.Name `xml:"link"`
	Href    string   `xml:"href,attr"`
	Rel     string   `xml:"rel,attr,omitempty"`
	Type    string   `xml:"type,attr,omitempty"`
}

type atomBuildEntry struct {
	Title      string              `xml:"title"`
	Links      []atomBuildLink     `xml:"link"`
	ID         string              `xml:"id"`
	Published  string              `xml:"published,omitempty"`
	Updated    string              `xml:"updated,omitempty"`
	Summary    *atomBuildText      `xml:"summary,omitempty"`
	Content    *atomBuildText      `xml:"content,omitempty"`
	Authors    []atomBuildPerson   `xml:"author,omitempty"`
	Categories []atomBuildCategory `xml:"category,omitempty"`
}

type atomBuildText struct {
	Type  string `xml:"type,attr,omitempty"`
	Value string `xml:",chardata"`
}

type atomBuildPerson struct {
	XMLName xml.Name `xml:"author"`
	Name    string   `xml:"name"`
}

type atomBuildCategory struct {
	XMLName xml.Name `xml:"category"`
	Term    string   `xml:"term,attr"`
	Label   string   `xml:"label,attr,omitempty"`
}
