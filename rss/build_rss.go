package rss

import (
	"encoding/xml"
	"time"
)

const (
	contentNS = "http://purl.org/rss/1.0/modules/content/"
	atomNS    = "http://www.w3.org/2005/Atom"
)

func buildRSSXML(feed *Feed) (string, error) {
	doc := rssBuildDoc{
		Version:   "2.0",
		ContentNS: contentNS,
		AtomNS:    atomNS,
	}

	ch := &doc.Channel
	ch.Title = feed.Title
	ch.Link = feed.Link
	ch.Description = feed.Description
	ch.Language = feed.Language
	ch.LastBuild = updated(feed).UTC().Format(time.RFC1123Z)
	ch.Generator = feed.Author
	if feed.Self != "" {
		ch.Self = &rssBuildAtomLink{Href: feed.Self, Rel: "self", Type: "application/rss+xml"}
	}
	if feed.Image != "" {
		ch.Image = &rssBuildImage{URL: feed.Image, Title: feed.Title, Link: feed.Link}
	}

	for _, item := range feed.Items {
		ri := rssBuildItem{
			Title:       item.Title,
			Link:        item.Link,
			Description: item.Description,
			Categories:  item.Categories,
		}

		if !item.Published.IsZero() {
			ri.PubDate = item.Published.UTC().Format(time.RFC1123Z)
		}

		guid := item.GUID
		if guid == "" {
			guid = item.Link
		}
		if guid != "" {
			ri.GUID = &rssBuildGUID{Value: guid, IsPermaLink: "false"}
			if guid == item.Link {
				ri.GUID.IsPermaLink = "true"
			}
		}

		if item.Content != "" {
			ri.Content = &rssBuildCDATA{Value: item.Content}
		}

		for _, enc := range item.Enclosures {
			ri.Enclosures = append(ri.Enclosures, rssBuildEnclosure{URL: enc.URL, Type: enc.Type, Length: enc.Length})
		}

		ch.Items = append(ch.Items, ri)
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return xml.Header + string(output), nil
}

type rssBuildDoc struct {
	XMLName   xml.Name        `xml:"rss"`
	Version   string          `xml:"version,attr"`
	ContentNS string          `xml:"xmlns:content,attr,omitempty"`
	AtomNS    string          `xml:"xmlns:atom,attr,omitempty"`
	Channel   rssBuildChannel `xml:"channel"`
}

type rssBuildChannel struct {
	Title       string            `xml:"title"`
	Link        string            `xml:"link"`
	Self        *rssBuildAtomLink `xml:"atom:link,omitempty"`
	Description string            `xml:"description"`
	Language    string            `xml:"language,omitempty"`
	Generator   string            `xml:"generator,omitempty"`
	LastBuild   string            `xml:"lastBuildDate,omitempty"`
	Image       *rssBuildImage    `xml:"image,omitempty"`
	Items       []rssBuildItem    `xml:"item"`
}

type rssBuildAtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssBuildImage struct {
	URL   string `xml:"url"`
	Title string `xml:"title"`
	Link  string `xml:"link"`
}

type rssBuildItem struct {
	Title       string              `xml:"title"`
	Link        string              `xml:"link,omitempty"`
	Description string              `xml:"description,omitempty"`
	Content     *rssBuildCDATA      `xml:"content:encoded,omitempty"`
	PubDate     string              `xml:"pubDate,omitempty"`
	GUID        *rssBuildGUID       `xml:"guid,omitempty"`
	Categories  []string            `xml:"category,omitempty"`
	Enclosures  []rssBuildEnclosure `xml:"enclosure,omitempty"`
}

type rssBuildGUID struct {
	Value       string `xml:",chardata"`
	IsPermaLink string `xml:"isPermaLink,attr"`
}

type rssBuildCDATA struct {
	Value string `xml:",cdata"`
}

type rssBuildEnclosure struct {
	XMLName xml.Name `xml:"enclosure"`
	URL     string   `xml:"url,attr"`
	Type    string   `xml:"type,attr,omitempty"`
	Length  string   `xml:"length,attr,omitempty"`
}
