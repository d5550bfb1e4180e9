package rss

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFeed() *Feed {
	published := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return &Feed{
		Title:       "InvoiceFlow blog",
		Link:        "https://example.com/blog",
		Self:        "https://example.com/blog/rss.xml",
		Description: "VAT, CIS & getting paid",
		Language:    "en-GB",
		Author:      "InvoiceFlow Team",
		Items: []FeedItem{
			{
				Title:       "What is CIS?",
				Link:        "https://example.com/blog/what-is-cis",
				Description: "Deductions <explained>",
				Content:     "<p>CIS &amp; you</p>",
				Author:      "InvoiceFlow Team",
				Published:   published,
				Categories:  []string{"CIS"},
			},
			{
				Title:     "Older",
				Link:      "https://example.com/blog/older",
				GUID:      "older-1",
				Published: published.AddDate(0, -1, 0),
			},
		},
	}
}

type rssDoc struct {
	Channel struct {
		Title     string `xml:"title"`
		LastBuild string `xml:"lastBuildDate"`
		Items     []struct {
			Title   string `xml:"title"`
			PubDate string `xml:"pubDate"`
			GUID    struct {
				Value     string `xml:",chardata"`
				PermaLink string `xml:"isPermaLink,attr"`
			} `xml:"guid"`
			Content    string   `xml:"http://purl.org/rss/1.0/modules/content/ encoded"`
			Categories []string `xml:"category"`
		} `xml:"item"`
	} `xml:"channel"`
}

type atomDoc struct {
	Title   string `xml:"title"`
	Updated string `xml:"updated"`
	Links   []struct {
		Href string `xml:"href,attr"`
		Rel  string `xml:"rel,attr"`
	} `xml:"link"`
	Entries []struct {
		ID        string `xml:"id"`
		Published string `xml:"published"`
		Updated   string `xml:"updated"`
		Content   string `xml:"content"`
	} `xml:"entry"`
}

func TestBuildRSS(t *testing.T) {
	out, err := Build(testFeed(), "rss")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, xml.Header))
	assert.Contains(t, out, `<rss version="2.0"`)
	assert.Contains(t, out, `<atom:link href="https://example.com/blog/rss.xml" rel="self" type="application/rss+xml">`)
	assert.Contains(t, out, "<![CDATA[<p>CIS &amp; you</p>]]>")
	assert.Contains(t, out, "Deductions &lt;explained&gt;")

	var doc rssDoc
	require.NoError(t, xml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "InvoiceFlow blog", doc.Channel.Title)
	assert.Equal(t, "Mon, 02 Mar 2026 09:00:00 +0000", doc.Channel.LastBuild)
	require.Len(t, doc.Channel.Items, 2)
	assert.Equal(t, "Mon, 02 Mar 2026 09:00:00 +0000", doc.Channel.Items[0].PubDate)
	assert.Equal(t, "https://example.com/blog/what-is-cis", doc.Channel.Items[0].GUID.Value)
	assert.Equal(t, "true", doc.Channel.Items[0].GUID.PermaLink)
	assert.Equal(t, "false", doc.Channel.Items[1].GUID.PermaLink)
	assert.Equal(t, "<p>CIS &amp; you</p>", doc.Channel.Items[0].Content)
	assert.Equal(t, []string{"CIS"}, doc.Channel.Items[0].Categories)

	def, err := Build(testFeed(), "")
	require.NoError(t, err)
	assert.Equal(t, out, def)
}

func TestBuildAtom(t *testing.T) {
	out, err := Build(testFeed(), "atom")
	require.NoError(t, err)
	assert.Contains(t, out, `<feed xmlns="http://www.w3.org/2005/Atom" xml:lang="en-GB">`)

	var doc atomDoc
	require.NoError(t, xml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "InvoiceFlow blog", doc.Title)
	assert.Equal(t, "2026-03-02T09:00:00Z", doc.Updated)
	require.Len(t, doc.Links, 2)
	assert.Equal(t, "self", doc.Links[1].Rel)
	require.Len(t, doc.Entries, 2)
	assert.Equal(t, "https://example.com/blog/what-is-cis", doc.Entries[0].ID)
	assert.Equal(t, "older-1", doc.Entries[1].ID)
	assert.Equal(t, "2026-02-02T09:00:00Z", doc.Entries[1].Updated)
	assert.Equal(t, "<p>CIS &amp; you</p>", doc.Entries[0].Content)
}

func TestBuildUpdated(t *testing.T) {
	feed := testFeed()
	feed.Updated = time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	out, err := Build(feed, "atom1.0")
	require.NoError(t, err)
	assert.Contains(t, out, "<updated>2026-04-01T00:00:00Z</updated>")

	fixed := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	now = func() time.Time { return fixed }
	defer func() { now = time.Now }()
	out, err = Build(&Feed{Title: "empty"}, "atom")
	require.NoError(t, err)
	assert.Contains(t, out, "<updated>2026-05-01T00:00:00Z</updated>")
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(nil, "rss")
	assert.Error(t, err)
	_, err = Build(testFeed(), "json")
	assert.Error(t, err)
}
