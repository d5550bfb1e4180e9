package rss

import (
	"fmt"
	"time"
)

// now is replaced in tests
var now = time.Now

// Build the XML document of the feed. format is "rss" (default) or "atom".
func Build(feed *Feed, format string) (string, error) {
	if feed == nil {
		return "", fmt.Errorf("feed is nil")
	}

	switch format {
	case "", "rss", "rss2.0":
		return buildRSSXML(feed)
	case "atom", "atom1.0":
		return buildAtomXML(feed)
	default:
		return "", fmt.Errorf("unsupported output format: %q, expected \"rss\" or \"atom\"", format)
	}
}

// updated the feed update time: the set value, else the latest item, else now
func updated(feed *Feed) time.Time {
	if !feed.Updated.IsZero() {
		return feed.Updated
	}
	latest := time.Time{}
	for _, item := range feed.Items {
		for _, t := range []time.Time{item.Published, item.Updated} {
			if t.After(latest) {
				latest = t
			}
		}
	}
	if latest.IsZero() {
		return now()
	}
	return latest
}
