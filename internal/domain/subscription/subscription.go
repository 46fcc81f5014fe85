// Package subscription defines the subscription list built from discovered feeds.
package subscription

import (
	"fmt"
	"strings"

	"github.com/tesso57/rssminer/internal/domain/discovery"
)

// Filter restricts a subscription list to one feed format.
type Filter string

const (
	// FilterBoth keeps every format.
	FilterBoth Filter = "both"
	// FilterRSS keeps RSS feeds only.
	FilterRSS Filter = "rss"
	// FilterAtom keeps Atom feeds only.
	FilterAtom Filter = "atom"
)

// ParseFilter converts "both", "rss" or "atom" into a Filter. Empty means both.
func ParseFilter(value string) (Filter, error) {
	switch Filter(strings.ToLower(strings.TrimSpace(value))) {
	case "", FilterBoth:
		return FilterBoth, nil
	case FilterRSS:
		return FilterRSS, nil
	case FilterAtom:
		return FilterAtom, nil
	default:
		return "", fmt.Errorf("unknown feed filter %q", value)
	}
}

// FilterFor returns the filter selecting a single format.
func FilterFor(format discovery.Format) Filter {
	switch format {
	case discovery.FormatRSS:
		return FilterRSS
	case discovery.FormatAtom:
		return FilterAtom
	default:
		return FilterBoth
	}
}

// Match reports whether a feed of the given format passes the filter.
func (f Filter) Match(format discovery.Format) bool {
	switch f {
	case FilterRSS:
		return format == discovery.FormatRSS
	case FilterAtom:
		return format == discovery.FormatAtom
	default:
		return true
	}
}

// DocumentTitle is the fixed head title for a list built with this filter.
func (f Filter) DocumentTitle() string {
	if f == FilterAtom {
		return "Atom Feeds"
	}
	return "RSS Feeds"
}

// Outline is one subscription entry.
type Outline struct {
	Text    string
	Type    string
	XMLURL  string
	HTMLURL string
}

// Document is a titled, ordered list of subscription entries.
type Document struct {
	Title    string
	Outlines []Outline
}

// Build filters and de-duplicates feeds into a Document.
// Feeds are visited in order and the first occurrence of a canonical feed URL wins.
func Build(feeds []discovery.Feed, filter Filter) Document {
	doc := Document{
		Title:    filter.DocumentTitle(),
		Outlines: make([]Outline, 0, len(feeds)),
	}
	seen := make(map[string]struct{}, len(feeds))
	for _, feed := range feeds {
		if !filter.Match(feed.Format) {
			continue
		}
		key := discovery.CanonicalURL(feed.FeedURL)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		doc.Outlines = append(doc.Outlines, Outline{
			Text:    feed.Title,
			Type:    feed.Format.String(),
			XMLURL:  key,
			HTMLURL: feed.SourcePageURL,
		})
	}
	return doc
}
