// Package discovery defines the models produced by feed discovery.
package discovery

import (
	"fmt"
	"strings"
)

// UntitledFeedTitle is used when a feed link carries no title attribute.
const UntitledFeedTitle = "Untitled Feed"

// UnknownHostTitle is used when a page URL has no parseable host.
const UnknownHostTitle = "Unknown"

// Format identifies a syndication format.
type Format int

const (
	// FormatUnknown marks a document that is not a supported feed.
	FormatUnknown Format = iota
	// FormatRSS covers RSS 0.9x, 1.0 (RDF) and 2.0.
	FormatRSS
	// FormatAtom covers Atom 0.3 and 1.0.
	FormatAtom
)

// String returns the lowercase label used in OPML outlines.
func (f Format) String() string {
	switch f {
	case FormatRSS:
		return "rss"
	case FormatAtom:
		return "atom"
	default:
		return "unknown"
	}
}

// ParseFormat converts a label such as "rss" or "atom" into a Format.
func ParseFormat(label string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "rss":
		return FormatRSS, nil
	case "atom":
		return FormatAtom, nil
	default:
		return FormatUnknown, fmt.Errorf("unknown feed format %q", label)
	}
}

// Feed is a validated syndication source found on a page.
type Feed struct {
	Title         string
	FeedURL       string
	SourcePageURL string
	Format        Format
}

// Candidate is a link suspected of being a feed, prior to validation.
type Candidate struct {
	Href  string
	Title string
	// Hint is the format advertised by the markup. It is never used to classify.
	Hint Format
}

// DisplayTitle returns the candidate title, or UntitledFeedTitle when blank.
func (c Candidate) DisplayTitle() string {
	if title := strings.TrimSpace(c.Title); title != "" {
		return title
	}
	return UntitledFeedTitle
}
