package page

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tesso57/rssminer/internal/domain/discovery"
	"github.com/tesso57/rssminer/internal/infrastructure/httpclient"
	"github.com/tesso57/rssminer/internal/testutil/fixture"
)

func TestExtractCandidates(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected []discovery.Candidate
	}{
		{
			name:     "no feeds",
			html:     `<html><head><title>Test</title></head><body>Content</body></html>`,
			expected: nil,
		},
		{
			name: "single RSS feed",
			html: fixture.Page("Blog", fixture.RSSLink("/feed.xml", "RSS Feed")),
			expected: []discovery.Candidate{
				{Href: "/feed.xml", Title: "RSS Feed", Hint: discovery.FormatRSS},
			},
		},
		{
			name: "rss and atom in document order",
			html: fixture.Page("Blog",
				fixture.AtomLink("/atom.xml", "Atom"),
				fixture.RSSLink("/rss.xml", "RSS"),
			),
			expected: []discovery.Candidate{
				{Href: "/atom.xml", Title: "Atom", Hint: discovery.FormatAtom},
				{Href: "/rss.xml", Title: "RSS", Hint: discovery.FormatRSS},
			},
		},
		{
			name: "ignores non-feed links",
			html: `<html><head>
				<link rel="stylesheet" type="text/css" href="/style.css">
				<link rel="alternate" type="application/rss+xml" href="/feed.xml">
				<link rel="alternate" type="application/json" href="/feed.json">
				<link rel="canonical" href="https://example.com">
			</head><body>Content</body></html>`,
			expected: []discovery.Candidate{
				{Href: "/feed.xml", Hint: discovery.FormatRSS},
			},
		},
		{
			name: "type matching ignores case and parameters",
			html: `<html><head>
				<link rel="alternate" type="Application/RSS+XML; charset=utf-8" href="/a">
				<link rel="alternate" type=" application/atom+xml " href="/b">
			</head></html>`,
			expected: []discovery.Candidate{
				{Href: "/a", Hint: discovery.FormatRSS},
				{Href: "/b", Hint: discovery.FormatAtom},
			},
		},
		{
			name: "missing href is kept for the caller to skip",
			html: `<html><head><link rel="alternate" type="application/rss+xml" title="Broken"></head></html>`,
			expected: []discovery.Candidate{
				{Title: "Broken", Hint: discovery.FormatRSS},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractCandidates(strings.NewReader(tt.html))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestScan(t *testing.T) {
	site := fixture.NewSite(t)
	site.Serve("/", "text/html; charset=utf-8", fixture.Page("Home",
		fixture.RSSLink("/feed.xml", "Posts"),
		fixture.AtomLink("https://elsewhere.example/atom", "Mirror"),
	))
	site.ServeStatus("/gone", "text/html", fixture.Page("Gone", fixture.RSSLink("/old.xml", "Old")), http.StatusNotFound)

	s := NewScanner(httpclient.New(httpclient.Options{}), 0)

	got, err := s.Scan(context.Background(), site.URLFor("/"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "/feed.xml", got[0].Href)
	assert.Equal(t, "Posts", got[0].Title)
	assert.Equal(t, "https://elsewhere.example/atom", got[1].Href)

	gone, err := s.Scan(context.Background(), site.URLFor("/gone"))
	require.NoError(t, err)
	require.Len(t, gone, 1)
	assert.Equal(t, "/old.xml", gone[0].Href)
}

func TestScanDecodesLegacyCharset(t *testing.T) {
	site := fixture.NewSite(t)
	// "Café" in ISO-8859-1.
	body := "<html><head><link rel=\"alternate\" type=\"application/rss+xml\" href=\"/rss\" title=\"Caf\xe9\"></head></html>"
	site.Serve("/", "text/html; charset=iso-8859-1", body)

	got, err := NewScanner(nil, 0).Scan(context.Background(), site.URLFor("/"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Café", got[0].Title)
}

func TestScanUnreachable(t *testing.T) {
	s := NewScanner(nil, 0)
	_, err := s.Scan(context.Background(), "http://127.0.0.1:1/")
	assert.Error(t, err)

	_, err = s.Scan(context.Background(), "not-a-url")
	assert.Error(t, err)
}
