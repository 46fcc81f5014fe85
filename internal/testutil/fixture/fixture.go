// Package fixture serves fake websites and feeds for tests.
package fixture

import (
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/feeds"
)

var published = time.Date(2026, 1, 15, 18, 32, 4, 0, time.UTC)

func sampleFeed(title, link string) *feeds.Feed {
	return &feeds.Feed{
		Title:       title,
		Link:        &feeds.Link{Href: link},
		Description: title + " updates",
		Author:      &feeds.Author{Name: "gopher", Email: "gopher@example.com"},
		Created:     published,
		Items: []*feeds.Item{
			{
				Title:       "Hello from " + title,
				Link:        &feeds.Link{Href: link + "/hello"},
				Description: "First post",
				Id:          link + "/hello",
				Created:     published,
			},
		},
	}
}

// RSS returns an RSS 2.0 document.
func RSS(title, link string) string {
	doc, err := sampleFeed(title, link).ToRss()
	if err != nil {
		panic(err)
	}
	return doc
}

// Atom returns an Atom 1.0 document.
func Atom(title, link string) string {
	doc, err := sampleFeed(title, link).ToAtom()
	if err != nil {
		panic(err)
	}
	return doc
}

// Link is a <link> element advertised in a page head.
type Link struct {
	Rel   string
	Type  string
	Href  string
	Title string
}

// RSSLink advertises an RSS feed.
func RSSLink(href, title string) Link {
	return Link{Rel: "alternate", Type: "application/rss+xml", Href: href, Title: title}
}

// AtomLink advertises an Atom feed.
func AtomLink(href, title string) Link {
	return Link{Rel: "alternate", Type: "application/atom+xml", Href: href, Title: title}
}

// Page renders an HTML document whose head contains links.
func Page(title string, links ...Link) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	for _, l := range links {
		b.WriteString("<link")
		if l.Rel != "" {
			fmt.Fprintf(&b, " rel=%q", l.Rel)
		}
		if l.Type != "" {
			fmt.Fprintf(&b, " type=%q", l.Type)
		}
		if l.Href != "" {
			fmt.Fprintf(&b, " href=%q", html.EscapeString(l.Href))
		}
		if l.Title != "" {
			fmt.Fprintf(&b, " title=%q", html.EscapeString(l.Title))
		}
		b.WriteString(">\n")
	}
	b.WriteString("</head><body><p>content</p></body></html>\n")
	return b.String()
}

// Site is an httptest server with per-path hit counting.
type Site struct {
	*httptest.Server
	router chi.Router
	mu     sync.Mutex
	hits   map[string]int
}

// NewSite starts a Site that is closed when the test ends.
func NewSite(t testing.TB) *Site {
	t.Helper()
	s := &Site{router: chi.NewRouter(), hits: map[string]int{}}
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.mu.Lock()
			s.hits[r.URL.Path]++
			s.mu.Unlock()
			next.ServeHTTP(w, r)
		})
	})
	s.Server = httptest.NewServer(s.router)
	t.Cleanup(s.Close)
	return s
}

// Serve registers a fixed response for path.
func (s *Site) Serve(path, contentType, body string) {
	s.ServeStatus(path, contentType, body, http.StatusOK)
}

// ServeStatus registers a fixed response with an explicit status code.
func (s *Site) ServeStatus(path, contentType, body string, status int) {
	s.router.Get(path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

// Handle registers a custom handler for path.
func (s *Site) Handle(path string, h http.HandlerFunc) {
	s.router.Get(path, h)
}

// Hits reports how many requests reached path.
func (s *Site) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// URLFor returns the absolute URL of path on this site.
func (s *Site) URLFor(path string) string {
	return s.URL + path
}
