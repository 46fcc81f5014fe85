// Package page extracts feed links advertised in HTML markup.
package page

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tesso57/rssminer/internal/domain/discovery"
	"github.com/tesso57/rssminer/internal/infrastructure/httpclient"
	"golang.org/x/net/html/charset"
)

const pageAcceptHeader = "text/html, application/xhtml+xml;q=0.9, */*;q=0.8"

var feedMediaTypes = map[string]discovery.Format{
	"application/rss+xml":  discovery.FormatRSS,
	"application/atom+xml": discovery.FormatAtom,
}

// Scanner fetches pages and returns the feed candidates they advertise.
type Scanner struct {
	client  *http.Client
	maxBody int64
}

// NewScanner returns a Scanner issuing requests on client.
func NewScanner(client *http.Client, maxBody int64) *Scanner {
	if client == nil {
		client = httpclient.New(httpclient.Options{})
	}
	return new(Scanner{client: client, maxBody: maxBody})
}

// Scan fetches pageURL and extracts its feed candidates in document order.
// The status code is not checked: error pages are scanned like any other.
func (s *Scanner) Scan(ctx context.Context, pageURL string) ([]discovery.Candidate, error) {
	resp, err := httpclient.Get(ctx, s.client, pageURL, pageAcceptHeader, s.maxBody)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	body, err := charset.NewReader(bytes.NewReader(resp.Body), resp.ContentType)
	if err != nil {
		return nil, fmt.Errorf("decode page %s: %w", pageURL, err)
	}
	candidates, err := ExtractCandidates(body)
	if err != nil {
		return nil, fmt.Errorf("parse page %s: %w", pageURL, err)
	}
	return candidates, nil
}

// ExtractCandidates parses HTML and returns every <link> whose type
// advertises an RSS or Atom document.
func ExtractCandidates(r io.Reader) ([]discovery.Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var candidates []discovery.Candidate
	doc.Find("link[type]").Each(func(_ int, sel *goquery.Selection) {
		linkType, _ := sel.Attr("type")
		format, ok := feedFormat(linkType)
		if !ok {
			return
		}
		href, _ := sel.Attr("href")
		title, _ := sel.Attr("title")
		candidates = append(candidates, discovery.Candidate{
			Href:  strings.TrimSpace(href),
			Title: strings.TrimSpace(title),
			Hint:  format,
		})
	})
	return candidates, nil
}

func feedFormat(linkType string) (discovery.Format, bool) {
	mediaType, _, err := mime.ParseMediaType(linkType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(linkType))
	}
	format, ok := feedMediaTypes[mediaType]
	return format, ok
}
