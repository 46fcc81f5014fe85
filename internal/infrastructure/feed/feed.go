// Package feed validates candidate URLs by parsing them as RSS or Atom.
package feed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/mmcdole/gofeed/atom"
	"github.com/mmcdole/gofeed/rss"
	"github.com/tesso57/rssminer/internal/domain/discovery"
	"github.com/tesso57/rssminer/internal/infrastructure/httpclient"
)

const feedAcceptHeader = "application/rss+xml, application/atom+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5"

type parseAttempt struct {
	format discovery.Format
	parse  func(io.Reader) error
}

// parseAttempts is evaluated in order; the first parser to accept the body wins.
var parseAttempts = []parseAttempt{
	{
		format: discovery.FormatRSS,
		parse: func(r io.Reader) error {
			_, err := new(rss.Parser).Parse(r)
			return err
		},
	},
	{
		format: discovery.FormatAtom,
		parse: func(r io.Reader) error {
			_, err := new(atom.Parser).Parse(r)
			return err
		},
	},
}

// Classify determines the feed format of body by trying each parser in turn.
func Classify(body []byte) discovery.Verdict {
	if len(bytes.TrimSpace(body)) == 0 {
		return discovery.Reject(discovery.ReasonUnparsable, "empty body")
	}
	var lastErr error
	for _, attempt := range parseAttempts {
		err := attempt.parse(bytes.NewReader(body))
		if err == nil {
			return discovery.Accept(attempt.format)
		}
		lastErr = err
	}
	return discovery.Reject(discovery.ReasonUnparsable, lastErr.Error())
}

// Validator fetches candidate URLs and classifies their content.
type Validator struct {
	client  *http.Client
	maxBody int64
}

// NewValidator returns a Validator issuing requests on client.
func NewValidator(client *http.Client, maxBody int64) *Validator {
	if client == nil {
		client = httpclient.New(httpclient.Options{})
	}
	return new(Validator{client: client, maxBody: maxBody})
}

// Validate performs a single GET and reports whether the body is a feed.
// It never fails: network errors and timeouts are "not a feed".
func (v *Validator) Validate(ctx context.Context, feedURL string) discovery.Verdict {
	resp, err := httpclient.Get(ctx, v.client, feedURL, feedAcceptHeader, v.maxBody)
	if err != nil {
		var readErr *httpclient.ReadError
		if errors.As(err, &readErr) {
			return discovery.Reject(discovery.ReasonRead, err.Error())
		}
		return discovery.Reject(discovery.ReasonFetch, err.Error())
	}
	if !resp.OK() {
		return discovery.Reject(discovery.ReasonStatus, resp.Status)
	}
	if resp.Truncated {
		return discovery.Reject(discovery.ReasonRead, fmt.Sprintf("body too large: more than %d bytes", len(resp.Body)))
	}
	return Classify(resp.Body)
}
