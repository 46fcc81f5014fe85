// Package httpclient builds the HTTP client shared by every discovery request.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultTimeout bounds a single request, including reading the body.
	DefaultTimeout = 10 * time.Second
	// DefaultUserAgent identifies rssminer to the sites it visits.
	DefaultUserAgent = "rssminer/1.0"
	// DefaultMaxBodyBytes caps how much of a response body is read.
	DefaultMaxBodyBytes int64 = 10 << 20
)

// Options configures the shared client.
type Options struct {
	Timeout      time.Duration
	UserAgent    string
	HostInterval time.Duration
}

type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	clone := req.Clone(req.Context())
	if clone.Header.Get("User-Agent") == "" && t.userAgent != "" {
		clone.Header.Set("User-Agent", t.userAgent)
	}
	return base.RoundTrip(clone)
}

type pacedTransport struct {
	base    http.RoundTripper
	limiter *HostRateLimiter
}

func (t pacedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.WaitForHost(req.Context(), req.URL.Host); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}

// New returns a client that is safe to share across goroutines.
func New(opt Options) *http.Client {
	timeout := opt.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	userAgent := opt.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	var transport http.RoundTripper = http.DefaultTransport.(*http.Transport).Clone()
	if opt.HostInterval > 0 {
		transport = pacedTransport{base: transport, limiter: NewHostRateLimiter(opt.HostInterval)}
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: userAgentTransport{base: transport, userAgent: userAgent},
	}
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode  int
	Status      string
	ContentType string
	Body        []byte
	// Truncated is set when the body was longer than the read limit.
	Truncated bool
}

// OK reports whether the status code is in the 2xx range.
func (r Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ReadError wraps a failure that happened after the response headers arrived.
type ReadError struct {
	URL string
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read body of %s: %v", e.URL, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Get performs one GET request and reads at most maxBody bytes of the body.
// Non-2xx responses are returned without error; callers decide what they mean.
func Get(ctx context.Context, client *http.Client, url, accept string, maxBody int64) (Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{}, err
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := client.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	out := Response{
		StatusCode:  resp.StatusCode,
		Status:      resp.Status,
		ContentType: resp.Header.Get("Content-Type"),
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		return out, &ReadError{URL: url, Err: err}
	}
	if int64(len(body)) > maxBody {
		body = body[:maxBody]
		out.Truncated = true
	}
	out.Body = body
	return out, nil
}
