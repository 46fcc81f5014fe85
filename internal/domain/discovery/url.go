package discovery

import (
	"errors"
	"net/url"
	"strings"
)

var (
	errNotAbsolute = errors.New("url is not absolute")
	errMissingHost = errors.New("url has no host")
)

// Resolve joins href against basePageURL using RFC 3986 reference resolution.
func Resolve(basePageURL, href string) (string, error) {
	base, err := url.Parse(strings.TrimSpace(basePageURL))
	if err != nil {
		return "", &InvalidBaseURLError{URL: basePageURL, Err: err}
	}
	if !base.IsAbs() {
		return "", &InvalidBaseURLError{URL: basePageURL, Err: errNotAbsolute}
	}
	if base.Host == "" {
		return "", &InvalidBaseURLError{URL: basePageURL, Err: errMissingHost}
	}

	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", &InvalidHrefError{Base: basePageURL, Href: href, Err: err}
	}
	resolved := base.ResolveReference(ref)
	if !resolved.IsAbs() {
		return "", &InvalidHrefError{Base: basePageURL, Href: href, Err: errNotAbsolute}
	}
	if isHierarchical(resolved.Scheme) && resolved.Host == "" {
		return "", &InvalidHrefError{Base: basePageURL, Href: href, Err: errMissingHost}
	}
	canonicalize(resolved)
	return resolved.String(), nil
}

// CanonicalURL returns raw with its host lowercased and a default port removed,
// or raw unchanged when it does not parse as an absolute URL.
func CanonicalURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || !u.IsAbs() {
		return raw
	}
	canonicalize(u)
	return u.String()
}

var defaultPorts = map[string]string{"http": "80", "https": "443"}

func canonicalize(u *url.URL) {
	if u.Host == "" {
		return
	}
	host, port := strings.ToLower(u.Hostname()), u.Port()
	if port == defaultPorts[u.Scheme] {
		port = ""
	}
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if port != "" {
		host += ":" + port
	}
	u.Host = host
	if isHierarchical(u.Scheme) && u.Path == "" && u.Opaque == "" {
		u.Path = "/"
	}
}

// HostTitle derives a display title from the host of pageURL.
func HostTitle(pageURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(pageURL))
	if err != nil {
		return UnknownHostTitle
	}
	if host := parsed.Hostname(); host != "" {
		return host
	}
	return UnknownHostTitle
}

func isHierarchical(scheme string) bool {
	switch scheme {
	case "http", "https":
		return true
	default:
		return false
	}
}
