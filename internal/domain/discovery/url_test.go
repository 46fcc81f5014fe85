package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		base string
		href string
		want string
	}{
		{name: "path absolute", base: "https://example.com", href: "/feed.xml", want: "https://example.com/feed.xml"},
		{name: "absolute href passes through", base: "https://example.com", href: "https://feed.example.com/rss", want: "https://feed.example.com/rss"},
		{name: "path relative", base: "https://example.com/blog/post.html", href: "feed.xml", want: "https://example.com/blog/feed.xml"},
		{name: "parent relative", base: "https://example.com/blog/2024/post", href: "../atom.xml", want: "https://example.com/blog/atom.xml"},
		{name: "protocol relative", base: "https://example.com/", href: "//cdn.example.com/rss", want: "https://cdn.example.com/rss"},
		{name: "query only", base: "https://example.com/index.php", href: "?feed=rss2", want: "https://example.com/index.php?feed=rss2"},
		{name: "whitespace trimmed", base: "https://example.com", href: "  /rss \n", want: "https://example.com/rss"},
		{name: "host lowercased", base: "https://Example.com/", href: "feed", want: "https://example.com/feed"},
		{name: "default https port dropped", base: "HTTPS://EXAMPLE.COM:443/", href: "/feed", want: "https://example.com/feed"},
		{name: "default http port dropped", base: "http://example.com:80", href: "/feed", want: "http://example.com/feed"},
		{name: "other port kept", base: "http://example.com:8080", href: "/feed", want: "http://example.com:8080/feed"},
		{name: "https port on http kept", base: "http://example.com:443", href: "/feed", want: "http://example.com:443/feed"},
		{name: "ipv6 host", base: "http://[::1]:80/", href: "/feed", want: "http://[::1]/feed"},
		{name: "empty path becomes root", base: "https://example.com/blog", href: "https://Feeds.example.com", want: "https://feeds.example.com/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.base, tt.href)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveInvalidBase(t *testing.T) {
	for _, base := range []string{"not-a-url", "", "/relative/path", "https://exa mple.com/%zz"} {
		_, err := Resolve(base, "/feed")
		require.Error(t, err, "base %q", base)
		assert.True(t, IsInvalidBaseURL(err), "base %q: got %v", base, err)
	}
}

func TestResolveInvalidHref(t *testing.T) {
	_, err := Resolve("https://example.com", "http://[::1")
	require.Error(t, err)
	assert.True(t, IsInvalidHref(err))
	assert.False(t, IsInvalidBaseURL(err))

	_, err = Resolve("https://example.com", "https:///nohost")
	require.Error(t, err)
	assert.True(t, IsInvalidHref(err))
}

func TestResolveSpellingsOfOneFeedAgree(t *testing.T) {
	var got []string
	for _, base := range []string{"https://example.com", "HTTPS://EXAMPLE.COM:443", "https://Example.com"} {
		resolved, err := Resolve(base, "/feed")
		require.NoError(t, err)
		got = append(got, resolved)
	}
	assert.Equal(t, []string{"https://example.com/feed", "https://example.com/feed", "https://example.com/feed"}, got)
}

func TestCanonicalURL(t *testing.T) {
	assert.Equal(t, "https://example.com/feed", CanonicalURL("https://EXAMPLE.com:443/feed"))
	assert.Equal(t, "https://example.com/Feed?Q=1", CanonicalURL("https://example.com/Feed?Q=1"))
	assert.Equal(t, "not a url", CanonicalURL("not a url"))
}

func TestHostTitle(t *testing.T) {
	assert.Equal(t, "example.com", HostTitle("https://example.com/path"))
	assert.Equal(t, "example.com", HostTitle("https://example.com:8443/path"))
	assert.Equal(t, "Unknown", HostTitle("not-a-url"))
	assert.Equal(t, "Unknown", HostTitle("%zz"))
}
