package feed

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/tesso57/rssminer/internal/application/usecase"
	"github.com/tesso57/rssminer/internal/domain/discovery"
	"golang.org/x/sync/singleflight"
)

// CachedValidator remembers verdicts per URL so that a feed advertised by many
// pages is fetched once per run.
type CachedValidator struct {
	next   usecase.FeedValidator
	cache  *cache.Cache
	flight singleflight.Group
}

// NewCachedValidator wraps next. Verdicts expire after ttl.
func NewCachedValidator(next usecase.FeedValidator, ttl time.Duration) *CachedValidator {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &CachedValidator{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}
}

// Validate returns the cached verdict for feedURL, validating it on a miss.
// Concurrent misses for the same URL share one underlying validation.
func (c *CachedValidator) Validate(ctx context.Context, feedURL string) discovery.Verdict {
	if v, ok := c.cache.Get(feedURL); ok {
		return v.(discovery.Verdict)
	}
	v, _, _ := c.flight.Do(feedURL, func() (any, error) {
		verdict := c.next.Validate(ctx, feedURL)
		c.cache.SetDefault(feedURL, verdict)
		return verdict, nil
	})
	return v.(discovery.Verdict)
}

// Len reports how many verdicts are cached.
func (c *CachedValidator) Len() int {
	return c.cache.ItemCount()
}
