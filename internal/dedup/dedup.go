// Package dedup tracks already-dispatched posting URLs so a posting is
// published at most once no matter how often polling rediscovers it.
package dedup

import (
	"context"
	"time"

	"github.com/sanlamamba/redbot/common/cache"
)

const keyPrefix = "sent:"

// Tracker is a cache-backed set of dispatched posting URLs.
type Tracker struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewTracker keeps URLs for ttl; zero means the cache default applies.
func NewTracker(c cache.Cache, ttl time.Duration) *Tracker {
	return &Tracker{cache: c, ttl: ttl}
}

// Seen reports whether url was already dispatched. Cache errors count as
// unseen so a flaky cache degrades to duplicate notifications, not lost
// postings.
func (t *Tracker) Seen(ctx context.Context, url string) bool {
	var marker string
	err := t.cache.Get(ctx, keyPrefix+url, &marker)
	return err == nil
}

// Mark records url as dispatched.
func (t *Tracker) Mark(ctx context.Context, url string) error {
	return t.cache.Set(ctx, keyPrefix+url, time.Now().UTC().Format(time.RFC3339), t.ttl)
}
