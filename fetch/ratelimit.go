package fetch

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/llmstxt"
	"golang.org/x/time/rate"
)

var _ llmstxt.DomainLimiter = (*HostLimiter)(nil)

// HostLimiter spaces remote fetches per hostname with token buckets. Hosts
// are matched case-insensitively and never share a bucket.
type HostLimiter struct {
	limit   rate.Limit
	burst   int
	buckets sync.Map // hostname -> *rate.Limiter
}

// NewHostLimiter allows rps requests per second to each host, with up to
// burst requests admitted back to back. A non-positive rps disables limiting.
func NewHostLimiter(rps float64, burst int) *HostLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &HostLimiter{limit: limit, burst: max(burst, 1)}
}

// Wait blocks until host may be fetched or ctx ends.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	if l.limit == rate.Inf {
		return ctx.Err()
	}
	key := strings.ToLower(host)
	bucket, ok := l.buckets.Load(key)
	if !ok {
		bucket, _ = l.buckets.LoadOrStore(key, rate.NewLimiter(l.limit, l.burst))
	}
	return bucket.(*rate.Limiter).Wait(ctx)
}
