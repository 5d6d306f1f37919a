package epistat

import (
	"context"
	"fmt"

	"github.com/couchcryptid/belcovid/internal/domain"
	"golang.org/x/time/rate"
)

// feedFetcher is the download step RateLimitedFetcher throttles, usually a
// *Client.
type feedFetcher interface {
	Fetch(ctx context.Context, feed domain.Feed) ([]domain.Record, error)
}

// RateLimitedFetcher spaces out downloads so that entry points fetching the
// same feeds one after another do not hammer the public endpoint.
type RateLimitedFetcher struct {
	fetcher feedFetcher
	limiter *rate.Limiter
}

// NewRateLimitedFetcher wraps fetcher with a limiter allowing rps requests
// per second (fractional for less than one) and the given burst.
func NewRateLimitedFetcher(fetcher feedFetcher, rps float64, burst int) *RateLimitedFetcher {
	return &RateLimitedFetcher{
		fetcher: fetcher,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Fetch waits for the limiter, then forwards to the wrapped fetcher.
func (r *RateLimitedFetcher) Fetch(ctx context.Context, feed domain.Feed) ([]domain.Record, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.fetcher.Fetch(ctx, feed)
}
