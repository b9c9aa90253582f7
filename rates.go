package cryptotracker

import (
	"context"
	"time"
)

// RateProvider answers "what was 1 unit of asset `from` worth in asset
// `to` at time `at`". Implementations may block on network I/O on every
// call; the engine treats them as slow and fallible and propagates
// their errors as fatal for the coin pass in progress.
//
// A provider returns ErrNoMarketData (possibly wrapped) when it has no
// route for the pair at that time.
type RateProvider interface {
	ConversionRate(ctx context.Context, from, to string, at time.Time) (Money, error)
}

// RateFunc adapts a function to the RateProvider interface.
type RateFunc func(ctx context.Context, from, to string, at time.Time) (Money, error)

func (f RateFunc) ConversionRate(ctx context.Context, from, to string, at time.Time) (Money, error) {
	return f(ctx, from, to, at)
}
