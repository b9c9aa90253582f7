package ratecache

import (
	"context"
	"errors"
	"testing"
	"time"

	cryptotracker "github.com/XMabbX/CryptoTracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheMemoizes(t *testing.T) {
	calls := 0
	upstream := cryptotracker.RateFunc(func(_ context.Context, from, to string, _ time.Time) (cryptotracker.Money, error) {
		calls++
		return cryptotracker.M(42.5, to), nil
	})

	c, err := Open(":memory:", upstream)
	require.NoError(t, err)
	defer c.Close()

	at := time.Date(2021, 5, 4, 10, 30, 0, 123456000, time.UTC)
	first, err := c.ConversionRate(context.Background(), "BTC", "EUR", at)
	require.NoError(t, err)
	second, err := c.ConversionRate(context.Background(), "BTC", "EUR", at)
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "second query should come from the cache")
	assert.True(t, first.Equal(second), "%s != %s", first, second)
	assert.True(t, first.Equal(cryptotracker.M(42.5, "EUR")))
}

func TestCacheKeysByTime(t *testing.T) {
	calls := 0
	upstream := cryptotracker.RateFunc(func(_ context.Context, _, to string, _ time.Time) (cryptotracker.Money, error) {
		calls++
		return cryptotracker.M(calls, to), nil
	})

	c, err := Open(":memory:", upstream)
	require.NoError(t, err)
	defer c.Close()

	at := time.Date(2021, 5, 4, 10, 30, 0, 0, time.UTC)
	_, err = c.ConversionRate(context.Background(), "BTC", "EUR", at)
	require.NoError(t, err)
	_, err = c.ConversionRate(context.Background(), "BTC", "EUR", at.Add(time.Minute))
	require.NoError(t, err)

	assert.Equal(t, 2, calls, "different times are different cache keys")
}

func TestCacheDoesNotStoreFailures(t *testing.T) {
	calls := 0
	upstream := cryptotracker.RateFunc(func(_ context.Context, _, _ string, _ time.Time) (cryptotracker.Money, error) {
		calls++
		return cryptotracker.Money{}, cryptotracker.ErrNoMarketData
	})

	c, err := Open(":memory:", upstream)
	require.NoError(t, err)
	defer c.Close()

	at := time.Now()
	_, err = c.ConversionRate(context.Background(), "BTC", "EUR", at)
	assert.True(t, errors.Is(err, cryptotracker.ErrNoMarketData))
	_, err = c.ConversionRate(context.Background(), "BTC", "EUR", at)
	assert.True(t, errors.Is(err, cryptotracker.ErrNoMarketData))

	assert.Equal(t, 2, calls, "failed lookups must reach the upstream again")
}
