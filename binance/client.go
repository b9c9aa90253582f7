package binance

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	cryptotracker "github.com/XMabbX/CryptoTracker"
	"github.com/PaesslerAG/jsonpath"
)

// DefaultBaseURL is the public Binance REST endpoint. No API key is
// needed for exchange info and klines.
const DefaultBaseURL = "https://api.binance.com"

// Client answers conversion rate queries from Binance market data. It
// resolves a (from, to) pair against the exchange's symbol table: a
// direct symbol gives the rate as-is, a reversed symbol gives the
// inverse. Pairs with no symbol in either direction have no route.
//
// Responses go through a disk cache keyed by day, so repeated passes
// over the same ledger within a day hit the network once per query.
type Client struct {
	baseURL string
	http    *http.Client

	pairs map[string]pair // symbol -> assets, loaded lazily
}

type pair struct {
	Base  string
	Quote string
}

// NewClient creates a client against the public API.
func NewClient() *Client {
	return &Client{baseURL: DefaultBaseURL, http: daily()}
}

// NewClientURL creates a client against a specific endpoint, without
// the disk cache. Used against test servers.
func NewClientURL(baseURL string) *Client {
	return &Client{baseURL: baseURL, http: http.DefaultClient}
}

// loadPairs fetches the exchange symbol table once.
func (c *Client) loadPairs() error {
	if c.pairs != nil {
		return nil
	}
	var info struct {
		Symbols []struct {
			Symbol     string `json:"symbol"`
			BaseAsset  string `json:"baseAsset"`
			QuoteAsset string `json:"quoteAsset"`
		} `json:"symbols"`
	}
	if err := jwget(c.http, c.baseURL+"/api/v3/exchangeInfo", &info); err != nil {
		return fmt.Errorf("could not load exchange info: %w", err)
	}
	c.pairs = make(map[string]pair, len(info.Symbols))
	for _, s := range info.Symbols {
		c.pairs[s.Symbol] = pair{Base: s.BaseAsset, Quote: s.QuoteAsset}
	}
	return nil
}

// ConversionRate implements cryptotracker.RateProvider. The rate is
// the close of the 1 minute candle covering the queried time.
func (c *Client) ConversionRate(ctx context.Context, from, to string, at time.Time) (cryptotracker.Money, error) {
	if from == to {
		return cryptotracker.M(1, to), nil
	}
	if err := c.loadPairs(); err != nil {
		return cryptotracker.Money{}, err
	}

	if p, ok := c.pairs[from+to]; ok && p.Base == from {
		rate, err := c.candleClose(ctx, from+to, at)
		if err != nil {
			return cryptotracker.Money{}, err
		}
		return cryptotracker.M(1, to).Mul(rate), nil
	}
	if p, ok := c.pairs[to+from]; ok && p.Base == to {
		rate, err := c.candleClose(ctx, to+from, at)
		if err != nil {
			return cryptotracker.Money{}, err
		}
		return cryptotracker.M(1, to).Div(rate), nil
	}
	return cryptotracker.Money{}, fmt.Errorf("no symbol for %s/%s: %w", from, to, cryptotracker.ErrNoMarketData)
}

// candleClose returns the close price of the 1m candle at the given
// time. Binance answers klines as arrays of arrays with the close at
// index 4, as a string; it is parsed as an exact decimal, never a
// binary float.
func (c *Client) candleClose(ctx context.Context, symbol string, at time.Time) (cryptotracker.Quantity, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", "1m")
	q.Set("startTime", strconv.FormatInt(at.Truncate(time.Minute).UnixMilli(), 10))
	q.Set("limit", "1")
	addr := c.baseURL + "/api/v3/klines?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return cryptotracker.Quantity{}, err
	}
	var jobj any
	if err := jdo(c.http, req, &jobj); err != nil {
		return cryptotracker.Quantity{}, fmt.Errorf("could not fetch %s klines: %w", symbol, err)
	}

	path := "$[0][4]"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return cryptotracker.Quantity{}, fmt.Errorf("no candle for %s at %s: %w", symbol, at, cryptotracker.ErrNoMarketData)
	}
	// jsonpath is never clear about whether it returns a list of one
	// answer or a single answer, keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	s, ok := jval.(string)
	if !ok {
		return cryptotracker.Quantity{}, fmt.Errorf("bad candle close for %s: %v", symbol, jval)
	}
	val, err := cryptotracker.ParseQuantity(s)
	if err != nil {
		return cryptotracker.Quantity{}, fmt.Errorf("bad candle close for %s: %w", symbol, err)
	}
	return val, nil
}
