package cryptotracker

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"
)

// Stage identifies one step of the per-coin analytics pipeline. Stages
// can be toggled individually for partial runs in tests; production
// runs them all, in declaration order, because later stages depend on
// earlier ones (gains need the current price and the earn bucket).
type Stage uint

const (
	StagePrice Stage = 1 << iota
	StageSpot
	StageEarnQuantity
	StageFees
	StageEarnings
	StageGains
)

// AllStages runs the full pipeline.
const AllStages = StagePrice | StageSpot | StageEarnQuantity | StageFees | StageEarnings | StageGains

// fiatEquivalents have no meaningful cost basis against the reporting
// currency and are skipped by ProcessAll.
var fiatEquivalents = map[string]struct{}{
	"EUR":  {},
	"USD":  {},
	"BUSD": {},
	"USDT": {},
	"USDC": {},
	"DAI":  {},
}

// Pipeline runs the analytics stages per coin and keeps the frozen
// snapshots. A pass is synchronous and atomic for its coin: on failure
// the previous snapshot stays valid and nothing partial is exposed.
type Pipeline struct {
	ledger   *Ledger
	rates    RateProvider
	currency string // reporting currency

	// Stages selects the stages to run. Default AllStages.
	Stages Stage

	// Now is the clock stamping snapshots and current-price queries.
	// Default time.Now; fix it to make repeated passes bit-identical,
	// snapshot timestamp included.
	Now func() time.Time

	mu     sync.Mutex
	frozen map[string]*CoinData
}

// NewPipeline creates a pipeline deriving analytics from the ledger in
// the given reporting currency.
func NewPipeline(ledger *Ledger, rates RateProvider, currency string) *Pipeline {
	return &Pipeline{
		ledger:   ledger,
		rates:    rates,
		currency: currency,
		Stages:   AllStages,
		Now:      time.Now,
		frozen:   make(map[string]*CoinData),
	}
}

// Currency returns the reporting currency.
func (p *Pipeline) Currency() string { return p.currency }

// Process runs the pipeline for one coin and freezes the result. The
// pass either completes, replacing the coin's snapshot, or fails
// leaving the previous snapshot untouched.
func (p *Pipeline) Process(ctx context.Context, tick string) (*CoinData, error) {
	coin := p.ledger.snapshotCoin(tick)
	if coin == nil {
		return nil, fmt.Errorf("coin %s is not in the ledger", tick)
	}

	at := p.Now()
	a := newCoinAnalytics(coin)

	if p.Stages&StagePrice != 0 {
		price, err := p.rates.ConversionRate(ctx, tick, p.currency, at)
		if err != nil {
			return nil, fmt.Errorf("coin %s: no current price: %w", tick, err)
		}
		a.price = price
	}
	if p.Stages&StageSpot != 0 {
		for _, tx := range coin.Transactions {
			a.spotQuantity = a.spotQuantity.Add(tx.Quantity)
		}
	}
	if p.Stages&StageEarnQuantity != 0 {
		var sum Quantity
		for _, tx := range coin.Transactions {
			if tx.Kind.EarnAffecting() {
				sum = sum.Add(tx.Quantity)
			}
		}
		a.earnQuantity = sum.Neg()
	}
	if p.Stages&StageFees != 0 {
		for _, tx := range a.Kind(Fee) {
			costPerUnit, err := p.rates.ConversionRate(ctx, tick, p.currency, tx.UTCTime)
			if err != nil {
				return nil, fmt.Errorf("coin %s: no rate for fee %v: %w", tick, tx, err)
			}
			a.fees.Records = append(a.fees.Records, newFeeRecord(tx, costPerUnit))
		}
	}
	if p.Stages&StageEarnings != 0 {
		// Must run before gains: the matcher draws from this bucket.
		for kind := Deposit; kind <= LiquidSwapRedemption; kind++ {
			if !kind.Interest() {
				continue
			}
			for _, tx := range a.Kind(kind) {
				a.earn.TotalEarned = a.earn.TotalEarned.Add(tx.Quantity)
			}
		}
		a.earn.Rate = a.price
	}
	if p.Stages&StageGains != 0 {
		lots, err := matchTrades(ctx, a.trades, p.rates, p.currency, a.earn)
		if err != nil {
			return nil, err
		}
		a.lots = lots
	}

	data := a.freeze(at)
	p.mu.Lock()
	p.frozen[tick] = data
	p.mu.Unlock()
	return data.full(), nil
}

// ProcessAll runs the pipeline over every held coin, skipping the
// reporting currency and fiat-equivalent assets. Coins are processed
// independently: one coin's failure does not affect the others, and
// all failures are reported joined.
func (p *Pipeline) ProcessAll(ctx context.Context) error {
	var errs error
	for _, tick := range p.ledger.Ticks() {
		if p.skip(tick) {
			continue
		}
		if _, err := p.Process(ctx, tick); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

func (p *Pipeline) skip(tick string) bool {
	if tick == p.currency {
		return true
	}
	_, ok := fiatEquivalents[tick]
	return ok
}

// CoinData returns the coin's last frozen snapshot, or false if no pass
// has succeeded yet. With full, the per-lot and earn amortization audit
// trail is included; otherwise a cheap summary is returned. The result
// never aliases pipeline state.
func (p *Pipeline) CoinData(tick string, full bool) (*CoinData, bool) {
	p.mu.Lock()
	data, ok := p.frozen[tick]
	p.mu.Unlock()
	if !ok {
		return nil, false
	}
	if full {
		return data.full(), true
	}
	return data.summary(), true
}

// Frozen returns the summary snapshots of all coins with a successful
// pass, in sorted tick order.
func (p *Pipeline) Frozen() []*CoinData {
	p.mu.Lock()
	defer p.mu.Unlock()
	ticks := make([]string, 0, len(p.frozen))
	for tick := range p.frozen {
		ticks = append(ticks, tick)
	}
	slices.Sort(ticks)
	all := make([]*CoinData, 0, len(ticks))
	for _, tick := range ticks {
		all = append(all, p.frozen[tick].summary())
	}
	return all
}
