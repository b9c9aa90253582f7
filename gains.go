package cryptotracker

import (
	"context"
	"fmt"
)

// matchTrades is the FIFO lot matcher. It walks the chronologically
// sorted BUY/SELL stream of one coin, opens a lot per buy at the
// buy-time conversion rate, and consumes lots oldest-first on each
// sell, valuing every consumed slice at the sell-time rate. When all
// lots are exhausted the residual is drawn from the earn bucket, whose
// quantity has no cost basis. A residual the bucket cannot cover means
// the ledger is inconsistent and aborts the pass.
//
// The earn bucket must already carry the pass's TotalEarned; the
// matcher is its single writer while running.
func matchTrades(ctx context.Context, trades []*Transaction, rates RateProvider, currency string, earn *CoinEarn) ([]*BuyLot, error) {
	var lots []*BuyLot
	for _, tx := range trades {
		switch tx.Kind {
		case Buy:
			costPerUnit, err := rates.ConversionRate(ctx, tx.Coin.Tick, currency, tx.UTCTime)
			if err != nil {
				return nil, fmt.Errorf("coin %s: no rate for buy %v: %w", tx.Coin.Tick, tx, err)
			}
			lots = append(lots, newBuyLot(tx, costPerUnit))

		case Sell:
			sellPrice, err := rates.ConversionRate(ctx, tx.Coin.Tick, currency, tx.UTCTime)
			if err != nil {
				return nil, fmt.Errorf("coin %s: no rate for sell %v: %w", tx.Coin.Tick, tx, err)
			}
			if err := consume(tx, sellPrice, lots, earn); err != nil {
				return nil, err
			}
		}
	}
	return lots, nil
}

// consume matches one sell against the open lots in FIFO order, then
// against the earn bucket.
func consume(sell *Transaction, sellPrice Money, lots []*BuyLot, earn *CoinEarn) error {
	remaining := sell.Quantity.Abs()
	for _, lot := range lots {
		if !remaining.IsPositive() {
			return nil
		}
		spot := lot.SpotQuantity()
		if !spot.IsPositive() {
			continue
		}
		consumed := remaining.Min(spot)
		lot.amortize(consumed, sellPrice.Mul(consumed))
		remaining = remaining.Sub(consumed)
	}
	if !remaining.IsPositive() {
		return nil
	}

	// No buy lot left: the residual was acquired through staking
	// interest, sold with a zero cost basis.
	available := earn.CurrentQuantity()
	if available.LessThan(remaining) {
		return &InconsistencyError{
			Tick:      sell.Coin.Tick,
			Tx:        sell,
			Shortfall: remaining.Sub(available),
		}
	}
	earn.amortize(remaining, sellPrice.Mul(remaining))
	return nil
}
