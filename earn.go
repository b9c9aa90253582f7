package cryptotracker

// CoinEarn accumulates staking interest bookkeeping for one coin: the
// total quantity ever earned via interest kinds, the conversion rate at
// evaluation time, and the amortizations drawn by sells that exceeded
// the open buy lots.
//
// The bucket is shared between the earn accountant (which fills
// TotalEarned and the rate) and the gain/loss engine (which draws from
// it), single writer at a time within one pass. Rebuilt every pass.
//
// Invariant: CurrentQuantity never goes negative; the engine surfaces an
// InconsistencyError instead of overdrawing.
type CoinEarn struct {
	Coin        CoinInfo
	TotalEarned Quantity
	Rate        Money // current price per unit at evaluation time
	Amortized   []Amortization
}

// TotalCurrentValue values everything ever earned at the current rate.
func (e *CoinEarn) TotalCurrentValue() Money { return e.Rate.Mul(e.TotalEarned) }

// CurrentQuantity is the earned quantity not yet consumed by sells.
func (e *CoinEarn) CurrentQuantity() Quantity {
	current := e.TotalEarned
	for _, a := range e.Amortized {
		current = current.Sub(a.Quantity)
	}
	return current
}

// CurrentValue values the remaining earned quantity at the current rate.
func (e *CoinEarn) CurrentValue() Money { return e.Rate.Mul(e.CurrentQuantity()) }

// RealizedGains is the fiat value received for sold earned quantity.
// Earned quantity has no cost basis, so the whole sale value is gain.
func (e *CoinEarn) RealizedGains() Money {
	var total Money
	for _, a := range e.Amortized {
		total = total.Add(a.Value)
	}
	return total
}

// amortize draws quantity from the bucket, recording the fiat value
// received at sell time.
func (e *CoinEarn) amortize(quantity Quantity, value Money) {
	e.Amortized = append(e.Amortized, Amortization{Quantity: quantity, Value: value})
}
