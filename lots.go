package cryptotracker

// Amortization records one partial or total consumption of acquired
// quantity: how much was consumed and the fiat value received at
// consumption time. Append-only once created.
type Amortization struct {
	Quantity Quantity `json:"quantity"`
	Value    Money    `json:"value"`
}

// BuyLot is a mutable accumulator over one BUY transaction: the cost per
// unit at acquisition time and the audit trail of sells matched against
// it. Rebuilt from scratch on every analytics pass.
//
// Invariant: the amortized quantities never sum to more than the
// original transaction quantity.
type BuyLot struct {
	Tx          *Transaction
	CostPerUnit Money
	Amortized   []Amortization
}

func newBuyLot(tx *Transaction, costPerUnit Money) *BuyLot {
	return &BuyLot{Tx: tx, CostPerUnit: costPerUnit}
}

// Cost is the full acquisition cost of the lot.
func (l *BuyLot) Cost() Money { return l.CostPerUnit.Mul(l.Tx.Quantity) }

// TotalAmortized is the quantity already consumed from this lot.
func (l *BuyLot) TotalAmortized() Quantity {
	var total Quantity
	for _, a := range l.Amortized {
		total = total.Add(a.Quantity)
	}
	return total
}

// TotalAmortizedValue is the fiat value received for the consumed
// quantity, valued at the respective sell times.
func (l *BuyLot) TotalAmortizedValue() Money {
	var total Money
	for _, a := range l.Amortized {
		total = total.Add(a.Value)
	}
	return total
}

// SpotQuantity is the unconsumed remainder of the lot.
func (l *BuyLot) SpotQuantity() Quantity {
	return l.Tx.Quantity.Sub(l.TotalAmortized())
}

// CurrentCost is the cost basis of the unconsumed remainder.
func (l *BuyLot) CurrentCost() Money {
	return l.CostPerUnit.Mul(l.SpotQuantity())
}

// UnrealizedGain values the unconsumed remainder against the current
// price. Zero when the lot is exhausted.
func (l *BuyLot) UnrealizedGain(currentPrice Money) Money {
	spot := l.SpotQuantity()
	if !spot.IsPositive() {
		return Money{}
	}
	return currentPrice.Mul(spot).Sub(l.CostPerUnit.Mul(spot))
}

// RealizedGain is the value received from sells against this lot minus
// the cost basis of the consumed quantity.
func (l *BuyLot) RealizedGain() Money {
	if len(l.Amortized) == 0 {
		return Money{}
	}
	return l.TotalAmortizedValue().Sub(l.CostPerUnit.Mul(l.TotalAmortized()))
}

// amortize consumes quantity from the lot, recording the fiat value
// received at consumption time.
func (l *BuyLot) amortize(quantity Quantity, value Money) {
	l.Amortized = append(l.Amortized, Amortization{Quantity: quantity, Value: value})
}
