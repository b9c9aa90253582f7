package cryptotracker

// FeeRecord prices one FEE transaction at its own time. Immutable once
// created. Fee quantities are negative, so the cost is a negative fiat
// amount ("spend") by convention.
type FeeRecord struct {
	Tx          *Transaction
	CostPerUnit Money
	Cost        Money
}

func newFeeRecord(tx *Transaction, costPerUnit Money) FeeRecord {
	return FeeRecord{Tx: tx, CostPerUnit: costPerUnit, Cost: costPerUnit.Mul(tx.Quantity)}
}

// FeeBook aggregates a coin's fee records. Fees are not resold, so no
// lot matching is involved: totals are plain sums.
type FeeBook struct {
	Records []FeeRecord
}

// TotalQuantity is the summed (negative) fee quantity.
func (b *FeeBook) TotalQuantity() Quantity {
	var total Quantity
	for _, r := range b.Records {
		total = total.Add(r.Tx.Quantity)
	}
	return total
}

// TotalCost is the summed (negative) fiat fee cost.
func (b *FeeBook) TotalCost() Money {
	var total Money
	for _, r := range b.Records {
		total = total.Add(r.Cost)
	}
	return total
}
