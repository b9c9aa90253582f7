package cryptotracker

import (
	"sort"
	"time"
)

// CoinAnalytics is the per-coin working set of one analytics pass. It
// groups the coin's transaction history by operation kind and carries
// mutable slots for every derived figure. All derived state is rebuilt
// from scratch on each pass, never patched, so two passes over the same
// ledger with the same rate answers produce identical results.
type CoinAnalytics struct {
	coin   *Coin
	byKind map[OperationKind][]*Transaction
	trades []*Transaction // BUY and SELL, chronologically sorted

	price        Money // latest known market price per unit
	spotQuantity Quantity
	earnQuantity Quantity
	lots         []*BuyLot
	fees         FeeBook
	earn         *CoinEarn
}

// newCoinAnalytics groups the coin's transactions by kind and prepares
// the sorted trade view. The sort is stable: same-timestamp trades keep
// their ledger insertion order, which keeps FIFO well-defined.
func newCoinAnalytics(coin *Coin) *CoinAnalytics {
	a := &CoinAnalytics{
		coin:   coin,
		byKind: make(map[OperationKind][]*Transaction),
		earn:   &CoinEarn{Coin: coin.Info},
	}
	for _, tx := range coin.Transactions {
		a.byKind[tx.Kind] = append(a.byKind[tx.Kind], tx)
		if tx.Kind == Buy || tx.Kind == Sell {
			a.trades = append(a.trades, tx)
		}
	}
	sort.SliceStable(a.trades, func(i, j int) bool {
		return a.trades[i].UTCTime.Before(a.trades[j].UTCTime)
	})
	return a
}

// Kind returns the coin's transactions of one operation kind, in
// insertion order.
func (a *CoinAnalytics) Kind(kind OperationKind) []*Transaction { return a.byKind[kind] }

// averageCost is the cost basis per unit over the open lots, zero when
// no open quantity remains.
func (a *CoinAnalytics) averageCost() Money {
	var spot Quantity
	var cost Money
	for _, lot := range a.lots {
		spot = spot.Add(lot.SpotQuantity())
		cost = cost.Add(lot.CurrentCost())
	}
	if !spot.IsPositive() {
		return Money{}
	}
	return cost.Div(spot)
}

// LotData is the frozen view of one buy lot.
type LotData struct {
	ID          string         `json:"id"`
	Time        time.Time      `json:"time"`
	Quantity    Quantity       `json:"quantity"`
	CostPerUnit Money          `json:"costPerUnit"`
	Cost        Money          `json:"cost"`
	Spot        Quantity       `json:"spot"`
	CurrentCost Money          `json:"currentCost"`
	Unrealized  Money          `json:"unrealized"`
	Realized    Money          `json:"realized"`
	Amortized   []Amortization `json:"amortized,omitempty"`
}

// EarnData is the frozen view of the earn bucket.
type EarnData struct {
	TotalEarned     Quantity       `json:"totalEarned"`
	CurrentQuantity Quantity       `json:"currentQuantity"`
	CurrentValue    Money          `json:"currentValue"`
	RealizedGains   Money          `json:"realizedGains"`
	Amortized       []Amortization `json:"amortized,omitempty"`
}

// CoinData is a read-only, point-in-time snapshot of everything derived
// for one coin. It never aliases the mutable working set: freezing
// copies every slice, and all leaf fields are value types.
type CoinData struct {
	Coin         CoinInfo  `json:"coin"`
	Time         time.Time `json:"time"`
	SpotQuantity Quantity  `json:"spotQuantity"`
	EarnQuantity Quantity  `json:"earnQuantity"`
	Price        Money     `json:"price"`

	AverageCost        Money `json:"averageCost"`
	TotalCost          Money `json:"totalCost"`
	TotalCurrentCost   Money `json:"totalCurrentCost"`
	CurrentTotalValue  Money `json:"currentTotalValue"`
	TotalUnrealized    Money `json:"totalUnrealized"`
	TotalRealized      Money `json:"totalRealized"`
	TotalRealizedValue Money `json:"totalRealizedValue"`

	FeeQuantity Quantity `json:"feeQuantity"`
	FeeCost     Money    `json:"feeCost"`

	Earn EarnData  `json:"earn"`
	Lots []LotData `json:"lots,omitempty"`
}

// freeze computes the roll-ups and returns an independent snapshot of
// the working set, including full per-lot amortization detail.
func (a *CoinAnalytics) freeze(at time.Time) *CoinData {
	data := &CoinData{
		Coin:         a.coin.Info,
		Time:         at,
		SpotQuantity: a.spotQuantity,
		EarnQuantity: a.earnQuantity,
		Price:        a.price,
		AverageCost:  a.averageCost(),
		FeeQuantity:  a.fees.TotalQuantity(),
		FeeCost:      a.fees.TotalCost(),
		Earn: EarnData{
			TotalEarned:     a.earn.TotalEarned,
			CurrentQuantity: a.earn.CurrentQuantity(),
			CurrentValue:    a.earn.CurrentValue(),
			RealizedGains:   a.earn.RealizedGains(),
			Amortized:       append([]Amortization(nil), a.earn.Amortized...),
		},
	}

	for _, lot := range a.lots {
		data.TotalCost = data.TotalCost.Add(lot.Cost())
		data.TotalCurrentCost = data.TotalCurrentCost.Add(lot.CurrentCost())
		data.TotalUnrealized = data.TotalUnrealized.Add(lot.UnrealizedGain(a.price))
		data.TotalRealized = data.TotalRealized.Add(lot.RealizedGain())
		data.TotalRealizedValue = data.TotalRealizedValue.Add(lot.TotalAmortizedValue())

		data.Lots = append(data.Lots, LotData{
			ID:          lot.Tx.ID,
			Time:        lot.Tx.UTCTime,
			Quantity:    lot.Tx.Quantity,
			CostPerUnit: lot.CostPerUnit,
			Cost:        lot.Cost(),
			Spot:        lot.SpotQuantity(),
			CurrentCost: lot.CurrentCost(),
			Unrealized:  lot.UnrealizedGain(a.price),
			Realized:    lot.RealizedGain(),
			Amortized:   append([]Amortization(nil), lot.Amortized...),
		})
	}

	// Earned quantity is pure gain: sales from the bucket count as
	// realized value and realized gains alike.
	data.TotalRealized = data.TotalRealized.Add(data.Earn.RealizedGains)
	data.TotalRealizedValue = data.TotalRealizedValue.Add(data.Earn.RealizedGains)
	data.CurrentTotalValue = a.price.Mul(a.spotQuantity).Add(data.Earn.CurrentValue)
	return data
}

// summary returns a copy of the snapshot without the per-lot and earn
// amortization audit trail.
func (d *CoinData) summary() *CoinData {
	copied := *d
	copied.Lots = nil
	copied.Earn.Amortized = nil
	return &copied
}

// full returns a deep copy of the snapshot with all audit detail.
func (d *CoinData) full() *CoinData {
	copied := *d
	copied.Earn.Amortized = append([]Amortization(nil), d.Earn.Amortized...)
	copied.Lots = make([]LotData, len(d.Lots))
	for i, lot := range d.Lots {
		copied.Lots[i] = lot
		copied.Lots[i].Amortized = append([]Amortization(nil), lot.Amortized...)
	}
	return &copied
}
