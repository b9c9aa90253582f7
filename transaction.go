package cryptotracker

import (
	"fmt"
	"math/big"
	"strings"
	"time"
)

// OperationKind is the closed set of ledger operation kinds. The numeric
// values are part of the transaction id format and must not be reordered.
type OperationKind int

const (
	Deposit OperationKind = iota
	Withdrawal
	Buy
	Sell
	Fee
	PosPurchase
	PosInterest
	PosRedemption
	SavingPurchase
	SavingInterest
	SavingRedemption
	LiquidSwapAdd
	LiquidSwapRedemption
)

func (k OperationKind) String() string {
	switch k {
	case Deposit:
		return "deposit"
	case Withdrawal:
		return "withdrawal"
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	case Fee:
		return "fee"
	case PosPurchase:
		return "pos-purchase"
	case PosInterest:
		return "pos-interest"
	case PosRedemption:
		return "pos-redemption"
	case SavingPurchase:
		return "saving-purchase"
	case SavingInterest:
		return "saving-interest"
	case SavingRedemption:
		return "saving-redemption"
	case LiquidSwapAdd:
		return "liquid-swap-add"
	case LiquidSwapRedemption:
		return "liquid-swap-redemption"
	default:
		return fmt.Sprintf("operation(%d)", int(k))
	}
}

// ParseOperationKind parses the string form produced by String.
func ParseOperationKind(s string) (OperationKind, error) {
	for k := Deposit; k <= LiquidSwapRedemption; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown operation kind: %q", s)
}

// SpotIncreasing reports whether the kind returns value to the spot
// wallet and therefore must carry a non-negative quantity.
func (k OperationKind) SpotIncreasing() bool {
	switch k {
	case Deposit, Buy, PosInterest, PosRedemption, SavingInterest, SavingRedemption, LiquidSwapRedemption:
		return true
	default:
		return false
	}
}

// SpotDecreasing reports whether the kind takes value out of the spot
// wallet and therefore must carry a non-positive quantity.
func (k OperationKind) SpotDecreasing() bool {
	switch k {
	case Withdrawal, Sell, Fee, PosPurchase, SavingPurchase, LiquidSwapAdd:
		return true
	default:
		return false
	}
}

// EarnAffecting reports whether the kind moves quantity between the spot
// and earn wallets. The earn wallet balance is the negated sum over
// these kinds.
func (k OperationKind) EarnAffecting() bool {
	switch k {
	case PosPurchase, PosRedemption, SavingPurchase, SavingRedemption, LiquidSwapAdd, LiquidSwapRedemption:
		return true
	default:
		return false
	}
}

// Interest reports whether the kind credits staking interest. Interest
// quantities have no buy-lot cost basis.
func (k OperationKind) Interest() bool {
	switch k {
	case PosInterest, SavingInterest:
		return true
	default:
		return false
	}
}

// ProtoTransaction is an untrusted ledger entry candidate as produced by
// an ingestion adapter, before validation.
type ProtoTransaction struct {
	Value    Quantity
	CoinTick string
	Kind     OperationKind
	UTCTime  time.Time
	Account  string
}

// Transaction is an immutable ledger entry. Identity, equality and
// hashing are by ID only.
//
// The ID is a deterministic function of (timestamp to the microsecond,
// kind, tick, quantity). Two genuinely distinct transactions that agree
// on all four fields are indistinguishable and collide as duplicates;
// this is a known precision gap inherited from the source data, kept
// because widening the id would change dedup semantics on re-imports.
type Transaction struct {
	Quantity Quantity
	Coin     CoinInfo
	Kind     OperationKind
	UTCTime  time.Time
	Account  string

	ID string
}

// NewTransaction builds a transaction and derives its ID. The timestamp
// is normalized to UTC.
func NewTransaction(quantity Quantity, coin CoinInfo, kind OperationKind, utcTime time.Time, account string) *Transaction {
	t := &Transaction{
		Quantity: quantity,
		Coin:     coin,
		Kind:     kind,
		UTCTime:  utcTime.UTC(),
		Account:  account,
	}
	t.ID = generateID(t)
	return t
}

func (t *Transaction) String() string {
	return fmt.Sprintf("%s %s %s %s on %s",
		t.Kind, t.Quantity, t.Coin.Tick, t.Account, t.UTCTime.Format("2006-01-02 15:04:05.000000"))
}

// Equal compares transactions by identity.
func (t *Transaction) Equal(o *Transaction) bool { return o != nil && t.ID == o.ID }

// generateID derives the transaction id: the microsecond timestamp
// digits as a hex literal, the kind as a hex literal, the tick, and the
// quantity with '.' replaced by '_' and the sign stripped.
func generateID(t *Transaction) string {
	digits := t.UTCTime.Format("20060102150405") + fmt.Sprintf("%06d", t.UTCTime.Nanosecond()/1000)
	// 20 decimal digits overflow uint64, hence big.Int.
	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		panic("unreachable: timestamp digits " + digits)
	}
	quantity := strings.NewReplacer(".", "_", "-", "").Replace(t.Quantity.String())
	return fmt.Sprintf("0x%s_%#x_%s_%s", n.Text(16), int(t.Kind), t.Coin.Tick, quantity)
}
