package cryptotracker

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoMarketData is reported by rate providers when no conversion rate
// exists for a (tick, time) pair. The core propagates it as fatal for
// the affected coin's pass, it never substitutes a default rate.
var ErrNoMarketData = errors.New("no market data for conversion")

// SignError reports a transaction whose quantity sign is not allowed for
// its operation class. It rejects the whole import batch.
type SignError struct {
	Tx *Transaction
}

func (e *SignError) Error() string {
	class := "non-positive"
	if e.Tx.Kind.SpotIncreasing() {
		class = "non-negative"
	}
	return fmt.Sprintf("coin %s: %s requires a %s quantity, got %s (%v)",
		e.Tx.Coin.Tick, e.Tx.Kind, class, e.Tx.Quantity, e.Tx)
}

// DuplicateError reports transactions sharing an id, either within an
// import batch or against the ledger's existing index. All colliding
// entries are listed for operator triage.
type DuplicateError struct {
	Transactions []*Transaction
}

func (e *DuplicateError) Error() string {
	lines := make([]string, 0, len(e.Transactions))
	for _, tx := range e.Transactions {
		lines = append(lines, fmt.Sprintf("  %s: %v", tx.ID, tx))
	}
	return fmt.Sprintf("duplicated transactions:\n%s", strings.Join(lines, "\n"))
}

// InconsistencyError reports a sell that exceeds the quantity available
// in open buy lots plus the earn bucket. The ledger data is wrong and
// must be fixed by the operator; the engine never clamps.
type InconsistencyError struct {
	Tick      string
	Tx        *Transaction
	Shortfall Quantity
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("coin %s: sell exceeds acquired quantity by %s (%v)",
		e.Tick, e.Shortfall, e.Tx)
}
