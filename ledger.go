package cryptotracker

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Ledger is the append-only transaction store: coins with their
// transaction lists, plus a global id index for duplicate detection.
//
// Invariant: an id is present in the index iff its transaction is in
// exactly one coin's list. Ingestion requires single-writer discipline:
// the mutex makes validate-then-append exclusive with analytics passes
// reading a coin's transaction list.
type Ledger struct {
	mu       sync.Mutex
	name     string
	registry *Registry
	coins    map[string]*Coin
	index    map[string]*Transaction

	// duplicate ids acknowledged as legitimately repeated in vendor
	// exports; repeats are silently dropped instead of rejected.
	acknowledged map[string]struct{}
}

// NewLedger creates an empty ledger resolving ticks against the given
// registry.
func NewLedger(name string, registry *Registry) *Ledger {
	return &Ledger{
		name:         name,
		registry:     registry,
		coins:        make(map[string]*Coin),
		index:        make(map[string]*Transaction),
		acknowledged: make(map[string]struct{}),
	}
}

// Name returns the ledger's name.
func (l *Ledger) Name() string { return l.name }

// AcknowledgeDuplicates registers transaction ids that are allowed to
// appear more than once in imports. Loaded once, before validation.
func (l *Ledger) AcknowledgeDuplicates(ids ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, id := range ids {
		l.acknowledged[id] = struct{}{}
	}
}

// ReadDuplicateIDs reads a duplicate-id allow-list, one id per line.
// Blank lines are skipped.
func ReadDuplicateIDs(r io.Reader) ([]string, error) {
	var ids []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		ids = append(ids, line)
	}
	return ids, scanner.Err()
}

// Coin returns the coin for this tick, or nil if the ledger holds none.
func (l *Ledger) Coin(tick string) *Coin {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.coins[tick]
}

// snapshotCoin returns a stable view of the coin for an analytics pass:
// transactions are immutable and the list append-only, so cloning the
// slice header under the lock is enough to decouple the pass from
// concurrent ingestion.
func (l *Ledger) snapshotCoin(tick string) *Coin {
	l.mu.Lock()
	defer l.mu.Unlock()
	coin, ok := l.coins[tick]
	if !ok {
		return nil
	}
	return &Coin{Info: coin.Info, Transactions: slices.Clone(coin.Transactions)}
}

// Ticks returns the held ticks in sorted order.
func (l *Ledger) Ticks() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	ticks := slices.Collect(maps.Keys(l.coins))
	slices.Sort(ticks)
	return ticks
}

// Transaction looks up a transaction by id in the global index.
func (l *Ledger) Transaction(id string) *Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.index[id]
}

// AllTransactions iterates over every transaction, coins in sorted tick
// order, each coin's list in insertion order.
func (l *Ledger) AllTransactions() iter.Seq[*Transaction] {
	return func(yield func(*Transaction) bool) {
		for _, tick := range l.Ticks() {
			coin := l.Coin(tick)
			for _, tx := range coin.Transactions {
				if !yield(tx) {
					return
				}
			}
		}
	}
}

// ValidateImport converts untrusted proto-transactions into validated,
// deduplicated ledger transactions, preserving input order. It fails
// atomically: on any error nothing is committed and the ledger is
// unchanged. The caller commits the result with Append.
//
// Validation per entry: resolve the tick against the registry (unknown
// tick is fatal), reclassify buys/sells whose sign contradicts the
// kind, check the sign against the kind's operation class, then dedup
// within the batch and against the ledger's index (acknowledged ids
// keep their first stored occurrence, others collide fatally).
func (l *Ledger) ValidateImport(protos []ProtoTransaction) ([]*Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	txs := make([]*Transaction, 0, len(protos))
	for _, proto := range protos {
		tx, err := l.convert(proto)
		if err != nil {
			return nil, err
		}
		if err := validateSign(tx); err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return l.dedup(txs)
}

// convert resolves the proto's tick and builds the immutable transaction.
func (l *Ledger) convert(proto ProtoTransaction) (*Transaction, error) {
	info, err := l.registry.Info(proto.CoinTick)
	if err != nil {
		return nil, err
	}

	// Some exporters flag quantity-signed trades inconsistently: a
	// negative buy is a sell and a positive sell is a buy.
	kind := proto.Kind
	switch {
	case kind == Buy && proto.Value.IsNegative():
		kind = Sell
	case kind == Sell && proto.Value.IsPositive():
		kind = Buy
	}

	return NewTransaction(proto.Value, info, kind, proto.UTCTime, proto.Account), nil
}

// validateSign checks the quantity sign against the kind's class.
func validateSign(tx *Transaction) error {
	switch {
	case tx.Kind.SpotIncreasing() && tx.Quantity.IsNegative():
		return &SignError{Tx: tx}
	case tx.Kind.SpotDecreasing() && tx.Quantity.IsPositive():
		return &SignError{Tx: tx}
	}
	return nil
}

// dedup drops acknowledged repeats, rejects unacknowledged intra-batch
// collisions, and cross-checks surviving ids against the store index.
// An acknowledged id already in the store is dropped too, so a vendor
// export containing it can be imported again.
func (l *Ledger) dedup(txs []*Transaction) ([]*Transaction, error) {
	seen := make(map[string]struct{}, len(txs))
	valid := make([]*Transaction, 0, len(txs))
	for _, tx := range txs {
		if _, dup := seen[tx.ID]; dup {
			if _, ok := l.acknowledged[tx.ID]; ok {
				continue
			}
			var collided []*Transaction
			for _, candidate := range txs {
				if candidate.ID == tx.ID {
					collided = append(collided, candidate)
				}
			}
			return nil, &DuplicateError{Transactions: collided}
		}
		seen[tx.ID] = struct{}{}

		if existing, ok := l.index[tx.ID]; ok {
			if _, ack := l.acknowledged[tx.ID]; ack {
				continue
			}
			return nil, &DuplicateError{Transactions: []*Transaction{existing, tx}}
		}
		valid = append(valid, tx)
	}
	return valid, nil
}

// Append commits validated transactions to their coins and the index,
// creating coins on first use. Appending a transaction whose tick is
// unknown to the registry is an error (the batch should have been
// produced by ValidateImport).
func (l *Ledger) Append(txs ...*Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, tx := range txs {
		coin, ok := l.coins[tx.Coin.Tick]
		if !ok {
			if !l.registry.Has(tx.Coin.Tick) {
				return &UnknownCoinError{Tick: tx.Coin.Tick}
			}
			coin = &Coin{Info: tx.Coin}
			l.coins[tx.Coin.Tick] = coin
		}
		coin.Transactions = append(coin.Transactions, tx)
		l.index[tx.ID] = tx
	}
	return nil
}

// RemoveCoin drops a whole coin and its transactions from the index.
// A coin with transactions is only removed when forced; individual
// transactions are never removed.
func (l *Ledger) RemoveCoin(tick string, force bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	coin, ok := l.coins[tick]
	if !ok {
		return fmt.Errorf("coin %s is not in the ledger", tick)
	}
	if !force && len(coin.Transactions) > 0 {
		return fmt.Errorf("coin %s has %d transactions, not safe to remove without force", tick, len(coin.Transactions))
	}
	for _, tx := range coin.Transactions {
		delete(l.index, tx.ID)
	}
	delete(l.coins, tick)
	return nil
}
