package cryptotracker

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// ledger entries are persisted as JSONL, one transaction per line, in
// their proto form: ids are deterministic and recomputed on load.
type transactionLine struct {
	Kind     string          `json:"kind"`
	Time     time.Time       `json:"time"`
	Coin     string          `json:"coin"`
	Quantity decimal.Decimal `json:"quantity"`
	Account  string          `json:"account,omitempty"`
}

// EncodeTransaction writes one transaction as a JSONL line.
func EncodeTransaction(w io.Writer, tx *Transaction) error {
	line := transactionLine{
		Kind:     tx.Kind.String(),
		Time:     tx.UTCTime,
		Coin:     tx.Coin.Tick,
		Quantity: tx.Quantity.value,
		Account:  tx.Account,
	}
	b, err := json.Marshal(line)
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// EncodeLedger writes every transaction of the ledger as JSONL.
func EncodeLedger(w io.Writer, l *Ledger) error {
	for tx := range l.AllTransactions() {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}

// DecodeTransactions reads a JSONL stream back into proto-transactions,
// in file order. The result goes through the normal validation path, so
// loading a ledger file and re-importing it are the same operation.
func DecodeTransactions(r io.Reader) ([]ProtoTransaction, error) {
	var protos []ProtoTransaction
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}
		var line transactionLine
		if err := json.Unmarshal(lineBytes, &line); err != nil {
			return nil, fmt.Errorf("could not decode ledger line %q: %w", string(lineBytes), err)
		}
		kind, err := ParseOperationKind(line.Kind)
		if err != nil {
			return nil, fmt.Errorf("could not decode ledger line %q: %w", string(lineBytes), err)
		}
		protos = append(protos, ProtoTransaction{
			Value:    Q(line.Quantity),
			CoinTick: line.Coin,
			Kind:     kind,
			UTCTime:  line.Time,
			Account:  line.Account,
		})
	}
	return protos, scanner.Err()
}
