// Package binance adapts Binance exports and market data to the
// tracker: the account statement CSV reader and a conversion rate
// provider backed by the public klines endpoint.
package binance

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	cryptotracker "github.com/XMabbX/CryptoTracker"
)

// statement column layout, as exported from the Binance web UI.
const (
	colUserID = iota
	colUTCTime
	colAccount
	colOperation
	colCoin
	colChange
	colRemark
	columns
)

const timeLayout = "2006-01-02 15:04:05"

// ambiguous operation names whose direction only the quantity sign
// reveals.
var signResolved = map[string]struct{}{
	"The Easiest Way to Trade":  {},
	"Small assets exchange BNB": {},
	"Transaction Related":       {},
}

var operationNames = map[string]cryptotracker.OperationKind{
	"Deposit":                      cryptotracker.Deposit,
	"Withdraw":                     cryptotracker.Withdrawal,
	"Buy":                          cryptotracker.Buy,
	"Sell":                         cryptotracker.Sell,
	"Fee":                          cryptotracker.Fee,
	"POS savings purchase":         cryptotracker.PosPurchase,
	"POS savings interest":         cryptotracker.PosInterest,
	"POS savings redemption":       cryptotracker.PosRedemption,
	"Savings purchase":             cryptotracker.SavingPurchase,
	"Savings Interest":             cryptotracker.SavingInterest,
	"Savings Principal redemption": cryptotracker.SavingRedemption,
	"Liquid Swap add/sell":         cryptotracker.LiquidSwapAdd,
	"Liquid Swap rewards":          cryptotracker.LiquidSwapRedemption,
}

// ReadStatement parses one account statement CSV into proto
// transactions, in file order. The result is unvalidated, it goes
// through the ledger's import path.
func ReadStatement(r io.Reader) ([]cryptotracker.ProtoTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = columns

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("could not read statement header: %w", err)
	}
	if header[colUTCTime] != "UTC_Time" || header[colOperation] != "Operation" {
		return nil, fmt.Errorf("not a Binance statement, header is %v", header)
	}

	var protos []cryptotracker.ProtoTransaction
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not read statement row: %w", err)
		}
		proto, err := parseRow(record)
		if err != nil {
			return nil, err
		}
		protos = append(protos, proto)
	}
	return protos, nil
}

func parseRow(record []string) (cryptotracker.ProtoTransaction, error) {
	var proto cryptotracker.ProtoTransaction

	at, err := time.Parse(timeLayout, record[colUTCTime])
	if err != nil {
		return proto, fmt.Errorf("bad UTC_Time %q: %w", record[colUTCTime], err)
	}
	value, err := cryptotracker.ParseQuantity(record[colChange])
	if err != nil {
		return proto, fmt.Errorf("bad Change %q: %w", record[colChange], err)
	}
	kind, err := parseOperation(record[colOperation], value)
	if err != nil {
		return proto, err
	}

	proto = cryptotracker.ProtoTransaction{
		Value:    value,
		CoinTick: record[colCoin],
		Kind:     kind,
		UTCTime:  at.UTC(),
		Account:  record[colAccount],
	}
	return proto, nil
}

// parseOperation maps a statement operation name to a kind. A few
// names cover both directions of a trade and resolve by quantity sign.
func parseOperation(name string, value cryptotracker.Quantity) (cryptotracker.OperationKind, error) {
	if _, ok := signResolved[name]; ok {
		if value.IsNegative() {
			name = "Sell"
		} else {
			name = "Buy"
		}
	}
	kind, ok := operationNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown statement operation %q", name)
	}
	return kind, nil
}

// ReadStatementFile parses one statement CSV file.
func ReadStatementFile(name string) ([]cryptotracker.ProtoTransaction, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	protos, err := ReadStatement(f)
	if err != nil {
		return nil, fmt.Errorf("statement %s: %w", name, err)
	}
	return protos, nil
}

// ReadStatementDir parses every *.csv file of a directory, in lexical
// order, and concatenates the results.
func ReadStatementDir(dir string) ([]cryptotracker.ProtoTransaction, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, err
	}

	var protos []cryptotracker.ProtoTransaction
	for _, file := range files {
		p, err := ReadStatementFile(file)
		if err != nil {
			return nil, err
		}
		log.Printf("statement %s: %d entries", file, len(p))
		protos = append(protos, p...)
	}
	return protos, nil
}
