package cryptotracker

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func testLedger() *Ledger {
	return NewLedger("test", DefaultRegistry())
}

func proto(value float64, tick string, kind OperationKind, at time.Time) ProtoTransaction {
	return ProtoTransaction{Value: Q(value), CoinTick: tick, Kind: kind, UTCTime: at, Account: "Spot"}
}

func TestValidateImport_UnknownCoin(t *testing.T) {
	l := testLedger()
	at := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)

	_, err := l.ValidateImport([]ProtoTransaction{proto(1, "NOPE", Deposit, at)})
	var unknown *UnknownCoinError
	if !errors.As(err, &unknown) {
		t.Fatalf("ValidateImport() error = %v, want UnknownCoinError", err)
	}
	if unknown.Tick != "NOPE" {
		t.Errorf("error names tick %q, want NOPE", unknown.Tick)
	}
}

func TestValidateImport_Reclassification(t *testing.T) {
	l := testLedger()
	at := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)

	txs, err := l.ValidateImport([]ProtoTransaction{
		proto(-2, "BTC", Buy, at),
		proto(3, "ETH", Sell, at),
	})
	if err != nil {
		t.Fatalf("ValidateImport() error = %v", err)
	}
	if got, want := txs[0].Kind, Sell; got != want {
		t.Errorf("negative buy reclassified to %v, want %v", got, want)
	}
	if got, want := txs[1].Kind, Buy; got != want {
		t.Errorf("positive sell reclassified to %v, want %v", got, want)
	}
}

func TestValidateImport_SignErrors(t *testing.T) {
	l := testLedger()
	at := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		proto ProtoTransaction
	}{
		{"negative deposit", proto(-1, "BTC", Deposit, at)},
		{"positive fee", proto(0.1, "BTC", Fee, at)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := l.ValidateImport([]ProtoTransaction{tc.proto})
			var sign *SignError
			if !errors.As(err, &sign) {
				t.Fatalf("ValidateImport() error = %v, want SignError", err)
			}
			if !strings.Contains(sign.Error(), "BTC") {
				t.Errorf("sign error should name the coin: %v", sign)
			}
		})
	}
}

func TestValidateImport_Duplicates(t *testing.T) {
	at := time.Date(2021, 6, 1, 12, 0, 0, 123456000, time.UTC)
	batch := []ProtoTransaction{
		proto(1, "BTC", Deposit, at),
		proto(1, "BTC", Deposit, at),
	}

	t.Run("unacknowledged duplicates are fatal and list all entries", func(t *testing.T) {
		l := testLedger()
		_, err := l.ValidateImport(batch)
		var dup *DuplicateError
		if !errors.As(err, &dup) {
			t.Fatalf("ValidateImport() error = %v, want DuplicateError", err)
		}
		if got, want := len(dup.Transactions), 2; got != want {
			t.Errorf("duplicate error lists %d transactions, want %d", got, want)
		}
	})

	t.Run("acknowledged duplicates keep the first occurrence", func(t *testing.T) {
		l := testLedger()
		id := NewTransaction(Q(1), CoinInfo{Tick: "BTC"}, Deposit, at, "").ID
		l.AcknowledgeDuplicates(id)

		txs, err := l.ValidateImport(batch)
		if err != nil {
			t.Fatalf("ValidateImport() error = %v", err)
		}
		if got, want := len(txs), 1; got != want {
			t.Errorf("got %d transactions, want %d", got, want)
		}
	})

	t.Run("store collision is fatal", func(t *testing.T) {
		l := testLedger()
		txs, err := l.ValidateImport(batch[:1])
		if err != nil {
			t.Fatalf("ValidateImport() error = %v", err)
		}
		if err := l.Append(txs...); err != nil {
			t.Fatalf("Append() error = %v", err)
		}

		_, err = l.ValidateImport(batch[:1])
		var dup *DuplicateError
		if !errors.As(err, &dup) {
			t.Fatalf("re-import error = %v, want DuplicateError", err)
		}
	})

	t.Run("acknowledged ids pass the store check on re-import", func(t *testing.T) {
		l := testLedger()
		id := NewTransaction(Q(1), CoinInfo{Tick: "BTC"}, Deposit, at, "").ID
		l.AcknowledgeDuplicates(id)

		txs, err := l.ValidateImport(batch[:1])
		if err != nil {
			t.Fatalf("ValidateImport() error = %v", err)
		}
		if err := l.Append(txs...); err != nil {
			t.Fatalf("Append() error = %v", err)
		}

		// the same vendor export again: the stored repeat is dropped,
		// not rejected.
		txs, err = l.ValidateImport(batch[:1])
		if err != nil {
			t.Fatalf("re-import of acknowledged id error = %v", err)
		}
		if got, want := len(txs), 0; got != want {
			t.Errorf("re-import kept %d transactions, want %d", got, want)
		}
		if got, want := len(l.Coin("BTC").Transactions), 1; got != want {
			t.Errorf("BTC has %d transactions, want %d", got, want)
		}
	})
}

func TestValidateImport_Atomicity(t *testing.T) {
	l := testLedger()
	at := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)

	// A bad entry at the end must reject the whole batch.
	_, err := l.ValidateImport([]ProtoTransaction{
		proto(1, "BTC", Deposit, at),
		proto(-1, "ETH", Deposit, at.Add(time.Second)),
	})
	if err == nil {
		t.Fatal("ValidateImport() should fail on the bad entry")
	}
	if got := len(l.Ticks()); got != 0 {
		t.Errorf("ledger holds %d coins after failed import, want 0", got)
	}
}

func TestAppend_IndexInvariant(t *testing.T) {
	l := testLedger()
	at := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)

	txs, err := l.ValidateImport([]ProtoTransaction{
		proto(1, "BTC", Deposit, at),
		proto(2, "ETH", Deposit, at),
	})
	if err != nil {
		t.Fatalf("ValidateImport() error = %v", err)
	}
	if err := l.Append(txs...); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	for _, tx := range txs {
		if got := l.Transaction(tx.ID); got != tx {
			t.Errorf("index lookup for %s = %v, want the appended transaction", tx.ID, got)
		}
	}
	if got, want := len(l.Coin("BTC").Transactions), 1; got != want {
		t.Errorf("BTC has %d transactions, want %d", got, want)
	}
}

func TestRemoveCoin(t *testing.T) {
	l := testLedger()
	at := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	txs, _ := l.ValidateImport([]ProtoTransaction{proto(1, "BTC", Deposit, at)})
	if err := l.Append(txs...); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	if err := l.RemoveCoin("BTC", false); err == nil {
		t.Error("RemoveCoin should refuse a coin with transactions without force")
	}
	if err := l.RemoveCoin("BTC", true); err != nil {
		t.Fatalf("RemoveCoin(force) error = %v", err)
	}
	if got := l.Transaction(txs[0].ID); got != nil {
		t.Error("forced removal should clear the id index")
	}
}

func TestReadDuplicateIDs(t *testing.T) {
	in := "0xabc_0x2_BTC_1\n\n  0xdef_0x4_ETH_0_1  \n"
	ids, err := ReadDuplicateIDs(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadDuplicateIDs() error = %v", err)
	}
	if got, want := len(ids), 2; got != want {
		t.Fatalf("got %d ids, want %d", got, want)
	}
	if ids[0] != "0xabc_0x2_BTC_1" || ids[1] != "0xdef_0x4_ETH_0_1" {
		t.Errorf("unexpected ids: %v", ids)
	}
}
