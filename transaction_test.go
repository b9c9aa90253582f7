package cryptotracker

import (
	"testing"
	"time"
)

func TestGenerateID(t *testing.T) {
	btc := CoinInfo{Tick: "BTC", Name: "Bitcoin"}
	at := time.Date(2021, 5, 4, 10, 30, 0, 123456000, time.UTC)

	tx := NewTransaction(Q(0.5), btc, Buy, at, "Spot")
	if got, want := tx.ID, "0x1187a2266dee5a840_0x2_BTC_0_5"; got != want {
		t.Errorf("ID = %q, want %q", got, want)
	}

	t.Run("sign is stripped", func(t *testing.T) {
		sell := NewTransaction(Q(-0.5), btc, Sell, at, "Spot")
		if got, want := sell.ID, "0x1187a2266dee5a840_0x3_BTC_0_5"; got != want {
			t.Errorf("ID = %q, want %q", got, want)
		}
	})

	t.Run("identity is by id only", func(t *testing.T) {
		other := NewTransaction(Q(0.5), btc, Buy, at, "Earn")
		if !tx.Equal(other) {
			t.Error("transactions differing only by account should be equal")
		}
	})
}

func TestOperationKindClasses(t *testing.T) {
	increasing := []OperationKind{Deposit, Buy, PosInterest, PosRedemption, SavingInterest, SavingRedemption, LiquidSwapRedemption}
	decreasing := []OperationKind{Withdrawal, Sell, Fee, PosPurchase, SavingPurchase, LiquidSwapAdd}

	for _, k := range increasing {
		if !k.SpotIncreasing() || k.SpotDecreasing() {
			t.Errorf("%v should be spot-increasing only", k)
		}
	}
	for _, k := range decreasing {
		if !k.SpotDecreasing() || k.SpotIncreasing() {
			t.Errorf("%v should be spot-decreasing only", k)
		}
	}

	// The two classes are disjoint and cover all kinds.
	for k := Deposit; k <= LiquidSwapRedemption; k++ {
		if k.SpotIncreasing() == k.SpotDecreasing() {
			t.Errorf("%v must be in exactly one sign class", k)
		}
	}
}

func TestParseOperationKind(t *testing.T) {
	for k := Deposit; k <= LiquidSwapRedemption; k++ {
		parsed, err := ParseOperationKind(k.String())
		if err != nil {
			t.Fatalf("ParseOperationKind(%q) error = %v", k.String(), err)
		}
		if parsed != k {
			t.Errorf("ParseOperationKind(%q) = %v, want %v", k.String(), parsed, k)
		}
	}
	if _, err := ParseOperationKind("stake"); err == nil {
		t.Error("ParseOperationKind should reject unknown kinds")
	}
}
