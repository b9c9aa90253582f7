package cryptotracker

import (
	"encoding/json"
	"testing"
)

func TestMoney_WeakCurrency(t *testing.T) {
	// the zero value has no currency and adopts the other operand's.
	var zero Money
	sum := zero.Add(M(10, "EUR"))
	if got, want := sum.Currency(), "EUR"; got != want {
		t.Errorf("currency= %q, want %q", got, want)
	}
	if got, want := sum.Amount(), "10"; got != want {
		t.Errorf("amount= %q, want %q", got, want)
	}
}

func TestMoney_Amount(t *testing.T) {
	m := M(1234.5678, "EUR")
	if got, want := m.Amount(), "1234.5678"; got != want {
		t.Errorf("Amount()= %q, want %q", got, want)
	}
}

func TestMoney_SignedString(t *testing.T) {
	if got, want := M(0, "EUR").SignedString(), "-"; got != want {
		t.Errorf("zero= %q, want %q", got, want)
	}
	if got := M(5, "EUR").SignedString(); got[0] != '+' {
		t.Errorf("positive= %q, want a leading +", got)
	}
}

func TestMoney_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(M(42.5, "EUR"))
	if err != nil {
		t.Fatal(err)
	}
	// currency comes first, and is omitted entirely when empty.
	if got, want := string(b), `{"currency":"EUR","amount":42.5}`; got != want {
		t.Errorf("json= %s, want %s", got, want)
	}

	var unbound Money
	b, err = json.Marshal(unbound.Add(M(1, "")))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(b), `{"amount":1}`; got != want {
		t.Errorf("json= %s, want %s", got, want)
	}
}
