package renderer

import (
	"strings"
	"testing"
	"time"

	cryptotracker "github.com/XMabbX/CryptoTracker"
)

func sampleCoinData() *cryptotracker.CoinData {
	return &cryptotracker.CoinData{
		Coin:              cryptotracker.CoinInfo{Tick: "BTC", Name: "Bitcoin"},
		Time:              time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC),
		SpotQuantity:      cryptotracker.Q(0.5),
		EarnQuantity:      cryptotracker.Q(0.1),
		Price:             cryptotracker.M(30000, "EUR"),
		AverageCost:       cryptotracker.M(20000, "EUR"),
		TotalCost:         cryptotracker.M(10000, "EUR"),
		CurrentTotalValue: cryptotracker.M(18000, "EUR"),
		TotalUnrealized:   cryptotracker.M(5000, "EUR"),
		TotalRealized:     cryptotracker.M(-200, "EUR"),
		Lots: []cryptotracker.LotData{{
			Time:        time.Date(2021, 5, 4, 10, 30, 0, 0, time.UTC),
			Quantity:    cryptotracker.Q(0.5),
			CostPerUnit: cryptotracker.M(20000, "EUR"),
			Spot:        cryptotracker.Q(0.4),
			Unrealized:  cryptotracker.M(4000, "EUR"),
			Realized:    cryptotracker.M(100, "EUR"),
			Amortized: []cryptotracker.Amortization{{
				Quantity: cryptotracker.Q(0.1),
				Value:    cryptotracker.M(2100, "EUR"),
			}},
		}},
		Earn: cryptotracker.EarnData{
			TotalEarned:     cryptotracker.Q(0.1),
			CurrentQuantity: cryptotracker.Q(0.1),
			CurrentValue:    cryptotracker.M(3000, "EUR"),
		},
	}
}

func TestStatusMarkdown(t *testing.T) {
	got := StatusMarkdown(sampleCoinData())

	for _, want := range []string{
		"# Bitcoin (BTC) on 2021-06-01",
		"## Position",
		"## Lots",
		"### Amortizations",
		"## Earnings",
		"| 2021-05-04 | 0.5 |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("StatusMarkdown() missing %q in:\n%s", want, got)
		}
	}
}

func TestStatusMarkdown_NoAuditSectionsOnSummary(t *testing.T) {
	data := sampleCoinData()
	data.Lots = nil
	data.Earn = cryptotracker.EarnData{}

	got := StatusMarkdown(data)
	if strings.Contains(got, "## Lots") || strings.Contains(got, "## Earnings") {
		t.Errorf("summary snapshot should have no audit sections:\n%s", got)
	}
}

func TestSummaryMarkdown(t *testing.T) {
	got := SummaryMarkdown([]*cryptotracker.CoinData{sampleCoinData()}, "EUR")

	for _, want := range []string{
		"# Portfolio Summary (EUR)",
		"| BTC |",
		"| **Total** |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("SummaryMarkdown() missing %q in:\n%s", want, got)
		}
	}
}

func TestTransactionsMarkdown(t *testing.T) {
	coin := &cryptotracker.Coin{
		Info: cryptotracker.CoinInfo{Tick: "ADA", Name: "Cardano"},
		Transactions: []*cryptotracker.Transaction{
			cryptotracker.NewTransaction(cryptotracker.Q(10), cryptotracker.CoinInfo{Tick: "ADA"}, cryptotracker.Buy,
				time.Date(2021, 5, 4, 10, 30, 0, 0, time.UTC), "Spot"),
		},
	}
	got := TransactionsMarkdown(coin)
	if !strings.Contains(got, "# ADA transactions") || !strings.Contains(got, "| buy |") {
		t.Errorf("TransactionsMarkdown() unexpected output:\n%s", got)
	}
}
