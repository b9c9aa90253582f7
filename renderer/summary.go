// Package renderer turns frozen analytics snapshots into markdown
// reports.
package renderer

import (
	"fmt"
	"strings"

	cryptotracker "github.com/XMabbX/CryptoTracker"
)

// SummaryMarkdown renders the portfolio overview: one row per coin
// with quantities, value and gains, plus a total line.
func SummaryMarkdown(coins []*cryptotracker.CoinData, currency string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Portfolio Summary (%s)\n\n", currency)
	fmt.Fprintln(&b, "| Coin | Spot | Earn | Price | Value | Unrealized | Realized |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|")

	var totalValue, totalUnrealized, totalRealized cryptotracker.Money
	for _, c := range coins {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			c.Coin.Tick,
			c.SpotQuantity,
			c.EarnQuantity,
			c.Price,
			c.CurrentTotalValue,
			c.TotalUnrealized.SignedString(),
			c.TotalRealized.SignedString(),
		)
		totalValue = totalValue.Add(c.CurrentTotalValue)
		totalUnrealized = totalUnrealized.Add(c.TotalUnrealized)
		totalRealized = totalRealized.Add(c.TotalRealized)
	}
	fmt.Fprintf(&b, "| **Total** | | | | **%s** | **%s** | **%s** |\n",
		totalValue,
		totalUnrealized.SignedString(),
		totalRealized.SignedString(),
	)
	return b.String()
}
