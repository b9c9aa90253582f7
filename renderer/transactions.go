package renderer

import (
	"fmt"
	"strings"
	"time"

	cryptotracker "github.com/XMabbX/CryptoTracker"
)

// TransactionsMarkdown renders a coin's ledger history, newest last.
func TransactionsMarkdown(coin *cryptotracker.Coin) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s transactions\n\n", coin.Info.Tick)
	fmt.Fprintln(&b, "| Time | Operation | Quantity | Account |")
	fmt.Fprintln(&b, "|:---|:---|---:|:---|")
	for _, tx := range coin.Transactions {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			tx.UTCTime.Format(time.RFC3339),
			tx.Kind,
			tx.Quantity,
			tx.Account,
		)
	}
	return b.String()
}
