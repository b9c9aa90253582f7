package renderer

import (
	"fmt"
	"strings"
	"time"

	cryptotracker "github.com/XMabbX/CryptoTracker"
)

// StatusMarkdown renders the full per-coin report, including the lot
// and amortization audit trail. It expects a full snapshot; with a
// summary the audit sections are simply empty.
func StatusMarkdown(c *cryptotracker.CoinData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s (%s) on %s\n\n", c.Coin.Name, c.Coin.Tick, c.Time.Format(time.DateOnly))
	fmt.Fprintf(&b, "Price: %s\n\n", c.Price)

	fmt.Fprint(&b, "## Position\n\n")
	fmt.Fprintln(&b, "| | |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Spot quantity | %s |\n", c.SpotQuantity)
	fmt.Fprintf(&b, "| Earn quantity | %s |\n", c.EarnQuantity)
	fmt.Fprintf(&b, "| Average cost | %s |\n", c.AverageCost)
	fmt.Fprintf(&b, "| Total cost | %s |\n", c.TotalCost)
	fmt.Fprintf(&b, "| Current value | %s |\n", c.CurrentTotalValue)
	fmt.Fprintf(&b, "| Unrealized | %s |\n", c.TotalUnrealized.SignedString())
	fmt.Fprintf(&b, "| Realized | %s |\n", c.TotalRealized.SignedString())
	if !c.FeeQuantity.IsZero() {
		fmt.Fprintf(&b, "| Fees | %s (%s) |\n", c.FeeQuantity, c.FeeCost)
	}
	fmt.Fprintln(&b)

	if len(c.Lots) > 0 {
		fmt.Fprint(&b, "## Lots\n\n")
		fmt.Fprintln(&b, "| Acquired | Quantity | Cost/unit | Remaining | Unrealized | Realized |")
		fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|")
		for _, lot := range c.Lots {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
				lot.Time.Format(time.DateOnly),
				lot.Quantity,
				lot.CostPerUnit,
				lot.Spot,
				lot.Unrealized.SignedString(),
				lot.Realized.SignedString(),
			)
		}
		fmt.Fprintln(&b)

		writeAmortizations(&b, c.Lots)
	}

	if !c.Earn.TotalEarned.IsZero() {
		fmt.Fprint(&b, "## Earnings\n\n")
		fmt.Fprintln(&b, "| | |")
		fmt.Fprintln(&b, "|:---|---:|")
		fmt.Fprintf(&b, "| Total earned | %s |\n", c.Earn.TotalEarned)
		fmt.Fprintf(&b, "| Remaining | %s |\n", c.Earn.CurrentQuantity)
		fmt.Fprintf(&b, "| Current value | %s |\n", c.Earn.CurrentValue)
		fmt.Fprintf(&b, "| Realized | %s |\n", c.Earn.RealizedGains.SignedString())
		fmt.Fprintln(&b)
	}

	return b.String()
}

// writeAmortizations renders the sell trail of each partially or fully
// consumed lot.
func writeAmortizations(b *strings.Builder, lots []cryptotracker.LotData) {
	header := false
	for _, lot := range lots {
		if len(lot.Amortized) == 0 {
			continue
		}
		if !header {
			fmt.Fprint(b, "### Amortizations\n\n")
			fmt.Fprintln(b, "| Lot | Quantity | Value |")
			fmt.Fprintln(b, "|:---|---:|---:|")
			header = true
		}
		for _, a := range lot.Amortized {
			fmt.Fprintf(b, "| %s | %s | %s |\n", lot.Time.Format(time.DateOnly), a.Quantity, a.Value)
		}
	}
	if header {
		fmt.Fprintln(b)
	}
}
