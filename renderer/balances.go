// Package renderer turns tracker reports into markdown documents.
package renderer

import (
	"bytes"

	"github.com/etnz/tracker"
	md "github.com/nao1215/markdown"
)

// BalancesMarkdown renders the value of each holding and the portfolio total.
func BalancesMarkdown(r *tracker.BalanceReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Balances")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Ticker", "Quantity", "Current Price", "Value"},
	}
	for _, row := range r.Rows {
		table.Rows = append(table.Rows, []string{
			row.Ticker,
			row.Quantity.String(),
			row.Price.String(),
			row.Value.String(),
		})
	}
	table.Rows = append(table.Rows, []string{
		md.Bold("Total Portfolio Value"), "", "", md.Bold(r.Total.String()),
	})
	doc.Table(table)

	return doc.String()
}
