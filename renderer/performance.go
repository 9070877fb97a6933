package renderer

import (
	"bytes"

	"github.com/etnz/tracker"
	md "github.com/nao1215/markdown"
)

// PerformanceMarkdown renders the gain or loss of each holding and the
// portfolio totals.
func PerformanceMarkdown(r *tracker.PerformanceReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Performance")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Ticker", "Purchase Price", "Current Price", "Return", "Gain / Loss"},
	}
	for _, row := range r.Rows {
		table.Rows = append(table.Rows, []string{
			row.Ticker,
			row.CostBasis.String(),
			row.Price.String(),
			row.Return.SignedString(),
			row.GainLoss.SignedString(),
		})
	}
	doc.Table(table)

	doc.H2("Total")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Total Return"), md.Bold(r.TotalReturn.SignedString())},
		Rows: [][]string{
			{"Total Gain / Loss", r.TotalGainLoss.SignedString()},
			{"Total Cost", r.TotalCost.String()},
			{"Total Value", r.TotalValue.String()},
		},
	})

	return doc.String()
}
