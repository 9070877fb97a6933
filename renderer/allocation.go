package renderer

import (
	"bytes"

	"github.com/etnz/tracker"
	md "github.com/nao1215/markdown"
)

// AllocationMarkdown renders the share of each holding in the portfolio value.
func AllocationMarkdown(r *tracker.AllocationReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Asset Allocation")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Ticker", "Value", "Allocation"},
	}
	for _, row := range r.Rows {
		table.Rows = append(table.Rows, []string{
			row.Ticker,
			row.Value.String(),
			row.Share.String(),
		})
	}
	table.Rows = append(table.Rows, []string{
		md.Bold("Total Portfolio Value"), md.Bold(r.Total.String()), "",
	})
	doc.Table(table)

	return doc.String()
}
