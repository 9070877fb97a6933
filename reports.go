package tracker

import "context"

// Valuate resolves the current price of every ticker in p and pairs each
// holding with it, in portfolio order.
func Valuate(ctx context.Context, p *Portfolio, r PriceResolver) []HoldingWithPrice {
	prices := r.Resolve(ctx, p.Tickers())
	valued := make([]HoldingWithPrice, 0, p.Len())
	for _, h := range p.holdings {
		valued = append(valued, HoldingWithPrice{Holding: h, Price: prices[h.Ticker]})
	}
	return valued
}

// BalanceReport lists the current value of each holding.
type BalanceReport struct {
	ReportingCurrency string
	Rows              []BalanceRow
	Total             Money // sum of all values
}

// BalanceRow is a single line of a BalanceReport.
type BalanceRow struct {
	Ticker   string
	Quantity Quantity
	Price    Money
	Value    Money
}

// NewBalanceReport computes the balances of the valued holdings.
func NewBalanceReport(currency string, holdings []HoldingWithPrice) *BalanceReport {
	r := &BalanceReport{ReportingCurrency: currency, Total: M(0, currency)}
	for _, h := range holdings {
		value := h.CurrentValue()
		r.Rows = append(r.Rows, BalanceRow{
			Ticker:   h.Ticker,
			Quantity: h.Quantity,
			Price:    h.Price,
			Value:    value,
		})
		r.Total = r.Total.Add(value)
	}
	return r
}

// AllocationReport gives the share of each holding in the total value.
type AllocationReport struct {
	ReportingCurrency string
	Rows              []AllocationRow
	Total             Money
}

// AllocationRow is a single line of an AllocationReport.
type AllocationRow struct {
	Ticker string
	Value  Money
	Share  Percent // of the total value, 0 if the total is 0
}

// NewAllocationReport computes the allocation of the valued holdings.
func NewAllocationReport(currency string, holdings []HoldingWithPrice) *AllocationReport {
	r := &AllocationReport{ReportingCurrency: currency, Total: M(0, currency)}
	for _, h := range holdings {
		r.Total = r.Total.Add(h.CurrentValue())
	}
	for _, h := range holdings {
		value := h.CurrentValue()
		r.Rows = append(r.Rows, AllocationRow{
			Ticker: h.Ticker,
			Value:  value,
			Share:  value.Ratio(r.Total),
		})
	}
	return r
}

// PerformanceReport gives the gain or loss of each holding and of the whole portfolio.
type PerformanceReport struct {
	ReportingCurrency string
	Rows              []PerformanceRow
	TotalCost         Money
	TotalValue        Money
	TotalGainLoss     Money
	TotalReturn       Percent // 0 if the total cost is 0
}

// PerformanceRow is a single line of a PerformanceReport.
type PerformanceRow struct {
	Ticker    string
	CostBasis Money
	Price     Money
	Return    Percent
	GainLoss  Money
}

// NewPerformanceReport computes the performance of the valued holdings.
func NewPerformanceReport(currency string, holdings []HoldingWithPrice) *PerformanceReport {
	r := &PerformanceReport{
		ReportingCurrency: currency,
		TotalCost:         M(0, currency),
		TotalValue:        M(0, currency),
	}
	for _, h := range holdings {
		r.Rows = append(r.Rows, PerformanceRow{
			Ticker:    h.Ticker,
			CostBasis: h.CostBasis,
			Price:     h.Price,
			Return:    h.GainLossPercentage(),
			GainLoss:  h.GainLoss(),
		})
		r.TotalCost = r.TotalCost.Add(h.TotalCost())
		r.TotalValue = r.TotalValue.Add(h.CurrentValue())
	}
	r.TotalGainLoss = r.TotalValue.Sub(r.TotalCost)
	r.TotalReturn = r.TotalGainLoss.Ratio(r.TotalCost)
	return r
}
