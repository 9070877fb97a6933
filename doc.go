// Package tracker provides the types and functions behind the `pt` command-line
// tool: a small, read-only tracker for a personal investment portfolio.
//
// The core functionalities include:
//   - Portfolio loading: decoding an ordered list of holdings (ticker, quantity,
//     cost basis, purchase date) from a JSON or JSONL file, all or nothing.
//   - Valuation: pairing every holding with a current price obtained from a
//     PriceResolver (see package quote for the default one).
//   - Reports: stateless builders computing balances, allocation and
//     performance figures from valued holdings.
//
// Amounts are exact decimals. A Money is only ever combined with a Money of the
// same currency, there is no currency conversion.
package tracker
