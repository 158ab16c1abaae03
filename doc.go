// Package wealthtrack provides the data model and bookkeeping engine for a
// single-user personal finance tracker. It is local-first: the whole state
// lives in one human-readable JSON book file that the host loads before the
// first operation and saves after every mutation.
//
// The core of the package is the portfolio ledger engine:
//   - Holdings: positions in shares or funds, accumulated purchase by purchase
//     with a weighted-average cost basis and a full acquisition history.
//   - Disposals: sales reduce the unit count (clamped at zero) and are kept in
//     an append-only log; the average cost is never rewritten by a sale.
//   - Dividends and daily valuation snapshots, also append-only.
//   - Derived figures (valuation, profit and loss, dividend yield) recomputed
//     from the raw state on every call, never cached.
//
// Around the engine the package carries the sibling records of the original
// book (fixed deposits with maturity collection, plus opaque sections for
// modules this tool does not compute on), schema migration for books written
// by older versions, and CSV export projections.
//
// This package is the foundation of the `wt` command-line tool.
package wealthtrack
