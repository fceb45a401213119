// Package forecast provides the high-level interface for building a set
// of scheduled cash flows and analysing them over a timeframe: event
// listings, category totals, and balance projections shaped for plotting
// or persistence.
package forecast
