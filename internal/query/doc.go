// Package query selects and reshapes scored records for display.
//
// Apply filters by (year, region) and returns every match, including records
// that share a key. Years and Regions list the distinct keys for selectors,
// Series groups records per region along the year axis for charting, Table
// produces two-decimal display rows, and Frontier returns the records that are
// Pareto-optimal over net benefit and sustainability score.
//
// Nothing here mutates its input; each call works on the slice it is given.
package query
