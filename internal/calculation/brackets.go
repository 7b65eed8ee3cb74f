package calculation

import (
	"github.com/shopspring/decimal"
)

// Bracket is one row of a threshold table
type Bracket[T any] struct {
	Threshold decimal.Decimal `json:"threshold"`
	Value     T               `json:"value"`
}

// BracketTable is an ordered list of brackets with ascending thresholds.
// Lookups are a strict step function; adjacent rows are never interpolated.
type BracketTable[T any] []Bracket[T]

// Lookup returns the value of the highest threshold that does not exceed query.
// A query below every threshold gets the first row's value and an empty table
// returns the zero value of T. Row order is trusted, not validated.
func (bt BracketTable[T]) Lookup(query decimal.Decimal) T {
	var zero T
	if len(bt) == 0 {
		return zero
	}

	value := bt[0].Value
	for _, b := range bt {
		if query.GreaterThanOrEqual(b.Threshold) {
			value = b.Value
		}
	}
	return value
}

// Thresholds returns the table's thresholds in order
func (bt BracketTable[T]) Thresholds() []decimal.Decimal {
	out := make([]decimal.Decimal, len(bt))
	for i, b := range bt {
		out[i] = b.Threshold
	}
	return out
}

// clone returns a copy so callers can't reach the package tables
func (bt BracketTable[T]) clone() BracketTable[T] {
	out := make(BracketTable[T], len(bt))
	copy(out, bt)
	return out
}
