package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBracketTable_Lookup(t *testing.T) {
	table := BracketTable[string]{
		{decimal.NewFromInt(100), "low"},
		{decimal.NewFromInt(200), "mid"},
		{decimal.NewFromInt(300), "high"},
	}

	tests := []struct {
		name     string
		query    decimal.Decimal
		expected string
	}{
		{"below first threshold", decimal.NewFromInt(50), "low"},
		{"exact first threshold", decimal.NewFromInt(100), "low"},
		{"between rows", decimal.NewFromInt(199), "low"},
		{"exact middle threshold", decimal.NewFromInt(200), "mid"},
		{"fractional between rows", decimal.RequireFromString("299.99"), "mid"},
		{"exact last threshold", decimal.NewFromInt(300), "high"},
		{"above last threshold", decimal.NewFromInt(1000000), "high"},
		{"negative query", decimal.NewFromInt(-5), "low"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, table.Lookup(tt.query))
		})
	}
}

func TestBracketTable_LookupEmpty(t *testing.T) {
	var empty BracketTable[decimal.Decimal]
	assert.True(t, empty.Lookup(decimal.NewFromInt(50000)).IsZero(), "Empty table should return zero")

	var emptyStrings BracketTable[string]
	assert.Equal(t, "", emptyStrings.Lookup(decimal.NewFromInt(1)))
}

func TestBracketTable_Thresholds(t *testing.T) {
	table := BracketTable[int]{
		{decimal.Zero, 1},
		{decimal.NewFromInt(10), 2},
	}
	thresholds := table.Thresholds()
	assert.Len(t, thresholds, 2)
	assert.True(t, thresholds[1].Equal(decimal.NewFromInt(10)))
}

func TestBracketTable_CloneIsIndependent(t *testing.T) {
	copied := TaxBrackets()
	copied[0].Value = decimal.NewFromInt(1)

	assert.True(t, TaxRateForIncome(decimal.Zero).Equal(decimal.NewFromFloat(0.0765)),
		"Mutating a returned table must not change the package table")
}
