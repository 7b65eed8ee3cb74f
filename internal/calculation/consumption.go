package calculation

import (
	"github.com/DavidGslade86/VCFEstimator/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsumptionColumn names one household-composition column of the consumption table
type ConsumptionColumn string

const (
	ColumnSingleNoChildren       ConsumptionColumn = "single_no_children"
	ColumnSingleWithChildren     ConsumptionColumn = "single_with_children"
	ColumnMarriedNoChildren      ConsumptionColumn = "married_no_children"
	ColumnMarriedOneChild        ConsumptionColumn = "married_one_child"
	ColumnMarriedTwoPlusChildren ConsumptionColumn = "married_two_plus_children"
)

// ConsumptionColumns lists the columns in display order
var ConsumptionColumns = []ConsumptionColumn{
	ColumnSingleNoChildren,
	ColumnSingleWithChildren,
	ColumnMarriedNoChildren,
	ColumnMarriedOneChild,
	ColumnMarriedTwoPlusChildren,
}

// ConsumptionRates is one row of personal consumption rates by household composition
type ConsumptionRates struct {
	SingleNoChildren       decimal.Decimal `json:"singleNoChildren"`
	SingleWithChildren     decimal.Decimal `json:"singleWithChildren"`
	MarriedNoChildren      decimal.Decimal `json:"marriedNoChildren"`
	MarriedOneChild        decimal.Decimal `json:"marriedOneChild"`
	MarriedTwoPlusChildren decimal.Decimal `json:"marriedTwoPlusChildren"`
}

// Column returns the rate for a named column
func (cr ConsumptionRates) Column(col ConsumptionColumn) decimal.Decimal {
	switch col {
	case ColumnSingleNoChildren:
		return cr.SingleNoChildren
	case ColumnSingleWithChildren:
		return cr.SingleWithChildren
	case ColumnMarriedNoChildren:
		return cr.MarriedNoChildren
	case ColumnMarriedOneChild:
		return cr.MarriedOneChild
	case ColumnMarriedTwoPlusChildren:
		return cr.MarriedTwoPlusChildren
	default:
		return decimal.Zero
	}
}

// SelectConsumptionColumn picks the column for a marital status and dependent count
func SelectConsumptionColumn(status domain.MaritalStatus, dependents int) ConsumptionColumn {
	if status == domain.MaritalStatusMarried {
		switch {
		case dependents <= 0:
			return ColumnMarriedNoChildren
		case dependents == 1:
			return ColumnMarriedOneChild
		default:
			return ColumnMarriedTwoPlusChildren
		}
	}
	if dependents > 0 {
		return ColumnSingleWithChildren
	}
	return ColumnSingleNoChildren
}

func consumptionRow(singleNo, singleWith, marriedNo, marriedOne, marriedTwo float64) ConsumptionRates {
	return ConsumptionRates{
		SingleNoChildren:       decimal.NewFromFloat(singleNo),
		SingleWithChildren:     decimal.NewFromFloat(singleWith),
		MarriedNoChildren:      decimal.NewFromFloat(marriedNo),
		MarriedOneChild:        decimal.NewFromFloat(marriedOne),
		MarriedTwoPlusChildren: decimal.NewFromFloat(marriedTwo),
	}
}

// consumptionBrackets maps pre-loss income to personal consumption rates.
var consumptionBrackets = BracketTable[ConsumptionRates]{
	{decimal.Zero, consumptionRow(0.420, 0.230, 0.270, 0.190, 0.150)},
	{decimal.NewFromInt(25000), consumptionRow(0.380, 0.210, 0.240, 0.170, 0.135)},
	{decimal.NewFromInt(50000), consumptionRow(0.330, 0.180, 0.205, 0.145, 0.115)},
	{decimal.NewFromInt(75000), consumptionRow(0.290, 0.155, 0.175, 0.120, 0.095)},
	{decimal.NewFromInt(100000), consumptionRow(0.255, 0.135, 0.150, 0.105, 0.080)},
	{decimal.NewFromInt(150000), consumptionRow(0.215, 0.115, 0.125, 0.085, 0.065)},
	{decimal.NewFromInt(200000), consumptionRow(0.185, 0.100, 0.105, 0.070, 0.055)},
	{decimal.NewFromInt(300000), consumptionRow(0.150, 0.080, 0.085, 0.060, 0.045)},
}

// ConsumptionBrackets returns a copy of the personal consumption table
func ConsumptionBrackets() BracketTable[ConsumptionRates] {
	return consumptionBrackets.clone()
}

// ConsumptionRateFor returns the consumption rate for a pre-loss income,
// marital status and count of dependents still under the cutoff age.
func ConsumptionRateFor(income decimal.Decimal, status domain.MaritalStatus, dependents int) decimal.Decimal {
	return consumptionBrackets.Lookup(income).Column(SelectConsumptionColumn(status, dependents))
}
