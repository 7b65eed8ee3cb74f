package calculation

import (
	"github.com/shopspring/decimal"
)

// TAX ASSUMPTIONS:
//
// 1. A single blended effective rate (federal, state and payroll combined) is
//    looked up once from pre-loss base income and held for every projection year.
// 2. The rate is not recomputed as the projected salary grows.
// 3. Brackets are a step function keyed on income; there is no interpolation.

// taxBrackets maps pre-loss income to an effective combined tax rate.
var taxBrackets = BracketTable[decimal.Decimal]{
	{decimal.Zero, decimal.NewFromFloat(0.0765)},
	{decimal.NewFromInt(10000), decimal.NewFromFloat(0.0952)},
	{decimal.NewFromInt(20000), decimal.NewFromFloat(0.1138)},
	{decimal.NewFromInt(30000), decimal.NewFromFloat(0.1269)},
	{decimal.NewFromInt(40000), decimal.NewFromFloat(0.1391)},
	{decimal.NewFromInt(50000), decimal.NewFromFloat(0.1482)},
	{decimal.NewFromInt(60000), decimal.NewFromFloat(0.1573)},
	{decimal.NewFromInt(70000), decimal.NewFromFloat(0.1671)},
	{decimal.NewFromInt(80000), decimal.NewFromFloat(0.1762)},
	{decimal.NewFromInt(90000), decimal.NewFromFloat(0.1864)},
	{decimal.NewFromInt(100000), decimal.NewFromFloat(0.2021)},
	{decimal.NewFromInt(125000), decimal.NewFromFloat(0.2204)},
	{decimal.NewFromInt(150000), decimal.NewFromFloat(0.2376)},
	{decimal.NewFromInt(175000), decimal.NewFromFloat(0.2512)},
	{decimal.NewFromInt(200000), decimal.NewFromFloat(0.2648)},
	{decimal.NewFromInt(250000), decimal.NewFromFloat(0.2853)},
	{decimal.NewFromInt(300000), decimal.NewFromFloat(0.3011)},
	{decimal.NewFromInt(400000), decimal.NewFromFloat(0.3208)},
	{decimal.NewFromInt(500000), decimal.NewFromFloat(0.3342)},
}

// TaxBrackets returns a copy of the effective tax rate table
func TaxBrackets() BracketTable[decimal.Decimal] {
	return taxBrackets.clone()
}

// TaxRateForIncome returns the effective tax rate for a pre-loss income
func TaxRateForIncome(income decimal.Decimal) decimal.Decimal {
	return taxBrackets.Lookup(income)
}
