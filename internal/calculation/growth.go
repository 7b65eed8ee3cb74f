package calculation

import (
	"github.com/shopspring/decimal"
)

const (
	// MinTabulatedGrowthAge and MaxTabulatedGrowthAge bound the earnings growth table
	MinTabulatedGrowthAge = 18
	MaxTabulatedGrowthAge = 51
	// GrowthFallbackAge is the first age served by the configurable fallback rate
	GrowthFallbackAge = 52
)

// DefaultGrowthFallback is the growth rate used past the table when none is configured
var DefaultGrowthFallback = decimal.NewFromFloat(0.03)

// youngAgeGrowthRate applies to unmapped ages below GrowthFallbackAge. It is fixed
// and does not follow the configured fallback.
var youngAgeGrowthRate = decimal.NewFromFloat(0.03)

// AgeRateTable is a sparse age -> rate table with a fallback for older ages
type AgeRateTable struct {
	Rates    map[int]decimal.Decimal `json:"rates"`
	Fallback decimal.Decimal         `json:"fallback"`
}

// RateFor returns the rate for an attained age. Only whole ages can hit the table.
func (t AgeRateTable) RateFor(age decimal.Decimal) decimal.Decimal {
	if age.Equal(age.Truncate(0)) {
		if rate, ok := t.Rates[int(age.IntPart())]; ok {
			return rate
		}
	}
	if age.GreaterThanOrEqual(decimal.NewFromInt(GrowthFallbackAge)) {
		return t.Fallback
	}
	return youngAgeGrowthRate
}

// Ages returns the tabulated ages in ascending order
func (t AgeRateTable) Ages() []int {
	ages := make([]int, 0, len(t.Rates))
	for age := MinTabulatedGrowthAge; age <= MaxTabulatedGrowthAge; age++ {
		if _, ok := t.Rates[age]; ok {
			ages = append(ages, age)
		}
	}
	return ages
}

// earningsGrowthRates are annual wage growth rates by attained age.
var earningsGrowthRates = map[int]decimal.Decimal{
	18: decimal.NewFromFloat(0.0825),
	19: decimal.NewFromFloat(0.0810),
	20: decimal.NewFromFloat(0.0795),
	21: decimal.NewFromFloat(0.0780),
	22: decimal.NewFromFloat(0.0765),
	23: decimal.NewFromFloat(0.0750),
	24: decimal.NewFromFloat(0.0735),
	25: decimal.NewFromFloat(0.0720),
	26: decimal.NewFromFloat(0.0705),
	27: decimal.NewFromFloat(0.0690),
	28: decimal.NewFromFloat(0.0675),
	29: decimal.NewFromFloat(0.0660),
	30: decimal.NewFromFloat(0.0645),
	31: decimal.NewFromFloat(0.0630),
	32: decimal.NewFromFloat(0.0615),
	33: decimal.NewFromFloat(0.0600),
	34: decimal.NewFromFloat(0.0585),
	35: decimal.NewFromFloat(0.0570),
	36: decimal.NewFromFloat(0.0555),
	37: decimal.NewFromFloat(0.0540),
	38: decimal.NewFromFloat(0.0525),
	39: decimal.NewFromFloat(0.0510),
	40: decimal.NewFromFloat(0.0495),
	41: decimal.NewFromFloat(0.0480),
	42: decimal.NewFromFloat(0.0465),
	43: decimal.NewFromFloat(0.0450),
	44: decimal.NewFromFloat(0.0435),
	45: decimal.NewFromFloat(0.0420),
	46: decimal.NewFromFloat(0.0405),
	47: decimal.NewFromFloat(0.0390),
	48: decimal.NewFromFloat(0.0375),
	49: decimal.NewFromFloat(0.0360),
	50: decimal.NewFromFloat(0.0345),
	51: decimal.NewFromFloat(0.0330),
}

// EarningsGrowthTable returns a copy of the age-indexed growth table with the given fallback
func EarningsGrowthTable(fallback decimal.Decimal) AgeRateTable {
	rates := make(map[int]decimal.Decimal, len(earningsGrowthRates))
	for age, rate := range earningsGrowthRates {
		rates[age] = rate
	}
	return AgeRateTable{Rates: rates, Fallback: fallback}
}

// GrowthRateForAge looks an attained age up in the earnings growth table
func GrowthRateForAge(age, fallback decimal.Decimal) decimal.Decimal {
	return AgeRateTable{Rates: earningsGrowthRates, Fallback: fallback}.RateFor(age)
}
