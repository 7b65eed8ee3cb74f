package calculation

import (
	"github.com/shopspring/decimal"
)

// ReferenceTables bundles copies of every static table the engine consults
type ReferenceTables struct {
	TaxBrackets         BracketTable[decimal.Decimal]  `json:"taxBrackets"`
	ConsumptionBrackets BracketTable[ConsumptionRates] `json:"consumptionBrackets"`
	EarningsGrowth      AgeRateTable                   `json:"earningsGrowth"`
	Worklife            []WorklifeRow                  `json:"worklife"`
	DiscountBands       []DiscountBand                 `json:"discountBands"`
}

// References returns the reference tables with the default growth fallback
func References() ReferenceTables {
	return ReferencesWithFallback(DefaultGrowthFallback)
}

// ReferencesWithFallback returns the reference tables with a caller-supplied growth fallback
func ReferencesWithFallback(fallback decimal.Decimal) ReferenceTables {
	return ReferenceTables{
		TaxBrackets:         TaxBrackets(),
		ConsumptionBrackets: ConsumptionBrackets(),
		EarningsGrowth:      EarningsGrowthTable(fallback),
		Worklife:            WorklifeTable(),
		DiscountBands:       DiscountBands(),
	}
}
